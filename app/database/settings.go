package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ahmednooor/SRS/app/models"
)

// BrandingField names one of the three branding asset columns. Statements are
// assembled only from these fixed values, never from request input.
type BrandingField string

const (
	BrandingPNG BrandingField = "pngURL"
	BrandingJPG BrandingField = "jpgURL"
	BrandingICO BrandingField = "icoURL"
)

// GetSystemSettings returns the singleton settings row.
func GetSystemSettings(ctx context.Context, db *sql.DB) (*models.SystemSettings, error) {
	res, err := Execute(ctx, db, `SELECT * FROM systemsettings WHERE id=:id`, sql.Named("id", 1))
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, fmt.Errorf("system settings row missing")
	}
	row := res.Rows[0]
	return &models.SystemSettings{
		ID:              rowInt64(row, "id"),
		InstitutionName: rowString(row, "institutionname"),
		NameInHeader:    rowString(row, "nameinheader"),
		LogoInHeader:    rowString(row, "logoinheader"),
		PngURL:          rowString(row, "pngURL"),
		JpgURL:          rowString(row, "jpgURL"),
		IcoURL:          rowString(row, "icoURL"),
	}, nil
}

// SaveSystemSettings writes the institution name and the two header display
// flags as one logical operation in a single transaction.
func SaveSystemSettings(ctx context.Context, db *sql.DB, institutionName, nameInHeader, logoInHeader string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save settings: %w", err)
	}
	defer tx.Rollback()

	updates := []struct {
		stmt string
		val  string
	}{
		{`UPDATE systemsettings SET institutionname=:val WHERE id=:id`, institutionName},
		{`UPDATE systemsettings SET nameinheader=:val WHERE id=:id`, nameInHeader},
		{`UPDATE systemsettings SET logoinheader=:val WHERE id=:id`, logoInHeader},
	}
	for _, u := range updates {
		if _, err := Execute(ctx, tx, u.stmt, sql.Named("val", u.val), sql.Named("id", 1)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpdateBrandingURL stores the URL of one branding asset.
func UpdateBrandingURL(ctx context.Context, db *sql.DB, field BrandingField, url string) error {
	switch field {
	case BrandingPNG, BrandingJPG, BrandingICO:
	default:
		return fmt.Errorf("unknown branding field %q", field)
	}
	_, err := Execute(ctx, db,
		fmt.Sprintf(`UPDATE systemsettings SET %s=:url WHERE id=:id`, field),
		sql.Named("url", url), sql.Named("id", 1))
	return err
}
