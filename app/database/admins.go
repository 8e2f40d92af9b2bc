package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ahmednooor/SRS/app/models"
)

func adminFromRow(row map[string]any) *models.Admin {
	return &models.Admin{
		ID:        rowInt64(row, "id"),
		Username:  rowString(row, "username"),
		FirstName: rowString(row, "firstname"),
		LastName:  rowString(row, "lastname"),
		Password:  rowString(row, "password"),
		Role:      models.Role(rowString(row, "role")),
		Contact:   rowString(row, "contact"),
		ImgURL:    rowString(row, "imgURL"),
	}
}

// GetAllAdmins returns every administrator sorted case-insensitively by first
// name.
func GetAllAdmins(ctx context.Context, db *sql.DB) ([]*models.Admin, error) {
	res, err := Execute(ctx, db, `SELECT * FROM admins ORDER BY LOWER(firstname)`)
	if err != nil {
		return nil, err
	}
	admins := make([]*models.Admin, 0, len(res.Rows))
	for _, row := range res.Rows {
		admins = append(admins, adminFromRow(row))
	}
	return admins, nil
}

// GetAdminByID returns the administrator or nil when no such row exists.
func GetAdminByID(ctx context.Context, db *sql.DB, id int64) (*models.Admin, error) {
	res, err := Execute(ctx, db, `SELECT * FROM admins WHERE id=:id`, sql.Named("id", id))
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, nil
	}
	return adminFromRow(res.Rows[0]), nil
}

// GetAdminByUsername returns the administrator or nil when no such row exists.
func GetAdminByUsername(ctx context.Context, db *sql.DB, username string) (*models.Admin, error) {
	res, err := Execute(ctx, db, `SELECT * FROM admins WHERE username=:username`,
		sql.Named("username", username))
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, nil
	}
	return adminFromRow(res.Rows[0]), nil
}

// UsernameTaken reports whether another admin (excluding excludeID) already
// holds the username. The UNIQUE constraint backs this up at the store, but
// the pre-check yields a friendly message before any write is attempted.
func UsernameTaken(ctx context.Context, db *sql.DB, username string, excludeID int64) (bool, error) {
	res, err := Execute(ctx, db,
		`SELECT id FROM admins WHERE username=:username AND id != :excludeID`,
		sql.Named("username", username), sql.Named("excludeID", excludeID))
	if err != nil {
		return false, err
	}
	return len(res.Rows) > 0, nil
}

// CreateAdmin inserts the administrator and fills in the generated identity.
// A duplicate username surfaces as ErrConstraint.
func CreateAdmin(ctx context.Context, db *sql.DB, a *models.Admin) (int64, error) {
	res, err := Execute(ctx, db,
		`INSERT INTO admins (username, firstname, lastname, password, role, contact, imgURL)
		 VALUES (:username, :firstname, :lastname, :password, :role, :contact, :imgURL)`,
		sql.Named("username", a.Username),
		sql.Named("firstname", a.FirstName),
		sql.Named("lastname", a.LastName),
		sql.Named("password", a.Password),
		sql.Named("role", string(a.Role)),
		sql.Named("contact", a.Contact),
		sql.Named("imgURL", a.ImgURL),
	)
	if err != nil {
		return 0, err
	}
	a.ID = res.InsertID
	return res.InsertID, nil
}

func updateAdminInfoTx(ctx context.Context, tx *sql.Tx, a *models.Admin) error {
	updates := []struct {
		stmt string
		val  any
	}{
		{`UPDATE admins SET firstname=:val WHERE id=:id`, a.FirstName},
		{`UPDATE admins SET lastname=:val WHERE id=:id`, a.LastName},
		{`UPDATE admins SET username=:val WHERE id=:id`, a.Username},
		{`UPDATE admins SET contact=:val WHERE id=:id`, a.Contact},
		{`UPDATE admins SET role=:val WHERE id=:id`, string(a.Role)},
	}
	for _, u := range updates {
		if _, err := Execute(ctx, tx, u.stmt, sql.Named("val", u.val), sql.Named("id", a.ID)); err != nil {
			return err
		}
	}
	return nil
}

// UpdateAdminInfo saves the editable profile fields as one logical operation
// inside a single transaction.
func UpdateAdminInfo(ctx context.Context, db *sql.DB, a *models.Admin) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update admin: %w", err)
	}
	defer tx.Rollback()

	if err := updateAdminInfoTx(ctx, tx, a); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveAdminProfile writes the profile fields and, when passwordHash is
// non-empty, the new password hash, all inside one transaction so a partial
// save never commits.
func SaveAdminProfile(ctx context.Context, db *sql.DB, a *models.Admin, passwordHash string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save profile: %w", err)
	}
	defer tx.Rollback()

	if passwordHash != "" {
		if err := UpdateAdminPassword(ctx, tx, a.ID, passwordHash); err != nil {
			return err
		}
	}
	if err := updateAdminInfoTx(ctx, tx, a); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateAdminPassword stores a new password hash.
func UpdateAdminPassword(ctx context.Context, q Queryer, id int64, hash string) error {
	_, err := Execute(ctx, q, `UPDATE admins SET password=:password WHERE id=:id`,
		sql.Named("password", hash), sql.Named("id", id))
	return err
}

// UpdateAdminImage stores the admin's image URL.
func UpdateAdminImage(ctx context.Context, q Queryer, id int64, url string) error {
	_, err := Execute(ctx, q, `UPDATE admins SET imgURL=:imgURL WHERE id=:id`,
		sql.Named("imgURL", url), sql.Named("id", id))
	return err
}

// DeleteAdmin removes the administrator row and returns the deleted record so
// the response can echo the display name. Returns nil when no such admin
// exists.
func DeleteAdmin(ctx context.Context, db *sql.DB, id int64) (*models.Admin, error) {
	admin, err := GetAdminByID(ctx, db, id)
	if err != nil || admin == nil {
		return nil, err
	}
	if _, err := Execute(ctx, db, `DELETE FROM admins WHERE id=:id`, sql.Named("id", id)); err != nil {
		return nil, err
	}
	return admin, nil
}

// CountAdmins returns the number of administrator accounts.
func CountAdmins(ctx context.Context, db *sql.DB) (int64, error) {
	res, err := Execute(ctx, db, `SELECT COUNT(*) AS n FROM admins`)
	if err != nil {
		return 0, err
	}
	if len(res.Rows) == 0 {
		return 0, nil
	}
	return rowInt64(res.Rows[0], "n"), nil
}
