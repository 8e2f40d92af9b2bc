package settings

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/assets"
	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/helpers"
	"github.com/ahmednooor/SRS/app/models"
)

// GetSettingsAPI returns the singleton settings row.
func GetSettingsAPI(c *fiber.Ctx) error {
	settings, err := database.GetSystemSettings(c.Context(), config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load system settings")
	}
	return c.JSON([]*models.SystemSettings{settings})
}

// brandingUploads pairs each optional upload field with the settings column
// it feeds.
var brandingUploads = []struct {
	field  string
	column database.BrandingField
}{
	{"pngURL", database.BrandingPNG},
	{"jpgURL", database.BrandingJPG},
	{"icoURL", database.BrandingICO},
}

// SaveSettingsAPI saves the institution identity and any supplied branding
// assets. Every upload extension is checked before the first write.
func SaveSettingsAPI(c *fiber.Ctx) error {
	institutionName := c.FormValue("institutionname")
	nameInHeader := c.FormValue("nameinheader")
	logoInHeader := c.FormValue("logoinheader")

	if institutionName == "" {
		return helpers.Error(c, "Institution Name is Mandatory")
	}
	if !validFlag(nameInHeader) || !validFlag(logoInHeader) {
		return helpers.Error(c, "Incompatible Values for true/false")
	}

	uploads := make(map[string]*multipart.FileHeader)
	for _, b := range brandingUploads {
		fh, err := c.FormFile(b.field)
		if err != nil || fh == nil || fh.Size == 0 {
			continue
		}
		if !assets.AllowedBranding(fh.Filename) {
			return helpers.Error(c, "File extension not supported.")
		}
		uploads[b.field] = fh
	}

	mgr := assets.New(config.AppConfig.ImageDir)
	for _, b := range brandingUploads {
		fh, ok := uploads[b.field]
		if !ok {
			continue
		}
		url, err := mgr.SaveBranding(fh, c.SaveFile)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save branding asset")
		}
		if err := database.UpdateBrandingURL(c.Context(), config.GetDB(), b.column, url); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save branding asset")
		}
	}

	if err := database.SaveSystemSettings(c.Context(), config.GetDB(), institutionName, nameInHeader, logoInHeader); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save system settings")
	}

	return helpers.Success(c, "Changes saved.", nil)
}

func validFlag(v string) bool {
	return v == "true" || v == "false"
}
