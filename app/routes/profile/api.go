package profile

import (
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/assets"
	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/helpers"
	"github.com/ahmednooor/SRS/app/models"
	"github.com/ahmednooor/SRS/app/routes/auth"
)

type profileForm struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Username  string `validate:"required"`
	Contact   string
}

func formFile(c *fiber.Ctx, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil || fh == nil || fh.Size == 0 {
		return nil
	}
	return fh
}

// GetProfileAPI returns the caller's own record.
func GetProfileAPI(c *fiber.Ctx) error {
	sess := auth.SessionFrom(c)
	admin, err := database.GetAdminByID(c.Context(), config.GetDB(), sess.AdminID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if admin == nil {
		return fiber.NewError(fiber.StatusNotFound, "Account not found")
	}
	return c.JSON([]*models.Admin{admin})
}

// SaveProfileAPI updates the caller's own account. A password change requires
// the old password and a matching confirmation; the session cookie is
// re-issued so its carried fields stay current.
func SaveProfileAPI(c *fiber.Ctx) error {
	sess := auth.SessionFrom(c)

	form := profileForm{
		FirstName: c.FormValue("firstname"),
		LastName:  c.FormValue("lastname"),
		Username:  c.FormValue("username"),
		Contact:   c.FormValue("contact"),
	}
	if err := helpers.Validate.Struct(form); err != nil {
		return helpers.Error(c, "Incomplete Details.")
	}

	image := formFile(c, "imgURL")
	if image != nil && !assets.AllowedImage(image.Filename) {
		return helpers.Error(c, "File extension not supported.")
	}

	admin, err := database.GetAdminByID(c.Context(), config.GetDB(), sess.AdminID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if admin == nil {
		return helpers.Error(c, "Account not found.")
	}

	taken, err := database.UsernameTaken(c.Context(), config.GetDB(), form.Username, sess.AdminID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if taken {
		return helpers.Error(c, "Username already taken.")
	}

	var passwordHash string
	if password := c.FormValue("password"); password != "" {
		if password != c.FormValue("confirmpassword") {
			return helpers.Error(c, "Confirm new password.")
		}
		if !auth.CheckPasswordHash(c.FormValue("oldpassword"), admin.Password) {
			return helpers.Error(c, "Old password did not match.")
		}
		passwordHash, err = auth.HashPassword(password)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
		}
	}

	if image != nil {
		mgr := assets.New(config.AppConfig.ImageDir)
		url, err := mgr.Replace(assets.KindAdmin, admin.ID, admin.ImgURL, image, c.SaveFile)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save image")
		}
		if err := database.UpdateAdminImage(c.Context(), config.GetDB(), admin.ID, url); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save image")
		}
	}

	admin.FirstName = form.FirstName
	admin.LastName = form.LastName
	admin.Username = form.Username
	admin.Contact = form.Contact
	// Password and field writes commit together or not at all.
	if err := database.SaveAdminProfile(c.Context(), config.GetDB(), admin, passwordHash); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save profile")
	}

	// Refresh the session so the carried name fields match the store.
	if updated, err := database.GetAdminByID(c.Context(), config.GetDB(), admin.ID); err == nil && updated != nil {
		if token, err := auth.IssueSession(updated); err == nil {
			c.Cookie(&fiber.Cookie{
				Name:     config.AppConfig.CookieName,
				Value:    token,
				Expires:  time.Now().Add(24 * time.Hour),
				HTTPOnly: true,
				SameSite: "Lax",
			})
		}
	}

	return helpers.Success(c, "Changes saved.", nil)
}
