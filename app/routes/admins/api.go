package admins

import (
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/assets"
	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/helpers"
	"github.com/ahmednooor/SRS/app/models"
	"github.com/ahmednooor/SRS/app/routes/auth"
)

type adminForm struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Username  string `validate:"required"`
	Contact   string
	Role      string `validate:"required,oneof=root admin"`
}

func parseAdminForm(c *fiber.Ctx) adminForm {
	return adminForm{
		FirstName: c.FormValue("firstname"),
		LastName:  c.FormValue("lastname"),
		Username:  c.FormValue("username"),
		Contact:   c.FormValue("contact"),
		Role:      c.FormValue("role"),
	}
}

// formFile returns the named upload, or nil when the field is empty or
// absent, which is a valid "no change" signal.
func formFile(c *fiber.Ctx, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil || fh == nil || fh.Size == 0 {
		return nil
	}
	return fh
}

// GetAdminsAPI lists every administrator except the caller's own account; the
// management view never includes the operator itself.
func GetAdminsAPI(c *fiber.Ctx) error {
	sess := auth.SessionFrom(c)
	all, err := database.GetAllAdmins(c.Context(), config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch administrators")
	}

	admins := make([]*models.Admin, 0, len(all))
	for _, a := range all {
		if a.Username == sess.Username {
			continue
		}
		admins = append(admins, a)
	}
	return c.JSON(admins)
}

// AddAdminAPI creates an administrator. All validation, including the upload
// extension, happens before any row is written.
func AddAdminAPI(c *fiber.Ctx) error {
	form := parseAdminForm(c)
	password := c.FormValue("password")
	if err := helpers.Validate.Struct(form); err != nil || password == "" {
		return helpers.Error(c, "Incomplete Details.")
	}

	image := formFile(c, "imgURL")
	if image != nil && !assets.AllowedImage(image.Filename) {
		return helpers.Error(c, "File extension not supported.")
	}

	taken, err := database.UsernameTaken(c.Context(), config.GetDB(), form.Username, 0)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if taken {
		return helpers.Error(c, "Username already taken.")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	admin := &models.Admin{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  hash,
		Role:      models.Role(form.Role),
		Contact:   form.Contact,
		ImgURL:    assets.DefaultProfileImage,
	}
	id, err := database.CreateAdmin(c.Context(), config.GetDB(), admin)
	if err != nil {
		// The UNIQUE constraint backs up the pre-check above.
		if errors.Is(err, database.ErrConstraint) {
			return helpers.Error(c, "Username already taken.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create administrator")
	}

	if image != nil {
		mgr := assets.New(config.AppConfig.ImageDir)
		url, err := mgr.Attach(assets.KindAdmin, id, image, c.SaveFile)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save image")
		}
		if err := database.UpdateAdminImage(c.Context(), config.GetDB(), id, url); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save image")
		}
	}

	return helpers.Success(c, "Changes saved.", nil)
}

// SaveAdminAPI updates an administrator's profile fields, optionally
// replacing the image and the password.
func SaveAdminAPI(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible Details.")
	}

	form := parseAdminForm(c)
	if err := helpers.Validate.Struct(form); err != nil {
		return helpers.Error(c, helpers.FormErrorMsg(err, "Incomplete Details.", "Incompatible Details."))
	}

	image := formFile(c, "imgURL")
	if image != nil && !assets.AllowedImage(image.Filename) {
		return helpers.Error(c, "File extension not supported.")
	}

	admin, err := database.GetAdminByID(c.Context(), config.GetDB(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if admin == nil {
		return helpers.Error(c, "Administrator does not exist.")
	}

	taken, err := database.UsernameTaken(c.Context(), config.GetDB(), form.Username, id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if taken {
		return helpers.Error(c, "Username already taken.")
	}

	if image != nil {
		mgr := assets.New(config.AppConfig.ImageDir)
		url, err := mgr.Replace(assets.KindAdmin, id, admin.ImgURL, image, c.SaveFile)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save image")
		}
		if err := database.UpdateAdminImage(c.Context(), config.GetDB(), id, url); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save image")
		}
	}

	admin.FirstName = form.FirstName
	admin.LastName = form.LastName
	admin.Username = form.Username
	admin.Contact = form.Contact
	admin.Role = models.Role(form.Role)
	if err := database.UpdateAdminInfo(c.Context(), config.GetDB(), admin); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save administrator")
	}

	if password := c.FormValue("password"); password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
		}
		if err := database.UpdateAdminPassword(c.Context(), config.GetDB(), id, hash); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save password")
		}
	}

	return helpers.Success(c, "Changes saved.", nil)
}

// DeleteAdminAPI removes an administrator and its image. Nothing prevents an
// elevated account from deleting itself or another elevated account; the
// outer elevation gate is the only check.
func DeleteAdminAPI(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible Details.")
	}

	admin, err := database.DeleteAdmin(c.Context(), config.GetDB(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete administrator")
	}
	if admin == nil {
		return helpers.Error(c, "Administrator does not exist.")
	}

	mgr := assets.New(config.AppConfig.ImageDir)
	mgr.Remove(assets.KindAdmin, id, admin.ImgURL)

	return helpers.Success(c, "Deleted", fiber.Map{
		"firstname": admin.FirstName,
		"lastname":  admin.LastName,
	})
}
