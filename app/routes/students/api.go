package students

import (
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/assets"
	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/helpers"
	"github.com/ahmednooor/SRS/app/models"
)

type studentForm struct {
	FirstName     string `validate:"required"`
	LastName      string `validate:"required"`
	FatherName    string `validate:"required"`
	Contact       string `validate:"required"`
	Gender        string `validate:"required"`
	DOB           string `validate:"required"`
	Address       string `validate:"required"`
	Class         string `validate:"required"`
	AdmissionDate string `validate:"required"`
	MonthlyFee    string `validate:"required,numeric"`
}

func parseStudentForm(c *fiber.Ctx) studentForm {
	return studentForm{
		FirstName:     c.FormValue("firstname"),
		LastName:      c.FormValue("lastname"),
		FatherName:    c.FormValue("fathername"),
		Contact:       c.FormValue("contact"),
		Gender:        c.FormValue("gender"),
		DOB:           c.FormValue("dob"),
		Address:       c.FormValue("address"),
		Class:         c.FormValue("class"),
		AdmissionDate: c.FormValue("admissiondate"),
		MonthlyFee:    c.FormValue("monthlyfee"),
	}
}

func formFile(c *fiber.Ctx, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil || fh == nil || fh.Size == 0 {
		return nil
	}
	return fh
}

// GetStudentAPI returns one student as JSON for the profile view.
func GetStudentAPI(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible Details.")
	}
	student, err := database.GetStudentByID(c.Context(), config.GetDB(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if student == nil {
		return helpers.Error(c, "Student does not exist.")
	}
	return c.JSON([]*models.Student{student})
}

// AddStudentAPI creates a student. Field and upload-extension validation both
// happen before any row is written; the image attaches afterward using the
// identity the insert returned.
func AddStudentAPI(c *fiber.Ctx) error {
	form := parseStudentForm(c)
	if err := helpers.Validate.Struct(form); err != nil {
		return helpers.Error(c, helpers.FormErrorMsg(err, "Incomplete Details.", "Incompatible Details."))
	}
	monthlyFee, err := strconv.ParseInt(form.MonthlyFee, 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible Details.")
	}

	image := formFile(c, "imgURL")
	if image != nil && !assets.AllowedImage(image.Filename) {
		return helpers.Error(c, "File extension not supported.")
	}

	student := &models.Student{
		FirstName:     form.FirstName,
		LastName:      form.LastName,
		FatherName:    form.FatherName,
		Contact:       form.Contact,
		Gender:        form.Gender,
		DOB:           form.DOB,
		Address:       form.Address,
		Class:         form.Class,
		AdmissionDate: form.AdmissionDate,
		MonthlyFee:    monthlyFee,
		Status:        models.StatusActive,
		ImgURL:        assets.DefaultProfileImage,
	}
	id, err := database.CreateStudent(c.Context(), config.GetDB(), student)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	if image != nil {
		mgr := assets.New(config.AppConfig.ImageDir)
		url, err := mgr.Attach(assets.KindStudent, id, image, c.SaveFile)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save image")
		}
		if err := database.UpdateStudentImage(c.Context(), config.GetDB(), id, url); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save image")
		}
	}

	return helpers.Success(c, "Changes saved.", nil)
}

// SaveStudentAPI updates a student's profile, enforcing the status
// enumeration and the same pre-write validation ordering as create.
func SaveStudentAPI(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible Details.")
	}

	form := parseStudentForm(c)
	status := c.FormValue("status")
	if err := helpers.Validate.Struct(form); err != nil || status == "" {
		if status == "" {
			return helpers.Error(c, "Incomplete Details.")
		}
		return helpers.Error(c, helpers.FormErrorMsg(err, "Incomplete Details.", "Incompatible Details."))
	}
	monthlyFee, err := strconv.ParseInt(form.MonthlyFee, 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible Details.")
	}
	if !models.ValidStudentStatus(status) {
		return helpers.Error(c, "Invalid status.")
	}

	image := formFile(c, "imgURL")
	if image != nil && !assets.AllowedImage(image.Filename) {
		return helpers.Error(c, "File extension not supported.")
	}

	student, err := database.GetStudentByID(c.Context(), config.GetDB(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if student == nil {
		return helpers.Error(c, "Student does not exist.")
	}

	if image != nil {
		mgr := assets.New(config.AppConfig.ImageDir)
		url, err := mgr.Replace(assets.KindStudent, id, student.ImgURL, image, c.SaveFile)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save image")
		}
		if err := database.UpdateStudentImage(c.Context(), config.GetDB(), id, url); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save image")
		}
	}

	student.FirstName = form.FirstName
	student.LastName = form.LastName
	student.FatherName = form.FatherName
	student.Contact = form.Contact
	student.Gender = form.Gender
	student.DOB = form.DOB
	student.Address = form.Address
	student.Class = form.Class
	student.AdmissionDate = form.AdmissionDate
	student.MonthlyFee = monthlyFee
	student.Status = models.StudentStatus(status)
	if err := database.UpdateStudent(c.Context(), config.GetDB(), student); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save student")
	}

	return helpers.Success(c, "Changes saved.", nil)
}

// DeleteStudentAPI removes the student, cascades over its test and fee
// records, and best-effort deletes the student's image.
func DeleteStudentAPI(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible Details.")
	}

	student, err := database.GetStudentByID(c.Context(), config.GetDB(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if student == nil {
		return helpers.Error(c, "Student does not exist.")
	}

	if err := database.DeleteStudent(c.Context(), config.GetDB(), id); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}

	mgr := assets.New(config.AppConfig.ImageDir)
	mgr.Remove(assets.KindStudent, id, student.ImgURL)

	return helpers.Success(c, "Deleted", fiber.Map{
		"firstname": student.FirstName,
		"lastname":  student.LastName,
	})
}
