package testrecords

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/helpers"
	"github.com/ahmednooor/SRS/app/models"
)

type testRecordForm struct {
	StudentID     string `validate:"required,numeric"`
	Date          string `validate:"required"`
	Subject       string `validate:"required"`
	Description   string
	TotalMarks    string `validate:"required,numeric"`
	ObtainedMarks string `validate:"required,numeric"`
	Remarks       string
}

func parseTestRecordForm(c *fiber.Ctx) testRecordForm {
	return testRecordForm{
		StudentID:     c.FormValue("studentID"),
		Date:          c.FormValue("date"),
		Subject:       c.FormValue("subject"),
		Description:   c.FormValue("description"),
		TotalMarks:    c.FormValue("totalmarks"),
		ObtainedMarks: c.FormValue("obtainedmarks"),
		Remarks:       c.FormValue("remarks"),
	}
}

func (f testRecordForm) numbers() (studentID, total, obtained int64, ok bool) {
	var err error
	if studentID, err = strconv.ParseInt(f.StudentID, 10, 64); err != nil {
		return 0, 0, 0, false
	}
	if total, err = strconv.ParseInt(f.TotalMarks, 10, 64); err != nil {
		return 0, 0, 0, false
	}
	if obtained, err = strconv.ParseInt(f.ObtainedMarks, 10, 64); err != nil {
		return 0, 0, 0, false
	}
	return studentID, total, obtained, true
}

// AddTestRecordAPI creates a test record. The referenced student must exist;
// its name, father name and class are snapshotted onto the record as they are
// right now.
func AddTestRecordAPI(c *fiber.Ctx) error {
	form := parseTestRecordForm(c)
	if err := helpers.Validate.Struct(form); err != nil {
		return helpers.Error(c, helpers.FormErrorMsg(err, "Incomplete data.", "Incompatible data."))
	}
	studentID, total, obtained, ok := form.numbers()
	if !ok || total == 0 {
		return helpers.Error(c, "Incompatible data.")
	}

	student, err := database.GetStudentByID(c.Context(), config.GetDB(), studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if student == nil {
		return helpers.Error(c, "No Student with entered ID.")
	}

	record := &models.TestRecord{
		Date:          form.Date,
		Subject:       form.Subject,
		Description:   form.Description,
		TotalMarks:    total,
		ObtainedMarks: obtained,
		Remarks:       form.Remarks,
	}
	if _, err := database.CreateTestRecord(c.Context(), config.GetDB(), student, record); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create test record")
	}

	return helpers.Success(c, "Changes saved.", nil)
}

// UpdateTestRecordAPI saves an existing record; the stored percentage is
// recomputed from the written marks.
func UpdateTestRecordAPI(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible data.")
	}

	form := parseTestRecordForm(c)
	studentName := c.FormValue("studentName")
	studentFrName := c.FormValue("studentFrName")
	class := c.FormValue("class")
	if err := helpers.Validate.Struct(form); err != nil || studentName == "" || studentFrName == "" || class == "" {
		if err == nil {
			return helpers.Error(c, "Incomplete data.")
		}
		return helpers.Error(c, helpers.FormErrorMsg(err, "Incomplete data.", "Incompatible data."))
	}
	studentID, total, obtained, ok := form.numbers()
	if !ok || total == 0 {
		return helpers.Error(c, "Incompatible data.")
	}

	student, err := database.GetStudentByID(c.Context(), config.GetDB(), studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if student == nil {
		return helpers.Error(c, "No Student with entered ID.")
	}

	record := &models.TestRecord{
		ID:            id,
		StudentID:     studentID,
		StudentName:   studentName,
		StudentFrName: studentFrName,
		Date:          form.Date,
		Class:         class,
		Subject:       form.Subject,
		Description:   form.Description,
		TotalMarks:    total,
		ObtainedMarks: obtained,
		Remarks:       form.Remarks,
	}
	if err := database.UpdateTestRecord(c.Context(), config.GetDB(), record); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save test record")
	}

	return helpers.Success(c, "Changes saved.", nil)
}

// DeleteTestRecordAPI removes one test record.
func DeleteTestRecordAPI(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible data.")
	}
	if err := database.DeleteTestRecord(c.Context(), config.GetDB(), id); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete test record")
	}
	return helpers.Success(c, "Deleted", nil)
}
