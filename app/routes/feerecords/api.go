package feerecords

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/helpers"
	"github.com/ahmednooor/SRS/app/models"
)

type feeRecordForm struct {
	StudentID    string `validate:"required,numeric"`
	Date         string `validate:"required"`
	FeeFor       string `validate:"required"`
	DepositedFee string `validate:"required,numeric"`
}

func parseFeeRecordForm(c *fiber.Ctx) feeRecordForm {
	return feeRecordForm{
		StudentID:    c.FormValue("studentID"),
		Date:         c.FormValue("date"),
		FeeFor:       c.FormValue("feefor"),
		DepositedFee: c.FormValue("depositedfee"),
	}
}

// AddFeeRecordAPI creates a fee record with a snapshot of the referenced
// student and echoes the generated identity for the receipt flow.
func AddFeeRecordAPI(c *fiber.Ctx) error {
	form := parseFeeRecordForm(c)
	if err := helpers.Validate.Struct(form); err != nil {
		return helpers.Error(c, helpers.FormErrorMsg(err, "Incomplete data.", "Incompatible data."))
	}
	studentID, err := strconv.ParseInt(form.StudentID, 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible data.")
	}
	deposited, err := strconv.ParseInt(form.DepositedFee, 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible data.")
	}

	student, err := database.GetStudentByID(c.Context(), config.GetDB(), studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if student == nil {
		return helpers.Error(c, "No Student with entered ID.")
	}

	record := &models.FeeRecord{
		Date:         form.Date,
		FeeFor:       form.FeeFor,
		DepositedFee: deposited,
	}
	id, err := database.CreateFeeRecord(c.Context(), config.GetDB(), student, record)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee record")
	}

	return helpers.Success(c, "Changes saved.", fiber.Map{"lastrowID": id})
}

// UpdateFeeRecordAPI saves an existing fee record.
func UpdateFeeRecordAPI(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible data.")
	}

	form := parseFeeRecordForm(c)
	studentName := c.FormValue("studentName")
	studentFrName := c.FormValue("studentFrName")
	if err := helpers.Validate.Struct(form); err != nil || studentName == "" || studentFrName == "" {
		if err == nil {
			return helpers.Error(c, "Incomplete data.")
		}
		return helpers.Error(c, helpers.FormErrorMsg(err, "Incomplete data.", "Incompatible data."))
	}
	studentID, err := strconv.ParseInt(form.StudentID, 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible data.")
	}
	deposited, err := strconv.ParseInt(form.DepositedFee, 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible data.")
	}

	student, err := database.GetStudentByID(c.Context(), config.GetDB(), studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if student == nil {
		return helpers.Error(c, "No Student with entered ID.")
	}

	record := &models.FeeRecord{
		ID:            id,
		StudentID:     studentID,
		StudentName:   studentName,
		StudentFrName: studentFrName,
		Date:          form.Date,
		FeeFor:        form.FeeFor,
		DepositedFee:  deposited,
	}
	if err := database.UpdateFeeRecord(c.Context(), config.GetDB(), record); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save fee record")
	}

	return helpers.Success(c, "Changes saved.", nil)
}

// DeleteFeeRecordAPI removes one fee record.
func DeleteFeeRecordAPI(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helpers.Error(c, "Incompatible data.")
	}
	if err := database.DeleteFeeRecord(c.Context(), config.GetDB(), id); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete fee record")
	}
	return helpers.Success(c, "Deleted", nil)
}
