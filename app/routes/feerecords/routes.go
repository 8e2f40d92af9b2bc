package feerecords

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/routes/auth"
)

func SetupFeeRecordsRoutes(app *fiber.App) {
	app.Get("/feerecords", auth.RequireAuth, FeeRecordsPage)
	app.Get("/allfeerecords", auth.RequireAuth, AllFeeRecordsPage)
	app.Get("/feerecord/:studentID", auth.RequireAuth, StudentFeeRecordPage)
	app.Get("/addfeerecords", auth.RequireAuth, AddFeeRecordsPage)
	app.Get("/downloadfeereceipt/:id", auth.RequireAuth, DownloadFeeReceiptPage)
	app.Get("/editfeerecord/:id", auth.RequireAuth, auth.RequireElevated, EditFeeRecordPage)

	api := app.Group("/api/feerecords")
	api.Use(auth.RequireAuth)
	api.Post("/", AddFeeRecordAPI)
	api.Put("/:id", auth.RequireElevated, UpdateFeeRecordAPI)
	api.Delete("/:id", auth.RequireElevated, DeleteFeeRecordAPI)
}

// FeeRecordsPage is the fee-records landing page with the lookup form.
func FeeRecordsPage(c *fiber.Ctx) error {
	records, err := database.GetAllFeeRecords(c.Context(), config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load fee records")
	}
	return c.Render("feerecords", fiber.Map{
		"Title":       "Fee Records",
		"CurrentPage": "feerecords",
		"records":     records,
	})
}

// AllFeeRecordsPage lists every fee record, newest first.
func AllFeeRecordsPage(c *fiber.Ctx) error {
	records, err := database.GetAllFeeRecords(c.Context(), config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load fee records")
	}
	return c.Render("allfeerecords", fiber.Map{
		"Title":       "All Fee Records",
		"CurrentPage": "feerecords",
		"records":     records,
	})
}

// StudentFeeRecordPage lists one student's fee records.
func StudentFeeRecordPage(c *fiber.Ctx) error {
	studentID, err := strconv.ParseInt(c.Params("studentID"), 10, 64)
	if err != nil {
		return notFoundPage(c, "Record Not Found.")
	}
	records, err := database.GetFeeRecordsByStudent(c.Context(), config.GetDB(), studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load fee records")
	}
	if len(records) == 0 {
		return notFoundPage(c, "Record Not Found.")
	}
	return c.Render("studentfeerecord", fiber.Map{
		"Title":       "Student Fee Record",
		"CurrentPage": "feerecords",
		"records":     records,
	})
}

// AddFeeRecordsPage renders the entry form; ?id= preselects a student.
func AddFeeRecordsPage(c *fiber.Ctx) error {
	return c.Render("addfeerecords", fiber.Map{
		"Title":       "Add Fee Records",
		"CurrentPage": "feerecords",
		"id":          c.Query("id"),
	})
}

// DownloadFeeReceiptPage renders the printable receipt for one deposit.
func DownloadFeeReceiptPage(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return notFoundPage(c, "Record Not Found.")
	}
	record, err := database.GetFeeRecordByID(c.Context(), config.GetDB(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load fee record")
	}
	if record == nil {
		return notFoundPage(c, "Record Not Found.")
	}
	return c.Render("downloadfeereceipt", fiber.Map{
		"Title":       "Fee Receipt",
		"CurrentPage": "feerecords",
		"msg":         "Download will start in a moment ...",
		"feeRecord":   record,
	})
}

// EditFeeRecordPage renders the edit form for one record.
func EditFeeRecordPage(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return notFoundPage(c, "Record Not Found.")
	}
	record, err := database.GetFeeRecordByID(c.Context(), config.GetDB(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load fee record")
	}
	if record == nil {
		return notFoundPage(c, "Record Not Found.")
	}
	return c.Render("editfeerecord", fiber.Map{
		"Title":       "Edit Fee Record",
		"CurrentPage": "feerecords",
		"record":      record,
	})
}

func notFoundPage(c *fiber.Ctx, msg string) error {
	return c.Render("notfound", fiber.Map{
		"Title": "Not Found",
		"msg":   msg,
	})
}
