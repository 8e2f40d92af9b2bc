package testrecords

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/routes/auth"
)

func SetupTestRecordsRoutes(app *fiber.App) {
	app.Get("/testrecords", auth.RequireAuth, TestRecordsPage)
	app.Get("/alltestrecords", auth.RequireAuth, AllTestRecordsPage)
	app.Get("/testrecord/:studentID", auth.RequireAuth, StudentTestRecordPage)
	app.Get("/addtestrecords", auth.RequireAuth, AddTestRecordsPage)
	app.Get("/edittestrecord/:id", auth.RequireAuth, auth.RequireElevated, EditTestRecordPage)

	api := app.Group("/api/testrecords")
	api.Use(auth.RequireAuth)
	api.Post("/", AddTestRecordAPI)
	api.Put("/:id", auth.RequireElevated, UpdateTestRecordAPI)
	api.Delete("/:id", auth.RequireElevated, DeleteTestRecordAPI)
}

// TestRecordsPage is the test-records landing page with the lookup form.
func TestRecordsPage(c *fiber.Ctx) error {
	records, err := database.GetAllTestRecords(c.Context(), config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load test records")
	}
	return c.Render("testrecords", fiber.Map{
		"Title":       "Test Records",
		"CurrentPage": "testrecords",
		"records":     records,
	})
}

// AllTestRecordsPage lists every test record, newest first.
func AllTestRecordsPage(c *fiber.Ctx) error {
	records, err := database.GetAllTestRecords(c.Context(), config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load test records")
	}
	return c.Render("alltestrecords", fiber.Map{
		"Title":       "All Test Records",
		"CurrentPage": "testrecords",
		"records":     records,
	})
}

// StudentTestRecordPage lists one student's test records.
func StudentTestRecordPage(c *fiber.Ctx) error {
	studentID, err := strconv.ParseInt(c.Params("studentID"), 10, 64)
	if err != nil {
		return notFoundPage(c, "Record Not Found.")
	}
	records, err := database.GetTestRecordsByStudent(c.Context(), config.GetDB(), studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load test records")
	}
	if len(records) == 0 {
		return notFoundPage(c, "Record Not Found.")
	}
	return c.Render("studenttestrecord", fiber.Map{
		"Title":       "Student Test Record",
		"CurrentPage": "testrecords",
		"records":     records,
	})
}

// AddTestRecordsPage renders the entry form; ?id= preselects a student.
func AddTestRecordsPage(c *fiber.Ctx) error {
	return c.Render("addtestrecords", fiber.Map{
		"Title":       "Add Test Records",
		"CurrentPage": "testrecords",
		"id":          c.Query("id"),
	})
}

// EditTestRecordPage renders the edit form for one record.
func EditTestRecordPage(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return notFoundPage(c, "Record Not Found.")
	}
	record, err := database.GetTestRecordByID(c.Context(), config.GetDB(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load test record")
	}
	if record == nil {
		return notFoundPage(c, "Record Not Found.")
	}
	return c.Render("edittestrecord", fiber.Map{
		"Title":       "Edit Test Record",
		"CurrentPage": "testrecords",
		"record":      record,
	})
}

func notFoundPage(c *fiber.Ctx, msg string) error {
	return c.Render("notfound", fiber.Map{
		"Title": "Not Found",
		"msg":   msg,
	})
}
