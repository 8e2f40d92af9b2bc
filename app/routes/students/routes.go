package students

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/models"
	"github.com/ahmednooor/SRS/app/routes/auth"
)

func SetupStudentsRoutes(app *fiber.App) {
	app.Get("/students", auth.RequireAuth, StudentsPage)
	app.Get("/students/inactive", auth.RequireAuth, InactiveStudentsPage)
	app.Get("/studentprofile/:id", auth.RequireAuth, StudentProfilePage)

	api := app.Group("/api/students")
	api.Use(auth.RequireAuth)
	api.Get("/:id", GetStudentAPI)
	api.Post("/", AddStudentAPI)
	api.Put("/:id", SaveStudentAPI)
	api.Delete("/:id", DeleteStudentAPI)
}

// StudentsPage lists currently active students.
func StudentsPage(c *fiber.Ctx) error {
	students, err := database.GetStudentsByStatus(c.Context(), config.GetDB(), models.StatusActive)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load students")
	}
	return c.Render("students", fiber.Map{
		"Title":       "Students",
		"CurrentPage": "students",
		"students":    students,
	})
}

// InactiveStudentsPage lists students no longer enrolled.
func InactiveStudentsPage(c *fiber.Ctx) error {
	students, err := database.GetStudentsByStatus(c.Context(), config.GetDB(), models.StatusInactive)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load students")
	}
	return c.Render("students", fiber.Map{
		"Title":       "Inactive Students",
		"CurrentPage": "students",
		"students":    students,
		"inactive":    true,
	})
}

func StudentProfilePage(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return notFoundPage(c, "Student Not Found.")
	}

	student, err := database.GetStudentByID(c.Context(), config.GetDB(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load student")
	}
	if student == nil {
		return notFoundPage(c, "Student Not Found.")
	}

	return c.Render("studentprofile", fiber.Map{
		"Title":       student.FirstName + " " + student.LastName,
		"CurrentPage": "students",
		"student":     student,
		"inactive":    student.Status == models.StatusInactive,
	})
}

func notFoundPage(c *fiber.Ctx, msg string) error {
	return c.Render("notfound", fiber.Map{
		"Title": "Not Found",
		"msg":   msg,
	})
}
