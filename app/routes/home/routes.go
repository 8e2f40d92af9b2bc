package home

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/models"
	"github.com/ahmednooor/SRS/app/routes/auth"
)

func SetupHomeRoutes(app *fiber.App) {
	app.Get("/", IndexPage)
	app.Get("/home", auth.RequireAuth, HomePage)
	app.Get("/check", CheckPage)
}

// IndexPage sends the visitor to home or login depending on the session.
func IndexPage(c *fiber.Ctx) error {
	tokenString := c.Cookies(config.AppConfig.CookieName)
	if tokenString != "" {
		if _, err := auth.ParseSession(tokenString); err == nil {
			return c.Redirect("/home")
		}
	}
	return c.Redirect("/login")
}

// HomePage shows the dashboard counts. The admin count excludes the caller,
// mirroring the management listing.
func HomePage(c *fiber.Ctx) error {
	numStudents, err := database.CountStudentsByStatus(c.Context(), config.GetDB(), models.StatusActive)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}
	numAdmins, err := database.CountAdmins(c.Context(), config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	return c.Render("home", fiber.Map{
		"Title":         "Home",
		"CurrentPage":   "home",
		"numofstudents": numStudents,
		"numofadmins":   numAdmins - 1,
	})
}

// CheckPage is the liveness probe used by the desktop wrapper.
func CheckPage(c *fiber.Ctx) error {
	return c.SendString("App Is Running ...")
}
