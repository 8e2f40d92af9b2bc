package settings

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/routes/auth"
)

// SetupSettingsRoutes registers the system settings surface; every route
// requires an elevated session.
func SetupSettingsRoutes(app *fiber.App) {
	app.Get("/systemsettings", auth.RequireAuth, auth.RequireElevated, SettingsPage)

	api := app.Group("/api/settings")
	api.Use(auth.RequireAuth, auth.RequireElevated)
	api.Get("/", GetSettingsAPI)
	api.Put("/", SaveSettingsAPI)
}

func SettingsPage(c *fiber.Ctx) error {
	return c.Render("systemsettings", fiber.Map{
		"Title":       "System Settings",
		"CurrentPage": "systemsettings",
	})
}

// LocalsMiddleware loads the singleton settings row once per request so
// every rendered page can show the institution identity and branding.
func LocalsMiddleware(c *fiber.Ctx) error {
	settings, err := database.GetSystemSettings(c.Context(), config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load system settings")
	}
	c.Locals("systemsettings", settings)
	return c.Next()
}
