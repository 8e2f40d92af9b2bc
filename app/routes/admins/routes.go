package admins

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/routes/auth"
)

// SetupAdminsRoutes registers the administrator management surface. Every
// route requires an elevated session.
func SetupAdminsRoutes(app *fiber.App) {
	app.Get("/administrators", auth.RequireAuth, auth.RequireElevated, AdministratorsPage)

	api := app.Group("/api/admins")
	api.Use(auth.RequireAuth, auth.RequireElevated)
	api.Get("/", GetAdminsAPI)
	api.Post("/", AddAdminAPI)
	api.Put("/:id", SaveAdminAPI)
	api.Delete("/:id", DeleteAdminAPI)
}

func AdministratorsPage(c *fiber.Ctx) error {
	return c.Render("administrators", fiber.Map{
		"Title":       "Administrators",
		"CurrentPage": "administrators",
	})
}
