package profile

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/routes/auth"
)

// SetupProfileRoutes registers the logged-in administrator's own profile
// surface. Any authenticated session may edit its own account.
func SetupProfileRoutes(app *fiber.App) {
	app.Get("/userprofile", auth.RequireAuth, UserProfilePage)

	api := app.Group("/api/profile")
	api.Use(auth.RequireAuth)
	api.Get("/", GetProfileAPI)
	api.Put("/", SaveProfileAPI)
}

func UserProfilePage(c *fiber.Ctx) error {
	return c.Render("userprofile", fiber.Map{
		"Title":       "User Profile",
		"CurrentPage": "userprofile",
	})
}
