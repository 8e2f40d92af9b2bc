package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/config"
)

// LoginAPI checks the submitted credentials and establishes the session.
// Unknown username and wrong password yield the identical error.
func LoginAPI(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	admin, err := VerifyCredentials(c.Context(), config.GetDB(), username, password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database error")
	}
	if admin == nil {
		return c.Render("login", fiber.Map{
			"Title": "Login",
			"error": InvalidCredentialsMsg,
		})
	}

	token, err := IssueSession(admin)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to establish session")
	}
	setSessionCookie(c, token, time.Now().Add(24*time.Hour))

	return c.Redirect("/home")
}

// LogoutAPI clears the session cookie atomically and returns to the login
// page.
func LogoutAPI(c *fiber.Ctx) error {
	setSessionCookie(c, "", time.Now().Add(-time.Hour))
	return c.Redirect("/login")
}
