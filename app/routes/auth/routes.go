package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/models"
)

func SetupAuthRoutes(app *fiber.App) {
	app.Get("/login", ShowLoginPage)
	app.Post("/login", LoginAPI)
	app.Get("/logout", LogoutAPI)
}

func ShowLoginPage(c *fiber.Ctx) error {
	// Already logged in users land on home.
	if SessionFrom(c) != nil {
		return c.Redirect("/home")
	}
	if tokenString := c.Cookies(config.AppConfig.CookieName); tokenString != "" {
		if _, err := ParseSession(tokenString); err == nil {
			return c.Redirect("/home")
		}
	}
	return c.Render("login", fiber.Map{
		"Title": "Login",
	})
}

// SessionFrom returns the session attached by RequireAuth, or nil.
func SessionFrom(c *fiber.Ctx) *models.Session {
	sess, _ := c.Locals("session").(*models.Session)
	return sess
}

// RequireAuth validates the session cookie and attaches the fixed-shape
// session record. Anonymous callers are redirected to the login page.
func RequireAuth(c *fiber.Ctx) error {
	tokenString := c.Cookies(config.AppConfig.CookieName)
	if tokenString == "" {
		return c.Redirect("/login")
	}

	sess, err := ParseSession(tokenString)
	if err != nil {
		return c.Redirect("/login")
	}

	c.Locals("session", sess)
	return c.Next()
}

// RequireElevated gates root-only operations. Failure redirects to the
// neutral home surface, indistinguishable from not being authenticated.
func RequireElevated(c *fiber.Ctx) error {
	if !SessionFrom(c).Elevated() {
		return c.Redirect("/home")
	}
	return c.Next()
}

// setSessionCookie installs (or with an empty value, clears) the session
// cookie.
func setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     config.AppConfig.CookieName,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
