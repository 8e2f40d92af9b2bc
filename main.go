package main

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"

	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/routes/admins"
	"github.com/ahmednooor/SRS/app/routes/auth"
	"github.com/ahmednooor/SRS/app/routes/feerecords"
	"github.com/ahmednooor/SRS/app/routes/home"
	"github.com/ahmednooor/SRS/app/routes/profile"
	"github.com/ahmednooor/SRS/app/routes/settings"
	"github.com/ahmednooor/SRS/app/routes/students"
	"github.com/ahmednooor/SRS/app/routes/testrecords"
)

// customErrorHandler answers API requests with JSON and everything else with
// a rendered error page.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if strings.HasPrefix(c.Path(), "/api") {
		return c.Status(code).JSON(fiber.Map{
			"status": "error",
			"msg":    err.Error(),
			"code":   code,
		})
	}

	return c.Status(code).Render("notfound", fiber.Map{
		"Title": "Error",
		"msg":   err.Error(),
	})
}

func main() {
	cfg := config.Load()
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	engine := html.New("./app/templates", ".html")

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New())

	// The admin views must never show stale data.
	app.Use(func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	})

	app.Static("/static", cfg.StaticDir)

	// Every rendered page needs the institution identity in scope.
	app.Use(settings.LocalsMiddleware)

	home.SetupHomeRoutes(app)
	auth.SetupAuthRoutes(app)
	admins.SetupAdminsRoutes(app)
	profile.SetupProfileRoutes(app)
	students.SetupStudentsRoutes(app)
	testrecords.SetupTestRecordsRoutes(app)
	feerecords.SetupFeeRecordsRoutes(app)
	settings.SetupSettingsRoutes(app)

	log.Printf("Listening on %s", cfg.Listen)
	log.Fatal(app.Listen(cfg.Listen))
}
