package testrecords

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	_ "modernc.org/sqlite"

	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
)

func newTestApp(t *testing.T) (*fiber.App, *sql.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "system.db")
	db, err := sql.Open("sqlite", config.DSN(path))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	config.AppConfig = &config.Config{DB: db}

	app := fiber.New()
	app.Post("/api/testrecords", AddTestRecordAPI)
	return app, db
}

func postForm(t *testing.T, app *fiber.App, target string, form url.Values) map[string]any {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var envelope []map[string]any
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	if len(envelope) != 1 {
		t.Fatalf("envelope must hold exactly one object, got %q", raw)
	}
	return envelope[0]
}

func countRows(t *testing.T, db *sql.DB, table string) int64 {
	t.Helper()
	var n int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestAddTestRecordUnknownStudentWritesNothing(t *testing.T) {
	app, db := newTestApp(t)

	payload := postForm(t, app, "/api/testrecords", url.Values{
		"studentID":     {"999"},
		"date":          {"2024-06-01"},
		"subject":       {"Mathematics"},
		"totalmarks":    {"80"},
		"obtainedmarks": {"68"},
	})
	if payload["status"] != "error" || payload["msg"] != "No Student with entered ID." {
		t.Fatalf("payload = %v", payload)
	}
	if n := countRows(t, db, "testrecords"); n != 0 {
		t.Fatalf("testrecords count = %d, want 0", n)
	}
}

func TestAddTestRecordZeroTotalRejected(t *testing.T) {
	app, db := newTestApp(t)

	payload := postForm(t, app, "/api/testrecords", url.Values{
		"studentID":     {"1"},
		"date":          {"2024-06-01"},
		"subject":       {"Mathematics"},
		"totalmarks":    {"0"},
		"obtainedmarks": {"0"},
	})
	if payload["status"] != "error" || payload["msg"] != "Incompatible data." {
		t.Fatalf("payload = %v", payload)
	}
	if n := countRows(t, db, "testrecords"); n != 0 {
		t.Fatalf("testrecords count = %d, want 0", n)
	}
}
