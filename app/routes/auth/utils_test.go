package auth

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/models"
)

func openTestDB(t *testing.T) *sql.DB {
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
	return db
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPasswordHash("s3cret", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestVerifyCredentialsFailuresAreIndistinguishable(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := &models.Admin{
		Username: "maria", FirstName: "Maria", LastName: "Iqbal",
		Password: hash, Role: models.RoleAdmin, ImgURL: "/static/img/system/default-prof-img.png",
	}
	if _, err := database.CreateAdmin(ctx, db, admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	// Known user, wrong password.
	got, err := VerifyCredentials(ctx, db, "maria", "battery-staple")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	// Unknown user, any password.
	got2, err := VerifyCredentials(ctx, db, "nobody", "battery-staple")
	if err != nil {
		t.Fatalf("verify unknown: %v", err)
	}

	// Both failure paths produce the identical outcome; the one shared
	// message is InvalidCredentialsMsg.
	if got != nil || got2 != nil {
		t.Fatalf("credential failures leaked an account: %v %v", got, got2)
	}

	ok, err := VerifyCredentials(ctx, db, "maria", "correct-horse")
	if err != nil {
		t.Fatalf("verify correct: %v", err)
	}
	if ok == nil || ok.Username != "maria" {
		t.Fatalf("correct credentials rejected: %+v", ok)
	}
}

func TestSessionRoundTripCarriesFixedShape(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret", CookieName: "srs_session"}

	admin := &models.Admin{
		ID: 42, Username: "maria", FirstName: "Maria", LastName: "Iqbal",
		Role: models.RoleRoot,
	}
	token, err := IssueSession(admin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	sess, err := ParseSession(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := models.Session{AdminID: 42, Username: "maria", FirstName: "Maria", LastName: "Iqbal", Role: models.RoleRoot}
	if *sess != want {
		t.Fatalf("session = %+v, want %+v", *sess, want)
	}
	if !sess.Elevated() {
		t.Fatal("root session must be elevated")
	}
}

func TestParseSessionRejectsForgedToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
	admin := &models.Admin{ID: 1, Username: "maria", Role: models.RoleAdmin}
	token, err := IssueSession(admin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	config.AppConfig = &config.Config{JWTSecret: "other-secret"}
	if _, err := ParseSession(token); err == nil {
		t.Fatal("token signed with a different secret must not parse")
	}
}
