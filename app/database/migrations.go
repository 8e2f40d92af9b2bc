package database

import (
	"database/sql"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/ahmednooor/SRS/app/assets"
)

// RunMigrations creates the schema if absent and seeds the singleton settings
// row and a bootstrap root administrator.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Failed to run schema statement: %v", err)
			return err
		}
	}

	if err := seedSystemSettings(db); err != nil {
		return err
	}
	if err := seedRootAdmin(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		username  TEXT NOT NULL UNIQUE,
		firstname TEXT NOT NULL,
		lastname  TEXT NOT NULL,
		password  TEXT NOT NULL,
		role      TEXT NOT NULL DEFAULT 'admin',
		contact   TEXT NOT NULL DEFAULT '',
		imgURL    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		firstname     TEXT NOT NULL,
		lastname      TEXT NOT NULL,
		fathername    TEXT NOT NULL,
		contact       TEXT NOT NULL,
		gender        TEXT NOT NULL,
		dob           TEXT NOT NULL,
		address       TEXT NOT NULL,
		class         TEXT NOT NULL,
		admissiondate TEXT NOT NULL,
		monthlyfee    INTEGER NOT NULL,
		status        TEXT NOT NULL DEFAULT 'Active',
		imgURL        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS testrecords (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		studentID          INTEGER NOT NULL,
		studentName        TEXT NOT NULL,
		studentFrName      TEXT NOT NULL,
		date               TEXT NOT NULL,
		class              TEXT NOT NULL,
		subject            TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		totalmarks         INTEGER NOT NULL,
		obtainedmarks      INTEGER NOT NULL,
		obtainedpercentage INTEGER NOT NULL,
		remarks            TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS feerecords (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		studentID     INTEGER NOT NULL,
		studentName   TEXT NOT NULL,
		studentFrName TEXT NOT NULL,
		date          TEXT NOT NULL,
		feefor        TEXT NOT NULL,
		depositedfee  INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS systemsettings (
		id              INTEGER PRIMARY KEY CHECK (id = 1),
		institutionname TEXT NOT NULL,
		nameinheader    TEXT NOT NULL DEFAULT 'true',
		logoinheader    TEXT NOT NULL DEFAULT 'true',
		pngURL          TEXT NOT NULL,
		jpgURL          TEXT NOT NULL,
		icoURL          TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_testrecords_student ON testrecords(studentID)`,
	`CREATE INDEX IF NOT EXISTS idx_feerecords_student ON feerecords(studentID)`,
}

func seedSystemSettings(db *sql.DB) error {
	_, err := db.Exec(
		`INSERT OR IGNORE INTO systemsettings (id, institutionname, nameinheader, logoinheader, pngURL, jpgURL, icoURL)
		 VALUES (1, 'Student Record System', 'true', 'true', :png, :jpg, :ico)`,
		sql.Named("png", assets.DefaultLogoPNG),
		sql.Named("jpg", assets.DefaultLogoJPG),
		sql.Named("ico", assets.DefaultLogoICO),
	)
	if err != nil {
		log.Printf("Failed to seed system settings: %v", err)
		return err
	}
	return nil
}

// seedRootAdmin creates the initial root account on an empty admins table so
// a fresh install can be logged into. The password must be changed afterward.
func seedRootAdmin(db *sql.DB) error {
	var count int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO admins (username, firstname, lastname, password, role, contact, imgURL)
		 VALUES ('admin', 'System', 'Administrator', :password, 'root', '', :imgURL)`,
		sql.Named("password", string(hash)),
		sql.Named("imgURL", assets.DefaultProfileImage),
	)
	if err != nil {
		log.Printf("Failed to seed root admin: %v", err)
		return err
	}
	log.Println("Seeded bootstrap root administrator (username: admin)")
	return nil
}
