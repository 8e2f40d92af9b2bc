package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ahmednooor/SRS/app/models"
)

func studentFromRow(row map[string]any) *models.Student {
	return &models.Student{
		ID:            rowInt64(row, "id"),
		FirstName:     rowString(row, "firstname"),
		LastName:      rowString(row, "lastname"),
		FatherName:    rowString(row, "fathername"),
		Contact:       rowString(row, "contact"),
		Gender:        rowString(row, "gender"),
		DOB:           rowString(row, "dob"),
		Address:       rowString(row, "address"),
		Class:         rowString(row, "class"),
		AdmissionDate: rowString(row, "admissiondate"),
		MonthlyFee:    rowInt64(row, "monthlyfee"),
		Status:        models.StudentStatus(rowString(row, "status")),
		ImgURL:        rowString(row, "imgURL"),
	}
}

// GetStudentsByStatus returns students with the given status, sorted
// case-insensitively by first name for the listing pages.
func GetStudentsByStatus(ctx context.Context, db *sql.DB, status models.StudentStatus) ([]*models.Student, error) {
	res, err := Execute(ctx, db,
		`SELECT * FROM students WHERE status=:status ORDER BY LOWER(firstname)`,
		sql.Named("status", string(status)))
	if err != nil {
		return nil, err
	}
	students := make([]*models.Student, 0, len(res.Rows))
	for _, row := range res.Rows {
		students = append(students, studentFromRow(row))
	}
	return students, nil
}

// GetStudentByID returns the student or nil when no such row exists.
func GetStudentByID(ctx context.Context, db *sql.DB, id int64) (*models.Student, error) {
	res, err := Execute(ctx, db, `SELECT * FROM students WHERE id=:id`, sql.Named("id", id))
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, nil
	}
	return studentFromRow(res.Rows[0]), nil
}

// CreateStudent inserts the student and fills in the generated identity,
// which the caller consumes directly for the image attachment step.
func CreateStudent(ctx context.Context, db *sql.DB, s *models.Student) (int64, error) {
	res, err := Execute(ctx, db,
		`INSERT INTO students (firstname, lastname, fathername, contact, gender, dob, address, class, admissiondate, monthlyfee, status, imgURL)
		 VALUES (:firstname, :lastname, :fathername, :contact, :gender, :dob, :address, :class, :admissiondate, :monthlyfee, :status, :imgURL)`,
		sql.Named("firstname", s.FirstName),
		sql.Named("lastname", s.LastName),
		sql.Named("fathername", s.FatherName),
		sql.Named("contact", s.Contact),
		sql.Named("gender", s.Gender),
		sql.Named("dob", s.DOB),
		sql.Named("address", s.Address),
		sql.Named("class", s.Class),
		sql.Named("admissiondate", s.AdmissionDate),
		sql.Named("monthlyfee", s.MonthlyFee),
		sql.Named("status", string(s.Status)),
		sql.Named("imgURL", s.ImgURL),
	)
	if err != nil {
		return 0, err
	}
	s.ID = res.InsertID
	return res.InsertID, nil
}

// UpdateStudent saves the student's profile fields as one logical operation
// inside a single transaction: one outcome for the whole save, never a
// partially updated row.
func UpdateStudent(ctx context.Context, db *sql.DB, s *models.Student) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update student: %w", err)
	}
	defer tx.Rollback()

	updates := []struct {
		stmt string
		val  any
	}{
		{`UPDATE students SET firstname=:val WHERE id=:id`, s.FirstName},
		{`UPDATE students SET lastname=:val WHERE id=:id`, s.LastName},
		{`UPDATE students SET fathername=:val WHERE id=:id`, s.FatherName},
		{`UPDATE students SET contact=:val WHERE id=:id`, s.Contact},
		{`UPDATE students SET gender=:val WHERE id=:id`, s.Gender},
		{`UPDATE students SET dob=:val WHERE id=:id`, s.DOB},
		{`UPDATE students SET address=:val WHERE id=:id`, s.Address},
		{`UPDATE students SET class=:val WHERE id=:id`, s.Class},
		{`UPDATE students SET admissiondate=:val WHERE id=:id`, s.AdmissionDate},
		{`UPDATE students SET monthlyfee=:val WHERE id=:id`, s.MonthlyFee},
		{`UPDATE students SET status=:val WHERE id=:id`, string(s.Status)},
	}
	for _, u := range updates {
		if _, err := Execute(ctx, tx, u.stmt, sql.Named("val", u.val), sql.Named("id", s.ID)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpdateStudentImage stores the student's image URL.
func UpdateStudentImage(ctx context.Context, q Queryer, id int64, url string) error {
	_, err := Execute(ctx, q, `UPDATE students SET imgURL=:imgURL WHERE id=:id`,
		sql.Named("imgURL", url), sql.Named("id", id))
	return err
}

// DeleteStudent removes the student together with every test and fee record
// referencing it. The cascade is explicit and runs in one transaction; image
// cleanup is the caller's (best-effort) concern.
func DeleteStudent(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete student: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM students WHERE id=:id`,
		`DELETE FROM testrecords WHERE studentID=:id`,
		`DELETE FROM feerecords WHERE studentID=:id`,
	} {
		if _, err := Execute(ctx, tx, stmt, sql.Named("id", id)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CountStudentsByStatus returns the number of students with the given status.
func CountStudentsByStatus(ctx context.Context, db *sql.DB, status models.StudentStatus) (int64, error) {
	res, err := Execute(ctx, db, `SELECT COUNT(*) AS n FROM students WHERE status=:status`,
		sql.Named("status", string(status)))
	if err != nil {
		return 0, err
	}
	if len(res.Rows) == 0 {
		return 0, nil
	}
	return rowInt64(res.Rows[0], "n"), nil
}
