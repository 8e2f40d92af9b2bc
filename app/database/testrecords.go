package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ahmednooor/SRS/app/models"
)

func testRecordFromRow(row map[string]any) *models.TestRecord {
	return &models.TestRecord{
		ID:                 rowInt64(row, "id"),
		StudentID:          rowInt64(row, "studentID"),
		StudentName:        rowString(row, "studentName"),
		StudentFrName:      rowString(row, "studentFrName"),
		Date:               rowString(row, "date"),
		Class:              rowString(row, "class"),
		Subject:            rowString(row, "subject"),
		Description:        rowString(row, "description"),
		TotalMarks:         rowInt64(row, "totalmarks"),
		ObtainedMarks:      rowInt64(row, "obtainedmarks"),
		ObtainedPercentage: rowInt64(row, "obtainedpercentage"),
		Remarks:            rowString(row, "remarks"),
	}
}

// GetAllTestRecords returns every test record, newest first.
func GetAllTestRecords(ctx context.Context, db *sql.DB) ([]*models.TestRecord, error) {
	res, err := Execute(ctx, db, `SELECT * FROM testrecords ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	records := make([]*models.TestRecord, 0, len(res.Rows))
	for _, row := range res.Rows {
		records = append(records, testRecordFromRow(row))
	}
	return records, nil
}

// GetTestRecordsByStudent returns the student's test records, newest first.
func GetTestRecordsByStudent(ctx context.Context, db *sql.DB, studentID int64) ([]*models.TestRecord, error) {
	res, err := Execute(ctx, db,
		`SELECT * FROM testrecords WHERE studentID=:studentID ORDER BY id DESC`,
		sql.Named("studentID", studentID))
	if err != nil {
		return nil, err
	}
	records := make([]*models.TestRecord, 0, len(res.Rows))
	for _, row := range res.Rows {
		records = append(records, testRecordFromRow(row))
	}
	return records, nil
}

// GetTestRecordByID returns the record or nil when no such row exists.
func GetTestRecordByID(ctx context.Context, db *sql.DB, id int64) (*models.TestRecord, error) {
	res, err := Execute(ctx, db, `SELECT * FROM testrecords WHERE id=:id`, sql.Named("id", id))
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, nil
	}
	return testRecordFromRow(res.Rows[0]), nil
}

// CreateTestRecord inserts a test record for the given student, taking the
// denormalized name/father-name/class snapshot from the student row as it is
// now. The stored percentage is recomputed here, never on read.
func CreateTestRecord(ctx context.Context, db *sql.DB, student *models.Student, r *models.TestRecord) (int64, error) {
	r.StudentID = student.ID
	r.StudentName = student.FirstName + " " + student.LastName
	r.StudentFrName = student.FatherName
	r.Class = student.Class
	r.ObtainedPercentage = models.ObtainedPercentage(r.ObtainedMarks, r.TotalMarks)

	res, err := Execute(ctx, db,
		`INSERT INTO testrecords (studentID, studentName, studentFrName, date, class, subject, description, totalmarks, obtainedmarks, obtainedpercentage, remarks)
		 VALUES (:studentID, :studentName, :studentFrName, :date, :class, :subject, :description, :totalmarks, :obtainedmarks, :obtainedpercentage, :remarks)`,
		sql.Named("studentID", r.StudentID),
		sql.Named("studentName", r.StudentName),
		sql.Named("studentFrName", r.StudentFrName),
		sql.Named("date", r.Date),
		sql.Named("class", r.Class),
		sql.Named("subject", r.Subject),
		sql.Named("description", r.Description),
		sql.Named("totalmarks", r.TotalMarks),
		sql.Named("obtainedmarks", r.ObtainedMarks),
		sql.Named("obtainedpercentage", r.ObtainedPercentage),
		sql.Named("remarks", r.Remarks),
	)
	if err != nil {
		return 0, err
	}
	r.ID = res.InsertID
	return res.InsertID, nil
}

// UpdateTestRecord saves every editable field of the record as one logical
// operation in a single transaction, recomputing the stored percentage from
// the written marks.
func UpdateTestRecord(ctx context.Context, db *sql.DB, r *models.TestRecord) error {
	r.ObtainedPercentage = models.ObtainedPercentage(r.ObtainedMarks, r.TotalMarks)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update test record: %w", err)
	}
	defer tx.Rollback()

	updates := []struct {
		stmt string
		val  any
	}{
		{`UPDATE testrecords SET studentID=:val WHERE id=:id`, r.StudentID},
		{`UPDATE testrecords SET studentName=:val WHERE id=:id`, r.StudentName},
		{`UPDATE testrecords SET studentFrName=:val WHERE id=:id`, r.StudentFrName},
		{`UPDATE testrecords SET date=:val WHERE id=:id`, r.Date},
		{`UPDATE testrecords SET class=:val WHERE id=:id`, r.Class},
		{`UPDATE testrecords SET subject=:val WHERE id=:id`, r.Subject},
		{`UPDATE testrecords SET description=:val WHERE id=:id`, r.Description},
		{`UPDATE testrecords SET totalmarks=:val WHERE id=:id`, r.TotalMarks},
		{`UPDATE testrecords SET obtainedmarks=:val WHERE id=:id`, r.ObtainedMarks},
		{`UPDATE testrecords SET obtainedpercentage=:val WHERE id=:id`, r.ObtainedPercentage},
		{`UPDATE testrecords SET remarks=:val WHERE id=:id`, r.Remarks},
	}
	for _, u := range updates {
		if _, err := Execute(ctx, tx, u.stmt, sql.Named("val", u.val), sql.Named("id", r.ID)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteTestRecord removes one test record.
func DeleteTestRecord(ctx context.Context, db *sql.DB, id int64) error {
	_, err := Execute(ctx, db, `DELETE FROM testrecords WHERE id=:id`, sql.Named("id", id))
	return err
}
