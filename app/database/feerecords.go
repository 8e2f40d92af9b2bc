package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ahmednooor/SRS/app/models"
)

func feeRecordFromRow(row map[string]any) *models.FeeRecord {
	return &models.FeeRecord{
		ID:            rowInt64(row, "id"),
		StudentID:     rowInt64(row, "studentID"),
		StudentName:   rowString(row, "studentName"),
		StudentFrName: rowString(row, "studentFrName"),
		Date:          rowString(row, "date"),
		FeeFor:        rowString(row, "feefor"),
		DepositedFee:  rowInt64(row, "depositedfee"),
	}
}

// GetAllFeeRecords returns every fee record, newest first.
func GetAllFeeRecords(ctx context.Context, db *sql.DB) ([]*models.FeeRecord, error) {
	res, err := Execute(ctx, db, `SELECT * FROM feerecords ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	records := make([]*models.FeeRecord, 0, len(res.Rows))
	for _, row := range res.Rows {
		records = append(records, feeRecordFromRow(row))
	}
	return records, nil
}

// GetFeeRecordsByStudent returns the student's fee records, newest first.
func GetFeeRecordsByStudent(ctx context.Context, db *sql.DB, studentID int64) ([]*models.FeeRecord, error) {
	res, err := Execute(ctx, db,
		`SELECT * FROM feerecords WHERE studentID=:studentID ORDER BY id DESC`,
		sql.Named("studentID", studentID))
	if err != nil {
		return nil, err
	}
	records := make([]*models.FeeRecord, 0, len(res.Rows))
	for _, row := range res.Rows {
		records = append(records, feeRecordFromRow(row))
	}
	return records, nil
}

// GetFeeRecordByID returns the record or nil when no such row exists.
func GetFeeRecordByID(ctx context.Context, db *sql.DB, id int64) (*models.FeeRecord, error) {
	res, err := Execute(ctx, db, `SELECT * FROM feerecords WHERE id=:id`, sql.Named("id", id))
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, nil
	}
	return feeRecordFromRow(res.Rows[0]), nil
}

// CreateFeeRecord inserts a fee record for the given student with the
// name/father-name snapshot taken now, and returns the generated identity so
// the response can echo it for the receipt flow.
func CreateFeeRecord(ctx context.Context, db *sql.DB, student *models.Student, r *models.FeeRecord) (int64, error) {
	r.StudentID = student.ID
	r.StudentName = student.FirstName + " " + student.LastName
	r.StudentFrName = student.FatherName

	res, err := Execute(ctx, db,
		`INSERT INTO feerecords (studentID, studentName, studentFrName, date, feefor, depositedfee)
		 VALUES (:studentID, :studentName, :studentFrName, :date, :feefor, :depositedfee)`,
		sql.Named("studentID", r.StudentID),
		sql.Named("studentName", r.StudentName),
		sql.Named("studentFrName", r.StudentFrName),
		sql.Named("date", r.Date),
		sql.Named("feefor", r.FeeFor),
		sql.Named("depositedfee", r.DepositedFee),
	)
	if err != nil {
		return 0, err
	}
	r.ID = res.InsertID
	return res.InsertID, nil
}

// UpdateFeeRecord saves every editable field of the record as one logical
// operation in a single transaction.
func UpdateFeeRecord(ctx context.Context, db *sql.DB, r *models.FeeRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update fee record: %w", err)
	}
	defer tx.Rollback()

	updates := []struct {
		stmt string
		val  any
	}{
		{`UPDATE feerecords SET studentID=:val WHERE id=:id`, r.StudentID},
		{`UPDATE feerecords SET studentName=:val WHERE id=:id`, r.StudentName},
		{`UPDATE feerecords SET studentFrName=:val WHERE id=:id`, r.StudentFrName},
		{`UPDATE feerecords SET date=:val WHERE id=:id`, r.Date},
		{`UPDATE feerecords SET feefor=:val WHERE id=:id`, r.FeeFor},
		{`UPDATE feerecords SET depositedfee=:val WHERE id=:id`, r.DepositedFee},
	}
	for _, u := range updates {
		if _, err := Execute(ctx, tx, u.stmt, sql.Named("val", u.val), sql.Named("id", r.ID)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteFeeRecord removes one fee record.
func DeleteFeeRecord(ctx context.Context, db *sql.DB, id int64) error {
	_, err := Execute(ctx, db, `DELETE FROM feerecords WHERE id=:id`, sql.Named("id", id))
	return err
}
