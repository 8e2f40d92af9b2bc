package models

// TestRecord is one test result for a student. StudentName, StudentFrName and
// Class are denormalized snapshots taken when the record is written; they are
// not kept in sync with later edits to the student.
type TestRecord struct {
	ID                 int64  `json:"id"`
	StudentID          int64  `json:"studentID"`
	StudentName        string `json:"studentName"`
	StudentFrName      string `json:"studentFrName"`
	Date               string `json:"date"`
	Class              string `json:"class"`
	Subject            string `json:"subject"`
	Description        string `json:"description"`
	TotalMarks         int64  `json:"totalmarks"`
	ObtainedMarks      int64  `json:"obtainedmarks"`
	ObtainedPercentage int64  `json:"obtainedpercentage"`
	Remarks            string `json:"remarks"`
}

// FeeRecord is one fee deposit for a student, with the same snapshot-at-write
// policy for the student fields.
type FeeRecord struct {
	ID            int64  `json:"id"`
	StudentID     int64  `json:"studentID"`
	StudentName   string `json:"studentName"`
	StudentFrName string `json:"studentFrName"`
	Date          string `json:"date"`
	FeeFor        string `json:"feefor"`
	DepositedFee  int64  `json:"depositedfee"`
}

// ObtainedPercentage computes the integer percentage stored on a test record,
// truncated toward zero.
func ObtainedPercentage(obtained, total int64) int64 {
	if total == 0 {
		return 0
	}
	return obtained * 100 / total
}
