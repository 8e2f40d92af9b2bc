package models

// Student is an enrolled (or previously enrolled) student. Status drives
// which listing page the student appears on.
type Student struct {
	ID            int64         `json:"id"`
	FirstName     string        `json:"firstname"`
	LastName      string        `json:"lastname"`
	FatherName    string        `json:"fathername"`
	Contact       string        `json:"contact"`
	Gender        string        `json:"gender"`
	DOB           string        `json:"dob"`
	Address       string        `json:"address"`
	Class         string        `json:"class"`
	AdmissionDate string        `json:"admissiondate"`
	MonthlyFee    int64         `json:"monthlyfee"`
	Status        StudentStatus `json:"status"`
	ImgURL        string        `json:"imgURL"`
}
