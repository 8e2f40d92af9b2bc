package models

// Admin is an administrator account. Password holds the bcrypt hash and is
// never serialized.
type Admin struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Password  string `json:"-"`
	Role      Role   `json:"role"`
	Contact   string `json:"contact"`
	ImgURL    string `json:"imgURL"`
}
