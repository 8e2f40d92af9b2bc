package models

// Session is the fixed-shape record carried by an authenticated session.
// It is constructed only by the login step and these are the only fields
// handlers may rely on without re-querying the store.
type Session struct {
	AdminID   int64  `json:"adminID"`
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Role      Role   `json:"role"`
}

// Elevated reports whether the session belongs to a root administrator.
func (s *Session) Elevated() bool {
	return s != nil && s.Role.Elevated()
}
