package model

// Identity is the authenticated caller, rebuilt from a verified token for
// the lifetime of one request.
type Identity struct {
	UserID int    `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IdentityOf builds the identity a token for u should carry.
func IdentityOf(u *User) Identity {
	return Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}
