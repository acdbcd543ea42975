package model

// Identity is the authenticated principal held in the session cookie for
// the lifetime of a login.  The role is fixed at login time; changing it
// requires a fresh authentication.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Anonymous reports whether the identity is the zero value, i.e. no user
// is logged in.
func (i Identity) Anonymous() bool { return i.ID == 0 && i.Email == "" }

// User is the full user record as served by /api/users/:id.  Identity is
// the slimmed-down session view of the same principal.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
