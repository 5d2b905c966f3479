package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Password bounds at signup. The minimum counts characters; the maximum counts
// bytes because bcrypt rejects longer input.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

// Account models a registered user of the board.
type Account struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsMember     bool      `json:"is_member"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role returns the token role for the account. Membership is not a role: it
// is re-read from storage on each request.
func (a *Account) Role() string {
	if a.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// AccountUpdate lists the mutable fields of an Account. Membership can only
// be granted, never revoked, so the field is a one-way flag.
type AccountUpdate struct {
	GrantMembership bool
}

// Viewer is the identity a request is evaluated under. An empty AccountID
// means the request is anonymous.
type Viewer struct {
	AccountID string
	SessionID string
}

// Anonymous reports whether the viewer has no authenticated account.
func (v Viewer) Anonymous() bool {
	return v.AccountID == ""
}

// Session is issued by a successful login.
type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
	Account   *Account
}
