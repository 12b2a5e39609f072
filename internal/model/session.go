package model

import "time"

// Session is what the mock login issues. The token is set as a cookie and
// echoed in the response body; nothing ever validates it server-side.
type Session struct {
	Token     string
	Email     string
	Role      string
	ExpiresAt time.Time
}

type User struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
