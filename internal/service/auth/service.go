// Package auth is a deliberate mock. It derives the role from the email
// text, accepts any password, and issues a token nothing ever verifies.
// It exists so the dashboard has a login flow, not to secure anything.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"projectboard/internal/model"
	"projectboard/pkg/rbac"
)

// SessionTTL is the fixed cookie lifetime. Sessions are never refreshed
// or revoked.
const SessionTTL = 7 * 24 * time.Hour

// ErrInvalidInput is returned when email or password is missing.
var ErrInvalidInput = errors.New("invalid login input")

type Service struct {
	secret string
}

func NewService(secret string) *Service {
	return &Service{secret: secret}
}

// DeriveRole maps an email to a role by substring match. Any password
// authenticates any email that parses.
func DeriveRole(email string) string {
	switch {
	case strings.Contains(email, "admin"):
		return rbac.RoleAdmin
	case strings.Contains(email, "manager"):
		return rbac.RoleProjectManager
	default:
		return rbac.RoleDeveloper
	}
}

// Login validates presence of both fields, derives the role, and signs
// a bearer token carrying role and timestamps. The token is set as a
// cookie by the handler and never checked again server-side.
func (s *Service) Login(email, password string) (*model.Session, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	role := DeriveRole(email)
	now := time.Now()
	expiresAt := now.Add(SessionTTL)

	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	return &model.Session{
		Token:     token,
		Email:     email,
		Role:      role,
		ExpiresAt: expiresAt,
	}, nil
}

// RoleFromToken extracts the role claim without verifying the
// signature. Validity is never actually checked anywhere; this only
// feeds request logging.
func RoleFromToken(token string) (string, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "", false
	}
	role, ok := claims["role"].(string)
	return role, ok
}
