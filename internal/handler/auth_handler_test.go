package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"projectboard/internal/service/auth"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(auth.NewService("test-secret"), zap.NewNop())
	r := gin.New()
	r.POST("/login", h.Login)
	return r
}

func TestLoginSetsSessionCookies(t *testing.T) {
	r := newAuthRouter()

	w := doJSON(t, r, http.MethodPost, "/login", `{"email":"admin@x.com","password":"anything"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	cookies := w.Result().Cookies()
	byName := map[string]*http.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}

	jwtCookie, ok := byName["jwt"]
	if !ok {
		t.Fatalf("jwt cookie not set")
	}
	roleCookie, ok := byName["userRole"]
	if !ok {
		t.Fatalf("userRole cookie not set")
	}

	if roleCookie.Value != "Admin" {
		t.Fatalf("expected Admin role cookie, got %q", roleCookie.Value)
	}
	for _, c := range []*http.Cookie{jwtCookie, roleCookie} {
		if !c.HttpOnly {
			t.Fatalf("cookie %s must be HttpOnly", c.Name)
		}
		if !c.Secure {
			t.Fatalf("cookie %s must be Secure", c.Name)
		}
		if c.MaxAge != 60*60*24*7 {
			t.Fatalf("cookie %s should expire in one week, got %d", c.Name, c.MaxAge)
		}
	}
}

func TestLoginResponseBody(t *testing.T) {
	r := newAuthRouter()

	w := doJSON(t, r, http.MethodPost, "/login", `{"email":"manager@x.com","password":"pw"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if body.Status != "success" || body.Message != "Successfully Logged In." {
		t.Fatalf("unexpected response: %+v", body)
	}
	if body.Token == "" {
		t.Fatalf("expected a token")
	}
	if body.User.Role != "ProjectManager" {
		t.Fatalf("expected ProjectManager, got %q", body.User.Role)
	}
}

func TestLoginRoleDerivation(t *testing.T) {
	r := newAuthRouter()

	cases := map[string]string{
		"admin@x.com":   "Admin",
		"manager@x.com": "ProjectManager",
		"dev@x.com":     "Developer",
	}
	for email, want := range cases {
		w := doJSON(t, r, http.MethodPost, "/login", `{"email":"`+email+`","password":"pw"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", email, w.Code)
		}
		var body struct {
			User struct {
				Role string `json:"role"`
			} `json:"user"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: unexpected body: %v", email, err)
		}
		if body.User.Role != want {
			t.Fatalf("%s: expected %s, got %s", email, want, body.User.Role)
		}
	}
}

func TestLoginValidation(t *testing.T) {
	r := newAuthRouter()

	for _, body := range []string{
		`{"email":"","password":"pw"}`,
		`{"email":"admin@x.com","password":""}`,
		`{"email":"not-an-email","password":"pw"}`,
		`{}`,
	} {
		w := doJSON(t, r, http.MethodPost, "/login", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}

		var resp struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("body %s: unexpected response: %v", body, err)
		}
		if resp.Status != "validationError" {
			t.Fatalf("body %s: expected validationError, got %q", body, resp.Status)
		}

		if len(w.Result().Cookies()) != 0 {
			t.Fatalf("body %s: cookies must not be set on failure", body)
		}
	}
}
