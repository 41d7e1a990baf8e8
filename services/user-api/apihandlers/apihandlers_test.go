package apihandlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jwthandling "github.com/0himanshu3/CiviK-Link/pkg/jwt-handling"
	userTypes "github.com/0himanshu3/CiviK-Link/pkg/user-management/types"
	"github.com/gin-gonic/gin"
)

func testEndpoints() *HttpEndpoints {
	return NewHTTPHandler(
		"test-key",
		time.Hour,
		nil,
		"admin@civik-link.example.com",
		"admin-secret-pw",
		"https://civik-link.example.com",
		false,
		100,
	)
}

func testAuthRouter(h *HttpEndpoints) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	v1 := router.Group("/v1")
	h.AddUserAuthAPI(v1)
	return router
}

func postJSON(router *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestParseOtpCode(t *testing.T) {
	t.Run("as number", func(t *testing.T) {
		code, err := parseOtpCode(float64(12345))
		if err != nil || code != 12345 {
			t.Errorf("unexpected result: %d, %v", code, err)
		}
	})

	t.Run("as string", func(t *testing.T) {
		code, err := parseOtpCode("54321")
		if err != nil || code != 54321 {
			t.Errorf("unexpected result: %d, %v", code, err)
		}
	})

	t.Run("garbage string", func(t *testing.T) {
		if _, err := parseOtpCode("not-a-code"); err == nil {
			t.Error("should fail")
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := parseOtpCode(nil); err == nil {
			t.Error("should fail")
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		if _, err := parseOtpCode([]interface{}{1}); err == nil {
			t.Error("should fail")
		}
	})
}

func TestAdminCredentialChecks(t *testing.T) {
	h := testEndpoints()

	if !h.isAdminEmail("admin@civik-link.example.com") {
		t.Error("should recognize the configured admin email")
	}
	if h.isAdminEmail("other@civik-link.example.com") {
		t.Error("should reject other emails")
	}
	if !h.isAdminPassword("admin-secret-pw") {
		t.Error("should accept the configured admin password")
	}
	if h.isAdminPassword("wrong") {
		t.Error("should reject a wrong password")
	}

	unconfigured := NewHTTPHandler("test-key", time.Hour, nil, "", "", "", false, 100)
	if unconfigured.isAdminEmail("") {
		t.Error("empty config must disable the admin login path")
	}
}

func TestRegisterValidation(t *testing.T) {
	router := testAuthRouter(testEndpoints())

	t.Run("missing fields", func(t *testing.T) {
		w := postJSON(router, "/v1/auth/register", `{"email": "p1@example.com"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		w := postJSON(router, "/v1/auth/register", `{"name": "P", "email": "not-an-email", "password": "superSecret1", "role": "User", "location": "Pune"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("password too short", func(t *testing.T) {
		w := postJSON(router, "/v1/auth/register", `{"name": "P", "email": "p1@example.com", "password": "short", "role": "User", "location": "Pune"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		w := postJSON(router, "/v1/auth/register", `{"name": "P", "email": "p1@example.com", "password": "superSecret1", "role": "Overlord", "location": "Pune"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("NGO without interests", func(t *testing.T) {
		w := postJSON(router, "/v1/auth/register", `{"name": "Helpers", "email": "ngo@example.com", "password": "superSecret1", "role": "NGO", "location": "Pune"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("NGO with unknown interest", func(t *testing.T) {
		w := postJSON(router, "/v1/auth/register", `{"name": "Helpers", "email": "ngo@example.com", "password": "superSecret1", "role": "NGO", "location": "Pune", "interests": ["Space"]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/v1/auth/register", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}

func TestAdminLoginFlow(t *testing.T) {
	h := testEndpoints()
	router := testAuthRouter(h)

	w := postJSON(router, "/v1/auth/login", `{"email": "admin@civik-link.example.com", "password": "admin-secret-pw"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool                  `json:"success"`
		User    userTypes.AccountInfo `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.User.ID != userTypes.ADMIN_SUBJECT || resp.User.Role != userTypes.ROLE_ADMIN {
		t.Errorf("unexpected response: %s", w.Body.String())
	}

	cookies := w.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == jwthandling.SESSION_COOKIE_NAME {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("session cookie not set")
	}
	if !sessionCookie.HttpOnly {
		t.Error("session cookie must be http only")
	}
	if sessionCookie.SameSite != http.SameSiteStrictMode {
		t.Error("session cookie must be same-site strict")
	}
	if sessionCookie.MaxAge != int(time.Hour.Seconds()) {
		t.Errorf("unexpected cookie max age: %d", sessionCookie.MaxAge)
	}

	// the issued token identifies the synthetic admin principal
	claims, valid, err := jwthandling.ValidateUserToken(sessionCookie.Value, "test-key")
	if err != nil || !valid {
		t.Fatalf("session cookie does not hold a valid token: %v", err)
	}
	if claims.Subject != userTypes.ADMIN_SUBJECT || claims.Role != userTypes.ROLE_ADMIN {
		t.Errorf("unexpected claims: %s / %s", claims.Subject, claims.Role)
	}

	t.Run("me with admin session", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/v1/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: jwthandling.SESSION_COOKIE_NAME, Value: sessionCookie.Value})
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("unexpected status: %d (%s)", w.Code, w.Body.String())
		}
		var meResp struct {
			User userTypes.AccountInfo `json:"user"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &meResp); err != nil {
			t.Fatal(err)
		}
		if meResp.User.ID != userTypes.ADMIN_SUBJECT {
			t.Errorf("unexpected user: %s", w.Body.String())
		}
	})
}

func TestLoginValidation(t *testing.T) {
	router := testAuthRouter(testEndpoints())

	w := postJSON(router, "/v1/auth/login", `{"email": "p1@example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unexpected status: %d", w.Code)
	}
}

func TestLogout(t *testing.T) {
	router := testAuthRouter(testEndpoints())

	w := postJSON(router, "/v1/auth/logout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}

	cookies := w.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, cookie := range cookies {
		if cookie.Name == jwthandling.SESSION_COOKIE_NAME {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("logout must overwrite the session cookie")
	}
	if sessionCookie.Value != "" || sessionCookie.MaxAge >= 0 {
		t.Errorf("logout must clear the session cookie: value=%q maxAge=%d", sessionCookie.Value, sessionCookie.MaxAge)
	}

	t.Run("me without session", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/v1/auth/me", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}
