package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwthandling "github.com/0himanshu3/CiviK-Link/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

func testRouter(signKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", GetAndValidateUserJWT(signKey), func(c *gin.Context) {
		token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
		c.JSON(http.StatusOK, gin.H{"subject": token.Subject, "role": token.Role})
	})
	return router
}

func TestGetAndValidateUserJWT(t *testing.T) {
	router := testRouter("test-key")

	t.Run("without token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("with token cookie", func(t *testing.T) {
		token, err := jwthandling.GenerateNewUserToken(time.Hour, "acc-1", "User", "test-key")
		if err != nil {
			t.Fatal(err)
		}

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: jwthandling.SESSION_COOKIE_NAME, Value: token})
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("unexpected status: %d (%s)", w.Code, w.Body.String())
		}
	})

	t.Run("with bearer header", func(t *testing.T) {
		token, err := jwthandling.GenerateNewUserToken(time.Hour, "acc-1", "User", "test-key")
		if err != nil {
			t.Fatal(err)
		}

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("with tampered token", func(t *testing.T) {
		token, err := jwthandling.GenerateNewUserToken(time.Hour, "acc-1", "User", "other-key")
		if err != nil {
			t.Fatal(err)
		}

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: jwthandling.SESSION_COOKIE_NAME, Value: token})
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}

func TestHasValidAPIKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/send", HasValidAPIKey([]string{"key-1", "key-2"}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	t.Run("with valid key", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/send", nil)
		req.Header.Set("Api-Key", "key-2")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("with wrong key", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/send", nil)
		req.Header.Set("Api-Key", "key-3")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}
