package apihandlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sc "github.com/0himanshu3/CiviK-Link/pkg/smtp-client"
	"github.com/gin-gonic/gin"
)

func testBridgeRouter(t *testing.T) *gin.Engine {
	t.Helper()

	// no servers configured, sending always fails but validation and auth
	// can be exercised
	smtpClients, err := sc.NewSmtpClients(sc.SmtpServerList{})
	if err != nil {
		t.Fatal(err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHTTPHandler([]string{"bridge-key"}, smtpClients, smtpClients)
	h.AddRoutes(router.Group("/"))
	return router
}

func TestSendEmailEndpoint(t *testing.T) {
	router := testBridgeRouter(t)

	sendReq := func(apiKey string, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/send-email", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if apiKey != "" {
			req.Header.Set("Api-Key", apiKey)
		}
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("without api key", func(t *testing.T) {
		w := sendReq("", `{"to": ["p1@example.com"], "subject": "s", "content": "c"}`)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		w := sendReq("bridge-key", `{"to": ["p1@example.com"]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})

	t.Run("no smtp server available", func(t *testing.T) {
		w := sendReq("bridge-key", `{"to": ["p1@example.com"], "subject": "s", "content": "c"}`)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("unexpected status: %d", w.Code)
		}
	})
}
