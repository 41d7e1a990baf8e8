package apihandlers

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	jwthandling "github.com/0himanshu3/CiviK-Link/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) setSessionCookie(c *gin.Context, token string) {
	cookie := jwthandling.NewSessionCookie(h.tokenExpiresIn, h.useSecureCookies)
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cookie.Name, token, cookie.MaxAge, cookie.Path, "", cookie.Secure, cookie.HttpOnly)
}

func (h *HttpEndpoints) clearSessionCookie(c *gin.Context) {
	cookie := jwthandling.NewSessionCookie(h.tokenExpiresIn, h.useSecureCookies).Cleared()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cookie.Name, "", cookie.MaxAge, cookie.Path, "", cookie.Secure, cookie.HttpOnly)
}

// parseOtpCode accepts the verification code as JSON number or string, the
// clients are not consistent about it.
func parseOtpCode(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case string:
		code, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("cannot parse otp code: %s", v)
		}
		return code, nil
	case nil:
		return 0, errors.New("otp code missing")
	default:
		return 0, fmt.Errorf("unexpected otp code type: %T", raw)
	}
}

func randomWait(minTimeSec int, maxTimeSec int) {
	time.Sleep(time.Duration(rand.Intn(maxTimeSec-minTimeSec)+minTimeSec) * time.Second)
}
