package apihandlers

import (
	"net/http"
	"time"

	accountDB "github.com/0himanshu3/CiviK-Link/pkg/db/account"
	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	accountDBConn         *accountDB.AccountDBService
	tokenSignKey          string
	tokenExpiresIn        time.Duration
	adminEmail            string
	adminPassword         string
	frontendURL           string
	useSecureCookies      bool
	maxNewUsersPer5Minute int
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	accountDBConn *accountDB.AccountDBService,
	adminEmail string,
	adminPassword string,
	frontendURL string,
	useSecureCookies bool,
	maxNewUsersPer5Minute int,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:          tokenSignKey,
		tokenExpiresIn:        tokenExpiresIn,
		accountDBConn:         accountDBConn,
		adminEmail:            adminEmail,
		adminPassword:         adminPassword,
		frontendURL:           frontendURL,
		useSecureCookies:      useSecureCookies,
		maxNewUsersPer5Minute: maxNewUsersPer5Minute,
	}
}
