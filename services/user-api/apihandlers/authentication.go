package apihandlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	mw "github.com/0himanshu3/CiviK-Link/pkg/apihelpers/middlewares"
	jwthandling "github.com/0himanshu3/CiviK-Link/pkg/jwt-handling"
	emailsending "github.com/0himanshu3/CiviK-Link/pkg/messaging/email-sending"
	"github.com/0himanshu3/CiviK-Link/pkg/user-management/pwhash"
	umUtils "github.com/0himanshu3/CiviK-Link/pkg/user-management/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	userTypes "github.com/0himanshu3/CiviK-Link/pkg/user-management/types"
)

const (
	loginFailedAttemptWindow = 5 * 60 // to count the login failures, seconds
	allowedPasswordAttempts  = 10

	signupRateLimitWindow = 5 * 60 // to count the new signups, seconds

	emailVerificationCodeTTL = 15 * time.Minute
)

func (h *HttpEndpoints) AddUserAuthAPI(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", mw.RequirePayload(), h.register)
		authGroup.POST("/verify-otp", mw.RequirePayload(), h.verifyOtp)
		authGroup.POST("/login", mw.RequirePayload(), h.login)
		authGroup.POST("/logout", h.logout)
		authGroup.GET("/me", mw.GetAndValidateUserJWT(h.tokenSignKey), h.getSelf)
		authGroup.POST("/password/forgot", mw.RequirePayload(), h.forgotPassword)
		authGroup.PUT("/password/reset/:token", mw.RequirePayload(), h.resetPassword)
	}
}

type RegisterReq struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      string      `json:"role"`
	Location  string      `json:"location"`
	Interests interface{} `json:"interests"`
}

func (h *HttpEndpoints) register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" || req.Location == "" {
		slog.Error("missing required fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	req.Email = umUtils.SanitizeEmail(req.Email)

	if !umUtils.CheckEmailFormat(req.Email) {
		slog.Error("invalid email format", slog.String("email", req.Email))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email format"})
		return
	}

	if !umUtils.CheckPasswordFormat(req.Password) {
		slog.Error("invalid password format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be between 8 and 16 characters"})
		return
	}

	if !userTypes.IsValidRole(req.Role) {
		slog.Error("invalid role", slog.String("role", req.Role))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	var interests []string
	if req.Role == userTypes.ROLE_NGO {
		var err error
		interests, err = umUtils.DecodeInterests(req.Interests)
		if err != nil || !userTypes.CheckInterests(interests) {
			slog.Error("invalid interests for NGO registration", slog.String("email", req.Email))
			c.JSON(http.StatusBadRequest, gin.H{"error": "NGO accounts must select at least one valid interest"})
			return
		}
	}

	// only verified accounts claim the email address
	exists, err := h.accountDBConn.HasVerifiedAccountWithEmail(req.Email)
	if err != nil {
		slog.Error("failed to look up email", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if exists {
		slog.Warn("registration attempt with existing email", slog.String("email", req.Email))
		c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
		return
	}

	// rate limit
	newUserCount, err := h.accountDBConn.CountRecentlyCreatedAccounts(signupRateLimitWindow)
	if err != nil {
		slog.Error("failed to count new users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if newUserCount >= int64(h.maxNewUsersPer5Minute) {
		slog.Warn("rate limit for new users reached")
		randomWait(5, 10)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "try again later"})
		return
	}

	password, err := pwhash.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	code, err := umUtils.GenerateVerificationCode()
	if err != nil {
		slog.Error("failed to generate verification code", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	newAccount := umUtils.InitNewAccount(
		req.Name,
		req.Email,
		password,
		req.Role,
		req.Location,
		interests,
		code,
		emailVerificationCodeTTL,
	)
	id, err := h.accountDBConn.CreateAccount(newAccount)
	if err != nil {
		slog.Error("failed to create new account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	err = emailsending.SendEmail(
		[]string{req.Email},
		emailsending.SUBJECT_EMAIL_VERIFICATION,
		emailsending.VerificationEmailContent(code, int(emailVerificationCodeTTL.Minutes())),
		true,
	)
	if err != nil {
		// the unverified account stays, a repeated registration creates a
		// fresh attempt with a new code
		slog.Error("failed to send verification email", slog.String("subject", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification email could not be sent"})
		return
	}

	slog.Info("registration started", slog.String("subject", id))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "verification code sent to " + req.Email,
	})
}

type VerifyOtpReq struct {
	Email string      `json:"email"`
	Otp   interface{} `json:"otp"`
}

func (h *HttpEndpoints) verifyOtp(c *gin.Context) {
	var req VerifyOtpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email == "" {
		slog.Error("missing required fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}
	req.Email = umUtils.SanitizeEmail(req.Email)

	code, err := parseOtpCode(req.Otp)
	if err != nil {
		slog.Error("invalid otp payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid OTP"})
		return
	}

	account, err := h.accountDBConn.GetLatestUnverifiedAccountByEmail(req.Email)
	if err != nil {
		slog.Warn("otp verification for unknown email", slog.String("email", req.Email), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not found or already verified"})
		return
	}

	// classify the failure before attempting the conditional update
	if account.PendingVerification == nil || account.PendingVerification.Code != code {
		slog.Warn("otp verification with wrong code", slog.String("subject", account.ID.Hex()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid OTP"})
		return
	}
	if umUtils.ReachedExpirationTime(time.Unix(account.PendingVerification.ExpiresAt, 0)) {
		slog.Warn("otp verification with expired code", slog.String("subject", account.ID.Hex()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "OTP expired"})
		return
	}

	account, err = h.accountDBConn.ConfirmAccount(account.ID.Hex(), code, time.Now())
	if err != nil {
		// lost the race against a concurrent confirmation or expiry
		slog.Warn("otp confirmation failed", slog.String("subject", account.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired OTP"})
		return
	}

	token, err := jwthandling.GenerateNewUserToken(
		h.tokenExpiresIn,
		account.ID.Hex(),
		account.Role,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	h.setSessionCookie(c, token)

	slog.Info("account verified", slog.String("subject", account.ID.Hex()))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "account verified",
		"user":    account.Projection(),
	})
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HttpEndpoints) login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email == "" || req.Password == "" {
		slog.Error("missing required fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	req.Email = umUtils.SanitizeEmail(req.Email)

	// the admin path never touches the account store, there is no account
	// document behind the configured credentials
	if h.isAdminEmail(req.Email) {
		if !h.isAdminPassword(req.Password) {
			slog.Warn("admin login attempt with wrong password")
			randomWait(5, 10)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}

		token, err := jwthandling.GenerateNewUserToken(
			h.tokenExpiresIn,
			userTypes.ADMIN_SUBJECT,
			userTypes.ROLE_ADMIN,
			h.tokenSignKey,
		)
		if err != nil {
			slog.Error("failed to generate token", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		h.setSessionCookie(c, token)

		slog.Info("admin login successful")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "logged in",
			"user":    userTypes.AdminAccountInfo(h.adminEmail),
		})
		return
	}

	account, err := h.accountDBConn.GetVerifiedAccountByEmail(req.Email)
	if err != nil {
		slog.Warn("login attempt with wrong email address", slog.String("email", req.Email), slog.String("error", err.Error()))
		randomWait(5, 10)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if umUtils.HasMoreAttemptsRecently(account.FailedLoginAttempts, allowedPasswordAttempts, loginFailedAttemptWindow) {
		slog.Warn("login attempt with too many failed attempts", slog.String("subject", account.ID.Hex()))
		if err := h.accountDBConn.SaveFailedLoginAttempt(account.ID.Hex()); err != nil {
			slog.Error("failed to save failed login attempt", slog.String("error", err.Error()))
		}
		randomWait(5, 10)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	match, err := pwhash.ComparePasswordWithHash(account.Password, req.Password)
	if err != nil || !match {
		if err == nil {
			err = errors.New("passwords do not match")
		}
		slog.Warn("login attempt with wrong password", slog.String("subject", account.ID.Hex()), slog.String("error", err.Error()))
		if err := h.accountDBConn.SaveFailedLoginAttempt(account.ID.Hex()); err != nil {
			slog.Error("failed to save failed login attempt", slog.String("error", err.Error()))
		}
		randomWait(5, 10)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := jwthandling.GenerateNewUserToken(
		h.tokenExpiresIn,
		account.ID.Hex(),
		account.Role,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// update timestamps and prune stale failure entries
	update := bson.M{"$set": bson.M{
		"timestamps.lastLogin": time.Now().Unix(),
		"failedLoginAttempts":  umUtils.RemoveAttemptsOlderThan(account.FailedLoginAttempts, 3600),
	}}
	if err := h.accountDBConn.UpdateAccount(account.ID.Hex(), update); err != nil {
		slog.Error("failed to update account", slog.String("error", err.Error()))
	}

	h.setSessionCookie(c, token)

	slog.Info("login successful", slog.String("subject", account.ID.Hex()))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "logged in",
		"user":    account.Projection(),
	})
}

// isAdminEmail decides whether a login request enters the admin path. Empty
// admin config disables the path entirely.
func (h *HttpEndpoints) isAdminEmail(email string) bool {
	if h.adminEmail == "" || h.adminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(email), []byte(h.adminEmail)) == 1
}

func (h *HttpEndpoints) isAdminPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(h.adminPassword)) == 1
}

func (h *HttpEndpoints) logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "logged out",
	})
}

func (h *HttpEndpoints) getSelf(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	if token.Subject == userTypes.ADMIN_SUBJECT {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    userTypes.AdminAccountInfo(h.adminEmail),
		})
		return
	}

	account, err := h.accountDBConn.GetAccountByID(token.Subject)
	if err != nil {
		slog.Warn("account behind valid token not found", slog.String("subject", token.Subject), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    account.Projection(),
	})
}
