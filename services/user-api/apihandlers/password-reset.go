package apihandlers

import (
	"log/slog"
	"net/http"
	"time"

	emailsending "github.com/0himanshu3/CiviK-Link/pkg/messaging/email-sending"
	"github.com/0himanshu3/CiviK-Link/pkg/user-management/pwhash"
	umUtils "github.com/0himanshu3/CiviK-Link/pkg/user-management/utils"
	"github.com/gin-gonic/gin"
)

const (
	PASSWORD_RESET_TOKEN_TTL = 15 * time.Minute
)

type ForgotPasswordReq struct {
	Email string `json:"email"`
}

func (h *HttpEndpoints) forgotPassword(c *gin.Context) {
	var req ForgotPasswordReq
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

	account, err := h.accountDBConn.GetVerifiedAccountByEmail(req.Email)
	if err != nil {
		slog.Warn("password reset for non-existing user", slog.String("email", req.Email), slog.String("error", err.Error()))
		randomWait(5, 10)
		c.JSON(http.StatusBadRequest, gin.H{"error": "no verified account for this email"})
		return
	}

	// only the hash is persisted, the unhashed secret goes into the email
	resetToken, tokenHash, err := umUtils.GenerateResetToken()
	if err != nil {
		slog.Error("failed to generate reset token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	expiresAt := umUtils.GetExpirationTime(PASSWORD_RESET_TOKEN_TTL).Unix()
	if err := h.accountDBConn.SetResetToken(account.ID.Hex(), tokenHash, expiresAt); err != nil {
		slog.Error("failed to store reset token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resetURL := h.frontendURL + "/password/reset/" + resetToken
	err = emailsending.SendEmail(
		[]string{account.Email},
		emailsending.SUBJECT_PASSWORD_RECOVERY,
		emailsending.ForgotPasswordEmailContent(resetURL, int(PASSWORD_RESET_TOKEN_TTL.Minutes())),
		true,
	)
	if err != nil {
		slog.Error("failed to send reset email", slog.String("subject", account.ID.Hex()), slog.String("error", err.Error()))

		// roll back, a token that never reached the user must not stay valid
		if err := h.accountDBConn.ClearResetToken(account.ID.Hex()); err != nil {
			slog.Error("failed to clear reset token", slog.String("subject", account.ID.Hex()), slog.String("error", err.Error()))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reset email could not be sent"})
		return
	}

	slog.Info("password reset initiated", slog.String("subject", account.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "email sent to " + account.Email,
	})
}

type ResetPasswordReq struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *HttpEndpoints) resetPassword(c *gin.Context) {
	tokenHash := umUtils.HashResetToken(c.Param("token"))

	var req ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accountDBConn.GetAccountByResetToken(tokenHash, time.Now())
	if err != nil {
		slog.Warn("password reset with unknown or expired token", slog.String("error", err.Error()))
		randomWait(5, 10)
		c.JSON(http.StatusBadRequest, gin.H{"error": "reset token is invalid or has expired"})
		return
	}

	if req.Password != req.ConfirmPassword {
		slog.Error("password confirmation mismatch", slog.String("subject", account.ID.Hex()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "passwords do not match"})
		return
	}

	if !umUtils.CheckPasswordFormat(req.Password) {
		slog.Error("invalid password format", slog.String("subject", account.ID.Hex()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be between 8 and 16 characters"})
		return
	}

	password, err := pwhash.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// single conditional update, a concurrent reset with the same token
	// cannot consume it twice
	account, err = h.accountDBConn.ConsumeResetToken(tokenHash, password, time.Now())
	if err != nil {
		slog.Warn("reset token already consumed or expired", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "reset token is invalid or has expired"})
		return
	}

	slog.Info("password reset successful", slog.String("subject", account.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "password reset successful",
	})
}
