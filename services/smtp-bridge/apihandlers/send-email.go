package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/0himanshu3/CiviK-Link/pkg/apihelpers/middlewares"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddRoutes(rg *gin.RouterGroup) {
	rg.POST("/send-email",
		mw.HasValidAPIKey(h.apiKeys),
		mw.RequirePayload(),
		h.sendEmail)
}

type SendEmailReq struct {
	To       []string `json:"to"`
	Subject  string   `json:"subject"`
	Content  string   `json:"content"`
	HighPrio bool     `json:"highPrio"`
}

func (h *HttpEndpoints) sendEmail(c *gin.Context) {
	var req SendEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.To) < 1 || req.Subject == "" || req.Content == "" {
		slog.Error("missing required fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	clients := h.smtpClients
	if req.HighPrio {
		clients = h.highPrioSmtpClients
	}

	if err := clients.SendMail(req.To, req.Subject, req.Content); err != nil {
		slog.Error("failed to send email", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email sent"})
}
