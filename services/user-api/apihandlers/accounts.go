package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddAccountsAPI(rg *gin.RouterGroup) {
	rg.GET("/ngos", h.getNGOs)
	rg.GET("/users/:id", h.getUserDetails)
}

// getNGOs lists verified NGO accounts for the public donation page.
func (h *HttpEndpoints) getNGOs(c *gin.Context) {
	ngos, err := h.accountDBConn.GetNGOs()
	if err != nil {
		slog.Error("failed to fetch NGO list", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"ngos":    ngos,
	})
}

func (h *HttpEndpoints) getUserDetails(c *gin.Context) {
	accountID := c.Param("id")

	account, err := h.accountDBConn.GetAccountByID(accountID)
	if err != nil {
		slog.Warn("account not found", slog.String("accountID", accountID), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    account.Projection(),
	})
}
