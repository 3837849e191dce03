package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fairdice-backend/internal/services"
)

type UserHandler struct {
	redisService *services.RedisService
}

func NewUserHandler(redisService *services.RedisService) *UserHandler {
	return &UserHandler{
		redisService: redisService,
	}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID := c.GetInt64("user_id")
	sessionID := c.GetString("session_id")

	session, err := h.redisService.GetUserSession(userID, sessionID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired or invalid"})
		return
	}

	wallet, err := h.redisService.GetWallet(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": gin.H{
			"session_id":    session.SessionID,
			"created_at":    session.CreatedAt,
			"last_accessed": session.LastAccessed,
		},
		"wallet": gin.H{
			"balance":       wallet.Balance,
			"locked":        wallet.LockedBalance,
			"available":     wallet.Balance - wallet.LockedBalance,
			"total_wagered": wallet.TotalWagered,
			"total_won":     wallet.TotalWon,
			"client_seed":   wallet.ClientSeed,
		},
	})
}

func (h *UserHandler) GetTransactions(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	transactions, err := h.redisService.GetUserTransactions(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get transactions",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": transactions,
		"count":        len(transactions),
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	userID := c.GetInt64("user_id")
	sessionID := c.GetString("session_id")

	if err := h.redisService.DeleteUserSession(userID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
