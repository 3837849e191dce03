package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fairdice-backend/internal/models"
	"fairdice-backend/internal/services"
)

type AuthHandler struct {
	redisService *services.RedisService
	jwtService   *services.JWTService
}

func NewAuthHandler(redisService *services.RedisService, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{
		redisService: redisService,
		jwtService:   jwtService,
	}
}

// CreateSession issues a guest session with a fresh wallet. There is no
// account system here; a session token is the whole identity.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	userID := int64(uuid.New().ID())
	sessionID := uuid.New().String()

	session := &models.UserSession{
		ID:           userID,
		SessionID:    sessionID,
		CreatedAt:    time.Now(),
		LastAccessed: time.Now(),
	}

	if err := h.redisService.StoreUserSession(session, services.TTLUserSession); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	wallet, err := h.redisService.GetWallet(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wallet"})
		return
	}

	token, err := h.jwtService.GenerateToken(userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"user_id":    userID,
		"session_id": sessionID,
		"wallet": gin.H{
			"balance":     wallet.Balance,
			"client_seed": wallet.ClientSeed,
		},
	})
}
