package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fairdice-backend/internal/fair"
	"fairdice-backend/internal/models"
	"fairdice-backend/internal/services"
)

type GameHandler struct {
	betEngine    *services.BetEngine
	redisService *services.RedisService
}

func NewGameHandler(betEngine *services.BetEngine, redisService *services.RedisService) *GameHandler {
	return &GameHandler{
		betEngine:    betEngine,
		redisService: redisService,
	}
}

func (h *GameHandler) PlaceBet(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	bet, err := h.betEngine.PlaceBet(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, fair.ErrChainExhausted) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Seed chain exhausted",
				"details": "no seeds remain on this chain; betting is closed until a new chain is provisioned",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to place bet",
			"details": err.Error(),
		})
		return
	}

	wallet, err := h.redisService.GetWallet(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"bet": gin.H{
			"id":              bet.ID,
			"sequence_number": bet.SequenceNumber,
			"server_seed":     bet.ServerSeed,
			"client_seed":     bet.ClientSeed,
			"previous_anchor": bet.PreviousAnchor,
			"roll":            bet.Roll,
			"target":          bet.Target,
			"condition":       bet.Condition,
			"win":             bet.Win,
			"multiplier":      bet.Multiplier,
			"profit":          bet.Profit,
			"new_balance":     wallet.Balance,
			"created_at":      bet.CreatedAt,
		},
	})
}

// GetState returns the public snapshot: balance, the current anchor, and
// the sequence number the next bet will use.
func (h *GameHandler) GetState(c *gin.Context) {
	userID := c.GetInt64("user_id")

	state, err := h.betEngine.State(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get state",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"state":   state,
	})
}

func (h *GameHandler) VerifyBet(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.betEngine.Verify(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Verification rejected",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"verification": gin.H{
			"math_valid":      result.MathValid,
			"chain_valid":     result.ChainValid,
			"valid":           result.Valid(),
			"revealed_seed":   req.RevealedSeed,
			"previous_anchor": req.PreviousAnchor,
			"sequence_number": req.SequenceNumber,
		},
	})
}

func (h *GameHandler) GetBetHistory(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	bets, err := h.redisService.GetBetHistory(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get bet history",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"bets":    bets,
		"count":   len(bets),
	})
}

func (h *GameHandler) GetBalance(c *gin.Context) {
	userID := c.GetInt64("user_id")

	wallet, err := h.redisService.GetWallet(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get wallet",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"balance": gin.H{
			"available":     wallet.Balance - wallet.LockedBalance,
			"locked":        wallet.LockedBalance,
			"total":         wallet.Balance,
			"total_wagered": wallet.TotalWagered,
			"total_won":     wallet.TotalWon,
			"client_seed":   wallet.ClientSeed,
		},
	})
}
