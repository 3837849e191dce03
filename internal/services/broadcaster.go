package services

import "fairdice-backend/internal/models"

type Broadcaster interface {
	BroadcastBetResult(bet *models.BetRecord)
	BroadcastAnchorUpdate(anchor string, gameIndex int64)
}
