package services

import (
	"context"
	"fmt"
	"time"

	"fairdice-backend/internal/fair"
	"fairdice-backend/internal/models"
)

// BetEngine glues the provably-fair dealer to the wallet ledger. The
// dealer decides rolls; the engine layers staking, payout math, and
// record keeping on top. Ordering matters: every check that can reject a
// bet runs before the dealer is touched, so a rejected bet never burns a
// seed, and a bet that did burn a seed is always settled and recorded.
type BetEngine struct {
	dealer       *fair.Dealer
	redisService *RedisService
	broadcaster  Broadcaster
}

func NewBetEngine(dealer *fair.Dealer, redisService *RedisService) *BetEngine {
	return &BetEngine{
		dealer:       dealer,
		redisService: redisService,
	}
}

// SetBroadcaster wires an optional live feed for settled bets.
func (e *BetEngine) SetBroadcaster(b Broadcaster) {
	e.broadcaster = b
}

func (e *BetEngine) PlaceBet(ctx context.Context, userID int64, req *models.BetRequest) (*models.BetRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bet: %v", err)
	}

	allowed, err := e.redisService.CheckRateLimit(userID, "bet", DefaultRateLimitBets, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %v", err)
	}
	if !allowed {
		return nil, fmt.Errorf("bet rate limit exceeded")
	}

	wallet, err := e.redisService.GetWallet(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %v", err)
	}

	clientSeed := req.ClientSeed
	if clientSeed == "" {
		clientSeed = wallet.ClientSeed
	} else if clientSeed != wallet.ClientSeed {
		if err := e.redisService.UpdateClientSeed(userID, clientSeed); err != nil {
			return nil, fmt.Errorf("failed to update client seed: %v", err)
		}
	}

	if wallet.Balance < req.Amount {
		return nil, fmt.Errorf("insufficient balance: have %.2f, need %.2f",
			wallet.Balance, req.Amount)
	}

	if err := e.redisService.LockBalanceForBet(userID, req.Amount); err != nil {
		return nil, fmt.Errorf("failed to lock balance: %v", err)
	}

	// Only now does the bet touch the chain. If consumption fails the
	// stake comes back untouched: no seed spent, no money moved.
	outcome, err := e.dealer.ConsumeNext(clientSeed)
	if err != nil {
		if refundErr := e.redisService.RefundBalance(userID, req.Amount); refundErr != nil {
			return nil, fmt.Errorf("bet failed (%v) and refund failed: %v", err, refundErr)
		}
		return nil, fmt.Errorf("failed to consume seed: %w", err)
	}

	multiplier := req.Multiplier()
	win := req.IsWin(outcome.Roll)

	profit := -req.Amount
	winnings := 0.0
	if win {
		winnings = req.Amount * (multiplier - 1)
		profit = winnings
	}

	if err := e.redisService.ReleaseBalanceFromBet(userID, req.Amount, win, winnings); err != nil {
		return nil, fmt.Errorf("seed %d consumed but settlement failed: %v", outcome.SequenceNumber, err)
	}

	bet := &models.BetRecord{
		ID:             models.GenerateBetID(),
		UserID:         userID,
		BetAmount:      req.Amount,
		Target:         req.Target,
		Condition:      req.Condition,
		Multiplier:     multiplier,
		SequenceNumber: outcome.SequenceNumber,
		ServerSeed:     outcome.ServerSeed,
		ClientSeed:     outcome.ClientSeed,
		PreviousAnchor: fair.HashSeed(outcome.ServerSeed),
		Roll:           outcome.Roll,
		Win:            win,
		Profit:         profit,
		CreatedAt:      time.Now(),
	}

	if err := e.redisService.SaveBetRecord(bet); err != nil {
		return nil, fmt.Errorf("failed to save bet record: %v", err)
	}

	e.recordTransaction(bet)

	if e.broadcaster != nil {
		e.broadcaster.BroadcastBetResult(bet)
		e.broadcaster.BroadcastAnchorUpdate(e.dealer.CurrentAnchor(), e.dealer.GameIndex())
	}

	return bet, nil
}

// State returns the public snapshot a client needs before betting: the
// balance, the anchor to check the next reveal against, and the sequence
// number the next bet will consume.
func (e *BetEngine) State(userID int64) (*models.StateResponse, error) {
	wallet, err := e.redisService.GetWallet(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %v", err)
	}

	return &models.StateResponse{
		Balance:        wallet.Balance,
		CurrentAnchor:  e.dealer.CurrentAnchor(),
		GameIndex:      e.dealer.GameIndex(),
		SeedsRemaining: e.dealer.Remaining(),
	}, nil
}

// Verify recomputes a bet from disclosed history. It runs the same pure
// check any client could run; nothing here reads the live cursor.
func (e *BetEngine) Verify(req *models.VerifyRequest) (fair.VerifyResult, error) {
	return fair.Verify(
		req.PreviousAnchor,
		req.RevealedSeed,
		req.ClientSeed,
		req.SequenceNumber,
		req.ReportedRoll,
	)
}

func (e *BetEngine) recordTransaction(bet *models.BetRecord) {
	txType := models.TransactionTypeBet
	description := fmt.Sprintf("Lost %s on roll %.2f %s %.0f",
		models.FormatCurrency(bet.BetAmount), bet.Roll, bet.Condition, bet.Target)

	if bet.Win {
		txType = models.TransactionTypeWin
		description = fmt.Sprintf("Won %s on roll %.2f %s %.0f (%.2fx)",
			models.FormatCurrency(bet.Profit), bet.Roll, bet.Condition, bet.Target, bet.Multiplier)
	}

	wallet, err := e.redisService.GetWallet(bet.UserID)
	if err != nil {
		return
	}

	tx := &models.Transaction{
		ID:            models.GenerateTransactionID(),
		UserID:        bet.UserID,
		Type:          txType,
		Amount:        bet.Profit,
		BalanceBefore: wallet.Balance - bet.Profit,
		BalanceAfter:  wallet.Balance,
		BetID:         bet.ID,
		Description:   description,
		CreatedAt:     time.Now(),
	}

	e.redisService.SaveTransaction(tx)
}
