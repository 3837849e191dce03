package services_test

import (
	"context"
	"errors"
	"testing"

	"fairdice-backend/internal/config"
	"fairdice-backend/internal/fair"
	"fairdice-backend/internal/models"
	"fairdice-backend/internal/services"
)

func setupTestRedis(t *testing.T) *services.RedisService {
	cfg := &config.Config{
		RedisURL:  "localhost:6379",
		RedisPass: "",
		RedisDB:   0,
	}

	redisService, err := services.NewRedisService(cfg)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return redisService
}

func newTestEngine(t *testing.T, chainSize int) (*services.BetEngine, *services.RedisService, fair.Chain) {
	redisService := setupTestRedis(t)

	chain, err := fair.Generate(chainSize)
	if err != nil {
		t.Fatalf("Failed to generate chain: %v", err)
	}

	dealer, err := fair.NewDealer(chain)
	if err != nil {
		t.Fatalf("Failed to create dealer: %v", err)
	}

	return services.NewBetEngine(dealer, redisService), redisService, chain
}

func TestBetEnginePlaceBet(t *testing.T) {
	engine, redisService, chain := newTestEngine(t, 10)
	defer redisService.Close()

	ctx := context.Background()
	userID := int64(424242)

	defer func() {
		redisService.DeleteWallet(userID)
		redisService.ClearBetRateLimit(userID)
	}()

	bet, err := engine.PlaceBet(ctx, userID, &models.BetRequest{
		Amount:     1000,
		Target:     50,
		Condition:  models.BetConditionOver,
		ClientSeed: "engine-test-seed",
	})
	if err != nil {
		t.Fatalf("Failed to place bet: %v", err)
	}

	if bet.SequenceNumber != 1 {
		t.Errorf("First bet should consume sequence 1, got %d", bet.SequenceNumber)
	}

	if bet.ServerSeed != chain[1] {
		t.Error("First bet should reveal chain[1]")
	}

	if bet.PreviousAnchor != chain[0] {
		t.Error("First bet's previous anchor should be the chain anchor")
	}

	if bet.Roll < 0 || bet.Roll > 100 {
		t.Errorf("Roll out of range: %v", bet.Roll)
	}

	// Every settled bet must verify against its own disclosed fields.
	result, err := engine.Verify(&models.VerifyRequest{
		PreviousAnchor: bet.PreviousAnchor,
		RevealedSeed:   bet.ServerSeed,
		ClientSeed:     bet.ClientSeed,
		SequenceNumber: bet.SequenceNumber,
		ReportedRoll:   bet.Roll,
	})
	if err != nil {
		t.Fatalf("Verification failed: %v", err)
	}
	if !result.MathValid || !result.ChainValid {
		t.Errorf("Bet should verify: math=%v chain=%v", result.MathValid, result.ChainValid)
	}

	wallet, err := redisService.GetWallet(userID)
	if err != nil {
		t.Fatalf("Failed to get wallet: %v", err)
	}

	if wallet.LockedBalance != 0 {
		t.Errorf("No balance should stay locked after settlement, got %f", wallet.LockedBalance)
	}

	expected := 10000 + bet.Profit
	if wallet.Balance != expected {
		t.Errorf("Expected balance %f, got %f", expected, wallet.Balance)
	}

	redisService.DeleteBetRecord(bet.ID)
}

func TestBetEngineRejectsInvalidBet(t *testing.T) {
	engine, redisService, _ := newTestEngine(t, 3)
	defer redisService.Close()

	ctx := context.Background()
	userID := int64(424243)

	defer func() {
		redisService.DeleteWallet(userID)
		redisService.ClearBetRateLimit(userID)
	}()

	cases := []*models.BetRequest{
		{Amount: 0, Target: 50, Condition: models.BetConditionOver},
		{Amount: -5, Target: 50, Condition: models.BetConditionUnder},
		{Amount: 100, Target: 50, Condition: "diagonal"},
		{Amount: 999999999, Target: 50, Condition: models.BetConditionOver},
	}

	for i, req := range cases {
		if _, err := engine.PlaceBet(ctx, userID, req); err == nil {
			t.Errorf("case %d: invalid bet was accepted", i)
		}
	}

	// Rejected bets must not have advanced the cursor.
	state, err := engine.State(userID)
	if err != nil {
		t.Fatalf("Failed to get state: %v", err)
	}
	if state.GameIndex != 1 {
		t.Errorf("Rejected bets advanced the cursor to %d", state.GameIndex)
	}
}

func TestBetEngineChainExhaustion(t *testing.T) {
	engine, redisService, _ := newTestEngine(t, 2)
	defer redisService.Close()

	ctx := context.Background()
	userID := int64(424244)

	defer func() {
		redisService.DeleteWallet(userID)
		redisService.ClearBetRateLimit(userID)
	}()

	req := &models.BetRequest{Amount: 100, Target: 50, Condition: models.BetConditionUnder}

	for i := 0; i < 2; i++ {
		bet, err := engine.PlaceBet(ctx, userID, req)
		if err != nil {
			t.Fatalf("Bet %d failed: %v", i+1, err)
		}
		redisService.DeleteBetRecord(bet.ID)
	}

	wallet, err := redisService.GetWallet(userID)
	if err != nil {
		t.Fatalf("Failed to get wallet: %v", err)
	}
	balanceBefore := wallet.Balance

	_, err = engine.PlaceBet(ctx, userID, req)
	if !errors.Is(err, fair.ErrChainExhausted) {
		t.Errorf("Expected ErrChainExhausted, got %v", err)
	}

	// The stake for the refused bet must come back in full.
	wallet, err = redisService.GetWallet(userID)
	if err != nil {
		t.Fatalf("Failed to get wallet: %v", err)
	}
	if wallet.Balance != balanceBefore {
		t.Errorf("Exhausted bet moved money: %f -> %f", balanceBefore, wallet.Balance)
	}
	if wallet.LockedBalance != 0 {
		t.Errorf("Exhausted bet left %f locked", wallet.LockedBalance)
	}
}
