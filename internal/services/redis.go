package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fairdice-backend/internal/config"
	"fairdice-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisService(cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisService{
		client: client,
		ctx:    ctx,
	}, nil
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

func (s *RedisService) StoreUserSession(session *models.UserSession, expiry time.Duration) error {
	key := fmt.Sprintf(KeyUserSession, session.ID, session.SessionID)

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(s.ctx, key, data, expiry).Err()
}

func (s *RedisService) GetUserSession(userID int64, sessionID string) (*models.UserSession, error) {
	key := fmt.Sprintf(KeyUserSession, userID, sessionID)

	data, err := s.client.Get(s.ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var session models.UserSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}

	session.LastAccessed = time.Now()
	updatedData, _ := json.Marshal(session)
	s.client.Set(s.ctx, key, updatedData, TTLUserSession)

	return &session, nil
}

func (s *RedisService) DeleteUserSession(userID int64, sessionID string) error {
	key := fmt.Sprintf(KeyUserSession, userID, sessionID)
	return s.client.Del(s.ctx, key).Err()
}

func (s *RedisService) GetWallet(userID int64) (*models.Wallet, error) {
	key := fmt.Sprintf(KeyWallet, userID)

	data, err := s.client.Get(s.ctx, key).Result()
	if err == redis.Nil {
		wallet, err := models.NewWallet(userID)
		if err != nil {
			return nil, err
		}

		if err := s.SaveWallet(wallet); err != nil {
			return nil, fmt.Errorf("failed to create wallet: %v", err)
		}
		return wallet, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %v", err)
	}

	var wallet models.Wallet
	if err := json.Unmarshal([]byte(data), &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %v", err)
	}

	return &wallet, nil
}

func (s *RedisService) SaveWallet(wallet *models.Wallet) error {
	key := fmt.Sprintf(KeyWallet, wallet.UserID)

	data, err := json.Marshal(wallet)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet: %v", err)
	}

	return s.client.Set(s.ctx, key, data, 0).Err()
}

func (s *RedisService) UpdateClientSeed(userID int64, clientSeed string) error {
	wallet, err := s.GetWallet(userID)
	if err != nil {
		return err
	}

	wallet.ClientSeed = clientSeed
	return s.SaveWallet(wallet)
}

var lockBalanceScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)

	if wallet.balance < amount then
		return redis.error_reply("insufficient balance")
	end

	wallet.balance = wallet.balance - amount
	wallet.locked_balance = wallet.locked_balance + amount
	wallet.total_wagered = wallet.total_wagered + amount

	local updated = cjson.encode(wallet)
	redis.call("SET", key, updated)

	return "OK"
`)

func (s *RedisService) LockBalanceForBet(userID int64, amount float64) error {
	key := fmt.Sprintf(KeyWallet, userID)
	return lockBalanceScript.Run(s.ctx, s.client, []string{key}, amount).Err()
}

var releaseBalanceScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])
	local won = ARGV[2] == "true"
	local winnings = tonumber(ARGV[3])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)

	wallet.locked_balance = wallet.locked_balance - amount
	if wallet.locked_balance < 0 then
		wallet.locked_balance = 0
	end

	if won then
		wallet.balance = wallet.balance + amount + winnings
		wallet.total_won = wallet.total_won + winnings
	end

	local updated = cjson.encode(wallet)
	redis.call("SET", key, updated)

	return "OK"
`)

// ReleaseBalanceFromBet settles a locked stake. On a win the stake comes
// back plus net winnings; on a loss the stake is simply forfeited.
func (s *RedisService) ReleaseBalanceFromBet(userID int64, amount float64, won bool, winnings float64) error {
	key := fmt.Sprintf(KeyWallet, userID)
	return releaseBalanceScript.Run(s.ctx, s.client, []string{key}, amount, won, winnings).Err()
}

var refundBalanceScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)

	wallet.locked_balance = wallet.locked_balance - amount
	if wallet.locked_balance < 0 then
		wallet.locked_balance = 0
	end
	wallet.balance = wallet.balance + amount
	wallet.total_wagered = wallet.total_wagered - amount

	local updated = cjson.encode(wallet)
	redis.call("SET", key, updated)

	return "OK"
`)

// RefundBalance returns a locked stake untouched, for bets that were
// debited but never consumed a seed (e.g. the chain ran out).
func (s *RedisService) RefundBalance(userID int64, amount float64) error {
	key := fmt.Sprintf(KeyWallet, userID)
	return refundBalanceScript.Run(s.ctx, s.client, []string{key}, amount).Err()
}

func (s *RedisService) SaveBetRecord(bet *models.BetRecord) error {
	betKey := fmt.Sprintf(KeyBetRecord, bet.ID)

	data, err := json.Marshal(bet)
	if err != nil {
		return fmt.Errorf("failed to marshal bet record: %v", err)
	}

	if err := s.client.Set(s.ctx, betKey, data, TTLBetRecord).Err(); err != nil {
		return fmt.Errorf("failed to save bet record: %v", err)
	}

	userBetsKey := fmt.Sprintf(KeyUserBets, bet.UserID)
	if err := s.client.ZAdd(s.ctx, userBetsKey, redis.Z{
		Score:  float64(bet.SequenceNumber),
		Member: bet.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add to user bets: %v", err)
	}

	// Keep only the last 100 bets per user
	s.client.ZRemRangeByRank(s.ctx, userBetsKey, 0, -101)

	return nil
}

func (s *RedisService) GetBetRecord(betID string) (*models.BetRecord, error) {
	key := fmt.Sprintf(KeyBetRecord, betID)

	data, err := s.client.Get(s.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("bet not found: %s", betID)
		}
		return nil, fmt.Errorf("failed to get bet record: %v", err)
	}

	var bet models.BetRecord
	if err := json.Unmarshal([]byte(data), &bet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bet record: %v", err)
	}

	return &bet, nil
}

func (s *RedisService) GetBetHistory(userID int64, limit int64) ([]*models.BetRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	userBetsKey := fmt.Sprintf(KeyUserBets, userID)

	betIDs, err := s.client.ZRevRange(s.ctx, userBetsKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bet IDs: %v", err)
	}

	var bets []*models.BetRecord
	for _, betID := range betIDs {
		bet, err := s.GetBetRecord(betID)
		if err != nil {
			continue
		}

		bets = append(bets, bet)
	}

	return bets, nil
}

func (s *RedisService) SaveTransaction(tx *models.Transaction) error {
	txKey := fmt.Sprintf(KeyTransaction, tx.ID)

	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %v", err)
	}

	if err := s.client.Set(s.ctx, txKey, data, TTLTransaction).Err(); err != nil {
		return fmt.Errorf("failed to save transaction: %v", err)
	}

	userTxKey := fmt.Sprintf(KeyUserTransactions, tx.UserID)
	score := float64(tx.CreatedAt.Unix())

	if err := s.client.ZAdd(s.ctx, userTxKey, redis.Z{
		Score:  score,
		Member: tx.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add to user transactions: %v", err)
	}

	// Keep only last 100 transactions
	s.client.ZRemRangeByRank(s.ctx, userTxKey, 0, -101)

	return nil
}

func (s *RedisService) GetUserTransactions(userID int64, limit int64) ([]*models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	userTxKey := fmt.Sprintf(KeyUserTransactions, userID)

	txIDs, err := s.client.ZRevRange(s.ctx, userTxKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction IDs: %v", err)
	}

	var transactions []*models.Transaction
	for _, txID := range txIDs {
		txKey := fmt.Sprintf(KeyTransaction, txID)

		data, err := s.client.Get(s.ctx, txKey).Result()
		if err != nil {
			continue
		}

		var tx models.Transaction
		if err := json.Unmarshal([]byte(data), &tx); err != nil {
			continue
		}

		transactions = append(transactions, &tx)
	}

	return transactions, nil
}

func (s *RedisService) CheckRateLimit(userID int64, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, userID, action)

	count, err := s.client.Incr(s.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %v", err)
	}

	if count == 1 {
		s.client.Expire(s.ctx, key, window)
	}

	return count <= int64(limit), nil
}

func (s *RedisService) DeleteWallet(userID int64) error {
	key := fmt.Sprintf(KeyWallet, userID)
	return s.client.Del(s.ctx, key).Err()
}

func (s *RedisService) DeleteBetRecord(betID string) error {
	key := fmt.Sprintf(KeyBetRecord, betID)
	return s.client.Del(s.ctx, key).Err()
}

func (s *RedisService) ClearBetRateLimit(userID int64) error {
	key := fmt.Sprintf(KeyRateLimit, userID, "bet")
	return s.client.Del(s.ctx, key).Err()
}
