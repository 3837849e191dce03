package services

import "time"

const (
	KeyUserSession      = "user:%d:session:%s"
	KeyWallet           = "wallet:%d"
	KeyBetRecord        = "bet:%s"
	KeyUserBets         = "user:%d:bets"
	KeyTransaction      = "transaction:%s"
	KeyUserTransactions = "user:%d:transactions"
	KeyRateLimit        = "ratelimit:%d:%s"

	TTLUserSession = 24 * time.Hour
	TTLBetRecord   = 30 * 24 * time.Hour // 30 days
	TTLTransaction = 30 * 24 * time.Hour // 30 days

	DefaultRateLimitBets = 60 // Max 60 bets per minute
)
