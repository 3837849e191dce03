package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateBetID() string {
	return fmt.Sprintf("bet_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GenerateTransactionID() string {
	return fmt.Sprintf("tx_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GenerateClientSeed() (string, error) {
	bytes := make([]byte, 16) // 128 bits of entropy
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate client seed: %v", err)
	}
	return hex.EncodeToString(bytes), nil
}

func NewWallet(userID int64) (*Wallet, error) {
	clientSeed, err := GenerateClientSeed()
	if err != nil {
		return nil, err
	}

	return &Wallet{
		UserID:     userID,
		Balance:    10000, // $100.00 starting balance, in cents
		ClientSeed: clientSeed,
	}, nil
}

func FormatCurrency(cents float64) string {
	return fmt.Sprintf("$%.2f", cents/100)
}
