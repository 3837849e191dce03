package models

import (
	"fmt"
	"time"
)

type BetCondition string

const (
	BetConditionOver  BetCondition = "over"
	BetConditionUnder BetCondition = "under"
)

type BetRequest struct {
	Amount     float64      `json:"amount" binding:"required"`
	Target     float64      `json:"target" binding:"required"`
	Condition  BetCondition `json:"condition" binding:"required"`
	ClientSeed string       `json:"client_seed"`
}

func (br *BetRequest) Validate() error {
	if br.Amount < 1 {
		return fmt.Errorf("bet amount must be at least 1 cent")
	}
	if br.Amount > 1000000 {
		return fmt.Errorf("maximum bet amount is 1000000 cents ($10000)")
	}

	switch br.Condition {
	case BetConditionOver:
		if br.Target < 1 || br.Target > 98 {
			return fmt.Errorf("target for over bets must be between 1 and 98")
		}
	case BetConditionUnder:
		if br.Target < 2 || br.Target > 99 {
			return fmt.Errorf("target for under bets must be between 2 and 99")
		}
	default:
		return fmt.Errorf("invalid bet condition: %s", br.Condition)
	}

	return nil
}

// Multiplier returns the fixed house-edge payout multiplier for this bet:
// 99/(100-target) for over, 99/target for under.
func (br *BetRequest) Multiplier() float64 {
	if br.Condition == BetConditionOver {
		return 99 / (100 - br.Target)
	}
	return 99 / br.Target
}

// IsWin applies the bet condition to a roll.
func (br *BetRequest) IsWin(roll float64) bool {
	if br.Condition == BetConditionOver {
		return roll > br.Target
	}
	return roll < br.Target
}

// BetRecord is the immutable record of a settled bet, including
// everything a client needs to verify it independently.
type BetRecord struct {
	ID     string `json:"id" redis:"id"`
	UserID int64  `json:"user_id" redis:"user_id"`

	BetAmount  float64      `json:"bet_amount" redis:"bet_amount"`
	Target     float64      `json:"target" redis:"target"`
	Condition  BetCondition `json:"condition" redis:"condition"`
	Multiplier float64      `json:"multiplier" redis:"multiplier"`

	SequenceNumber int64   `json:"sequence_number" redis:"sequence_number"`
	ServerSeed     string  `json:"server_seed" redis:"server_seed"`
	ClientSeed     string  `json:"client_seed" redis:"client_seed"`
	PreviousAnchor string  `json:"previous_anchor" redis:"previous_anchor"`
	Roll           float64 `json:"roll" redis:"roll"`

	Win    bool    `json:"win" redis:"win"`
	Profit float64 `json:"profit" redis:"profit"`

	CreatedAt time.Time `json:"created_at" redis:"created_at"`
}

type VerifyRequest struct {
	PreviousAnchor string  `json:"previous_anchor" binding:"required"`
	RevealedSeed   string  `json:"revealed_seed" binding:"required"`
	ClientSeed     string  `json:"client_seed"`
	SequenceNumber int64   `json:"sequence_number" binding:"required"`
	ReportedRoll   float64 `json:"reported_roll"`
}

// StateResponse is the public snapshot clients poll before betting: the
// current anchor to verify the next reveal against, and the sequence
// number the next bet will consume.
type StateResponse struct {
	Balance        float64 `json:"balance"`
	CurrentAnchor  string  `json:"current_anchor"`
	GameIndex      int64   `json:"game_index"`
	SeedsRemaining int64   `json:"seeds_remaining"`
}
