package models

type Wallet struct {
	UserID        int64   `json:"user_id" redis:"user_id"`
	Balance       float64 `json:"balance" redis:"balance"`
	LockedBalance float64 `json:"locked_balance" redis:"locked_balance"`
	TotalWagered  float64 `json:"total_wagered" redis:"total_wagered"`
	TotalWon      float64 `json:"total_won" redis:"total_won"`

	// ClientSeed is the player's contribution to each roll. The sequence
	// number is NOT stored here: it is the dealer's chain cursor, shared
	// by all players and never client-chosen.
	ClientSeed string `json:"client_seed" redis:"client_seed"`
}