package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountOpen is the input for opening a new account.
// Type is matched case-insensitively against savings and checking.
type AccountOpen struct {
	HolderName     string          `json:"holder_name" validate:"required"`
	Type           string          `json:"type" validate:"required"`
	InitialDeposit decimal.Decimal `json:"initial_deposit"`
}

// AccountRead is a read view of an owned account.
type AccountRead struct {
	Number     string          `json:"number"`
	HolderName string          `json:"holder_name"`
	Type       string          `json:"type"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TransactionRead is one statement line.
type TransactionRead struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}
