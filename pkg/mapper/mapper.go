package mapper

import (
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/dto"
)

// MapAccountToRead maps a domain Account to a dto.AccountRead.
func MapAccountToRead(acc *account.Account) dto.AccountRead {
	return dto.AccountRead{
		Number:     acc.Number().String(),
		HolderName: acc.HolderName(),
		Type:       string(acc.Type()),
		Balance:    acc.Balance(),
		CreatedAt:  acc.CreatedAt(),
	}
}

// MapAccountsToRead keeps the order of accounts.
func MapAccountsToRead(accounts []*account.Account) []dto.AccountRead {
	out := make([]dto.AccountRead, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, MapAccountToRead(acc))
	}
	return out
}

// MapTransactionToRead maps a ledger entry to a dto.TransactionRead.
func MapTransactionToRead(tx account.Transaction) dto.TransactionRead {
	return dto.TransactionRead{
		ID:        tx.ID.String(),
		Kind:      string(tx.Kind),
		Amount:    tx.Amount,
		CreatedAt: tx.CreatedAt,
	}
}

// MapStatementToRead keeps the order of entries.
func MapStatementToRead(entries []account.Transaction) []dto.TransactionRead {
	out := make([]dto.TransactionRead, 0, len(entries))
	for _, tx := range entries {
		out = append(out, MapTransactionToRead(tx))
	}
	return out
}
