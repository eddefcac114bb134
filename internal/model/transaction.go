package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction is a single bank transaction row. Amount is signed:
// negative for expenses, positive for income.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	Description string
	Category    string
	AccountID   string
	Hash        string
	Amount      float64
}

// Ref implements Entity.
func (t *Transaction) Ref() EntityRef {
	return EntityRef{Type: EntityTransaction, ID: t.ID}
}

// GenerateHash creates a stable hash for duplicate detection on import.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
