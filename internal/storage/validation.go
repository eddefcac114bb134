// Package storage provides the SQLite persistence layer for the
// paperclip engine.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kiltahuone/paperclip/internal/common"
	"github.com/kiltahuone/paperclip/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRef ensures an entity ref has a known type and a non-empty id.
func validateRef(ref model.EntityRef, paramName string) error {
	if !ref.Type.Valid() {
		return fmt.Errorf("%w: %s has unknown type %q", common.ErrInvalidEntityRef, paramName, ref.Type)
	}
	if strings.TrimSpace(ref.ID) == "" {
		return fmt.Errorf("%w: %s has empty id", common.ErrInvalidEntityRef, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if txn.ID == "" {
			return fmt.Errorf("transaction at index %d: missing ID", i)
		}
		if txn.Date.IsZero() {
			return fmt.Errorf("transaction at index %d: missing date", i)
		}
	}
	return nil
}
