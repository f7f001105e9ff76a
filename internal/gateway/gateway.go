package gateway

import (
	"errors"
	"fmt"

	"github.com/milistaderegalos/payouts/internal/domain"
)

// The settlement provider contract. The provider honours the idempotency
// key: two calls carrying the same key yield at most one transfer, which is
// what makes retries after a timeout safe.

type TransferRequest struct {
	// Amount is the net amount in minor units.
	Amount         int64
	Destination    domain.BankAccount
	IdempotencyKey string
}

type TransferResult struct {
	TransactionID string
	SettledAmount int64
}

type Status string

const (
	StatusSettled  Status = "settled"
	StatusRejected Status = "rejected"
	StatusPending  Status = "pending"
)

// TransferStatus is the provider's answer to a reconciliation lookup.
type TransferStatus struct {
	Status        Status
	TransactionID string
	Code          int
	Message       string
}

// RejectedError is a final decline. The payout must fail immediately and
// the ledger hold must be reversed; retrying would decline again.
type RejectedError struct {
	Code    int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("transfer rejected (code %d): %s", e.Code, e.Message)
}

// TransientError marks a failure worth retrying: network trouble, a
// timeout, or a provider code documented as retryable. The payout stays
// where it is until the next batch cycle or reconciliation.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient gateway error: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
