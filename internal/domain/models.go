package domain

import "time"

// Amounts are int64 minor units (CLP, so 1 unit = 1 peso). Money is never
// represented as a float.

type EntryKind string

const (
	Credit EntryKind = "credit"
	Debit  EntryKind = "debit"
)

type EntryReason string

const (
	ReasonContributionReceived EntryReason = "contribution_received"
	ReasonPayoutRequested      EntryReason = "payout_requested"
	ReasonPayoutCancelled      EntryReason = "payout_cancelled"
	ReasonPayoutFailed         EntryReason = "payout_failed"
	ReasonAdjustmentManual     EntryReason = "adjustment_manual"
)

// LedgerEntry is immutable once written. Corrections are new offsetting
// entries, never updates.
type LedgerEntry struct {
	ID        int64             `db:"id"`
	UserID    int64             `db:"user_id"`
	Kind      EntryKind         `db:"kind"`
	Amount    int64             `db:"amount"`
	Reason    EntryReason       `db:"reason"`
	PayoutID  *int64            `db:"payout_id"`
	Metadata  map[string]string `db:"metadata"`
	CreatedAt time.Time         `db:"created_at"`
}

type PayoutStatus string

const (
	PayoutPending    PayoutStatus = "pending"
	PayoutProcessing PayoutStatus = "processing"
	PayoutCompleted  PayoutStatus = "completed"
	PayoutCancelled  PayoutStatus = "cancelled"
	PayoutFailed     PayoutStatus = "failed"
)

// Terminal reports whether no further transition is allowed from s.
func (s PayoutStatus) Terminal() bool {
	switch s {
	case PayoutCompleted, PayoutCancelled, PayoutFailed:
		return true
	}
	return false
}

// BankAccount is the destination snapshot stored on the payout row at
// request time, so the audit trail survives later profile changes.
type BankAccount struct {
	BankName      string `json:"bank_name"`
	AccountType   string `json:"account_type"`
	AccountNumber string `json:"account_number"`
	HolderName    string `json:"holder_name"`
	RUT           string `json:"rut"`
}

func (b BankAccount) Empty() bool {
	return b.AccountNumber == ""
}

type Payout struct {
	ID                   int64        `db:"id"`
	UserID               int64        `db:"user_id"`
	Amount               int64        `db:"amount"`
	Fee                  int64        `db:"fee"`
	NetAmount            int64        `db:"net_amount"`
	Status               PayoutStatus `db:"status"`
	BankAccount          BankAccount  `db:"bank_account"`
	GatewayTransactionID string       `db:"gateway_transaction_id"`
	Attempts             int          `db:"attempts"`
	ManualReview         bool         `db:"manual_review"`
	FailureReason        string       `db:"failure_reason"`
	CreatedAt            time.Time    `db:"created_at"`
	UpdatedAt            time.Time    `db:"updated_at"`
	CompletedAt          *time.Time   `db:"completed_at"`
}

// PayoutStats is the aggregate reported to operators.
type PayoutStats struct {
	TotalPayouts    int64 `db:"total_payouts"`
	TotalAmount     int64 `db:"total_amount"`
	TotalFees       int64 `db:"total_fees"`
	CompletedCount  int64 `db:"completed_count"`
	CompletedAmount int64 `db:"completed_amount"`
}
