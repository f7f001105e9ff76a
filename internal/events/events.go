package events

// Events consumed by the host's notification system. Delivery is
// fire-and-forget: a lost notification must never roll back the ledger or
// payout state that triggered it.

type Event interface {
	Name() string
}

type PayoutRequested struct {
	PayoutID int64
	UserID   int64
	Amount   int64
}

func (PayoutRequested) Name() string { return "payout_requested" }

type PayoutCompleted struct {
	PayoutID int64
	UserID   int64
}

func (PayoutCompleted) Name() string { return "payout_completed" }

type PayoutFailed struct {
	PayoutID int64
	UserID   int64
	Reason   string
}

func (PayoutFailed) Name() string { return "payout_failed" }

type PayoutCancelled struct {
	PayoutID int64
	UserID   int64
}

func (PayoutCancelled) Name() string { return "payout_cancelled" }

type ContributionReceived struct {
	ContributionID int64
	ListID         int64
	Amount         int64
}

func (ContributionReceived) Name() string { return "contribution_received" }
