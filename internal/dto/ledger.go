package dto

import "time"

type BalanceResponseDTO struct {
	Available int64 `json:"available" example:"150000"`
}

type LedgerEntryDTO struct {
	ID        int64             `json:"id" example:"42"`
	Kind      string            `json:"kind" example:"credit"`
	Amount    int64             `json:"amount" example:"25000"`
	Reason    string            `json:"reason" example:"contribution_received"`
	PayoutID  *int64            `json:"payout_id,omitempty" example:"7"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at" example:"2024-06-01T12:00:00Z"`
}

type LedgerHistoryResponseDTO struct {
	Entries []LedgerEntryDTO `json:"entries"`
	// NextBefore is the cursor for the next page, 0 when this is the last
	// page.
	NextBefore int64 `json:"next_before" example:"23"`
}
