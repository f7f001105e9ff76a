package dto

import "time"

type BankAccountDTO struct {
	BankName      string `json:"bank_name" validate:"required" example:"Banco de Chile"`
	AccountType   string `json:"account_type" validate:"required,oneof=checking savings vista" example:"checking"`
	AccountNumber string `json:"account_number" validate:"required,numeric" example:"123456789"`
	HolderName    string `json:"holder_name" validate:"required" example:"María López"`
	RUT           string `json:"rut" validate:"required" example:"12.345.678-5"`
}

type PayoutRequestDTO struct {
	Amount      int64          `json:"amount" validate:"required,gt=0" example:"10000"`
	BankAccount BankAccountDTO `json:"bank_account" validate:"required"`
}

type PayoutResponseDTO struct {
	ID                   int64      `json:"id" example:"7"`
	Amount               int64      `json:"amount" example:"10000"`
	Fee                  int64      `json:"fee" example:"200"`
	NetAmount            int64      `json:"net_amount" example:"9800"`
	Status               string     `json:"status" example:"pending"`
	GatewayTransactionID string     `json:"gateway_transaction_id,omitempty" example:"trx_01HX"`
	CreatedAt            time.Time  `json:"created_at" example:"2024-06-01T12:00:00Z"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
}

type PayoutStatsResponseDTO struct {
	TotalPayouts    int64 `json:"total_payouts" example:"120"`
	TotalAmount     int64 `json:"total_amount" example:"3400000"`
	TotalFees       int64 `json:"total_fees" example:"68000"`
	CompletedCount  int64 `json:"completed_count" example:"95"`
	CompletedAmount int64 `json:"completed_amount" example:"2800000"`
}

type GatewayCallbackDTO struct {
	PayoutID      int64  `json:"payout_id" validate:"required,gt=0" example:"7"`
	Status        string `json:"status" validate:"required,oneof=settled rejected" example:"settled"`
	TransactionID string `json:"transaction_id" example:"trx_01HX"`
	Message       string `json:"message" example:""`
}
