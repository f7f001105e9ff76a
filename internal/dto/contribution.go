package dto

type ContributionRequestDTO struct {
	ListID      int64  `json:"list_id" validate:"required,gt=0" example:"311"`
	OrderID     string `json:"order_id" validate:"required" example:"wc-98321"`
	OwnerUserID int64  `json:"owner_user_id" validate:"required,gt=0" example:"15"`
	GrossAmount int64  `json:"gross_amount" validate:"required,gt=0" example:"25000"`
}

type ContributionResponseDTO struct {
	EntryID     int64 `json:"entry_id" example:"42"`
	HostAmount  int64 `json:"host_amount" example:"25000"`
	PlatformFee int64 `json:"platform_fee" example:"2500"`
	Duplicate   bool  `json:"duplicate" example:"false"`
}
