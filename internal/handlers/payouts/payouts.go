package payouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/milistaderegalos/payouts/internal/domain"
	"github.com/milistaderegalos/payouts/internal/dto"
	"github.com/milistaderegalos/payouts/internal/service/payoutservice"
	"github.com/milistaderegalos/payouts/pkg/auth"
	"github.com/milistaderegalos/payouts/pkg/utils"
	"github.com/milistaderegalos/payouts/pkg/validate"
)

//go:generate mockgen -source=payouts.go -destination=payouts_mock.go -package=payouts

type Service interface {
	CreatePayoutRequest(ctx context.Context, userID int64, amount int64, account domain.BankAccount) (*domain.Payout, error)
	CancelPayout(ctx context.Context, userID, payoutID int64) error
	GetPayout(ctx context.Context, userID, payoutID int64) (*domain.Payout, error)
	GetHistory(ctx context.Context, userID int64, limit int) ([]domain.Payout, error)
	GetStatistics(ctx context.Context, from, to *time.Time) (*domain.PayoutStats, error)
	OnGatewaySuccess(ctx context.Context, payoutID int64, gatewayTransactionID string) error
	OnGatewayFailure(ctx context.Context, payoutID int64, reason string) error
	ProcessPending(ctx context.Context) error
}

type PayoutHandler struct {
	payoutService Service
	validator     *validator.Validate
}

func New(payoutService Service) *PayoutHandler {
	return &PayoutHandler{
		payoutService: payoutService,
		validator:     validator.New(),
	}
}

func toPayoutDTO(p *domain.Payout) dto.PayoutResponseDTO {
	return dto.PayoutResponseDTO{
		ID:                   p.ID,
		Amount:               p.Amount,
		Fee:                  p.Fee,
		NetAmount:            p.NetAmount,
		Status:               string(p.Status),
		GatewayTransactionID: p.GatewayTransactionID,
		CreatedAt:            p.CreatedAt,
		CompletedAt:          p.CompletedAt,
	}
}

// Create godoc
//
//	@Summary		Request a payout
//	@Description	Reserve funds from the available balance and queue a bank transfer to the given account.
//	@Tags			Payouts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PayoutRequestDTO	true	"Payout request payload"
//	@Success		201		{object}	dto.PayoutResponseDTO	"Created payout"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		402		{object}	utils.Response			"Insufficient balance"
//	@Failure		422		{object}	utils.Response			"Amount below minimum or invalid bank details"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/payouts [post]
func (h *PayoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	var req dto.PayoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if !validate.IsRUT(req.BankAccount.RUT) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid RUT")
		return
	}

	payout, err := h.payoutService.CreatePayoutRequest(r.Context(), userID, req.Amount, domain.BankAccount{
		BankName:      req.BankAccount.BankName,
		AccountType:   req.BankAccount.AccountType,
		AccountNumber: req.BankAccount.AccountNumber,
		HolderName:    req.BankAccount.HolderName,
		RUT:           req.BankAccount.RUT,
	})
	if err != nil {
		switch {
		case errors.Is(err, payoutservice.ErrBelowMinimum):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, payoutservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, payoutservice.ErrMissingBankAccount):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toPayoutDTO(payout))
}

// Cancel godoc
//
//	@Summary		Cancel a pending payout
//	@Description	Cancel a payout that has not started processing; the reserved funds return to the balance.
//	@Tags			Payouts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int				true	"Payout id"
//	@Success		200	{object}	utils.Response	"Payout cancelled"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Payout not found"
//	@Failure		409	{object}	utils.Response	"Payout is no longer pending"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payouts/{id} [delete]
func (h *PayoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	payoutID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payout id")
		return
	}

	err = h.payoutService.CancelPayout(r.Context(), userID, payoutID)
	if err != nil {
		switch {
		case errors.Is(err, payoutservice.ErrPayoutNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, payoutservice.ErrInvalidState):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "payout cancelled"})
}

// Get godoc
//
//	@Summary		Get one payout
//	@Tags			Payouts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int						true	"Payout id"
//	@Success		200	{object}	dto.PayoutResponseDTO	"Payout"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"Payout not found"
//	@Router			/api/user/payouts/{id} [get]
func (h *PayoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	payoutID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payout id")
		return
	}

	payout, err := h.payoutService.GetPayout(r.Context(), userID, payoutID)
	if err != nil {
		if errors.Is(err, payoutservice.ErrPayoutNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toPayoutDTO(payout))
}

// History godoc
//
//	@Summary		Get payout history
//	@Description	Payouts of the authenticated user, newest first.
//	@Tags			Payouts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int						false	"Page size"
//	@Success		200		{array}		dto.PayoutResponseDTO	"Payout history"
//	@Success		204		{object}	utils.Response			"No payouts"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/user/payouts [get]
func (h *PayoutHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	payouts, err := h.payoutService.GetHistory(r.Context(), userID, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch payouts")
		return
	}
	if len(payouts) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Payouts not found")
		return
	}

	response := make([]dto.PayoutResponseDTO, len(payouts))
	for i := range payouts {
		response[i] = toPayoutDTO(&payouts[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Stats godoc
//
//	@Summary		Payout statistics
//	@Description	Aggregate payout figures for operators, optionally bounded by from/to (RFC 3339).
//	@Tags			Internal
//	@Produce		json
//	@Param			from	query		string	false	"Range start"
//	@Param			to		query		string	false	"Range end"
//	@Success		200		{object}	dto.PayoutStatsResponseDTO	"Statistics"
//	@Failure		400		{object}	utils.Response				"Invalid range"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/internal/payouts/stats [get]
func (h *PayoutHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var from, to *time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
		from = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid to timestamp")
			return
		}
		to = &t
	}

	stats, err := h.payoutService.GetStatistics(r.Context(), from, to)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PayoutStatsResponseDTO{
		TotalPayouts:    stats.TotalPayouts,
		TotalAmount:     stats.TotalAmount,
		TotalFees:       stats.TotalFees,
		CompletedCount:  stats.CompletedCount,
		CompletedAmount: stats.CompletedAmount,
	})
}

// GatewayCallback godoc
//
//	@Summary		Gateway result callback
//	@Description	Settlement result pushed by the payment gateway for a processing payout.
//	@Tags			Internal
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.GatewayCallbackDTO	true	"Callback payload"
//	@Success		200		{object}	utils.Response			"Acknowledged"
//	@Failure		400		{object}	utils.Response			"Invalid payload"
//	@Failure		409		{object}	utils.Response			"Payout not in processing"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/internal/gateway/callback [post]
func (h *PayoutHandler) GatewayCallback(w http.ResponseWriter, r *http.Request) {
	var req dto.GatewayCallbackDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	var err error
	if req.Status == "settled" {
		err = h.payoutService.OnGatewaySuccess(r.Context(), req.PayoutID, req.TransactionID)
	} else {
		err = h.payoutService.OnGatewayFailure(r.Context(), req.PayoutID, req.Message)
	}
	if err != nil {
		switch {
		case errors.Is(err, payoutservice.ErrPayoutNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, payoutservice.ErrInvalidState):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "acknowledged"})
}

// ProcessPending godoc
//
//	@Summary		Trigger pending payout processing
//	@Description	Entry point for the external scheduler; advances every pending payout independently.
//	@Tags			Internal
//	@Produce		json
//	@Success		202	{object}	utils.Response	"Batch accepted"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/internal/payouts/process [post]
func (h *PayoutHandler) ProcessPending(w http.ResponseWriter, r *http.Request) {
	if err := h.payoutService.ProcessPending(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, utils.Response{Message: "batch processed"})
}
