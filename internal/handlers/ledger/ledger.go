package ledger

import (
	"context"
	"net/http"
	"strconv"

	"github.com/milistaderegalos/payouts/internal/domain"
	"github.com/milistaderegalos/payouts/internal/dto"
	"github.com/milistaderegalos/payouts/pkg/auth"
	"github.com/milistaderegalos/payouts/pkg/utils"
)

//go:generate mockgen -source=ledger.go -destination=ledger_mock.go -package=ledger

type Service interface {
	History(ctx context.Context, userID int64, limit int, beforeID int64) ([]domain.LedgerEntry, error)
}

type Balance interface {
	AvailableBalance(ctx context.Context, userID int64) (int64, error)
}

type LedgerHandler struct {
	ledgerService  Service
	balanceService Balance
}

func New(ledgerService Service, balanceService Balance) *LedgerHandler {
	return &LedgerHandler{
		ledgerService:  ledgerService,
		balanceService: balanceService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current available balance
//	@Description	Available balance derived from the ledger for the authenticated user.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Available balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	balance, err := h.balanceService.AvailableBalance(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Available: balance,
	})
}

// GetHistory godoc
//
//	@Summary		Get ledger history
//	@Description	Ledger entries for the authenticated user, newest first, paginated with the before cursor.
//	@Tags			Ledger
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			before	query		int	false	"Return entries with id below this cursor"
//	@Success		200		{object}	dto.LedgerHistoryResponseDTO	"Ledger entries"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/user/ledger [get]
func (h *LedgerHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	before, _ := strconv.ParseInt(r.URL.Query().Get("before"), 10, 64)

	entries, err := h.ledgerService.History(r.Context(), userID, limit, before)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ledger history")
		return
	}

	response := dto.LedgerHistoryResponseDTO{
		Entries: make([]dto.LedgerEntryDTO, len(entries)),
	}
	for i, e := range entries {
		response.Entries[i] = dto.LedgerEntryDTO{
			ID:        e.ID,
			Kind:      string(e.Kind),
			Amount:    e.Amount,
			Reason:    string(e.Reason),
			PayoutID:  e.PayoutID,
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt,
		}
	}
	if len(entries) > 0 {
		response.NextBefore = entries[len(entries)-1].ID
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
