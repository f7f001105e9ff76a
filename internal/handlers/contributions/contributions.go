package contributions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/milistaderegalos/payouts/internal/dto"
	"github.com/milistaderegalos/payouts/internal/service/contributionservice"
	"github.com/milistaderegalos/payouts/pkg/utils"
)

//go:generate mockgen -source=contributions.go -destination=contributions_mock.go -package=contributions

type Service interface {
	RecordContribution(ctx context.Context, listID int64, orderID string, ownerUserID int64, gross int64) (*contributionservice.Contribution, error)
}

type ContributionHandler struct {
	contributionService Service
	validator           *validator.Validate
}

func New(contributionService Service) *ContributionHandler {
	return &ContributionHandler{
		contributionService: contributionService,
		validator:           validator.New(),
	}
}

// Record godoc
//
//	@Summary		Record a settled contribution
//	@Description	Called by the commerce settlement flow once per settled order; replays are answered idempotently.
//	@Tags			Internal
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ContributionRequestDTO	true	"Settled order payload"
//	@Success		201		{object}	dto.ContributionResponseDTO	"Contribution credited"
//	@Success		200		{object}	dto.ContributionResponseDTO	"Order already credited"
//	@Failure		400		{object}	utils.Response				"Invalid payload"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/internal/contributions [post]
func (h *ContributionHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.ContributionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	contribution, err := h.contributionService.RecordContribution(r.Context(), req.ListID, req.OrderID, req.OwnerUserID, req.GrossAmount)
	if err != nil {
		if errors.Is(err, contributionservice.ErrInvalidAmount) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := http.StatusCreated
	if contribution.Duplicate {
		status = http.StatusOK
	}
	utils.RespondWithJSON(w, status, dto.ContributionResponseDTO{
		EntryID:     contribution.Entry.ID,
		HostAmount:  contribution.HostAmount,
		PlatformFee: contribution.PlatformFee,
		Duplicate:   contribution.Duplicate,
	})
}
