package contributionservice

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/milistaderegalos/payouts/internal/config"
	"github.com/milistaderegalos/payouts/internal/domain"
	"github.com/milistaderegalos/payouts/internal/events"
)

//go:generate mockgen -source=contributionservice.go -destination=contributionservice_mock.go -package=contributionservice

type Ledger interface {
	Record(ctx context.Context, userID int64, kind domain.EntryKind, amount int64, reason domain.EntryReason, payoutID *int64, metadata map[string]string) (*domain.LedgerEntry, error)
	FindContributionByOrderID(ctx context.Context, orderID string) (*domain.LedgerEntry, error)
}

var ErrInvalidAmount = errors.New("contribution amount must be positive")

// Contribution is the result of recording one settled order: the credit to
// the list owner plus the platform's share, which is kept out of the
// ledger and reported back for the settlement record.
type Contribution struct {
	Entry       *domain.LedgerEntry
	HostAmount  int64
	PlatformFee int64
	Duplicate   bool
}

type Service struct {
	ledger        Ledger
	publisher     events.Publisher
	platformFeeBP int64
}

func New(ledger Ledger, publisher events.Publisher, cfg *config.Config) *Service {
	return &Service{
		ledger:        ledger,
		publisher:     publisher,
		platformFeeBP: cfg.PlatformFeeBP,
	}
}

// RecordContribution credits the gross amount to the list owner. Recording
// the same order twice is a no-op answered with the original entry: the
// store's uniqueness constraint on the order id is the final authority, so
// a webhook replay can never double-credit.
func (s *Service) RecordContribution(ctx context.Context, listID int64, orderID string, ownerUserID int64, gross int64) (*Contribution, error) {
	if gross <= 0 {
		return nil, ErrInvalidAmount
	}

	platformFee := domain.ApplyRate(gross, s.platformFeeBP)
	metadata := map[string]string{
		"order_id": orderID,
		"list_id":  strconv.FormatInt(listID, 10),
	}

	entry, err := s.ledger.Record(ctx, ownerUserID, domain.Credit, gross, domain.ReasonContributionReceived, nil, metadata)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			existing, findErr := s.ledger.FindContributionByOrderID(ctx, orderID)
			if findErr != nil {
				return nil, findErr
			}
			zap.L().Info("contribution already recorded", zap.String("orderID", orderID))
			return &Contribution{
				Entry:       existing,
				HostAmount:  gross,
				PlatformFee: platformFee,
				Duplicate:   true,
			}, nil
		}
		zap.L().Error("can't record contribution", zap.Error(err))
		return nil, err
	}

	s.publisher.Publish(ctx, events.ContributionReceived{
		ContributionID: entry.ID,
		ListID:         listID,
		Amount:         gross,
	})
	zap.L().Info("contribution recorded",
		zap.String("orderID", orderID),
		zap.Int64("listID", listID),
		zap.Int64("hostAmount", gross),
		zap.Int64("platformFee", platformFee),
	)
	return &Contribution{
		Entry:       entry,
		HostAmount:  gross,
		PlatformFee: platformFee,
	}, nil
}
