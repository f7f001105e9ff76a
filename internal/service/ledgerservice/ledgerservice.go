package ledgerservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/milistaderegalos/payouts/internal/domain"
)

//go:generate mockgen -source=ledgerservice.go -destination=ledgerservice_mock.go -package=ledgerservice

type Repo interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	SumByUser(ctx context.Context, userID int64) (int64, error)
	ListByUser(ctx context.Context, userID int64, limit int, beforeID int64) ([]domain.LedgerEntry, error)
	FindContributionByOrderID(ctx context.Context, orderID string) (*domain.LedgerEntry, error)
	AcquireUserLock(ctx context.Context, userID int64) error
}

// Invalidator drops a user's cached balance. Wired to the balance cache so
// a stale figure can never survive a ledger write.
type Invalidator interface {
	Invalidate(ctx context.Context, userID int64)
}

var ErrInvalidAmount = errors.New("amount must be positive")

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type Service struct {
	repo  Repo
	cache Invalidator
}

func New(repo Repo, cache Invalidator) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// Record appends one immutable entry. Entries are never updated or
// deleted; a correction is a new offsetting entry.
func (s *Service) Record(ctx context.Context, userID int64, kind domain.EntryKind, amount int64, reason domain.EntryReason, payoutID *int64, metadata map[string]string) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	entry := &domain.LedgerEntry{
		UserID:   userID,
		Kind:     kind,
		Amount:   amount,
		Reason:   reason,
		PayoutID: payoutID,
		Metadata: metadata,
	}
	entry, err := s.repo.Append(ctx, entry)
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateEntry) {
			zap.L().Error("failed to append ledger entry", zap.Error(err))
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)
	return entry, nil
}

// BalanceOf sums credits minus debits. Unknown users have balance 0.
func (s *Service) BalanceOf(ctx context.Context, userID int64) (int64, error) {
	sum, err := s.repo.SumByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to compute balance", zap.Error(err))
		return 0, err
	}
	return sum, nil
}

// History returns entries newest first. beforeID is the keyset cursor from
// the previous page, 0 for the first page.
func (s *Service) History(ctx context.Context, userID int64, limit int, beforeID int64) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	entries, err := s.repo.ListByUser(ctx, userID, limit, beforeID)
	if err != nil {
		zap.L().Error("failed to fetch ledger history", zap.Error(err))
		return nil, err
	}
	return entries, nil
}

func (s *Service) FindContributionByOrderID(ctx context.Context, orderID string) (*domain.LedgerEntry, error) {
	entry, err := s.repo.FindContributionByOrderID(ctx, orderID)
	if err != nil {
		zap.L().Error("failed to find contribution entry", zap.Error(err))
		return nil, err
	}
	return entry, nil
}

// LockUser serializes money movements for one user within the surrounding
// transaction. Callers must already be inside TXManager.Begin.
func (s *Service) LockUser(ctx context.Context, userID int64) error {
	return s.repo.AcquireUserLock(ctx, userID)
}
