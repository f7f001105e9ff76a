package balanceservice

import (
	"context"

	"go.uber.org/zap"
)

//go:generate mockgen -source=balanceservice.go -destination=balanceservice_mock.go -package=balanceservice

// Ledger is the source of truth the resolver reads through its cache.
type Ledger interface {
	BalanceOf(ctx context.Context, userID int64) (int64, error)
}

// BalanceCache holds derived balances only. A miss or a cache failure is
// always answered from the ledger.
type BalanceCache interface {
	Get(ctx context.Context, userID int64) (int64, bool)
	Set(ctx context.Context, userID int64, balance int64)
	Invalidate(ctx context.Context, userID int64)
}

type Service struct {
	ledger        Ledger
	cache         BalanceCache
	minWithdrawal int64
}

func New(ledger Ledger, cache BalanceCache, minWithdrawal int64) *Service {
	return &Service{
		ledger:        ledger,
		cache:         cache,
		minWithdrawal: minWithdrawal,
	}
}

// AvailableBalance reads through the cache. The cached figure is only a
// fast path for display; financial decisions re-read the ledger inside
// their own transaction.
func (s *Service) AvailableBalance(ctx context.Context, userID int64) (int64, error) {
	if balance, ok := s.cache.Get(ctx, userID); ok {
		return balance, nil
	}

	balance, err := s.ledger.BalanceOf(ctx, userID)
	if err != nil {
		zap.L().Error("failed to resolve balance", zap.Error(err))
		return 0, err
	}
	s.cache.Set(ctx, userID, balance)
	return balance, nil
}

// CanWithdraw checks the withdrawal floor and the available balance.
func (s *Service) CanWithdraw(ctx context.Context, userID int64, amount int64) (bool, error) {
	if amount < s.minWithdrawal {
		return false, nil
	}
	balance, err := s.AvailableBalance(ctx, userID)
	if err != nil {
		return false, err
	}
	return amount <= balance, nil
}
