package settlement

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/milistaderegalos/payouts/internal/config"
	"github.com/milistaderegalos/payouts/internal/domain"
)

// inFlight guards against the same payout being queued twice while a
// previous attempt is still running.
var inFlight sync.Map

type PayoutManager interface {
	PendingPayouts(ctx context.Context) ([]domain.Payout, error)
	AdvanceToProcessing(ctx context.Context, payoutID int64) error
	StaleProcessing(ctx context.Context, olderThan time.Duration) ([]domain.Payout, error)
	ReconcilePayout(ctx context.Context, payoutID int64) error
}

// Service is the periodic settlement trigger: every tick it pushes pending
// payouts through the gateway, and on a slower cadence it reconciles
// payouts stuck in processing against the provider.
type Service struct {
	payouts        PayoutManager
	workerPool     WorkerPoolI
	interval       time.Duration
	staleThreshold time.Duration
	reconcileEvery int
}

func New(cfg *config.Config, payouts PayoutManager) *Service {
	return &Service{
		payouts:        payouts,
		workerPool:     NewWorkerPool(10),
		interval:       cfg.BatchInterval,
		staleThreshold: cfg.StaleThreshold,
		reconcileEvery: 10,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Settlement service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping settlement service")
			return
		case <-ticker.C:
			s.processPayouts(ctx)
			tick++
			if tick%s.reconcileEvery == 0 {
				s.reconcile(ctx)
			}
		}
	}
}

func (s *Service) processPayouts(ctx context.Context) {
	pending, err := s.payouts.PendingPayouts(ctx)
	if err != nil {
		zap.L().Error("Failed to fetch pending payouts", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, payout := range pending {
		payout := payout

		if _, loaded := inFlight.LoadOrStore(payout.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer inFlight.Delete(payout.ID)
				return s.payouts.AdvanceToProcessing(ctx, payout.ID)
			})
			if err != nil {
				inFlight.Delete(payout.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing payouts", zap.Error(err))
	}
}

func (s *Service) reconcile(ctx context.Context) {
	stale, err := s.payouts.StaleProcessing(ctx, s.staleThreshold)
	if err != nil {
		zap.L().Error("Failed to fetch stale payouts", zap.Error(err))
		return
	}

	for _, payout := range stale {
		if err := s.payouts.ReconcilePayout(ctx, payout.ID); err != nil {
			zap.L().Warn("Reconciliation failed",
				zap.Int64("payoutID", payout.ID),
				zap.Error(err),
			)
		}
	}
}
