package payoutservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/milistaderegalos/payouts/internal/config"
	"github.com/milistaderegalos/payouts/internal/domain"
	"github.com/milistaderegalos/payouts/internal/events"
	"github.com/milistaderegalos/payouts/internal/gateway"
	"github.com/milistaderegalos/payouts/internal/pg"
)

//go:generate mockgen -source=payoutservice.go -destination=payoutservice_mock.go -package=payoutservice

type PayoutRepo interface {
	Create(ctx context.Context, payout *domain.Payout) (*domain.Payout, error)
	GetByID(ctx context.Context, id int64) (*domain.Payout, error)
	TransitionStatus(ctx context.Context, id int64, from, to domain.PayoutStatus) (bool, error)
	MarkCompleted(ctx context.Context, id int64, gatewayTransactionID string) (bool, error)
	MarkFailed(ctx context.Context, id int64, reason string, manualReview bool) (bool, error)
	IncrementAttempts(ctx context.Context, id int64) error
	ListPending(ctx context.Context) ([]domain.Payout, error)
	ListStaleProcessing(ctx context.Context, olderThan time.Duration) ([]domain.Payout, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Payout, error)
	Statistics(ctx context.Context, from, to *time.Time) (*domain.PayoutStats, error)
}

type Ledger interface {
	Record(ctx context.Context, userID int64, kind domain.EntryKind, amount int64, reason domain.EntryReason, payoutID *int64, metadata map[string]string) (*domain.LedgerEntry, error)
	BalanceOf(ctx context.Context, userID int64) (int64, error)
	LockUser(ctx context.Context, userID int64) error
}

type Balance interface {
	CanWithdraw(ctx context.Context, userID int64, amount int64) (bool, error)
}

type Gateway interface {
	Transfer(ctx context.Context, req gateway.TransferRequest) (*gateway.TransferResult, error)
	StatusOf(ctx context.Context, idempotencyKey string) (*gateway.TransferStatus, error)
}

var (
	ErrBelowMinimum        = errors.New("amount below minimum withdrawal")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrMissingBankAccount  = errors.New("no bank account on file")
	ErrInvalidState        = errors.New("payout is not in a valid state for this operation")
	ErrPayoutNotFound      = errors.New("payout not found")
)

const DefaultHistoryLimit = 50

type Service struct {
	payoutRepo    PayoutRepo
	ledger        Ledger
	balance       Balance
	gateway       Gateway
	publisher     events.Publisher
	txManager     pg.TXManager
	minWithdrawal int64
	feeRateBP     int64
	maxAttempts   int
}

func New(payoutRepo PayoutRepo, ledger Ledger, balance Balance, gw Gateway, publisher events.Publisher, txManager pg.TXManager, cfg *config.Config) *Service {
	return &Service{
		payoutRepo:    payoutRepo,
		ledger:        ledger,
		balance:       balance,
		gateway:       gw,
		publisher:     publisher,
		txManager:     txManager,
		minWithdrawal: cfg.MinWithdrawal,
		feeRateBP:     cfg.ProcessingFeeBP,
		maxAttempts:   cfg.GatewayMaxAttempts,
	}
}

// idempotencyKey derives the gateway idempotency key from the payout id,
// so any retry for the same payout reaches the provider under one key.
func idempotencyKey(payoutID int64) string {
	return "payout-" + strconv.FormatInt(payoutID, 10)
}

// CreatePayoutRequest validates the withdrawal, then writes the payout row
// and its reservation debit in one transaction serialized per user. The
// balance is re-read inside that transaction: the resolver's answer is only
// a fast pre-check and may be stale by the time the lock is held.
func (s *Service) CreatePayoutRequest(ctx context.Context, userID int64, amount int64, account domain.BankAccount) (*domain.Payout, error) {
	if amount < s.minWithdrawal {
		return nil, ErrBelowMinimum
	}
	if account.Empty() {
		return nil, ErrMissingBankAccount
	}
	ok, err := s.balance.CanWithdraw(ctx, userID, amount)
	if err != nil {
		zap.L().Error("withdrawal pre-check failed", zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientBalance
	}

	fee := domain.ApplyRate(amount, s.feeRateBP)
	payout := &domain.Payout{
		UserID:      userID,
		Amount:      amount,
		Fee:         fee,
		NetAmount:   amount - fee,
		Status:      domain.PayoutPending,
		BankAccount: account,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.ledger.LockUser(ctx, userID); err != nil {
			return err
		}
		balance, err := s.ledger.BalanceOf(ctx, userID)
		if err != nil {
			return err
		}
		if amount > balance {
			return ErrInsufficientBalance
		}
		if _, err := s.payoutRepo.Create(ctx, payout); err != nil {
			return err
		}
		_, err = s.ledger.Record(ctx, userID, domain.Debit, amount, domain.ReasonPayoutRequested, &payout.ID, nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientBalance) {
			zap.L().Error("can't create payout request", zap.Error(err))
		}
		return nil, err
	}

	s.publisher.Publish(ctx, events.PayoutRequested{PayoutID: payout.ID, UserID: userID, Amount: amount})
	zap.L().Info("payout requested",
		zap.Int64("payoutID", payout.ID),
		zap.Int64("userID", userID),
		zap.Int64("amount", amount),
	)
	return payout, nil
}

// AdvanceToProcessing moves a pending payout to processing and issues the
// transfer. The status flips before the gateway call so a crash mid-call
// leaves a processing row pointing at a possibly-issued transfer, which
// reconciliation can resolve. The compare-and-set guarantees at most one
// caller reaches the gateway per payout.
func (s *Service) AdvanceToProcessing(ctx context.Context, payoutID int64) error {
	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return err
	}
	if payout == nil {
		return ErrPayoutNotFound
	}

	won, err := s.payoutRepo.TransitionStatus(ctx, payoutID, domain.PayoutPending, domain.PayoutProcessing)
	if err != nil {
		return err
	}
	if !won {
		return ErrInvalidState
	}

	result, err := s.gateway.Transfer(ctx, gateway.TransferRequest{
		Amount:         payout.NetAmount,
		Destination:    payout.BankAccount,
		IdempotencyKey: idempotencyKey(payoutID),
	})
	if err != nil {
		return s.handleTransferError(ctx, payout, err)
	}

	return s.OnGatewaySuccess(ctx, payoutID, result.TransactionID)
}

func (s *Service) handleTransferError(ctx context.Context, payout *domain.Payout, transferErr error) error {
	if gateway.IsTransient(transferErr) {
		if err := s.payoutRepo.IncrementAttempts(ctx, payout.ID); err != nil {
			return err
		}
		if payout.Attempts+1 >= s.maxAttempts {
			zap.L().Warn("payout exceeded max gateway attempts, escalating",
				zap.Int64("payoutID", payout.ID),
				zap.Int("attempts", payout.Attempts+1),
			)
			return s.failPayout(ctx, payout.ID, fmt.Sprintf("max attempts reached: %v", transferErr), true)
		}
		zap.L().Warn("transient gateway error, payout stays in processing",
			zap.Int64("payoutID", payout.ID),
			zap.Error(transferErr),
		)
		return transferErr
	}

	var rejected *gateway.RejectedError
	if errors.As(transferErr, &rejected) {
		return s.failPayout(ctx, payout.ID, rejected.Message, false)
	}
	return transferErr
}

// OnGatewaySuccess settles the payout: processing to completed, gateway
// transaction id stored, completion timestamp set.
func (s *Service) OnGatewaySuccess(ctx context.Context, payoutID int64, gatewayTransactionID string) error {
	won, err := s.payoutRepo.MarkCompleted(ctx, payoutID, gatewayTransactionID)
	if err != nil {
		return err
	}
	if !won {
		return ErrInvalidState
	}

	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.PayoutCompleted{PayoutID: payoutID, UserID: payout.UserID})
	zap.L().Info("payout completed",
		zap.Int64("payoutID", payoutID),
		zap.String("gatewayTransactionID", gatewayTransactionID),
	)
	return nil
}

// OnGatewayFailure fails the payout and restores the reserved funds.
func (s *Service) OnGatewayFailure(ctx context.Context, payoutID int64, reason string) error {
	return s.failPayout(ctx, payoutID, reason, false)
}

func (s *Service) failPayout(ctx context.Context, payoutID int64, reason string, manualReview bool) error {
	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return err
	}
	if payout == nil {
		return ErrPayoutNotFound
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		won, err := s.payoutRepo.MarkFailed(ctx, payoutID, reason, manualReview)
		if err != nil {
			return err
		}
		if !won {
			return ErrInvalidState
		}
		// Reversal credit: the reservation debit stays in the ledger, the
		// balance is restored by an offsetting entry.
		_, err = s.ledger.Record(ctx, payout.UserID, domain.Credit, payout.Amount, domain.ReasonPayoutFailed, &payoutID, nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidState) {
			zap.L().Error("can't fail payout", zap.Int64("payoutID", payoutID), zap.Error(err))
		}
		return err
	}

	s.publisher.Publish(ctx, events.PayoutFailed{PayoutID: payoutID, UserID: payout.UserID, Reason: reason})
	zap.L().Info("payout failed, funds returned",
		zap.Int64("payoutID", payoutID),
		zap.String("reason", reason),
		zap.Bool("manualReview", manualReview),
	)
	return nil
}

// CancelPayout is only valid while the payout is still pending. A failed
// payout is never reopened; retrying means requesting a new payout.
func (s *Service) CancelPayout(ctx context.Context, userID, payoutID int64) error {
	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return err
	}
	if payout == nil || payout.UserID != userID {
		return ErrPayoutNotFound
	}
	if payout.Status != domain.PayoutPending {
		return ErrInvalidState
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		won, err := s.payoutRepo.TransitionStatus(ctx, payoutID, domain.PayoutPending, domain.PayoutCancelled)
		if err != nil {
			return err
		}
		if !won {
			return ErrInvalidState
		}
		_, err = s.ledger.Record(ctx, payout.UserID, domain.Credit, payout.Amount, domain.ReasonPayoutCancelled, &payoutID, nil)
		return err
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.PayoutCancelled{PayoutID: payoutID, UserID: payout.UserID})
	zap.L().Info("payout cancelled", zap.Int64("payoutID", payoutID))
	return nil
}

// ProcessPending advances every pending payout, oldest first. Each payout
// is handled independently; one failure never aborts the rest of the
// batch.
func (s *Service) ProcessPending(ctx context.Context) error {
	pending, err := s.payoutRepo.ListPending(ctx)
	if err != nil {
		zap.L().Error("can't list pending payouts", zap.Error(err))
		return err
	}

	for _, payout := range pending {
		if err := s.AdvanceToProcessing(ctx, payout.ID); err != nil {
			zap.L().Warn("payout processing failed",
				zap.Int64("payoutID", payout.ID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// PendingPayouts exposes the batch input to the settlement runner.
func (s *Service) PendingPayouts(ctx context.Context) ([]domain.Payout, error) {
	return s.payoutRepo.ListPending(ctx)
}

func (s *Service) StaleProcessing(ctx context.Context, olderThan time.Duration) ([]domain.Payout, error) {
	return s.payoutRepo.ListStaleProcessing(ctx, olderThan)
}

// ReconcilePayout resolves a payout stuck in processing from the gateway's
// authoritative answer. The transfer may have succeeded provider-side, so
// the stuck state is never rolled back blindly.
func (s *Service) ReconcilePayout(ctx context.Context, payoutID int64) error {
	status, err := s.gateway.StatusOf(ctx, idempotencyKey(payoutID))
	if err != nil {
		return err
	}

	switch status.Status {
	case gateway.StatusSettled:
		return s.OnGatewaySuccess(ctx, payoutID, status.TransactionID)
	case gateway.StatusRejected:
		return s.OnGatewayFailure(ctx, payoutID, status.Message)
	default:
		zap.L().Info("payout still pending at gateway", zap.Int64("payoutID", payoutID))
		return nil
	}
}

func (s *Service) GetPayout(ctx context.Context, userID, payoutID int64) (*domain.Payout, error) {
	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout == nil || payout.UserID != userID {
		return nil, ErrPayoutNotFound
	}
	return payout, nil
}

func (s *Service) GetHistory(ctx context.Context, userID int64, limit int) ([]domain.Payout, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	payouts, err := s.payoutRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		zap.L().Error("can't fetch payout history", zap.Error(err))
		return nil, err
	}
	return payouts, nil
}

func (s *Service) GetStatistics(ctx context.Context, from, to *time.Time) (*domain.PayoutStats, error) {
	stats, err := s.payoutRepo.Statistics(ctx, from, to)
	if err != nil {
		zap.L().Error("can't fetch payout statistics", zap.Error(err))
		return nil, err
	}
	return stats, nil
}
