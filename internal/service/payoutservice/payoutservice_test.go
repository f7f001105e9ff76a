package payoutservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/milistaderegalos/payouts/internal/config"
	"github.com/milistaderegalos/payouts/internal/domain"
	"github.com/milistaderegalos/payouts/internal/events"
	"github.com/milistaderegalos/payouts/internal/gateway"
	"github.com/milistaderegalos/payouts/internal/pg"
)

type mocks struct {
	payoutRepo *MockPayoutRepo
	ledger     *MockLedger
	balance    *MockBalance
	gateway    *MockGateway
	publisher  *events.MockPublisher
	txManager  *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		payoutRepo: NewMockPayoutRepo(ctrl),
		ledger:     NewMockLedger(ctrl),
		balance:    NewMockBalance(ctrl),
		gateway:    NewMockGateway(ctrl),
		publisher:  events.NewMockPublisher(ctrl),
		txManager:  pg.NewMockTXManager(ctrl),
	}
	cfg := &config.Config{
		MinWithdrawal:      5000,
		ProcessingFeeBP:    200,
		GatewayMaxAttempts: 3,
	}
	service := New(m.payoutRepo, m.ledger, m.balance, m.gateway, m.publisher, m.txManager, cfg)
	return service, m
}

func inTransaction(m *mocks) {
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func account() domain.BankAccount {
	return domain.BankAccount{
		BankName:      "Banco de Chile",
		AccountType:   "checking",
		AccountNumber: "123456789",
		HolderName:    "María López",
		RUT:           "12.345.678-5",
	}
}

func TestCreatePayoutRequest(t *testing.T) {
	tests := []struct {
		name        string
		amount      int64
		account     domain.BankAccount
		prepareMock func(m *mocks)
		wantFee     int64
		wantNet     int64
		wantErr     error
	}{
		{
			name:    "Successful payout request",
			amount:  10000,
			account: account(),
			prepareMock: func(m *mocks) {
				m.balance.EXPECT().CanWithdraw(gomock.Any(), int64(1), int64(10000)).Return(true, nil)
				inTransaction(m)
				m.ledger.EXPECT().LockUser(gomock.Any(), int64(1)).Return(nil)
				m.ledger.EXPECT().BalanceOf(gomock.Any(), int64(1)).Return(int64(25000), nil)
				m.payoutRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, p *domain.Payout) (*domain.Payout, error) {
						p.ID = 7
						return p, nil
					},
				)
				m.ledger.EXPECT().Record(gomock.Any(), int64(1), domain.Debit, int64(10000), domain.ReasonPayoutRequested, gomock.Any(), nil).Return(&domain.LedgerEntry{ID: 42}, nil)
				m.publisher.EXPECT().Publish(gomock.Any(), events.PayoutRequested{PayoutID: 7, UserID: 1, Amount: 10000})
			},
			wantFee: 200,
			wantNet: 9800,
		},
		{
			name:        "Below minimum withdrawal",
			amount:      4999,
			account:     account(),
			prepareMock: func(m *mocks) {},
			wantErr:     ErrBelowMinimum,
		},
		{
			name:        "Missing bank account",
			amount:      10000,
			account:     domain.BankAccount{},
			prepareMock: func(m *mocks) {},
			wantErr:     ErrMissingBankAccount,
		},
		{
			name:    "Insufficient balance on pre-check leaves no trace",
			amount:  10000,
			account: account(),
			prepareMock: func(m *mocks) {
				m.balance.EXPECT().CanWithdraw(gomock.Any(), int64(1), int64(10000)).Return(false, nil)
			},
			wantErr: ErrInsufficientBalance,
		},
		{
			name:    "Balance shrank before the lock was held",
			amount:  10000,
			account: account(),
			prepareMock: func(m *mocks) {
				m.balance.EXPECT().CanWithdraw(gomock.Any(), int64(1), int64(10000)).Return(true, nil)
				inTransaction(m)
				m.ledger.EXPECT().LockUser(gomock.Any(), int64(1)).Return(nil)
				m.ledger.EXPECT().BalanceOf(gomock.Any(), int64(1)).Return(int64(9000), nil)
			},
			wantErr: ErrInsufficientBalance,
		},
		{
			name:    "Ledger write failure aborts the request",
			amount:  10000,
			account: account(),
			prepareMock: func(m *mocks) {
				m.balance.EXPECT().CanWithdraw(gomock.Any(), int64(1), int64(10000)).Return(true, nil)
				inTransaction(m)
				m.ledger.EXPECT().LockUser(gomock.Any(), int64(1)).Return(nil)
				m.ledger.EXPECT().BalanceOf(gomock.Any(), int64(1)).Return(int64(25000), nil)
				m.payoutRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, p *domain.Payout) (*domain.Payout, error) {
						p.ID = 7
						return p, nil
					},
				)
				m.ledger.EXPECT().Record(gomock.Any(), int64(1), domain.Debit, int64(10000), domain.ReasonPayoutRequested, gomock.Any(), nil).Return(nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			payout, err := service.CreatePayoutRequest(context.Background(), 1, tt.amount, tt.account)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				assert.Nil(t, payout)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.PayoutPending, payout.Status)
				assert.Equal(t, tt.wantFee, payout.Fee)
				assert.Equal(t, tt.wantNet, payout.NetAmount)
				assert.Equal(t, tt.account, payout.BankAccount)
			}
		})
	}
}

func TestAdvanceToProcessing(t *testing.T) {
	pending := &domain.Payout{ID: 7, UserID: 1, Amount: 10000, NetAmount: 9800, Status: domain.PayoutPending, BankAccount: account()}

	tests := []struct {
		name        string
		prepareMock func(m *mocks)
		wantErr     error
	}{
		{
			name: "Successful transfer completes the payout",
			prepareMock: func(m *mocks) {
				m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(pending, nil)
				m.payoutRepo.EXPECT().TransitionStatus(gomock.Any(), int64(7), domain.PayoutPending, domain.PayoutProcessing).Return(true, nil)
				m.gateway.EXPECT().Transfer(gomock.Any(), gateway.TransferRequest{
					Amount:         9800,
					Destination:    account(),
					IdempotencyKey: "payout-7",
				}).Return(&gateway.TransferResult{TransactionID: "trx_01HX"}, nil)
				m.payoutRepo.EXPECT().MarkCompleted(gomock.Any(), int64(7), "trx_01HX").Return(true, nil)
				m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(pending, nil)
				m.publisher.EXPECT().Publish(gomock.Any(), events.PayoutCompleted{PayoutID: 7, UserID: 1})
			},
		},
		{
			name: "Lost the status race, gateway never called",
			prepareMock: func(m *mocks) {
				m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(pending, nil)
				m.payoutRepo.EXPECT().TransitionStatus(gomock.Any(), int64(7), domain.PayoutPending, domain.PayoutProcessing).Return(false, nil)
			},
			wantErr: ErrInvalidState,
		},
		{
			name: "Unknown payout",
			prepareMock: func(m *mocks) {
				m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(nil, nil)
			},
			wantErr: ErrPayoutNotFound,
		},
		{
			name: "Rejected transfer fails the payout and restores funds",
			prepareMock: func(m *mocks) {
				m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(pending, nil)
				m.payoutRepo.EXPECT().TransitionStatus(gomock.Any(), int64(7), domain.PayoutPending, domain.PayoutProcessing).Return(true, nil)
				m.gateway.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil, &gateway.RejectedError{Code: -1, Message: "Rechazada por el banco"})
				m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(pending, nil)
				inTransaction(m)
				m.payoutRepo.EXPECT().MarkFailed(gomock.Any(), int64(7), "Rechazada por el banco", false).Return(true, nil)
				m.ledger.EXPECT().Record(gomock.Any(), int64(1), domain.Credit, int64(10000), domain.ReasonPayoutFailed, gomock.Any(), nil).Return(&domain.LedgerEntry{ID: 43}, nil)
				m.publisher.EXPECT().Publish(gomock.Any(), events.PayoutFailed{PayoutID: 7, UserID: 1, Reason: "Rechazada por el banco"})
			},
		},
		{
			name: "Transient error leaves the payout for retry",
			prepareMock: func(m *mocks) {
				m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(pending, nil)
				m.payoutRepo.EXPECT().TransitionStatus(gomock.Any(), int64(7), domain.PayoutPending, domain.PayoutProcessing).Return(true, nil)
				m.gateway.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil, &gateway.TransientError{Err: errors.New("connection refused")})
				m.payoutRepo.EXPECT().IncrementAttempts(gomock.Any(), int64(7)).Return(nil)
			},
			wantErr: &gateway.TransientError{Err: errors.New("connection refused")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			err := service.AdvanceToProcessing(context.Background(), 7)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdvanceToProcessingMaxAttempts(t *testing.T) {
	service, m := NewMock(t)
	exhausted := &domain.Payout{ID: 7, UserID: 1, Amount: 10000, NetAmount: 9800, Status: domain.PayoutPending, BankAccount: account(), Attempts: 2}

	m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(exhausted, nil)
	m.payoutRepo.EXPECT().TransitionStatus(gomock.Any(), int64(7), domain.PayoutPending, domain.PayoutProcessing).Return(true, nil)
	m.gateway.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil, &gateway.TransientError{Err: errors.New("timeout")})
	m.payoutRepo.EXPECT().IncrementAttempts(gomock.Any(), int64(7)).Return(nil)
	m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(exhausted, nil)
	inTransaction(m)
	m.payoutRepo.EXPECT().MarkFailed(gomock.Any(), int64(7), gomock.Any(), true).Return(true, nil)
	m.ledger.EXPECT().Record(gomock.Any(), int64(1), domain.Credit, int64(10000), domain.ReasonPayoutFailed, gomock.Any(), nil).Return(&domain.LedgerEntry{ID: 44}, nil)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

	err := service.AdvanceToProcessing(context.Background(), 7)
	assert.NoError(t, err)
}

func TestCancelPayout(t *testing.T) {
	tests := []struct {
		name        string
		userID      int64
		prepareMock func(m *mocks)
		wantErr     error
	}{
		{
			name:   "Cancel pending payout restores the balance",
			userID: 1,
			prepareMock: func(m *mocks) {
				m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&domain.Payout{ID: 7, UserID: 1, Amount: 10000, Status: domain.PayoutPending}, nil)
				inTransaction(m)
				m.payoutRepo.EXPECT().TransitionStatus(gomock.Any(), int64(7), domain.PayoutPending, domain.PayoutCancelled).Return(true, nil)
				m.ledger.EXPECT().Record(gomock.Any(), int64(1), domain.Credit, int64(10000), domain.ReasonPayoutCancelled, gomock.Any(), nil).Return(&domain.LedgerEntry{ID: 45}, nil)
				m.publisher.EXPECT().Publish(gomock.Any(), events.PayoutCancelled{PayoutID: 7, UserID: 1})
			},
		},
		{
			name:   "Processing payout cannot be cancelled",
			userID: 1,
			prepareMock: func(m *mocks) {
				m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&domain.Payout{ID: 7, UserID: 1, Amount: 10000, Status: domain.PayoutProcessing}, nil)
			},
			wantErr: ErrInvalidState,
		},
		{
			name:   "Another user's payout reads as not found",
			userID: 2,
			prepareMock: func(m *mocks) {
				m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&domain.Payout{ID: 7, UserID: 1, Amount: 10000, Status: domain.PayoutPending}, nil)
			},
			wantErr: ErrPayoutNotFound,
		},
		{
			name:   "Concurrent cancel loses the status race",
			userID: 1,
			prepareMock: func(m *mocks) {
				m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&domain.Payout{ID: 7, UserID: 1, Amount: 10000, Status: domain.PayoutPending}, nil)
				inTransaction(m)
				m.payoutRepo.EXPECT().TransitionStatus(gomock.Any(), int64(7), domain.PayoutPending, domain.PayoutCancelled).Return(false, nil)
			},
			wantErr: ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			err := service.CancelPayout(context.Background(), tt.userID, 7)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessPendingContinuesPastFailures(t *testing.T) {
	service, m := NewMock(t)
	pending := []domain.Payout{{ID: 1}, {ID: 2}, {ID: 3}}

	m.payoutRepo.EXPECT().ListPending(gomock.Any()).Return(pending, nil)
	for _, p := range pending {
		if p.ID == 2 {
			m.payoutRepo.EXPECT().GetByID(gomock.Any(), p.ID).Return(nil, errors.New("db error"))
			continue
		}
		payout := &domain.Payout{ID: p.ID, UserID: 1, Amount: 10000, NetAmount: 9800, Status: domain.PayoutPending, BankAccount: account()}
		m.payoutRepo.EXPECT().GetByID(gomock.Any(), p.ID).Return(payout, nil)
		m.payoutRepo.EXPECT().TransitionStatus(gomock.Any(), p.ID, domain.PayoutPending, domain.PayoutProcessing).Return(true, nil)
		m.gateway.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(&gateway.TransferResult{TransactionID: "trx"}, nil)
		m.payoutRepo.EXPECT().MarkCompleted(gomock.Any(), p.ID, "trx").Return(true, nil)
		m.payoutRepo.EXPECT().GetByID(gomock.Any(), p.ID).Return(payout, nil)
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
	}

	err := service.ProcessPending(context.Background())
	assert.NoError(t, err)
}

func TestReconcilePayout(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(m *mocks)
		wantErr     error
	}{
		{
			name: "Settled at the provider",
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().StatusOf(gomock.Any(), "payout-7").Return(&gateway.TransferStatus{Status: gateway.StatusSettled, TransactionID: "trx_01HX"}, nil)
				m.payoutRepo.EXPECT().MarkCompleted(gomock.Any(), int64(7), "trx_01HX").Return(true, nil)
				m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&domain.Payout{ID: 7, UserID: 1}, nil)
				m.publisher.EXPECT().Publish(gomock.Any(), events.PayoutCompleted{PayoutID: 7, UserID: 1})
			},
		},
		{
			name: "Rejected at the provider",
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().StatusOf(gomock.Any(), "payout-7").Return(&gateway.TransferStatus{Status: gateway.StatusRejected, Message: "Rechazada"}, nil)
				m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&domain.Payout{ID: 7, UserID: 1, Amount: 10000, Status: domain.PayoutProcessing}, nil)
				inTransaction(m)
				m.payoutRepo.EXPECT().MarkFailed(gomock.Any(), int64(7), "Rechazada", false).Return(true, nil)
				m.ledger.EXPECT().Record(gomock.Any(), int64(1), domain.Credit, int64(10000), domain.ReasonPayoutFailed, gomock.Any(), nil).Return(&domain.LedgerEntry{ID: 46}, nil)
				m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "Still processing, nothing to do",
			prepareMock: func(m *mocks) {
				m.gateway.EXPECT().StatusOf(gomock.Any(), "payout-7").Return(&gateway.TransferStatus{Status: gateway.StatusPending}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			err := service.ReconcilePayout(context.Background(), 7)
			if tt.wantErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetPayout(t *testing.T) {
	service, m := NewMock(t)

	m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&domain.Payout{ID: 7, UserID: 1}, nil)
	payout, err := service.GetPayout(context.Background(), 1, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), payout.ID)

	m.payoutRepo.EXPECT().GetByID(gomock.Any(), int64(7)).Return(&domain.Payout{ID: 7, UserID: 1}, nil)
	_, err = service.GetPayout(context.Background(), 2, 7)
	assert.ErrorIs(t, err, ErrPayoutNotFound)
}

func TestGetHistory(t *testing.T) {
	service, m := NewMock(t)

	m.payoutRepo.EXPECT().ListByUser(gomock.Any(), int64(1), DefaultHistoryLimit).Return([]domain.Payout{{ID: 7}, {ID: 6}}, nil)
	payouts, err := service.GetHistory(context.Background(), 1, 0)
	assert.NoError(t, err)
	assert.Len(t, payouts, 2)
}

func TestGetStatistics(t *testing.T) {
	service, m := NewMock(t)
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	m.payoutRepo.EXPECT().Statistics(gomock.Any(), &from, nil).Return(&domain.PayoutStats{TotalPayouts: 10, CompletedCount: 8}, nil)
	stats, err := service.GetStatistics(context.Background(), &from, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalPayouts)
}
