package ledgerrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/milistaderegalos/payouts/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_Append(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		entry     *domain.LedgerEntry
		mockSetup func()
		expectErr error
	}{
		{
			name: "Insert credit entry",
			entry: &domain.LedgerEntry{
				UserID: 1,
				Kind:   domain.Credit,
				Amount: 25000,
				Reason: domain.ReasonContributionReceived,
				Metadata: map[string]string{
					"order_id": "wc-98321",
					"list_id":  "311",
				},
			},
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), now)
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ledger_entries`)).
					WithArgs(int64(1), domain.Credit, int64(25000), domain.ReasonContributionReceived, (*int64)(nil), map[string]string{
						"order_id": "wc-98321",
						"list_id":  "311",
					}).
					WillReturnRows(rows)
			},
		},
		{
			name: "Unique violation maps to duplicate entry",
			entry: &domain.LedgerEntry{
				UserID:   1,
				Kind:     domain.Credit,
				Amount:   25000,
				Reason:   domain.ReasonContributionReceived,
				Metadata: map[string]string{"order_id": "wc-98321"},
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ledger_entries`)).
					WithArgs(int64(1), domain.Credit, int64(25000), domain.ReasonContributionReceived, (*int64)(nil), map[string]string{"order_id": "wc-98321"}).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			expectErr: domain.ErrDuplicateEntry,
		},
		{
			name: "Database error",
			entry: &domain.LedgerEntry{
				UserID: 1,
				Kind:   domain.Debit,
				Amount: 10000,
				Reason: domain.ReasonPayoutRequested,
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ledger_entries`)).
					WithArgs(int64(1), domain.Debit, int64(10000), domain.ReasonPayoutRequested, (*int64)(nil), map[string]string{}).
					WillReturnError(errors.New("database error"))
			},
			expectErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			entry, err := repo.Append(context.Background(), tt.entry)

			if tt.expectErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectErr.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(42), entry.ID)
				assert.Equal(t, now, entry.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_SumByUser(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		userID    int64
		mockSetup func()
		expectErr bool
		result    int64
	}{
		{
			name:   "Credits minus debits",
			userID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(15000))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(CASE WHEN kind = 'credit' THEN amount ELSE -amount END), 0)`)).
					WithArgs(int64(1)).
					WillReturnRows(rows)
			},
			result: 15000,
		},
		{
			name:   "Unknown user sums to zero",
			userID: 99,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(0))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(CASE WHEN kind = 'credit' THEN amount ELSE -amount END), 0)`)).
					WithArgs(int64(99)).
					WillReturnRows(rows)
			},
			result: 0,
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(CASE WHEN kind = 'credit' THEN amount ELSE -amount END), 0)`)).
					WithArgs(int64(1)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			sum, err := repo.SumByUser(context.Background(), tt.userID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, sum)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	columns := []string{"id", "user_id", "kind", "amount", "reason", "payout_id", "metadata", "created_at"}

	t.Run("First page newest first", func(t *testing.T) {
		rows := pgxmock.NewRows(columns).
			AddRow(int64(42), int64(1), domain.Credit, int64(25000), domain.ReasonContributionReceived, (*int64)(nil), map[string]string{"order_id": "wc-98321"}, now).
			AddRow(int64(41), int64(1), domain.Debit, int64(10000), domain.ReasonPayoutRequested, (*int64)(nil), map[string]string{}, now)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM ledger_entries`)).
			WithArgs(int64(1), int64(0), 20).
			WillReturnRows(rows)

		entries, err := repo.ListByUser(context.Background(), 1, 20, 0)
		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, int64(42), entries[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Keyset page", func(t *testing.T) {
		rows := pgxmock.NewRows(columns).
			AddRow(int64(40), int64(1), domain.Credit, int64(5000), domain.ReasonPayoutCancelled, (*int64)(nil), map[string]string{}, now)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM ledger_entries`)).
			WithArgs(int64(1), int64(41), 20).
			WillReturnRows(rows)

		entries, err := repo.ListByUser(context.Background(), 1, 20, 41)
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM ledger_entries`)).
			WithArgs(int64(1), int64(0), 20).
			WillReturnError(errors.New("database error"))

		_, err := repo.ListByUser(context.Background(), 1, 20, 0)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindContributionByOrderID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	columns := []string{"id", "user_id", "kind", "amount", "reason", "payout_id", "metadata", "created_at"}

	t.Run("Existing order", func(t *testing.T) {
		rows := pgxmock.NewRows(columns).
			AddRow(int64(42), int64(15), domain.Credit, int64(25000), domain.ReasonContributionReceived, (*int64)(nil), map[string]string{"order_id": "wc-98321"}, now)
		mock.ExpectQuery(regexp.QuoteMeta(`metadata ->> 'order_id' = $1`)).
			WithArgs("wc-98321").
			WillReturnRows(rows)

		entry, err := repo.FindContributionByOrderID(context.Background(), "wc-98321")
		assert.NoError(t, err)
		assert.Equal(t, int64(42), entry.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown order returns nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`metadata ->> 'order_id' = $1`)).
			WithArgs("wc-0").
			WillReturnError(pgx.ErrNoRows)

		entry, err := repo.FindContributionByOrderID(context.Background(), "wc-0")
		assert.NoError(t, err)
		assert.Nil(t, entry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_AcquireUserLock(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1)`)).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))

	err := repo.AcquireUserLock(context.Background(), 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
