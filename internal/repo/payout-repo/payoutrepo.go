package payoutrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/milistaderegalos/payouts/internal/domain"
	"github.com/milistaderegalos/payouts/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const payoutColumns = `id, user_id, amount, fee, net_amount, status, bank_account,
		gateway_transaction_id, attempts, manual_review, failure_reason,
		created_at, updated_at, completed_at`

func scanPayout(row pgx.Row) (*domain.Payout, error) {
	var p domain.Payout
	err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.Fee, &p.NetAmount, &p.Status, &p.BankAccount,
		&p.GatewayTransactionID, &p.Attempts, &p.ManualReview, &p.FailureReason,
		&p.CreatedAt, &p.UpdatedAt, &p.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, payout *domain.Payout) (*domain.Payout, error) {
	query := `
		INSERT INTO payouts (user_id, amount, fee, net_amount, status, bank_account)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		payout.UserID, payout.Amount, payout.Fee, payout.NetAmount, payout.Status, payout.BankAccount,
	).Scan(&payout.ID, &payout.CreatedAt, &payout.UpdatedAt)
	if err != nil {
		zap.L().Error("can't create payout", zap.Error(err))
		return nil, err
	}
	return payout, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE id = $1`
	payout, err := scanPayout(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't get payout", zap.Error(err))
		return nil, err
	}
	return payout, nil
}

// TransitionStatus is a compare-and-set on the status column. It reports
// false when the payout was not in the expected state, which is how two
// workers racing for the same payout are reduced to exactly one winner.
func (r *Repository) TransitionStatus(ctx context.Context, id int64, from, to domain.PayoutStatus) (bool, error) {
	query := `
		UPDATE payouts
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`
	tag, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		zap.L().Error("can't transition payout status", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) MarkCompleted(ctx context.Context, id int64, gatewayTransactionID string) (bool, error) {
	query := `
		UPDATE payouts
		SET status = $1, gateway_transaction_id = $2, updated_at = now(), completed_at = now()
		WHERE id = $3 AND status = $4
	`
	tag, err := r.db.Exec(ctx, query, domain.PayoutCompleted, gatewayTransactionID, id, domain.PayoutProcessing)
	if err != nil {
		zap.L().Error("can't mark payout completed", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) MarkFailed(ctx context.Context, id int64, reason string, manualReview bool) (bool, error) {
	query := `
		UPDATE payouts
		SET status = $1, failure_reason = $2, manual_review = $3, updated_at = now()
		WHERE id = $4 AND status = $5
	`
	tag, err := r.db.Exec(ctx, query, domain.PayoutFailed, reason, manualReview, id, domain.PayoutProcessing)
	if err != nil {
		zap.L().Error("can't mark payout failed", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) IncrementAttempts(ctx context.Context, id int64) error {
	query := `
		UPDATE payouts
		SET attempts = attempts + 1, updated_at = now()
		WHERE id = $1
	`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("can't increment payout attempts", zap.Error(err))
		return err
	}
	return nil
}

// ListPending returns pending payouts oldest first, so the batch processor
// is fair to whoever asked earliest.
func (r *Repository) ListPending(ctx context.Context) ([]domain.Payout, error) {
	query := `
		SELECT ` + payoutColumns + `
		FROM payouts
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`
	return r.list(ctx, query)
}

// ListStaleProcessing reports payouts sitting in processing longer than
// the threshold. Those go through gateway reconciliation, never automatic
// rollback, because the transfer may have succeeded provider-side.
func (r *Repository) ListStaleProcessing(ctx context.Context, olderThan time.Duration) ([]domain.Payout, error) {
	query := `
		SELECT ` + payoutColumns + `
		FROM payouts
		WHERE status = 'processing' AND updated_at < now() - $1::interval
		ORDER BY updated_at ASC
	`
	return r.list(ctx, query, olderThan.String())
}

func (r *Repository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Payout, error) {
	query := `
		SELECT ` + payoutColumns + `
		FROM payouts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.list(ctx, query, userID, limit)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Payout, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't list payouts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payouts []domain.Payout
	for rows.Next() {
		payout, err := scanPayout(rows)
		if err != nil {
			zap.L().Error("can't scan payout row", zap.Error(err))
			return nil, err
		}
		payouts = append(payouts, *payout)
	}
	return payouts, nil
}

func (r *Repository) Statistics(ctx context.Context, from, to *time.Time) (*domain.PayoutStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(fee), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN amount ELSE 0 END), 0)
		FROM payouts
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
	`
	var stats domain.PayoutStats
	err := r.db.QueryRow(ctx, query, from, to).Scan(
		&stats.TotalPayouts, &stats.TotalAmount, &stats.TotalFees,
		&stats.CompletedCount, &stats.CompletedAmount,
	)
	if err != nil {
		zap.L().Error("can't get payout statistics", zap.Error(err))
		return nil, err
	}
	return &stats, nil
}
