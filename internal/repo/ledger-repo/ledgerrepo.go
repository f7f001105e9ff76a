package ledgerrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/milistaderegalos/payouts/internal/domain"
	"github.com/milistaderegalos/payouts/internal/pg"
)

const uniqueViolationCode = "23505"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Append inserts one immutable ledger row. There is no update or delete
// path anywhere in this repository.
func (r *Repository) Append(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	query := `
		INSERT INTO ledger_entries (user_id, kind, amount, reason, payout_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	if entry.Metadata == nil {
		entry.Metadata = map[string]string{}
	}
	err := r.db.QueryRow(ctx, query,
		entry.UserID, entry.Kind, entry.Amount, entry.Reason, entry.PayoutID, entry.Metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrDuplicateEntry
		}
		zap.L().Error("can't append ledger entry", zap.Error(err))
		return nil, err
	}
	return entry, nil
}

// SumByUser derives the available balance: credits minus debits. A user
// with no entries sums to 0.
func (r *Repository) SumByUser(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN kind = 'credit' THEN amount ELSE -amount END), 0)
		FROM ledger_entries
		WHERE user_id = $1
	`
	var sum int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		zap.L().Error("can't sum ledger entries", zap.Error(err))
		return 0, err
	}
	return sum, nil
}

// ListByUser returns entries newest first. beforeID is a keyset cursor
// (0 means start from the newest); offsets would drift under concurrent
// inserts.
func (r *Repository) ListByUser(ctx context.Context, userID int64, limit int, beforeID int64) ([]domain.LedgerEntry, error) {
	query := `
		SELECT id, user_id, kind, amount, reason, payout_id, metadata, created_at
		FROM ledger_entries
		WHERE user_id = $1 AND ($2 = 0 OR id < $2)
		ORDER BY id DESC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, userID, beforeID, limit)
	if err != nil {
		zap.L().Error("can't list ledger entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.Amount, &e.Reason, &e.PayoutID, &e.Metadata, &e.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan ledger entry row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *Repository) FindContributionByOrderID(ctx context.Context, orderID string) (*domain.LedgerEntry, error) {
	query := `
		SELECT id, user_id, kind, amount, reason, payout_id, metadata, created_at
		FROM ledger_entries
		WHERE reason = 'contribution_received' AND metadata ->> 'order_id' = $1
	`
	var e domain.LedgerEntry
	err := r.db.QueryRow(ctx, query, orderID).Scan(&e.ID, &e.UserID, &e.Kind, &e.Amount, &e.Reason, &e.PayoutID, &e.Metadata, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find contribution entry", zap.Error(err))
		return nil, err
	}
	return &e, nil
}

// AcquireUserLock serializes money movements per user for the lifetime of
// the surrounding transaction. Without it two concurrent payout requests
// could both pass the balance check.
func (r *Repository) AcquireUserLock(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
		zap.L().Error("can't acquire user lock", zap.Error(err))
		return err
	}
	return nil
}
