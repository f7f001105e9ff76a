package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestTXManager_Begin(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		m := NewTXManager(mock)
		err := m.Begin(ctx, func(ctx context.Context) error {
			return nil
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		m := NewTXManager(mock)
		fnErr := errors.New("write failed")
		err := m.Begin(ctx, func(ctx context.Context) error {
			return fnErr
		})

		assert.ErrorIs(t, err, fnErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call reuses the open transaction", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		m := NewTXManager(mock)
		var innerRan bool
		err := m.Begin(ctx, func(ctx context.Context) error {
			return m.Begin(ctx, func(ctx context.Context) error {
				innerRan = true
				return nil
			})
		})

		assert.NoError(t, err)
		assert.True(t, innerRan)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		m := NewTXManager(mock)
		err := m.Begin(ctx, func(ctx context.Context) error {
			t.Fatal("fn should not run")
			return nil
		})

		assert.ErrorContains(t, err, "can't begin transaction")
	})

	t.Run("commit failure", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("connection lost"))

		m := NewTXManager(mock)
		err := m.Begin(ctx, func(ctx context.Context) error {
			return nil
		})

		assert.ErrorContains(t, err, "can't commit transaction")
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		m := NewTXManager(mock)
		assert.Panics(t, func() {
			_ = m.Begin(ctx, func(ctx context.Context) error {
				panic("boom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDB_RoutesThroughContextTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the pool without a transaction", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec("UPDATE payouts").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		db := New(mock)
		_, err := db.Exec(ctx, "UPDATE payouts SET attempts = attempts + 1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("uses the transaction carried by the context", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE payouts").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		db := New(mock)
		txCtx := context.WithValue(ctx, txKey{}, tx)
		_, err = db.Exec(txCtx, "UPDATE payouts SET attempts = attempts + 1")
		assert.NoError(t, err)

		require.NoError(t, tx.Commit(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
