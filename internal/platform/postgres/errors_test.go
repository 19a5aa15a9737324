package postgres_test

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lexcards/lexcards-api/internal/platform/postgres"
	"github.com/lexcards/lexcards-api/internal/store"
	"github.com/stretchr/testify/assert"
)

// timeoutError satisfies net.Error for connection-failure mapping tests.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		t.Parallel()

		err := postgres.MapError(sql.ErrNoRows)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unique violation maps to duplicate", func(t *testing.T) {
		t.Parallel()

		err := postgres.MapError(pgError("23505", "idx_cards_identity"))
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("constraint violations map to invalid entity", func(t *testing.T) {
		t.Parallel()

		for _, code := range []string{"23503", "23514", "23502"} {
			err := postgres.MapError(pgError(code, "some_constraint"))
			assert.ErrorIs(t, err, store.ErrInvalidEntity, "code %s", code)
		}
	})

	t.Run("connection failures map to unavailable", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, postgres.MapError(driver.ErrBadConn), store.ErrUnavailable)
		assert.ErrorIs(t, postgres.MapError(timeoutError{}), store.ErrUnavailable)

		wrapped := fmt.Errorf("query failed: %w", timeoutError{})
		assert.ErrorIs(t, postgres.MapError(wrapped), store.ErrUnavailable)
	})

	t.Run("unknown errors pass through unchanged", func(t *testing.T) {
		t.Parallel()

		unknown := errors.New("something else")
		assert.Equal(t, unknown, postgres.MapError(unknown))
	})

	t.Run("mapped errors keep the original message", func(t *testing.T) {
		t.Parallel()

		err := postgres.MapError(pgError("23505", "idx_cards_identity"))
		assert.Contains(t, err.Error(), "23505")
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(pgError("23505", "")))
	assert.True(t, postgres.IsUniqueViolation(fmt.Errorf("wrap: %w", pgError("23505", ""))))
	assert.False(t, postgres.IsUniqueViolation(pgError("23503", "")))
	assert.False(t, postgres.IsUniqueViolation(errors.New("other")))
}

func TestIsConnectionError(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsConnectionError(driver.ErrBadConn))
	assert.True(t, postgres.IsConnectionError(&net.OpError{
		Op:  "dial",
		Err: &timeoutError{},
	}))
	assert.False(t, postgres.IsConnectionError(sql.ErrNoRows))
	assert.False(t, postgres.IsConnectionError(pgError("23505", "")))
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsNotFoundError(sql.ErrNoRows))
	assert.True(t, postgres.IsNotFoundError(store.ErrCardNotFound))
	assert.False(t, postgres.IsNotFoundError(errors.New("other")))
}

// stubResult implements sql.Result for CheckRowsAffected tests.
type stubResult struct {
	rows int64
	err  error
}

func (r stubResult) LastInsertId() (int64, error) { return 0, nil }
func (r stubResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, postgres.CheckRowsAffected(stubResult{rows: 1}, "card"))

	err := postgres.CheckRowsAffected(stubResult{rows: 0}, "card")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Contains(t, err.Error(), "card")

	assert.Error(t, postgres.CheckRowsAffected(stubResult{err: errors.New("boom")}, "card"))
	assert.Error(t, postgres.CheckRowsAffected(nil, "card"))
}
