package pgutil_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"printshop/internal/adapters/out/postgres/pgutil"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/quote"
	"printshop/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateError(t *testing.T) {
	testCases := []struct {
		code     string
		conflict bool
	}{
		{"40001", true},
		{"40P01", true},
		{"23505", true},
		{"23503", false},
		{"42P01", false},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: tc.code})

			translated := pgutil.TranslateError("budget", kernel.ID(3), err)

			assert.Equal(t, tc.conflict, errors.Is(translated, errs.ErrConflictDetected))
			var pgErr *pgconn.PgError
			assert.ErrorAs(t, translated, &pgErr)
		})
	}

	t.Run("non-driver errors pass through", func(t *testing.T) {
		assert.Same(t, assert.AnError, pgutil.TranslateError("budget", 3, assert.AnError))
		assert.NoError(t, pgutil.TranslateError("budget", 3, nil))
	})
}

func TestQuoteDTO_RoundTrip(t *testing.T) {
	due := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	q, err := quote.NewQuote(quote.Params{
		Title:        "Poetry collection",
		RunSize:      250,
		CoverPages:   4,
		UnitPrice:    decimal.RequireFromString("3.40"),
		DeliveryDate: due,
		ISBN:         "978-3-16-148410-0",
	})
	require.NoError(t, err)

	dto := pgutil.QuoteFromDomain(q)
	require.NotNil(t, dto.DeliveryDate)
	assert.True(t, dto.TotalPrice.Equal(decimal.RequireFromString("850")))

	restored, err := dto.ToDomain()

	require.NoError(t, err)
	assert.Equal(t, q.Params(), restored.Params())
}

func TestIDPtr(t *testing.T) {
	assert.Nil(t, pgutil.FromIDPtr(nil))
	assert.Nil(t, pgutil.ToIDPtr(nil))

	id := kernel.ID(42)
	raw := pgutil.FromIDPtr(&id)
	require.NotNil(t, raw)
	assert.Equal(t, int64(42), *raw)
	assert.Equal(t, id, *pgutil.ToIDPtr(raw))
}
