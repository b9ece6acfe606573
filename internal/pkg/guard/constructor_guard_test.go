package guard_test

import (
	"errors"
	"sync"
	"testing"

	"printshop/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("Actor must be created via NewActor")

		// When
		err := g.Validate(expected)

		// Then
		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

// TestConstructorGuard_EmbeddedInValueObject shows the guard catching a struct
// literal that skipped its constructor.
func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type ticket struct {
		number string
		guard  guard.ConstructorGuard
	}

	errTicketNotConstructed := errors.New("ticket must be created via newTicket")

	newTicket := func(number string) (ticket, error) {
		if number == "" {
			return ticket{}, errors.New("number is required")
		}
		return ticket{number: number, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_path", func(t *testing.T) {
		tk, err := newTicket("PED-000001")

		require.NoError(t, err)
		require.NoError(t, tk.guard.Validate(errTicketNotConstructed))
		assert.Equal(t, "PED-000001", tk.number)
	})

	t.Run("literal_path", func(t *testing.T) {
		tk := ticket{number: "PED-000001"}

		assert.Equal(t, errTicketNotConstructed, tk.guard.Validate(errTicketNotConstructed))
	})

	t.Run("constructor_rejects_bad_input", func(t *testing.T) {
		_, err := newTicket("")

		require.Error(t, err)
	})
}

func TestConstructorGuard_CopyAndConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	cp := g
	require.NoError(t, cp.Validate(nil))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				assert.NoError(t, g.Validate(nil))
			}
		}()
	}
	wg.Wait()
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
