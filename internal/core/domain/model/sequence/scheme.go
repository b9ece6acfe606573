package sequence

import (
	"fmt"
	"time"

	"printshop/internal/pkg/errs"
)

const (
	DefaultPadding = 6
	MinPadding     = 1

	// MaxPadding keeps 10^padding - 1 within int64.
	MaxPadding = 18
)

// Scheme decides how counters are keyed and how their values are rendered.
type Scheme struct {
	padding    int
	yearScoped bool
	maxValue   int64
}

// NewScheme returns a Scheme with the given zero-padding width. When
// yearScoped is set every calendar year restarts at 1 under its own key.
func NewScheme(padding int, yearScoped bool) (Scheme, error) {
	if padding < MinPadding || padding > MaxPadding {
		return Scheme{}, errs.NewValueIsOutOfRangeError("padding", padding, MinPadding, MaxPadding)
	}
	maxValue := int64(1)
	for range padding {
		maxValue *= 10
	}
	return Scheme{padding: padding, yearScoped: yearScoped, maxValue: maxValue - 1}, nil
}

// DefaultScheme is the six-digit, not year-scoped scheme.
func DefaultScheme() Scheme {
	s, _ := NewScheme(DefaultPadding, false)
	return s
}

func (s Scheme) Padding() int {
	return s.padding
}

func (s Scheme) YearScoped() bool {
	return s.yearScoped
}

// MaxValue is the largest counter value the padding can render.
func (s Scheme) MaxValue() int64 {
	return s.maxValue
}

// CounterKey names the counter a number of type t issued at `at` is drawn from.
//
// Example:
//
//	DefaultScheme().CounterKey(OrderDocument, now) // "PED"
//	yearly.CounterKey(OrderDocument, now)          // "PED-2026"
func (s Scheme) CounterKey(t DocumentType, at time.Time) string {
	if s.yearScoped {
		return fmt.Sprintf("%s-%04d", t, at.UTC().Year())
	}
	return string(t)
}

// Number renders a counter value issued at `at`.
//
// Returns:
//   - the Number when 1 <= value <= MaxValue
//   - AllocationFailedError when the counter ran past what the padding can
//     express; numbers are never wrapped or truncated
func (s Scheme) Number(t DocumentType, at time.Time, value int64) (Number, error) {
	if err := t.Validate(); err != nil {
		return Number{}, err
	}
	key := s.CounterKey(t, at)
	if value < 1 {
		return Number{}, errs.NewAllocationFailedError(key,
			errs.NewValueIsOutOfRangeError("value", value, 1, s.maxValue))
	}
	if value > s.maxValue {
		return Number{}, errs.NewAllocationFailedError(key,
			fmt.Errorf("counter exhausted: %d exceeds %d", value, s.maxValue))
	}
	n := Number{docType: t, value: value, padding: s.padding}
	if s.yearScoped {
		n.year = at.UTC().Year()
	}
	return n, nil
}
