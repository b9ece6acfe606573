package sequence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"printshop/internal/pkg/errs"
)

// Number is an issued document number such as PED-000042 or PED-2026-000042.
// The zero value means "no number".
type Number struct {
	docType DocumentType
	year    int
	value   int64
	padding int
}

// ParseNumber reads the stored text form back into a Number.
func ParseNumber(raw string) (Number, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 2 && len(parts) != 3 {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("number", fmt.Errorf("%q is not PREFIX-[YYYY-]NNNN", raw))
	}

	n := Number{docType: DocumentType(parts[0])}
	if err := n.docType.Validate(); err != nil {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("number", err)
	}

	digits := parts[len(parts)-1]
	if len(parts) == 3 {
		year, err := strconv.Atoi(parts[1])
		if err != nil || len(parts[1]) != 4 {
			return Number{}, errs.NewValueIsInvalidErrorWithCause("number", fmt.Errorf("%q has no valid year", raw))
		}
		n.year = year
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || value < 1 || len(digits) > MaxPadding {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("number", fmt.Errorf("%q has no valid counter", raw))
	}
	n.value = value
	n.padding = len(digits)
	return n, nil
}

func (n Number) Validate() error {
	if n.IsZero() {
		return errs.NewValueIsRequiredErrorWithCause("number", errors.New("number was never issued"))
	}
	return nil
}

func (n Number) IsZero() bool {
	return n.value == 0
}

func (n Number) DocumentType() DocumentType {
	return n.docType
}

// Year is the scoping year, or 0 for numbers issued without year scoping.
func (n Number) Year() int {
	return n.year
}

func (n Number) Value() int64 {
	return n.value
}

func (n Number) String() string {
	if n.IsZero() {
		return ""
	}
	if n.year != 0 {
		return fmt.Sprintf("%s-%04d-%0*d", n.docType, n.year, n.padding, n.value)
	}
	return fmt.Sprintf("%s-%0*d", n.docType, n.padding, n.value)
}
