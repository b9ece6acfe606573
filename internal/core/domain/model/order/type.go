package order

import (
	"fmt"
	"strings"

	"printshop/internal/pkg/errs"
)

// Type tells how an order came to exist.
type Type int

const (
	UnknownType Type = iota

	// BudgetDerived orders are created by converting an approved budget and
	// always reference it.
	BudgetDerived

	// Direct orders are created without a budget.
	Direct
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType:   "UNKNOWN",
		BudgetDerived: "BUDGET_DERIVED",
		Direct:        "DIRECT",
	}
}

func ParseType(raw string) (Type, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	for t, str := range getTypeStrings() {
		if t != UnknownType && str == name {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%q is not a valid order type", raw))
}

func (t Type) Validate() error {
	if t != BudgetDerived && t != Direct {
		return errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}
