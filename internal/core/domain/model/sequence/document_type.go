package sequence

import (
	"fmt"

	"printshop/internal/pkg/errs"
)

// DocumentType is the prefix that partitions the numbering space.
type DocumentType string

const (
	// BudgetDocument numbers budgets from the moment they are drafted.
	BudgetDocument DocumentType = "PRE"

	// OrderDocument numbers orders. Budget conversions draw from it too, so
	// a derived order keeps the number reserved on its budget.
	OrderDocument DocumentType = "PED"
)

func (t DocumentType) Validate() error {
	switch t {
	case BudgetDocument, OrderDocument:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("documentType", fmt.Errorf("%q is not a known prefix", string(t)))
	}
}

func (t DocumentType) String() string {
	return string(t)
}
