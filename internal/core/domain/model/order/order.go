package order

import (
	"errors"
	"fmt"
	"time"

	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/quote"
	"printshop/internal/core/domain/model/sequence"
	"printshop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// one of the package constructors.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrderFromBudget or NewDirectOrder constructor")
)

// Order is a production job.
//
// Order follows these invariants:
//   - number is always set and is a PED number
//   - budgetID is set if and only if the type is BudgetDerived
//   - the quote is a value copy; editing the source budget never changes it
//   - status is any valid Status, set freely after creation
type Order struct {
	id        kernel.ID
	number    sequence.Number
	orderType Type
	budgetID  *kernel.ID
	status    Status
	clientID  *kernel.ID
	centerID  *kernel.ID
	quote     quote.Quote

	createdByID kernel.ID
	createdAt   time.Time
	updatedAt   time.Time
	version     int64

	isConstructed bool
}

// NewOrderFromBudget creates the order a budget converts into.
//
// Parameters:
//   - snap: the budget snapshot taken inside the converting unit of work
//   - createdBy: the actor running the conversion
//   - now: creation time
//
// Returns:
//   - *Order in Pending status, typed BudgetDerived
//   - a validation error if the snapshot is incomplete
func NewOrderFromBudget(snap budget.Snapshot, createdBy kernel.ID, now time.Time) (*Order, error) {
	if err := snap.BudgetID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("budgetId", err)
	}
	budgetID := snap.BudgetID

	o := &Order{
		orderType:     BudgetDerived,
		budgetID:      &budgetID,
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	if err := errors.Join(
		o.setNumber(snap.OrderNumber),
		o.setParties(snap.ClientID, snap.CenterID),
		o.setQuote(snap.Quote),
		o.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}
	return o, nil
}

// NewDirectOrder creates an order that bypasses the budget workflow.
func NewDirectOrder(
	number sequence.Number, q quote.Quote, clientID, centerID *kernel.ID, createdBy kernel.ID, now time.Time,
) (*Order, error) {
	o := &Order{
		orderType:     Direct,
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	if err := errors.Join(
		o.setNumber(number),
		o.setParties(clientID, centerID),
		o.setQuote(q),
		o.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}
	return o, nil
}

// State is the persisted form of an Order, used only to rebuild one.
type State struct {
	ID          kernel.ID
	Number      sequence.Number
	Type        Type
	BudgetID    *kernel.ID
	Status      Status
	ClientID    *kernel.ID
	CenterID    *kernel.ID
	Quote       quote.Quote
	CreatedByID kernel.ID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
}

// RestoreOrder rebuilds an order loaded from storage.
func RestoreOrder(s State) (*Order, error) {
	problems := []error{s.ID.Validate(), s.Type.Validate(), s.Status.Validate(), s.Quote.Validate(), s.Number.Validate()}
	if s.Type == BudgetDerived && s.BudgetID == nil {
		problems = append(problems, errs.NewValueIsRequiredError("budgetId"))
	}
	if s.Type == Direct && s.BudgetID != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("budgetId",
			errors.New("direct order references a budget")))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Order{
		id:            s.ID,
		number:        s.Number,
		orderType:     s.Type,
		budgetID:      s.BudgetID,
		status:        s.Status,
		clientID:      s.ClientID,
		centerID:      s.CenterID,
		quote:         s.Quote,
		createdByID:   s.CreatedByID,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		version:       s.Version,
		isConstructed: true,
	}, nil
}

// Validate ensures the order was built by a package constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.ID           { return o.id }
func (o *Order) Number() sequence.Number { return o.number }
func (o *Order) Type() Type              { return o.orderType }
func (o *Order) BudgetID() *kernel.ID    { return o.budgetID }
func (o *Order) Status() Status          { return o.status }
func (o *Order) ClientID() *kernel.ID    { return o.clientID }
func (o *Order) CenterID() *kernel.ID    { return o.centerID }
func (o *Order) Quote() quote.Quote      { return o.quote }
func (o *Order) CreatedByID() kernel.ID  { return o.createdByID }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }
func (o *Order) Version() int64          { return o.version }

// AssignID records the identifier storage issued on insert.
func (o *Order) AssignID(id kernel.ID) error {
	if !o.id.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order already has id %s", o.id))
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// AdvanceVersion is called by the repository after a successful write.
func (o *Order) AdvanceVersion() {
	o.version++
}

// SetStatus relabels the order. Any valid status is accepted.
func (o *Order) SetStatus(status Status, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	o.updatedAt = now
	return nil
}

// ValidateDelete allows deleting direct orders only. A budget-derived order
// backs its budget's Converted status and is cancelled instead.
func (o *Order) ValidateDelete() error {
	if o.orderType != Direct {
		return errs.NewValueIsInvalidErrorWithCause("orderType",
			fmt.Errorf("%s orders cannot be deleted, set status %s instead", o.orderType, Cancelled))
	}
	return nil
}

func (o *Order) setNumber(n sequence.Number) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if n.DocumentType() != sequence.OrderDocument {
		return errs.NewValueIsInvalidErrorWithCause("number", fmt.Errorf("%s is not an order number", n))
	}
	o.number = n
	return nil
}

func (o *Order) setParties(clientID, centerID *kernel.ID) error {
	if clientID != nil {
		if err := clientID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("clientId", err)
		}
		v := *clientID
		o.clientID = &v
	}
	if centerID != nil {
		if err := centerID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("centerId", err)
		}
		v := *centerID
		o.centerID = &v
	}
	return nil
}

func (o *Order) setQuote(q quote.Quote) error {
	if err := q.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("quote", err)
	}
	o.quote = q
	return nil
}

func (o *Order) setCreatedBy(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("createdBy", err)
	}
	o.createdByID = id
	return nil
}
