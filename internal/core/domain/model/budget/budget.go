package budget

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/quote"
	"printshop/internal/core/domain/model/sequence"
	"printshop/internal/pkg/errs"
)

var (
	// ErrBudgetIsNotConstructed is returned when a Budget was not created through
	// NewBudget or RestoreBudget.
	ErrBudgetIsNotConstructed = errors.New("Budget must be created via NewBudget constructor")
)

// Draft is the editable part of a budget.
type Draft struct {
	Quote        quote.Quote
	ClientID     *kernel.ID
	CenterID     *kernel.ID
	Observations string
}

// Budget is the aggregate root of the approval workflow.
//
// Budget follows these invariants:
//   - Status changes only through Submit, Approve, Reject and MarkConverted
//   - Each audit timestamp is set once, by the transition producing its state
//   - Rejected => rejectedAt, rejectedByID set and a note appended to observations
//   - Converted => orderID set; a budget is converted at most once
//   - The quote, client, center and observations are editable only in Draft
type Budget struct {
	id           kernel.ID
	reference    sequence.Number
	orderNumber  sequence.Number
	status       Status
	clientID     *kernel.ID
	centerID     *kernel.ID
	quote        quote.Quote
	observations string

	createdByID   kernel.ID
	createdAt     time.Time
	updatedAt     time.Time
	submittedAt   *time.Time
	submittedByID *kernel.ID
	approvedAt    *time.Time
	approvedByID  *kernel.ID
	rejectedAt    *time.Time
	rejectedByID  *kernel.ID
	convertedAt   *time.Time
	convertedByID *kernel.ID
	orderID       *kernel.ID

	version int64

	isConstructed bool
}

// NewBudget creates a budget in Draft.
//
// Parameters:
//   - reference: the budget's own PRE number
//   - draft: quote, optional client/center and observations
//   - createdBy: the acting user
//   - now: creation time
//
// Returns:
//   - *Budget with Draft status and version 0
//   - a joined validation error if any input is invalid
func NewBudget(reference sequence.Number, draft Draft, createdBy kernel.ID, now time.Time) (*Budget, error) {
	b := &Budget{
		status:        Draft,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setReference(reference),
		b.setDraft(draft),
		b.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// State is the persisted form of a Budget, used only to rebuild one.
type State struct {
	ID            kernel.ID
	Reference     sequence.Number
	OrderNumber   sequence.Number
	Status        Status
	ClientID      *kernel.ID
	CenterID      *kernel.ID
	Quote         quote.Quote
	Observations  string
	CreatedByID   kernel.ID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	SubmittedAt   *time.Time
	SubmittedByID *kernel.ID
	ApprovedAt    *time.Time
	ApprovedByID  *kernel.ID
	RejectedAt    *time.Time
	RejectedByID  *kernel.ID
	ConvertedAt   *time.Time
	ConvertedByID *kernel.ID
	OrderID       *kernel.ID
	Version       int64
}

// RestoreBudget rebuilds a budget loaded from storage. It checks the
// invariants that tie status to audit fields so corrupted rows fail loudly.
func RestoreBudget(s State) (*Budget, error) {
	var problems []error
	problems = append(problems, s.ID.Validate(), s.Status.Validate(), s.Quote.Validate())
	if s.Reference.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("reference"))
	}
	if s.Status == Converted && s.OrderID == nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("orderId",
			errors.New("converted budget has no order")))
	}
	if s.Status == Rejected && (s.RejectedAt == nil || s.RejectedByID == nil) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("rejectedAt",
			errors.New("rejected budget has no rejection audit")))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Budget{
		id:            s.ID,
		reference:     s.Reference,
		orderNumber:   s.OrderNumber,
		status:        s.Status,
		clientID:      s.ClientID,
		centerID:      s.CenterID,
		quote:         s.Quote,
		observations:  s.Observations,
		createdByID:   s.CreatedByID,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		submittedAt:   s.SubmittedAt,
		submittedByID: s.SubmittedByID,
		approvedAt:    s.ApprovedAt,
		approvedByID:  s.ApprovedByID,
		rejectedAt:    s.RejectedAt,
		rejectedByID:  s.RejectedByID,
		convertedAt:   s.ConvertedAt,
		convertedByID: s.ConvertedByID,
		orderID:       s.OrderID,
		version:       s.Version,
		isConstructed: true,
	}, nil
}

// Validate ensures the budget was built by NewBudget or RestoreBudget.
func (b *Budget) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBudgetIsNotConstructed
	}
	return nil
}

func (b *Budget) ID() kernel.ID                 { return b.id }
func (b *Budget) Reference() sequence.Number    { return b.reference }
func (b *Budget) OrderNumber() sequence.Number  { return b.orderNumber }
func (b *Budget) Status() Status                { return b.status }
func (b *Budget) ClientID() *kernel.ID          { return b.clientID }
func (b *Budget) CenterID() *kernel.ID          { return b.centerID }
func (b *Budget) Quote() quote.Quote            { return b.quote }
func (b *Budget) Observations() string          { return b.observations }
func (b *Budget) CreatedByID() kernel.ID        { return b.createdByID }
func (b *Budget) CreatedAt() time.Time          { return b.createdAt }
func (b *Budget) UpdatedAt() time.Time          { return b.updatedAt }
func (b *Budget) SubmittedAt() *time.Time       { return b.submittedAt }
func (b *Budget) SubmittedByID() *kernel.ID     { return b.submittedByID }
func (b *Budget) ApprovedAt() *time.Time        { return b.approvedAt }
func (b *Budget) ApprovedByID() *kernel.ID      { return b.approvedByID }
func (b *Budget) RejectedAt() *time.Time        { return b.rejectedAt }
func (b *Budget) RejectedByID() *kernel.ID      { return b.rejectedByID }
func (b *Budget) ConvertedAt() *time.Time       { return b.convertedAt }
func (b *Budget) ConvertedByID() *kernel.ID     { return b.convertedByID }
func (b *Budget) OrderID() *kernel.ID           { return b.orderID }
func (b *Budget) Version() int64                { return b.version }
func (b *Budget) HasOrderNumber() bool          { return !b.orderNumber.IsZero() }

// AssignID records the identifier storage issued on insert.
func (b *Budget) AssignID(id kernel.ID) error {
	if !b.id.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("budget already has id %s", b.id))
	}
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

// AdvanceVersion is called by the repository after a successful write.
func (b *Budget) AdvanceVersion() {
	b.version++
}

// UpdateDraft replaces the editable fields. Only drafts can be edited.
func (b *Budget) UpdateDraft(draft Draft, now time.Time) error {
	if err := b.status.Can(TransitionEdit); err != nil {
		return err
	}
	if err := b.setDraft(draft); err != nil {
		return err
	}
	b.updatedAt = now
	return nil
}

// Submit moves a draft to Submitted.
//
// Guards, in order:
//   - status is Draft (InvalidTransitionError)
//   - client and center are set (validation error naming each missing one)
//
// The caller's role is checked by the authorization policy before this runs.
func (b *Budget) Submit(actor kernel.Actor, now time.Time) error {
	next, err := b.status.Apply(TransitionSubmit)
	if err != nil {
		return err
	}

	var missing []error
	if b.clientID == nil {
		missing = append(missing, errs.NewValueIsRequiredError("clientId"))
	}
	if b.centerID == nil {
		missing = append(missing, errs.NewValueIsRequiredError("centerId"))
	}
	if err := errors.Join(missing...); err != nil {
		return err
	}

	by := actor.UserID()
	b.status = next
	b.submittedAt = &now
	b.submittedByID = &by
	b.updatedAt = now
	return nil
}

// Approve moves a submitted budget to Approved.
func (b *Budget) Approve(actor kernel.Actor, now time.Time) error {
	next, err := b.status.Apply(TransitionApprove)
	if err != nil {
		return err
	}

	by := actor.UserID()
	b.status = next
	b.approvedAt = &now
	b.approvedByID = &by
	b.updatedAt = now
	return nil
}

// Reject moves a submitted budget to Rejected and appends a note to the
// observations:
//
//	[2026-03-04T10:00:00Z] Rejected by user 7: price too high
//
// Existing observations are kept; the note goes on a new line.
func (b *Budget) Reject(actor kernel.Actor, reason string, now time.Time) error {
	next, err := b.status.Apply(TransitionReject)
	if err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	by := actor.UserID()
	note := fmt.Sprintf("[%s] Rejected by user %s: %s", now.UTC().Format(time.RFC3339), by, reason)
	if b.observations == "" {
		b.observations = note
	} else {
		b.observations = b.observations + "\n" + note
	}

	b.status = next
	b.rejectedAt = &now
	b.rejectedByID = &by
	b.updatedAt = now
	return nil
}

// ValidateConvert checks the conversion preconditions without side effects.
//
// Returns:
//   - InvalidTransitionError unless the budget is Approved
//   - a validation error if an order is already linked
func (b *Budget) ValidateConvert() error {
	if err := b.status.Can(TransitionConvert); err != nil {
		return err
	}
	if b.orderID != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("budget already has order %s", b.orderID))
	}
	return nil
}

// AssignOrderNumber reserves n for the order this budget will become.
// The number is kept even if the conversion later fails, so a retry reuses it.
func (b *Budget) AssignOrderNumber(n sequence.Number, now time.Time) error {
	if err := b.ValidateConvert(); err != nil {
		return err
	}
	if err := n.Validate(); err != nil {
		return err
	}
	if n.DocumentType() != sequence.OrderDocument {
		return errs.NewValueIsInvalidErrorWithCause("orderNumber",
			fmt.Errorf("%s is not an order number", n))
	}
	if b.HasOrderNumber() {
		return errs.NewValueIsInvalidErrorWithCause("orderNumber",
			fmt.Errorf("budget already holds %s", b.orderNumber))
	}
	b.orderNumber = n
	b.updatedAt = now
	return nil
}

// Snapshot is the value copy of a budget an order is created from.
type Snapshot struct {
	BudgetID    kernel.ID
	OrderNumber sequence.Number
	ClientID    *kernel.ID
	CenterID    *kernel.ID
	Quote       quote.Quote
}

// Snapshot copies the fields an order keeps. It requires a convertible budget
// holding an order number.
func (b *Budget) Snapshot() (Snapshot, error) {
	if err := b.ValidateConvert(); err != nil {
		return Snapshot{}, err
	}
	if !b.HasOrderNumber() {
		return Snapshot{}, errs.NewValueIsRequiredError("orderNumber")
	}
	return Snapshot{
		BudgetID:    b.id,
		OrderNumber: b.orderNumber,
		ClientID:    copyID(b.clientID),
		CenterID:    copyID(b.centerID),
		Quote:       b.quote,
	}, nil
}

// MarkConverted links the created order and moves the budget to Converted.
// The order must be persisted in the same unit of work.
func (b *Budget) MarkConverted(orderID kernel.ID, actor kernel.Actor, now time.Time) error {
	if err := b.ValidateConvert(); err != nil {
		return err
	}
	if !b.HasOrderNumber() {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	next, err := b.status.Apply(TransitionConvert)
	if err != nil {
		return err
	}

	by := actor.UserID()
	b.status = next
	b.orderID = &orderID
	b.convertedAt = &now
	b.convertedByID = &by
	b.updatedAt = now
	return nil
}

func (b *Budget) setReference(reference sequence.Number) error {
	if err := reference.Validate(); err != nil {
		return err
	}
	if reference.DocumentType() != sequence.BudgetDocument {
		return errs.NewValueIsInvalidErrorWithCause("reference", fmt.Errorf("%s is not a budget number", reference))
	}
	b.reference = reference
	return nil
}

func (b *Budget) setDraft(draft Draft) error {
	var problems []error
	if err := draft.Quote.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("quote", err))
	}
	if draft.ClientID != nil {
		if err := draft.ClientID.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("clientId", err))
		}
	}
	if draft.CenterID != nil {
		if err := draft.CenterID.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("centerId", err))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	b.quote = draft.Quote
	b.clientID = copyID(draft.ClientID)
	b.centerID = copyID(draft.CenterID)
	b.observations = draft.Observations
	return nil
}

func (b *Budget) setCreatedBy(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("createdBy", err)
	}
	b.createdByID = id
	return nil
}

func copyID(id *kernel.ID) *kernel.ID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
