package budget

import (
	"fmt"
	"strings"

	"printshop/internal/pkg/errs"
)

// Status represents the lifecycle state of a budget.
//
// State transitions:
//
//	Draft ──submit──> Submitted ──approve──> Approved ──convert──> Converted
//	                      │
//	                      └──reject──> Rejected
//
// Rejected and Converted are final. Every other request fails with an
// InvalidTransitionError naming the current and the requested state, including
// a request that repeats a transition the budget already went through.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Draft is the editable state a budget is created in.
	Draft

	// Submitted budgets wait for a moderator's decision.
	Submitted

	// Approved budgets can be converted into an order.
	Approved

	// Rejected is final. The reason is kept in the observations.
	Rejected

	// Converted is final. The budget has exactly one derived order.
	Converted
)

// Transition names a workflow action on a budget.
type Transition string

const (
	TransitionSubmit  Transition = "submit"
	TransitionApprove Transition = "approve"
	TransitionReject  Transition = "reject"
	TransitionConvert Transition = "convert"
	TransitionEdit    Transition = "edit"
)

type edge struct {
	from Status
	to   Status
}

// getTransitions is the single table of legal budget transitions.
func getTransitions() map[Transition]edge {
	return map[Transition]edge{
		TransitionSubmit:  {from: Draft, to: Submitted},
		TransitionApprove: {from: Submitted, to: Approved},
		TransitionReject:  {from: Submitted, to: Rejected},
		TransitionConvert: {from: Approved, to: Converted},
		TransitionEdit:    {from: Draft, to: Draft},
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Draft:     "DRAFT",
		Submitted: "SUBMITTED",
		Approved:  "APPROVED",
		Rejected:  "REJECTED",
		Converted: "CONVERTED",
	}
}

// ParseStatus converts a stored or wire status name into a Status.
func ParseStatus(raw string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	for s, str := range getStatusStrings() {
		if s != Unknown && str == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid budget status", raw))
}

// Validate checks that s is one of the five lifecycle states.
func (s Status) Validate() error {
	if s < Draft || s > Converted {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid budget status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsFinal reports whether no transition leaves s.
func (s Status) IsFinal() bool {
	return s == Rejected || s == Converted
}

// Can validates transition t from s without performing it.
//
// Returns:
//   - nil if s is the source state of t
//   - InvalidTransitionError naming s and the target of t otherwise
func (s Status) Can(t Transition) error {
	e, ok := getTransitions()[t]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("transition", fmt.Errorf("%q is not a budget transition", string(t)))
	}
	if s != e.from {
		return errs.NewInvalidTransitionError("budget", string(t), s.String(), e.to.String())
	}
	return nil
}

// Apply performs transition t from s.
//
// Example:
//
//	next, err := current.Apply(TransitionApprove)
//	if err != nil {
//	    // current was not Submitted
//	}
func (s Status) Apply(t Transition) (Status, error) {
	if err := s.Can(t); err != nil {
		return Unknown, err
	}
	return getTransitions()[t].to, nil
}
