package order

import (
	"fmt"
	"strings"

	"printshop/internal/pkg/errs"
)

// Status is the fulfillment label of an order. Unlike a budget's status it is
// not a state machine: any valid status may follow any other.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the status every order starts in.
	Pending
	InProduction
	Completed
	Delivered
	Cancelled
	OnHold
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "UNKNOWN",
		Pending:      "PENDING",
		InProduction: "IN_PRODUCTION",
		Completed:    "COMPLETED",
		Delivered:    "DELIVERED",
		Cancelled:    "CANCELLED",
		OnHold:       "ON_HOLD",
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
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", raw))
}

func (s Status) Validate() error {
	if s < Pending || s > OnHold {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
