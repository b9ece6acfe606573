// Package budget implements the Budget aggregate and its approval workflow.
//
// A budget is a price quote. It is drafted, submitted for approval, then either
// rejected or approved, and an approved budget is converted exactly once into
// an order. Status and Transition hold the single table of legal moves; the
// Budget methods add the field guards each move needs.
//
// Role checks are not done here. Callers consult the authorization policy
// before invoking a transition, and the aggregate only records who acted.
package budget
