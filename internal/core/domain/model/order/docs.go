// Package order provides the Order aggregate: a production job tracked through
// fulfillment.
//
// The package includes:
//   - Order: the aggregate root, created either from a budget snapshot or directly
//   - Status: a flat fulfillment label (PENDING, IN_PRODUCTION, COMPLETED,
//     DELIVERED, CANCELLED, ON_HOLD) with no transition graph
//   - Type: BUDGET_DERIVED or DIRECT
//
// Key business rules:
//   - Every order carries a PED number from the moment it exists
//   - A budget-derived order references its budget, a direct one never does
//   - Quote fields are copied by value at creation
//   - Only direct orders may be deleted
package order
