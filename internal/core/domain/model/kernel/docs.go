// Package kernel provides the shared value objects of the print-shop domain.
//
// The package includes:
//   - ID: a storage-assigned numeric identifier for budgets, orders and users
//   - Role: the caller's privilege level, totally ordered USER < MODERATOR < ADMIN
//   - Actor: the verified {userId, role} pair an upstream identity provider hands
//     to every workflow operation
//
// Values are immutable and safe for concurrent use.
package kernel
