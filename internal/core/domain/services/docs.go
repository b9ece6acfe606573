// Package services provides domain services that do not belong to a single
// aggregate.
//
// The package includes:
//   - AuthorizationPolicy: a pure (role, action) -> allow/deny decision backed
//     by one table of minimum roles
package services
