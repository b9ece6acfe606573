// Package guard holds small helpers that protect domain objects from being
// used in a half-built state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// guarded value is a zero value and the caller supplied no error of its own.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. Embedding it in a
// value object lets Validate tell a constructed value from a zero value, so code
// that receives e.g. a kernel.Actor{} literal fails instead of acting with an
// empty identity.
//
// Example usage:
//
//	var ErrActorNotConstructed = errors.New("Actor must be created via NewActor")
//
//	type Actor struct {
//	    userID ID
//	    role   Role
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewActor(userID ID, role Role) (Actor, error) {
//	    // validate inputs...
//	    return Actor{userID: userID, role: role, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (a Actor) Validate() error {
//	    return a.guard.Validate(ErrActorNotConstructed)
//	}
//
// The guard is a plain bool, safe to copy and to read concurrently.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
// Call it only from the constructor of the owning type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded value went through its constructor.
//
// Parameters:
//   - validationError: the error to return for a zero value; nil selects
//     ErrDefaultConstructorGuard
//
// Returns:
//   - nil if the value was constructed
//   - validationError (or the default) otherwise
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
