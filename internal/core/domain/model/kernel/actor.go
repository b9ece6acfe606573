package kernel

import (
	"errors"

	"printshop/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the verified identity performing an operation. The engine trusts
// the pair as given; verifying it is the identity provider's job.
type Actor struct {
	userID ID
	role   Role
	guard  guard.ConstructorGuard
}

// NewActor builds an Actor from a verified user id and role.
//
// Returns:
//   - Actor and nil when both values are valid
//   - a joined validation error naming every invalid field otherwise
func NewActor(userID ID, role Role) (Actor, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{userID: userID, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) UserID() ID {
	return a.userID
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}
