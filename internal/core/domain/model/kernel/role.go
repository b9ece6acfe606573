package kernel

import (
	"fmt"
	"strings"

	"printshop/internal/pkg/errs"
)

// Role is the caller's privilege level. Roles are totally ordered by their
// numeric value, so privilege checks compare with AtLeast instead of matching
// names.
//
//	USER < MODERATOR < ADMIN
type Role int

const (
	// RoleUnknown catches uninitialized or unparsable roles. It is below every
	// valid role and is never allowed to act.
	RoleUnknown Role = iota

	// RoleUser is any authenticated person. Users create and edit drafts and
	// orders but cannot move a budget through the approval workflow.
	RoleUser

	// RoleModerator runs the approval workflow.
	RoleModerator

	// RoleAdmin can do everything a moderator can and also sees raw internal
	// error text.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:   "UNKNOWN",
		RoleUser:      "USER",
		RoleModerator: "MODERATOR",
		RoleAdmin:     "ADMIN",
	}
}

// ParseRole converts the wire name of a role into a Role. Matching ignores
// case and surrounding whitespace.
//
// Returns:
//   - the matching Role and nil
//   - RoleUnknown and a ValueIsInvalidError for anything else, including "UNKNOWN"
func ParseRole(raw string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	for role, s := range getRoleStrings() {
		if role != RoleUnknown && s == name {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", raw))
}

func (r Role) Validate() error {
	if r < RoleUser || r > RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// AtLeast reports whether r grants at least the privileges of minimum.
// An invalid role never satisfies any minimum.
func (r Role) AtLeast(minimum Role) bool {
	if r.Validate() != nil {
		return false
	}
	return r >= minimum
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "UNKNOWN"
}
