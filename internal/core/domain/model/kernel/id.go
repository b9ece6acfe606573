package kernel

import (
	"errors"
	"strconv"

	"printshop/internal/pkg/errs"
)

// ID is a storage-assigned numeric identifier. The zero value means "not yet
// persisted" and is never a valid reference.
type ID uint64

// ParseID converts the decimal text form used on the wire into an ID.
func ParseID(paramName, raw string) (ID, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	id := ID(v)
	if err := id.Validate(); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return id, nil
}

// Validate reports whether the ID references a stored entity.
func (id ID) Validate() error {
	if id.IsZero() {
		return errs.NewValueIsRequiredErrorWithCause("id", errors.New("id must be greater than 0"))
	}
	return nil
}

func (id ID) IsZero() bool {
	return id == 0
}

func (id ID) Uint64() uint64 {
	return uint64(id)
}

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
