package ports

import (
	"context"

	"printshop/internal/core/domain/model/sequence"
)

// SequenceAllocator issues document numbers.
//
// Implementations must advance and read the counter in one atomic step, so
// concurrent callers for the same document type never share a number, and must
// commit the advance independently of any caller transaction, so a rolled-back
// caller never hands its number back. Any failure, including exhaustion, is an
// *errs.AllocationFailedError.
type SequenceAllocator interface {
	Next(ctx context.Context, docType sequence.DocumentType) (sequence.Number, error)
}
