// Package sequencerepo issues PRE and PED document numbers from counters kept
// in the sequence_counters table.
package sequencerepo

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/sequence"
	"printshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// SequenceCounterDTO is one counter row. Key is a document type, optionally
// suffixed with a year.
type SequenceCounterDTO struct {
	Key       string    `gorm:"primaryKey;size:32"`
	LastValue int64     `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (SequenceCounterDTO) TableName() string {
	return "sequence_counters"
}

// nextValueSQL creates the counter at 1 or advances it by one, returning the
// new value. The row lock taken by the upsert serializes concurrent callers.
const nextValueSQL = `
	INSERT INTO sequence_counters (key, last_value, updated_at)
	VALUES (?, 1, NOW())
	ON CONFLICT (key) DO UPDATE
		SET last_value = sequence_counters.last_value + 1,
		    updated_at = NOW()
	RETURNING last_value`

// GormSequenceAllocator implements ports.SequenceAllocator.
//
// It must be built on the root connection, never on a unit of work's
// transaction: every Next commits on its own, so numbers handed to a caller
// that later rolls back stay consumed and are never issued twice.
type GormSequenceAllocator struct {
	db     *gorm.DB
	scheme sequence.Scheme
	clock  func() time.Time
}

func NewGormSequenceAllocator(db *gorm.DB, scheme sequence.Scheme) *GormSequenceAllocator {
	return &GormSequenceAllocator{
		db:     db,
		scheme: scheme,
		clock:  time.Now,
	}
}

// WithClock returns a copy that reads the current time from clock. Only
// year-scoped schemes look at it.
func (a *GormSequenceAllocator) WithClock(clock func() time.Time) *GormSequenceAllocator {
	c := *a
	c.clock = clock
	return &c
}

// Next issues the next number for docType.
func (a *GormSequenceAllocator) Next(ctx context.Context, docType sequence.DocumentType) (sequence.Number, error) {
	if err := docType.Validate(); err != nil {
		return sequence.Number{}, err
	}

	at := a.clock().UTC()
	key := a.scheme.CounterKey(docType, at)

	var value int64
	if err := a.db.WithContext(ctx).Raw(nextValueSQL, key).Scan(&value).Error; err != nil {
		return sequence.Number{}, errs.NewAllocationFailedError(key, err)
	}

	return a.scheme.Number(docType, at, value)
}
