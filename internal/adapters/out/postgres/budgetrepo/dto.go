// Package budgetrepo persists budget aggregates in the budgets table and maps
// them to and from their row form.
package budgetrepo

import (
	"time"

	"printshop/internal/adapters/out/postgres/pgutil"
	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/sequence"
)

// BudgetDTO is the row form of a budget. Timestamps are written exactly as
// the aggregate holds them, so GORM's automatic time tracking is off.
type BudgetDTO struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	Reference    string          `gorm:"size:32;not null;uniqueIndex"`
	OrderNumber  *string         `gorm:"size:32;uniqueIndex"`
	Status       string          `gorm:"size:16;not null;index"`
	ClientID     *int64          `gorm:"index"`
	CenterID     *int64          `gorm:"index"`
	Quote        pgutil.QuoteDTO `gorm:"embedded"`
	Observations string          `gorm:"type:text;not null;default:''"`

	CreatedByID   int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime:false"`
	SubmittedAt   *time.Time
	SubmittedByID *int64
	ApprovedAt    *time.Time
	ApprovedByID  *int64
	RejectedAt    *time.Time
	RejectedByID  *int64
	ConvertedAt   *time.Time
	ConvertedByID *int64
	OrderID       *int64

	Version int64 `gorm:"not null;default:0"`
}

func (BudgetDTO) TableName() string {
	return "budgets"
}

func fromDomain(b *budget.Budget) BudgetDTO {
	var orderNumber *string
	if b.HasOrderNumber() {
		n := b.OrderNumber().String()
		orderNumber = &n
	}

	return BudgetDTO{
		ID:            int64(b.ID()),
		Reference:     b.Reference().String(),
		OrderNumber:   orderNumber,
		Status:        b.Status().String(),
		ClientID:      pgutil.FromIDPtr(b.ClientID()),
		CenterID:      pgutil.FromIDPtr(b.CenterID()),
		Quote:         pgutil.QuoteFromDomain(b.Quote()),
		Observations:  b.Observations(),
		CreatedByID:   int64(b.CreatedByID()),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
		SubmittedAt:   b.SubmittedAt(),
		SubmittedByID: pgutil.FromIDPtr(b.SubmittedByID()),
		ApprovedAt:    b.ApprovedAt(),
		ApprovedByID:  pgutil.FromIDPtr(b.ApprovedByID()),
		RejectedAt:    b.RejectedAt(),
		RejectedByID:  pgutil.FromIDPtr(b.RejectedByID()),
		ConvertedAt:   b.ConvertedAt(),
		ConvertedByID: pgutil.FromIDPtr(b.ConvertedByID()),
		OrderID:       pgutil.FromIDPtr(b.OrderID()),
		Version:       b.Version(),
	}
}

func toDomain(dto BudgetDTO) (*budget.Budget, error) {
	reference, err := sequence.ParseNumber(dto.Reference)
	if err != nil {
		return nil, err
	}

	var orderNumber sequence.Number
	if dto.OrderNumber != nil {
		if orderNumber, err = sequence.ParseNumber(*dto.OrderNumber); err != nil {
			return nil, err
		}
	}

	status, err := budget.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	q, err := dto.Quote.ToDomain()
	if err != nil {
		return nil, err
	}

	return budget.RestoreBudget(budget.State{
		ID:            kernel.ID(dto.ID),
		Reference:     reference,
		OrderNumber:   orderNumber,
		Status:        status,
		ClientID:      pgutil.ToIDPtr(dto.ClientID),
		CenterID:      pgutil.ToIDPtr(dto.CenterID),
		Quote:         q,
		Observations:  dto.Observations,
		CreatedByID:   kernel.ID(dto.CreatedByID),
		CreatedAt:     dto.CreatedAt.UTC(),
		UpdatedAt:     dto.UpdatedAt.UTC(),
		SubmittedAt:   pgutil.UTCPtr(dto.SubmittedAt),
		SubmittedByID: pgutil.ToIDPtr(dto.SubmittedByID),
		ApprovedAt:    pgutil.UTCPtr(dto.ApprovedAt),
		ApprovedByID:  pgutil.ToIDPtr(dto.ApprovedByID),
		RejectedAt:    pgutil.UTCPtr(dto.RejectedAt),
		RejectedByID:  pgutil.ToIDPtr(dto.RejectedByID),
		ConvertedAt:   pgutil.UTCPtr(dto.ConvertedAt),
		ConvertedByID: pgutil.ToIDPtr(dto.ConvertedByID),
		OrderID:       pgutil.ToIDPtr(dto.OrderID),
		Version:       dto.Version,
	})
}
