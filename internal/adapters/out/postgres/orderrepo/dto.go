// Package orderrepo persists order aggregates in the orders table and maps
// them to and from their row form.
package orderrepo

import (
	"time"

	"printshop/internal/adapters/out/postgres/pgutil"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/sequence"
)

// OrderDTO is the row form of an order. The unique index on budget_id keeps a
// budget from being converted twice; NULLs for direct orders do not collide.
type OrderDTO struct {
	ID       int64           `gorm:"primaryKey;autoIncrement"`
	Number   string          `gorm:"size:32;not null;uniqueIndex"`
	Type     string          `gorm:"size:16;not null"`
	BudgetID *int64          `gorm:"uniqueIndex"`
	Status   string          `gorm:"size:16;not null;index"`
	ClientID *int64          `gorm:"index"`
	CenterID *int64          `gorm:"index"`
	Quote    pgutil.QuoteDTO `gorm:"embedded"`

	CreatedByID int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
	Version     int64     `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:          int64(o.ID()),
		Number:      o.Number().String(),
		Type:        o.Type().String(),
		BudgetID:    pgutil.FromIDPtr(o.BudgetID()),
		Status:      o.Status().String(),
		ClientID:    pgutil.FromIDPtr(o.ClientID()),
		CenterID:    pgutil.FromIDPtr(o.CenterID()),
		Quote:       pgutil.QuoteFromDomain(o.Quote()),
		CreatedByID: int64(o.CreatedByID()),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		Version:     o.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	number, err := sequence.ParseNumber(dto.Number)
	if err != nil {
		return nil, err
	}

	orderType, err := order.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	q, err := dto.Quote.ToDomain()
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:          kernel.ID(dto.ID),
		Number:      number,
		Type:        orderType,
		BudgetID:    pgutil.ToIDPtr(dto.BudgetID),
		Status:      status,
		ClientID:    pgutil.ToIDPtr(dto.ClientID),
		CenterID:    pgutil.ToIDPtr(dto.CenterID),
		Quote:       q,
		CreatedByID: kernel.ID(dto.CreatedByID),
		CreatedAt:   dto.CreatedAt.UTC(),
		UpdatedAt:   dto.UpdatedAt.UTC(),
		Version:     dto.Version,
	})
}
