// Package pgutil holds the column mappings and error translation shared by the
// postgres repositories.
package pgutil

import (
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/quote"

	"github.com/shopspring/decimal"
)

// QuoteDTO is the embedded column set of a quote. Budgets and orders each keep
// their own copy.
type QuoteDTO struct {
	Title         string          `gorm:"type:text;not null"`
	RunSize       int             `gorm:"not null"`
	InteriorPages int             `gorm:"not null;default:0"`
	CoverPages    int             `gorm:"not null;default:0"`
	Paper         string          `gorm:"type:text"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DeliveryTerms string          `gorm:"type:text"`
	DeliveryDate  *time.Time
	Finishing     string `gorm:"type:text"`
	Requester     string `gorm:"type:text"`
	Author        string `gorm:"type:text"`
	Publisher     string `gorm:"type:text"`
	ISBN          string `gorm:"column:isbn;size:32"`
}

func QuoteFromDomain(q quote.Quote) QuoteDTO {
	dto := QuoteDTO{
		Title:         q.Title(),
		RunSize:       q.RunSize(),
		InteriorPages: q.InteriorPages(),
		CoverPages:    q.CoverPages(),
		Paper:         q.Paper(),
		UnitPrice:     q.UnitPrice(),
		TotalPrice:    q.TotalPrice(),
		DeliveryTerms: q.DeliveryTerms(),
		Finishing:     q.Finishing(),
		Requester:     q.Requester(),
		Author:        q.Author(),
		Publisher:     q.Publisher(),
		ISBN:          q.ISBN(),
	}
	if at, ok := q.DeliveryDate(); ok {
		dto.DeliveryDate = &at
	}
	return dto
}

func (d QuoteDTO) ToDomain() (quote.Quote, error) {
	p := quote.Params{
		Title:         d.Title,
		RunSize:       d.RunSize,
		InteriorPages: d.InteriorPages,
		CoverPages:    d.CoverPages,
		Paper:         d.Paper,
		UnitPrice:     d.UnitPrice,
		TotalPrice:    d.TotalPrice,
		DeliveryTerms: d.DeliveryTerms,
		Finishing:     d.Finishing,
		Requester:     d.Requester,
		Author:        d.Author,
		Publisher:     d.Publisher,
		ISBN:          d.ISBN,
	}
	if d.DeliveryDate != nil {
		p.DeliveryDate = d.DeliveryDate.UTC()
	}
	return quote.NewQuote(p)
}

// FromIDPtr maps an optional id to a nullable bigint.
func FromIDPtr(id *kernel.ID) *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}

// ToIDPtr maps a nullable bigint back to an optional id.
func ToIDPtr(v *int64) *kernel.ID {
	if v == nil {
		return nil
	}
	id := kernel.ID(*v)
	return &id
}

// UTCPtr normalizes a nullable timestamp read from the driver.
func UTCPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
