// Package queries contains read-only operations. Handlers read the tables
// with raw SQL into response structs and never load aggregates.
package queries

import (
	"time"

	"printshop/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// quoteColumns selects the embedded quote columns in QuoteResponse.targets order.
const quoteColumns = `title, run_size, interior_pages, cover_pages, paper,
	unit_price, total_price, delivery_terms, delivery_date, finishing,
	requester, author, publisher, isbn`

// QuoteResponse is the job description shared by budgets and orders.
type QuoteResponse struct {
	Title         string
	RunSize       int
	InteriorPages int
	CoverPages    int
	Paper         string
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	DeliveryTerms string
	DeliveryDate  *time.Time
	Finishing     string
	Requester     string
	Author        string
	Publisher     string
	ISBN          string
}

func (q *QuoteResponse) targets() []any {
	return []any{
		&q.Title, &q.RunSize, &q.InteriorPages, &q.CoverPages, &q.Paper,
		&q.UnitPrice, &q.TotalPrice, &q.DeliveryTerms, &q.DeliveryDate, &q.Finishing,
		&q.Requester, &q.Author, &q.Publisher, &q.ISBN,
	}
}

func toIDPtr(v *int64) *kernel.ID {
	if v == nil {
		return nil
	}
	id := kernel.ID(*v)
	return &id
}

func toUTCPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
