package http

import (
	"time"

	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/quote"
	"printshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Quote is the wire form of a job description. Prices travel as decimal
// strings.
type Quote struct {
	Title         string           `json:"title"`
	RunSize       int              `json:"runSize"`
	InteriorPages int              `json:"interiorPages,omitempty"`
	CoverPages    int              `json:"coverPages,omitempty"`
	Paper         string           `json:"paper,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unitPrice,omitempty"`
	TotalPrice    *decimal.Decimal `json:"totalPrice,omitempty"`
	DeliveryTerms string           `json:"deliveryTerms,omitempty"`
	DeliveryDate  string           `json:"deliveryDate,omitempty"`
	Finishing     string           `json:"finishing,omitempty"`
	Requester     string           `json:"requester,omitempty"`
	Author        string           `json:"author,omitempty"`
	Publisher     string           `json:"publisher,omitempty"`
	ISBN          string           `json:"isbn,omitempty"`
}

func (q Quote) params() (quote.Params, error) {
	p := quote.Params{
		Title:         q.Title,
		RunSize:       q.RunSize,
		InteriorPages: q.InteriorPages,
		CoverPages:    q.CoverPages,
		Paper:         q.Paper,
		DeliveryTerms: q.DeliveryTerms,
		Finishing:     q.Finishing,
		Requester:     q.Requester,
		Author:        q.Author,
		Publisher:     q.Publisher,
		ISBN:          q.ISBN,
	}
	if q.UnitPrice != nil {
		p.UnitPrice = *q.UnitPrice
	}
	if q.TotalPrice != nil {
		p.TotalPrice = *q.TotalPrice
	}
	if q.DeliveryDate != "" {
		d, err := time.Parse(dateLayout, q.DeliveryDate)
		if err != nil {
			return quote.Params{}, errs.NewValueIsInvalidErrorWithCause("deliveryDate", err)
		}
		p.DeliveryDate = d
	}
	return p, nil
}

func quoteFromDomain(q quote.Quote) Quote {
	unit, total := q.UnitPrice(), q.TotalPrice()
	out := Quote{
		Title:         q.Title(),
		RunSize:       q.RunSize(),
		InteriorPages: q.InteriorPages(),
		CoverPages:    q.CoverPages(),
		Paper:         q.Paper(),
		UnitPrice:     &unit,
		TotalPrice:    &total,
		DeliveryTerms: q.DeliveryTerms(),
		Finishing:     q.Finishing(),
		Requester:     q.Requester(),
		Author:        q.Author(),
		Publisher:     q.Publisher(),
		ISBN:          q.ISBN(),
	}
	if d, ok := q.DeliveryDate(); ok {
		out.DeliveryDate = d.Format(dateLayout)
	}
	return out
}

func quoteFromQuery(q queries.QuoteResponse) Quote {
	out := Quote{
		Title:         q.Title,
		RunSize:       q.RunSize,
		InteriorPages: q.InteriorPages,
		CoverPages:    q.CoverPages,
		Paper:         q.Paper,
		UnitPrice:     &q.UnitPrice,
		TotalPrice:    &q.TotalPrice,
		DeliveryTerms: q.DeliveryTerms,
		Finishing:     q.Finishing,
		Requester:     q.Requester,
		Author:        q.Author,
		Publisher:     q.Publisher,
		ISBN:          q.ISBN,
	}
	if q.DeliveryDate != nil {
		out.DeliveryDate = q.DeliveryDate.Format(dateLayout)
	}
	return out
}

// BudgetDraft is the body of budget create and update requests.
type BudgetDraft struct {
	Quote        Quote   `json:"quote"`
	ClientID     *uint64 `json:"clientId,omitempty"`
	CenterID     *uint64 `json:"centerId,omitempty"`
	Observations string  `json:"observations,omitempty"`
}

type NewOrder struct {
	Quote    Quote   `json:"quote"`
	ClientID *uint64 `json:"clientId,omitempty"`
	CenterID *uint64 `json:"centerId,omitempty"`
}

type RejectBudget struct {
	Reason string `json:"reason"`
}

type OrderStatusChange struct {
	Status string `json:"status"`
}

type Budget struct {
	ID            uint64     `json:"id"`
	Reference     string     `json:"reference"`
	OrderNumber   *string    `json:"orderNumber,omitempty"`
	Status        string     `json:"status"`
	ClientID      *uint64    `json:"clientId,omitempty"`
	CenterID      *uint64    `json:"centerId,omitempty"`
	Observations  string     `json:"observations,omitempty"`
	Quote         Quote      `json:"quote"`
	CreatedByID   uint64     `json:"createdById"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	SubmittedAt   *time.Time `json:"submittedAt,omitempty"`
	SubmittedByID *uint64    `json:"submittedById,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	ApprovedByID  *uint64    `json:"approvedById,omitempty"`
	RejectedAt    *time.Time `json:"rejectedAt,omitempty"`
	RejectedByID  *uint64    `json:"rejectedById,omitempty"`
	ConvertedAt   *time.Time `json:"convertedAt,omitempty"`
	ConvertedByID *uint64    `json:"convertedById,omitempty"`
	OrderID       *uint64    `json:"orderId,omitempty"`
	Version       int64      `json:"version"`
}

func budgetFromDomain(b *budget.Budget) Budget {
	out := Budget{
		ID:            b.ID().Uint64(),
		Reference:     b.Reference().String(),
		Status:        b.Status().String(),
		ClientID:      idPtr(b.ClientID()),
		CenterID:      idPtr(b.CenterID()),
		Observations:  b.Observations(),
		Quote:         quoteFromDomain(b.Quote()),
		CreatedByID:   b.CreatedByID().Uint64(),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
		SubmittedAt:   b.SubmittedAt(),
		SubmittedByID: idPtr(b.SubmittedByID()),
		ApprovedAt:    b.ApprovedAt(),
		ApprovedByID:  idPtr(b.ApprovedByID()),
		RejectedAt:    b.RejectedAt(),
		RejectedByID:  idPtr(b.RejectedByID()),
		ConvertedAt:   b.ConvertedAt(),
		ConvertedByID: idPtr(b.ConvertedByID()),
		OrderID:       idPtr(b.OrderID()),
		Version:       b.Version(),
	}
	if b.HasOrderNumber() {
		n := b.OrderNumber().String()
		out.OrderNumber = &n
	}
	return out
}

func budgetFromQuery(b *queries.GetBudgetQueryResponse) Budget {
	return Budget{
		ID:            b.ID.Uint64(),
		Reference:     b.Reference,
		OrderNumber:   b.OrderNumber,
		Status:        b.Status,
		ClientID:      idPtr(b.ClientID),
		CenterID:      idPtr(b.CenterID),
		Observations:  b.Observations,
		Quote:         quoteFromQuery(b.Quote),
		CreatedByID:   b.CreatedByID.Uint64(),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		SubmittedAt:   b.SubmittedAt,
		SubmittedByID: idPtr(b.SubmittedByID),
		ApprovedAt:    b.ApprovedAt,
		ApprovedByID:  idPtr(b.ApprovedByID),
		RejectedAt:    b.RejectedAt,
		RejectedByID:  idPtr(b.RejectedByID),
		ConvertedAt:   b.ConvertedAt,
		ConvertedByID: idPtr(b.ConvertedByID),
		OrderID:       idPtr(b.OrderID),
		Version:       b.Version,
	}
}

type Order struct {
	ID          uint64    `json:"id"`
	Number      string    `json:"number"`
	Type        string    `json:"type"`
	BudgetID    *uint64   `json:"budgetId,omitempty"`
	Status      string    `json:"status"`
	ClientID    *uint64   `json:"clientId,omitempty"`
	CenterID    *uint64   `json:"centerId,omitempty"`
	Quote       Quote     `json:"quote"`
	CreatedByID uint64    `json:"createdById"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Version     int64     `json:"version"`
}

func orderFromDomain(o *order.Order) Order {
	return Order{
		ID:          o.ID().Uint64(),
		Number:      o.Number().String(),
		Type:        o.Type().String(),
		BudgetID:    idPtr(o.BudgetID()),
		Status:      o.Status().String(),
		ClientID:    idPtr(o.ClientID()),
		CenterID:    idPtr(o.CenterID()),
		Quote:       quoteFromDomain(o.Quote()),
		CreatedByID: o.CreatedByID().Uint64(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		Version:     o.Version(),
	}
}

func orderFromQuery(o *queries.GetOrderQueryResponse) Order {
	return Order{
		ID:          o.ID.Uint64(),
		Number:      o.Number,
		Type:        o.Type,
		BudgetID:    idPtr(o.BudgetID),
		Status:      o.Status,
		ClientID:    idPtr(o.ClientID),
		CenterID:    idPtr(o.CenterID),
		Quote:       quoteFromQuery(o.Quote),
		CreatedByID: o.CreatedByID.Uint64(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Version:     o.Version,
	}
}

type StrandedConversion struct {
	BudgetID    uint64    `json:"budgetId"`
	Reference   string    `json:"reference"`
	OrderNumber string    `json:"orderNumber"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func idPtr(id *kernel.ID) *uint64 {
	if id == nil {
		return nil
	}
	v := id.Uint64()
	return &v
}

func kernelIDPtr(v *uint64) *kernel.ID {
	if v == nil {
		return nil
	}
	id := kernel.ID(*v)
	return &id
}
