// Package quote holds the priced job description that a budget proposes and
// an order later produces.
package quote

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrQuoteIsNotConstructed = errors.New("Quote must be created via NewQuote constructor")

// Prices are stored as numeric(14,2).
const PriceScale = 2

var MaxPrice = decimal.RequireFromString("999999999999.99")

// Params is the raw input for NewQuote. Zero values mean "not provided".
type Params struct {
	Title         string
	RunSize       int
	InteriorPages int
	CoverPages    int
	Paper         string
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	DeliveryTerms string
	DeliveryDate  time.Time
	Finishing     string
	Requester     string
	Author        string
	Publisher     string
	ISBN          string
}

// Quote is an immutable value. Orders keep their own copy taken at
// conversion, so editing a draft never reaches an order.
type Quote struct {
	title         string
	runSize       int
	interiorPages int
	coverPages    int
	paper         string
	unitPrice     decimal.Decimal
	totalPrice    decimal.Decimal
	deliveryTerms string
	deliveryDate  time.Time
	finishing     string
	requester     string
	author        string
	publisher     string
	isbn          string
	guard         guard.ConstructorGuard
}

// NewQuote validates p and builds a Quote.
//
// Rules:
//   - title is required
//   - run size is at least 1
//   - page counts and prices are not negative
//   - prices have at most PriceScale decimal places and do not exceed MaxPrice
//   - a missing total price is derived as unit price * run size
//
// All violations are reported together.
func NewQuote(p Params) (Quote, error) {
	p.Title = strings.TrimSpace(p.Title)

	var problems []error
	if p.Title == "" {
		problems = append(problems, errs.NewValueIsRequiredError("title"))
	}
	if p.RunSize < 1 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("runSize",
			fmt.Errorf("%d is not greater than 0", p.RunSize)))
	}
	if p.InteriorPages < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("interiorPages",
			fmt.Errorf("%d is negative", p.InteriorPages)))
	}
	if p.CoverPages < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("coverPages",
			fmt.Errorf("%d is negative", p.CoverPages)))
	}
	problems = append(problems, validatePrice("unitPrice", p.UnitPrice), validatePrice("totalPrice", p.TotalPrice))
	if err := errors.Join(problems...); err != nil {
		return Quote{}, err
	}

	total := p.TotalPrice
	if total.IsZero() && !p.UnitPrice.IsZero() {
		total = p.UnitPrice.Mul(decimal.NewFromInt(int64(p.RunSize)))
		if err := validatePrice("totalPrice", total); err != nil {
			return Quote{}, err
		}
	}

	return Quote{
		title:         p.Title,
		runSize:       p.RunSize,
		interiorPages: p.InteriorPages,
		coverPages:    p.CoverPages,
		paper:         strings.TrimSpace(p.Paper),
		unitPrice:     p.UnitPrice,
		totalPrice:    total,
		deliveryTerms: strings.TrimSpace(p.DeliveryTerms),
		deliveryDate:  p.DeliveryDate,
		finishing:     strings.TrimSpace(p.Finishing),
		requester:     strings.TrimSpace(p.Requester),
		author:        strings.TrimSpace(p.Author),
		publisher:     strings.TrimSpace(p.Publisher),
		isbn:          strings.TrimSpace(p.ISBN),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func validatePrice(paramName string, price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is negative", price))
	case !price.Equal(price.Round(PriceScale)):
		return errs.NewValueIsInvalidErrorWithCause(paramName,
			fmt.Errorf("%s has more than %d decimal places", price, PriceScale))
	case price.GreaterThan(MaxPrice):
		return errs.NewValueIsOutOfRangeError(paramName, price.String(), "0", MaxPrice.String())
	}
	return nil
}

func (q Quote) Validate() error {
	return q.guard.Validate(ErrQuoteIsNotConstructed)
}

// Params returns the quote's fields as a copy suitable for NewQuote.
func (q Quote) Params() Params {
	return Params{
		Title:         q.title,
		RunSize:       q.runSize,
		InteriorPages: q.interiorPages,
		CoverPages:    q.coverPages,
		Paper:         q.paper,
		UnitPrice:     q.unitPrice,
		TotalPrice:    q.totalPrice,
		DeliveryTerms: q.deliveryTerms,
		DeliveryDate:  q.deliveryDate,
		Finishing:     q.finishing,
		Requester:     q.requester,
		Author:        q.author,
		Publisher:     q.publisher,
		ISBN:          q.isbn,
	}
}

func (q Quote) Title() string               { return q.title }
func (q Quote) RunSize() int                { return q.runSize }
func (q Quote) InteriorPages() int          { return q.interiorPages }
func (q Quote) CoverPages() int             { return q.coverPages }
func (q Quote) Paper() string               { return q.paper }
func (q Quote) UnitPrice() decimal.Decimal  { return q.unitPrice }
func (q Quote) TotalPrice() decimal.Decimal { return q.totalPrice }
func (q Quote) DeliveryTerms() string       { return q.deliveryTerms }
func (q Quote) Finishing() string           { return q.finishing }
func (q Quote) Requester() string           { return q.requester }
func (q Quote) Author() string              { return q.author }
func (q Quote) Publisher() string           { return q.publisher }
func (q Quote) ISBN() string                { return q.isbn }

// DeliveryDate returns the promised date and whether one was set.
func (q Quote) DeliveryDate() (time.Time, bool) {
	return q.deliveryDate, !q.deliveryDate.IsZero()
}
