package queries

import (
	"context"
	"database/sql"
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db     *gorm.DB
	policy services.AuthorizationPolicy
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policy: services.NewAuthorizationPolicy()}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id, number, type, budget_id, status, client_id, center_id,
			created_by_id, created_at, updated_at, version,
			`+quoteColumns+`
		FROM orders
		WHERE id = ?
	`, int64(query.OrderID())).Row()

	var resp GetOrderQueryResponse
	var id, createdBy int64
	var budgetID, clientID, centerID *int64
	targets := []any{
		&id, &resp.Number, &resp.Type, &budgetID, &resp.Status, &clientID, &centerID,
		&createdBy, &resp.CreatedAt, &resp.UpdatedAt, &resp.Version,
	}
	targets = append(targets, resp.Quote.targets()...)

	if err := row.Scan(targets...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", query.OrderID())
		}
		return nil, err
	}

	if err := h.policy.Authorize(query.Actor(), services.ActionViewOrder); err != nil {
		return nil, err
	}

	resp.ID = kernel.ID(id)
	resp.CreatedByID = kernel.ID(createdBy)
	resp.BudgetID = toIDPtr(budgetID)
	resp.ClientID = toIDPtr(clientID)
	resp.CenterID = toIDPtr(centerID)
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.UpdatedAt = resp.UpdatedAt.UTC()
	resp.Quote.DeliveryDate = toUTCPtr(resp.Quote.DeliveryDate)

	return &resp, nil
}
