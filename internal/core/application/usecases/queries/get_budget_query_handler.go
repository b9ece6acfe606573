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

// GetBudgetQueryHandler reads a budget row. A missing budget is reported
// before the actor is checked, like the write operations do.
type GetBudgetQueryHandler struct {
	db     *gorm.DB
	policy services.AuthorizationPolicy
}

func NewGetBudgetQueryHandler(db *gorm.DB) GetBudgetQueryHandler {
	return GetBudgetQueryHandler{db: db, policy: services.NewAuthorizationPolicy()}
}

func (h GetBudgetQueryHandler) Handle(ctx context.Context, query GetBudgetQuery) (*GetBudgetQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id, reference, order_number, status, client_id, center_id, observations,
			created_by_id, created_at, updated_at,
			submitted_at, submitted_by_id, approved_at, approved_by_id,
			rejected_at, rejected_by_id, converted_at, converted_by_id,
			order_id, version,
			`+quoteColumns+`
		FROM budgets
		WHERE id = ?
	`, int64(query.BudgetID())).Row()
	if err := row.Err(); err != nil {
		return nil, err
	}

	var resp GetBudgetQueryResponse
	var id, createdBy int64
	var clientID, centerID, orderID *int64
	var submittedBy, approvedBy, rejectedBy, convertedBy *int64
	targets := []any{
		&id, &resp.Reference, &resp.OrderNumber, &resp.Status, &clientID, &centerID, &resp.Observations,
		&createdBy, &resp.CreatedAt, &resp.UpdatedAt,
		&resp.SubmittedAt, &submittedBy, &resp.ApprovedAt, &approvedBy,
		&resp.RejectedAt, &rejectedBy, &resp.ConvertedAt, &convertedBy,
		&orderID, &resp.Version,
	}
	targets = append(targets, resp.Quote.targets()...)

	if err := row.Scan(targets...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("budget", query.BudgetID())
		}
		return nil, err
	}

	if err := h.policy.Authorize(query.Actor(), services.ActionViewBudget); err != nil {
		return nil, err
	}

	resp.ID = kernel.ID(id)
	resp.CreatedByID = kernel.ID(createdBy)
	resp.ClientID = toIDPtr(clientID)
	resp.CenterID = toIDPtr(centerID)
	resp.OrderID = toIDPtr(orderID)
	resp.SubmittedByID = toIDPtr(submittedBy)
	resp.ApprovedByID = toIDPtr(approvedBy)
	resp.RejectedByID = toIDPtr(rejectedBy)
	resp.ConvertedByID = toIDPtr(convertedBy)
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.UpdatedAt = resp.UpdatedAt.UTC()
	resp.SubmittedAt = toUTCPtr(resp.SubmittedAt)
	resp.ApprovedAt = toUTCPtr(resp.ApprovedAt)
	resp.RejectedAt = toUTCPtr(resp.RejectedAt)
	resp.ConvertedAt = toUTCPtr(resp.ConvertedAt)
	resp.Quote.DeliveryDate = toUTCPtr(resp.Quote.DeliveryDate)

	return &resp, nil
}
