package queries

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/services"

	"gorm.io/gorm"
)

type GetStrandedConversionsQueryHandler struct {
	db     *gorm.DB
	policy services.AuthorizationPolicy
	clock  func() time.Time
}

func NewGetStrandedConversionsQueryHandler(db *gorm.DB) GetStrandedConversionsQueryHandler {
	return GetStrandedConversionsQueryHandler{db: db, policy: services.NewAuthorizationPolicy(), clock: time.Now}
}

// Handle returns stranded conversions ordered by budget id.
func (h GetStrandedConversionsQueryHandler) Handle(
	ctx context.Context,
	query GetStrandedConversionsQuery,
) ([]GetStrandedConversionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.Authorize(query.Actor(), services.ActionViewBudget); err != nil {
		return nil, err
	}

	cutoff := h.clock().UTC().Add(-query.OlderThan())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.id,
			b.reference,
			b.order_number,
			b.updated_at
		FROM budgets b
		LEFT JOIN orders o ON o.budget_id = b.id
		WHERE b.status = ?
			AND b.order_number IS NOT NULL
			AND o.id IS NULL
			AND b.updated_at <= ?
		ORDER BY b.id
	`, budget.Approved.String(), cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stranded := make([]GetStrandedConversionsQueryResponse, 0)
	for rows.Next() {
		var resp GetStrandedConversionsQueryResponse
		var id int64

		if err = rows.Scan(&id, &resp.Reference, &resp.OrderNumber, &resp.UpdatedAt); err != nil {
			return nil, err
		}

		resp.BudgetID = kernel.ID(id)
		resp.UpdatedAt = resp.UpdatedAt.UTC()
		stranded = append(stranded, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stranded, nil
}
