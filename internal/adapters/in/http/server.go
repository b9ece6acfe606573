package http

import (
	"log/slog"
	"net/http"
	"time"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Handlers are the use cases the API exposes.
type Handlers struct {
	CreateBudget      commands.CreateBudgetCommandHandler
	UpdateBudgetDraft commands.UpdateBudgetDraftCommandHandler
	SubmitBudget      commands.SubmitBudgetCommandHandler
	ApproveBudget     commands.ApproveBudgetCommandHandler
	RejectBudget      commands.RejectBudgetCommandHandler
	ConvertBudget     commands.ConvertBudgetToOrderCommandHandler
	CreateOrder       commands.CreateOrderCommandHandler
	SetOrderStatus    commands.SetOrderStatusCommandHandler
	DeleteOrder       commands.DeleteOrderCommandHandler

	GetBudget              queries.GetBudgetQueryHandler
	GetOrder               queries.GetOrderQueryHandler
	GetStrandedConversions queries.GetStrandedConversionsQueryHandler
}

// Server turns HTTP requests into commands and queries. Every route under
// /api/v1 runs behind Identity, so an actor is always present.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{handlers: handlers, logger: logger}
}

// CreateBudget handles POST /api/v1/budgets.
func (s *Server) CreateBudget(c echo.Context) error {
	actor, _ := actorFrom(c)

	var body BudgetDraft
	if err := c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	params, err := body.Quote.params()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateBudgetCommand(actor, params,
		kernelIDPtr(body.ClientID), kernelIDPtr(body.CenterID), body.Observations)
	if err != nil {
		return s.fail(c, err)
	}

	created, err := s.handlers.CreateBudget.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, budgetFromDomain(created))
}

// GetBudget handles GET /api/v1/budgets/{id}.
func (s *Server) GetBudget(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := bindID(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetBudgetQuery(id, actor)
	if err != nil {
		return s.fail(c, err)
	}

	found, err := s.handlers.GetBudget.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, budgetFromQuery(found))
}

// UpdateBudgetDraft handles PUT /api/v1/budgets/{id}.
func (s *Server) UpdateBudgetDraft(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := bindID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var body BudgetDraft
	if err = c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	params, err := body.Quote.params()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateBudgetDraftCommand(id, actor, params,
		kernelIDPtr(body.ClientID), kernelIDPtr(body.CenterID), body.Observations)
	if err != nil {
		return s.fail(c, err)
	}

	updated, err := s.handlers.UpdateBudgetDraft.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, budgetFromDomain(updated))
}

// SubmitBudget handles POST /api/v1/budgets/{id}/submit.
func (s *Server) SubmitBudget(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := bindID(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewSubmitBudgetCommand(id, actor)
	if err != nil {
		return s.fail(c, err)
	}

	submitted, err := s.handlers.SubmitBudget.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, budgetFromDomain(submitted))
}

// ApproveBudget handles POST /api/v1/budgets/{id}/approve.
func (s *Server) ApproveBudget(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := bindID(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewApproveBudgetCommand(id, actor)
	if err != nil {
		return s.fail(c, err)
	}

	approved, err := s.handlers.ApproveBudget.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, budgetFromDomain(approved))
}

// RejectBudget handles POST /api/v1/budgets/{id}/reject.
func (s *Server) RejectBudget(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := bindID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var body RejectBudget
	if err = c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewRejectBudgetCommand(id, actor, body.Reason)
	if err != nil {
		return s.fail(c, err)
	}

	rejected, err := s.handlers.RejectBudget.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, budgetFromDomain(rejected))
}

// ConvertBudgetToOrder handles POST /api/v1/budgets/{id}/convert.
func (s *Server) ConvertBudgetToOrder(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := bindID(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewConvertBudgetToOrderCommand(id, actor)
	if err != nil {
		return s.fail(c, err)
	}

	created, err := s.handlers.ConvertBudget.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, orderFromDomain(created))
}

// GetStrandedConversions handles GET /api/v1/budgets/stranded.
func (s *Server) GetStrandedConversions(c echo.Context) error {
	actor, _ := actorFrom(c)

	var raw string
	if err := runtime.BindQueryParameter("form", true, false, "olderThan", c.QueryParams(), &raw); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("olderThan", err))
	}
	var olderThan time.Duration
	if raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("olderThan", err))
		}
		olderThan = d
	}

	query, err := queries.NewGetStrandedConversionsQuery(actor, olderThan)
	if err != nil {
		return s.fail(c, err)
	}

	stranded, err := s.handlers.GetStrandedConversions.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]StrandedConversion, len(stranded))
	for i, sc := range stranded {
		response[i] = StrandedConversion{
			BudgetID:    sc.BudgetID.Uint64(),
			Reference:   sc.Reference,
			OrderNumber: sc.OrderNumber,
			UpdatedAt:   sc.UpdatedAt,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, _ := actorFrom(c)

	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	params, err := body.Quote.params()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(actor, params, kernelIDPtr(body.ClientID), kernelIDPtr(body.CenterID))
	if err != nil {
		return s.fail(c, err)
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, orderFromDomain(created))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := bindID(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrderQuery(id, actor)
	if err != nil {
		return s.fail(c, err)
	}

	found, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFromQuery(found))
}

// SetOrderStatus handles PATCH /api/v1/orders/{id}/status.
func (s *Server) SetOrderStatus(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := bindID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var body OrderStatusChange
	if err = c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewSetOrderStatusCommand(id, actor, status)
	if err != nil {
		return s.fail(c, err)
	}

	updated, err := s.handlers.SetOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFromDomain(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(c echo.Context) error {
	actor, _ := actorFrom(c)
	id, err := bindID(c)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(id, actor)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func bindID(c echo.Context) (kernel.ID, error) {
	var id uint64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return kernel.ID(id), nil
}
