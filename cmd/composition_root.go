package cmd

import (
	"context"
	"log/slog"

	apihttp "printshop/internal/adapters/in/http"
	"printshop/internal/adapters/out/metrics"
	"printshop/internal/adapters/out/postgres"
	"printshop/internal/adapters/out/postgres/sequencerepo"
	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/sequence"
	"printshop/internal/core/ports"
	"printshop/internal/jobs"
	"printshop/internal/pkg/logging"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	allocator  ports.SequenceAllocator
	metrics    *metrics.PrometheusWorkflowMetrics
	registry   *prometheus.Registry
	logger     *slog.Logger
}

// NewCompositionRoot wires the persistence and metrics adapters. The
// allocator runs on the root connection so its increments commit on their
// own, outside any command transaction.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	scheme, err := sequence.NewScheme(config.SequencePadding, config.SequenceYearScoped)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	workflowMetrics := metrics.NewPrometheusWorkflowMetrics(registry)

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logging.Component(logger, "unit_of_work")),
		allocator:  metrics.NewInstrumentedAllocator(sequencerepo.NewGormSequenceAllocator(gormDB, scheme), workflowMetrics),
		metrics:    workflowMetrics,
		registry:   registry,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) budgetUoWFactory() commands.BudgetUoWFactory {
	return FuncBudgetUoWFactory(func() commands.BudgetUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateBudgetCommandHandler() commands.CreateBudgetCommandHandler {
	return commands.NewCreateBudgetCommandHandler(c.budgetUoWFactory(), c.allocator, c.metrics)
}

func (c *CompositionRoot) CreateUpdateBudgetDraftCommandHandler() commands.UpdateBudgetDraftCommandHandler {
	return commands.NewUpdateBudgetDraftCommandHandler(c.budgetUoWFactory(), c.metrics)
}

func (c *CompositionRoot) CreateSubmitBudgetCommandHandler() commands.SubmitBudgetCommandHandler {
	return commands.NewSubmitBudgetCommandHandler(c.budgetUoWFactory(), c.metrics)
}

func (c *CompositionRoot) CreateApproveBudgetCommandHandler() commands.ApproveBudgetCommandHandler {
	return commands.NewApproveBudgetCommandHandler(c.budgetUoWFactory(), c.metrics)
}

func (c *CompositionRoot) CreateRejectBudgetCommandHandler() commands.RejectBudgetCommandHandler {
	return commands.NewRejectBudgetCommandHandler(c.budgetUoWFactory(), c.metrics)
}

func (c *CompositionRoot) CreateConvertBudgetToOrderCommandHandler() commands.ConvertBudgetToOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewConvertBudgetToOrderCommandHandler(f, c.allocator, c.metrics)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.allocator, c.metrics)
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.orderUoWFactory(), c.metrics)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.metrics)
}

func (c *CompositionRoot) CreateGetBudgetQueryHandler() queries.GetBudgetQueryHandler {
	return queries.NewGetBudgetQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStrandedConversionsQueryHandler() queries.GetStrandedConversionsQueryHandler {
	return queries.NewGetStrandedConversionsQueryHandler(c.gormDB)
}

// CreateRouter builds the HTTP API over every use case.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	server := apihttp.NewServer(apihttp.Handlers{
		CreateBudget:           c.CreateCreateBudgetCommandHandler(),
		UpdateBudgetDraft:      c.CreateUpdateBudgetDraftCommandHandler(),
		SubmitBudget:           c.CreateSubmitBudgetCommandHandler(),
		ApproveBudget:          c.CreateApproveBudgetCommandHandler(),
		RejectBudget:           c.CreateRejectBudgetCommandHandler(),
		ConvertBudget:          c.CreateConvertBudgetToOrderCommandHandler(),
		CreateOrder:            c.CreateCreateOrderCommandHandler(),
		SetOrderStatus:         c.CreateSetOrderStatusCommandHandler(),
		DeleteOrder:            c.CreateDeleteOrderCommandHandler(),
		GetBudget:              c.CreateGetBudgetQueryHandler(),
		GetOrder:               c.CreateGetOrderQueryHandler(),
		GetStrandedConversions: c.CreateGetStrandedConversionsQueryHandler(),
	}, c.logger.With("component", "http"))

	return apihttp.NewRouter(ctx, server, c.registry, c.logger.With("component", "http"))
}

// CreateJobManager schedules the background jobs. They act as the
// configured system user with the admin role.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	system, err := kernel.NewActor(c.config.SystemUserID, kernel.RoleAdmin)
	if err != nil {
		return nil, err
	}

	stranded := jobs.NewStrandedConversionJob(
		c.CreateGetStrandedConversionsQueryHandler(),
		system,
		c.config.StrandedScanCron,
		c.config.StrandedScanMinAge,
		c.logger,
	)
	return jobs.NewJobManager(stranded), nil
}

type FuncBudgetUoWFactory func() commands.BudgetUoW

func (f FuncBudgetUoWFactory) Create() commands.BudgetUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
