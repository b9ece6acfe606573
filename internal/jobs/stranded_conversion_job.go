package jobs

import (
	"context"
	"log/slog"
	"time"

	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

type strandedConversionFinder interface {
	Handle(ctx context.Context, query queries.GetStrandedConversionsQuery) ([]queries.GetStrandedConversionsQueryResponse, error)
}

// StrandedConversionJob periodically reports conversions that reserved an
// order number but never created the order. It only logs; an operator or
// client retries the conversion, which reuses the reserved number.
type StrandedConversionJob struct {
	finder    strandedConversionFinder
	actor     kernel.Actor
	schedule  string
	olderThan time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStrandedConversionJob scans on schedule, a six-field cron expression
// with seconds, and skips budgets touched within olderThan.
func NewStrandedConversionJob(
	finder strandedConversionFinder,
	actor kernel.Actor,
	schedule string,
	olderThan time.Duration,
	logger *slog.Logger,
) *StrandedConversionJob {
	return &StrandedConversionJob{
		finder:    finder,
		actor:     actor,
		schedule:  schedule,
		olderThan: olderThan,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stranded_conversion_job"),
	}
}

func (j *StrandedConversionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.Scan(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stranded conversion job started", "schedule", j.schedule)
	return nil
}

// Scan runs one pass and returns how many stranded conversions it found.
func (j *StrandedConversionJob) Scan(ctx context.Context) (int, error) {
	query, err := queries.NewGetStrandedConversionsQuery(j.actor, j.olderThan)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stranded conversion job misconfigured", "error", err)
		return 0, err
	}

	stranded, err := j.finder.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stranded conversion scan failed", "error", err)
		return 0, err
	}

	for _, s := range stranded {
		j.logger.WarnContext(ctx, "Conversion stranded after reserving an order number",
			"budget_id", s.BudgetID.String(),
			"reference", s.Reference,
			"order_number", s.OrderNumber,
			"updated_at", s.UpdatedAt,
		)
	}
	if len(stranded) > 0 {
		j.logger.WarnContext(ctx, "Stranded conversions found", "count", len(stranded))
	}

	return len(stranded), nil
}

func (j *StrandedConversionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stranded conversion job stopped")
}
