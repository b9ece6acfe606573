// Package jobs provides scheduled background tasks for the print shop.
//
// Jobs use github.com/robfig/cron/v3 with six-field expressions (seconds
// first) and log through slog with a "component" attribute.
//
// # Available Jobs
//
// StrandedConversionJob lists approved budgets that hold a reserved order
// number but have no order, the trace left when a conversion stops between
// its two transactions. It logs one warning per budget and changes nothing.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(strandedJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
