package postgres

import (
	"printshop/internal/adapters/out/postgres/budgetrepo"
	"printshop/internal/adapters/out/postgres/orderrepo"
	"printshop/internal/adapters/out/postgres/sequencerepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the budgets, orders and sequence_counters tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&budgetrepo.BudgetDTO{},
		&orderrepo.OrderDTO{},
		&sequencerepo.SequenceCounterDTO{},
	)
}

// TruncateAll empties every workflow table and restarts their id sequences.
// Integration tests call it between cases.
func TruncateAll(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE budgets, orders, sequence_counters RESTART IDENTITY").Error
}
