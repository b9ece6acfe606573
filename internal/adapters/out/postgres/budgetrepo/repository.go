package budgetrepo

import (
	"context"
	"errors"

	"printshop/internal/adapters/out/postgres/pgutil"
	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBudgetRepository implements ports.BudgetRepository using GORM.
type GormBudgetRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

func NewGormBudgetRepository(db *gorm.DB, tracker aggregateTracker) *GormBudgetRepository {
	return &GormBudgetRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new budget and assigns it the generated id.
func (r *GormBudgetRepository) Add(ctx context.Context, aggregate *budget.Budget) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.TranslateError("budget", aggregate.Reference().String(), err)
	}

	if err := aggregate.AssignID(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column if the stored version still matches, then
// advances the aggregate's version.
func (r *GormBudgetRepository) Update(ctx context.Context, aggregate *budget.Budget) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&BudgetDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return pgutil.TranslateError("budget", aggregate.ID(), result.Error)
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a budget without locking it.
func (r *GormBudgetRepository) Get(ctx context.Context, id kernel.ID) (*budget.Budget, error) {
	return get(r.db.WithContext(ctx), id)
}

// GetForUpdate loads a budget with SELECT ... FOR UPDATE. Outside a
// transaction the lock is released as soon as the statement ends.
func (r *GormBudgetRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*budget.Budget, error) {
	return get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func get(db *gorm.DB, id kernel.ID) (*budget.Budget, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BudgetDTO
	if err := db.First(&dto, "id = ?", int64(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("budget", id)
		}
		return nil, pgutil.TranslateError("budget", id, err)
	}

	b, err := toDomain(dto)
	if err != nil {
		return nil, errs.NewCorruptedRecordError("budget", id, err)
	}
	return b, nil
}

func (r *GormBudgetRepository) missingOrStale(ctx context.Context, id kernel.ID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BudgetDTO{}).Where("id = ?", int64(id)).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("budget", id)
	}
	return errs.NewConflictDetectedError("budget", id)
}
