package sequencerepo_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"printshop/internal/adapters/out/postgres/pgtest"
	"printshop/internal/adapters/out/postgres/sequencerepo"
	"printshop/internal/core/domain/model/sequence"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type AllocatorIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
}

func (suite *AllocatorIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *AllocatorIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop(context.Background()))
}

func (suite *AllocatorIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())
}

func (suite *AllocatorIntegrationTestSuite) TestNext_StartsAtOneAndCountsPerType() {
	ctx := context.Background()
	allocator := sequencerepo.NewGormSequenceAllocator(suite.database.DB, sequence.DefaultScheme())

	first, err := allocator.Next(ctx, sequence.OrderDocument)
	suite.Require().NoError(err)
	second, err := allocator.Next(ctx, sequence.OrderDocument)
	suite.Require().NoError(err)
	budgetRef, err := allocator.Next(ctx, sequence.BudgetDocument)
	suite.Require().NoError(err)

	suite.Equal("PED-000001", first.String())
	suite.Equal("PED-000002", second.String())
	suite.Equal("PRE-000001", budgetRef.String())
}

// N concurrent callers receive N distinct values; sorted, they run 1..N.
func (suite *AllocatorIntegrationTestSuite) TestNext_ConcurrentCallersNeverShareANumber() {
	const callers = 40
	ctx := context.Background()
	allocator := sequencerepo.NewGormSequenceAllocator(suite.database.DB, sequence.DefaultScheme())

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		values   = make([]int64, 0, callers)
		failures = make([]error, 0)
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := allocator.Next(ctx, sequence.OrderDocument)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			values = append(values, n.Value())
		}()
	}
	wg.Wait()

	suite.Empty(failures)
	suite.Require().Len(values, callers)
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	for i, v := range values {
		suite.Equal(int64(i+1), v)
	}
}

func (suite *AllocatorIntegrationTestSuite) TestNext_SurvivesCallerRollback() {
	ctx := context.Background()
	allocator := sequencerepo.NewGormSequenceAllocator(suite.database.DB, sequence.DefaultScheme())

	tx := suite.database.DB.Begin()
	suite.Require().NoError(tx.Error)
	_, err := allocator.Next(ctx, sequence.OrderDocument)
	suite.Require().NoError(err)
	suite.Require().NoError(tx.Rollback().Error)

	next, err := allocator.Next(ctx, sequence.OrderDocument)

	suite.Require().NoError(err)
	suite.Equal(int64(2), next.Value())
}

func (suite *AllocatorIntegrationTestSuite) TestNext_YearScopedCountersRestart() {
	ctx := context.Background()
	scheme, err := sequence.NewScheme(4, true)
	suite.Require().NoError(err)

	at := time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC)
	allocator := sequencerepo.NewGormSequenceAllocator(suite.database.DB, scheme).
		WithClock(func() time.Time { return at })

	last2025, err := allocator.Next(ctx, sequence.BudgetDocument)
	suite.Require().NoError(err)
	at = at.Add(2 * time.Hour)
	first2026, err := allocator.Next(ctx, sequence.BudgetDocument)
	suite.Require().NoError(err)

	suite.Equal("PRE-2025-0001", last2025.String())
	suite.Equal("PRE-2026-0001", first2026.String())
}

func (suite *AllocatorIntegrationTestSuite) TestNext_ExhaustedCounterFails() {
	ctx := context.Background()
	scheme, err := sequence.NewScheme(1, false)
	suite.Require().NoError(err)
	allocator := sequencerepo.NewGormSequenceAllocator(suite.database.DB, scheme)
	suite.Require().NoError(suite.database.DB.Exec(
		"INSERT INTO sequence_counters (key, last_value, updated_at) VALUES ('PED', 9, NOW())").Error)

	_, err = allocator.Next(ctx, sequence.OrderDocument)

	suite.Require().ErrorIs(err, errs.ErrAllocationFailed)
	suite.True(errs.KindOf(err).Retryable())
}

func (suite *AllocatorIntegrationTestSuite) TestNext_UnknownDocumentType() {
	allocator := sequencerepo.NewGormSequenceAllocator(suite.database.DB, sequence.DefaultScheme())

	_, err := allocator.Next(context.Background(), sequence.DocumentType("INV"))

	suite.Require().Error(err)
}

func (suite *AllocatorIntegrationTestSuite) TestNext_CancelledContext() {
	allocator := sequencerepo.NewGormSequenceAllocator(suite.database.DB, sequence.DefaultScheme())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := allocator.Next(ctx, sequence.OrderDocument)

	suite.Require().ErrorIs(err, errs.ErrAllocationFailed)
}

func TestAllocatorIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(AllocatorIntegrationTestSuite))
}
