package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStrandedFinder struct {
	mock.Mock
}

func (m *MockStrandedFinder) Handle(
	ctx context.Context, query queries.GetStrandedConversionsQuery,
) ([]queries.GetStrandedConversionsQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetStrandedConversionsQueryResponse), args.Error(1)
}

func newJob(t *testing.T, finder *MockStrandedFinder, buf *bytes.Buffer) *jobs.StrandedConversionJob {
	t.Helper()
	actor, err := kernel.NewActor(1, kernel.RoleAdmin)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(buf, nil))
	return jobs.NewStrandedConversionJob(finder, actor, "0 */5 * * * *", 10*time.Minute, logger)
}

func TestStrandedConversionJob_Scan_LogsEachStrandedBudget(t *testing.T) {
	finder := new(MockStrandedFinder)
	var buf bytes.Buffer
	job := newJob(t, finder, &buf)

	finder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetStrandedConversionsQuery) bool {
		return q.OlderThan() == 10*time.Minute && q.Actor().IsAdmin()
	})).Return([]queries.GetStrandedConversionsQueryResponse{
		{BudgetID: 3, Reference: "PRE-000003", OrderNumber: "PED-000004", UpdatedAt: time.Now()},
		{BudgetID: 9, Reference: "PRE-000009", OrderNumber: "PED-000011", UpdatedAt: time.Now()},
	}, nil).Once()

	found, err := job.Scan(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, found)
	assert.Contains(t, buf.String(), "component=stranded_conversion_job")
	assert.Contains(t, buf.String(), "order_number=PED-000004")
	assert.Contains(t, buf.String(), "budget_id=9")
	assert.Contains(t, buf.String(), "count=2")
	finder.AssertExpectations(t)
}

func TestStrandedConversionJob_Scan_NothingFound_StaysQuiet(t *testing.T) {
	finder := new(MockStrandedFinder)
	var buf bytes.Buffer
	job := newJob(t, finder, &buf)

	finder.On("Handle", mock.Anything, mock.Anything).
		Return([]queries.GetStrandedConversionsQueryResponse{}, nil).Once()

	found, err := job.Scan(context.Background())

	require.NoError(t, err)
	assert.Zero(t, found)
	assert.Empty(t, buf.String())
}

func TestStrandedConversionJob_Scan_QueryFailure_IsLoggedAndReturned(t *testing.T) {
	finder := new(MockStrandedFinder)
	var buf bytes.Buffer
	job := newJob(t, finder, &buf)

	finder.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	_, err := job.Scan(context.Background())

	require.Error(t, err)
	assert.Contains(t, buf.String(), "Stranded conversion scan failed")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestJobManager_StartAll_InvalidSchedule(t *testing.T) {
	actor, err := kernel.NewActor(1, kernel.RoleAdmin)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	job := jobs.NewStrandedConversionJob(new(MockStrandedFinder), actor, "every five minutes", time.Minute, logger)

	err = jobs.NewJobManager(job).StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start stranded conversion job")
}

func TestJobManager_StartAndStop(t *testing.T) {
	finder := new(MockStrandedFinder)
	job := newJob(t, finder, &bytes.Buffer{})
	manager := jobs.NewJobManager(job)

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
