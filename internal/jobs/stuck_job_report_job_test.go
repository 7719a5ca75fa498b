package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"optiroute/internal/core/application/usecases/queries"
	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProcessingJobLister struct {
	mock.Mock
}

func (m *MockProcessingJobLister) Handle(ctx context.Context, query queries.ListJobsQuery) ([]queries.ListJobsQueryResponse, error) {
	args := m.Called(ctx, query)
	rows, _ := args.Get(0).([]queries.ListJobsQueryResponse)
	return rows, args.Error(1)
}

func newTestReportJob(lister ProcessingJobLister, now time.Time) *StuckJobReportJob {
	j := NewStuckJobReportJob(lister, 30*time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	j.now = func() time.Time { return now }
	return j
}

func TestStuckJobReportJob_Report(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	lister := &MockProcessingJobLister{}

	lister.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListJobsQuery) bool {
		return assert.ObjectsAreEqual([]job.Status{job.Processing}, q.Statuses()) &&
			q.CreatedBefore() != nil &&
			q.CreatedBefore().Equal(now.Add(-30*time.Minute)) &&
			q.Limit() == queries.MaxListLimit
	})).Return([]queries.ListJobsQueryResponse{
		{ID: kernel.NewUUID(), Status: job.Processing.String(), CreatedAt: now.Add(-2 * time.Hour)},
		{ID: kernel.NewUUID(), Status: job.Processing.String(), CreatedAt: now.Add(-time.Hour)},
	}, nil).Once()

	count := newTestReportJob(lister, now).Report(context.Background())

	assert.Equal(t, 2, count)
	lister.AssertExpectations(t)
}

func TestStuckJobReportJob_ReportNothingStuck(t *testing.T) {
	lister := &MockProcessingJobLister{}
	lister.On("Handle", mock.Anything, mock.Anything).Return([]queries.ListJobsQueryResponse{}, nil).Once()

	count := newTestReportJob(lister, time.Now()).Report(context.Background())

	assert.Equal(t, 0, count)
	lister.AssertExpectations(t)
}

func TestStuckJobReportJob_ReportQueryError(t *testing.T) {
	lister := &MockProcessingJobLister{}
	lister.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	count := newTestReportJob(lister, time.Now()).Report(context.Background())

	assert.Equal(t, 0, count)
	lister.AssertExpectations(t)
}

func TestJobManager_StartStop(t *testing.T) {
	lister := &MockProcessingJobLister{}
	lister.On("Handle", mock.Anything, mock.Anything).Return([]queries.ListJobsQueryResponse{}, nil).Maybe()
	manager := NewJobManager(lister, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
