package commands_test

import (
	"context"

	"optiroute/internal/core/application/usecases/commands"
	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/domain/model/kernel"
	"optiroute/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

type MockJobUoW struct{ mock.Mock }

func (m *MockJobUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockJobUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockJobUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockJobUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

type MockJobUoWFactory struct{ mock.Mock }

func (m *MockJobUoWFactory) Create() commands.JobUoW {
	args := m.Called()
	return args.Get(0).(commands.JobUoW)
}

type MockAddressReader struct{ mock.Mock }

func (m *MockAddressReader) Read(ctx context.Context, path string) ([]string, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockGeocodingStage struct{ mock.Mock }

func (m *MockGeocodingStage) Run(ctx context.Context, addresses []string) ([]job.Stop, error) {
	args := m.Called(ctx, addresses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]job.Stop), args.Error(1)
}

type MockOptimizationStage struct{ mock.Mock }

func (m *MockOptimizationStage) Run(ctx context.Context, jobID kernel.UUID, stops []job.Stop) (job.Result, error) {
	args := m.Called(ctx, jobID, stops)
	return args.Get(0).(job.Result), args.Error(1)
}

type MockJobPublisher struct{ mock.Mock }

func (m *MockJobPublisher) Publish(ctx context.Context, jobID kernel.UUID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}
