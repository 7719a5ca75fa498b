package queries

import (
	"errors"
	"time"

	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/domain/model/kernel"
	"optiroute/internal/pkg/errs"
	"optiroute/internal/pkg/guard"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

var ErrListJobsQueryIsNotConstructed = errors.New(
	"ListJobsQuery must be created via NewListJobsQuery constructor",
)

// ListJobsQuery lists jobs newest first.
//
// Example:
//
//	// jobs stuck in PROCESSING for more than ten minutes
//	before := time.Now().Add(-10 * time.Minute)
//	query, _ := NewListJobsQuery([]job.Status{job.Processing}, &before, 0)
type ListJobsQuery struct {
	statuses      []job.Status
	createdBefore *time.Time
	limit         int

	guard guard.ConstructorGuard
}

// NewListJobsQuery builds a query. Empty statuses match every status,
// a nil createdBefore disables the age filter, and limit 0 means DefaultListLimit.
func NewListJobsQuery(statuses []job.Status, createdBefore *time.Time, limit int) (ListJobsQuery, error) {
	q := ListJobsQuery{guard: guard.NewConstructorGuard()}

	err := errors.Join(
		q.setStatuses(statuses),
		q.setLimit(limit),
	)
	if err != nil {
		return ListJobsQuery{}, err
	}

	if createdBefore != nil {
		before := createdBefore.UTC()
		q.createdBefore = &before
	}

	return q, nil
}

func (q ListJobsQuery) Validate() error {
	return q.guard.Validate(ErrListJobsQueryIsNotConstructed)
}

func (q ListJobsQuery) Statuses() []job.Status {
	return q.statuses
}

func (q ListJobsQuery) CreatedBefore() *time.Time {
	return q.createdBefore
}

func (q ListJobsQuery) Limit() int {
	return q.limit
}

func (q *ListJobsQuery) setStatuses(statuses []job.Status) error {
	validated := make([]job.Status, 0, len(statuses))
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return err
		}
		validated = append(validated, s)
	}
	q.statuses = validated
	return nil
}

func (q *ListJobsQuery) setLimit(limit int) error {
	if limit == 0 {
		q.limit = DefaultListLimit
		return nil
	}
	if limit < 1 || limit > MaxListLimit {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	q.limit = limit
	return nil
}

// ListJobsQueryResponse is one row of the job listing.
type ListJobsQueryResponse struct {
	ID            kernel.UUID
	Status        string
	InputFilePath string
	CreatedAt     time.Time
}
