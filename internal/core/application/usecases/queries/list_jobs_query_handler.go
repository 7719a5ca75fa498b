package queries

import (
	"context"
	"strings"

	"optiroute/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListJobsQueryHandler lists jobs with plain SQL, newest first.
//
// Example:
//
//	handler := NewListJobsQueryHandler(db)
//	query, _ := NewListJobsQuery([]job.Status{job.Failed}, nil, 20)
//
//	failed, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, j := range failed {
//	    fmt.Printf("%s failed, uploaded at %s\n", j.ID, j.CreatedAt)
//	}
type ListJobsQueryHandler struct {
	db *gorm.DB
}

func NewListJobsQueryHandler(db *gorm.DB) ListJobsQueryHandler {
	return ListJobsQueryHandler{db: db}
}

func (h ListJobsQueryHandler) Handle(ctx context.Context, query ListJobsQuery) ([]ListJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var sql strings.Builder
	args := make([]any, 0, 3)

	sql.WriteString(`
		SELECT
			id,
			status,
			input_file_path,
			created_at
		FROM jobs
		WHERE TRUE`)

	if statuses := query.Statuses(); len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, s := range statuses {
			names = append(names, s.String())
		}
		sql.WriteString(" AND status = ANY(?)")
		args = append(args, pq.Array(names))
	}

	if before := query.CreatedBefore(); before != nil {
		sql.WriteString(" AND created_at < ?")
		args = append(args, *before)
	}

	sql.WriteString(" ORDER BY created_at DESC, id LIMIT ?")
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sql.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]ListJobsQueryResponse, 0)
	for rows.Next() {
		var resp ListJobsQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &resp.Status, &resp.InputFilePath, &resp.CreatedAt); err != nil {
			return nil, err
		}

		jobID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = jobID

		jobs = append(jobs, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
