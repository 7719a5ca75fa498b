package queries

import (
	"context"
	"encoding/json"

	"optiroute/internal/core/domain/model/kernel"
	"optiroute/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetJobQueryHandler reads one job row with plain SQL.
type GetJobQueryHandler struct {
	db *gorm.DB
}

func NewGetJobQueryHandler(db *gorm.DB) GetJobQueryHandler {
	return GetJobQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the job does not exist.
func (h GetJobQueryHandler) Handle(ctx context.Context, query GetJobQuery) (GetJobQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetJobQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			input_file_path,
			created_at,
			result
		FROM jobs
		WHERE id = ?
	`, query.JobID().Bytes()).Rows()
	if err != nil {
		return GetJobQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetJobQueryResponse{}, err
		}
		return GetJobQueryResponse{}, errs.NewObjectNotFoundError("job", query.JobID().String())
	}

	var resp GetJobQueryResponse
	var id uuid.UUID
	var result []byte

	if err = rows.Scan(&id, &resp.Status, &resp.InputFilePath, &resp.CreatedAt, &result); err != nil {
		return GetJobQueryResponse{}, err
	}

	resp.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetJobQueryResponse{}, err
	}
	if len(result) > 0 {
		resp.Result = json.RawMessage(result)
	}

	return resp, rows.Err()
}
