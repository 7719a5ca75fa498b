// Package jobrepo maps the job aggregate onto the "jobs" table.
package jobrepo

import (
	"time"

	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO is the row shape of a job. Status is stored as its upper-case name
// so rows stay readable to other consumers of the table.
type JobDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status        string    `gorm:"type:varchar(16);index;not null"`
	InputFilePath string    `gorm:"type:varchar(1024);not null"`
	CreatedAt     time.Time `gorm:"type:timestamptz;not null"`
	Result        []byte    `gorm:"type:jsonb"`
}

func (JobDTO) TableName() string {
	return "jobs"
}

func fromDomain(aggregate *job.Job) JobDTO {
	dto := JobDTO{
		ID:            aggregate.ID().Bytes(),
		Status:        aggregate.Status().String(),
		InputFilePath: aggregate.InputFilePath(),
		CreatedAt:     aggregate.CreatedAt(),
	}

	if result := aggregate.Result(); result != nil {
		dto.Result = result.JSON()
	}

	return dto
}

func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := job.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var result *job.Result
	if len(dto.Result) > 0 {
		restored, restoreErr := job.RestoreResult(dto.Result)
		if restoreErr != nil {
			return nil, restoreErr
		}
		result = &restored
	}

	return job.RestoreJob(id, status, dto.InputFilePath, dto.CreatedAt, result)
}
