package job

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"optiroute/internal/core/domain/model/kernel"
	"optiroute/internal/pkg/errs"
)

var ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")

// Job is the aggregate root for one uploaded address list.
//
// Job follows these invariants:
//   - id, inputFilePath and createdAt never change once set
//   - status only moves forward (see Status)
//   - result is set exactly once, by Complete or Fail
type Job struct {
	id            kernel.UUID
	status        Status
	inputFilePath string
	createdAt     time.Time
	result        *Result

	isConstructed bool
}

// NewJob creates a job in Pending status, as done by the upload endpoint.
func NewJob(id kernel.UUID, inputFilePath string, createdAt time.Time) (*Job, error) {
	j := &Job{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setInputFilePath(inputFilePath),
		j.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// RestoreJob rebuilds a job from persisted state. A non-terminal job must
// not carry a result.
func RestoreJob(
	id kernel.UUID,
	status Status,
	inputFilePath string,
	createdAt time.Time,
	result *Result,
) (*Job, error) {
	j := &Job{isConstructed: true}

	if err := errors.Join(
		j.setID(id),
		j.setInputFilePath(inputFilePath),
		j.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if result != nil && !status.IsTerminal() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"result is invalid",
			fmt.Errorf("%s job cannot carry a result", status),
		)
	}

	j.status = status
	j.result = result
	return j, nil
}

func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

func (j *Job) ID() kernel.UUID {
	return j.id
}

func (j *Job) Status() Status {
	return j.status
}

func (j *Job) InputFilePath() string {
	return j.inputFilePath
}

func (j *Job) CreatedAt() time.Time {
	return j.createdAt
}

// Result returns nil until the job reached a terminal status.
func (j *Job) Result() *Result {
	return j.result
}

// Start moves a pending job to Processing.
func (j *Job) Start() error {
	newStatus, err := j.status.Start()
	if err != nil {
		return err
	}

	j.status = newStatus
	return nil
}

// Complete moves a processing job to Completed and attaches its result.
func (j *Job) Complete(result Result) error {
	if result.IsZero() {
		return errs.NewValueIsRequiredError("result")
	}

	newStatus, err := j.status.Complete()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.result = &result
	return nil
}

// Fail moves the job to Failed with result {"error": reason}.
func (j *Job) Fail(reason string) error {
	newStatus, err := j.status.Fail()
	if err != nil {
		return err
	}

	result, err := NewFailureResult(reason)
	if err != nil {
		return err
	}

	j.status = newStatus
	j.result = &result
	return nil
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setInputFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errs.NewValueIsRequiredError("input file path")
	}
	j.inputFilePath = path
	return nil
}

func (j *Job) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	j.createdAt = createdAt
	return nil
}
