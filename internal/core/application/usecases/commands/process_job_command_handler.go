package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/domain/model/kernel"
	"optiroute/internal/core/ports"
	"optiroute/internal/pkg/errs"
)

// ProcessJobCommandHandler runs the pipeline for one job:
// load, mark PROCESSING, read addresses, geocode, optimize, mark COMPLETED.
// Any failure after the job was loaded is recorded as FAILED with
// result {"error": <message>}.
//
// Example:
//
//	handler := NewProcessJobCommandHandler(uowFactory, reader, geocoding, optimization, logger)
//	cmd, _ := NewProcessJobCommand(jobID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrJobNotFound):
//	    // unknown id, nothing written
//	case errors.Is(err, ErrJobNotPending):
//	    // duplicate delivery, nothing written
//	case err != nil:
//	    // job is FAILED unless ErrPersistenceFailed is also in the chain
//	}
type ProcessJobCommandHandler struct {
	uowFactory   JobUoWFactory
	addresses    ports.AddressReader
	geocoding    GeocodingStage
	optimization OptimizationStage
	logger       *slog.Logger
}

func NewProcessJobCommandHandler(
	uowFactory JobUoWFactory,
	addresses ports.AddressReader,
	geocoding GeocodingStage,
	optimization OptimizationStage,
	logger *slog.Logger,
) ProcessJobCommandHandler {
	return ProcessJobCommandHandler{
		uowFactory:   uowFactory,
		addresses:    addresses,
		geocoding:    geocoding,
		optimization: optimization,
		logger:       logger.With("component", "process_job_handler"),
	}
}

// Handle commits exactly one terminal status for every job it starts.
// Partial geocoding results are never persisted.
func (h ProcessJobCommandHandler) Handle(ctx context.Context, cmd ProcessJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	logger := h.logger.With("job_id", cmd.JobID().String())

	aggregate, err := h.load(ctx, cmd.JobID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		logger.WarnContext(ctx, "Job not found")
		return ErrJobNotFound
	}
	if err != nil {
		return err
	}

	if aggregate.Status() != job.Pending {
		logger.WarnContext(ctx, "Job is not pending, skipping", "status", aggregate.Status().String())
		return ErrJobNotPending
	}

	if err = h.process(ctx, logger, aggregate); err != nil {
		logger.ErrorContext(ctx, "Job processing failed", "error", err)

		// The failure must be recorded even when ctx was cancelled mid-pipeline.
		if failErr := h.markFailed(context.WithoutCancel(ctx), cmd.JobID(), err); failErr != nil {
			logger.ErrorContext(ctx, "Failed to record job failure", "error", failErr)
			return errors.Join(err, failErr)
		}
		return err
	}

	logger.InfoContext(ctx, "Job completed")
	return nil
}

func (h ProcessJobCommandHandler) process(ctx context.Context, logger *slog.Logger, aggregate *job.Job) error {
	if err := aggregate.Start(); err != nil {
		return err
	}
	if err := h.save(ctx, aggregate); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Job processing started", "input_file", aggregate.InputFilePath())

	addresses, err := h.addresses.Read(ctx, aggregate.InputFilePath())
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}
	logger.InfoContext(ctx, "Addresses parsed", "count", len(addresses))

	stops, err := h.geocoding.Run(ctx, addresses)
	if err != nil {
		return err
	}

	result, err := h.optimization.Run(ctx, aggregate.ID(), stops)
	if err != nil {
		return err
	}

	if err = aggregate.Complete(result); err != nil {
		return err
	}
	return h.save(ctx, aggregate)
}

// markFailed reloads the job so that nothing computed in memory leaks into
// the failure record.
func (h ProcessJobCommandHandler) markFailed(ctx context.Context, id kernel.UUID, cause error) error {
	aggregate, err := h.load(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.WarnContext(ctx, "Job disappeared before failure could be recorded", "job_id", id.String())
		return nil
	}
	if err != nil {
		return err
	}

	if err = aggregate.Fail(cause.Error()); err != nil {
		return err
	}
	return h.save(ctx, aggregate)
}

func (h ProcessJobCommandHandler) load(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	uow := h.uowFactory.Create()

	aggregate, err := uow.JobRepository().Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	return aggregate, nil
}

func (h ProcessJobCommandHandler) save(ctx context.Context, aggregate *job.Job) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.JobRepository().Update(ctx, aggregate); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	return nil
}
