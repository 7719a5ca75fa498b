package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"optiroute/internal/core/application/usecases/commands"
	"optiroute/internal/core/application/usecases/queries"
	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/domain/model/kernel"
	"optiroute/internal/generated/servers"
	"optiroute/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	uploadField     = "file"
	uploadExtension = ".csv"
)

type JobCreator interface {
	Handle(ctx context.Context, cmd commands.CreateJobCommand) error
}

type JobGetter interface {
	Handle(ctx context.Context, query queries.GetJobQuery) (queries.GetJobQueryResponse, error)
}

type JobLister interface {
	Handle(ctx context.Context, query queries.ListJobsQuery) ([]queries.ListJobsQueryResponse, error)
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	uploadDir string

	// Command handlers
	createJobHandler JobCreator

	// Query handlers
	getJobHandler   JobGetter
	listJobsHandler JobLister

	logger *slog.Logger
}

// NewServer creates a new HTTP server. Uploaded files are stored in uploadDir,
// which must exist and be readable by the worker.
func NewServer(
	uploadDir string,
	createJobHandler JobCreator,
	getJobHandler JobGetter,
	listJobsHandler JobLister,
	logger *slog.Logger,
) *Server {
	return &Server{
		uploadDir:        uploadDir,
		createJobHandler: createJobHandler,
		getJobHandler:    getJobHandler,
		listJobsHandler:  listJobsHandler,
		logger:           logger.With("component", "http_server"),
	}
}

// UploadFile handles POST /api/v1/upload - stores the CSV and queues a job for it.
func (s *Server) UploadFile(ctx echo.Context) error {
	file, err := ctx.FormFile(uploadField)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "File is required")
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), uploadExtension) {
		return errorResponse(ctx, http.StatusBadRequest, "Only CSV files are accepted")
	}

	reqCtx := ctx.Request().Context()
	jobID := kernel.NewUUID()
	path := filepath.Join(s.uploadDir, jobID.String()+uploadExtension)

	if err := saveUpload(file, path); err != nil {
		s.logger.ErrorContext(reqCtx, "Failed to store upload", "job_id", jobID.String(), "error", err)
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to store file")
	}

	cmd, err := commands.NewCreateJobCommand(jobID, path)
	if err != nil {
		_ = os.Remove(path)
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to create job")
	}

	if err := s.createJobHandler.Handle(reqCtx, cmd); err != nil {
		s.logger.ErrorContext(reqCtx, "Failed to create job", "job_id", jobID.String(), "error", err)
		// The job row is committed before publishing, so the file stays if only the publish failed.
		if errors.Is(err, commands.ErrPersistenceFailed) {
			_ = os.Remove(path)
		}
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to create job")
	}

	s.logger.InfoContext(reqCtx, "Job queued", "job_id", jobID.String(), "file", file.Filename)

	return ctx.JSON(http.StatusAccepted, servers.UploadResponse{JobId: jobID.Bytes()})
}

// GetJobResult handles GET /api/v1/results/{jobId}.
func (s *Server) GetJobResult(ctx echo.Context, jobId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(jobId[:])
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid job id")
	}

	query, err := queries.NewGetJobQuery(id)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid job id")
	}

	res, err := s.getJobHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "Job not found")
		}
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve job")
	}

	return ctx.JSON(http.StatusOK, servers.JobResult{
		JobId:  res.ID.Bytes(),
		Status: servers.JobStatus(res.Status),
		Result: res.Result,
	})
}

// ListJobs handles GET /api/v1/jobs - newest jobs first, optionally filtered by status.
func (s *Server) ListJobs(ctx echo.Context, params servers.ListJobsParams) error {
	var statuses []job.Status
	if params.Status != nil {
		for _, name := range *params.Status {
			status, err := job.ParseStatus(string(name))
			if err != nil {
				return errorResponse(ctx, http.StatusBadRequest, "Invalid status: "+string(name))
			}
			statuses = append(statuses, status)
		}
	}

	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewListJobsQuery(statuses, nil, limit)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid filter: "+err.Error())
	}

	rows, err := s.listJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to list jobs")
	}

	response := make([]servers.JobSummary, len(rows))
	for i, row := range rows {
		response[i] = servers.JobSummary{
			JobId:     row.ID.Bytes(),
			Status:    servers.JobStatus(row.Status),
			CreatedAt: row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func saveUpload(file *multipart.FileHeader, path string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
	})
}
