package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "studiolens/internal/errors"
	"studiolens/pkg/contracts/domain"
)

// multipartMemoryLimit bounds how much of an upload is buffered in memory;
// the rest spills to temp files.
const multipartMemoryLimit = 10 << 20

// ReportServiceInterface is what the handler needs from the service layer.
type ReportServiceInterface interface {
	ParsePayroll(ctx context.Context, r io.Reader, filename string, size int64) (*domain.PayrollReport, error)
	ParseFirstVisit(ctx context.Context, r io.Reader, filename string, size int64) (*domain.FirstVisitReport, error)
}

// ReportHandler serves the report upload endpoints.
type ReportHandler struct {
	service ReportServiceInterface
	logger  *slog.Logger
}

// NewReportHandler creates a report handler.
func NewReportHandler(service ReportServiceInterface, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With(slog.String("component", "report_handler")),
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/payroll", h.ParsePayroll)
	r.Post("/first-visit", h.ParseFirstVisit)
	return r
}

// ParsePayroll accepts a multipart payroll workbook under the "file" field
// and responds with the normalized parse result.
func (h *ReportHandler) ParsePayroll(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	report, err := h.service.ParsePayroll(r.Context(), file, header.Filename, header.Size)
	if err != nil {
		h.renderError(w, r, "payroll", err)
		return
	}

	parsesTotal.WithLabelValues("payroll", "ok").Inc()
	render.Status(r, http.StatusOK)
	render.JSON(w, r, report)
}

// ParseFirstVisit accepts a multipart first-visit report under the "file"
// field and responds with the normalized parse result.
func (h *ReportHandler) ParseFirstVisit(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	report, err := h.service.ParseFirstVisit(r.Context(), file, header.Filename, header.Size)
	if err != nil {
		h.renderError(w, r, "first_visit", err)
		return
	}

	parsesTotal.WithLabelValues("first_visit", "ok").Inc()
	render.Status(r, http.StatusOK)
	render.JSON(w, r, report)
}

func (h *ReportHandler) formFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, *multipartFileHeader, bool) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		h.logger.DebugContext(r.Context(), "multipart parse failed",
			slog.String("error", err.Error()))
		_ = render.Render(w, r, apierrors.ErrInvalidRequest)
		return nil, nil, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		_ = render.Render(w, r, apierrors.ErrMissingFile)
		return nil, nil, false
	}
	return file, &multipartFileHeader{Filename: header.Filename, Size: header.Size}, true
}

// multipartFileHeader carries the upload metadata the service needs.
type multipartFileHeader struct {
	Filename string
	Size     int64
}

func (h *ReportHandler) renderError(w http.ResponseWriter, r *http.Request, reportType string, err error) {
	apiErr := apierrors.ToAPIError(err)
	status := "error"
	if apiErr.StatusCode == http.StatusUnprocessableEntity {
		status = "parse_failed"
	} else if apiErr.StatusCode == http.StatusBadRequest {
		status = "rejected"
	}
	parsesTotal.WithLabelValues(reportType, status).Inc()

	h.logger.WarnContext(r.Context(), "report request failed",
		slog.String("report_type", reportType),
		slog.Int("status", apiErr.StatusCode),
		slog.String("error", err.Error()))
	_ = render.Render(w, r, apiErr)
}
