package services

import (
	"context"
	"io"
	"log/slog"

	"studiolens/internal/analytics"
	"studiolens/internal/config"
	"studiolens/internal/reportparse"
	"studiolens/internal/validation"
	"studiolens/pkg/contracts/domain"
)

// ReportService orchestrates upload validation and report parsing. It is the
// boundary callers use; errors it returns are safe to present verbatim.
type ReportService struct {
	logger     *slog.Logger
	files      *validation.FileValidator
	payroll    *reportparse.PayrollParser
	firstVisit *reportparse.FirstVisitParser
}

// NewReportService creates a report service.
func NewReportService(cfg *config.Config, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		logger:     logger,
		files:      validation.NewFileValidator(cfg.Upload, logger),
		payroll:    reportparse.NewPayrollParser(logger),
		firstVisit: reportparse.NewFirstVisitParser(logger),
	}
}

// ParsePayroll validates and parses one payroll workbook upload.
func (s *ReportService) ParsePayroll(ctx context.Context, r io.Reader, filename string, size int64) (*domain.PayrollReport, error) {
	if err := s.files.ValidateReportFile(validation.UploadedFile{Filename: filename, Size: size}); err != nil {
		return nil, err
	}

	report, err := s.payroll.Parse(ctx, r, filename)
	if err != nil {
		s.logger.WarnContext(ctx, "payroll parse failed",
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		return nil, err
	}

	metrics := analytics.CalculateMetrics(report.Records)
	s.logger.InfoContext(ctx, "payroll report ready",
		slog.String("filename", filename),
		slog.Int("records", len(report.Records)),
		slog.Int("instructors", metrics.TotalInstructors),
		slog.Float64("total_earnings", metrics.TotalEarnings))

	return report, nil
}

// ParseFirstVisit validates and parses one first-visit report upload.
func (s *ReportService) ParseFirstVisit(ctx context.Context, r io.Reader, filename string, size int64) (*domain.FirstVisitReport, error) {
	if err := s.files.ValidateReportFile(validation.UploadedFile{Filename: filename, Size: size}); err != nil {
		return nil, err
	}

	report, err := s.firstVisit.Parse(ctx, r)
	if err != nil {
		s.logger.WarnContext(ctx, "first-visit parse failed",
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		return nil, err
	}

	metrics := analytics.CalculateFirstVisitMetrics(report.Records)
	s.logger.InfoContext(ctx, "first-visit report ready",
		slog.String("filename", filename),
		slog.Int("records", len(report.Records)),
		slog.Float64("retention_1_plus", metrics.RetentionRate1Plus))

	return report, nil
}
