package validation

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"studiolens/internal/config"
	apperrors "studiolens/internal/errors"
)

// UploadedFile describes an incoming report file for validation.
type UploadedFile struct {
	Filename string `validate:"required"`
	Size     int64  `validate:"gt=0"`
}

// FileValidator enforces the upload boundary rules: a named, non-empty file
// with a whitelisted spreadsheet extension under the configured size cap.
type FileValidator struct {
	cfg      config.UploadConfig
	validate *validator.Validate
	logger   *slog.Logger
}

// NewFileValidator creates a new file validator.
func NewFileValidator(cfg config.UploadConfig, logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger,
	}
}

// ValidateReportFile returns a validation error when the file may not be
// accepted. The messages are user-facing.
func (v *FileValidator) ValidateReportFile(file UploadedFile) error {
	if err := v.validate.Struct(file); err != nil {
		v.logger.Debug("upload rejected by struct validation",
			slog.String("filename", file.Filename),
			slog.Int64("size", file.Size))
		return apperrors.NewValidationError("No file provided", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !v.extensionAllowed(ext) {
		return apperrors.NewValidationError(
			fmt.Sprintf("File must be %s format", strings.Join(v.cfg.Extensions(), " or ")), nil).
			WithContext("extension", ext)
	}

	if file.Size > v.cfg.MaxSizeBytes {
		return apperrors.NewValidationError(
			fmt.Sprintf("File size must be less than %dMB", v.cfg.MaxSizeBytes/(1024*1024)), nil).
			WithContext("size", file.Size)
	}

	return nil
}

func (v *FileValidator) extensionAllowed(ext string) bool {
	for _, allowed := range v.cfg.Extensions() {
		if ext == allowed {
			return true
		}
	}
	return false
}
