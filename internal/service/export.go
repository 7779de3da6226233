package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Mutombe/propdesk/internal/port/backend"
)

// ExportService handles binary file flows: import-template download and
// saving exported files under the configured export directory.
type ExportService struct {
	api backend.API
	log *slog.Logger
	dir string
}

// NewExportService creates the export controller writing into dir.
func NewExportService(api backend.API, log *slog.Logger, dir string) *ExportService {
	return &ExportService{api: api, log: log, dir: dir}
}

// ImportTemplate fetches the import spreadsheet template for a resource and
// returns the blob together with its conventional filename.
func (e *ExportService) ImportTemplate(ctx context.Context, resource string) (filename string, data []byte, err error) {
	data, err = e.api.DownloadImportTemplate(ctx, resource)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("import_template_%s.xlsx", resource), data, nil
}

// SaveImportTemplate fetches the template and writes it to the export
// directory, returning the saved path.
func (e *ExportService) SaveImportTemplate(ctx context.Context, resource string) (string, error) {
	filename, data, err := e.ImportTemplate(ctx, resource)
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save template: %w", err)
	}
	e.log.Info("import template saved", "resource", resource, "path", path)
	return path, nil
}
