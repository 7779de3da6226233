package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestImportTemplateFilename(t *testing.T) {
	svc := NewExportService(newFakeAPI(), testLogger(), t.TempDir())

	filename, data, err := svc.ImportTemplate(context.Background(), "landlord")
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	if filename != "import_template_landlord.xlsx" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if string(data) != "xlsx:landlord" {
		t.Fatalf("unexpected blob %q", data)
	}
}

func TestSaveImportTemplate(t *testing.T) {
	dir := t.TempDir()
	svc := NewExportService(newFakeAPI(), testLogger(), dir)

	path, err := svc.SaveImportTemplate(context.Background(), "property")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "import_template_property.xlsx" {
		t.Fatalf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "xlsx:property" {
		t.Fatalf("unexpected contents %q", data)
	}
}
