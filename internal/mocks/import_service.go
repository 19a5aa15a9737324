package mocks

import (
	"context"

	"github.com/lexcards/lexcards-api/internal/service"
)

// MockImportService implements service.ImportService for testing
type MockImportService struct {
	ImportFn    func(ctx context.Context, owner string, data []byte) (*service.ImportResult, error)
	RestoreFn   func(ctx context.Context, owner, snapshotName string) (*service.ImportResult, error)
	SnapshotsFn func(ctx context.Context, owner string) ([]string, error)
}

// Import implements the ImportService interface
func (m *MockImportService) Import(
	ctx context.Context,
	owner string,
	data []byte,
) (*service.ImportResult, error) {
	return m.ImportFn(ctx, owner, data)
}

// Restore implements the ImportService interface
func (m *MockImportService) Restore(
	ctx context.Context,
	owner, snapshotName string,
) (*service.ImportResult, error) {
	return m.RestoreFn(ctx, owner, snapshotName)
}

// Snapshots implements the ImportService interface
func (m *MockImportService) Snapshots(ctx context.Context, owner string) ([]string, error) {
	return m.SnapshotsFn(ctx, owner)
}

// MockExportService implements service.ExportService for testing
type MockExportService struct {
	ExportFn func(ctx context.Context, owner, exam, statute string) ([]byte, string, error)
}

// Export implements the ExportService interface
func (m *MockExportService) Export(
	ctx context.Context,
	owner, exam, statute string,
) ([]byte, string, error) {
	return m.ExportFn(ctx, owner, exam, statute)
}
