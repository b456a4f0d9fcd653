package repository

import (
	"context"

	"faultline/internal/capture"
)

// ReportRepository exposes persistence for captured diagnostics.
type ReportRepository interface {
	Init(ctx context.Context) error
	Save(ctx context.Context, d capture.Diagnostic) error
	List(ctx context.Context) ([]capture.Diagnostic, error)
	CountByFault(ctx context.Context, faultID string) (int, error)
}
