package ports

import (
	"context"

	"github.com/agencyops/crm-system/internal/core/domain"
)

// StatsRepository computes the dashboard aggregate from current store state.
// Derived read only: never cached, never invalidated separately.
type StatsRepository interface {
	ComputeStats(ctx context.Context) (*domain.Stats, error)
}

// ReportService exposes financial reporting reads.
type ReportService interface {
	Stats(ctx context.Context) (*domain.Stats, error)
}
