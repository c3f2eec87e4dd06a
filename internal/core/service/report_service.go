package service

import (
	"context"

	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/ports"
)

// ReportService exposes the dashboard aggregate. Each call recomputes from
// current store state; nothing is cached.
type ReportService struct {
	stats ports.StatsRepository
}

func NewReportService(stats ports.StatsRepository) *ReportService {
	return &ReportService{stats: stats}
}

func (s *ReportService) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.stats.ComputeStats(ctx)
}
