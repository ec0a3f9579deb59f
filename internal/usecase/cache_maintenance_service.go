package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-portal/internal/platform/cache"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

// APICacheSweeper removes expired upstream responses.
type APICacheSweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

type SweepReport struct {
	APIEntries int64 `json:"api_entries"`
	HotEntries int   `json:"hot_entries"`
}

type CacheMaintenanceService struct {
	api    APICacheSweeper
	hot    []*cache.Store
	logger *logging.Logger
}

// NewCacheMaintenanceService sweeps the upstream response cache and any
// in-process stores. api may be nil when the provider is disabled.
func NewCacheMaintenanceService(api APICacheSweeper, logger *logging.Logger, hot ...*cache.Store) *CacheMaintenanceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CacheMaintenanceService{api: api, hot: hot, logger: logger}
}

func (s *CacheMaintenanceService) Sweep(ctx context.Context) (SweepReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CacheMaintenanceService.Sweep")
	defer span.End()

	var report SweepReport
	for _, store := range s.hot {
		if store != nil {
			report.HotEntries += store.Sweep()
		}
	}
	if s.api != nil {
		removed, err := s.api.Sweep(ctx)
		if err != nil {
			return report, fmt.Errorf("sweep api cache: %w", err)
		}
		report.APIEntries = removed
	}

	s.logger.DebugContext(ctx, "cache swept", "api_entries", report.APIEntries, "hot_entries", report.HotEntries)
	return report, nil
}

// Run sweeps every interval until ctx is done. A non-positive interval
// returns immediately.
func (s *CacheMaintenanceService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.WarnContext(ctx, "periodic cache sweep failed", "error", err)
			}
		}
	}
}
