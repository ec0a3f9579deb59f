package footballdata

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

const defaultWarmWorkers = 4

// WarmTarget is one league season to prefetch.
type WarmTarget struct {
	LeagueID int64
	Season   int
}

type WarmReport struct {
	Requests int `json:"requests"`
	Failed   int `json:"failed"`
}

// ParseWarmTargets reads "league:season" pairs separated by commas,
// e.g. "39:2026,140:2026".
func ParseWarmTargets(raw string) ([]WarmTarget, error) {
	var out []WarmTarget
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		leagueRaw, seasonRaw, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("warm target %q must be league:season", part)
		}
		leagueID, err := strconv.ParseInt(strings.TrimSpace(leagueRaw), 10, 64)
		if err != nil || leagueID <= 0 {
			return nil, fmt.Errorf("warm target %q has invalid league id", part)
		}
		season, err := strconv.Atoi(strings.TrimSpace(seasonRaw))
		if err != nil || season <= 0 {
			return nil, fmt.Errorf("warm target %q has invalid season", part)
		}
		out = append(out, WarmTarget{LeagueID: leagueID, Season: season})
	}
	return out, nil
}

// Warm prefetches standings, fixtures and top scorers for every target so
// the first page views are served from cache.
func (c *Client) Warm(ctx context.Context, targets []WarmTarget, workers int) (WarmReport, error) {
	if len(targets) == 0 {
		return WarmReport{}, nil
	}
	if workers <= 0 {
		workers = defaultWarmWorkers
	}

	fetches := []func(context.Context, int64, int) Result{c.Standings, c.Fixtures, c.TopScorers}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return WarmReport{}, fmt.Errorf("create warm worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg        sync.WaitGroup
		requests  atomic.Int32
		failed    atomic.Int32
		submitErr error
	)
	for _, target := range targets {
		for _, fetch := range fetches {
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				requests.Add(1)
				if res := fetch(ctx, target.LeagueID, target.Season); !res.OK() {
					failed.Add(1)
				}
			}); err != nil {
				wg.Done()
				submitErr = fmt.Errorf("submit warm task: %w", err)
				break
			}
		}
		if submitErr != nil {
			break
		}
	}
	wg.Wait()

	report := WarmReport{Requests: int(requests.Load()), Failed: int(failed.Load())}
	c.logger.InfoContext(ctx, "football cache warm finished", "requests", report.Requests, "failed", report.Failed)
	return report, submitErr
}
