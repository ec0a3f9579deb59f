package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-portal/external/footballdata"
	"github.com/riskibarqy/football-portal/internal/domain/article"
	"github.com/riskibarqy/football-portal/internal/domain/category"
	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/domain/player"
	"github.com/riskibarqy/football-portal/internal/domain/team"
	"github.com/riskibarqy/football-portal/internal/platform/cache"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/platform/record"
	"github.com/sourcegraph/conc/pool"
)

const (
	navCategoriesKey = "nav:categories"

	homeFeaturedLimit = 5
	homeLatestLimit   = 10
	homeMatchLimit    = 10
	leagueFixtures    = 20
	leagueScorers     = 10
)

// FootballData is the slice of the upstream client the public pages read.
type FootballData interface {
	LiveFixtures(ctx context.Context) footballdata.Result
	Fixture(ctx context.Context, fixtureID int64) footballdata.Result
	FixtureEvents(ctx context.Context, fixtureID int64) footballdata.Result
	FixtureLineups(ctx context.Context, fixtureID int64) footballdata.Result
	Standings(ctx context.Context, leagueID int64, season int) footballdata.Result
	TopScorers(ctx context.Context, leagueID int64, season int) footballdata.Result
}

type PublicRepositories struct {
	Articles   article.Repository
	Categories category.Repository
	Leagues    league.Repository
	Teams      team.Repository
	Players    player.Repository
	Matches    match.Repository
}

type HomePage struct {
	Featured   []record.Record `json:"featured"`
	Latest     []record.Record `json:"latest"`
	Live       []record.Record `json:"live"`
	Upcoming   []record.Record `json:"upcoming"`
	Results    []record.Record `json:"results"`
	Categories []record.Record `json:"categories"`
}

type LeaguePage struct {
	League     record.Record      `json:"league"`
	Teams      []record.Record    `json:"teams"`
	Standings  []league.Standing  `json:"standings"`
	TopScorers []player.TopScorer `json:"top_scorers"`
	Fixtures   []record.Record    `json:"fixtures"`
	Upstream   *UpstreamLeague    `json:"upstream,omitempty"`
}

// UpstreamLeague carries provider data as received. Degraded is set when
// any part came back empty because the provider was unavailable.
type UpstreamLeague struct {
	Standings  json.RawMessage `json:"standings"`
	TopScorers json.RawMessage `json:"top_scorers"`
	Degraded   bool            `json:"degraded"`
}

type MatchCentre struct {
	Match    record.Record  `json:"match"`
	Events   []match.Event  `json:"events"`
	Lineups  match.Lineups  `json:"lineups"`
	Upstream *UpstreamMatch `json:"upstream,omitempty"`
}

type UpstreamMatch struct {
	Fixture  json.RawMessage `json:"fixture"`
	Events   json.RawMessage `json:"events"`
	Lineups  json.RawMessage `json:"lineups"`
	Degraded bool            `json:"degraded"`
}

type TeamPage struct {
	Team    record.Record   `json:"team"`
	Players []record.Record `json:"players"`
}

type LivePage struct {
	Matches  []record.Record `json:"matches"`
	Upstream json.RawMessage `json:"upstream,omitempty"`
	Degraded bool            `json:"degraded"`
}

type PublicService struct {
	repos    PublicRepositories
	football FootballData
	cache    *cache.Store
	logger   *logging.Logger
}

// NewPublicService builds the read side of the portal. football may be nil
// when the upstream provider is disabled; cache may be nil to always read
// through.
func NewPublicService(repos PublicRepositories, football FootballData, store *cache.Store, logger *logging.Logger) *PublicService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PublicService{
		repos:    repos,
		football: football,
		cache:    store,
		logger:   logger,
	}
}

func (s *PublicService) Home(ctx context.Context) (HomePage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.Home")
	defer span.End()

	var page HomePage
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) (err error) {
		page.Featured, err = s.repos.Articles.Featured(ctx, homeFeaturedLimit)
		return wrapErr("list featured articles", err)
	})
	p.Go(func(ctx context.Context) error {
		latest, err := s.repos.Articles.Published(ctx, 1, homeLatestLimit)
		page.Latest = latest.Items
		return wrapErr("list latest articles", err)
	})
	p.Go(func(ctx context.Context) (err error) {
		page.Live, err = s.repos.Matches.ListByStatus(ctx, match.StatusLive, homeMatchLimit)
		return wrapErr("list live matches", err)
	})
	p.Go(func(ctx context.Context) (err error) {
		page.Upcoming, err = s.repos.Matches.Upcoming(ctx, homeMatchLimit)
		return wrapErr("list upcoming matches", err)
	})
	p.Go(func(ctx context.Context) (err error) {
		page.Results, err = s.repos.Matches.Recent(ctx, homeMatchLimit)
		return wrapErr("list recent results", err)
	})
	p.Go(func(ctx context.Context) (err error) {
		page.Categories, err = s.Categories(ctx)
		return err
	})
	if err := p.Wait(); err != nil {
		return HomePage{}, err
	}

	page.Featured = orEmpty(page.Featured)
	page.Latest = orEmpty(page.Latest)
	page.Live = orEmpty(page.Live)
	page.Upcoming = orEmpty(page.Upcoming)
	page.Results = orEmpty(page.Results)
	page.Categories = orEmpty(page.Categories)
	return page, nil
}

func (s *PublicService) Articles(ctx context.Context, page, perPage int) (record.Page[record.Record], error) {
	out, err := s.repos.Articles.Published(ctx, page, perPage)
	if err != nil {
		return record.Page[record.Record]{}, fmt.Errorf("list published articles: %w", err)
	}
	return out, nil
}

// Article returns a published article and counts the view.
func (s *PublicService) Article(ctx context.Context, slug string) (record.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.Article")
	defer span.End()

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}
	rec, ok, err := s.repos.Articles.BySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get article by slug: %w", err)
	}
	if !ok || rec.String("status") != article.StatusPublished {
		return nil, fmt.Errorf("%w: article=%s", ErrNotFound, slug)
	}

	if err := s.repos.Articles.IncrementViews(ctx, rec.Int64("id")); err != nil {
		s.logger.WarnContext(ctx, "increment article views failed", "article_id", rec.Int64("id"), "error", err)
	} else {
		rec["views"] = rec.Int64("views") + 1
	}
	return rec, nil
}

// Categories is the navigation list, served from the in-process cache.
func (s *PublicService) Categories(ctx context.Context) ([]record.Record, error) {
	load := func(ctx context.Context) ([]record.Record, error) {
		items, err := s.repos.Categories.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		return orEmpty(items), nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return cache.Load(ctx, s.cache, navCategoriesKey, load)
}

func (s *PublicService) InvalidateNavigation(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, navCategoriesKey)
	}
}

func (s *PublicService) CategoryArticles(ctx context.Context, slug string, page, perPage int) (record.Record, record.Page[record.Record], error) {
	cat, ok, err := s.repos.Categories.BySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, record.Page[record.Record]{}, fmt.Errorf("get category by slug: %w", err)
	}
	if !ok {
		return nil, record.Page[record.Record]{}, fmt.Errorf("%w: category=%s", ErrNotFound, slug)
	}

	items, err := s.repos.Articles.ByCategory(ctx, cat.Int64("id"), page, perPage)
	if err != nil {
		return nil, record.Page[record.Record]{}, fmt.Errorf("list category articles: %w", err)
	}
	return cat, items, nil
}

func (s *PublicService) Leagues(ctx context.Context) ([]record.Record, error) {
	items, err := s.repos.Leagues.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return orEmpty(items), nil
}

// League assembles the league page. Local tables and the provider's view
// are read concurrently; provider failures only mark the page degraded.
func (s *PublicService) League(ctx context.Context, id int64) (LeaguePage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.League")
	defer span.End()

	lg, err := s.findOne(ctx, s.repos.Leagues, "league", id)
	if err != nil {
		return LeaguePage{}, err
	}

	page := LeaguePage{League: lg}
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) (err error) {
		page.Teams, err = s.repos.Teams.ByLeague(ctx, id)
		return wrapErr("list league teams", err)
	})
	p.Go(func(ctx context.Context) (err error) {
		page.Standings, err = s.repos.Matches.Standings(ctx, id)
		return wrapErr("compute standings", err)
	})
	p.Go(func(ctx context.Context) (err error) {
		page.TopScorers, err = s.repos.Players.TopScorers(ctx, id, leagueScorers)
		return wrapErr("compute top scorers", err)
	})
	p.Go(func(ctx context.Context) (err error) {
		page.Fixtures, err = s.repos.Matches.ByLeague(ctx, id, leagueFixtures)
		return wrapErr("list league fixtures", err)
	})

	var standings, scorers footballdata.Result
	externalID := lg.Int64("external_id")
	season, hasSeason := seasonYear(lg.String("season"))
	withUpstream := s.football != nil && externalID > 0 && hasSeason
	if withUpstream {
		p.Go(func(ctx context.Context) error {
			standings = s.football.Standings(ctx, externalID, season)
			return nil
		})
		p.Go(func(ctx context.Context) error {
			scorers = s.football.TopScorers(ctx, externalID, season)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return LeaguePage{}, err
	}
	page.Teams = orEmpty(page.Teams)
	page.Fixtures = orEmpty(page.Fixtures)
	page.Standings = orEmpty(page.Standings)
	page.TopScorers = orEmpty(page.TopScorers)
	if withUpstream {
		page.Upstream = &UpstreamLeague{
			Standings:  standings.Data,
			TopScorers: scorers.Data,
			Degraded:   !standings.OK() || !scorers.OK(),
		}
	}
	return page, nil
}

func (s *PublicService) Match(ctx context.Context, id int64) (MatchCentre, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.Match")
	defer span.End()

	m, err := s.findOne(ctx, s.repos.Matches, "match", id)
	if err != nil {
		return MatchCentre{}, err
	}

	centre := MatchCentre{Match: m}
	var entries []match.LineupEntry
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) (err error) {
		centre.Events, err = s.repos.Matches.Events(ctx, id)
		return wrapErr("list match events", err)
	})
	p.Go(func(ctx context.Context) (err error) {
		entries, err = s.repos.Matches.Lineups(ctx, id)
		return wrapErr("list match lineups", err)
	})

	var fixture, events, lineups footballdata.Result
	externalID := m.Int64("external_id")
	withUpstream := s.football != nil && externalID > 0
	if withUpstream {
		p.Go(func(ctx context.Context) error {
			fixture = s.football.Fixture(ctx, externalID)
			return nil
		})
		p.Go(func(ctx context.Context) error {
			events = s.football.FixtureEvents(ctx, externalID)
			return nil
		})
		p.Go(func(ctx context.Context) error {
			lineups = s.football.FixtureLineups(ctx, externalID)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return MatchCentre{}, err
	}
	centre.Events = orEmpty(centre.Events)
	centre.Lineups = splitLineups(m, entries)
	if withUpstream {
		centre.Upstream = &UpstreamMatch{
			Fixture:  fixture.Data,
			Events:   events.Data,
			Lineups:  lineups.Data,
			Degraded: !fixture.OK() || !events.OK() || !lineups.OK(),
		}
	}
	return centre, nil
}

func (s *PublicService) Team(ctx context.Context, id int64) (TeamPage, error) {
	t, err := s.findOne(ctx, s.repos.Teams, "team", id)
	if err != nil {
		return TeamPage{}, err
	}
	players, err := s.repos.Players.ByTeam(ctx, id)
	if err != nil {
		return TeamPage{}, fmt.Errorf("list team players: %w", err)
	}
	return TeamPage{Team: t, Players: orEmpty(players)}, nil
}

func (s *PublicService) Player(ctx context.Context, id int64) (record.Record, error) {
	return s.findOne(ctx, s.repos.Players, "player", id)
}

// Live lists live matches from storage alongside the provider's live feed.
func (s *PublicService) Live(ctx context.Context) (LivePage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PublicService.Live")
	defer span.End()

	matches, err := s.repos.Matches.ListByStatus(ctx, match.StatusLive, 0)
	if err != nil {
		return LivePage{}, fmt.Errorf("list live matches: %w", err)
	}
	page := LivePage{Matches: orEmpty(matches)}
	if s.football != nil {
		res := s.football.LiveFixtures(ctx)
		page.Upstream = res.Data
		page.Degraded = !res.OK()
	}
	return page, nil
}

func (s *PublicService) findOne(ctx context.Context, store record.Store, entity string, id int64) (record.Record, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %s id must be greater than zero", ErrInvalidInput, entity)
	}
	rec, ok, err := store.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", entity, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s=%d", ErrNotFound, entity, id)
	}
	return rec, nil
}

// seasonYear reads the starting year of seasons such as "2026" or "2025/26".
func seasonYear(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(raw[:4])
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
