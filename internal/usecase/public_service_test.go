package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/football-portal/external/footballdata"
	"github.com/riskibarqy/football-portal/internal/domain/article"
	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/domain/player"
	articlemock "github.com/riskibarqy/football-portal/internal/mocks/domain/article"
	categorymock "github.com/riskibarqy/football-portal/internal/mocks/domain/category"
	leaguemock "github.com/riskibarqy/football-portal/internal/mocks/domain/league"
	matchmock "github.com/riskibarqy/football-portal/internal/mocks/domain/match"
	playermock "github.com/riskibarqy/football-portal/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/football-portal/internal/mocks/domain/team"
	"github.com/riskibarqy/football-portal/internal/platform/cache"
	"github.com/riskibarqy/football-portal/internal/platform/record"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeFootball serves canned provider results by endpoint name.
type fakeFootball struct {
	mu      sync.Mutex
	results map[string]footballdata.Result
	calls   []string
}

func (f *fakeFootball) result(name string) footballdata.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if res, ok := f.results[name]; ok {
		return res
	}
	return footballdata.Result{Data: json.RawMessage("[]")}
}

func (f *fakeFootball) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeFootball) LiveFixtures(context.Context) footballdata.Result {
	return f.result("live")
}

func (f *fakeFootball) Fixture(context.Context, int64) footballdata.Result {
	return f.result("fixture")
}

func (f *fakeFootball) FixtureEvents(context.Context, int64) footballdata.Result {
	return f.result("events")
}

func (f *fakeFootball) FixtureLineups(context.Context, int64) footballdata.Result {
	return f.result("lineups")
}

func (f *fakeFootball) Standings(context.Context, int64, int) footballdata.Result {
	return f.result("standings")
}

func (f *fakeFootball) TopScorers(context.Context, int64, int) footballdata.Result {
	return f.result("scorers")
}

func (f *fakeFootball) Fixtures(context.Context, int64, int) footballdata.Result {
	return f.result("fixtures")
}

func degraded() footballdata.Result {
	return footballdata.Result{Data: json.RawMessage("[]"), Err: footballdata.ErrUpstreamUnavailable}
}

type publicMocks struct {
	articles   *articlemock.Repository
	categories *categorymock.Repository
	leagues    *leaguemock.Repository
	teams      *teammock.Repository
	players    *playermock.Repository
	matches    *matchmock.Repository
}

func newPublicMocks(t *testing.T) publicMocks {
	return publicMocks{
		articles:   articlemock.NewRepository(t),
		categories: categorymock.NewRepository(t),
		leagues:    leaguemock.NewRepository(t),
		teams:      teammock.NewRepository(t),
		players:    playermock.NewRepository(t),
		matches:    matchmock.NewRepository(t),
	}
}

func (m publicMocks) repos() PublicRepositories {
	return PublicRepositories{
		Articles:   m.articles,
		Categories: m.categories,
		Leagues:    m.leagues,
		Teams:      m.teams,
		Players:    m.players,
		Matches:    m.matches,
	}
}

func TestPublicService_ArticleCountsView(t *testing.T) {
	t.Parallel()

	m := newPublicMocks(t)
	m.articles.On("BySlug", mock.Anything, "derby-day").
		Return(record.Record{"id": int64(3), "slug": "derby-day", "status": article.StatusPublished, "views": int64(4)}, true, nil).Once()
	m.articles.On("IncrementViews", mock.Anything, int64(3)).Return(nil).Once()

	svc := NewPublicService(m.repos(), nil, nil, nil)
	got, err := svc.Article(t.Context(), " derby-day ")
	require.NoError(t, err)
	require.Equal(t, int64(5), got.Int64("views"))
}

func TestPublicService_ArticleViewFailureStillServes(t *testing.T) {
	t.Parallel()

	m := newPublicMocks(t)
	m.articles.On("BySlug", mock.Anything, "derby-day").
		Return(record.Record{"id": int64(3), "status": article.StatusPublished, "views": int64(4)}, true, nil).Once()
	m.articles.On("IncrementViews", mock.Anything, int64(3)).Return(errors.New("db busy")).Once()

	svc := NewPublicService(m.repos(), nil, nil, nil)
	got, err := svc.Article(t.Context(), "derby-day")
	require.NoError(t, err)
	require.Equal(t, int64(4), got.Int64("views"))
}

func TestPublicService_ArticleHidesDrafts(t *testing.T) {
	t.Parallel()

	m := newPublicMocks(t)
	m.articles.On("BySlug", mock.Anything, "secret").
		Return(record.Record{"id": int64(9), "status": article.StatusDraft}, true, nil).Once()
	m.articles.On("BySlug", mock.Anything, "missing").Return(nil, false, nil).Once()

	svc := NewPublicService(m.repos(), nil, nil, nil)
	for _, slug := range []string{"secret", "missing"} {
		if _, err := svc.Article(t.Context(), slug); !errors.Is(err, ErrNotFound) {
			t.Fatalf("slug %q: expected ErrNotFound, got %v", slug, err)
		}
	}
	if _, err := svc.Article(t.Context(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank slug, got %v", err)
	}
}

func TestPublicService_CategoriesAreCachedUntilInvalidated(t *testing.T) {
	t.Parallel()

	m := newPublicMocks(t)
	cats := []record.Record{{"id": int64(1), "name": "News", "slug": "news"}}
	m.categories.On("All", mock.Anything).Return(cats, nil).Twice()

	svc := NewPublicService(m.repos(), nil, cache.NewStore(time.Minute), nil)
	for i := 0; i < 3; i++ {
		got, err := svc.Categories(t.Context())
		require.NoError(t, err)
		require.Equal(t, cats, got)
	}

	svc.InvalidateNavigation(t.Context())
	_, err := svc.Categories(t.Context())
	require.NoError(t, err)
}

func TestPublicService_HomeAssemblesSections(t *testing.T) {
	t.Parallel()

	m := newPublicMocks(t)
	m.articles.On("Featured", mock.Anything, homeFeaturedLimit).Return([]record.Record{{"id": int64(1)}}, nil).Once()
	m.articles.On("Published", mock.Anything, 1, homeLatestLimit).
		Return(record.NewPage([]record.Record{{"id": int64(1)}, {"id": int64(2)}}, 2, 1, homeLatestLimit), nil).Once()
	m.matches.On("ListByStatus", mock.Anything, match.StatusLive, homeMatchLimit).Return(nil, nil).Once()
	m.matches.On("Upcoming", mock.Anything, homeMatchLimit).Return([]record.Record{{"id": int64(8)}}, nil).Once()
	m.matches.On("Recent", mock.Anything, homeMatchLimit).Return(nil, nil).Once()
	m.categories.On("All", mock.Anything).Return(nil, nil).Once()

	svc := NewPublicService(m.repos(), nil, nil, nil)
	page, err := svc.Home(t.Context())
	require.NoError(t, err)
	require.Len(t, page.Featured, 1)
	require.Len(t, page.Latest, 2)
	require.Len(t, page.Upcoming, 1)
	require.NotNil(t, page.Live)
	require.NotNil(t, page.Results)
	require.NotNil(t, page.Categories)
}

func TestPublicService_HomeFailsOnStorageError(t *testing.T) {
	t.Parallel()

	m := newPublicMocks(t)
	m.articles.On("Featured", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Maybe()
	m.articles.On("Published", mock.Anything, mock.Anything, mock.Anything).Return(record.Page[record.Record]{}, nil).Maybe()
	m.matches.On("ListByStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	m.matches.On("Upcoming", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	m.matches.On("Recent", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	m.categories.On("All", mock.Anything).Return(nil, nil).Maybe()

	svc := NewPublicService(m.repos(), nil, nil, nil)
	_, err := svc.Home(t.Context())
	require.ErrorContains(t, err, "list featured articles")
}

func TestPublicService_LeaguePageDegradesWithProvider(t *testing.T) {
	t.Parallel()

	m := newPublicMocks(t)
	m.leagues.On("Find", mock.Anything, int64(1)).
		Return(record.Record{"id": int64(1), "name": "Premier League", "season": "2026/27", "external_id": int64(39)}, true, nil).Once()
	m.teams.On("ByLeague", mock.Anything, int64(1)).Return([]record.Record{{"id": int64(1)}, {"id": int64(2)}}, nil).Once()
	m.matches.On("Standings", mock.Anything, int64(1)).Return([]league.Standing{{TeamID: 1, Points: 3}}, nil).Once()
	m.players.On("TopScorers", mock.Anything, int64(1), leagueScorers).Return(nil, nil).Once()
	m.matches.On("ByLeague", mock.Anything, int64(1), leagueFixtures).Return(nil, nil).Once()

	football := &fakeFootball{results: map[string]footballdata.Result{
		"standings": {Data: json.RawMessage(`[{"league":{"id":39}}]`)},
		"scorers":   degraded(),
	}}
	svc := NewPublicService(m.repos(), football, nil, nil)

	page, err := svc.League(t.Context(), 1)
	require.NoError(t, err)
	require.Len(t, page.Teams, 2)
	require.Len(t, page.Standings, 1)
	require.Equal(t, []player.TopScorer{}, page.TopScorers)
	require.NotNil(t, page.Upstream)
	require.True(t, page.Upstream.Degraded)
	require.JSONEq(t, `[{"league":{"id":39}}]`, string(page.Upstream.Standings))
	require.JSONEq(t, `[]`, string(page.Upstream.TopScorers))
}

func TestPublicService_LeaguePageWithoutExternalID(t *testing.T) {
	t.Parallel()

	m := newPublicMocks(t)
	m.leagues.On("Find", mock.Anything, int64(2)).Return(record.Record{"id": int64(2), "season": "2026"}, true, nil).Once()
	m.teams.On("ByLeague", mock.Anything, int64(2)).Return(nil, nil).Once()
	m.matches.On("Standings", mock.Anything, int64(2)).Return(nil, nil).Once()
	m.players.On("TopScorers", mock.Anything, int64(2), leagueScorers).Return(nil, nil).Once()
	m.matches.On("ByLeague", mock.Anything, int64(2), leagueFixtures).Return(nil, nil).Once()

	football := &fakeFootball{}
	svc := NewPublicService(m.repos(), football, nil, nil)

	page, err := svc.League(t.Context(), 2)
	require.NoError(t, err)
	require.Nil(t, page.Upstream)
	require.Empty(t, football.Calls())
}

func TestPublicService_MatchCentre(t *testing.T) {
	t.Parallel()

	m := newPublicMocks(t)
	m.matches.On("Find", mock.Anything, int64(4)).
		Return(record.Record{"id": int64(4), "home_team_id": int64(1), "away_team_id": int64(2), "external_id": int64(1035)}, true, nil).Once()
	m.matches.On("Events", mock.Anything, int64(4)).Return([]match.Event{{ID: 1, MatchID: 4, Type: match.EventGoal}}, nil).Once()
	m.matches.On("Lineups", mock.Anything, int64(4)).Return([]match.LineupEntry{
		{TeamID: 1, PlayerID: 10},
		{TeamID: 2, PlayerID: 20},
		{TeamID: 2, PlayerID: 21},
	}, nil).Once()

	football := &fakeFootball{results: map[string]footballdata.Result{
		"fixture": {Data: json.RawMessage(`[{"fixture":{"id":1035}}]`)},
	}}
	svc := NewPublicService(m.repos(), football, nil, nil)

	centre, err := svc.Match(t.Context(), 4)
	require.NoError(t, err)
	require.Len(t, centre.Events, 1)
	require.Len(t, centre.Lineups.Home, 1)
	require.Len(t, centre.Lineups.Away, 2)
	require.NotNil(t, centre.Upstream)
	require.False(t, centre.Upstream.Degraded)
	require.ElementsMatch(t, []string{"fixture", "events", "lineups"}, football.Calls())
}

func TestPublicService_MatchNotFound(t *testing.T) {
	t.Parallel()

	m := newPublicMocks(t)
	m.matches.On("Find", mock.Anything, int64(99)).Return(nil, false, nil).Once()

	svc := NewPublicService(m.repos(), nil, nil, nil)
	if _, err := svc.Match(t.Context(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPublicService_LiveMarksDegradedFeed(t *testing.T) {
	t.Parallel()

	m := newPublicMocks(t)
	m.matches.On("ListByStatus", mock.Anything, match.StatusLive, 0).Return([]record.Record{{"id": int64(4)}}, nil).Once()

	football := &fakeFootball{results: map[string]footballdata.Result{"live": degraded()}}
	svc := NewPublicService(m.repos(), football, nil, nil)

	page, err := svc.Live(t.Context())
	require.NoError(t, err)
	require.Len(t, page.Matches, 1)
	require.True(t, page.Degraded)
	require.JSONEq(t, `[]`, string(page.Upstream))
}

func TestSeasonYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{raw: "2026", want: 2026, ok: true},
		{raw: "2025/26", want: 2025, ok: true},
		{raw: " 2024-2025 ", want: 2024, ok: true},
		{raw: "", ok: false},
		{raw: "next", ok: false},
	}
	for _, tc := range tests {
		got, ok := seasonYear(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("seasonYear(%q) = %d, %v; want %d, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
