package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/football-portal/external/footballdata"
	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

// FixtureSource is the upstream feed a fixture sync reads from.
type FixtureSource interface {
	Fixtures(ctx context.Context, leagueID int64, season int) footballdata.Result
}

type SyncFixturesInput struct {
	LeagueID int64 `json:"league_id" validate:"required,gt=0"`
	Season   int   `json:"season" validate:"required,gte=1900,lte=2100"`
}

// MatchSyncService copies a provider league's fixtures into local storage.
type MatchSyncService struct {
	source    FixtureSource
	importer  match.Importer
	publisher Publisher
	validate  *validator.Validate
	logger    *logging.Logger
}

func NewMatchSyncService(source FixtureSource, importer match.Importer, publisher Publisher, validate *validator.Validate, logger *logging.Logger) *MatchSyncService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchSyncService{
		source:    source,
		importer:  importer,
		publisher: publisher,
		validate:  validate,
		logger:    logger,
	}
}

func (s *MatchSyncService) SyncFixtures(ctx context.Context, in SyncFixturesInput) (match.ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSyncService.SyncFixtures")
	defer span.End()

	if err := validateStruct(ctx, s.validate, in); err != nil {
		return match.ImportResult{}, err
	}
	if s.source == nil {
		return match.ImportResult{}, fmt.Errorf("%w: football data provider is disabled", ErrDependencyUnavailable)
	}

	res := s.source.Fixtures(ctx, in.LeagueID, in.Season)
	if !res.OK() {
		return match.ImportResult{}, fmt.Errorf("%w: fetch fixtures: %v", ErrDependencyUnavailable, res.Err)
	}

	var items []footballdata.FixtureItem
	if err := res.Decode(&items); err != nil {
		return match.ImportResult{}, fmt.Errorf("%w: decode fixtures: %v", ErrDependencyUnavailable, err)
	}
	if len(items) == 0 {
		s.logger.InfoContext(ctx, "no fixtures to sync", "league_external_id", in.LeagueID, "season", in.Season)
		return match.ImportResult{}, nil
	}

	lg, fixtures := toImport(in, items)
	result, err := s.importer.ImportFixtures(ctx, lg, fixtures)
	if err != nil {
		return match.ImportResult{}, fmt.Errorf("import fixtures: %w", err)
	}

	s.logger.InfoContext(ctx, "fixtures synced",
		"league_external_id", in.LeagueID,
		"season", in.Season,
		"league_id", result.LeagueID,
		"teams", result.Teams,
		"created", result.Created,
		"updated", result.Updated,
	)
	publish(ctx, s.publisher, s.logger, ChannelLive, EventFixturesSynced, result)
	return result, nil
}

func toImport(in SyncFixturesInput, items []footballdata.FixtureItem) (match.LeagueImport, []match.FixtureImport) {
	ref := items[0].League
	lg := match.LeagueImport{
		ExternalID: in.LeagueID,
		Name:       ref.Name,
		Country:    ref.Country,
		LogoURL:    ref.Logo,
		Season:     strconv.Itoa(in.Season),
	}

	fixtures := make([]match.FixtureImport, 0, len(items))
	for _, item := range items {
		fixtures = append(fixtures, match.FixtureImport{
			ExternalID: item.Fixture.ID,
			Home:       match.TeamImport{ExternalID: item.Teams.Home.ID, Name: item.Teams.Home.Name, LogoURL: item.Teams.Home.Logo},
			Away:       match.TeamImport{ExternalID: item.Teams.Away.ID, Name: item.Teams.Away.Name, LogoURL: item.Teams.Away.Logo},
			HomeScore:  item.Goals.Home,
			AwayScore:  item.Goals.Away,
			Status:     statusFromShort(item.Fixture.Status.Short),
			KickoffAt:  item.Fixture.Date.UTC(),
			Venue:      item.Fixture.Venue.Name,
			Round:      item.League.Round,
		})
	}
	return lg, fixtures
}

// statusFromShort folds the provider's short status codes onto match statuses.
func statusFromShort(short string) string {
	switch short {
	case "1H", "HT", "2H", "ET", "BT", "P", "LIVE", "INT", "SUSP":
		return match.StatusLive
	case "FT", "AET", "PEN":
		return match.StatusFinished
	case "PST", "CANC", "ABD", "AWD", "WO":
		return match.StatusPostponed
	default:
		return match.StatusScheduled
	}
}
