package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/football-portal/internal/domain/article"
	"github.com/riskibarqy/football-portal/internal/domain/category"
	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/domain/player"
	"github.com/riskibarqy/football-portal/internal/domain/team"
	"github.com/riskibarqy/football-portal/internal/domain/user"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/platform/record"
)

type (
	ArticleAdminService  = CRUDService[article.CreateInput, article.UpdateInput]
	CategoryAdminService = CRUDService[category.CreateInput, category.UpdateInput]
	LeagueAdminService   = CRUDService[league.CreateInput, league.UpdateInput]
	TeamAdminService     = CRUDService[team.CreateInput, team.UpdateInput]
	PlayerAdminService   = CRUDService[player.CreateInput, player.UpdateInput]
	UserAdminService     = CRUDService[user.CreateInput, user.UpdateInput]
)

// NavigationInvalidator drops cached navigation after category changes.
type NavigationInvalidator interface {
	InvalidateNavigation(ctx context.Context)
}

func NewArticleAdminService(repo article.Repository, publisher Publisher, validate *validator.Validate, logger *logging.Logger) *ArticleAdminService {
	svc := NewCRUDService[article.CreateInput, article.UpdateInput]("article", repo, validate, logger)
	svc.BeforeUpdate(stampPublishedAt(time.Now))
	svc.OnWrite(func(ctx context.Context, action string, before, after record.Record) {
		if after == nil || after.String("status") != article.StatusPublished {
			return
		}
		if before != nil && before.String("status") == article.StatusPublished {
			return
		}
		publish(ctx, publisher, svc.logger, ChannelArticles, EventArticlePublished, articleSummary(after))
	})
	return svc
}

// stampPublishedAt dates an article the first time it moves to published,
// unless the editor supplied a date.
func stampPublishedAt(now func() time.Time) PrepareUpdate {
	return func(_ context.Context, current, fields record.Record) {
		if status, _ := fields["status"].(string); status != article.StatusPublished {
			return
		}
		if _, explicit := fields["published_at"]; explicit || current["published_at"] != nil {
			return
		}
		fields["published_at"] = now().UTC().Truncate(time.Second)
	}
}

func articleSummary(rec record.Record) map[string]any {
	return map[string]any{
		"id":           rec["id"],
		"title":        rec["title"],
		"slug":         rec["slug"],
		"summary":      rec["summary"],
		"image_url":    rec["image_url"],
		"published_at": rec["published_at"],
	}
}

func NewCategoryAdminService(repo category.Repository, nav NavigationInvalidator, validate *validator.Validate, logger *logging.Logger) *CategoryAdminService {
	svc := NewCRUDService[category.CreateInput, category.UpdateInput]("category", repo, validate, logger)
	if nav != nil {
		svc.OnWrite(func(ctx context.Context, _ string, _, _ record.Record) {
			nav.InvalidateNavigation(ctx)
		})
	}
	return svc
}

func NewLeagueAdminService(repo league.Repository, validate *validator.Validate, logger *logging.Logger) *LeagueAdminService {
	return NewCRUDService[league.CreateInput, league.UpdateInput]("league", repo, validate, logger)
}

func NewTeamAdminService(repo team.Repository, validate *validator.Validate, logger *logging.Logger) *TeamAdminService {
	return NewCRUDService[team.CreateInput, team.UpdateInput]("team", repo, validate, logger)
}

func NewPlayerAdminService(repo player.Repository, validate *validator.Validate, logger *logging.Logger) *PlayerAdminService {
	return NewCRUDService[player.CreateInput, player.UpdateInput]("player", repo, validate, logger)
}

func NewUserAdminService(repo user.Repository, validate *validator.Validate, logger *logging.Logger) *UserAdminService {
	return NewCRUDService[user.CreateInput, user.UpdateInput]("user", repo, validate, logger)
}

// MatchAdminService adds match events and lineups to the generic admin
// surface and pushes every change to live subscribers.
type MatchAdminService struct {
	*CRUDService[match.CreateInput, match.UpdateInput]
	matches   match.Repository
	publisher Publisher
}

func NewMatchAdminService(repo match.Repository, publisher Publisher, validate *validator.Validate, logger *logging.Logger) *MatchAdminService {
	svc := &MatchAdminService{
		CRUDService: NewCRUDService[match.CreateInput, match.UpdateInput]("match", repo, validate, logger),
		matches:     repo,
		publisher:   publisher,
	}
	svc.OnWrite(func(ctx context.Context, action string, _, after record.Record) {
		if after == nil {
			return
		}
		svc.publishMatch(ctx, after.Int64("id"), EventMatchUpdated, map[string]any{"action": action, "match": after})
	})
	return svc
}

func (s *MatchAdminService) AddEvent(ctx context.Context, matchID int64, in match.EventInput) (match.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchAdminService.AddEvent")
	defer span.End()

	if err := validateStruct(ctx, s.validate, in); err != nil {
		return match.Event{}, err
	}
	if _, err := s.find(ctx, matchID); err != nil {
		return match.Event{}, err
	}

	event, err := s.matches.AddEvent(ctx, matchID, in)
	if err != nil {
		return match.Event{}, fmt.Errorf("add match event: %w", err)
	}
	s.publishMatch(ctx, matchID, EventMatchEvent, event)
	return event, nil
}

func (s *MatchAdminService) ReplaceLineup(ctx context.Context, matchID int64, in match.LineupInput) (match.Lineups, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchAdminService.ReplaceLineup")
	defer span.End()

	if err := validateStruct(ctx, s.validate, in); err != nil {
		return match.Lineups{}, err
	}
	current, err := s.find(ctx, matchID)
	if err != nil {
		return match.Lineups{}, err
	}
	if in.TeamID != current.Int64("home_team_id") && in.TeamID != current.Int64("away_team_id") {
		return match.Lineups{}, fmt.Errorf("%w: team %d does not play match %d", ErrInvalidInput, in.TeamID, matchID)
	}

	if err := s.matches.ReplaceLineup(ctx, matchID, in); err != nil {
		return match.Lineups{}, fmt.Errorf("replace lineup: %w", err)
	}
	entries, err := s.matches.Lineups(ctx, matchID)
	if err != nil {
		return match.Lineups{}, fmt.Errorf("list lineups: %w", err)
	}
	return splitLineups(current, entries), nil
}

func (s *MatchAdminService) publishMatch(ctx context.Context, matchID int64, event string, data any) {
	publish(ctx, s.publisher, s.logger, MatchChannel(matchID), event, data)
	publish(ctx, s.publisher, s.logger, ChannelLive, event, data)
}

func splitLineups(m record.Record, entries []match.LineupEntry) match.Lineups {
	out := match.Lineups{Home: []match.LineupEntry{}, Away: []match.LineupEntry{}}
	home := m.Int64("home_team_id")
	for _, entry := range entries {
		if entry.TeamID == home {
			out.Home = append(out.Home, entry)
		} else {
			out.Away = append(out.Away, entry)
		}
	}
	return out
}
