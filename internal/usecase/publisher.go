package usecase

import (
	"context"
	"strconv"

	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

const (
	ChannelLive     = "live"
	ChannelArticles = "articles"

	EventMatchUpdated     = "match.updated"
	EventMatchEvent       = "match.event"
	EventArticlePublished = "article.published"
	EventFixturesSynced   = "fixtures.synced"
)

// Publisher pushes a live update to relay subscribers of channel.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, data any) error
}

func MatchChannel(matchID int64) string {
	return "match:" + strconv.FormatInt(matchID, 10)
}

// publish never fails the caller; a lost live update only delays the
// subscriber until the next one.
func publish(ctx context.Context, p Publisher, logger *logging.Logger, channel, event string, data any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, channel, event, data); err != nil {
		logger.WarnContext(ctx, "publish live update failed", "channel", channel, "event", event, "error", err)
	}
}
