package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-portal/internal/platform/record"
)

type categoryArticlesDTO struct {
	Category record.Record              `json:"category"`
	Articles record.Page[record.Record] `json:"articles"`
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Home")
	defer span.End()

	page, err := h.publicService.Home(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "build home page failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, page)
}

func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListArticles")
	defer span.End()

	page, perPage := pagingParams(r)
	result, err := h.publicService.Articles(ctx, page, perPage)
	if err != nil {
		h.logger.ErrorContext(ctx, "list articles failed", "page", page, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetArticle")
	defer span.End()

	slug := r.PathValue("slug")
	item, err := h.publicService.Article(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "get article failed", "slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategories")
	defer span.End()

	items, err := h.publicService.Categories(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list categories failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListCategoryArticles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategoryArticles")
	defer span.End()

	slug := r.PathValue("slug")
	page, perPage := pagingParams(r)
	category, articles, err := h.publicService.CategoryArticles(ctx, slug, page, perPage)
	if err != nil {
		h.logger.WarnContext(ctx, "list category articles failed", "slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, categoryArticlesDTO{Category: category, Articles: articles})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	items, err := h.publicService.Leagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	page, err := h.publicService.League(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, page)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	centre, err := h.publicService.Match(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, centre)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	page, err := h.publicService.Team(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, page)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	item, err := h.publicService.Player(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Live")
	defer span.End()

	page, err := h.publicService.Live(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get live matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, page)
}
