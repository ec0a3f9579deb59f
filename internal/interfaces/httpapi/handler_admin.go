package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/platform/record"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

// adminResource is the entity-agnostic face of a CRUDService. create and
// update decode the request into the service's typed input.
type adminResource interface {
	Entity() string
	List(ctx context.Context, q usecase.ListQuery) (record.Page[record.Record], error)
	Get(ctx context.Context, id int64) (record.Record, error)
	Delete(ctx context.Context, id int64) error
	create(w http.ResponseWriter, r *http.Request) (record.Record, error)
	update(w http.ResponseWriter, r *http.Request, id int64) (record.Record, error)
}

type crudResource[C usecase.Input, U usecase.Input] struct {
	*usecase.CRUDService[C, U]
}

func (c crudResource[C, U]) create(w http.ResponseWriter, r *http.Request) (record.Record, error) {
	var in C
	if err := decodeRecordJSON(w, r, &in); err != nil {
		return nil, err
	}
	return c.Create(r.Context(), in)
}

func (c crudResource[C, U]) update(w http.ResponseWriter, r *http.Request, id int64) (record.Record, error) {
	var in U
	if err := decodeRecordJSON(w, r, &in); err != nil {
		return nil, err
	}
	return c.Update(r.Context(), id, in)
}

type adminRoute struct {
	path     string
	roles    []string
	resource adminResource
}

func addAdminRoute[C usecase.Input, U usecase.Input](h *Handler, path string, roles []string, svc *usecase.CRUDService[C, U]) {
	if svc == nil {
		return
	}
	h.adminRoutes = append(h.adminRoutes, adminRoute{
		path:     path,
		roles:    roles,
		resource: crudResource[C, U]{CRUDService: svc},
	})
}

func (h *Handler) AdminList(res adminResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminList")
		defer span.End()

		page, perPage := pagingParams(r)
		result, err := res.List(ctx, usecase.ListQuery{
			Keyword: r.URL.Query().Get("q"),
			Page:    page,
			PerPage: perPage,
		})
		if err != nil {
			h.logger.ErrorContext(ctx, "admin list failed", "entity", res.Entity(), "error", err)
			writeError(ctx, w, err)
			return
		}

		writeSuccess(ctx, w, http.StatusOK, result)
	}
}

func (h *Handler) AdminGet(res adminResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminGet")
		defer span.End()

		id, err := pathID(r, "id")
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		item, err := res.Get(ctx, id)
		if err != nil {
			h.logger.WarnContext(ctx, "admin get failed", "entity", res.Entity(), "id", id, "error", err)
			writeError(ctx, w, err)
			return
		}

		writeSuccess(ctx, w, http.StatusOK, item)
	}
}

func (h *Handler) AdminCreate(res adminResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminCreate")
		defer span.End()

		item, err := res.create(w, r.WithContext(ctx))
		if err != nil {
			h.logger.WarnContext(ctx, "admin create failed", "entity", res.Entity(), "error", err)
			writeError(ctx, w, err)
			return
		}

		writeJSON(ctx, w, http.StatusCreated, envelope{Success: true, Data: item, Message: res.Entity() + " created"})
	}
}

func (h *Handler) AdminUpdate(res adminResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminUpdate")
		defer span.End()

		id, err := pathID(r, "id")
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		item, err := res.update(w, r.WithContext(ctx), id)
		if err != nil {
			h.logger.WarnContext(ctx, "admin update failed", "entity", res.Entity(), "id", id, "error", err)
			writeError(ctx, w, err)
			return
		}

		writeJSON(ctx, w, http.StatusOK, envelope{Success: true, Data: item, Message: res.Entity() + " updated"})
	}
}

func (h *Handler) AdminDelete(res adminResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminDelete")
		defer span.End()

		id, err := pathID(r, "id")
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		if err := res.Delete(ctx, id); err != nil {
			h.logger.WarnContext(ctx, "admin delete failed", "entity", res.Entity(), "id", id, "error", err)
			writeError(ctx, w, err)
			return
		}

		writeMessage(ctx, w, http.StatusOK, res.Entity()+" deleted")
	}
}

func (h *Handler) AddMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddMatchEvent")
	defer span.End()

	matchID, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var in match.EventInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(ctx, w, err)
		return
	}

	event, err := h.matchAdminService.AddEvent(ctx, matchID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "add match event failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, event)
}

func (h *Handler) ReplaceMatchLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceMatchLineup")
	defer span.End()

	matchID, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var in match.LineupInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(ctx, w, err)
		return
	}

	lineups, err := h.matchAdminService.ReplaceLineup(ctx, matchID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "replace match lineup failed", "match_id", matchID, "team_id", in.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineups)
}

func (h *Handler) SyncFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncFixtures")
	defer span.End()

	var in usecase.SyncFixturesInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchSyncService.SyncFixtures(ctx, in)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync fixtures failed", "league_id", in.LeagueID, "season", in.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) SweepCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SweepCache")
	defer span.End()

	report, err := h.maintenanceService.Sweep(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "cache sweep failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func adminRoutePath(route adminRoute) string {
	return "/api/admin/" + strings.Trim(route.path, "/")
}
