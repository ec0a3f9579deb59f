package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/football-portal/internal/domain/user"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/usecase"
)

const maxRequestBody = 1 << 20

// AdminServices are the per-entity admin services exposed under /api/admin.
type AdminServices struct {
	Articles   *usecase.ArticleAdminService
	Categories *usecase.CategoryAdminService
	Leagues    *usecase.LeagueAdminService
	Teams      *usecase.TeamAdminService
	Players    *usecase.PlayerAdminService
	Matches    *usecase.MatchAdminService
	Users      *usecase.UserAdminService
}

type Handler struct {
	publicService      *usecase.PublicService
	authService        *usecase.AuthService
	matchAdminService  *usecase.MatchAdminService
	matchSyncService   *usecase.MatchSyncService
	maintenanceService *usecase.CacheMaintenanceService
	adminRoutes        []adminRoute
	logger             *logging.Logger
}

func NewHandler(
	publicService *usecase.PublicService,
	authService *usecase.AuthService,
	admin AdminServices,
	matchSyncService *usecase.MatchSyncService,
	maintenanceService *usecase.CacheMaintenanceService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	h := &Handler{
		publicService:      publicService,
		authService:        authService,
		matchAdminService:  admin.Matches,
		matchSyncService:   matchSyncService,
		maintenanceService: maintenanceService,
		logger:             logger.Named("httpapi"),
	}

	editors := []string{user.RoleAdmin, user.RoleEditor}
	addAdminRoute(h, "articles", editors, admin.Articles)
	addAdminRoute(h, "categories", editors, admin.Categories)
	addAdminRoute(h, "leagues", editors, admin.Leagues)
	addAdminRoute(h, "teams", editors, admin.Teams)
	addAdminRoute(h, "players", editors, admin.Players)
	if admin.Matches != nil {
		addAdminRoute(h, "matches", editors, admin.Matches.CRUDService)
	}
	addAdminRoute(h, "users", []string{user.RoleAdmin}, admin.Users)
	return h
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	return decodeBody(w, r, out, true)
}

// decodeRecordJSON tolerates fields the input type does not declare. They
// never reach the store because only declared fields are projected.
func decodeRecordJSON(w http.ResponseWriter, r *http.Request, out any) error {
	return decodeBody(w, r, out, false)
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any, strict bool) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	decoder := jsoniter.NewDecoder(body)
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(out); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: request body is empty", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return id, nil
}

// pagingParams reads page and per_page; bad or missing values fall back to
// the record model's defaults.
func pagingParams(r *http.Request) (page, perPage int) {
	query := r.URL.Query()
	page, _ = strconv.Atoi(strings.TrimSpace(query.Get("page")))
	perPage, _ = strconv.Atoi(strings.TrimSpace(query.Get("per_page")))
	return page, perPage
}
