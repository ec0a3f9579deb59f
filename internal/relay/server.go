package relay

import (
	"bytes"
	"context"
	"crypto/subtle"
	"fmt"
	"net"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/fasthttp/websocket"
	"github.com/riskibarqy/football-portal/internal/platform/id"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/valyala/fasthttp"
)

const maxPublishBody = 1 << 20

type ServerConfig struct {
	Addr           string
	PublishToken   string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	SendBuffer     int
}

// Server exposes the hub over HTTP: /ws for subscribers, /publish for the
// API process and /healthz.
type Server struct {
	hub      *Hub
	cfg      ServerConfig
	ids      id.Generator
	upgrader websocket.FastHTTPUpgrader
	srv      *fasthttp.Server
	logger   *logging.Logger
}

func NewServer(hub *Hub, cfg ServerConfig, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 15 * time.Second
	}

	s := &Server{
		hub:    hub,
		cfg:    cfg,
		ids:    id.NewUUIDGenerator(),
		logger: logger,
	}
	s.upgrader = websocket.FastHTTPUpgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	s.srv = &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "football-portal-relay",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/ws":
			s.handleWebSocket(ctx)
		case "/publish":
			s.handlePublish(ctx)
		case "/healthz":
			writeJSON(ctx, fasthttp.StatusOK, map[string]any{"success": true, "data": s.hub.Stats()})
		default:
			writeJSON(ctx, fasthttp.StatusNotFound, map[string]any{"success": false, "error": "route not found"})
		}
	}
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("relay listening", "addr", s.cfg.Addr)
	return s.srv.ListenAndServe(s.cfg.Addr)
}

func (s *Server) Serve(ln net.Listener) error {
	return s.srv.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.ShutdownWithContext(ctx)
}

func (s *Server) handleWebSocket(ctx *fasthttp.RequestCtx) {
	subscriberID, err := s.ids.NewID()
	if err != nil {
		writeJSON(ctx, fasthttp.StatusInternalServerError, map[string]any{"success": false, "error": "could not allocate subscriber"})
		return
	}

	err = s.upgrader.Upgrade(ctx, func(conn *websocket.Conn) {
		c := newClient(subscriberID, conn, s.hub, s.cfg.SendBuffer, s.logger)
		s.logger.Debug("subscriber connected", "subscriber_id", subscriberID)
		c.serve()
		s.logger.Debug("subscriber disconnected", "subscriber_id", subscriberID)
	})
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
	}
}

func (s *Server) handlePublish(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.Response.Header.Set("Allow", fasthttp.MethodPost)
		writeJSON(ctx, fasthttp.StatusMethodNotAllowed, map[string]any{"success": false, "error": "method not allowed"})
		return
	}
	if !s.authorized(ctx) {
		writeJSON(ctx, fasthttp.StatusUnauthorized, map[string]any{"success": false, "error": "invalid publish token"})
		return
	}

	body := ctx.PostBody()
	if len(body) > maxPublishBody {
		writeJSON(ctx, fasthttp.StatusRequestEntityTooLarge, map[string]any{"success": false, "error": "payload too large"})
		return
	}

	var msg Message
	if err := sonic.Unmarshal(body, &msg); err != nil {
		writeJSON(ctx, fasthttp.StatusBadRequest, map[string]any{"success": false, "error": fmt.Sprintf("invalid message: %v", err)})
		return
	}
	delivered, err := s.hub.Publish(msg)
	if err != nil {
		writeJSON(ctx, fasthttp.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{"success": true, "data": map[string]int{"delivered": delivered}})
}

// authorized checks the bearer token. An unset token disables publishing.
func (s *Server) authorized(ctx *fasthttp.RequestCtx) bool {
	expected := strings.TrimSpace(s.cfg.PublishToken)
	if expected == "" {
		return false
	}
	header := ctx.Request.Header.Peek(fasthttp.HeaderAuthorization)
	token, ok := bytes.CutPrefix(bytes.TrimSpace(header), []byte("Bearer "))
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare(bytes.TrimSpace(token), []byte(expected)) == 1
}

func (s *Server) checkOrigin(ctx *fasthttp.RequestCtx) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := string(ctx.Request.Header.Peek("Origin"))
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		allowed = strings.TrimSpace(allowed)
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, payload any) {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		status = fasthttp.StatusInternalServerError
		raw = []byte(`{"success":false,"error":"internal server error"}`)
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(raw)
}
