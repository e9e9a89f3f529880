package web

import (
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/gorilla/websocket"
    "go.uber.org/zap"

    "github.com/willvelida/tic-tac-toe/internal/ai"
    "github.com/willvelida/tic-tac-toe/internal/app"
)

// Config tunes the HTTP surface.
type Config struct {
    // DefaultTier is used when a request names no difficulty.
    DefaultTier ai.Tier
    // MoveTimeout bounds a single AI turn, thinking pause included.
    MoveTimeout time.Duration
}

// NewServer wires routes and returns an http.Handler.
func NewServer(s *app.Service, log *zap.Logger, cfg Config) http.Handler {
    if log == nil {
        log = zap.NewNop()
    }
    if cfg.MoveTimeout <= 0 {
        cfg.MoveTimeout = 30 * time.Second
    }
    h := &handlers{
        svc: s,
        tpl: loadTemplates(),
        log: log,
        cfg: cfg,
        upgrader: websocket.Upgrader{
            ReadBufferSize:  1024,
            WriteBufferSize: 1024,
        },
    }
    s.SetRenderer(func(gs app.GameState) []byte { return h.renderBoard(gs, "") })

    r := chi.NewRouter()
    r.Use(middleware.RequestID)
    r.Use(middleware.Recoverer)
    r.Use(requestLogger(log))

    r.Get("/", h.index)
    r.Post("/game", h.create)
    r.Route("/game/{id}", func(r chi.Router) {
        r.Get("/", h.view)
        r.Post("/play", h.play)
        r.Post("/reset", h.reset)
        r.Get("/events", h.events)
        r.Get("/stats", h.stats)
        r.Get("/ws", h.ws)
    })
    r.Post("/api/move", h.apiMove)
    return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
            start := time.Now()
            next.ServeHTTP(ww, r)
            log.Debug("request",
                zap.String("request_id", middleware.GetReqID(r.Context())),
                zap.String("method", r.Method),
                zap.String("path", r.URL.Path),
                zap.Int("status", ww.Status()),
                zap.Duration("elapsed", time.Since(start)))
        })
    }
}
