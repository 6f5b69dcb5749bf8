package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/ishitzzz/playlist-forge/internal/engine"
)

// DB is the subset of pgxpool.Pool the service uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// Builder produces playlists from an ordered topic list.
type Builder interface {
	BuildFromTopics(ctx context.Context, subject string, topics []string, prefs engine.Preferences) (*engine.PlaylistResult, error)
}

// Extractor pulls a subject and topic list out of raw syllabus material.
type Extractor interface {
	ExtractText(ctx context.Context, text string) (string, []string, error)
	ExtractImage(ctx context.Context, data []byte, mimeType string) (string, []string, error)
}

type Server struct {
	db        DB
	builder   Builder
	extractor Extractor
	rdb       *redis.Client
}

// NewServer wires the HTTP surface. extractor may be nil, in which case
// syllabus uploads are rejected and callers must send explicit topics.
// rdb may be nil; build events are then simply not published.
func NewServer(db DB, builder Builder, extractor Extractor, rdb *redis.Client) *Server {
	return &Server{
		db:        db,
		builder:   builder,
		extractor: extractor,
		rdb:       rdb,
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)

	r.Post("/builds", s.handleCreateBuild)
	r.Get("/builds", s.handleListBuilds)
	r.Get("/builds/{id}", s.handleGetBuild)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "playlist-forge",
	})
}
