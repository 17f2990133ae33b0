// Package api exposes world generation over HTTP: a chi router fronting
// the same generate.Generator the CLI drives, backed by a shared
// cache.Cache and store.Store so runs survive across requests.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/worldseedr/worldseedr/pkg/cache"
	"github.com/worldseedr/worldseedr/pkg/generate"
	"github.com/worldseedr/worldseedr/pkg/geometry"
	"github.com/worldseedr/worldseedr/pkg/rng"
	"github.com/worldseedr/worldseedr/pkg/schema"
	"github.com/worldseedr/worldseedr/pkg/store"
)

// Server holds the collaborators every handler needs.
type Server struct {
	Cache  cache.Cache
	Store  store.Store
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewServer builds a Server. A nil Logger falls back to the package
// default.
func NewServer(ck cache.Cache, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Cache: ck, Store: st, Keyer: cache.NewDefaultKeyer(), Logger: logger}
}

// Router builds the chi mux: request logging and panic recovery around
// the two generation endpoints.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Get("/runs/{id}", s.handleGetRun)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.Logger.Infof("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

// generateRequest is the POST /v1/generate body.
type generateRequest struct {
	Library    schema.Library `json:"library"`
	StartTitle string         `json:"start_title"`
	Seed       uint64         `json:"seed"`
	Direction  string         `json:"direction"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
}

type placementDTO struct {
	Title    string            `json:"title"`
	Position geometry.Position `json:"position"`
}

type generateResponse struct {
	RunID      uuid.UUID      `json:"run_id"`
	Placements []placementDTO `json:"placements"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}
	if req.StartTitle == "" {
		writeError(w, http.StatusBadRequest, "start_title is required")
		return
	}
	if issues := req.Library.Validate(); len(issues) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "library has validation issues")
		return
	}
	if req.Width == 0 {
		req.Width = 800
	}
	if req.Height == 0 {
		req.Height = 600
	}
	dir := geometry.Direction(req.Direction)
	if dir == "" {
		dir = geometry.Right
	}

	raw, err := json.Marshal(req.Library)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash library: "+err.Error())
		return
	}
	key := s.Keyer.RunKey(cache.Hash(raw), req.StartTitle, req.Seed)

	ctx := r.Context()
	start := time.Now()
	if cached, ok, err := s.Cache.Get(ctx, key); err == nil && ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		w.Write(cached)
		return
	}

	var placements []placementDTO
	gen := generate.NewGenerator(generate.Config{
		Library: req.Library,
		Random:  rng.New(req.Seed),
		OnPlacement: func(commands []generate.Choice) {
			for _, c := range commands {
				placements = append(placements, placementDTO{Title: c.Title, Position: c.Position})
			}
		},
	})

	host := geometry.Position{Top: req.Height, Right: req.Width, Bottom: 0, Left: 0}
	if err := gen.GenerateFull(generate.Command{Title: req.StartTitle, Position: host, Direction: dir}); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "generate: "+err.Error())
		return
	}
	gen.RunGeneratedCommands()

	run := store.NewRun(cache.Hash(raw), req.StartTitle, req.Seed, len(placements), time.Since(start))
	if err := s.Store.Set(ctx, run); err != nil {
		s.Logger.Warnf("store run: %v", err)
	}

	resp := generateResponse{RunID: run.ID, Placements: placements}
	encoded, err := json.Marshal(resp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode response: "+err.Error())
		return
	}
	if err := s.Cache.Set(ctx, key, encoded, time.Hour); err != nil {
		s.Logger.Warnf("cache write: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	w.Write(encoded)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	run, err := s.Store.Get(r.Context(), id)
	if err == store.ErrNotFound {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
