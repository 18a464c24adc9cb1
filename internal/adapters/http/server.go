// Package http exposes an assembled importer tree over a JSON debug API.
// It exists for inspection tooling only; the importer contract itself
// defines no wire format.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aryaman4/rasa/pkg/domain"
	"github.com/aryaman4/rasa/pkg/ports"
)

// Server serves the four importer operations as JSON.
type Server struct {
	importer ports.TrainingDataImporter
	logger   *slog.Logger
}

// NewHandler builds the HTTP handler for the given importer tree.
func NewHandler(importer ports.TrainingDataImporter, logger *slog.Logger) http.Handler {
	s := &Server{importer: importer, logger: logger}

	r := chi.NewRouter()
	r.Get("/domain", s.getDomain)
	r.Get("/stories", s.getStories)
	r.Get("/config", s.getConfig)
	r.Get("/nlu", s.getNLUData)
	return r
}

func (s *Server) getDomain(w http.ResponseWriter, r *http.Request) {
	d, err := s.importer.Domain(r.Context())
	if err != nil {
		s.fail(w, "loading domain", err)
		return
	}
	s.respond(w, d)
}

// stepView renders a story step with explicit event type tags, since the
// event variants would be indistinguishable as plain JSON objects.
type stepView struct {
	Name   string      `json:"name"`
	Events []eventView `json:"events"`
}

type eventView struct {
	Type  string       `json:"type"`
	Event domain.Event `json:"event"`
}

func (s *Server) getStories(w http.ResponseWriter, r *http.Request) {
	opts := ports.StoryOptions{}
	if raw := r.URL.Query().Get("use_e2e"); raw != "" {
		useE2E, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "invalid use_e2e parameter", http.StatusBadRequest)
			return
		}
		opts.UseE2E = useE2E
	}

	graph, err := s.importer.Stories(r.Context(), opts)
	if err != nil {
		s.fail(w, "loading stories", err)
		return
	}

	steps := make([]stepView, 0, len(graph.Steps))
	for _, step := range graph.Steps {
		view := stepView{Name: step.Name, Events: make([]eventView, 0, len(step.Events))}
		for _, event := range step.Events {
			view.Events = append(view.Events, eventView{Type: event.Type(), Event: event})
		}
		steps = append(steps, view)
	}
	s.respond(w, map[string]any{"steps": steps})
}

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	config, err := s.importer.Config(r.Context())
	if err != nil {
		s.fail(w, "loading config", err)
		return
	}
	s.respond(w, config)
}

func (s *Server) getNLUData(w http.ResponseWriter, r *http.Request) {
	data, err := s.importer.NLUData(r.Context(), r.URL.Query().Get("language"))
	if err != nil {
		s.fail(w, "loading NLU data", err)
		return
	}
	s.respond(w, data)
}

func (s *Server) respond(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	s.logger.Error(what, "err", err)
	http.Error(w, what+": "+err.Error(), http.StatusInternalServerError)
}
