// Package api provides the JSON endpoints used by the browser views
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mpapenbr/skirace-standings-go/log"
	"github.com/mpapenbr/skirace-standings-go/pkg/loader"
	"github.com/mpapenbr/skirace-standings-go/pkg/model"
	"github.com/mpapenbr/skirace-standings-go/pkg/scoring"
	"github.com/mpapenbr/skirace-standings-go/pkg/telemetry"
	"github.com/mpapenbr/skirace-standings-go/pkg/utils/broadcast"
	"github.com/mpapenbr/skirace-standings-go/pkg/view"
)

// SeasonSource delivers the current season snapshot
type SeasonSource interface {
	Load(ctx context.Context) (*model.Season, error)
}

type (
	Option func(*Server)
	Server struct {
		source   SeasonSource
		engine   *scoring.Engine
		changes  broadcast.Hub[loader.Change]
		l        *log.Logger
		computed metric.Int64Counter
	}
)

var (
	errGenderRequired = errors.New("gender is required (M or F)")
	errClassRequired  = errors.New("class is required")
	errQueryRequired  = errors.New("q is required")
)

func WithSource(src SeasonSource) Option {
	return func(s *Server) {
		s.source = src
	}
}

func WithEngine(e *scoring.Engine) Option {
	return func(s *Server) {
		s.engine = e
	}
}

// WithChanges enables the change notification stream
func WithChanges(hub broadcast.Hub[loader.Change]) Option {
	return func(s *Server) {
		s.changes = hub
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.l = l
	}
}

func NewServer(opts ...Option) *Server {
	ret := &Server{
		engine: scoring.NewEngine(),
		l:      log.Default().Named("api"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	var err error
	ret.computed, err = otel.Meter(telemetry.MeterName).Int64Counter(
		"srs.standings.computed",
		metric.WithDescription("number of computed standings"))
	if err != nil {
		ret.l.Warn("could not create counter", log.ErrorField(err))
	}
	return ret
}

// Handler returns the router serving all endpoints
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/divisions", s.divisions)
		r.Get("/events", s.events)
		r.Get("/events/{date}/individual", s.individual)
		r.Get("/events/{date}/teams", s.teams)
		r.Get("/season", s.season)
		r.Get("/search", s.search)
		r.Get("/changes", s.changeStream)
	})
	return newCORS().Handler(r)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqLog := s.l.With(log.String("requestId", uuid.NewString()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(log.AddToContext(r.Context(), reqLog)))
		reqLog.Debug("request",
			log.String("method", r.Method),
			log.String("path", r.URL.Path),
			log.Int("status", ww.Status()),
			log.Duration("duration", time.Since(start)))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) divisions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, scoring.Divisions())
}

func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	season, ok := s.loadSeason(w, r)
	if !ok {
		return
	}
	ret := make([]EventSummary, 0, len(season.Events))
	for _, e := range season.Events {
		ret = append(ret, toEventSummary(e))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"name":   season.Name,
		"events": ret,
	})
}

func (s *Server) individual(w http.ResponseWriter, r *http.Request) {
	gender, ok := genderParam(w, r)
	if !ok {
		return
	}
	event, ok := s.loadEvent(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	page, err := intParam(q.Get("page"), 1)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid page", err)
		return
	}
	size, err := intParam(q.Get("pageSize"), view.DefaultPageSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid pageSize", err)
		return
	}

	results := s.engine.Individual(event.Racers(), gender, q.Get("class"))
	s.count(r.Context(), "individual", gender)
	rows := make([]IndividualRow, 0, len(results))
	for i := range results {
		rows = append(rows, toIndividualRow(&results[i]))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"event":   toEventSummary(event),
		"results": view.Paginate(rows, page, size),
	})
}

func (s *Server) teams(w http.ResponseWriter, r *http.Request) {
	gender, ok := genderParam(w, r)
	if !ok {
		return
	}
	class := strings.TrimSpace(r.URL.Query().Get("class"))
	if class == "" {
		respondError(w, http.StatusBadRequest, errClassRequired.Error(), errClassRequired)
		return
	}
	event, ok := s.loadEvent(w, r)
	if !ok {
		return
	}
	standings := s.engine.TeamStandings(event.Racers(), gender, class, 0)
	s.count(r.Context(), "teams", gender)
	rows := make([]TeamRow, 0, len(standings))
	for i := range standings {
		rows = append(rows, toTeamRow(&standings[i]))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"event": toEventSummary(event),
		"teams": rows,
	})
}

func (s *Server) season(w http.ResponseWriter, r *http.Request) {
	gender, ok := genderParam(w, r)
	if !ok {
		return
	}
	season, ok := s.loadSeason(w, r)
	if !ok {
		return
	}
	standings := s.engine.Season(season.Events, gender, r.URL.Query().Get("class"))
	s.count(r.Context(), "season", gender)
	respondJSON(w, http.StatusOK, standings)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respondError(w, http.StatusBadRequest, errQueryRequired.Error(), errQueryRequired)
		return
	}
	season, ok := s.loadSeason(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, view.SearchAthletes(season, q))
}

// changeStream sends a server-sent event for every changed race file
func (s *Server) changeStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if s.changes == nil || !ok {
		respondError(w, http.StatusNotImplemented, "change notifications are disabled", nil)
		return
	}
	ch := s.changes.Subscribe()
	defer s.changes.CancelSubscription(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	for {
		select {
		case <-r.Context().Done():
			return
		case c, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(c)
			if err != nil {
				log.GetFromContext(r.Context()).Warn("could not encode change",
					log.ErrorField(err))
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (s *Server) loadSeason(w http.ResponseWriter, r *http.Request) (*model.Season, bool) {
	season, err := s.source.Load(r.Context())
	if err != nil {
		log.GetFromContext(r.Context()).Error("could not load season", log.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "could not load season", err)
		return nil, false
	}
	return season, true
}

func (s *Server) loadEvent(w http.ResponseWriter, r *http.Request) (*model.Event, bool) {
	season, ok := s.loadSeason(w, r)
	if !ok {
		return nil, false
	}
	event, err := view.FindEvent(season, chi.URLParam(r, "date"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, view.ErrEventNotFound) {
			status = http.StatusNotFound
		}
		respondError(w, status, err.Error(), err)
		return nil, false
	}
	return event, true
}

func (s *Server) count(ctx context.Context, viewName string, gender model.Gender) {
	if s.computed == nil {
		return
	}
	s.computed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("view", viewName),
		attribute.String("gender", string(gender))))
}

func genderParam(w http.ResponseWriter, r *http.Request) (model.Gender, bool) {
	g := model.ParseGender(r.URL.Query().Get("gender"))
	if g == "" {
		respondError(w, http.StatusBadRequest, errGenderRequired.Error(), errGenderRequired)
		return "", false
	}
	return g, true
}

func intParam(s string, defaultVal int) (int, error) {
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn("could not encode response", log.ErrorField(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil && status >= http.StatusInternalServerError {
		message = message + ": " + err.Error()
	}
	respondJSON(w, status, map[string]string{"error": message})
}

func newCORS() *cors.Cors {
	// the views are served from anywhere, so CORS is effectively disabled
	return cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			"Accept",
			"Accept-Encoding",
			"Content-Encoding",
		},
		MaxAge: int(2 * time.Hour / time.Second),
	})
}
