package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/model/config"
	"github.com/secmon-lab/gridcell/pkg/domain/model/typeoption"
	"github.com/secmon-lab/gridcell/pkg/utils/logging"
)

// GridUseCase is the grid operations the HTTP API exposes
type GridUseCase interface {
	GetCell(ctx context.Context, rowID, fieldID string) (*typeoption.DecodedCell, error)
	UpdateCell(ctx context.Context, rowID, fieldID, changeset string) (*model.Cell, error)
	PutFilter(ctx context.Context, rev *model.FilterRevision) (*model.FilterRevision, error)
	GetFilter(ctx context.Context, id model.FilterID) (*model.FilterRevision, error)
	ListFilters(ctx context.Context) ([]*model.FilterRevision, error)
	DeleteFilter(ctx context.Context, id model.FilterID) error
	FilterRows(ctx context.Context, rowIDs []string) ([]string, error)
}

type Server struct {
	router        *chi.Mux
	schema        *config.FieldSchema
	enableMetrics bool
}

type Options func(*Server)

func WithSchema(schema *config.FieldSchema) Options {
	return func(s *Server) {
		s.schema = schema
	}
}

func WithMetrics(enabled bool) Options {
	return func(s *Server) {
		s.enableMetrics = enabled
	}
}

func New(grid GridUseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:        r,
		enableMetrics: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	if s.enableMetrics {
		r.Use(metricsMiddleware)
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/fields", fieldsHandler(s.schema))

		r.Route("/rows", func(r chi.Router) {
			r.Post("/filter", filterRowsHandler(grid))
			r.Get("/{rowID}/cells/{fieldID}", getCellHandler(grid))
			r.Put("/{rowID}/cells/{fieldID}", updateCellHandler(grid))
		})

		r.Route("/filters", func(r chi.Router) {
			r.Get("/", listFiltersHandler(grid))
			r.Get("/{filterID}", getFilterHandler(grid))
			r.Put("/{filterID}", putFilterHandler(grid))
			r.Delete("/{filterID}", deleteFilterHandler(grid))
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger attaches a logger carrying the request ID to the request context
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(logging.With(r.Context(), logger)))
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
