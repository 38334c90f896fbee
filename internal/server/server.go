package server

import (
	"context"
	"net/http"
	"time"

	"kbarticle/enhancer/internal/config"
	"kbarticle/enhancer/internal/domain"
	"kbarticle/enhancer/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// ArticleService is what the HTTP handlers need from the service layer
type ArticleService interface {
	EnhancePage(ctx context.Context, html string, opts service.EnhanceOptions) (*service.EnhancedPage, error)
	RenderNavTags(ctx context.Context, locale, articleID, publishedDate string, settings domain.NavTagSettings) (string, error)
	Rate(ctx context.Context, req service.RatingRequest) (domain.RatingOutcome, error)
}

type Server struct {
	cfg        config.ServerConfig
	svc        ArticleService
	gatherer   prometheus.Gatherer
	router     chi.Router
	httpServer *http.Server
}

func New(cfg config.ServerConfig, svc ArticleService, gatherer prometheus.Gatherer) *Server {
	s := &Server{
		cfg:      cfg,
		svc:      svc,
		gatherer: gatherer,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/navtags/{locale}/{articleID}", s.handleNavTags)
		r.Post("/enhance", s.handleEnhance)
		r.Post("/rating", s.handleRating)
		r.Post("/question", s.handleQuestion)
	})

	return r
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is done and then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Infof("🌐 Listening on %s", s.httpServer.Addr)
		errs <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		log.Info("🛑 Shutting down HTTP server...")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
