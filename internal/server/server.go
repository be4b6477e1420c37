// Package server is the HTTP edge of the portfolio. It renders pages from
// the store, feeds scroll reports to the section tracker and serves the
// admin dashboard.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/logging"
	"github.com/Zachkp/folio/internal/mailer"
	"github.com/Zachkp/folio/internal/metrics"
	"github.com/Zachkp/folio/internal/section"
	"github.com/Zachkp/folio/internal/store"
	"github.com/Zachkp/folio/internal/visitors"
)

// Mailer delivers contact-form messages.
type Mailer interface {
	Send(mailer.Message) error
}

// Deps are the collaborators a Server is built from. Store and Tracker are
// required; Visitors, Mailer and Metrics may be nil. Without Views each
// reader's view state starts from the Store's own.
type Deps struct {
	Config   *config.Config
	Store    *store.Store
	Views    *store.Views
	Tracker  *section.Tracker
	Visitors *visitors.Tracker
	Mailer   Mailer
	Metrics  *metrics.Collector
	Logger   *zap.Logger
}

// Server owns the gin engine and everything it serves.
type Server struct {
	cfg      *config.Config
	store    *store.Store
	views    *store.Views
	viewIdle time.Duration
	tracker  *section.Tracker
	registry *section.Registry
	visitors *visitors.Tracker
	mailer   Mailer
	metrics  *metrics.Collector
	log      *zap.Logger

	engine   *gin.Engine
	events   *broker
	sessions *sessions
	cancels  []func()
}

// New wires the routes.
func New(d Deps) (*Server, error) {
	if d.Store == nil || d.Tracker == nil {
		return nil, errors.New("server: store and tracker are required")
	}
	if d.Config == nil {
		d.Config = config.DefaultConfig()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	key, err := visitors.RandomToken()
	if err != nil {
		return nil, fmt.Errorf("generating session key: %w", err)
	}

	s := &Server{
		cfg:      d.Config,
		store:    d.Store,
		views:    d.Views,
		viewIdle: time.Duration(d.Config.ViewIdleMinutes) * time.Minute,
		tracker:  d.Tracker,
		registry: d.Tracker.Registry(),
		visitors: d.Visitors,
		mailer:   d.Mailer,
		metrics:  d.Metrics,
		log:      d.Logger,
		events:   newBroker(),
		sessions: &sessions{key: []byte(key), now: time.Now},
	}

	if s.viewIdle <= 0 {
		s.viewIdle = store.DefaultViewIdle
	}
	if s.views == nil {
		active := s.store.ActiveSection()
		if active == store.NoSection {
			active = s.registry.First().ID
		}
		s.views = store.NewViews(active, s.store.Theme(), s.viewIdle, s.log)
	}

	tmpl, err := loadTemplates(s.registry.Sections())
	if err != nil {
		return nil, err
	}

	s.cancels = append(s.cancels,
		s.store.Subscribe(s.events.publishShared),
		s.views.Subscribe(s.events.publish),
	)
	if s.metrics != nil {
		s.cancels = append(s.cancels, s.metrics.Observe(s.store), s.metrics.Observe(s.views))
	}
	if s.visitors != nil {
		s.cancels = append(s.cancels, s.views.Subscribe(s.recordSection))
	}

	gin.SetMode(d.Config.Mode)
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(s.log))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware())
	}
	if s.visitors != nil {
		r.Use(s.visitors.Middleware())
	}
	r.SetHTMLTemplate(tmpl)

	s.serveStatic(r, "/images", d.Config.Static.Images)
	s.serveStatic(r, "/static", d.Config.Static.Assets)

	s.setupPublicRoutes(r)
	s.setupAdminRoutes(r)

	s.engine = r
	return s, nil
}

// Handler returns the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Close detaches the server's store listeners.
func (s *Server) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

// Run serves on the configured port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		// request contexts end with ctx so open event streams let go
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listening on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}

func (s *Server) serveStatic(r *gin.Engine, prefix, dir string) {
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); err != nil {
		s.log.Debug("static directory not found, skipping", zap.String("dir", dir))
		return
	}
	r.Static(prefix, dir)
}

func (s *Server) recordSection(ch store.Change) {
	if ch.Kind != store.ChangeSection || ch.Section == store.NoSection {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.visitors.RecordSection(ctx, ch.Section); err != nil {
			s.log.Warn("error recording section view", zap.Error(err))
		}
	}()
}
