package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/mailer"
	"github.com/Zachkp/folio/internal/metrics"
	"github.com/Zachkp/folio/internal/portfolio"
	"github.com/Zachkp/folio/internal/section"
	"github.com/Zachkp/folio/internal/server"
	"github.com/Zachkp/folio/internal/store"
	"github.com/Zachkp/folio/internal/visitors"
	"github.com/Zachkp/folio/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "port to listen on (overrides config)")
	serveCmd.Flags().String("content", "", "content file (overrides config)")
	serveCmd.Flags().Bool("watch", false, "reload the content file when it changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}
	if content, _ := cmd.Flags().GetString("content"); content != "" {
		cfg.ContentFile = content
	}
	if w, _ := cmd.Flags().GetBool("watch"); w {
		cfg.WatchContent = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	content, err := portfolio.LoadFile(cfg.ContentFile)
	if err != nil {
		return err
	}

	registry, err := section.NewRegistry(section.Defaults()...)
	if err != nil {
		return err
	}
	theme, err := store.ParseTheme(cfg.Theme)
	if err != nil {
		return err
	}
	st := store.New(content,
		store.WithTheme(theme),
		store.WithActiveSection(registry.First().ID),
		store.WithLogger(log.Named("store")),
	)
	idle := time.Duration(cfg.ViewIdleMinutes) * time.Minute
	views := store.NewViews(registry.First().ID, theme, idle, log.Named("views"))
	tracker := section.NewTracker(registry, st, cfg.ScrollThreshold, log.Named("tracker"))

	db, err := visitors.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	vt, err := visitors.New(ctx, db, cfg.RetentionMonths, log.Named("visitors"))
	if err != nil {
		return err
	}

	if !cfg.SMTPConfigured() {
		log.Warn("SMTP credentials not configured, contact form messages will not be delivered")
	}
	mail := mailer.New(cfg.SMTP, cfg.SMTP.User, nil, log.Named("mailer"))

	srv, err := server.New(server.Deps{
		Config:   cfg,
		Store:    st,
		Views:    views,
		Tracker:  tracker,
		Visitors: vt,
		Mailer:   mail,
		Metrics:  metrics.NewCollector("folio"),
		Logger:   log,
	})
	if err != nil {
		return err
	}
	defer srv.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error { return cleanupLoop(ctx, vt, log) })
	g.Go(func() error { return pruneLoop(ctx, views, idle) })
	if cfg.WatchContent {
		w := watch.New(cfg.ContentFile, st, log.Named("watch"))
		g.Go(func() error { return w.Run(ctx) })
	}
	logStartup(log, cfg)
	return g.Wait()
}

// cleanupLoop purges visits past retention at startup and once a day.
func cleanupLoop(ctx context.Context, vt *visitors.Tracker, log *zap.Logger) error {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		if _, err := vt.Cleanup(ctx); err != nil && ctx.Err() == nil {
			log.Warn("visitor cleanup failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// pruneLoop drops readers' views once they have gone idle.
func pruneLoop(ctx context.Context, views *store.Views, idle time.Duration) error {
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			views.Prune()
		}
	}
}

func logStartup(log *zap.Logger, cfg *config.Config) {
	content := cfg.ContentFile
	if content == "" {
		content = "(built in)"
	}
	log.Info("folio starting",
		zap.String("port", cfg.Port),
		zap.String("mode", cfg.Mode),
		zap.String("content", content),
		zap.Bool("watch", cfg.WatchContent),
		zap.String("database", cfg.Database),
	)
}
