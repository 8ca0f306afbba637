package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"glampd/internal/catalog"
	"glampd/internal/config"
	"glampd/internal/httpapi"
	"glampd/internal/identity/local"
	"glampd/internal/profile"
	"glampd/internal/session"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "glampd",
		Short:         "Accommodation discovery and booking-funnel service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var cfgPath string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, cfgPath)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}
	serve.Flags().StringVar(&cfgPath, "config", "", "Path to config file (.yaml|.json|.toml)")
	serve.Flags().String("addr", "", "HTTP listen address, e.g. :8080")
	serve.Flags().String("datasets-dir", "", "Directory to scan for *.yaml listing datasets")
	serve.Flags().String("db-path", "", "Path to the sqlite database file")
	serve.Flags().String("log-level", "", "Log level: debug|info|warn|error")
	serve.Flags().Int("grid-seed", 0, "Initial number of visible grid cards")
	serve.Flags().Int("grid-step", 0, "Cards revealed per sentinel intersection")
	serve.Flags().String("admin-emails", "", "Comma-separated admin email allow-list")
	root.AddCommand(serve)

	return root
}

// loadConfig layers file, environment, then flags, and fills defaults.
func loadConfig(cmd *cobra.Command, cfgPath string) (config.Config, error) {
	var cfg config.Config
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Addr = v
	}
	if v, _ := cmd.Flags().GetString("datasets-dir"); v != "" {
		cfg.DatasetsDir = v
	}
	if v, _ := cmd.Flags().GetString("db-path"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetInt("grid-seed"); v != 0 {
		cfg.GridSeed = v
	}
	if v, _ := cmd.Flags().GetInt("grid-step"); v != 0 {
		cfg.GridStep = v
	}
	if v, _ := cmd.Flags().GetString("admin-emails"); v != "" {
		cfg.AdminEmails = v
	}
	config.ApplyDefaults(&cfg)
	if err := config.ValidateIdentity(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(cfg config.Config) error {
	log := newLogger(cfg.LogLevel)
	httpapi.SetLogger(log)
	if cfg.CORSEnabled {
		httpapi.SetCORSOptions(true, config.CORSOriginList(cfg),
			[]string{"GET", "POST", "PATCH", "OPTIONS"},
			[]string{"Accept", "Content-Type", "Authorization"})
	}

	src := catalog.NewSource()
	if cfg.DatasetsDir != "" {
		if err := catalog.LoadDir(src, cfg.DatasetsDir); err != nil {
			return fmt.Errorf("load datasets: %w", err)
		}
	}

	provider, err := local.Open(cfg.DBPath, config.TokenTTL(cfg), log)
	if err != nil {
		return fmt.Errorf("open identity store: %w", err)
	}
	defer provider.Close()

	store, err := profile.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open profile store: %w", err)
	}
	defer store.Close()

	adapter := session.New(provider, store, session.Options{
		AdminEmails: config.AdminEmailList(cfg),
		Log:         log,
	})
	defer adapter.Close()

	server := httpapi.NewServer(src, adapter, cfg.GridSeed, cfg.GridStep)
	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(server)}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("datasets_dir", cfg.DatasetsDir).Msg("glampd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
