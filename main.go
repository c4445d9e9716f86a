package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/milanbella/sa-oauthdb/cache"
	"github.com/milanbella/sa-oauthdb/clients"
	"github.com/milanbella/sa-oauthdb/codec"
	"github.com/milanbella/sa-oauthdb/config"
	"github.com/milanbella/sa-oauthdb/db"
	"github.com/milanbella/sa-oauthdb/legacy"
	"github.com/milanbella/sa-oauthdb/logger"
	"github.com/milanbella/sa-oauthdb/session"
	"github.com/milanbella/sa-oauthdb/tokens"
)

var (
	_ tokens.CacheStore     = (*cache.Store)(nil)
	_ tokens.LegacyStore    = (*legacy.MySQLStore)(nil)
	_ tokens.ClientRegistry = (*clients.Registry)(nil)
	_ tokens.Reconciler     = (*clients.Registry)(nil)
	_ session.Store         = (*cache.Store)(nil)
)

var (
	rootCmd = &cobra.Command{
		Use:           "oauthdb",
		Short:         "OAuth token store backed by Redis with a legacy MySQL fallback",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Connect the token stores and serve health checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	clientsCmd = &cobra.Command{
		Use:   "clients",
		Short: "Manage registered OAuth clients",
	}

	reconcileCmd = &cobra.Command{
		Use:   "reconcile [file]",
		Short: "Register or update the clients listed in a YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return reconcile(cmd.Context(), path)
		},
	}
)

func init() {
	clientsCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(serveCmd, clientsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		_ = logger.Close()
		os.Exit(1)
	}
	_ = logger.Close()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := logger.Configure(logger.Config{
		Environment: cfg.Log.Environment,
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
	}); err != nil {
		return nil, fmt.Errorf("configure logger: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var defs []clients.Definition
	if cfg.Clients.File != "" {
		if defs, err = clients.LoadFile(cfg.Clients.File); err != nil {
			return err
		}
	}

	sqlDB, err := db.New(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer closeDB(sqlDB)

	redisStore := cache.New(ctx, cfg.Redis)
	defer func() {
		if err := redisStore.Close(); err != nil {
			logger.LogErr(fmt.Errorf("close redis: %w", err))
		}
	}()

	hasher, err := codec.NewHasher(cfg.Token.HashKey)
	if err != nil {
		return err
	}

	legacyStore := legacy.NewMySQLStore(sqlDB, cfg.Database.QueryTimeout)
	registry := clients.NewRegistry(sqlDB, cfg.Database.QueryTimeout)

	svc, err := tokens.New(redisStore, legacyStore, registry, tokens.Options{
		MaxTTL:            cfg.Token.MaxTTL,
		Hasher:            hasher,
		ClientWaitTimeout: cfg.Clients.WaitTimeout,
		ClientRetryMax:    cfg.Clients.RetryMax,
		Reconciler:        registry,
		Definitions:       defs,
		AutoUpdate:        cfg.Clients.AutoUpdate,
	})
	if err != nil {
		return err
	}

	if err := svc.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize token store: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newRouter(redisStore, legacyStore),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func reconcile(ctx context.Context, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if path == "" {
		path = cfg.Clients.File
	}
	if path == "" {
		return errors.New("no clients file given and CLIENTS_FILE is not set")
	}

	defs, err := clients.LoadFile(path)
	if err != nil {
		return err
	}

	sqlDB, err := db.New(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer closeDB(sqlDB)

	registry := clients.NewRegistry(sqlDB, cfg.Database.QueryTimeout)
	if err := registry.Reconcile(ctx, defs, true); err != nil {
		return err
	}

	logger.Info("reconciled %d clients from %s", len(defs), path)
	return nil
}

func closeDB(sqlDB *sql.DB) {
	if err := sqlDB.Close(); err != nil {
		logger.LogErr(fmt.Errorf("close db: %w", err))
	}
}

type healthChecker interface {
	Health(ctx context.Context) error
}

func newRouter(backends ...healthChecker) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/__lbheartbeat__", getLBHeartbeatHandler)
	mux.HandleFunc("/__heartbeat__", heartbeatHandler(backends...))

	return mux
}

func getLBHeartbeatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte("{}"))
}

func heartbeatHandler(backends ...healthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		for _, b := range backends {
			if err := b.Health(r.Context()); err != nil {
				logger.Error(err)
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	}
}
