package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/voltmate/voltmate/internal/buildinfo"
	"github.com/voltmate/voltmate/internal/client/api"
	"github.com/voltmate/voltmate/internal/client/bus"
	"github.com/voltmate/voltmate/internal/client/cli"
	"github.com/voltmate/voltmate/internal/client/config"
	"github.com/voltmate/voltmate/internal/client/session"
	"github.com/voltmate/voltmate/internal/client/storage"
	"github.com/voltmate/voltmate/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	if err := run(cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigs
		cancel()
	}()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()

	creds, err := storage.NewCredentials(ctx, storage.NewSQLiteRepository(db))
	if err != nil {
		return fmt.Errorf("initializing credential store: %w", err)
	}

	events := bus.New()

	client := api.NewHTTPClient(api.Options{
		BaseURL:           cfg.ServerBaseURL,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		Events:            events,
		Log:               logger,
	})
	defer client.Close()

	manager := session.NewManager(session.Options{
		API:         client,
		Credentials: creds,
		Events:      events,
		Log:         logger,
		Scheduler:   session.NewScheduler(),
		Notifier: session.NotifierFunc(func(_ context.Context, message string) {
			fmt.Fprintln(os.Stdout, "\n!", message)
		}),
		RenewalLead: cfg.RenewalLead,
		NoticeDelay: cfg.NoticeDelay,
	})
	defer manager.Close()

	client.SetTokens(manager)

	if manager.Restore(ctx) == session.StateAuthenticated {
		if u := manager.Snapshot().User; u != nil {
			fmt.Fprintf(os.Stdout, "Restored session for %s\n", u.Email)
		}
	}

	app := cli.NewApp(cfg, manager, client)
	app.Run(ctx)
	return nil
}
