package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"dealdesk/app"
	"dealdesk/config"
	"dealdesk/db"
	"dealdesk/logger"
	"dealdesk/outbox"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sugar := logger.Init(cfg.Log.Level, cfg.Log.Format)
	defer sugar.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.InitDB(ctx, cfg.Postgres)
	if err != nil {
		sugar.Fatalf("failed to initialize database: %v", err)
	}
	defer db.CloseDB(conn)

	application, err := app.Initialize(ctx, cfg, conn, sugar)
	if err != nil {
		sugar.Fatalf("failed to initialize application: %v", err)
	}
	defer application.Close()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	addr := "0.0.0.0:" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           application.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sugar.Infof("Server starting on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if application.RetryHandlers != nil {
		outbox.NewServer(cfg.Redis, sugar).Run(gctx, g, application.RetryHandlers)
	}

	if err := g.Wait(); err != nil {
		sugar.Errorf("Server stopped with error: %v", err)
		return
	}
	sugar.Infof("Server stopped")
}
