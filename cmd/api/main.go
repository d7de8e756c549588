package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/moosemarche/moosebot/backend/internal/analysis/intent"
	"github.com/moosemarche/moosebot/backend/internal/config"
	"github.com/moosemarche/moosebot/backend/internal/handler"
	"github.com/moosemarche/moosebot/backend/internal/model/catalog"
	"github.com/moosemarche/moosebot/backend/internal/service/chat"
	"github.com/moosemarche/moosebot/backend/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "failed to load configuration")
	}

	if _, err := log.Init(log.Options{Level: cfg.Log.Level, File: cfg.Log.File}); err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "failed to initialise logger")
	}
	if envErr != nil {
		log.Warn(log.Fields{"error": envErr.Error()}, "no .env file loaded, using process environment only")
	}

	store, err := catalog.Load(cfg.Catalog.ConfigPath, cfg.Catalog.BrandPath)
	if err != nil {
		log.Fatal(log.Fields{
			"error":       err.Error(),
			"config_path": cfg.Catalog.ConfigPath,
			"brand_path":  cfg.Catalog.BrandPath,
		}, "CRITICAL ERROR: catalog data could not be loaded")
	}
	log.Info(log.Fields{
		"vendors":    len(store.Vendors()),
		"categories": len(store.Categories()),
	}, "catalog loaded")

	chatService := chat.NewService(intent.NewDispatcher(store))
	router := handler.NewRouter(store, chatService, cfg.Chat)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info(log.Fields{"addr": addr}, "Moosebot backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
