package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/qyinm/lumina/app"
	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/mcpsrv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := mcpsrv.LoadConfig()
	if err := logging.Init(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel, Prefix: "lumina-mcp"}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()

	a, err := app.New(ctx, cfg.Config)
	if err != nil {
		logging.Error("Startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	server := mcpsrv.NewServer(a.Session, "dev", &mcpsrv.ServerOptions{
		Generator:      a.Generator,
		EnableGenerate: cfg.EnableGenerate,
		Source:         a.Source,
		EnableAdmin:    cfg.EnableAdmin && cfg.AuthKey != "",
		APIKey:         cfg.AuthKey,
	})

	go mcpsrv.RefreshCatalog(ctx, a.Source, a.Catalog, cfg.CacheClearInterval)

	httpServer := &http.Server{
		Addr:              ":" + strings.TrimSpace(cfg.Port),
		Handler:           mcpsrv.NewMux(server, cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Shutdown failed", "error", err)
		}
	}()

	logging.Info("lumina-mcp listening", "addr", httpServer.Addr)
	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
