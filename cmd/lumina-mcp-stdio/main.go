package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/lumina/app"
	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/mcpsrv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout carries the protocol; logs go to stderr or the log file.
	cfg := mcpsrv.LoadConfig()
	if err := logging.Init(logging.Options{Path: cfg.LogFile, Writer: os.Stderr, Level: cfg.LogLevel, Prefix: "lumina-mcp-stdio"}); err != nil {
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

	// Admin tools need an API key, which stdio has no way to check.
	server := mcpsrv.NewServer(a.Session, "dev", &mcpsrv.ServerOptions{
		Generator:      a.Generator,
		EnableGenerate: cfg.EnableGenerate,
		Source:         a.Source,
	})

	go mcpsrv.RefreshCatalog(ctx, a.Source, a.Catalog, cfg.CacheClearInterval)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logging.Error("stdio mcp server failed", "error", err)
		os.Exit(1)
	}
}
