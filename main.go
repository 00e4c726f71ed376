package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/lumina/app"
	"github.com/qyinm/lumina/config"
	"github.com/qyinm/lumina/download"
	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/share"
	"github.com/qyinm/lumina/ui"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.Category, "category", cfg.Category, "open on a category or deep link, e.g. Space or #category=Space")
	flag.StringVar(&cfg.Language, "lang", cfg.Language, "interface language: en or pt")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path of the state database")
	flag.Parse()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	// stdout belongs to the renderer, so logs always go to a file.
	logPath := cfg.LogFile
	if logPath == "" {
		p, err := logging.DefaultPath()
		if err != nil {
			return err
		}
		logPath = p
	}
	if err := logging.Init(logging.Options{Path: logPath, Level: cfg.LogLevel}); err != nil {
		return err
	}
	defer logging.Close()

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	model := ui.NewModel(ui.Deps{
		Session:   a.Session,
		Generator: a.Generator,
		Sharer:    share.New(),
		Saver:     download.NewSaver(cfg.DownloadDir),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
