package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/lumina/download"
	"github.com/qyinm/lumina/gallery"
	"github.com/qyinm/lumina/share"
	"github.com/qyinm/lumina/types"
)

const generateTimeout = 3 * time.Minute

// Message types for async operations

type growthMsg struct {
	ticket gallery.Ticket
}

type generatedMsg struct {
	item types.Wallpaper
	err  error
}

type sharedMsg struct {
	outcome share.Outcome
	err     error
}

type downloadedMsg struct {
	path string
	err  error
}

type toastExpiredMsg struct {
	id int
}

// growAfter completes a growth cycle once the loading delay has passed
func growAfter(delay time.Duration, ticket gallery.Ticket) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return growthMsg{ticket: ticket}
	})
}

// generateWallpaper runs a generation request asynchronously
func generateWallpaper(gen *gallery.Generator, in gallery.GenerateInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		item, err := gen.Generate(ctx, in)
		return generatedMsg{item: item, err: err}
	}
}

// shareWallpaper hands the payload to the share service
func shareWallpaper(svc *share.Service, p share.Payload) tea.Cmd {
	return func() tea.Msg {
		outcome, err := svc.Share(context.Background(), p)
		return sharedMsg{outcome: outcome, err: err}
	}
}

// downloadWallpaper writes the wallpaper image to disk
func downloadWallpaper(saver *download.Saver, w types.Wallpaper) tea.Cmd {
	return func() tea.Msg {
		path, err := saver.Save(context.Background(), w)
		return downloadedMsg{path: path, err: err}
	}
}

// expireToast dismisses toast id after share.ToastDuration
func expireToast(id int) tea.Cmd {
	return tea.Tick(share.ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
