package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/lumina/download"
	"github.com/qyinm/lumina/gallery"
	"github.com/qyinm/lumina/i18n"
	"github.com/qyinm/lumina/logging"
	"github.com/qyinm/lumina/share"
	"github.com/qyinm/lumina/types"
)

// ViewState represents the current view mode
type ViewState int

const (
	ListView ViewState = iota
	PreviewView
	StudioView
	KeyView
)

const (
	headerHeight = 4 // hero, subtitle, tabs, search
	footerHeight = 3 // loader, status, help
)

// Deps are the collaborators behind the TUI. Generator, Sharer and Saver
// may be nil; the matching actions are then unavailable.
type Deps struct {
	Session   *gallery.Session
	Generator *gallery.Generator
	Sharer    *share.Service
	Saver     *download.Saver
}

// Model is the main TUI model
type Model struct {
	session   *gallery.Session
	generator *gallery.Generator
	sharer    *share.Service
	saver     *download.Saver
	tr        *i18n.Translator

	list     list.Model
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	search   textinput.Model
	prompt   textinput.Model
	keyInput textinput.Model

	state         ViewState
	searching     bool
	resolution    types.Resolution
	generating    bool
	selected      types.Wallpaper
	pendingGrowth gallery.Ticket
	toast         string
	toastID       int
	errMsg        string
	width         int
	height        int
}

// NewModel creates a new Model over the given session
func NewModel(deps Deps) Model {
	l := list.New([]list.Item{}, WallpaperDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	s := spinner.New()
	s.Spinner = spinner.Dot

	search := textinput.New()
	search.Prompt = "/ "
	search.CharLimit = 80

	prompt := textinput.New()
	prompt.Prompt = "› "
	prompt.CharLimit = 500

	keyInput := textinput.New()
	keyInput.Prompt = "🔑 "
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '•'

	m := Model{
		session:    deps.Session,
		generator:  deps.Generator,
		sharer:     deps.Sharer,
		saver:      deps.Saver,
		list:       l,
		viewport:   viewport.New(0, 0),
		spinner:    s,
		help:       help.New(),
		keys:       keys,
		search:     search,
		prompt:     prompt,
		keyInput:   keyInput,
		state:      ListView,
		resolution: types.Res1K,
	}
	m.applyLanguage()
	m.search.SetValue(m.session.View().Search)
	m.refreshList(true)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case PreviewView:
			return m.updatePreview(msg)
		case StudioView:
			return m.updateStudio(msg)
		case KeyView:
			return m.updateKeyEntry(msg)
		default:
			if m.searching {
				return m.updateSearch(msg)
			}
			return m.updateList(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()

	case growthMsg:
		if m.session.CompleteGrowth(msg.ticket) {
			m.refreshList(false)
		}

	case generatedMsg:
		return m.handleGenerated(msg)

	case sharedMsg:
		if msg.outcome == share.Copied {
			cmd := m.showToast(m.tr.T(i18n.LinkCopied))
			return m, cmd
		}

	case downloadedMsg:
		if msg.err != nil {
			logging.Error("Download failed", "error", msg.err)
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		cmd := m.showToast(m.tr.T(i18n.Downloaded, msg.path))
		return m, cmd

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizePanes()
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Back):
		if m.session.View().Search != "" {
			m.search.SetValue("")
			m.session.SetSearch("")
			m.refreshList(true)
		}
		return m, nil
	case key.Matches(msg, m.keys.NextCategory):
		m.setCategory(cycleCategory(m.session.View().Category, 1))
		return m, nil
	case key.Matches(msg, m.keys.PrevCategory):
		m.setCategory(cycleCategory(m.session.View().Category, -1))
		return m, nil
	case key.Matches(msg, m.keys.Category):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(types.AllCategories) {
			m.setCategory(types.AllCategories[idx])
		}
		return m, nil
	case key.Matches(msg, m.keys.Favorite):
		if w, ok := m.current(); ok {
			m.session.ToggleFavorite(w.ID())
			m.refreshList(false)
		}
		return m, nil
	case key.Matches(msg, m.keys.FavoritesOnly):
		m.session.ToggleFavoritesOnly()
		m.refreshList(true)
		return m, nil
	case key.Matches(msg, m.keys.LoadMore):
		cmd := m.startGrowth()
		return m, cmd
	case key.Matches(msg, m.keys.Generate):
		return m.openStudio()
	case key.Matches(msg, m.keys.Credential):
		return m.openKeyEntry()
	case key.Matches(msg, m.keys.Share):
		if w, ok := m.current(); ok {
			return m, m.share(w)
		}
		return m, nil
	case key.Matches(msg, m.keys.Download):
		if w, ok := m.current(); ok {
			return m, m.download(w)
		}
		return m, nil
	case key.Matches(msg, m.keys.Language):
		m.session.ToggleLanguage()
		m.applyLanguage()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if w, ok := m.current(); ok {
			m.openPreview(w)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	growth := m.checkSentinel()
	return m, tea.Batch(cmd, growth)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.session.SetSearch("")
		m.refreshList(true)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.session.View().Search {
		m.session.SetSearch(m.search.Value())
		m.refreshList(true)
	}
	return m, cmd
}

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = ListView
		m.refreshList(false)
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Favorite):
		m.session.ToggleFavorite(m.selected.ID())
		m.viewport.SetContent(m.renderPreview())
		return m, nil
	case key.Matches(msg, m.keys.Share):
		return m, m.share(m.selected)
	case key.Matches(msg, m.keys.Download):
		return m, m.download(m.selected)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateStudio(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = ListView
		m.prompt.Blur()
		m.errMsg = ""
		return m, nil
	case key.Matches(msg, m.keys.Resolution):
		m.resolution = m.resolution.Next()
		return m, nil
	case msg.Type == tea.KeyEnter:
		if m.generating || strings.TrimSpace(m.prompt.Value()) == "" {
			return m, nil
		}
		m.generating = true
		m.errMsg = ""
		in := gallery.GenerateInput{
			Prompt:      m.prompt.Value(),
			Resolution:  m.resolution,
			AspectRatio: types.AspectPortrait,
		}
		return m, tea.Batch(generateWallpaper(m.generator, in), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) updateKeyEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = ListView
		m.keyInput.Blur()
		m.keyInput.SetValue("")
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.keyInput.Value())
		if value == "" {
			return m, nil
		}
		m.generator.SetCredential(value)
		m.keyInput.SetValue("")
		m.keyInput.Blur()
		m.errMsg = ""
		m.state = StudioView
		cmd := m.prompt.Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

func (m Model) handleGenerated(msg generatedMsg) (tea.Model, tea.Cmd) {
	m.generating = false
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, types.ErrInvalidCredential):
			m.errMsg = m.tr.T(i18n.ErrInvalidKey)
			m.state = KeyView
			m.prompt.Blur()
			cmd := m.keyInput.Focus()
			return m, cmd
		case errors.Is(msg.err, gallery.ErrBusy):
			m.errMsg = m.tr.T(i18n.ErrBusy)
		case errors.Is(msg.err, gallery.ErrInvalidRequest):
			m.errMsg = msg.err.Error()
		default:
			m.errMsg = m.tr.T(i18n.ErrGeneration)
		}
		return m, nil
	}

	m.errMsg = ""
	m.prompt.SetValue("")
	m.prompt.Blur()
	m.refreshList(false)
	m.openPreview(msg.item)
	return m, nil
}

func (m Model) openStudio() (tea.Model, tea.Cmd) {
	if m.generator == nil {
		m.errMsg = m.tr.T(i18n.ErrGeneration)
		return m, nil
	}
	if !m.generator.HasCredential() {
		m.errMsg = m.tr.T(i18n.KeyRequired)
		return m.openKeyEntry()
	}
	m.state = StudioView
	cmd := m.prompt.Focus()
	return m, cmd
}

func (m Model) openKeyEntry() (tea.Model, tea.Cmd) {
	if m.generator == nil {
		return m, nil
	}
	m.state = KeyView
	cmd := m.keyInput.Focus()
	return m, cmd
}

func (m *Model) openPreview(w types.Wallpaper) {
	m.selected = w
	m.state = PreviewView
	m.viewport.SetContent(m.renderPreview())
	m.viewport.GotoTop()
}

func (m *Model) share(w types.Wallpaper) tea.Cmd {
	if m.sharer == nil {
		return nil
	}
	return shareWallpaper(m.sharer, share.NewPayload(w, m.tr.T(i18n.ShareTitle)))
}

func (m *Model) download(w types.Wallpaper) tea.Cmd {
	if m.saver == nil {
		return nil
	}
	return downloadWallpaper(m.saver, w)
}

func (m *Model) showToast(text string) tea.Cmd {
	m.toastID++
	m.toast = text
	return expireToast(m.toastID)
}

// startGrowth begins a load-more cycle; it is a no-op while one is pending
// or when everything is visible.
func (m *Model) startGrowth() tea.Cmd {
	ticket, ok := m.session.BeginGrowth()
	if !ok {
		return nil
	}
	m.pendingGrowth = ticket
	return tea.Batch(growAfter(m.session.Pager().Delay(), ticket), m.spinner.Tick)
}

// checkSentinel starts growth when the cursor reaches the last visible card.
func (m *Model) checkSentinel() tea.Cmd {
	n := len(m.list.Items())
	if n == 0 || m.list.Index() != n-1 || !m.session.HasMore() {
		return nil
	}
	return m.startGrowth()
}

func (m *Model) setCategory(c types.Category) {
	m.session.SetCategory(c)
	m.refreshList(true)
}

// refreshList loads the visible prefix into the list.
func (m *Model) refreshList(resetCursor bool) {
	visible := m.session.Visible()
	items := make([]list.Item, len(visible))
	for i, w := range visible {
		items[i] = w
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	switch {
	case resetCursor:
		m.list.Select(0)
	case idx >= len(items) && len(items) > 0:
		m.list.Select(len(items) - 1)
	}
}

func (m *Model) applyLanguage() {
	m.tr = i18n.New(m.session.Language())
	m.search.Placeholder = m.tr.T(i18n.SearchPlaceholder)
	m.prompt.Placeholder = m.tr.T(i18n.AIStudioPlaceholder)
	m.keyInput.Placeholder = m.tr.T(i18n.KeyPlaceholder)
	m.list.SetDelegate(WallpaperDelegate{
		IsFavorite:   m.session.IsFavorite,
		CategoryName: m.tr.Category,
	})
	if m.state == PreviewView {
		m.viewport.SetContent(m.renderPreview())
	}
}

func (m Model) current() (types.Wallpaper, bool) {
	w, ok := m.list.SelectedItem().(types.Wallpaper)
	return w, ok
}

func (m Model) busy() bool {
	return m.generating || m.session.Pager().Loading()
}

// resizePanes adjusts the dimensions of list and viewport based on window size
func (m *Model) resizePanes() {
	helpHeight := 1
	if m.help.ShowAll {
		helpHeight = len(m.keys.FullHelp()[0])
	}
	availableHeight := m.height - headerHeight - footerHeight - helpHeight + 1
	if availableHeight < 0 {
		availableHeight = 0
	}

	m.list.SetSize(m.width, availableHeight)
	m.viewport.Width = m.width
	m.viewport.Height = availableHeight
	m.help.Width = m.width
}

// cycleCategory steps through types.AllCategories with wrap-around
func cycleCategory(c types.Category, step int) types.Category {
	n := len(types.AllCategories)
	for i, cat := range types.AllCategories {
		if cat == c {
			return types.AllCategories[((i+step)%n+n)%n]
		}
	}
	return types.All
}

// State returns the current view mode
func (m Model) State() ViewState { return m.state }

// Searching reports whether the search input has focus
func (m Model) Searching() bool { return m.searching }

// Resolution returns the resolution selected in the AI studio
func (m Model) Resolution() types.Resolution { return m.resolution }

// Toast returns the confirmation message on screen, if any
func (m Model) Toast() string { return m.toast }

// Error returns the error message on screen, if any
func (m Model) Error() string { return m.errMsg }

// Items returns the cards currently in the list
func (m Model) Items() []types.Wallpaper {
	items := m.list.Items()
	out := make([]types.Wallpaper, 0, len(items))
	for _, it := range items {
		if w, ok := it.(types.Wallpaper); ok {
			out = append(out, w)
		}
	}
	return out
}

// Cursor returns the selected card index
func (m Model) Cursor() int { return m.list.Index() }
