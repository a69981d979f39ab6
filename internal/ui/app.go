package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bloom/internal/catalog"
	"github.com/five82/bloom/internal/logtail"
	"github.com/five82/bloom/internal/prefs"
)

// View represents the current active screen.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewStats
	ViewActivity
)

const (
	flashDuration   = 3 * time.Second
	activityMaxRows = 400
)

type flashKind int

const (
	flashInfo flashKind = iota
	flashSuccess
	flashError
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Store       *catalog.Store
	Placeholder string
	DarkMode    bool
	PrefsPath   string
	LogPath     string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store       *catalog.Store
	placeholder string
	prefsPath   string
	logPath     string
	keys        keyMap

	// Store subscription
	changes     <-chan struct{}
	unsubscribe func()

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	records     []catalog.Record
	selectedID  string
	selectedRow int
	listOffset  int

	// Search
	searchInput textinput.Model
	searching   bool
	query       string

	// Overlays
	modal    Modal
	showHelp bool

	// Scrollable screens
	detailViewport   viewport.Model
	statsViewport    viewport.Model
	activityViewport viewport.Model
	activity         []logtail.Entry
	activityErr      error
	activityLoaded   time.Time

	// Flash message
	flash     string
	flashKind flashKind
	flashSeq  int
}

// New creates a new Bubble Tea model and subscribes it to store changes.
func New(opts Options) Model {
	placeholder := opts.Placeholder
	if placeholder == "" {
		placeholder = catalog.DefaultPlaceholderImage
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "Search bouquets..."
	ti.CharLimit = 100

	m := Model{
		store:       opts.Store,
		placeholder: placeholder,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		keys:        DefaultKeyMap(),
		theme:       ThemeFor(opts.DarkMode),
		currentView: ViewList,
		searchInput: ti,
		unsubscribe: func() {},
	}
	if m.store != nil {
		m.changes, m.unsubscribe = m.store.Subscribe()
		m.records = m.store.Snapshot()
	}
	m.syncSelection()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		waitForChange(m.changes),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initViewports()
		}
		m.ready = true
		m.syncSelection()
		m.refreshViewports()
		return m, nil

	case storeChangedMsg:
		m.refresh()
		return m, waitForChange(m.changes)

	case formSubmittedMsg:
		return m.applyForm(msg)

	case deleteConfirmedMsg:
		m.store.Delete(msg.id)
		m.refresh()
		if m.currentView == ViewDetail {
			m.currentView = ViewList
		}
		cmd := m.setFlash(fmt.Sprintf("Deleted %s", msg.name), flashSuccess)
		return m, cmd

	case activityMsg:
		m.activity = msg.entries
		m.activityErr = msg.err
		m.activityLoaded = time.Now()
		m.updateActivityViewport()
		m.activityViewport.GotoBottom()
		return m, nil

	case flashExpiredMsg:
		if int(msg) == m.flashSeq {
			m.flash = ""
		}
		return m, nil
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var done bool
		m.modal, cmd, done = m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		}
		return m, cmd
	}
	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// Close releases the store subscription.
func (m Model) Close() {
	m.unsubscribe()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		var cmd tea.Cmd
		var done bool
		m.modal, cmd, done = m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		}
		return m, cmd
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleDark):
		cmd := m.toggleDarkMode()
		return m, cmd

	case key.Matches(msg, m.keys.ViewStats):
		m.currentView = ViewStats
		m.updateStatsViewport()
		m.statsViewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.ViewActivity):
		m.currentView = ViewActivity
		return m, loadActivityCmd(m.logPath)

	case key.Matches(msg, m.keys.Escape):
		if m.currentView != ViewList {
			m.currentView = ViewList
			return m, nil
		}
		if m.query != "" {
			m.clearSearch()
		}
		return m, nil
	}

	switch m.currentView {
	case ViewList:
		return m.handleListKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewStats:
		scrollViewport(m.keys, msg, &m.statsViewport)
	case ViewActivity:
		if key.Matches(msg, m.keys.Reload) {
			return m, loadActivityCmd(m.logPath)
		}
		scrollViewport(m.keys, msg, &m.activityViewport)
	}
	return m, nil
}

// scrollViewport moves a read-only viewport.
func scrollViewport(keys keyMap, msg tea.KeyMsg, vp *viewport.Model) {
	switch {
	case key.Matches(msg, keys.Down):
		vp.LineDown(1)
	case key.Matches(msg, keys.Up):
		vp.LineUp(1)
	case key.Matches(msg, keys.PageDown):
		vp.HalfViewDown()
	case key.Matches(msg, keys.PageUp):
		vp.HalfViewUp()
	case key.Matches(msg, keys.Top):
		vp.GotoTop()
	case key.Matches(msg, keys.Bottom):
		vp.GotoBottom()
	}
}

// Catalog actions shared by the list and detail screens.

func (m *Model) openAddForm() {
	m.modal = newBouquetForm(m.placeholder)
}

func (m *Model) openEditForm() {
	if rec, ok := m.selectedRecord(); ok {
		m.modal = newEditForm(m.placeholder, rec)
	}
}

func (m *Model) openDeleteConfirm() {
	if rec, ok := m.selectedRecord(); ok {
		m.modal = newConfirmDeleteModal(rec.ID, rec.Name)
	}
}

func (m *Model) togglePurchased() tea.Cmd {
	rec, ok := m.selectedRecord()
	if !ok {
		return nil
	}
	m.store.TogglePurchased(rec.ID)
	m.refresh()
	if rec.Purchased {
		return m.setFlash(fmt.Sprintf("%s marked as not purchased", rec.Name), flashInfo)
	}
	return m.setFlash(fmt.Sprintf("%s marked as purchased", rec.Name), flashSuccess)
}

func (m Model) applyForm(msg formSubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.id == "" {
		id := m.store.Create(msg.values.Input())
		m.selectedID = id
		m.refresh()
		cmd := m.setFlash(fmt.Sprintf("Added %s", msg.values.Name), flashSuccess)
		return m, cmd
	}
	m.store.Update(msg.id, msg.values.Patch())
	m.refresh()
	cmd := m.setFlash(fmt.Sprintf("Saved %s", msg.values.Name), flashSuccess)
	return m, cmd
}

func (m *Model) toggleDarkMode() tea.Cmd {
	m.theme = ThemeFor(!m.theme.Dark)
	m.refreshViewports()
	if err := prefs.Save(m.prefsPath, prefs.Prefs{DarkMode: m.theme.Dark}); err != nil {
		return m.setFlash(fmt.Sprintf("Could not save preference: %v", err), flashError)
	}
	return nil
}

// refresh re-reads the store and keeps the selection on the same bouquet.
func (m *Model) refresh() {
	if m.store != nil {
		m.records = m.store.Snapshot()
	}
	m.syncSelection()
	m.refreshViewports()
}

func (m *Model) refreshViewports() {
	if !m.ready {
		return
	}
	m.updateDetailViewport()
	m.updateStatsViewport()
	m.updateActivityViewport()
}

func (m *Model) initViewports() {
	m.detailViewport = viewport.New(m.width-4, m.contentHeight()-2)
	m.statsViewport = viewport.New(m.width, m.contentHeight())
	m.activityViewport = viewport.New(m.width-4, m.contentHeight()-2)
}

// contentHeight is the space left after header, command bar and status line.
func (m Model) contentHeight() int {
	return max(m.height-3, 3)
}

func (m *Model) setFlash(text string, kind flashKind) tea.Cmd {
	m.flashSeq++
	m.flash = text
	m.flashKind = kind
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg(seq)
	})
}

// renderMain renders header, active screen and status line.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return m.theme.Styles().Background.Width(m.width).Height(m.height).Render(b.String())
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDetail:
		return m.renderDetail()
	case ViewStats:
		return m.renderStats()
	case ViewActivity:
		return m.renderActivity()
	default:
		return m.renderList()
	}
}

// Messages

type storeChangedMsg struct{}

type flashExpiredMsg int

type activityMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

// waitForChange blocks until the store reports a mutation. A closed
// subscription ends the chain.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func loadActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		lines, err := logtail.Read(path, activityMaxRows)
		return activityMsg{entries: logtail.ParseAll(lines), err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
