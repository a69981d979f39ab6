package ui

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/bloom/internal/catalog"
	"github.com/five82/bloom/internal/prefs"
)

func newTestModel(t *testing.T, opts Options) (Model, *catalog.Store) {
	t.Helper()
	store := catalog.NewStore(context.Background(), nil, catalog.WithLogger(log.New(io.Discard, "", 0)))
	t.Cleanup(func() { _ = store.Close() })

	opts.Store = store
	if opts.PrefsPath == "" {
		opts.PrefsPath = filepath.Join(t.TempDir(), "prefs.toml")
	}
	m := New(opts)
	t.Cleanup(m.Close)

	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30}), store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyPress(k))
	}
	return m
}

// pressCmd sends one key and runs the resulting command, feeding its message
// back into the model. Only use it for keys whose command returns at once.
func pressCmd(t *testing.T, m Model, k string) Model {
	t.Helper()
	next, cmd := m.Update(keyPress(k))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("key %q returned no command", k)
	}
	return update(t, m, cmd())
}

func seed(t *testing.T, m Model, store *catalog.Store, names ...string) (Model, []string) {
	t.Helper()
	ids := make([]string, 0, len(names))
	for _, n := range names {
		ids = append(ids, store.Create(catalog.RecordInput{Name: n, Price: 100000, Category: "Romantic"}))
	}
	return update(t, m, storeChangedMsg{}), ids
}

func TestAddBouquetThroughForm(t *testing.T) {
	m, store := newTestModel(t, Options{})

	m = press(t, m, "a")
	if _, ok := m.modal.(*bouquetForm); !ok {
		t.Fatalf("modal = %T, want *bouquetForm", m.modal)
	}

	m = press(t, m, "Rose Bundle", "tab", "150000")
	m = pressCmd(t, m, "ctrl+s")

	if m.modal != nil {
		t.Fatalf("modal still open after save")
	}
	snap := store.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("len(snapshot) = %d, want 1", len(snap))
	}
	if snap[0].Name != "Rose Bundle" || snap[0].Price != 150000 {
		t.Fatalf("record = %+v, want Rose Bundle at 150000", snap[0])
	}
	if snap[0].Image != catalog.DefaultPlaceholderImage {
		t.Fatalf("Image = %q, want placeholder", snap[0].Image)
	}
	if m.selectedID != snap[0].ID {
		t.Fatalf("selectedID = %q, want new record %q", m.selectedID, snap[0].ID)
	}
	if !strings.Contains(m.flash, "Added Rose Bundle") {
		t.Fatalf("flash = %q, want it to mention the new bouquet", m.flash)
	}
}

func TestFormRejectsMissingFields(t *testing.T) {
	m, store := newTestModel(t, Options{})

	m = press(t, m, "a", "ctrl+s")

	f, ok := m.modal.(*bouquetForm)
	if !ok {
		t.Fatalf("modal = %T, want the form to stay open", m.modal)
	}
	if f.err == nil || !strings.Contains(f.err.Error(), "name is required") {
		t.Fatalf("form err = %v, want name is required", f.err)
	}
	if store.Len() != 0 {
		t.Fatalf("store.Len() = %d, want 0", store.Len())
	}

	m = press(t, m, "esc")
	if m.modal != nil {
		t.Fatalf("esc did not close the form")
	}
}

func TestFormKeysDoNotTriggerListActions(t *testing.T) {
	m, store := newTestModel(t, Options{})

	m = press(t, m, "a", "q", "x", "s")
	if m.modal == nil {
		t.Fatalf("typing in the form closed it")
	}
	if m.currentView != ViewList {
		t.Fatalf("currentView = %v, want list", m.currentView)
	}
	if got := m.modal.(*bouquetForm).inputs[fieldName].Value(); got != "qxs" {
		t.Fatalf("name input = %q, want %q", got, "qxs")
	}
	if store.Len() != 0 {
		t.Fatalf("store.Len() = %d, want 0", store.Len())
	}
}

func TestEditBouquetThroughForm(t *testing.T) {
	m, store := newTestModel(t, Options{})
	m, ids := seed(t, m, store, "Rose Bundle")

	m = press(t, m, "e")
	f, ok := m.modal.(*bouquetForm)
	if !ok {
		t.Fatalf("modal = %T, want *bouquetForm", m.modal)
	}
	if got := f.inputs[fieldName].Value(); got != "Rose Bundle" {
		t.Fatalf("prefilled name = %q, want %q", got, "Rose Bundle")
	}

	m = press(t, m, "ctrl+t")
	m = pressCmd(t, m, "ctrl+s")

	rec, ok := store.Get(ids[0])
	if !ok {
		t.Fatalf("record %q missing after edit", ids[0])
	}
	if rec.Category != "Birthday" {
		t.Fatalf("Category = %q, want Birthday", rec.Category)
	}
	if store.Len() != 1 {
		t.Fatalf("store.Len() = %d, want 1", store.Len())
	}
}

func TestTogglePurchased(t *testing.T) {
	m, store := newTestModel(t, Options{})
	m, ids := seed(t, m, store, "Rose Bundle")

	m = press(t, m, "space")
	if rec, _ := store.Get(ids[0]); !rec.Purchased {
		t.Fatalf("Purchased = false after toggle, want true")
	}
	if !strings.Contains(m.flash, "marked as purchased") {
		t.Fatalf("flash = %q", m.flash)
	}

	m = press(t, m, "space")
	if rec, _ := store.Get(ids[0]); rec.Purchased {
		t.Fatalf("Purchased = true after second toggle, want false")
	}
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	m, store := newTestModel(t, Options{})
	m, _ = seed(t, m, store, "Rose Bundle")

	m = press(t, m, "x")
	if _, ok := m.modal.(confirmDeleteModal); !ok {
		t.Fatalf("modal = %T, want confirmDeleteModal", m.modal)
	}
	m = press(t, m, "n")
	if m.modal != nil || store.Len() != 1 {
		t.Fatalf("cancel: modal=%v len=%d, want closed and 1", m.modal, store.Len())
	}

	m = press(t, m, "x")
	m = pressCmd(t, m, "y")
	if store.Len() != 0 {
		t.Fatalf("store.Len() = %d after confirm, want 0", store.Len())
	}
	if !strings.Contains(m.flash, "Deleted Rose Bundle") {
		t.Fatalf("flash = %q", m.flash)
	}
}

func TestSearchFiltersByName(t *testing.T) {
	m, store := newTestModel(t, Options{})
	m, _ = seed(t, m, store, "Rose Bundle", "Sunflower Joy", "Red ROSE Deluxe")

	m = press(t, m, "/", "rose")
	if !m.searching {
		t.Fatalf("searching = false after /")
	}
	if got := len(m.visibleRecords()); got != 2 {
		t.Fatalf("visible = %d, want 2", got)
	}

	m = press(t, m, "enter")
	if m.searching || m.query != "rose" {
		t.Fatalf("after enter searching=%v query=%q, want false/rose", m.searching, m.query)
	}

	m = press(t, m, "esc")
	if m.query != "" || len(m.visibleRecords()) != 3 {
		t.Fatalf("after esc query=%q visible=%d, want empty/3", m.query, len(m.visibleRecords()))
	}
}

func TestSearchTypingDoesNotQuit(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m = press(t, m, "/", "q")
	if !m.searching {
		t.Fatalf("searching = false, q should have been typed into the box")
	}
	if m.query != "q" {
		t.Fatalf("query = %q, want q", m.query)
	}
}

func TestSelectionFollowsRecordID(t *testing.T) {
	m, store := newTestModel(t, Options{})
	m, ids := seed(t, m, store, "A", "B", "C")

	m = press(t, m, "j")
	if m.selectedID != ids[1] {
		t.Fatalf("selectedID = %q, want B", m.selectedID)
	}

	store.Delete(ids[0])
	m = update(t, m, storeChangedMsg{})

	rec, ok := m.selectedRecord()
	if !ok || rec.ID != ids[1] || m.selectedRow != 0 {
		t.Fatalf("selection = %q row %d, want B at row 0", rec.ID, m.selectedRow)
	}

	store.Delete(ids[1])
	m = update(t, m, storeChangedMsg{})
	if rec, ok := m.selectedRecord(); !ok || rec.ID != ids[2] {
		t.Fatalf("selection after removing B = %q, want C", rec.ID)
	}
}

func TestWaitForChangeDeliversStoreNotifications(t *testing.T) {
	m, store := newTestModel(t, Options{})

	store.Create(catalog.RecordInput{Name: "Rose"})
	msg := waitForChange(m.changes)()
	if _, ok := msg.(storeChangedMsg); !ok {
		t.Fatalf("msg = %T, want storeChangedMsg", msg)
	}

	m = update(t, m, msg)
	if len(m.records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(m.records))
	}
}

func TestWaitForChangeStopsOnClosedSubscription(t *testing.T) {
	ch := make(chan struct{})
	close(ch)
	if msg := waitForChange(ch)(); msg != nil {
		t.Fatalf("msg = %v, want nil", msg)
	}
	if cmd := waitForChange(nil); cmd != nil {
		t.Fatalf("waitForChange(nil) returned a command")
	}
}

func TestScreensAndBack(t *testing.T) {
	m, store := newTestModel(t, Options{})
	m, _ = seed(t, m, store, "Rose Bundle")

	m = press(t, m, "enter")
	if m.currentView != ViewDetail {
		t.Fatalf("currentView = %v, want detail", m.currentView)
	}
	if view := m.View(); !strings.Contains(view, "Rose") {
		t.Fatalf("detail view does not mention the bouquet")
	}

	m = press(t, m, "esc", "s")
	if m.currentView != ViewStats {
		t.Fatalf("currentView = %v, want stats", m.currentView)
	}
	if view := m.View(); !strings.Contains(view, "Statistics") {
		t.Fatalf("stats view missing title")
	}

	m = press(t, m, "esc")
	if m.currentView != ViewList {
		t.Fatalf("currentView = %v, want list", m.currentView)
	}
}

func TestDeleteFromDetailReturnsToList(t *testing.T) {
	m, store := newTestModel(t, Options{})
	m, _ = seed(t, m, store, "Rose Bundle")

	m = press(t, m, "enter", "x")
	m = pressCmd(t, m, "y")
	if m.currentView != ViewList {
		t.Fatalf("currentView = %v, want list", m.currentView)
	}
	if store.Len() != 0 {
		t.Fatalf("store.Len() = %d, want 0", store.Len())
	}
}

func TestToggleDarkModeSavesPreference(t *testing.T) {
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	m, _ := newTestModel(t, Options{PrefsPath: prefsPath})

	if m.theme.Dark {
		t.Fatalf("theme starts dark, want light")
	}
	m = press(t, m, "T")
	if !m.theme.Dark {
		t.Fatalf("theme = %q after T, want dark", m.theme.Name)
	}
	if p := prefs.Load(prefsPath); !p.DarkMode {
		t.Fatalf("saved DarkMode = false, want true")
	}

	m = press(t, m, "T")
	if m.theme.Dark || prefs.Load(prefsPath).DarkMode {
		t.Fatalf("second T did not switch back to light")
	}
}

func TestDarkModeOption(t *testing.T) {
	m, _ := newTestModel(t, Options{DarkMode: true})
	if !m.theme.Dark {
		t.Fatalf("theme = %q, want dark", m.theme.Name)
	}
}

func TestActivityScreenReadsLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "bloom.log")
	content := "2026/10/19 09:15:02 app: started\n2026/10/19 09:15:03 catalog: save failed: disk full\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m, _ := newTestModel(t, Options{LogPath: logPath})

	m = pressCmd(t, m, "L")
	if m.currentView != ViewActivity {
		t.Fatalf("currentView = %v, want activity", m.currentView)
	}
	if len(m.activity) != 2 {
		t.Fatalf("len(activity) = %d, want 2", len(m.activity))
	}
	if view := m.View(); !strings.Contains(view, "disk full") {
		t.Fatalf("activity view missing log message")
	}
}

func TestFlashExpiryIgnoresStaleTicks(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	m.setFlash("first", flashInfo)
	stale := m.flashSeq
	m.setFlash("second", flashInfo)

	m = update(t, m, flashExpiredMsg(stale))
	if m.flash != "second" {
		t.Fatalf("flash = %q, want second", m.flash)
	}
	m = update(t, m, flashExpiredMsg(m.flashSeq))
	if m.flash != "" {
		t.Fatalf("flash = %q, want cleared", m.flash)
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	for _, k := range []tea.KeyMsg{keyPress("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%s returned no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s did not quit", k)
		}
	}
}

func TestEmptyListRenders(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	if view := m.View(); !strings.Contains(view, "No bouquets yet") {
		t.Fatalf("empty list view missing hint")
	}
	// Actions on an empty list are no-ops.
	m = press(t, m, "e", "x", "space", "enter")
	if m.modal != nil || m.currentView != ViewList {
		t.Fatalf("modal=%v view=%v, want nothing to happen", m.modal, m.currentView)
	}
}
