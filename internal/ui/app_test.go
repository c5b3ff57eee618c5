package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/schrockblock/recipes/internal/catalog"
	"github.com/schrockblock/recipes/internal/fetch"
	"github.com/schrockblock/recipes/internal/mealdb"
	"github.com/schrockblock/recipes/internal/neterr"
	"github.com/schrockblock/recipes/internal/prefs"
)

type stubPerformer struct {
	bodies map[string][]byte
	err    error
}

func (p *stubPerformer) Perform(_ context.Context, ep mealdb.Endpoint) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.bodies[ep.Path], nil
}

type stubImages struct {
	mu   sync.Mutex
	urls []string
}

func (s *stubImages) Load(_ context.Context, url string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls = append(s.urls, url)
	return []byte("img"), nil
}

func (s *stubImages) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.urls)
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "mealdb", "testdata", name))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return data
}

func newTestModel(t *testing.T, perf *stubPerformer, images *stubImages) Model {
	t.Helper()
	return New(Options{
		Catalog: catalog.Options{
			Env: fetch.Env{
				Performer: perf,
				Parser:    mealdb.NewParser(func() uuid.UUID { return uuid.UUID{} }),
			},
			Images:   images,
			Category: "Dessert",
		},
		ThemeName: "Nightfox",
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// drive feeds msg and every message its commands produce back into m.
func drive(m Model, msg tea.Msg) Model {
	return fetch.Drive(m, update, msg)
}

// settle runs cmd to completion against m.
func settle(m Model, cmd tea.Cmd) Model {
	for _, msg := range fetch.Run(cmd) {
		m = drive(m, msg)
	}
	return m
}

// press sends a key and drops its commands. Used for keys that only
// produce cursor blinks.
func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = update(m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func loadedModel(t *testing.T, width, height int) (Model, *stubImages) {
	t.Helper()
	perf := &stubPerformer{bodies: map[string][]byte{
		"filter.php": fixture(t, "filter_dessert.json"),
		"lookup.php": fixture(t, "lookup_52893.json"),
	}}
	images := &stubImages{}
	m := newTestModel(t, perf, images)
	m = drive(m, tea.WindowSizeMsg{Width: width, Height: height})
	m = drive(m, catalog.Appeared{})
	if got := m.Catalog().All().Len(); got != 2 {
		t.Fatalf("loaded %d recipes, want 2", got)
	}
	return m, images
}

// viewContains fails unless the rendered view contains every want.
func viewContains(t *testing.T, m Model, want ...string) {
	t.Helper()
	view := m.View()
	for _, w := range want {
		if !strings.Contains(view, w) {
			t.Fatalf("view missing %q:\n%s", w, view)
		}
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := newTestModel(t, &stubPerformer{}, &stubImages{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestLoadShowsRecipesAndRequestsThumbnails(t *testing.T) {
	m, images := loadedModel(t, 100, 30)

	viewContains(t, m, "Apple & Blackberry Crumble", "White chocolate creme brulee", "2 recipes")
	if got := images.count(); got != 2 {
		t.Fatalf("image loads = %d, want 2", got)
	}
	if !m.Catalog().All().At(0).HasImage() {
		t.Fatalf("first recipe has no image after load")
	}
}

func TestSearchFiltersAsYouType(t *testing.T) {
	m, _ := loadedModel(t, 100, 30)

	m = press(m, "/", "c", "r", "u", "m")
	if got := m.Catalog().Query(); got != "crum" {
		t.Fatalf("Query = %q, want crum", got)
	}
	visible := m.Catalog().Visible()
	if visible.Len() != 1 || visible.At(0).Name != "Apple & Blackberry Crumble" {
		t.Fatalf("Visible = %v, want only the crumble", visible.IDs())
	}
	viewContains(t, m, "1 of 2 recipes")

	// enter keeps the query and returns to the list
	m = press(m, "enter")
	if m.focus != focusList || m.Catalog().Query() != "crum" {
		t.Fatalf("after enter focus = %v query = %q, want list and crum", m.focus, m.Catalog().Query())
	}

	m = press(m, "esc")
	if m.Catalog().Query() != "" || m.Catalog().Visible().Len() != 2 {
		t.Fatalf("after esc query = %q visible = %d, want cleared", m.Catalog().Query(), m.Catalog().Visible().Len())
	}
}

func TestSearchResetsSelection(t *testing.T) {
	m, _ := loadedModel(t, 100, 30)
	m = press(m, "j")
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1", m.selected)
	}

	m = press(m, "/", "w")
	if m.selected != 0 {
		t.Fatalf("selected = %d after typing, want 0", m.selected)
	}
}

func TestOpenRecipeRunsLookup(t *testing.T) {
	m, _ := loadedModel(t, 100, 30)

	m, cmd := update(m, keyMsg("enter"))
	if m.focus != focusDetail {
		t.Fatalf("focus = %v, want detail", m.focus)
	}
	m = settle(m, cmd)

	d, ok := m.Catalog().Detail()
	if !ok || !d.Loaded() {
		t.Fatalf("detail open = %v loaded = %v, want both", ok, d.Loaded())
	}
	if !d.Recipe().HasImage() {
		t.Fatalf("thumbnail not carried into the detail")
	}
	viewContains(t, m, "Ingredients", "Plain Flour")

	m = press(m, "esc")
	if _, ok := m.Catalog().Detail(); ok || m.focus != focusList {
		t.Fatalf("after esc detail open = %v focus = %v, want closed list", ok, m.focus)
	}
}

func TestWindowFollowsSelection(t *testing.T) {
	// One list row: header, command bar, search line and two borders.
	m, images := loadedModel(t, 80, chromeHeight+3)
	if got := images.count(); got != 1 {
		t.Fatalf("image loads = %d, want 1", got)
	}

	m, cmd := update(m, keyMsg("j"))
	if m.offset != 1 {
		t.Fatalf("offset = %d, want 1", m.offset)
	}
	m = settle(m, cmd)
	if got := images.count(); got != 2 {
		t.Fatalf("image loads = %d, want 2", got)
	}

	// Scrolling back finds the first image already loaded.
	m, cmd = update(m, keyMsg("k"))
	settle(m, cmd)
	if got := images.count(); got != 2 {
		t.Fatalf("image loads = %d after scrolling back, want 2", got)
	}
}

func TestAlertShownAndDismissed(t *testing.T) {
	perf := &stubPerformer{err: neterr.StatusError("filter.php", 403)}
	m := newTestModel(t, perf, &stubImages{})
	m = drive(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = drive(m, catalog.Appeared{})

	viewContains(t, m, "Error: 403", "Access to this resource is forbidden.")

	// Other keys are swallowed while the alert is up.
	m = press(m, "j")
	if m.Catalog().Alert() == nil {
		t.Fatalf("alert dismissed by an unrelated key")
	}

	m = press(m, "enter")
	if m.Catalog().Alert() != nil {
		t.Fatalf("alert still shown after enter")
	}
	viewContains(t, m, "Last refresh failed")
}

func TestThemeAndImageInfoArePersisted(t *testing.T) {
	m, _ := loadedModel(t, 100, 30)

	m = press(m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(m.prefsPath).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}

	before := m.showImageInfo
	m = press(m, "i")
	if m.showImageInfo == before {
		t.Fatalf("showImageInfo not toggled")
	}
	if got := prefs.Load(m.prefsPath).ShowImage; got != !before {
		t.Fatalf("saved show_image_info = %v, want %v", got, !before)
	}
}

func TestHelpOverlay(t *testing.T) {
	m, _ := loadedModel(t, 100, 30)

	m = press(m, "?")
	viewContains(t, m, "Keyboard Shortcuts")

	m = press(m, "j")
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help still shown after a key")
	}
	if m.selected != 0 {
		t.Fatalf("selected = %d, closing help must not move the selection", m.selected)
	}
}
