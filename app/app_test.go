package app

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miosa/osa-dropdown/config"
	"github.com/miosa/osa-dropdown/msg"
	"github.com/miosa/osa-dropdown/style"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Config == (config.Config{}) {
		opts.Config = config.Default()
	}
	opts.NoColor = true
	m := New(opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	out := cmd()
	if batch, ok := out.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	if out == nil {
		return nil
	}
	return []tea.Msg{out}
}

// send delivers in and then feeds every message its command produced back
// into the model, like the bubbletea runtime would.
func send(t *testing.T, m Model, in tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(in)
	m = next.(Model)
	for _, out := range collect(cmd) {
		next, _ = m.Update(out)
		m = next.(Model)
	}
	return m
}

// sendOnly delivers in and drops the returned command.
func sendOnly(m Model, in tea.Msg) Model {
	next, _ := m.Update(in)
	return next.(Model)
}

func press(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func typed(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

func click(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}
}

func cellOf(t *testing.T, m Model, id string) cell {
	t.Helper()
	for _, c := range m.cells() {
		if c.picker.ID() == id {
			return c
		}
	}
	t.Fatalf("no cell %q", id)
	return cell{}
}

func restoreTheme(t *testing.T) {
	prev := style.CurrentThemeName
	t.Cleanup(func() { style.SetTheme(prev) })
}

// ---------------------------------------------------------------------------
// Focus and keys
// ---------------------------------------------------------------------------

func TestNewBuildsItemsAndTheme(t *testing.T) {
	m := newTestModel(t, Options{})
	require.Len(t, m.board.order, 2)
	assert.Equal(t, "items", m.focused().ID())
	assert.Equal(t, 20, m.board.find("items").Count())
	assert.Equal(t, style.CurrentThemeName, m.board.find("theme").Label())
	assert.True(t, m.focused().Focused())
}

func TestTabCyclesFocus(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, press(tea.KeyTab))
	assert.Equal(t, "theme", m.focused().ID())
	assert.False(t, m.board.find("items").Focused())

	m = send(t, m, press(tea.KeyTab))
	assert.Equal(t, "items", m.focused().ID(), "wraps around")

	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, "theme", m.focused().ID())
}

func TestBlurClosesMenu(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, press(tea.KeySpace))
	require.True(t, m.board.find("items").IsOpen())

	m = send(t, m, press(tea.KeyTab))
	assert.False(t, m.board.find("items").IsOpen())
	assert.Contains(t, m.events, "items: menu closed")
}

func TestKeysRouteToFocusedDropdown(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, press(tea.KeySpace))
	m = send(t, m, press(tea.KeyDown))
	m = send(t, m, press(tea.KeyDown))
	m = send(t, m, press(tea.KeyEnter))

	p := m.board.find("items")
	v, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, "item 2", v, "open highlights item 0, two downs land on item 2")
	assert.False(t, p.IsOpen())
	assert.Equal(t, []string{
		"items: menu open",
		`items: selected "item 2"`,
		"items: menu closed",
	}, m.events)
}

// ---------------------------------------------------------------------------
// Theme
// ---------------------------------------------------------------------------

func TestThemeDropdownSwitchesAndPersists(t *testing.T) {
	restoreTheme(t)
	style.SetTheme("dark")
	dir := t.TempDir()

	m := newTestModel(t, Options{ProfileDir: dir})
	m = send(t, m, press(tea.KeyTab))
	m = send(t, m, press(tea.KeySpace))
	m = send(t, m, press(tea.KeyDown))
	m = send(t, m, press(tea.KeyEnter))

	assert.Equal(t, "light", style.CurrentThemeName)
	assert.Equal(t, "light", config.Load(dir).Theme)
	_, isErr := m.statusBar.Message()
	assert.False(t, isErr)
}

func TestUnknownThemeIsReported(t *testing.T) {
	restoreTheme(t)
	m := newTestModel(t, Options{})
	m = sendOnly(m, msg.SelectionChanged{ID: "theme", Label: "neon", Index: -1})
	text, isErr := m.statusBar.Message()
	assert.True(t, isErr)
	assert.Contains(t, text, "neon")
}

// ---------------------------------------------------------------------------
// Mouse
// ---------------------------------------------------------------------------

func TestClickHeaderTogglesAndGroupCloses(t *testing.T) {
	m := newTestModel(t, Options{})

	items := cellOf(t, m, "items")
	m = send(t, m, click(items.x+2, items.y+2))
	require.True(t, m.board.find("items").IsOpen())

	theme := cellOf(t, m, "theme")
	m = send(t, m, click(theme.x+2, theme.y+2))
	assert.True(t, m.board.find("theme").IsOpen())
	assert.False(t, m.board.find("items").IsOpen(), "group closes the sibling")
	assert.Equal(t, "theme", m.focused().ID(), "click moves focus")

	id, ok := m.group.Open()
	assert.True(t, ok)
	assert.Equal(t, "theme", id)
}

func TestOpeningLogsSiblingClose(t *testing.T) {
	m := newTestModel(t, Options{})
	theme := m.board.find("theme")
	theme.Open()
	require.Equal(t, "items", m.focused().ID())

	m = send(t, m, press(tea.KeySpace))
	assert.False(t, theme.IsOpen())
	assert.True(t, m.board.find("items").IsOpen())
	assert.Equal(t, []string{"theme: menu closed", "items: menu open"}, m.events)
}

func TestClickItemCommits(t *testing.T) {
	m := newTestModel(t, Options{})
	c := cellOf(t, m, "items")
	m = send(t, m, click(c.x+2, c.y+2))

	p := m.board.find("items")
	row := c.y + 1 + p.HeaderHeight() + 3
	m = send(t, m, click(c.x+4, row))

	assert.Equal(t, 3, p.SelectedIndex())
	assert.Equal(t, "item 3", p.Label())
	assert.False(t, p.IsOpen())
}

func TestClickOutsideClosesOpenMenu(t *testing.T) {
	m := newTestModel(t, Options{})
	c := cellOf(t, m, "items")
	m = send(t, m, click(c.x+2, c.y+2))
	require.True(t, m.board.find("items").IsOpen())

	m = send(t, m, click(110, 38))
	assert.False(t, m.board.find("items").IsOpen())
}

func TestHoverMovesPreselection(t *testing.T) {
	m := newTestModel(t, Options{})
	c := cellOf(t, m, "items")
	m = send(t, m, click(c.x+2, c.y+2))

	p := m.board.find("items")
	m = sendOnly(m, tea.MouseMotionMsg{X: c.x + 4, Y: c.y + 1 + p.HeaderHeight() + 2})
	assert.Equal(t, 2, p.PreselectedIndex())
	assert.False(t, p.SelectedIndex() == 2, "hover never commits")
}

// ---------------------------------------------------------------------------
// Value prompt
// ---------------------------------------------------------------------------

func TestSelectPromptCommitsFreeFormValue(t *testing.T) {
	m := newTestModel(t, Options{})
	m = sendOnly(m, typed('s'))
	require.Equal(t, StateInput, m.state)
	assert.Equal(t, 3, m.layout.InputHeight)

	m.input.SetValue("  custom ")
	m = send(t, m, press(tea.KeyEnter))

	p := m.board.find("items")
	assert.Equal(t, StateBrowse, m.state)
	v, _ := p.Current()
	assert.Equal(t, "custom", v)
	assert.Equal(t, "custom", p.Label())
	assert.Equal(t, -1, p.SelectedIndex())
	text, _ := m.statusBar.Message()
	assert.Contains(t, text, "free-form")
	assert.Equal(t, []string{"custom"}, m.input.History())
}

func TestAddPromptAppendsItem(t *testing.T) {
	m := newTestModel(t, Options{})
	m = sendOnly(m, typed('a'))
	m.input.SetValue("extra")
	m = send(t, m, press(tea.KeyEnter))

	p := m.board.find("items")
	assert.Equal(t, 21, p.Count())
	assert.Equal(t, "extra", p.Items()[20])
	_, ok := p.Current()
	assert.False(t, ok, "adding never selects")
}

func TestPromptCancelAndQuitLetter(t *testing.T) {
	m := newTestModel(t, Options{})
	m = sendOnly(m, typed('s'))
	m = sendOnly(m, typed('q'))
	assert.Equal(t, StateInput, m.state, "q is text while the prompt has focus")
	assert.Equal(t, "q", m.input.Value())

	m = sendOnly(m, press(tea.KeyEscape))
	assert.Equal(t, StateBrowse, m.state)
	assert.Equal(t, 0, m.layout.InputHeight)

	_, cmd := m.Update(typed('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// ---------------------------------------------------------------------------
// Branches
// ---------------------------------------------------------------------------

func TestBranchesLoadedAppendsRow(t *testing.T) {
	m := newTestModel(t, Options{})
	m = sendOnly(m, msg.BranchesLoaded{Path: ".", Branches: []string{"dev", "main"}, Current: "main"})

	p := m.board.find("branch")
	require.NotNil(t, p)
	assert.Equal(t, 2, m.board.content.Len())
	assert.Len(t, m.board.order, 3)
	assert.Equal(t, "main", p.Label())
	assert.Equal(t, m.layout.CellWidth, cellOf(t, m, "branch").w)
	assert.Equal(t, 3, m.group.Len())

	// A second load is ignored.
	m = sendOnly(m, msg.BranchesLoaded{Path: ".", Branches: []string{"x"}})
	assert.Equal(t, 2, m.board.find("branch").Count())
}

func TestBranchesLoadErrorIsReported(t *testing.T) {
	m := newTestModel(t, Options{})
	m = sendOnly(m, msg.BranchesLoaded{Path: "/nope", Err: errors.New("repository does not exist")})
	assert.Nil(t, m.board.find("branch"))
	text, isErr := m.statusBar.Message()
	assert.True(t, isErr)
	assert.Contains(t, text, "repository does not exist")
}

// ---------------------------------------------------------------------------
// Panels
// ---------------------------------------------------------------------------

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, Options{})
	m = sendOnly(m, press(tea.KeyF1))
	require.Equal(t, StateHelp, m.state)
	assert.NotEmpty(t, m.renderView())

	m = sendOnly(m, press(tea.KeyEscape))
	assert.Equal(t, StateBrowse, m.state)
}

func TestInspectorShowsSnapshot(t *testing.T) {
	m := newTestModel(t, Options{})
	assert.NotContains(t, m.renderView(), `"id": "items"`)

	m = sendOnly(m, press(tea.KeyF2))
	require.True(t, m.showInspector)
	assert.Greater(t, m.layout.InspectorWidth, 0)
	out := m.renderView()
	assert.Contains(t, out, `"id": "items"`)
	assert.Contains(t, out, "cursors valid")
	assert.Contains(t, out, "open: none")
}

func TestViewEnablesMouse(t *testing.T) {
	m := newTestModel(t, Options{})
	v := m.View()
	assert.True(t, v.AltScreen)
	assert.Equal(t, tea.MouseModeAllMotion, v.MouseMode)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "browse", StateBrowse.String())
	assert.Equal(t, "input", StateInput.String())
	assert.Equal(t, "help", StateHelp.String())
	assert.Equal(t, "unknown", State(99).String())
}
