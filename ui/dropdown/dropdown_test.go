package dropdown

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/miosa/osa-dropdown/msg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testItems(from, to int) []string {
	out := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, fmt.Sprintf("test%d", i))
	}
	return out
}

func newTestDropdown(t *testing.T, n int, opts ...Option[string]) *Dropdown[string] {
	t.Helper()
	opts = append([]Option[string]{WithItems(testItems(0, n)...)}, opts...)
	d := New("test", opts...)
	require.Equal(t, n, d.Count())
	return d
}

// fakeHeader records pushes from the facade.
type fakeHeader struct {
	label   string
	open    bool
	focused bool
	width   int
	labels  []string
}

func (h *fakeHeader) SetLabel(l string) { h.label = l; h.labels = append(h.labels, l) }
func (h *fakeHeader) Label() string { return h.label }
func (h *fakeHeader) SetOpen(o bool) { h.open = o }
func (h *fakeHeader) SetFocused(f bool) { h.focused = f }
func (h *fakeHeader) SetWidth(w int) { h.width = w }
func (h *fakeHeader) View() string { return "[" + h.label + "]" }

// fakeMenu is a MenuView with a fixed page of size page.
type fakeMenu struct {
	labels    []string
	highlight int
	selected  int
	open      bool
	page      int
}

func (m *fakeMenu) SetItems(l []string) { m.labels = l }
func (m *fakeMenu) SetHighlight(i int) { m.highlight = i }
func (m *fakeMenu) SetSelected(i int) { m.selected = i }
func (m *fakeMenu) SetOpen(o bool) { m.open = o }
func (m *fakeMenu) SetWidth(int) {}
func (m *fakeMenu) ItemAt(y int) int { return y }
func (m *fakeMenu) View() string { return strings.Join(m.labels, "\n") }
func (m *fakeMenu) VisibleRange() (int, int, bool) {
	if m.page <= 0 {
		return 0, 0, false
	}
	return 0, m.page - 1, true
}

func withFakes(h *fakeHeader, m *fakeMenu) []Option[string] {
	return []Option[string]{
		WithHeaderFactory[string](func() Header { return h }),
		WithMenuFactory[string](func(int) MenuView { return m }),
	}
}

// collect runs cmd and flattens batches into a message slice.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch m := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, collect(c)...)
		}
		return out
	case nil:
		return nil
	default:
		return []tea.Msg{m}
	}
}

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// ---------------------------------------------------------------------------
// Items and selection
// ---------------------------------------------------------------------------

func TestDropdown_AddItemCounts(t *testing.T) {
	d := New[string]("d")
	for i, v := range testItems(0, 5) {
		assert.Equal(t, i, d.AddItem(v))
	}
	d.AddItems(testItems(5, 8)...)
	assert.Equal(t, 8, d.Count())
	assert.Equal(t, testItems(0, 8), d.Items())
}

func TestDropdown_SelectCurrentRoundTrip(t *testing.T) {
	d := newTestDropdown(t, 3)

	_, ok := d.Current()
	assert.False(t, ok)

	for _, v := range []string{"test1", "invalid", "test2"} {
		d.Select(v)
		got, ok := d.Current()
		require.True(t, ok)
		assert.Equal(t, v, got)
	}
}

func TestDropdown_SelectFreeFormLabel(t *testing.T) {
	d := newTestDropdown(t, 10)
	d.Select("invalid")

	got, _ := d.Current()
	assert.Equal(t, "invalid", got)
	assert.Equal(t, "invalid", d.Label())
	assert.Equal(t, -1, d.SelectedIndex())
}

func TestDropdown_SelectNotifiesOnlyOnChange(t *testing.T) {
	h := &fakeHeader{}
	m := &fakeMenu{}
	d := newTestDropdown(t, 3, withFakes(h, m)...)

	var changes []SelectionChange[string]
	d.OnSelectionChanged(func(ch SelectionChange[string]) {
		// Label is refreshed before observers run.
		assert.Equal(t, ch.New, h.label)
		changes = append(changes, ch)
	})

	d.Select("test0")
	d.Select("test0")
	d.Select("test1")

	require.Len(t, changes, 2)
	assert.False(t, changes[0].HadOld)
	assert.Equal(t, "test0", changes[0].New)
	assert.True(t, changes[1].HadOld)
	assert.Equal(t, "test0", changes[1].Old)
	assert.Equal(t, "test1", changes[1].New)

	// Label refreshed on every call, including the equal one.
	assert.Equal(t, []string{"test0", "test0", "test1"}, h.labels)
	assert.Equal(t, 1, m.selected)
}

func TestDropdown_LabelerFormatsValues(t *testing.T) {
	d := New("n",
		WithItems(1, 2, 3),
		WithLabeler(func(v int) string { return fmt.Sprintf("#%d", v) }),
	)
	d.Select(2)
	assert.Equal(t, "#2", d.Label())
}

// ---------------------------------------------------------------------------
// Menu through the facade
// ---------------------------------------------------------------------------

func TestDropdown_OpenHighlightsSelection(t *testing.T) {
	d := newTestDropdown(t, 10)
	d.Select("test6")
	d.Open()
	assert.Equal(t, 6, d.PreselectedIndex())
	d.Close()

	d.Select("elsewhere")
	d.Open()
	assert.Equal(t, 0, d.PreselectedIndex())
	d.Close()

	empty := New[string]("empty")
	empty.Open()
	assert.True(t, empty.IsOpen())
	assert.Equal(t, -1, empty.PreselectedIndex())
}

func TestDropdown_AddWhileOpenKeepsSelection(t *testing.T) {
	d := newTestDropdown(t, 10)
	d.Select("test3")
	d.HandleActivationClick()
	require.True(t, d.IsOpen())

	for _, v := range testItems(10, 20) {
		d.AddItem(v)
	}

	assert.Equal(t, 20, d.Count())
	got, _ := d.Current()
	assert.Equal(t, "test3", got)
	assert.True(t, d.IsOpen())
	assert.Equal(t, 3, d.PreselectedIndex())
}

func TestDropdown_ClickItemCommitsAndCloses(t *testing.T) {
	d := newTestDropdown(t, 20)
	d.HandleActivationClick()
	d.ClickItem(13)

	assert.False(t, d.IsOpen())
	got, _ := d.Current()
	assert.Equal(t, "test13", got)
	assert.Equal(t, 13, d.SelectedIndex())
}

func TestDropdown_ClickItemIgnoresInvalid(t *testing.T) {
	d := newTestDropdown(t, 5)
	d.ClickItem(2) // closed
	_, ok := d.Current()
	assert.False(t, ok)

	d.Open()
	d.ClickItem(9)
	d.ClickItem(-1)
	assert.True(t, d.IsOpen())
	_, ok = d.Current()
	assert.False(t, ok)
}

func TestDropdown_HoverMovesHighlight(t *testing.T) {
	h := &fakeHeader{}
	m := &fakeMenu{}
	d := newTestDropdown(t, 5, withFakes(h, m)...)
	d.Open()
	d.HoverItem(3)
	assert.Equal(t, 3, d.PreselectedIndex())
	assert.Equal(t, 3, m.highlight)
}

func TestDropdown_KeyNavigationWithListMenu(t *testing.T) {
	d := newTestDropdown(t, 20, WithMenuHeight[string](5))
	d.Open()
	require.Equal(t, 0, d.PreselectedIndex())

	d.HandleKey(KeyDown)
	d.HandleKey(KeyDown)
	require.Equal(t, 2, d.PreselectedIndex())

	d.HandleKey(KeyPageDown)
	assert.Equal(t, 7, d.PreselectedIndex())

	d.HandlePlatformAction(ListEnd)
	assert.Equal(t, 19, d.PreselectedIndex())
	d.HandleKey(KeyUp)
	d.HandleKey(KeyUp)
	require.Equal(t, 17, d.PreselectedIndex())

	// N-3 with page size 5 lands on N-1, not N+2.
	d.HandleKey(KeyPageDown)
	assert.Equal(t, 19, d.PreselectedIndex())
	assert.NoError(t, d.Validate())

	d.HandlePlatformAction(ListStart)
	assert.Equal(t, 0, d.PreselectedIndex())
	_, ok := d.Current()
	assert.False(t, ok, "jumps inside the open menu do not commit")

	d.HandleKey(KeyEnter)
	assert.False(t, d.IsOpen())
	got, _ := d.Current()
	assert.Equal(t, "test0", got)
}

func TestDropdown_PageSizeFromMenuView(t *testing.T) {
	h := &fakeHeader{}
	m := &fakeMenu{page: 4}
	d := newTestDropdown(t, 10, withFakes(h, m)...)
	d.Open()
	d.HandleKey(KeyPageDown)
	assert.Equal(t, 4, d.PreselectedIndex())
	assert.Equal(t, 4, m.highlight)
	d.HandleKey(KeyPageUp)
	assert.Equal(t, 0, d.PreselectedIndex())
}

func TestDropdown_EscapeClosesWithoutCommit(t *testing.T) {
	d := newTestDropdown(t, 5)
	d.Open()
	d.HandleKey(KeyDown)
	d.HandleKey(KeyEscape)
	assert.False(t, d.IsOpen())
	_, ok := d.Current()
	assert.False(t, ok)
}

func TestDropdown_EnterWithoutHighlightOnlyCloses(t *testing.T) {
	d := New[string]("empty")
	d.Open()
	d.HandleKey(KeyEnter)
	assert.False(t, d.IsOpen())
	_, ok := d.Current()
	assert.False(t, ok)
}

func TestDropdown_ClosedKeysAreNoOps(t *testing.T) {
	d := newTestDropdown(t, 5)
	for _, k := range []Key{KeyUp, KeyDown, KeyPageUp, KeyPageDown, KeyEnter, KeyEscape} {
		d.HandleKey(k)
	}
	assert.False(t, d.IsOpen())
	_, ok := d.Current()
	assert.False(t, ok)
}

func TestDropdown_HeaderKeyNavigation(t *testing.T) {
	d := newTestDropdown(t, 4, WithHeaderKeyNavigation[string]())

	d.HandleKey(KeyDown)
	got, _ := d.Current()
	assert.Equal(t, "test0", got, "nothing committed starts at the first item")

	d.HandleKey(KeyDown)
	d.HandleKey(KeyDown)
	d.HandleKey(KeyDown)
	d.HandleKey(KeyDown)
	got, _ = d.Current()
	assert.Equal(t, "test3", got)

	d.HandleKey(KeyUp)
	got, _ = d.Current()
	assert.Equal(t, "test2", got)
	assert.False(t, d.IsOpen())
}

func TestDropdown_PlatformActionsWhileClosedCommit(t *testing.T) {
	d := newTestDropdown(t, 6)
	var changed []string
	d.OnSelectionChanged(func(ch SelectionChange[string]) { changed = append(changed, ch.New) })

	d.HandlePlatformAction(ListEnd)
	got, _ := d.Current()
	assert.Equal(t, "test5", got)

	d.HandlePlatformAction(ListStart)
	got, _ = d.Current()
	assert.Equal(t, "test0", got)
	assert.False(t, d.IsOpen())
	assert.Equal(t, []string{"test5", "test0"}, changed)

	empty := New[string]("empty")
	empty.HandlePlatformAction(ListEnd)
	_, ok := empty.Current()
	assert.False(t, ok)
}

func TestDropdown_ObserverOrderOnActivate(t *testing.T) {
	d := newTestDropdown(t, 5)
	var events []string
	d.OnSelectionChanged(func(ch SelectionChange[string]) { events = append(events, "select:"+ch.New) })
	d.OnMenuStateChanged(func(s MenuState) { events = append(events, s.String()) })

	d.Open()
	d.HandleKey(KeyDown)
	d.HandleKey(KeyEnter)

	assert.Equal(t, []string{"open", "select:test1", "closed"}, events)
}

func TestDropdown_ViewsFollowState(t *testing.T) {
	h := &fakeHeader{}
	m := &fakeMenu{}
	d := newTestDropdown(t, 3, withFakes(h, m)...)

	d.Open()
	assert.True(t, h.open)
	assert.True(t, m.open)
	assert.Equal(t, 0, m.highlight)
	assert.Equal(t, []string{"test0", "test1", "test2"}, m.labels)

	d.Close()
	assert.False(t, h.open)
	assert.False(t, m.open)
	assert.Equal(t, -1, m.highlight)

	d.SetFocused(true)
	assert.True(t, h.focused)
	assert.True(t, d.Focused())

	d.SetWidth(40)
	assert.Equal(t, 40, h.width)
}

func TestDropdown_ItemAtOffsetsHeader(t *testing.T) {
	h := &fakeHeader{}
	m := &fakeMenu{}
	d := newTestDropdown(t, 3, withFakes(h, m)...)
	assert.Equal(t, -1, d.ItemAt(2), "closed")

	d.Open()
	assert.Equal(t, 1, d.HeaderHeight())
	assert.Equal(t, 1, d.ItemAt(2))
}

func TestDropdown_DefaultViewRendersHeaderAndMenu(t *testing.T) {
	d := newTestDropdown(t, 3, WithWidth[string](30))
	d.Select("test1")

	closed := d.View()
	assert.Contains(t, closed, "test1")
	assert.NotContains(t, closed, "test2")

	d.Open()
	open := d.View()
	assert.Contains(t, open, "test0")
	assert.Contains(t, open, "test2")
	assert.Greater(t, d.HeaderHeight(), 0)

	// First menu row sits directly below the header.
	assert.Equal(t, 0, d.ItemAt(d.HeaderHeight()))
	assert.Equal(t, -1, d.ItemAt(0))
}

// ---------------------------------------------------------------------------
// Update (bubbletea)
// ---------------------------------------------------------------------------

func TestDropdown_UpdateKeyMapping(t *testing.T) {
	d := newTestDropdown(t, 10, WithMenuHeight[string](3))

	msgs := collect(d.Update(press(tea.KeySpace)))
	require.Equal(t, []tea.Msg{msg.MenuStateChanged{ID: "test", Open: true}}, msgs)

	assert.Nil(t, collect(d.Update(press(tea.KeyDown))))
	assert.Equal(t, 1, d.PreselectedIndex())

	d.Update(press(tea.KeyPgDown))
	assert.Equal(t, 4, d.PreselectedIndex())

	d.Update(press(tea.KeyEnd))
	assert.Equal(t, 9, d.PreselectedIndex())

	d.Update(press(tea.KeyHome))
	assert.Equal(t, 0, d.PreselectedIndex())

	d.Update(press(tea.KeyUp))
	assert.Equal(t, 0, d.PreselectedIndex())

	msgs = collect(d.Update(press(tea.KeyEnter)))
	assert.ElementsMatch(t, []tea.Msg{
		msg.SelectionChanged{ID: "test", Label: "test0", Index: 0},
		msg.MenuStateChanged{ID: "test", Open: false},
	}, msgs)
}

func TestDropdown_UpdateClosedHomeEndCommit(t *testing.T) {
	d := newTestDropdown(t, 4)
	msgs := collect(d.Update(press(tea.KeyEnd)))
	assert.Equal(t, []tea.Msg{msg.SelectionChanged{ID: "test", Label: "test3", Index: 3}}, msgs)

	// Same value again produces nothing.
	assert.Nil(t, collect(d.Update(press(tea.KeyEnd))))
}

func TestDropdown_UpdateEscapeAndUnmapped(t *testing.T) {
	d := newTestDropdown(t, 4)
	d.Open()
	assert.Nil(t, collect(d.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})))
	assert.True(t, d.IsOpen())

	msgs := collect(d.Update(press(tea.KeyEscape)))
	assert.Equal(t, []tea.Msg{msg.MenuStateChanged{ID: "test", Open: false}}, msgs)
}

func TestDropdown_UpdateMouseWheelScrollsOnly(t *testing.T) {
	d := newTestDropdown(t, 20, WithMenuHeight[string](5))
	d.Open()
	d.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	d.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	assert.Equal(t, 0, d.PreselectedIndex(), "wheel leaves the highlight alone")

	snap := d.Snapshot()
	require.Len(t, snap.Visible, 2)
	assert.Equal(t, 2, snap.Visible[0])
}

// ---------------------------------------------------------------------------
// Snapshot / Validate
// ---------------------------------------------------------------------------

func TestDropdown_SnapshotJSON(t *testing.T) {
	d := newTestDropdown(t, 12, WithMenuHeight[string](4))
	d.Select("test2")
	d.Open()
	d.HandleKey(KeyDown)

	snap := d.Snapshot()
	assert.Equal(t, Snapshot{
		ID:          "test",
		State:       "open",
		Label:       "test2",
		HasValue:    true,
		Selected:    2,
		Preselected: 3,
		Count:       12,
		Visible:     []int{0, 3},
	}, snap)

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"test","state":"open","label":"test2","has_value":true,
		"selected":2,"preselected":3,"count":12,"visible":[0,3]}`, string(data))

	d.Close()
	data, err = json.Marshal(d.Snapshot())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "visible")
}

func TestDropdown_ValidateWrapsID(t *testing.T) {
	d := newTestDropdown(t, 3)
	require.NoError(t, d.Validate())

	d.menu.preselected = 2 // closed with a highlight
	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), `"test"`)
}

func TestDropdown_TrackReportsNetChanges(t *testing.T) {
	d := New("d", WithItems("a", "b"))
	d.Select("a")

	assert.Nil(t, d.Track(func() {
		d.Open()
		d.Close()
		d.Select("b")
		d.Select("a")
	}), "reverted transitions report nothing")

	msgs := collect(d.Track(func() {
		d.Open()
		d.Close()
		d.Open()
	}))
	assert.Equal(t, []tea.Msg{msg.MenuStateChanged{ID: "d", Open: true}}, msgs)
}
