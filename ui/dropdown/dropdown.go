// Package dropdown implements a selectable-item dropdown: a header showing
// the committed value and a popup menu of candidates navigable with keys,
// platform jump actions and the mouse.
//
// The state machine (Items, Selection, Menu) does not render anything.
// Rendering is delegated to a Header and a MenuView, both injectable through
// factories; the defaults are lipgloss-styled and list-backed.
package dropdown

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/miosa/osa-dropdown/msg"
)

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Option configures a Dropdown at construction.
type Option[T comparable] func(*Dropdown[T])

// WithHeaderFactory replaces the default header.
func WithHeaderFactory[T comparable](f HeaderFactory) Option[T] {
	return func(d *Dropdown[T]) {
		if f != nil {
			d.headerFactory = f
		}
	}
}

// WithMenuFactory replaces the default menu view.
func WithMenuFactory[T comparable](f MenuFactory) Option[T] {
	return func(d *Dropdown[T]) {
		if f != nil {
			d.menuFactory = f
		}
	}
}

// WithLabeler sets how values are turned into header and menu labels.
func WithLabeler[T comparable](fn func(T) string) Option[T] {
	return func(d *Dropdown[T]) {
		if fn != nil {
			d.labeler = fn
		}
	}
}

// WithItems seeds the item collection.
func WithItems[T comparable](vs ...T) Option[T] {
	return func(d *Dropdown[T]) {
		for _, v := range vs {
			d.items.Append(v)
		}
	}
}

// WithKeyMap replaces the default key bindings used by Update.
func WithKeyMap[T comparable](k KeyMap) Option[T] {
	return func(d *Dropdown[T]) { d.keys = k }
}

// WithMenuHeight sets how many rows the popup shows at once.
func WithMenuHeight[T comparable](h int) Option[T] {
	return func(d *Dropdown[T]) {
		if h > 0 {
			d.menuHeight = h
		}
	}
}

// WithWidth sets the outer width of header and popup.
func WithWidth[T comparable](w int) Option[T] {
	return func(d *Dropdown[T]) {
		if w > 0 {
			d.width = w
		}
	}
}

// WithHeaderKeyNavigation lets Up/Down commit the previous/next item while
// the menu is closed.
func WithHeaderKeyNavigation[T comparable]() Option[T] {
	return func(d *Dropdown[T]) { d.headerKeys = true }
}

// ---------------------------------------------------------------------------
// Dropdown
// ---------------------------------------------------------------------------

const (
	defaultMenuHeight = 8
	defaultWidth      = 24
)

// Dropdown ties the item collection, the committed selection and the menu
// state machine together and keeps the header and menu view in sync.
// Construct with New.
type Dropdown[T comparable] struct {
	id        string
	items     Items[T]
	selection Selection[T]
	menu      *Menu

	header Header
	view   MenuView

	headerFactory HeaderFactory
	menuFactory   MenuFactory
	labeler       func(T) string
	keys          KeyMap

	headerKeys bool
	focused    bool
	width      int
	menuHeight int
}

// New returns a closed dropdown with no committed value.
func New[T comparable](id string, opts ...Option[T]) *Dropdown[T] {
	d := &Dropdown[T]{
		id:            id,
		headerFactory: NewDefaultHeader,
		menuFactory:   NewListMenu,
		labeler:       func(v T) string { return fmt.Sprint(v) },
		keys:          DefaultKeyMap(),
		width:         defaultWidth,
		menuHeight:    defaultMenuHeight,
	}
	for _, o := range opts {
		o(d)
	}

	d.header = d.headerFactory()
	d.view = d.menuFactory(d.menuHeight)
	d.header.SetWidth(d.width)
	d.view.SetWidth(d.width)

	d.menu = NewMenu(&d.items, d.commitIndex)
	d.menu.SetVisibleRangeProvider(d.view)
	// Views first so user observers see rendered state.
	d.menu.OnStateChange(func(s MenuState) {
		open := s == MenuOpen
		d.syncHighlight()
		d.view.SetOpen(open)
		d.header.SetOpen(open)
	})

	d.refreshItems()
	return d
}

// ID returns the identifier given to New.
func (d *Dropdown[T]) ID() string { return d.id }

// ---------------------------------------------------------------------------
// Items and selection
// ---------------------------------------------------------------------------

// AddItem appends v. Selection and open state are untouched.
func (d *Dropdown[T]) AddItem(v T) int {
	idx := d.items.Append(v)
	d.refreshItems()
	return idx
}

// AddItems appends every value in order.
func (d *Dropdown[T]) AddItems(vs ...T) {
	for _, v := range vs {
		d.items.Append(v)
	}
	d.refreshItems()
}

// Refresh re-pushes every label to the menu view, e.g. after a theme change.
func (d *Dropdown[T]) Refresh() { d.refreshItems() }

// Count returns the number of items.
func (d *Dropdown[T]) Count() int { return d.items.Count() }

// Items returns a copy of the items.
func (d *Dropdown[T]) Items() []T { return d.items.All() }

// Select commits v. v does not have to be one of the items. The header label
// is refreshed on every call; observers run only when the value changed.
func (d *Dropdown[T]) Select(v T) {
	ch, changed := d.selection.assign(v)
	d.header.SetLabel(d.labeler(v))
	d.view.SetSelected(d.items.IndexOf(v))
	if changed {
		d.selection.notify(ch)
	}
}

// Current returns the committed value.
func (d *Dropdown[T]) Current() (T, bool) { return d.selection.Get() }

// SelectedIndex returns the committed value's item index, or -1 when nothing
// is committed or the value is free-form.
func (d *Dropdown[T]) SelectedIndex() int {
	v, ok := d.selection.Get()
	if !ok {
		return -1
	}
	return d.items.IndexOf(v)
}

// Label returns the header's current label.
func (d *Dropdown[T]) Label() string { return d.header.Label() }

// OnSelectionChanged registers fn to run after every change of the committed
// value.
func (d *Dropdown[T]) OnSelectionChanged(fn func(SelectionChange[T])) {
	d.selection.OnChange(fn)
}

// ---------------------------------------------------------------------------
// Menu
// ---------------------------------------------------------------------------

// State returns the menu state.
func (d *Dropdown[T]) State() MenuState { return d.menu.State() }

// IsOpen reports whether the popup is open.
func (d *Dropdown[T]) IsOpen() bool { return d.menu.IsOpen() }

// PreselectedIndex returns the highlighted index, or -1.
func (d *Dropdown[T]) PreselectedIndex() int {
	idx, _ := d.menu.Preselected()
	return idx
}

// Open opens the popup with the committed value highlighted.
func (d *Dropdown[T]) Open() { d.menu.Open(d.SelectedIndex()) }

// Close closes the popup without committing.
func (d *Dropdown[T]) Close() { d.menu.Close() }

// Toggle opens a closed popup and closes an open one.
func (d *Dropdown[T]) Toggle() { d.menu.Toggle(d.SelectedIndex()) }

// OnMenuStateChanged registers fn to run after the popup opened or closed.
func (d *Dropdown[T]) OnMenuStateChanged(fn func(MenuState)) {
	d.menu.OnStateChange(fn)
}

// Validate reports a broken cursor invariant.
func (d *Dropdown[T]) Validate() error {
	if err := d.menu.Validate(); err != nil {
		return fmt.Errorf("dropdown %q: %w", d.id, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Input
// ---------------------------------------------------------------------------

// HandleActivationClick handles a click on the header.
func (d *Dropdown[T]) HandleActivationClick() { d.Toggle() }

// HandleKey applies a navigation key. Keys that do not apply in the current
// state are ignored.
func (d *Dropdown[T]) HandleKey(k Key) {
	if !d.menu.IsOpen() && d.headerKeys {
		switch k {
		case KeyUp:
			d.selectRelative(-1)
			return
		case KeyDown:
			d.selectRelative(1)
			return
		}
	}

	switch k {
	case KeyUp:
		d.menu.MoveStep(Previous)
	case KeyDown:
		d.menu.MoveStep(Next)
	case KeyPageUp:
		d.menu.MovePage(Previous)
	case KeyPageDown:
		d.menu.MovePage(Next)
	case KeyEnter:
		d.menu.Activate()
	case KeyEscape:
		d.menu.Close()
	}
	d.syncHighlight()
}

// HandlePlatformAction applies a list jump. With the popup closed the first
// or last item is committed directly; with it open only the highlight moves.
func (d *Dropdown[T]) HandlePlatformAction(a PlatformAction) {
	n := d.items.Count()
	if n == 0 {
		return
	}
	if d.menu.IsOpen() {
		switch a {
		case ListStart:
			d.menu.MoveToStart()
		case ListEnd:
			d.menu.MoveToEnd()
		}
		d.syncHighlight()
		return
	}
	switch a {
	case ListStart:
		d.commitIndex(0)
	case ListEnd:
		d.commitIndex(n - 1)
	}
}

// ClickItem commits item i and closes the popup, as a pointer click on a row.
func (d *Dropdown[T]) ClickItem(i int) {
	if !d.menu.IsOpen() || i < 0 || i >= d.items.Count() {
		return
	}
	d.menu.Preselect(i)
	d.menu.Activate()
}

// HoverItem highlights item i.
func (d *Dropdown[T]) HoverItem(i int) {
	if !d.menu.IsOpen() || i < 0 || i >= d.items.Count() {
		return
	}
	d.menu.Preselect(i)
	d.syncHighlight()
}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

// SetFocused marks the header as focused.
func (d *Dropdown[T]) SetFocused(focused bool) {
	d.focused = focused
	d.header.SetFocused(focused)
}

// Focused reports whether the header is focused.
func (d *Dropdown[T]) Focused() bool { return d.focused }

// SetWidth resizes header and popup.
func (d *Dropdown[T]) SetWidth(w int) {
	if w <= 0 {
		return
	}
	d.width = w
	d.header.SetWidth(w)
	d.view.SetWidth(w)
}

// HeaderHeight returns the number of lines the header occupies.
func (d *Dropdown[T]) HeaderHeight() int {
	return lipgloss.Height(d.header.View())
}

// ItemAt maps line y of View (0 = first header line) to an item index.
// Lines on the header, and any line while closed, yield -1.
func (d *Dropdown[T]) ItemAt(y int) int {
	if !d.menu.IsOpen() {
		return -1
	}
	return d.view.ItemAt(y - d.HeaderHeight())
}

// ---------------------------------------------------------------------------
// Update (bubbletea)
// ---------------------------------------------------------------------------

// scroller is implemented by menu views that can scroll independently of
// the highlight.
type scroller interface {
	Scroll(lines int)
}

// Track runs fn and returns commands delivering msg.SelectionChanged /
// msg.MenuStateChanged for any change fn produced. Hosts use it to wrap
// facade calls made outside Update, such as pointer clicks.
//
// Only net changes are reported: state is compared before and after fn, so
// a transition that fn reverts (open then closed, A then B then A) yields
// nothing. Siblings closed by a Group are reported by Group.Track.
func (d *Dropdown[T]) Track(fn func()) tea.Cmd {
	before := d.capture()
	fn()
	return d.changes(before)
}

// Update handles key presses and mouse wheel events. See Track for the
// returned commands.
func (d *Dropdown[T]) Update(m tea.Msg) tea.Cmd {
	return d.Track(func() { d.update(m) })
}

func (d *Dropdown[T]) update(m tea.Msg) {
	switch m := m.(type) {
	case tea.KeyPressMsg:
		kind, k, a := d.keys.resolve(m)
		switch kind {
		case inputKey:
			d.HandleKey(k)
		case inputAction:
			d.HandlePlatformAction(a)
		case inputToggle:
			d.Toggle()
		}
	case tea.MouseWheelMsg:
		if s, ok := d.view.(scroller); ok && d.menu.IsOpen() {
			switch m.Button {
			case tea.MouseWheelUp:
				s.Scroll(-1)
			case tea.MouseWheelDown:
				s.Scroll(1)
			}
		}
	}
}

// View renders the header, and the popup below it while open.
func (d *Dropdown[T]) View() string {
	header := d.header.View()
	if !d.menu.IsOpen() {
		return header
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, d.view.View())
}

// ---------------------------------------------------------------------------
// Snapshot
// ---------------------------------------------------------------------------

// Snapshot is a serialisable view of a dropdown's state.
type Snapshot struct {
	ID          string `json:"id"`
	State       string `json:"state"`
	Label       string `json:"label"`
	HasValue    bool   `json:"has_value"`
	Selected    int    `json:"selected"`
	Preselected int    `json:"preselected"`
	Count       int    `json:"count"`
	Visible     []int  `json:"visible,omitempty"` // [first, last]
}

// Snapshot returns the current state.
func (d *Dropdown[T]) Snapshot() Snapshot {
	_, has := d.selection.Get()
	s := Snapshot{
		ID:          d.id,
		State:       d.menu.State().String(),
		Label:       d.header.Label(),
		HasValue:    has,
		Selected:    d.SelectedIndex(),
		Preselected: d.PreselectedIndex(),
		Count:       d.items.Count(),
	}
	if d.menu.IsOpen() {
		if first, last, ok := d.view.VisibleRange(); ok {
			s.Visible = []int{first, last}
		}
	}
	return s
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (d *Dropdown[T]) commitIndex(i int) {
	if v, ok := d.items.At(i); ok {
		d.Select(v)
	}
}

// selectRelative commits the item delta steps from the committed one. With
// nothing committed, or a free-form value, the first item is chosen.
func (d *Dropdown[T]) selectRelative(delta int) {
	n := d.items.Count()
	if n == 0 {
		return
	}
	idx := d.SelectedIndex()
	if idx < 0 {
		d.commitIndex(0)
		return
	}
	d.commitIndex(clamp(idx+delta, 0, n-1))
}

func (d *Dropdown[T]) refreshItems() {
	values := d.items.All()
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = d.labeler(v)
	}
	d.view.SetItems(labels)
	d.view.SetSelected(d.SelectedIndex())
	d.syncHighlight()
}

func (d *Dropdown[T]) syncHighlight() {
	d.view.SetHighlight(d.PreselectedIndex())
}

type state[T comparable] struct {
	value T
	set   bool
	open  bool
}

func (d *Dropdown[T]) capture() state[T] {
	v, ok := d.selection.Get()
	return state[T]{value: v, set: ok, open: d.menu.IsOpen()}
}

func (d *Dropdown[T]) changes(before state[T]) tea.Cmd {
	after := d.capture()
	var cmds []tea.Cmd
	if after.set && (!before.set || before.value != after.value) {
		ev := msg.SelectionChanged{ID: d.id, Label: d.header.Label(), Index: d.SelectedIndex()}
		cmds = append(cmds, func() tea.Msg { return ev })
	}
	if before.open != after.open {
		ev := msg.MenuStateChanged{ID: d.id, Open: after.open}
		cmds = append(cmds, func() tea.Msg { return ev })
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}
