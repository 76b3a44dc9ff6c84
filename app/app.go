// Package app is the dropdown lab: a bubbletea root model that lays several
// dropdowns out on a reactive grid and drives them with the keyboard and the
// mouse.
package app

import (
	"fmt"
	"io"
	"log"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-dropdown/config"
	"github.com/miosa/osa-dropdown/msg"
	"github.com/miosa/osa-dropdown/source"
	"github.com/miosa/osa-dropdown/style"
	"github.com/miosa/osa-dropdown/ui/common"
	"github.com/miosa/osa-dropdown/ui/dropdown"
	"github.com/miosa/osa-dropdown/ui/header"
	"github.com/miosa/osa-dropdown/ui/help"
	"github.com/miosa/osa-dropdown/ui/input"
	"github.com/miosa/osa-dropdown/ui/inspect"
	"github.com/miosa/osa-dropdown/ui/status"
)

// maxEvents bounds the event list shown in the inspector.
const maxEvents = 6

// Options configures New.
type Options struct {
	Config     config.Config
	ProfileDir string      // "" disables config persistence
	BranchPath string      // "" skips the branch dropdown
	Logger     *log.Logger // nil discards
	NoColor    bool        // plain inspector output
	Version    string
}

// Model is the root bubbletea model for the lab.
type Model struct {
	board *board
	group *dropdown.Group
	focus int

	header header.Model
	input  input.Model
	help   help.Model
	keys   KeyMap

	state         State
	mode          inputMode
	showInspector bool
	layout        Layout
	width         int
	height        int

	statusBar status.Model
	events    []string

	config     config.Config
	profileDir string
	branchPath string
	noColor    bool
	log        *log.Logger
}

// New constructs the root Model with the numbered item dropdown and the theme
// dropdown. The branch dropdown is added once Init's load completes.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	m := Model{
		group:      dropdown.NewGroup(),
		header:     header.New(opts.Version),
		input:      input.New(),
		statusBar:  status.New(),
		keys:       DefaultKeyMap(),
		state:      StateBrowse,
		width:      80,
		height:     24,
		config:     opts.Config,
		profileDir: opts.ProfileDir,
		branchPath: opts.BranchPath,
		noColor:    opts.NoColor,
		log:        logger,
	}

	items := m.newPicker("items", source.Numbered("item ", m.config.ItemCount)...)
	themes := m.newPicker("theme", style.ThemeNames...)
	themes.Select(style.CurrentThemeName)

	m.board = newBoard([][]*picker{{items, themes}})
	for _, p := range m.board.order {
		m.group.Add(p)
	}
	items.SetFocused(true)

	m.header.SetTheme(style.CurrentThemeName)
	m.header.SetProfile(m.profileDir)
	m.help = help.New(m.helpMarkdown())
	m.relayout()
	return m
}

// newPicker builds a dropdown with the configured menu height and header
// navigation.
func (m *Model) newPicker(id string, items ...string) *picker {
	opts := []dropdown.Option[string]{
		dropdown.WithItems(items...),
		dropdown.WithMenuHeight[string](m.config.MenuHeight),
	}
	if m.layout.CellWidth > 0 {
		opts = append(opts, dropdown.WithWidth[string](m.layout.CellWidth))
	}
	if m.config.HeaderKeyNavigation {
		opts = append(opts, dropdown.WithHeaderKeyNavigation[string]())
	}
	return dropdown.New[string](id, opts...)
}

// -- Init ---------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{func() tea.Msg { return tea.RequestWindowSize() }}
	if m.branchPath != "" {
		cmds = append(cmds, loadBranches(m.branchPath))
	}
	return tea.Batch(cmds...)
}

func loadBranches(path string) tea.Cmd {
	return func() tea.Msg {
		names, current, err := source.Branches(path)
		return msg.BranchesLoaded{Path: path, Branches: names, Current: current, Err: err}
	}
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.relayout()

	case tea.KeyPressMsg:
		cmd = m.handleKey(v)

	case tea.MouseClickMsg:
		if m.state == StateBrowse && v.Mouse().Button == tea.MouseLeft {
			cmd = m.handleClick(v.Mouse().X, v.Mouse().Y)
		}

	case tea.MouseMotionMsg:
		if m.state == StateBrowse {
			m.handleHover(v.Mouse().X, v.Mouse().Y)
		}

	case tea.MouseWheelMsg:
		cmd = m.handleWheel(v)

	case msg.SelectionChanged:
		m.onSelection(v)

	case msg.MenuStateChanged:
		state := "closed"
		if v.Open {
			state = "open"
		}
		m.record("%s: menu %s", v.ID, state)

	case msg.BranchesLoaded:
		m.onBranches(v)

	default:
		if m.state == StateInput {
			m.input, cmd = m.input.Update(rawMsg)
		}
	}

	if m.board.sync() {
		m.clampFocus()
		m.relayout()
	}
	m.validate()
	return m, cmd
}

// handleKey dispatches a key press according to the current state.
func (m *Model) handleKey(k tea.KeyPressMsg) tea.Cmd {
	if k.String() == "ctrl+c" {
		return tea.Quit
	}

	switch m.state {
	case StateHelp:
		if key.Matches(k, m.keys.Help, m.keys.Cancel) {
			m.state = StateBrowse
			return nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(k)
		return cmd

	case StateInput:
		switch {
		case key.Matches(k, m.keys.Cancel):
			m.closeInput()
			return nil
		case key.Matches(k, m.keys.Submit):
			return m.submitInput()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(k)
		return cmd
	}

	p := m.focused()
	switch {
	case key.Matches(k, m.keys.Quit):
		return tea.Quit
	case key.Matches(k, m.keys.NextFocus):
		return m.moveFocus(+1)
	case key.Matches(k, m.keys.PrevFocus):
		return m.moveFocus(-1)
	case key.Matches(k, m.keys.Help):
		m.state = StateHelp
		return nil
	case key.Matches(k, m.keys.Inspect):
		m.showInspector = !m.showInspector
		m.relayout()
		return nil
	case key.Matches(k, m.keys.Select):
		return m.openInput(inputSelect)
	case key.Matches(k, m.keys.Add):
		return m.openInput(inputAdd)
	}
	if p == nil {
		return nil
	}
	return m.group.Track(func() tea.Cmd { return p.Update(k) })
}

// -- Focus --------------------------------------------------------------------

func (m Model) focused() *picker {
	if m.focus < 0 || m.focus >= len(m.board.order) {
		return nil
	}
	return m.board.order[m.focus]
}

// moveFocus cycles focus by delta. The dropdown losing focus closes its menu.
func (m *Model) moveFocus(delta int) tea.Cmd {
	n := len(m.board.order)
	if n == 0 {
		return nil
	}
	return m.focusOn(m.board.order[(m.focus+delta+n)%n])
}

// focusOn moves focus to p.
func (m *Model) focusOn(p *picker) tea.Cmd {
	old := m.focused()
	if old == p {
		return nil
	}
	var cmd tea.Cmd
	if old != nil {
		old.SetFocused(false)
		if old.IsOpen() {
			cmd = old.Track(old.Close)
		}
	}
	for i, q := range m.board.order {
		if q == p {
			m.focus = i
		}
	}
	p.SetFocused(true)
	return cmd
}

func (m *Model) clampFocus() {
	n := len(m.board.order)
	m.focus = min(max(m.focus, 0), max(n-1, 0))
	for i, p := range m.board.order {
		p.SetFocused(i == m.focus)
	}
}

// -- Mouse --------------------------------------------------------------------

// handleClick toggles a dropdown when its header is clicked and commits an
// item when a menu row is clicked. A click outside every dropdown closes the
// open menu.
func (m *Model) handleClick(x, y int) tea.Cmd {
	c, ok := hit(m.cells(), x, y)
	if !ok {
		if id, open := m.group.Open(); open {
			if p := m.board.find(id); p != nil {
				return p.Track(p.Close)
			}
		}
		return nil
	}

	p := c.picker
	focusCmd := m.focusOn(p)
	local := y - c.y - 1 // label line

	cmd := m.group.Track(func() tea.Cmd {
		switch {
		case local < 0:
		case local < p.HeaderHeight():
			return p.Track(p.HandleActivationClick)
		default:
			if idx := p.ItemAt(local); idx >= 0 {
				return p.Track(func() { p.ClickItem(idx) })
			}
		}
		return nil
	})
	return tea.Batch(focusCmd, cmd)
}

// handleHover moves the preselection of an open menu to the row under the
// pointer.
func (m *Model) handleHover(x, y int) {
	c, ok := hit(m.cells(), x, y)
	if !ok || !c.picker.IsOpen() {
		return
	}
	if idx := c.picker.ItemAt(y - c.y - 1); idx >= 0 {
		c.picker.HoverItem(idx)
	}
}

// handleWheel scrolls the help panel, the menu under the pointer, or the
// focused dropdown's menu.
func (m *Model) handleWheel(v tea.MouseWheelMsg) tea.Cmd {
	if m.state == StateHelp {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(v)
		return cmd
	}
	if c, ok := hit(m.cells(), v.Mouse().X, v.Mouse().Y); ok && c.picker.IsOpen() {
		return c.picker.Update(v)
	}
	if p := m.focused(); p != nil {
		return p.Update(v)
	}
	return nil
}

func (m Model) cells() []cell {
	return m.board.place(m.layout.CellWidth, m.layout.TitleHeight)
}

// -- Value prompt -------------------------------------------------------------

func (m *Model) openInput(mode inputMode) tea.Cmd {
	p := m.focused()
	if p == nil {
		return nil
	}
	m.mode = mode
	m.state = StateInput
	m.input.SetLabel(fmt.Sprintf("%s · %s", p.ID(), mode))
	if mode == inputSelect {
		m.input.SetCandidates(p.Items())
	} else {
		m.input.SetCandidates(nil)
	}
	m.input.Reset()
	m.relayout()
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.input.Blur()
	m.input.Reset()
	m.state = StateBrowse
	m.relayout()
}

// submitInput commits or appends the typed value to the focused dropdown.
func (m *Model) submitInput() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	m.input.Submit(value)
	m.input.Blur()
	m.state = StateBrowse
	m.relayout()

	p := m.focused()
	if p == nil || value == "" {
		return nil
	}
	if m.mode == inputAdd {
		idx := p.AddItem(value)
		m.record("%s: added %q at %d", p.ID(), value, idx)
		return nil
	}
	return p.Track(func() { p.Select(value) })
}

// -- Dropdown events ----------------------------------------------------------

func (m *Model) onSelection(v msg.SelectionChanged) {
	if v.Index < 0 {
		m.record("%s: selected %q (free-form)", v.ID, v.Label)
	} else {
		m.record("%s: selected %q", v.ID, v.Label)
	}
	if v.ID == "theme" {
		m.applyTheme(v.Label)
	}
}

// applyTheme switches the palette and re-renders everything cached with the
// old colors.
func (m *Model) applyTheme(name string) {
	if !style.SetTheme(name) {
		m.setError(fmt.Sprintf("unknown theme %q", name))
		return
	}
	for _, p := range m.board.order {
		p.Refresh()
	}
	m.help.SetMarkdown(m.helpMarkdown())
	m.header.SetTheme(name)
	m.config.Theme = name
	m.persist()
}

func (m *Model) onBranches(v msg.BranchesLoaded) {
	if v.Err != nil {
		m.log.Printf("load branches from %s: %v", v.Path, v.Err)
		m.setError(fmt.Sprintf("branches: %v", v.Err))
		return
	}
	if m.board.find("branch") != nil {
		return
	}
	p := m.newPicker("branch", v.Branches...)
	if v.Current != "" {
		p.Select(v.Current)
	}
	m.group.Add(p)
	m.board.content.Append([]*picker{p})
	m.record("branch: loaded %d from %s", len(v.Branches), v.Path)
}

// validate logs and surfaces any broken dropdown invariant.
func (m *Model) validate() {
	for _, p := range m.board.order {
		if err := p.Validate(); err != nil {
			m.log.Printf("invalid state: %v", err)
			m.setError(err.Error())
		}
	}
}

func (m *Model) persist() {
	if m.profileDir == "" {
		return
	}
	if err := config.Save(m.profileDir, m.config); err != nil {
		m.log.Printf("save config: %v", err)
		m.setError(err.Error())
	}
}

// record logs an event and shows it in the status bar and inspector.
func (m *Model) record(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	m.log.Print(line)
	m.statusBar.SetMessage(line, false)
	m.events = append(m.events, line)
	if len(m.events) > maxEvents {
		m.events = append([]string(nil), m.events[len(m.events)-maxEvents:]...)
	}
}

func (m *Model) setError(s string) {
	m.statusBar.SetMessage(s, true)
}

// -- Layout -------------------------------------------------------------------

func (m *Model) relayout() {
	m.layout = ComputeLayout(m.width, m.height, m.board.columns(), m.showInspector, m.state == StateInput)
	for _, p := range m.board.order {
		p.SetWidth(m.layout.CellWidth)
	}
	m.header.SetWidth(m.width)
	m.header.SetDropdowns(len(m.board.order))
	m.input.SetWidth(m.layout.TermWidth)
	m.help.SetSize(m.width, m.height-m.layout.StatusHeight)
}

func (m Model) helpMarkdown() string {
	return help.Markdown("Dropdown lab",
		help.Section{Title: "Lab", Bindings: m.keys.Bindings()},
		help.Section{
			Title:    "Dropdown",
			Bindings: dropdown.DefaultKeyMap().Bindings(),
			Notes: "Click a header to toggle its menu, click a row to commit it. " +
				"Hovering moves the highlight and the wheel scrolls an open menu.",
		},
	)
}

// -- View ---------------------------------------------------------------------

// View returns the tea.View for the current frame.
// AltScreen, MouseMode, and ReportFocus are set on every frame.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.ReportFocus = true
	return v
}

// renderView composes the full terminal frame as a string.
func (m Model) renderView() string {
	if m.state == StateHelp {
		return m.help.View() + "\n" + m.statusView()
	}

	left := lipgloss.NewStyle().
		Width(m.layout.BoardWidth).
		Height(m.layout.BoardHeight).
		MaxHeight(m.layout.BoardHeight).
		Render(m.board.view(m.layout.CellWidth, m.focused()))
	body := left
	if m.layout.InspectorWidth > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, " ", m.inspectorView())
	}

	parts := []string{m.header.HeaderView(), body}
	if m.state == StateInput {
		parts = append(parts, m.input.View())
	}
	parts = append(parts, m.statusView())
	return strings.Join(parts, "\n")
}

// inspectorView renders the focused dropdown's snapshot, its invariant check,
// the open group member and recent events.
func (m Model) inspectorView() string {
	w := m.layout.InspectorWidth
	p := m.focused()
	if p == nil {
		return common.Section("State", style.Faint.Render("no dropdowns"), w)
	}

	var sb strings.Builder
	if src, err := inspect.Render(p.Snapshot(), m.noColor); err != nil {
		sb.WriteString(style.ErrorText.Render(err.Error()))
	} else {
		sb.WriteString(src)
	}
	sb.WriteString("\n\n")
	if err := p.Validate(); err != nil {
		sb.WriteString(style.ErrorText.Render(common.Truncate(err.Error(), w-4)))
	} else {
		sb.WriteString(common.StatusBadge("cursors valid", true))
	}
	sb.WriteByte('\n')
	if id, ok := m.group.Open(); ok {
		sb.WriteString(common.StatusBadge("open: "+id, true))
	} else {
		sb.WriteString(common.StatusBadge("open: none", false))
	}

	out := common.Section("State", sb.String(), w)
	if len(m.events) > 0 {
		lines := make([]string, len(m.events))
		for i, e := range m.events {
			lines[i] = style.Faint.Render(common.Truncate(e, w-4))
		}
		out += "\n" + common.Section("Events", strings.Join(lines, "\n"), w)
	}
	return out
}

// statusView renders the status bar for the focused dropdown.
func (m Model) statusView() string {
	bar := m.statusBar
	if p := m.focused(); p != nil {
		bar.SetFocused(p.ID(), p.IsOpen())
		bar.SetPosition(p.SelectedIndex(), p.Count())
	}
	if m.state == StateInput {
		bar.SetBindings(m.keys.InputHelp())
	} else {
		bar.SetBindings(m.keys.ShortHelp())
	}
	bar.SetWidth(m.width)
	return bar.View()
}
