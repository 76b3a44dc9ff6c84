package dropdown

import (
	tea "charm.land/bubbletea/v2"

	"github.com/miosa/osa-dropdown/msg"
)

// Member is a dropdown that can take part in an exclusivity Group.
// *Dropdown[T] satisfies it for every T.
type Member interface {
	ID() string
	IsOpen() bool
	Close()
	OnMenuStateChanged(fn func(MenuState))
}

// Group keeps at most one member's popup open: when a member opens, every
// other open member is closed. Dropdowns outside a group are independent.
type Group struct {
	members []Member
	active  map[string]bool

	tracking bool
	closed   []Member // siblings closed during Track
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{active: make(map[string]bool)}
}

// Add subscribes m to the group. Adding the same ID twice is a no-op.
func (g *Group) Add(m Member) {
	id := m.ID()
	if _, ok := g.active[id]; ok {
		g.active[id] = true
		return
	}
	g.members = append(g.members, m)
	g.active[id] = true
	m.OnMenuStateChanged(func(s MenuState) {
		if s == MenuOpen && g.active[id] {
			g.closeOthers(id)
		}
	})
}

// Remove detaches the member with the given ID. Its observer stays
// registered but no longer has any effect.
func (g *Group) Remove(id string) {
	if _, ok := g.active[id]; ok {
		g.active[id] = false
	}
}

// Open returns the ID of the open member, if any.
func (g *Group) Open() (string, bool) {
	for _, m := range g.members {
		if g.active[m.ID()] && m.IsOpen() {
			return m.ID(), true
		}
	}
	return "", false
}

// Len returns the number of active members.
func (g *Group) Len() int {
	n := 0
	for _, on := range g.active {
		if on {
			n++
		}
	}
	return n
}

// Track runs fn, usually a member's own Track or Update, and returns its
// command preceded by a msg.MenuStateChanged for every sibling the group
// closed meanwhile. Like Dropdown.Track it reports net changes: a sibling
// that was not open before fn, or is open again after it, is not reported.
func (g *Group) Track(fn func() tea.Cmd) tea.Cmd {
	wasOpen := make(map[string]bool, len(g.members))
	for _, m := range g.members {
		wasOpen[m.ID()] = m.IsOpen()
	}
	g.tracking = true
	g.closed = nil
	cmd := fn()
	closed := g.closed
	g.tracking = false
	g.closed = nil

	cmds := make([]tea.Cmd, 0, len(closed)+1)
	reported := make(map[string]bool, len(closed))
	for _, m := range closed {
		id := m.ID()
		if !wasOpen[id] || m.IsOpen() || reported[id] {
			continue
		}
		reported[id] = true
		ev := msg.MenuStateChanged{ID: id, Open: false}
		cmds = append(cmds, func() tea.Msg { return ev })
	}
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (g *Group) closeOthers(id string) {
	for _, m := range g.members {
		if m.ID() != id && g.active[m.ID()] && m.IsOpen() {
			m.Close()
			if g.tracking {
				g.closed = append(g.closed, m)
			}
		}
	}
}
