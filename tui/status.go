package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/wayfarer/engine/world"
)

// exitList names the room's exits in short form: "e,n,u".
func exitList(room *world.Room) string {
	return strings.Join(room.Directions(), ",")
}

// renderStatusBar produces a full-width inverted status line showing the
// room and exits on the left and the player's vitals on the right.
func (m Model) renderStatusBar() string {
	w := m.engine.World
	p := w.Player
	room := w.Room()

	left := fmt.Sprintf(" %s | Exits: %s", room.Name, exitList(room))
	right := fmt.Sprintf("HP %d/%d | Lvl %d | T:%d ", p.HP, p.MaxHP, p.Level, m.engine.Turn)

	// Drop the exits before the vitals when space runs out.
	if lipgloss.Width(left)+lipgloss.Width(right)+1 > m.width {
		left = " " + room.Name
	}

	style := styleStatusBar
	switch {
	case m.engine.Over:
		style = styleStatusDead
	case p.InCombat:
		style = styleStatusCombat
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return style.Width(m.width).Render(bar)
}
