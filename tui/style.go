package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusCombat = styleStatusBar.
				Background(lipgloss.Color("52"))

	styleStatusDead = styleStatusBar.
			Background(lipgloss.Color("88"))

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleRoomName = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleEnemy = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleQuestion = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindRoomName
	kindExits
	kindEnemy
	kindCombat
	kindReward
	kindQuestion
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is from the
// wording the engine uses.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "Exits:"):
		return kindExits
	case strings.HasSuffix(line, " is here (angry)."),
		strings.HasSuffix(line, " is here."):
		return kindEnemy
	case strings.Contains(line, " hit you"),
		strings.Contains(line, " swung at you"),
		strings.HasPrefix(line, "You hit "),
		line == "You died.":
		return kindCombat
	case strings.HasPrefix(line, "You advanced to level"),
		strings.HasPrefix(line, "It dropped:"):
		return kindReward
	case strings.HasPrefix(line, "Which "),
		strings.HasPrefix(line, "What do you want to"):
		return kindQuestion
	case strings.HasPrefix(line, "There is no "),
		strings.HasPrefix(line, "You cannot "),
		strings.HasPrefix(line, "You do not "),
		line == "I do not understand that phrase.":
		return kindError
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindRoomName:
		return styleRoomName.Render(line)
	case kindExits:
		return styleExits.Render(line)
	case kindEnemy:
		return styleEnemy.Render(line)
	case kindCombat:
		return styleCombat.Render(line)
	case kindReward:
		return styleReward.Render(line)
	case kindQuestion:
		return styleQuestion.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
