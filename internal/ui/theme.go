package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Choreboard theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconDiamond  = "💎"
	IconSparkle  = "✨"
	IconBroom    = "🧹"
	IconGift     = "🎁"
	IconTrophy   = "🏆"
	IconCalendar = "📅"
	IconChart    = "📈"
	IconSave     = "💾"
	IconLock     = "🔒"
	IconWarn     = "⚠️"
	IconError    = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	ActiveTab   = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary).Padding(0, 1)
	InactiveTab = lipgloss.NewStyle().Foreground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Points renders a diamond count.
func Points(n int) string {
	return fmt.Sprintf("%d %s", n, IconDiamond)
}

// Affordable marks whether a reward is buyable at the given balance.
func Affordable(cost, balance int) string {
	if cost <= balance {
		return Good.Render("affordable")
	}
	return Muted.Render(fmt.Sprintf("need %d more", cost-balance))
}

// Medal returns the rank marker used in best-days listings.
func Medal(rank int) string {
	switch rank {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return "⭐"
	}
}
