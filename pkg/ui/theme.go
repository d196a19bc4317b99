package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns hex on TrueColor terminals and no color otherwise, so
// low-color terminals keep their own background instead of a muddy
// approximation of true black.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns hex on ANSI256+ terminals and ANSI white below that.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Page colors.
const (
	hexBlack = "#000000"
	hexGray  = "#1A1A1A"
	hexBlue  = "#0066FF"
	hexGreen = "#00FF66"
	hexWhite = "#F0F0F0"
	hexDim   = "#8A8A8A"
	hexRed   = "#FF5555"
)

// Theme holds every style the page uses.
type Theme struct {
	Renderer *lipgloss.Renderer

	Accent lipgloss.TerminalColor // electric blue
	Neon   lipgloss.TerminalColor // neon green
	Text   lipgloss.TerminalColor
	Muted  lipgloss.TerminalColor

	Base        lipgloss.Style
	Brand       lipgloss.Style
	Tagline     lipgloss.Style
	Rain        lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	StatValue   lipgloss.Style
	StatLabel   lipgloss.Style
	Overlay     lipgloss.Style
	OverlayHead lipgloss.Style
	StatusBar   lipgloss.Style
	StatusError lipgloss.Style
	Footer      lipgloss.Style
	Help        lipgloss.Style
}

// DefaultTheme returns the electric-blue on true-black theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,
		Accent:   ThemeFg(hexBlue),
		Neon:     ThemeFg(hexGreen),
		Text:     ThemeFg(hexWhite),
		Muted:    ThemeFg(hexDim),
	}

	t.Base = r.NewStyle().Foreground(t.Text)
	t.Brand = r.NewStyle().Foreground(t.Text).Bold(true)
	t.Tagline = r.NewStyle().Foreground(t.Muted).Italic(true)
	t.Rain = r.NewStyle().Foreground(t.Neon).Faint(true)
	t.Tab = r.NewStyle().Foreground(t.Muted).Padding(0, 1)
	t.TabActive = r.NewStyle().
		Foreground(t.Text).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(t.Accent)
	t.StatValue = r.NewStyle().Foreground(t.Neon).Bold(true)
	t.StatLabel = r.NewStyle().Foreground(t.Muted)
	t.Overlay = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Background(ThemeBg(hexGray)).
		Foreground(t.Text).
		Padding(1, 2)
	t.OverlayHead = r.NewStyle().Foreground(t.Neon).Bold(true)
	t.StatusBar = r.NewStyle().Foreground(t.Muted)
	t.StatusError = r.NewStyle().Foreground(ThemeFg(hexRed)).Bold(true)
	t.Footer = r.NewStyle().Foreground(t.Muted).Faint(true)
	t.Help = r.NewStyle().Foreground(t.Muted)
	return t
}
