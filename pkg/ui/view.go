package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/kairo/pkg/circuit"
	"github.com/vanderheijden86/kairo/pkg/site"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var body string
	switch m.tab {
	case tabCircuit:
		body = m.renderHero() + "\n" + m.renderCircuit()
	case tabContact:
		body = m.renderContact()
	default:
		if v := m.sections[m.tab]; v != nil {
			body = v.vp.View()
		}
	}
	body = m.theme.Renderer.NewStyle().
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		MaxWidth(m.width).
		Render(body)

	return strings.Join([]string{
		m.renderTabBar(),
		body,
		m.renderStatus(),
		m.theme.Help.Render(m.help.View(m.keys)),
	}, "\n")
}

func (m Model) renderTabBar() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.tab {
			tabs[i] = m.theme.TabActive.Render(label)
		} else {
			tabs[i] = m.theme.Tab.Render(label)
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	return m.theme.Renderer.NewStyle().MaxWidth(m.width).Render(bar)
}

// renderHero is the brand line plus the animated stats over the digit rain.
func (m Model) renderHero() string {
	brand := m.theme.Brand.Render(m.content.Brand) + "  " + m.theme.Tagline.Render(m.content.Tagline)

	stats := make([]string, 0, len(m.content.Stats))
	for i, st := range m.content.Stats {
		v := 0
		if i < len(m.counters) {
			v = m.counters[i].Value()
		}
		stats = append(stats, m.theme.StatValue.Render(site.FormatStat(st, v))+" "+m.theme.StatLabel.Render(st.Label))
	}
	rain := m.rain.Lines(m.width, heroHeight)
	line := m.theme.Renderer.NewStyle().MaxWidth(m.width)
	return line.Render(m.withRain(brand, rain, 0)) + "\n" +
		line.Render(m.withRain(strings.Join(stats, "   "), rain, 1))
}

// withRain fills the columns right of s with row y of the digit rain.
func (m Model) withRain(s string, rain []string, y int) string {
	if y >= len(rain) {
		return s
	}
	w := lipgloss.Width(s) + 2
	if w >= len(rain[y]) {
		return s
	}
	return s + "  " + m.theme.Rain.Render(rain[y][w:])
}

func (m Model) renderCircuit() string {
	rows := max(m.bodyHeight()-heroHeight, 0)
	st := m.disp.State()
	if st.Selected != nil {
		return m.renderDetail(*st.Selected, rows)
	}
	if m.pane.broken() {
		return m.renderNodeList()
	}
	return m.pane.frame
}

// renderDetail is the overlay opened by activating a node.
func (m Model) renderDetail(n circuit.Node, rows int) string {
	w := min(60, max(m.width-4, 20))
	box := m.theme.Overlay.Width(w).Render(
		m.theme.OverlayHead.Render(n.Label) + "\n\n" +
			n.Detail + "\n\n" +
			m.theme.Help.Render("y copy · esc close"),
	)
	return lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, box)
}

// renderNodeList stands in for the drawing when the surface failed.
func (m Model) renderNodeList() string {
	g := m.disp.Graph()
	if g == nil {
		return ""
	}
	st := m.disp.State()
	var b strings.Builder
	for _, id := range g.InteractiveIDs() {
		n, _ := g.Node(id)
		marker := "  "
		if st.Focus.Is(id) {
			marker = "> "
		}
		b.WriteString(marker + truncate(n.Label, m.width-2) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderContact() string {
	title, num := site.Titles(site.SectionContact)
	head := m.theme.OverlayHead.Render(title) + " " + m.theme.StatLabel.Render(num)
	switch {
	case m.contact.Completed():
		return head + "\n\n" + m.theme.Base.Render(m.contact.Acknowledgement()) +
			"\n\n" + m.theme.Help.Render("r new message")
	case m.contact.Aborted():
		return head + "\n\n" + m.theme.Help.Render("form closed · r to reopen")
	}
	return head + "\n\n" + m.contact.Form().View()
}

func (m Model) renderStatus() string {
	left := m.status
	if left == "" && m.tab == tabCircuit {
		left = m.circuitSummary()
	}
	line := spread(left, m.content.Footer(), m.width)
	if m.statusIsErr {
		return m.theme.StatusError.Render(line)
	}
	return m.theme.StatusBar.Render(line)
}

// circuitSummary names the hovered and focused nodes.
func (m Model) circuitSummary() string {
	g := m.disp.Graph()
	st := m.disp.State()
	label := func(o circuit.OptionalID) string {
		id, ok := o.Get()
		if !ok || g == nil {
			return "-"
		}
		if n, ok := g.Node(id); ok {
			return n.Label
		}
		return "-"
	}
	s := fmt.Sprintf("hover %s · focus %s", label(st.Hover), label(st.Focus))
	if !m.surfaceFocus {
		s += " · tab to focus"
	}
	return s
}
