package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/kairo/pkg/circuit"
	"github.com/vanderheijden86/kairo/pkg/config"
	"github.com/vanderheijden86/kairo/pkg/debug"
	"github.com/vanderheijden86/kairo/pkg/interact"
	"github.com/vanderheijden86/kairo/pkg/render"
	"github.com/vanderheijden86/kairo/pkg/site"
	"github.com/vanderheijden86/kairo/pkg/watcher"
)

type tab int

const (
	tabCircuit tab = iota
	tabServices
	tabPortfolio
	tabAbout
	tabContact
	tabCount
)

var tabNames = [tabCount]string{"CIRCUIT", "SERVICES", "PORTFOLIO", "ABOUT", "CONTACT"}

var tabSections = map[tab]site.Section{
	tabServices:  site.SectionServices,
	tabPortfolio: site.SectionPortfolio,
	tabAbout:     site.SectionAbout,
}

// tabByName resolves a config tab name, case-insensitively.
func tabByName(name string) (tab, bool) {
	for i, n := range tabNames {
		if strings.EqualFold(n, name) {
			return tab(i), true
		}
	}
	return tabCircuit, false
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Rows taken by the tab bar, hero block and status line.
const (
	tabBarHeight = 2
	heroHeight   = 2
	statusHeight = 1
)

// FileChangedMsg is sent when the graph file changes on disk
type FileChangedMsg struct{}

// frameMsg drives the render loop.
type frameMsg time.Time

// counterTickMsg advances one hero counter.
type counterTickMsg struct{ index int }

// rainTickMsg advances the hero's digit rain.
type rainTickMsg struct{}

// WatchFileCmd returns a command that waits for file changes and sends FileChangedMsg
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func counterTickCmd(i int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return counterTickMsg{index: i}
	})
}

func rainTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return rainTickMsg{}
	})
}

// Model is the terminal page.
type Model struct {
	theme   Theme
	keys    keyMap
	help    help.Model
	cfg     config.Config
	content site.Content
	palette render.Palette

	width, height int
	tab           tab
	mouse         bool
	surfaceFocus  bool // the circuit pane holds keyboard focus

	disp *interact.Dispatcher
	loop *render.Loop
	pane *circuitPane

	hero     *site.Latch
	counters []*site.Counter
	rain     *site.Rain
	sections map[tab]*sectionView
	contact  *site.ContactForm

	watcher   *watcher.Watcher
	graphPath string

	status      string
	statusIsErr bool
}

// NewModel builds the page around g.
func NewModel(g *circuit.Graph, cfg config.Config) Model {
	r := lipgloss.DefaultRenderer()
	pal, err := cfg.Palette()
	if err != nil {
		debug.Log("ui: theme overrides ignored: %v", err)
		pal = render.DefaultPalette()
	}

	loop := render.NewLoop(cfg.FrameInterval(), cfg.Render.Continuous)
	m := Model{
		theme:    DefaultTheme(r),
		keys:     defaultKeyMap(),
		help:     help.New(),
		cfg:      cfg,
		content:  site.DefaultContent(),
		palette:  pal,
		mouse:    cfg.MouseEnabled(),
		loop:     loop,
		pane:     newCircuitPane(r, loop),
		hero:     site.NewLatch(site.DefaultThreshold),
		rain:     site.NewRain(time.Now().UnixNano()),
		sections: make(map[tab]*sectionView, len(tabSections)),
		contact:  site.NewContactForm(),
	}
	m.disp = interact.NewDispatcher(g, interact.WithOnChange(loop.Invalidate))
	if t, ok := tabByName(cfg.UI.DefaultTab); ok {
		m.tab = t
	}
	for _, st := range m.content.Stats {
		m.counters = append(m.counters, site.NewCounter(st.Value, site.DefaultCountDuration))
	}
	for t, s := range tabSections {
		m.sections[t] = newSectionView(s, sectionBlocks(m.content, s))
	}
	return m
}

// WithWatcher enables live reload of the graph file.
func (m Model) WithWatcher(w *watcher.Watcher) Model {
	m.watcher = w
	if w != nil {
		m.graphPath = w.Path()
	}
	return m
}

// WithContent replaces the page copy.
func (m Model) WithContent(c site.Content) Model {
	m.content = c
	m.counters = nil
	m.sections = make(map[tab]*sectionView, len(tabSections))
	for _, st := range c.Stats {
		m.counters = append(m.counters, site.NewCounter(st.Value, site.DefaultCountDuration))
	}
	for t, s := range tabSections {
		m.sections[t] = newSectionView(s, sectionBlocks(c, s))
	}
	return m
}

// Dispatcher exposes the interaction state, mainly for tests and the CLI.
func (m Model) Dispatcher() *interact.Dispatcher {
	return m.disp
}

// Close releases the dispatcher and stops the file watcher.
func (m Model) Close() {
	m.disp.Close()
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		frameCmd(m.loop.Interval()),
		rainTickCmd(site.DefaultRainInterval),
		m.contact.Form().Init(),
	}
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// huh.Form needs every message type for its internal field navigation.
	if m.tab == tabContact && !m.contact.Completed() && !m.contact.Aborted() && !m.isGlobal(msg) {
		f, cmd := m.contact.Form().Update(msg)
		if form, ok := f.(*huh.Form); ok {
			m.contact.SetForm(form)
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.relayout()

	case frameMsg:
		cmds = append(cmds, m.onFrame(), frameCmd(m.loop.Interval()))

	case counterTickMsg:
		if msg.index >= 0 && msg.index < len(m.counters) {
			c := m.counters[msg.index]
			if c.Tick() {
				cmds = append(cmds, counterTickCmd(msg.index, c.Interval()))
			}
		}

	case rainTickMsg:
		// Hidden tabs freeze the rain; the tick keeps running.
		if m.tab == tabCircuit {
			m.rain.Step()
		}
		cmds = append(cmds, rainTickCmd(site.DefaultRainInterval))

	case FileChangedMsg:
		m.reloadGraph()
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// isGlobal reports whether msg bypasses the contact form.
func (m Model) isGlobal(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg, frameMsg, counterTickMsg, rainTickMsg, FileChangedMsg:
		return true
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+left", "ctrl+right":
			return true
		}
	}
	return false
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
		return nil
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.tab + 1) % tabCount)
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.tab + tabCount - 1) % tabCount)
	}
	for i, b := range m.keys.Tabs {
		if key.Matches(msg, b) {
			return m.switchTab(tab(i))
		}
	}

	switch m.tab {
	case tabCircuit:
		m.handleCircuitKey(msg)
	case tabContact:
		if m.contact.Completed() || m.contact.Aborted() {
			if msg.String() == "r" {
				m.contact = site.NewContactForm()
				return m.contact.Form().Init()
			}
		}
	default:
		if v := m.sections[m.tab]; v != nil {
			if key.Matches(msg, m.keys.Top) {
				v.vp.GotoTop()
				v.refresh()
				return nil
			}
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(msg)
			v.refresh()
			return cmd
		}
	}
	return nil
}

func (m *Model) handleCircuitKey(msg tea.KeyMsg) {
	st := m.disp.State()
	switch {
	case key.Matches(msg, m.keys.Focus):
		if m.surfaceFocus {
			m.blur()
		} else {
			m.surfaceFocus = true
			m.disp.Dispatch(interact.FocusGained{})
		}
	case key.Matches(msg, m.keys.Blur):
		if st.Selected != nil {
			m.disp.Dispatch(interact.Dismissed{})
		} else if m.surfaceFocus {
			m.blur()
		}
	case key.Matches(msg, m.keys.Copy):
		if st.Selected != nil {
			m.copyDetail(*st.Selected)
		}
	case key.Matches(msg, m.keys.Activate):
		if !m.surfaceFocus {
			return
		}
		k := interact.KeyEnter
		if msg.String() == " " {
			k = interact.KeySpace
		}
		m.dispatch(interact.KeyDown{Key: k})
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		if !m.surfaceFocus {
			// The first arrow moves focus into the pane.
			m.surfaceFocus = true
			m.disp.Dispatch(interact.FocusGained{})
			return
		}
		m.dispatch(interact.KeyDown{Key: m.arrowFor(msg)})
	}
}

func (m Model) arrowFor(msg tea.KeyMsg) interact.Key {
	switch {
	case key.Matches(msg, m.keys.Up):
		return interact.KeyArrowUp
	case key.Matches(msg, m.keys.Down):
		return interact.KeyArrowDown
	case key.Matches(msg, m.keys.Left):
		return interact.KeyArrowLeft
	}
	return interact.KeyArrowRight
}

func (m *Model) blur() {
	m.surfaceFocus = false
	m.disp.Dispatch(interact.FocusLost{})
}

// dispatch forwards msg and reports activations in the status line.
func (m *Model) dispatch(msg interact.Msg) {
	fx := m.disp.Dispatch(msg)
	if fx.Activate != nil {
		m.setStatus(fmt.Sprintf("opened %s", fx.Activate.Label), false)
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.tab != tabCircuit {
		if v := m.sections[m.tab]; v != nil && tea.MouseEvent(msg).IsWheel() {
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(msg)
			v.refresh()
			return cmd
		}
		return nil
	}
	if !m.mouse || m.disp.State().Selected != nil {
		return nil
	}
	px, py, ok := m.pane.pointer(msg.X, msg.Y)
	if !ok {
		if m.disp.State().HasPointer {
			m.disp.Dispatch(interact.PointerLeave{})
		}
		return nil
	}
	if tea.MouseEvent(msg).IsWheel() {
		return nil
	}
	switch msg.Action {
	case tea.MouseActionMotion:
		m.disp.Dispatch(interact.PointerMove{X: px, Y: py})
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.disp.Dispatch(interact.PointerDown{X: px, Y: py})
		}
	case tea.MouseActionRelease:
		// Terminals without motion reporting only send press and release.
		m.disp.Dispatch(interact.PointerMove{X: px, Y: py})
		m.dispatch(interact.PointerUp{})
	}
	return nil
}

func (m *Model) switchTab(t tab) tea.Cmd {
	if t == m.tab {
		return nil
	}
	if m.tab == tabCircuit && m.disp.State().HasPointer {
		m.disp.Dispatch(interact.PointerLeave{})
	}
	m.tab = t
	m.relayout()
	return nil
}

// onFrame draws the circuit if due and starts the counters once the hero is
// on screen.
func (m *Model) onFrame() tea.Cmd {
	if m.tab != tabCircuit || m.width == 0 {
		return nil
	}
	var cmds []tea.Cmd
	if m.hero.Observe(1) {
		for i, c := range m.counters {
			if c.Start() {
				cmds = append(cmds, counterTickCmd(i, c.Interval()))
			}
		}
	}
	if !m.pane.broken() {
		if err := m.pane.step(m.disp.Graph(), m.disp.State(), m.palette); err != nil {
			debug.Log("ui: circuit render disabled: %v", err)
			m.setStatus("circuit unavailable: "+err.Error(), true)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) reloadGraph() {
	if m.graphPath == "" {
		return
	}
	g, err := circuit.LoadGraph(m.graphPath)
	if err != nil {
		debug.Log("ui: reload %s: %v", m.graphPath, err)
		m.setStatus("reload failed: "+err.Error(), true)
		return
	}
	m.disp.SetGraph(g)
	m.relayout()
	m.setStatus(fmt.Sprintf("reloaded %d nodes", g.Len()), false)
}

func (m *Model) copyDetail(n circuit.Node) {
	if err := writeClipboard(n.Detail); err != nil {
		m.setStatus("clipboard: "+err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("copied %s detail", n.Label), false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusIsErr = s, isErr
}

func (m Model) helpHeight() int {
	return lipgloss.Height(m.help.View(m.keys))
}

// bodyHeight is what remains below the tab bar and above the status lines.
func (m Model) bodyHeight() int {
	return max(m.height-tabBarHeight-statusHeight-m.helpHeight(), 1)
}

// relayout resizes whichever pane the current tab shows.
func (m *Model) relayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	body := m.bodyHeight()
	switch m.tab {
	case tabCircuit:
		rows := max(body-heroHeight, 0)
		s := m.pane.layout(m.disp.Graph(), tabBarHeight+heroHeight, m.width, rows)
		m.disp.Dispatch(interact.Resized{Width: s.Width, Height: s.Height, PixelRatio: s.PixelRatio})
	case tabContact:
	default:
		if v := m.sections[m.tab]; v != nil {
			v.resize(m.width, body)
		}
	}
}
