package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/kairo/pkg/debug"
	"github.com/vanderheijden86/kairo/pkg/site"
)

// block is one card of a section. It stays blank until its latch trips, the
// terminal version of a scroll-triggered fade-in.
type block struct {
	markdown string
	rendered string
	lines    int
	latch    *site.Latch
}

// sectionView is a scrollable, glamour-rendered page section.
type sectionView struct {
	section site.Section
	blocks  []*block
	vp      viewport.Model
	width   int
}

func newSectionView(s site.Section, markdown []string) *sectionView {
	v := &sectionView{section: s, vp: viewport.New(0, 0)}
	for _, md := range markdown {
		v.blocks = append(v.blocks, &block{markdown: md, latch: site.NewLatch(site.DefaultThreshold)})
	}
	return v
}

// sectionBlocks splits a section's content into cards.
func sectionBlocks(c site.Content, s site.Section) []string {
	title, num := site.Titles(s)
	head := fmt.Sprintf("# %s `%s`\n", title, num)
	var out []string
	switch s {
	case site.SectionServices:
		out = append(out, head)
		for _, sv := range c.Services {
			out = append(out, fmt.Sprintf("## %s %s\n\n%s\n", sv.Icon, sv.Title, sv.Description))
		}
	case site.SectionPortfolio:
		out = append(out, head)
		for _, p := range c.Projects {
			tags := make([]string, len(p.Tags))
			for i, t := range p.Tags {
				tags[i] = "`" + t + "`"
			}
			out = append(out, fmt.Sprintf("## %s\n\n%s\n\n%s\n", p.Title, p.Description, strings.Join(tags, " ")))
		}
	default:
		out = append(out, c.Markdown(s))
	}
	return out
}

// resize re-renders every block for the new width.
func (v *sectionView) resize(width, height int) {
	v.vp.Width, v.vp.Height = width, max(height, 1)
	if width == v.width {
		v.refresh()
		return
	}
	v.width = width

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	for _, b := range v.blocks {
		out := b.markdown
		if err == nil {
			if rendered, rerr := r.Render(b.markdown); rerr == nil {
				out = strings.TrimRight(rendered, "\n ")
			} else {
				debug.Log("ui: glamour render %s: %v", v.section, rerr)
			}
		}
		b.rendered = out
		b.lines = strings.Count(out, "\n") + 1
	}
	v.refresh()
}

// refresh trips latches for blocks now in view and rebuilds the content.
func (v *sectionView) refresh() {
	top := 0
	var parts []string
	for _, b := range v.blocks {
		b.latch.Observe(site.VisibleRatio(top, b.lines, v.vp.YOffset, v.vp.Height))
		if b.latch.Visible() {
			parts = append(parts, b.rendered)
		} else {
			parts = append(parts, strings.Repeat("\n", b.lines-1))
		}
		top += b.lines
	}
	off := v.vp.YOffset
	v.vp.SetContent(strings.Join(parts, "\n"))
	v.vp.SetYOffset(off)
}

// revealed counts blocks whose latch has tripped.
func (v *sectionView) revealed() int {
	n := 0
	for _, b := range v.blocks {
		if b.latch.Visible() {
			n++
		}
	}
	return n
}
