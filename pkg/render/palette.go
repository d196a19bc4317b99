// Package render draws the circuit graph.
//
// BuildScene turns (graph, interaction state) into a display list; Paint
// replays a display list onto any Canvas. Three canvases exist: a gg raster
// for PNG, an svgo writer for SVG, and a cell grid for terminals.
package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a non-premultiplied RGBA color that serializes as #rrggbbaa.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// WithAlpha returns c with alpha a in [0,1].
func (c Color) WithAlpha(a float64) Color {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}

// Hex returns #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Opacity returns alpha in [0,1].
func (c Color) Opacity() float64 {
	return float64(c.A) / 255
}

// Over composites c onto an opaque background.
func (c Color) Over(bg Color) Color {
	a := c.Opacity()
	mix := func(f, b uint8) uint8 {
		return uint8(float64(f)*a + float64(b)*(1-a) + 0.5)
	}
	return Color{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B), A: 0xff}
}

// MarshalText encodes the color as #rrggbbaa.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)), nil
}

// UnmarshalText accepts #rgb, #rrggbb or #rrggbbaa.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseHex parses #rgb, #rrggbb or #rrggbbaa (the # is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Palette holds every color and size the circuit view uses.
type Palette struct {
	Background Color

	Edge      Color
	EdgeWidth float64

	NodeFill    Color
	NodeStroke  Color
	StrokeWidth float64

	HoverFill   Color
	HoverStroke Color
	Glow        Color
	GlowRadius  float64

	FocusRing      Color
	FocusRingWidth float64
	FocusRingGap   float64

	Label       Color
	LabelActive Color
	LabelSize   float64
	CoreSize    float64
}

// Named colors of the page.
var (
	TrueBlack    = Color{0x00, 0x00, 0x00, 0xff}
	DarkGray     = Color{0x1a, 0x1a, 0x1a, 0xff}
	ElectricBlue = Color{0x00, 0x66, 0xff, 0xff}
	NeonGreen    = Color{0x00, 0xff, 0x66, 0xff}
	OffWhite     = Color{0xf0, 0xf0, 0xf0, 0xff}
)

// DefaultPalette returns the electric-blue on true-black look.
func DefaultPalette() Palette {
	return Palette{
		Background: TrueBlack,

		Edge:      ElectricBlue.WithAlpha(0.2),
		EdgeWidth: 1,

		NodeFill:    DarkGray,
		NodeStroke:  ElectricBlue.WithAlpha(0.5),
		StrokeWidth: 1.5,

		HoverFill:   ElectricBlue,
		HoverStroke: NeonGreen,
		Glow:        ElectricBlue,
		GlowRadius:  20,

		FocusRing:      NeonGreen,
		FocusRingWidth: 2,
		FocusRingGap:   4,

		Label:       OffWhite.WithAlpha(0.7),
		LabelActive: OffWhite,
		LabelSize:   12,
		CoreSize:    16,
	}
}

// Overrides replaces palette colors by name. Keys are the snake_case field
// names used in config files: background, edge, node_fill, node_stroke,
// hover_fill, hover_stroke, glow, focus_ring, label, label_active.
func (p Palette) Overrides(hex map[string]string) (Palette, error) {
	for name, value := range hex {
		c, err := ParseHex(value)
		if err != nil {
			return p, fmt.Errorf("theme %s: %w", name, err)
		}
		switch name {
		case "background":
			p.Background = c
		case "edge":
			p.Edge = c
		case "node_fill":
			p.NodeFill = c
		case "node_stroke":
			p.NodeStroke = c
		case "hover_fill":
			p.HoverFill = c
		case "hover_stroke":
			p.HoverStroke = c
		case "glow":
			p.Glow = c
		case "focus_ring":
			p.FocusRing = c
		case "label":
			p.Label = c
		case "label_active":
			p.LabelActive = c
		default:
			return p, fmt.Errorf("unknown theme color %q", name)
		}
	}
	return p, nil
}
