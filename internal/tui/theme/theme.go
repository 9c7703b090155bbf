// Package theme provides color themes for the TUI.
package theme

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds all colors for a TUI theme. Hex strings, "#rrggbb".
type Theme struct {
	Name        string
	Bg          string // base background
	BgHighlight string // selected rows, panels
	BgSelection string // cursor
	Fg          string // primary foreground
	FgMuted     string // completed items, hints
	Accent      string // title, tab underline, borders
	Overdue     string // overdue tasks
	DueToday    string // tasks due today
	Upcoming    string // future tasks
	Done        string // completed daily tasks, level-ups
	Warning     string // confirmations, destructive prompts
}

// builtins are the Catppuccin flavors the UI ships with.
var builtins = map[string]Theme{
	"mocha": {
		Name: "mocha",
		Bg:   "#1e1e2e", BgHighlight: "#313244", BgSelection: "#45475a",
		Fg: "#cdd6f4", FgMuted: "#7f849c",
		Accent: "#cba6f7", Overdue: "#f38ba8", DueToday: "#fab387",
		Upcoming: "#89b4fa", Done: "#a6e3a1", Warning: "#f9e2af",
	},
	"macchiato": {
		Name: "macchiato",
		Bg:   "#24273a", BgHighlight: "#363a4f", BgSelection: "#494d64",
		Fg: "#cad3f5", FgMuted: "#8087a2",
		Accent: "#c6a0f6", Overdue: "#ed8796", DueToday: "#f5a97f",
		Upcoming: "#8aadf4", Done: "#a6da95", Warning: "#eed49f",
	},
	"frappe": {
		Name: "frappe",
		Bg:   "#303446", BgHighlight: "#414559", BgSelection: "#51576d",
		Fg: "#c6d0f5", FgMuted: "#838ba7",
		Accent: "#ca9ee6", Overdue: "#e78284", DueToday: "#ef9f76",
		Upcoming: "#8caaee", Done: "#a6d189", Warning: "#e5c890",
	},
	"latte": {
		Name: "latte",
		Bg:   "#eff1f5", BgHighlight: "#ccd0da", BgSelection: "#bcc0cc",
		Fg: "#4c4f69", FgMuted: "#8c8fa1",
		Accent: "#8839ef", Overdue: "#d20f39", DueToday: "#fe640b",
		Upcoming: "#1e66f5", Done: "#40a02b", Warning: "#df8e1d",
	},
}

// Load returns the named theme, falling back to mocha for unknown names.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	t, ok := builtins[strings.ToLower(name)]
	if !ok {
		if fallback, ok := builtins["mocha"]; ok {
			return &fallback, nil
		}
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return &t, nil
}

// Available returns the theme names, sorted.
func Available() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsAvailable reports whether a theme name exists.
func IsAvailable(name string) bool {
	_, ok := builtins[strings.ToLower(name)]
	return ok
}

// IsLight reports whether the theme background is light.
func (t *Theme) IsLight() bool {
	return relativeLuminance(t.Bg) > 0.55
}

// Color converts a hex string to a lipgloss color.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// SubtleBg derives a row-highlight background from an accent color, blended
// towards the theme background so text stays readable.
func (t *Theme) SubtleBg(accent string) string {
	if t.IsLight() {
		return blendColors(accent, t.Bg, 0.80)
	}
	return blendColors(accent, t.Bg, 0.70)
}

// TextOn picks the foreground with the higher contrast against bg.
func (t *Theme) TextOn(bg string) string {
	if contrastRatio(bg, t.Fg) >= contrastRatio(bg, t.Bg) {
		return t.Fg
	}
	return t.Bg
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// blendColors mixes a towards b by ratio (0 keeps a, 1 yields b).
func blendColors(a, b string, ratio float64) string {
	ar, ag, ab2, okA := parseHexColor(a)
	br, bg, bb, okB := parseHexColor(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Max(0, math.Min(1, ratio))

	r := int(float64(ar)*(1-ratio) + float64(br)*ratio)
	g := int(float64(ag)*(1-ratio) + float64(bg)*ratio)
	bl := int(float64(ab2)*(1-ratio) + float64(bb)*ratio)
	return fmt.Sprintf("#%02x%02x%02x", r, g, bl)
}

func parseHexColor(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}
