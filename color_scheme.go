package termline

import (
	"fmt"
	"strings"
)

// ColorScheme selects colors for the two places the engine may emit ANSI
// color without disturbing its cursor math: candidate listings printed
// below the prompt, and notices such as the ^C echo. The engine default is
// no scheme at all, which keeps output byte-identical to the plain
// protocol; pass a scheme with WithColorScheme to opt in.
type ColorScheme struct {
	Name    string `json:"name"`
	Listing Color  `json:"listing"`
	Notice  Color  `json:"notice"`
}

// Color represents an RGB color with optional bold formatting.
type Color struct {
	R    uint8 `json:"r"`
	G    uint8 `json:"g"`
	B    uint8 `json:"b"`
	Bold bool  `json:"bold"`
}

// ThemeDefault uses soft gray listings and a bold red notice.
var ThemeDefault = &ColorScheme{
	Name:    "default",
	Listing: Color{R: 200, G: 200, B: 200},
	Notice:  Color{R: 255, G: 85, B: 85, Bold: true},
}

// ThemeSolarizedDark matches the Solarized Dark palette.
var ThemeSolarizedDark = &ColorScheme{
	Name:    "Solarized Dark",
	Listing: Color{R: 131, G: 148, B: 150},
	Notice:  Color{R: 220, G: 50, B: 47, Bold: true},
}

// ThemeAccessible is a colorblind-safe scheme with high contrast.
var ThemeAccessible = &ColorScheme{
	Name:    "Accessible",
	Listing: Color{R: 255, G: 255, B: 255},
	Notice:  Color{R: 230, G: 159, B: 0, Bold: true},
}

// ToANSI converts a Color to an ANSI escape sequence.
func (c Color) ToANSI() string {
	var codes []string
	if c.Bold {
		codes = append(codes, "1")
	}
	codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B))
	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
