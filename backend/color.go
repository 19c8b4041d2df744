package backend

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// palette colours series that do not name one.
var palette = []string{
	"steelblue",
	"tomato",
	"seagreen",
	"darkorange",
	"mediumpurple",
	"goldenrod",
	"teal",
	"crimson",
	"slategray",
	"olivedrab",
}

// ParseColor parses an SVG colour name or a #rrggbb / #rrggbbaa hex value.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		b, err := hex.DecodeString(s[1:])
		if err != nil || (len(b) != 3 && len(b) != 4) {
			return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
		}
		c := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 255}
		if len(b) == 4 {
			c.A = b[3]
		}
		return c, nil
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("unknown colour %q", s)
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

func paletteColor(i int) color.NRGBA {
	c := colornames.Map[palette[i%len(palette)]]
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
