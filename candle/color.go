package candle

import (
	"fmt"
	"strings"
)

// Color is one of the four candle variants.
type Color int

const (
	Yellow Color = iota
	Red
	Purple
	Blue
)

// Colors lists every variant in sheet-row order.
var Colors = []Color{Yellow, Red, Purple, Blue}

var colorNames = [...]string{"yellow", "red", "purple", "blue"}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("color(%d)", int(c))
	}
	return colorNames[c]
}

// Valid reports whether c is a known variant.
func (c Color) Valid() bool {
	return c >= Yellow && c <= Blue
}

// ParseColor accepts a variant name, case-insensitively.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return Yellow, fmt.Errorf("candle: unknown color %q", s)
}

func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("candle: invalid color %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
