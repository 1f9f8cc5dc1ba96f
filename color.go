package inkwell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// ColorType distinguishes between color representations.
type ColorType uint8

const (
	// ColorDefault represents the terminal's default color (no color set).
	ColorDefault ColorType = iota
	// ColorANSI represents an ANSI 256 palette color (0-255).
	ColorANSI
	// ColorRGB represents a true color (24-bit RGB).
	ColorRGB
)

// Color represents a terminal color with support for default, ANSI 256, and true color.
// Zero value represents the terminal default color.
type Color struct {
	typ ColorType
	// For ANSI: r holds the palette index (0-255)
	// For RGB: r, g, b hold the color components
	r, g, b uint8
}

// DefaultColor returns a Color representing the terminal's default color.
func DefaultColor() Color {
	return Color{typ: ColorDefault}
}

// ANSIColor returns a Color from the ANSI 256 palette.
func ANSIColor(index uint8) Color {
	return Color{typ: ColorANSI, r: index}
}

// RGBColor returns a true color (24-bit RGB) Color.
func RGBColor(r, g, b uint8) Color {
	return Color{typ: ColorRGB, r: r, g: g, b: b}
}

// HexColor parses "#RRGGBB" or the short "#RGB" form. The leading "#" is
// optional.
func HexColor(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("hex color %q: want 3 or 6 digits", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("hex color %q: %w", hex, err)
	}
	return RGBColor(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// Type returns the ColorType of this color.
func (c Color) Type() ColorType {
	return c.typ
}

// IsDefault returns true if this is the terminal's default color.
func (c Color) IsDefault() bool {
	return c.typ == ColorDefault
}

// ANSI returns the ANSI palette index.
// Panics if the color is not an ANSI color.
func (c Color) ANSI() uint8 {
	if c.typ != ColorANSI {
		panic("Color.ANSI() called on non-ANSI color")
	}
	return c.r
}

// RGB returns the red, green, and blue components.
// Panics if the color is not an RGB color.
func (c Color) RGB() (r, g, b uint8) {
	if c.typ != ColorRGB {
		panic("Color.RGB() called on non-RGB color")
	}
	return c.r, c.g, c.b
}

// Equal returns true if both colors are identical.
func (c Color) Equal(other Color) bool {
	if c.typ != other.typ {
		return false
	}
	switch c.typ {
	case ColorDefault:
		return true
	case ColorANSI:
		return c.r == other.r
	case ColorRGB:
		return c.r == other.r && c.g == other.g && c.b == other.b
	}
	return false
}

// Standard ANSI colors (basic 8 colors).
var (
	Black   = ANSIColor(0)
	Red     = ANSIColor(1)
	Green   = ANSIColor(2)
	Yellow  = ANSIColor(3)
	Blue    = ANSIColor(4)
	Magenta = ANSIColor(5)
	Cyan    = ANSIColor(6)
	White   = ANSIColor(7)
)

// Bright ANSI colors (high-intensity variants).
var (
	BrightBlack   = ANSIColor(8)
	BrightRed     = ANSIColor(9)
	BrightGreen   = ANSIColor(10)
	BrightYellow  = ANSIColor(11)
	BrightBlue    = ANSIColor(12)
	BrightMagenta = ANSIColor(13)
	BrightCyan    = ANSIColor(14)
	BrightWhite   = ANSIColor(15)
)

// namedColors maps color names to the 16-color ANSI palette.
var namedColors = map[string]uint8{
	"black":         0,
	"red":           1,
	"green":         2,
	"yellow":        3,
	"blue":          4,
	"magenta":       5,
	"cyan":          6,
	"white":         7,
	"gray":          8,
	"grey":          8,
	"blackBright":   8,
	"redBright":     9,
	"greenBright":   10,
	"yellowBright":  11,
	"blueBright":    12,
	"magentaBright": 13,
	"cyanBright":    14,
	"whiteBright":   15,
}

// ParseColor parses a color name ("red", "cyanBright"), a hex string
// ("#f80", "#ff8800"), "rgb(r, g, b)" or "ansi256(n)".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Color{}, errors.New("empty color")
	case strings.HasPrefix(s, "#"):
		return HexColor(s)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts, err := parseColorArgs(s[len("rgb("):len(s)-1], 3)
		if err != nil {
			return Color{}, fmt.Errorf("invalid rgb color %q: %w", s, err)
		}
		return RGBColor(parts[0], parts[1], parts[2]), nil
	case strings.HasPrefix(s, "ansi256(") && strings.HasSuffix(s, ")"):
		parts, err := parseColorArgs(s[len("ansi256("):len(s)-1], 1)
		if err != nil {
			return Color{}, fmt.Errorf("invalid ansi256 color %q: %w", s, err)
		}
		return ANSIColor(parts[0]), nil
	}
	if idx, ok := namedColors[s]; ok {
		return ANSIColor(idx), nil
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}

func parseColorArgs(s string, n int) ([]uint8, error) {
	fields := strings.Split(s, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]uint8, n)
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
		if err != nil {
			return nil, err
		}
		out[i] = uint8(v)
	}
	return out, nil
}

// termenv converts c to a termenv color, or nil for the default color.
func (c Color) termenv() termenv.Color {
	switch c.typ {
	case ColorANSI:
		if c.r < 16 {
			return termenv.ANSIColor(c.r)
		}
		return termenv.ANSI256Color(c.r)
	case ColorRGB:
		return termenv.RGBColor(fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b))
	default:
		return nil
	}
}

// Sequence returns the SGR parameters for c under the given profile, or ""
// when the color is default or the profile cannot express it. Lower
// profiles are downsampled through termenv.
func (c Color) Sequence(p termenv.Profile, bg bool) string {
	if c.IsDefault() || p == termenv.Ascii {
		return ""
	}
	if p == termenv.TrueColor {
		return c.sgr(bg)
	}
	return p.Convert(c.termenv()).Sequence(bg)
}

// sgr encodes c without any profile conversion.
func (c Color) sgr(bg bool) string {
	// Determine color code base: 38 for foreground, 48 for background
	base := 38
	if bg {
		base = 48
	}

	switch c.typ {
	case ColorANSI:
		idx := int(c.r)
		switch {
		case idx < 8:
			return strconv.Itoa(base - 8 + idx)
		case idx < 16:
			return strconv.Itoa(base + 52 + idx - 8)
		default:
			return fmt.Sprintf("%d;5;%d", base, idx)
		}
	case ColorRGB:
		return fmt.Sprintf("%d;2;%d;%d;%d", base, c.r, c.g, c.b)
	}
	return ""
}
