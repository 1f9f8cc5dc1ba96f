package inkwell

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestColorConstructors(t *testing.T) {
	type tc struct {
		c    Color
		typ  ColorType
		want Color
	}

	tests := map[string]tc{
		"default":       {c: DefaultColor(), typ: ColorDefault, want: Color{}},
		"ansi":          {c: ANSIColor(200), typ: ColorANSI, want: ANSIColor(200)},
		"rgb":           {c: RGBColor(128, 64, 32), typ: ColorRGB, want: RGBColor(128, 64, 32)},
		"hex long":      {c: mustHex(t, "#80ff00"), typ: ColorRGB, want: RGBColor(0x80, 0xff, 0)},
		"hex short":     {c: mustHex(t, "#fa0"), typ: ColorRGB, want: RGBColor(0xff, 0xaa, 0)},
		"hex no prefix": {c: mustHex(t, "0a0B0c"), typ: ColorRGB, want: RGBColor(0x0a, 0x0b, 0x0c)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if tt.c.Type() != tt.typ {
				t.Errorf("Type() = %v, want %v", tt.c.Type(), tt.typ)
			}
			if tt.c.IsDefault() != (tt.typ == ColorDefault) {
				t.Errorf("IsDefault() = %v", tt.c.IsDefault())
			}
			if !tt.c.Equal(tt.want) {
				t.Errorf("got %+v, want %+v", tt.c, tt.want)
			}
		})
	}
}

func mustHex(t *testing.T, s string) Color {
	t.Helper()
	c, err := HexColor(s)
	if err != nil {
		t.Fatalf("HexColor(%q): %v", s, err)
	}
	return c
}

func TestHexColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#", "#ff", "#ffff", "#gg0000", "#12345z"} {
		if _, err := HexColor(in); err == nil {
			t.Errorf("HexColor(%q) succeeded, want error", in)
		}
	}
}

func TestColor_EqualAcrossTypes(t *testing.T) {
	if ANSIColor(1).Equal(RGBColor(1, 0, 0)) {
		t.Error("ANSI and RGB colors with the same first byte compared equal")
	}
	if !Red.Equal(ANSIColor(1)) {
		t.Error("Red != ANSIColor(1)")
	}
}

func TestParseColor(t *testing.T) {
	type tc struct {
		in      string
		want    Color
		wantErr bool
	}

	tests := map[string]tc{
		"named":            {in: "red", want: ANSIColor(1)},
		"named bright":     {in: "cyanBright", want: ANSIColor(14)},
		"gray alias":       {in: "grey", want: ANSIColor(8)},
		"hex long":         {in: "#ff8800", want: RGBColor(0xff, 0x88, 0x00)},
		"hex short":        {in: "#f80", want: RGBColor(0xff, 0x88, 0x00)},
		"rgb":              {in: "rgb(1, 2, 3)", want: RGBColor(1, 2, 3)},
		"ansi256":          {in: "ansi256(196)", want: ANSIColor(196)},
		"unknown name":     {in: "mauve", wantErr: true},
		"rgb out of range": {in: "rgb(1,2,300)", wantErr: true},
		"rgb too few":      {in: "rgb(1,2)", wantErr: true},
		"empty":            {in: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseColor(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColor_Sequence(t *testing.T) {
	type tc struct {
		c       Color
		profile termenv.Profile
		bg      bool
		want    string
	}

	tests := map[string]tc{
		"default color":       {c: DefaultColor(), profile: termenv.TrueColor, want: ""},
		"basic fg":            {c: Red, profile: termenv.TrueColor, want: "31"},
		"basic bg":            {c: Red, profile: termenv.TrueColor, bg: true, want: "41"},
		"bright fg":           {c: BrightGreen, profile: termenv.ANSI, want: "92"},
		"256 fg":              {c: ANSIColor(196), profile: termenv.ANSI256, want: "38;5;196"},
		"true color fg":       {c: RGBColor(1, 2, 3), profile: termenv.TrueColor, want: "38;2;1;2;3"},
		"ascii drops color":   {c: Red, profile: termenv.Ascii, want: ""},
		"rgb downsampled 256": {c: RGBColor(255, 0, 0), profile: termenv.ANSI256, want: "38;5;196"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.c.Sequence(tt.profile, tt.bg); got != tt.want {
				t.Errorf("Sequence() = %q, want %q", got, tt.want)
			}
		})
	}
}
