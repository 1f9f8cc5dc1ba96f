package inkwell

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// DetectProfile picks the color profile for output written to w. It starts
// from termenv's environment detection (which honors NO_COLOR and non-TTY
// output) and upgrades it for terminals known to support more colors.
func DetectProfile(w io.Writer) termenv.Profile {
	return profileFromEnv(os.Getenv, termenv.NewOutput(w).EnvColorProfile())
}

// truecolorHints are variables set by terminal emulators known to support
// 24-bit color.
var truecolorHints = []string{
	"WT_SESSION",       // Windows Terminal
	"ITERM_SESSION_ID", // iTerm2
	"KITTY_WINDOW_ID",  // Kitty
	"KONSOLE_VERSION",  // Konsole
	"VTE_VERSION",      // GNOME Terminal, Tilix
}

func profileFromEnv(getenv func(string) string, base termenv.Profile) termenv.Profile {
	term := strings.ToLower(getenv("TERM"))
	if term == "dumb" || base == termenv.Ascii {
		return termenv.Ascii
	}

	colorterm := strings.ToLower(getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		return termenv.TrueColor
	}
	for _, key := range truecolorHints {
		if getenv(key) != "" {
			return termenv.TrueColor
		}
	}

	// Lower profile values carry more colors.
	switch {
	case strings.Contains(term, "truecolor"):
		return termenv.TrueColor
	case strings.Contains(term, "256color") && base > termenv.ANSI256:
		return termenv.ANSI256
	}
	return base
}

// ParseProfile maps a profile name to a termenv profile. "auto" and the
// empty string detect the profile for w.
func ParseProfile(name string, w io.Writer) (termenv.Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return DetectProfile(w), nil
	case "truecolor", "24bit":
		return termenv.TrueColor, nil
	case "256", "ansi256":
		return termenv.ANSI256, nil
	case "16", "ansi":
		return termenv.ANSI, nil
	case "none", "ascii", "no-color":
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, fmt.Errorf("unknown color profile %q", name)
	}
}

// ProfileName returns the canonical name of p accepted by ParseProfile.
func ProfileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}
