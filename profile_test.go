package inkwell

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFromEnv(t *testing.T) {
	type tc struct {
		env  map[string]string
		base termenv.Profile
		want termenv.Profile
	}

	tests := map[string]tc{
		"dumb terminal":        {env: map[string]string{"TERM": "dumb"}, base: termenv.TrueColor, want: termenv.Ascii},
		"no color base wins":   {env: map[string]string{"COLORTERM": "truecolor"}, base: termenv.Ascii, want: termenv.Ascii},
		"colorterm truecolor":  {env: map[string]string{"COLORTERM": "truecolor"}, base: termenv.ANSI, want: termenv.TrueColor},
		"colorterm 24bit":      {env: map[string]string{"COLORTERM": "24BIT"}, base: termenv.ANSI, want: termenv.TrueColor},
		"windows terminal":     {env: map[string]string{"WT_SESSION": "1"}, base: termenv.ANSI, want: termenv.TrueColor},
		"kitty":                {env: map[string]string{"KITTY_WINDOW_ID": "3"}, base: termenv.ANSI, want: termenv.TrueColor},
		"term 256color":        {env: map[string]string{"TERM": "xterm-256color"}, base: termenv.ANSI, want: termenv.ANSI256},
		"256color never downs": {env: map[string]string{"TERM": "xterm-256color"}, base: termenv.TrueColor, want: termenv.TrueColor},
		"plain base kept":      {env: map[string]string{"TERM": "xterm"}, base: termenv.ANSI, want: termenv.ANSI},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			assert.Equal(t, tt.want, profileFromEnv(getenv, tt.base))
		})
	}
}

func TestParseProfile(t *testing.T) {
	type tc struct {
		name    string
		want    termenv.Profile
		wantErr bool
	}

	tests := map[string]tc{
		"truecolor": {name: "truecolor", want: termenv.TrueColor},
		"256":       {name: "256", want: termenv.ANSI256},
		"ansi":      {name: " ANSI ", want: termenv.ANSI},
		"none":      {name: "none", want: termenv.Ascii},
		"unknown":   {name: "sepia", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseProfile(tt.name, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			back, err := ParseProfile(ProfileName(got), nil)
			require.NoError(t, err)
			assert.Equal(t, got, back)
		})
	}
}

func TestDetectProfile_NonTerminal(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "")
	assert.Equal(t, termenv.Ascii, DetectProfile(&bytes.Buffer{}))
}
