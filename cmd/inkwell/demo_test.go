package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDemo_InputQuits(t *testing.T) {
	var out bytes.Buffer
	err := runDemo(context.Background(), demoOptions{
		in:       strings.NewReader("\tq"),
		out:      &out,
		columns:  40,
		profile:  termenv.Ascii,
		logLines: 3,
		tick:     time.Hour,
	})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "> one")
	assert.Contains(t, got, "> two")
	assert.Contains(t, got, "Working")
	assert.True(t, strings.HasSuffix(got, ansi.ShowCursor))
}

func TestRunDemo_LogsEachStepOnce(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := runDemo(ctx, demoOptions{
		out:      &out,
		columns:  40,
		profile:  termenv.Ascii,
		logLines: 3,
		tick:     time.Millisecond,
	})
	require.NoError(t, err)

	got := out.String()
	for _, step := range []string{"step 1 done", "step 2 done", "step 3 done"} {
		assert.Equal(t, 1, strings.Count(got, step), step)
	}
	assert.NotContains(t, got, "step 4")
}

func TestCrlfWriter(t *testing.T) {
	var buf bytes.Buffer
	n, err := crlfWriter{&buf}.Write([]byte("a\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "a\r\nb\r\n", buf.String())
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("INKWELL_COLOR", "")
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodes:\n  - text: hello\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"render", "--columns", "20", "--color", "none", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "hello\n", out.String())
}

func TestVersionCommand(t *testing.T) {
	chdir(t, t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "inkwell version "+version+"\n", out.String())
}
