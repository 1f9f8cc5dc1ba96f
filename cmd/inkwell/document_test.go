package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDocument(t *testing.T) {
	type tc struct {
		doc     string
		columns int
		want    string
		wantErr bool
	}

	tests := map[string]tc{
		"bordered box": {
			doc: `
nodes:
  - style: {borderStyle: round, width: 6}
    children:
      - text: Hi
`,
			columns: 20,
			want:    "╭────╮\n│Hi  │\n╰────╯",
		},
		"nested spans": {
			doc: `
nodes:
  - text: "Hello "
    style: {bold: true}
    children:
      - text: world
        style: {color: green}
`,
			columns: 20,
			want:    "Hello world",
		},
		"static above dynamic": {
			doc: `
nodes:
  - type: static
    children:
      - text: a
      - text: b
  - text: live
`,
			columns: 20,
			want:    "a\nb\nlive",
		},
		"document columns win": {
			doc: `
columns: 5
nodes:
  - text: "Hello World"
`,
			columns: 80,
			want:    "Hello\nWorld",
		},
		"unknown type": {
			doc:     "nodes:\n  - type: image\n",
			wantErr: true,
		},
		"text under box type": {
			doc:     "nodes:\n  - type: box\n    text: nope\n",
			wantErr: true,
		},
		"box inside text": {
			doc:     "nodes:\n  - text: x\n    children:\n      - type: box\n",
			wantErr: true,
		},
		"unknown field": {
			doc:     "nodes:\n  - colour: red\n",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := renderSource(tt.doc, tt.columns)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func renderSource(src string, columns int) (string, error) {
	doc, err := parseDocument([]byte(src))
	if err != nil {
		return "", err
	}
	return renderDocument(doc, columns, termenv.Ascii)
}

func TestParseDocument_Empty(t *testing.T) {
	doc, err := parseDocument(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Nodes)
}

func TestCollectDocuments(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	for _, p := range []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.yml"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(sub, "c.yaml"),
	} {
		require.NoError(t, os.WriteFile(p, []byte("nodes: []\n"), 0o644))
	}

	flat, err := collectDocuments([]string{dir})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yml")}, flat)

	deep, err := collectDocuments([]string{dir + "/..."})
	require.NoError(t, err)
	assert.Len(t, deep, 3)

	_, err = collectDocuments([]string{filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}
