package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	inkwell "github.com/grindlemire/go-inkwell"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Document is a YAML description of a tree.
//
//	columns: 40
//	nodes:
//	  - style: {borderStyle: round, padding: 1}
//	    children:
//	      - text: "Hello "
//	        style: {bold: true}
//	        children:
//	          - text: world
//	            style: {color: green}
//	  - type: static
//	    children:
//	      - text: log line
type Document struct {
	Columns int       `yaml:"columns"`
	Nodes   []NodeDoc `yaml:"nodes"`
}

// NodeDoc describes one node. Type is box, text or static; when omitted it
// is text if Text is set and box otherwise. Children of a text node must be
// text nodes and render as nested styled spans.
type NodeDoc struct {
	Type     string         `yaml:"type"`
	Text     string         `yaml:"text"`
	Style    map[string]any `yaml:"style"`
	Children []NodeDoc      `yaml:"children"`
}

func (n NodeDoc) kind() string {
	if n.Type != "" {
		return strings.ToLower(n.Type)
	}
	if n.Text != "" {
		return "text"
	}
	return "box"
}

func parseDocument(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("parsing document: %w", err)
	}
	if doc.Columns < 0 {
		return Document{}, fmt.Errorf("columns must not be negative, got %d", doc.Columns)
	}
	return doc, nil
}

// buildNode creates n and its subtree under parent.
func buildNode(t *inkwell.Tree, parent inkwell.NodeID, n NodeDoc) error {
	var (
		id  inkwell.NodeID
		err error
	)
	switch n.kind() {
	case "box":
		id, err = t.Create(inkwell.KindBox, nil)
	case "static":
		id, err = t.Create(inkwell.KindBox, map[string]any{inkwell.AttrStatic: true})
	case "text":
		id, err = t.Create(inkwell.KindText, nil)
	default:
		return fmt.Errorf("unknown node type %q", n.Type)
	}
	if err != nil {
		return err
	}

	if len(n.Style) > 0 {
		if err := t.SetStyle(id, inkwell.StyleFromMap(n.Style)); err != nil {
			return err
		}
	}
	if n.Text != "" {
		if n.kind() != "text" {
			return fmt.Errorf("%s node cannot hold text %q", n.kind(), n.Text)
		}
		leaf, err := t.CreateText(n.Text)
		if err != nil {
			return err
		}
		if err := t.AppendChild(id, leaf); err != nil {
			return err
		}
	}
	if err := t.AppendChild(parent, id); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := buildNode(t, id, c); err != nil {
			return err
		}
	}
	return nil
}

// renderDocument lays out doc once and returns the static output followed
// by the dynamic frame.
func renderDocument(doc Document, columns int, profile termenv.Profile) (string, error) {
	if doc.Columns > 0 {
		columns = doc.Columns
	}
	r, err := inkwell.NewRenderer(inkwell.WithColumns(columns), inkwell.WithColorProfile(profile))
	if err != nil {
		return "", err
	}
	defer r.Unmount()

	for _, n := range doc.Nodes {
		if err := buildNode(r.Tree, r.Root(), n); err != nil {
			return "", err
		}
	}

	res, err := r.Commit()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if res.Static != nil {
		b.WriteString(res.Static.Content)
		b.WriteByte('\n')
	}
	b.WriteString(res.Dynamic.Content)
	return b.String(), nil
}
