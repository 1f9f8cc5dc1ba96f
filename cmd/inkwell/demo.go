package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	inkwell "github.com/grindlemire/go-inkwell"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a live demo",
	Long: `Demo shows a static log that grows above a live spinner and a
focusable list. Tab and Shift+Tab move focus, Enter logs the focused item,
Escape clears focus, q or Ctrl+C quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := inkwell.ParseProfile(cfg.Color, os.Stdout)
		if err != nil {
			return err
		}

		var (
			in  io.Reader = os.Stdin
			out io.Writer = cmd.OutOrStdout()
		)
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			state, err := term.MakeRaw(fd)
			if err != nil {
				return fmt.Errorf("entering raw mode: %w", err)
			}
			defer func() { _ = term.Restore(fd, state) }()
			out = crlfWriter{out}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runDemo(ctx, demoOptions{
			in:       in,
			out:      out,
			columns:  cfg.columns(),
			profile:  profile,
			logLines: 5,
			tick:     400 * time.Millisecond,
		})
	},
}

type demoOptions struct {
	in       io.Reader
	out      io.Writer
	columns  int
	profile  termenv.Profile
	logLines int
	tick     time.Duration
}

var demoItems = []string{"one", "two", "three"}

// demo holds the node ids the handlers restyle.
type demo struct {
	s        *inkwell.Session
	static   inkwell.NodeID
	progress inkwell.NodeID
	items    map[string]inkwell.NodeID
	logged   int
}

func runDemo(ctx context.Context, opts demoOptions) error {
	tw := inkwell.NewTerminalWriter(opts.out)
	r, err := inkwell.NewRenderer(
		inkwell.WithColumns(opts.columns),
		inkwell.WithColorProfile(opts.profile),
		inkwell.WithFrameSink(tw),
	)
	if err != nil {
		return err
	}
	s, err := inkwell.NewSession(r, inkwell.WithInput(opts.in))
	if err != nil {
		return err
	}

	d := &demo{s: s, items: make(map[string]inkwell.NodeID)}
	if err := d.build(r.Tree, opts); err != nil {
		return err
	}

	runErr := s.Run(ctx)
	if err := tw.Done(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func (d *demo) build(t *inkwell.Tree, opts demoOptions) error {
	col := inkwell.StyleRecord{FlexDirection: inkwell.Set(inkwell.FlexColumn)}

	root, err := box(t, t.Root(), col)
	if err != nil {
		return err
	}
	if d.static, err = t.Create(inkwell.KindBox, map[string]any{inkwell.AttrStatic: true}); err != nil {
		return err
	}
	if err := t.AppendChild(root, d.static); err != nil {
		return err
	}

	status, err := box(t, root, inkwell.StyleRecord{ColumnGap: inkwell.Set(1)})
	if err != nil {
		return err
	}
	spin, err := text(t, status, "", inkwell.StyleRecord{Color: inkwell.Set(inkwell.ANSIColor(6))})
	if err != nil {
		return err
	}
	if _, err := inkwell.StartSpinner(d.s, spin); err != nil {
		return err
	}
	if _, err := text(t, status, "Working", inkwell.StyleRecord{}); err != nil {
		return err
	}
	if d.progress, err = text(t, status, progressLabel(0, opts.logLines), inkwell.StyleRecord{DimColor: inkwell.Set(true)}); err != nil {
		return err
	}
	if err := d.s.Every(d.progress, opts.tick, func(t *inkwell.Tree) error {
		return d.tick(t, opts.logLines)
	}); err != nil {
		return err
	}

	list, err := box(t, root, inkwell.StyleRecord{
		FlexDirection: inkwell.Set(inkwell.FlexColumn),
		BorderStyle:   inkwell.Set("round"),
		PaddingX:      inkwell.Set(1),
	})
	if err != nil {
		return err
	}
	if _, err := text(t, list, "Tab to move, Enter to log, q to quit", inkwell.StyleRecord{Bold: inkwell.Set(true)}); err != nil {
		return err
	}

	focus := d.s.Focus()
	for _, name := range demoItems {
		id, err := text(t, list, name, inkwell.StyleRecord{})
		if err != nil {
			return err
		}
		d.items[name] = id
		focus.Register(name, false)
		name := name
		d.s.Input().Subscribe(name, func(e inkwell.KeyEvent) {
			if e.Key == inkwell.KeyEnter {
				_ = d.log(t, inkwell.StyleRecord{Color: inkwell.Set(inkwell.ANSIColor(4))}, "selected "+name)
			}
		})
	}
	focus.OnChange(func(string, bool) { d.restyle(t) })
	d.restyle(t)

	d.s.Input().Subscribe("", func(e inkwell.KeyEvent) {
		if e.Key == inkwell.KeyRune && e.Mod == inkwell.ModNone && strings.Contains(e.Input, "q") {
			d.s.Stop()
		}
	})
	return nil
}

// tick appends one log line. Once all lines are out the progress node is
// removed, which also stops this timer.
func (d *demo) tick(t *inkwell.Tree, total int) error {
	if !t.Exists(d.progress) {
		return nil
	}
	if d.logged >= total {
		return t.RemoveChild(t.Parent(d.progress), d.progress)
	}
	if err := d.log(t, inkwell.StyleRecord{Color: inkwell.Set(inkwell.ANSIColor(2))}, fmt.Sprintf("✔ step %d done", d.logged+1)); err != nil {
		return err
	}
	d.logged++
	return t.SetText(d.progress, progressLabel(d.logged, total))
}

func (d *demo) log(t *inkwell.Tree, style inkwell.StyleRecord, line string) error {
	_, err := text(t, d.static, line, style)
	return err
}

func (d *demo) restyle(t *inkwell.Tree) {
	active, ok := d.s.Focus().ActiveID()
	for _, name := range demoItems {
		id := d.items[name]
		if ok && name == active {
			_ = t.SetText(id, "> "+name)
			_ = t.SetStyle(id, inkwell.StyleRecord{Color: inkwell.Set(inkwell.ANSIColor(5)), Bold: inkwell.Set(true)})
			continue
		}
		_ = t.SetText(id, "  "+name)
		_ = t.SetStyle(id, inkwell.StyleRecord{Color: inkwell.Unset[inkwell.Color](), Bold: inkwell.Unset[bool]()})
	}
}

func progressLabel(done, total int) string {
	return fmt.Sprintf("(%d/%d)", done, total)
}

func box(t *inkwell.Tree, parent inkwell.NodeID, style inkwell.StyleRecord) (inkwell.NodeID, error) {
	id, err := t.Create(inkwell.KindBox, nil)
	if err != nil {
		return inkwell.NoNode, err
	}
	if err := t.SetStyle(id, style); err != nil {
		return inkwell.NoNode, err
	}
	return id, t.AppendChild(parent, id)
}

func text(t *inkwell.Tree, parent inkwell.NodeID, content string, style inkwell.StyleRecord) (inkwell.NodeID, error) {
	id, err := t.Create(inkwell.KindText, nil)
	if err != nil {
		return inkwell.NoNode, err
	}
	if err := t.SetStyle(id, style); err != nil {
		return inkwell.NoNode, err
	}
	if err := t.SetText(id, content); err != nil {
		return inkwell.NoNode, err
	}
	return id, t.AppendChild(parent, id)
}

// crlfWriter restores carriage returns that raw mode stops adding.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(c.w, strings.ReplaceAll(string(p), "\n", "\r\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}
