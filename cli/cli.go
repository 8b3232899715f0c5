// Package cli provides line-oriented terminal I/O for wayfarer: plain
// prompts, wrapped output and scripted playthroughs.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/wayfarer/engine"
	"github.com/nathoo/wayfarer/meta"
	"github.com/nathoo/wayfarer/store"
)

// DefaultWidth is the wrap width when none is set.
const DefaultWidth = 80

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Store     *store.Store
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)
	Width     int  // wrap width; 0 means DefaultWidth, negative disables wrapping
}

// New creates a CLI wired to the given engine and store.
func New(eng *engine.Engine, st *store.Store) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
		Store:  st,
		Width:  DefaultWidth,
	}
}

// Run starts the game loop. It shows the intro, describes the starting
// room, then loops: prompt, input, dispatch, output. It returns when the
// input ends, the player quits or ctx is cancelled.
func (c *CLI) Run(ctx context.Context) error {
	cmds := &meta.Commands{Engine: c.Engine, Store: c.Store, Trace: c.Trace}

	w := c.Engine.World
	if w.Title != "" {
		c.printLine(w.Title)
		c.printLine("")
	}
	if w.Intro != "" {
		c.printLine(w.Intro)
		c.printLine("")
	}
	c.printLine(c.Engine.Look())

	scanner := bufio.NewScanner(c.In)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.print("\n> ")
		if !scanner.Scan() {
			c.printLine("")
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if meta.Is(input) {
			reply := cmds.Run(ctx, input)
			for _, line := range reply.Lines {
				c.printLine(line)
			}
			if reply.Quit {
				return nil
			}
			continue
		}

		if cmds.Trace {
			for _, line := range meta.TraceLines(input) {
				c.printLine(line)
			}
		}

		result := c.Engine.Step(input)
		c.printLine(strings.Join(result.Output, "\n\n"))
		if cmds.Trace {
			c.printLine(meta.TraceResult(c.Engine, result))
		}
	}
}

// wrap breaks text at word boundaries to the configured width, keeping
// existing line breaks.
func (c *CLI) wrap(text string) string {
	width := c.Width
	if width == 0 {
		width = DefaultWidth
	}
	if width < 0 {
		return text
	}
	// lipgloss pads every line to the full width.
	lines := strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

func (c *CLI) printLine(text string) {
	if text != "" {
		text = c.wrap(text)
	}
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}
