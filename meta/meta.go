// Package meta handles the out-of-game commands both front ends share:
// quitting, save slots, help and tracing.
package meta

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/wayfarer/engine"
	"github.com/nathoo/wayfarer/engine/parser"
	"github.com/nathoo/wayfarer/engine/save"
	"github.com/nathoo/wayfarer/store"
	"github.com/nathoo/wayfarer/types"
)

// Bare words that act as meta commands without a leading slash. They only
// count when typed alone, so "load musket" still reaches the game.
var bare = map[string]string{
	"quit":    "/quit",
	"q":       "/quit",
	"save":    "/save",
	"load":    "/load",
	"restore": "/load",
}

// Reply is what a meta command printed and whether the session ends.
type Reply struct {
	Lines []string
	Quit  bool
}

// Commands runs meta commands against an engine and a save store. A nil
// Store disables saving and loading.
type Commands struct {
	Engine *engine.Engine
	Store  *store.Store
	Trace  bool
}

// Is reports whether line is a meta command rather than game input.
func Is(line string) bool {
	_, ok := name(line)
	return ok
}

func name(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	cmd := strings.ToLower(fields[0])
	if strings.HasPrefix(cmd, "/") {
		return cmd, true
	}
	if len(fields) > 1 {
		return "", false
	}
	canon, ok := bare[cmd]
	return canon, ok
}

// Run executes one meta command.
func (c *Commands) Run(ctx context.Context, line string) Reply {
	cmd, ok := name(line)
	if !ok {
		return Reply{Lines: []string{fmt.Sprintf("Unknown command: %s.", line)}}
	}
	var arg string
	if fields := strings.Fields(line); len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return Reply{Lines: []string{"Goodbye."}, Quit: true}
	case "/save":
		return Reply{Lines: c.save(ctx, arg)}
	case "/load", "/restore":
		return Reply{Lines: c.load(ctx, arg)}
	case "/slots":
		return Reply{Lines: c.slots(ctx)}
	case "/delete":
		return Reply{Lines: c.remove(ctx, arg)}
	case "/help":
		return Reply{Lines: help()}
	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			return Reply{Lines: []string{"Trace output enabled."}}
		}
		return Reply{Lines: []string{"Trace output disabled."}}
	}
	return Reply{Lines: []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}}
}

func (c *Commands) save(ctx context.Context, slot string) []string {
	if c.Store == nil {
		return []string{"Saving is disabled."}
	}
	raw, err := save.Encode(save.Capture(c.Engine))
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}
	meta, err := c.Store.Put(ctx, slot, raw, store.Meta{
		Turn: c.Engine.Turn,
		Room: c.Engine.World.Room().Name,
	})
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}
	return []string{fmt.Sprintf("Game saved to %s.", meta.Slot)}
}

func (c *Commands) load(ctx context.Context, slot string) []string {
	if c.Store == nil {
		return []string{"Saving is disabled."}
	}
	if slot == "" {
		slot = store.DefaultSlot
	}
	raw, err := c.Store.Get(ctx, slot)
	if errors.Is(err, store.ErrSlotNotFound) {
		return []string{fmt.Sprintf("There is no save named %q.", slot)}
	}
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}
	data, err := save.Decode(raw)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}
	if err := save.Restore(c.Engine, data); err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}
	return []string{
		fmt.Sprintf("Game loaded from %s (turn %d).", slot, data.Session.Turn),
		c.Engine.Look(),
	}
}

func (c *Commands) slots(ctx context.Context) []string {
	if c.Store == nil {
		return []string{"Saving is disabled."}
	}
	metas, err := c.Store.List(ctx)
	if err != nil {
		return []string{fmt.Sprintf("Listing saves failed: %v", err)}
	}
	if len(metas) == 0 {
		return []string{"No saved games."}
	}
	lines := []string{"Saved games:"}
	for _, m := range metas {
		lines = append(lines, fmt.Sprintf("  %-12s turn %-4d %-20s %s",
			m.Slot, m.Turn, m.Room, m.SavedAt.Local().Format("2006-01-02 15:04")))
	}
	return lines
}

func (c *Commands) remove(ctx context.Context, slot string) []string {
	if c.Store == nil {
		return []string{"Saving is disabled."}
	}
	if slot == "" {
		return []string{"Delete which save?"}
	}
	err := c.Store.Delete(ctx, slot)
	if errors.Is(err, store.ErrSlotNotFound) {
		return []string{fmt.Sprintf("There is no save named %q.", slot)}
	}
	if err != nil {
		return []string{fmt.Sprintf("Delete failed: %v", err)}
	}
	return []string{fmt.Sprintf("Deleted %s.", slot)}
}

func help() []string {
	return []string{
		"System:",
		"  /save [slot]    Save game (default: quicksave)",
		"  /load [slot]    Load game (default: quicksave)",
		"  /slots          List saved games",
		"  /delete <slot>  Delete a saved game",
		"  /trace          Toggle parser trace output",
		"  /quit           Exit game",
		"",
		"Type \"help\" for game commands.",
	}
}

// TraceLines describes how input splits into commands, for /trace.
func TraceLines(input string) []string {
	var lines []string
	for _, words := range parser.Tokenize(input) {
		lines = append(lines, "[trace] "+formatCommand(parser.Build(words)))
	}
	return lines
}

// TraceResult describes the outcome of a step, for /trace.
func TraceResult(e *engine.Engine, r types.Result) string {
	line := fmt.Sprintf("[trace] outcome=%s turn=%d", r.Outcome, e.Turn)
	if e.Pending != nil {
		line += fmt.Sprintf(" pending=%q", formatCommand(e.Pending.Command))
	}
	if e.LastIt != "" {
		line += fmt.Sprintf(" it=%q", e.LastIt)
	}
	return line
}

func formatCommand(cmd types.Command) string {
	parts := []string{"verb=" + cmd.Verb}
	if cmd.Noun != "" {
		parts = append(parts, "noun="+cmd.Noun)
	}
	if cmd.Prep != "" {
		parts = append(parts, "prep="+cmd.Prep)
	}
	if cmd.Obj != "" {
		parts = append(parts, "obj="+cmd.Obj)
	}
	return strings.Join(parts, " ")
}
