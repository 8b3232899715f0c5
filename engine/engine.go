// Package engine provides the Step() orchestrator that wires together
// tokenizing, classification, clarification, resolution, execution and
// combat into a single turn.
package engine

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nathoo/wayfarer/engine/action"
	"github.com/nathoo/wayfarer/engine/parser"
	"github.com/nathoo/wayfarer/engine/world"
	"github.com/nathoo/wayfarer/types"
)

const (
	msgExcuseMe    = "Excuse me?"
	msgNoComprendo = "I do not understand that phrase."
	msgDead        = "You are dead. Use /load to restore a save or /quit to exit."
)

// Engine holds the world and the session memory threaded through turns.
// It is not safe for concurrent use.
type Engine struct {
	World  *world.World
	Dice   Dice
	Logger *zap.Logger

	// Session memory, exposed for save/restore.
	LastIt      string
	LastCommand *types.Command
	Pending     *types.PendingDef
	Over        bool
	Turn        int

	// per-run scratch
	nounName string
}

// Option configures an Engine.
type Option func(*Engine)

// WithDice replaces the default time-seeded RNG.
func WithDice(d Dice) Option {
	return func(e *Engine) { e.Dice = d }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.Logger = l }
}

// New creates an engine for a built world.
func New(w *world.World, opts ...Option) *Engine {
	e := &Engine{World: w}
	for _, opt := range opts {
		opt(e)
	}
	if e.Dice == nil {
		e.Dice = NewRNG(time.Now().UnixNano())
	}
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	return e
}

// HandleTurn runs one line of input and returns the text to show.
func (e *Engine) HandleTurn(raw string) string {
	return strings.Join(e.Step(raw).Output, "\n\n")
}

// Step processes one line of input and returns the result. A line may
// hold several sub-commands; processing stops after one that asks a
// question or kills the player.
func (e *Engine) Step(input string) types.Result {
	// 0. Nothing typed.
	if strings.TrimSpace(input) == "" {
		return types.Result{Output: []string{msgExcuseMe}, Outcome: types.Passive}
	}

	// 1. Game over: only meta commands, handled outside, still work.
	if e.Over {
		return types.Result{Output: []string{msgDead}, Outcome: types.Failed}
	}

	e.Turn++
	var result types.Result

	// 2. One pass per sub-command.
	for _, words := range parser.Tokenize(input) {
		text, outcome := e.runGroup(words)
		if text != "" {
			result.Output = append(result.Output, text)
		}
		result.Outcome = outcome
		if outcome == types.Clarify || e.Over {
			break
		}
	}
	return result
}

func (e *Engine) runGroup(words []string) (string, types.Outcome) {
	if len(words) == 0 {
		e.Pending = nil
		return msgNoComprendo, types.Failed
	}
	cmd := parser.Build(words)

	// Clarification: an unrecognized verb is the answer to the question
	// asked last turn; a recognized one abandons it.
	if p := e.Pending; p != nil {
		e.Pending = nil
		switch action.Classify(cmd).Kind {
		case action.Unknown, action.NoVerb:
			cmd = splice(p.Command, cmd, words)
			e.Logger.Debug("pending answered",
				zap.String("prompt", p.Prompt),
				zap.String("verb", cmd.Verb),
				zap.String("noun", cmd.Noun),
				zap.String("obj", cmd.Obj),
			)
		default:
			e.Logger.Debug("pending abandoned", zap.String("prompt", p.Prompt))
		}
	}

	return e.run(parser.ResolveIt(cmd, e.LastIt))
}

// splice fills the first empty slot of a pending command with the answer.
// An answer that starts with a preposition ("with the sword") contributes
// only its object, and fills the object slot outright when the pending
// command has no preposition of its own.
func splice(pending, answer types.Command, words []string) types.Command {
	text := strings.Join(words, " ")
	if answer.Verb == "" {
		text = answer.Obj
		if pending.Prep == "" && answer.Prep != "" {
			pending.Prep = answer.Prep
			pending.Obj = text
			return pending
		}
	}
	if pending.Noun == "" {
		pending.Noun = text
		return pending
	}
	pending.Obj = text
	if pending.Prep == "" {
		pending.Prep = "with"
	}
	return pending
}

// run classifies and executes one command, then lets enemies act.
func (e *Engine) run(cmd types.Command) (string, types.Outcome) {
	act := action.Classify(cmd)
	e.nounName = ""

	text, outcome := e.dispatch(act)

	switch outcome {
	case types.Active, types.Passive:
		if act.Kind != action.Again {
			c := cmd
			e.LastCommand = &c
		}
		if e.nounName != "" {
			e.LastIt = e.nounName
		}
	}

	if outcome == types.Active {
		if combat := e.resolveCombat(); combat != "" {
			if text != "" {
				text += "\n\n"
			}
			text += combat
		}
	}

	e.Logger.Debug("command",
		zap.Int("turn", e.Turn),
		zap.String("verb", cmd.Verb),
		zap.Stringer("kind", act.Kind),
		zap.String("outcome", string(outcome)),
		zap.Bool("pending", e.Pending != nil),
	)
	return text, outcome
}

// Session returns the memory that lives outside the world graph.
func (e *Engine) Session() types.Session {
	s := types.Session{LastIt: e.LastIt, Turn: e.Turn, Over: e.Over}
	if e.LastCommand != nil {
		c := *e.LastCommand
		s.LastCommand = &c
	}
	if e.Pending != nil {
		p := *e.Pending
		s.Pending = &p
	}
	return s
}

// RestoreSession replaces the session memory.
func (e *Engine) RestoreSession(s types.Session) {
	e.LastIt = s.LastIt
	e.Turn = s.Turn
	e.Over = s.Over
	e.LastCommand = nil
	if s.LastCommand != nil {
		c := *s.LastCommand
		e.LastCommand = &c
	}
	e.Pending = nil
	if s.Pending != nil {
		p := *s.Pending
		e.Pending = &p
	}
}
