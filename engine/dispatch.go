package engine

import (
	"errors"
	"fmt"

	"github.com/nathoo/wayfarer/engine/action"
	"github.com/nathoo/wayfarer/engine/resolve"
	"github.com/nathoo/wayfarer/engine/world"
	"github.com/nathoo/wayfarer/types"
)

// slot names which half of a command a phrase came from.
type slot int

const (
	nounSlot slot = iota
	objSlot
)

// handler describes one action: the scope each phrase is resolved in and
// the executor that runs once both are resolved. A nil scope means the
// slot is not an entity reference, or that the executor resolves it
// itself.
type handler struct {
	noun, obj resolve.Predicate

	// Preferred scopes narrow a phrase first; the plain scope is only
	// searched when nothing preferred matches.
	nounPrefer, objPrefer resolve.Predicate

	// objFirst resolves the object before the noun and looks for the noun
	// only inside it.
	objFirst bool

	// Messages for phrases that match nothing in scope. Nil uses the
	// resolver's "You can't see any X here."
	nounMissing, objMissing func(a action.Action) string

	// verb used when an ambiguity re-asks the question; empty keeps
	// the verb the player typed.
	verb string

	exec func(e *Engine, a action.Action, noun, obj *resolve.Candidate) (string, types.Outcome)
}

// carriedVisible is the scope of things the player holds and can reach.
var carriedVisible = resolve.And(resolve.Carried, resolve.Visible)

var handlers map[action.Kind]handler

func init() {
	handlers = map[action.Kind]handler{
		action.Look:      {exec: (*Engine).execLook},
		action.Inventory: {exec: (*Engine).execInventory},
		action.Status:    {exec: (*Engine).execStatus},
		action.Help:      {exec: (*Engine).execHelp},
		action.Wait:      {exec: (*Engine).execWait},
		action.Rest:      {exec: (*Engine).execRest},
		action.Walk:      {verb: "go", exec: (*Engine).execWalk},
		action.Examine:   {exec: (*Engine).execExamine},
		action.TakeAll:   {exec: (*Engine).execTakeAll},
		action.Take: {
			noun:       resolve.Visible,
			nounPrefer: resolve.And(resolve.Not(resolve.Carried), resolve.Portable),
			exec:       (*Engine).execTake,
		},
		action.TakeFrom: {
			noun:        resolve.Any,
			obj:         resolve.Visible,
			objFirst:    true,
			nounMissing: func(a action.Action) string { return fmt.Sprintf("There is no %q inside of the %q.", a.Noun, a.Obj) },
			exec:        (*Engine).execTakeFrom,
		},
		action.Drop: {
			noun:        carriedVisible,
			nounMissing: dontHave(nounSlot),
			exec:        (*Engine).execDrop,
		},
		action.Put: {
			noun:        carriedVisible,
			obj:         resolve.Visible,
			nounMissing: dontHave(nounSlot),
			objMissing:  func(a action.Action) string { return fmt.Sprintf("There is no %q here.", a.Obj) },
			exec:        (*Engine).execPut,
		},
		action.Wear: {
			noun:        carriedVisible,
			nounMissing: dontHave(nounSlot),
			verb:        "wear",
			exec:        (*Engine).execWear,
		},
		action.Equip: {
			noun:        carriedVisible,
			nounMissing: dontHave(nounSlot),
			exec:        (*Engine).execEquip,
		},
		action.Doff: {
			noun:        carriedVisible,
			nounMissing: dontHave(nounSlot),
			exec:        (*Engine).execDoff,
		},
		action.Open:  {noun: resolve.Visible, nounPrefer: resolve.Openables, exec: (*Engine).execOpen},
		action.Close: {noun: resolve.Visible, nounPrefer: resolve.Openables, exec: (*Engine).execClose},
		action.Unlock: {
			noun:       resolve.Visible,
			nounPrefer: resolve.Openables,
			obj:        carriedVisible,
			objPrefer:  resolve.Keys,
			objMissing: dontHave(objSlot),
			exec:       (*Engine).execUnlock,
		},
		action.Lock: {
			noun:       resolve.Visible,
			nounPrefer: resolve.Openables,
			obj:        carriedVisible,
			objPrefer:  resolve.Keys,
			objMissing: dontHave(objSlot),
			exec:       (*Engine).execLock,
		},
		action.Attack: {
			noun:       resolve.Visible,
			nounPrefer: resolve.Enemies,
			obj:        carriedVisible,
			objPrefer:  resolve.Weapons,
			objMissing: dontHave(objSlot),
			exec:       (*Engine).execAttack,
		},
		action.Eat:  {noun: resolve.Visible, exec: (*Engine).execEat},
		action.Hail: {noun: resolve.Visible, nounPrefer: resolve.Enemies, exec: (*Engine).execHail},
	}
}

func dontHave(s slot) func(a action.Action) string {
	return func(a action.Action) string {
		phrase := a.Noun
		if s == objSlot {
			phrase = a.Obj
		}
		return fmt.Sprintf("You do not have the %q.", phrase)
	}
}

// dispatch is the single resolve-then-execute routine. Two-entity actions
// resolve strictly one slot after the other: an unresolved first slot
// stops before the second is looked at.
func (e *Engine) dispatch(a action.Action) (string, types.Outcome) {
	switch a.Kind {
	case action.Clarify:
		e.Pending = &types.PendingDef{Command: *a.Pending, Prompt: a.Prompt}
		return a.Prompt, types.Clarify
	case action.Unknown:
		return fmt.Sprintf("I do not know the word %q.", a.Verb), types.Failed
	case action.NoVerb:
		return msgNoComprendo, types.Failed
	case action.Again:
		if e.LastCommand == nil {
			return "You have not done anything yet.", types.Failed
		}
		again := action.Classify(*e.LastCommand)
		if again.Kind == action.Again {
			return msgNoComprendo, types.Failed
		}
		return e.dispatch(again)
	}

	h, ok := handlers[a.Kind]
	if !ok {
		return msgNoComprendo, types.Failed
	}

	if h.noun != nil && h.obj != nil && a.Noun != "" && a.Noun == a.Obj {
		return "Impossible.", types.Failed
	}

	cands := resolve.Scan(e.World)
	var noun, obj *resolve.Candidate
	resolveNoun := func(scope resolve.Predicate) (string, types.Outcome, bool) {
		if h.noun == nil || a.Noun == "" {
			return "", "", true
		}
		c, text, outcome, ok := e.resolveSlot(cands, a, h, nounSlot, scope, h.nounPrefer)
		if ok {
			noun = &c
		}
		return text, outcome, ok
	}
	resolveObj := func() (string, types.Outcome, bool) {
		if h.obj == nil || a.Obj == "" {
			return "", "", true
		}
		c, text, outcome, ok := e.resolveSlot(cands, a, h, objSlot, h.obj, h.objPrefer)
		if ok {
			obj = &c
		}
		return text, outcome, ok
	}

	if h.objFirst {
		if text, outcome, ok := resolveObj(); !ok {
			return text, outcome
		}
		// Only a holder can narrow the noun; anything else is the
		// executor's to refuse.
		if obj != nil {
			holder, isHolder := obj.Entity.(world.Holder)
			if !isHolder {
				return h.exec(e, a, nil, obj)
			}
			if text, outcome, ok := resolveNoun(resolve.And(h.noun, resolve.Inside(holder))); !ok {
				return text, outcome
			}
		}
		return h.exec(e, a, noun, obj)
	}

	if text, outcome, ok := resolveNoun(h.noun); !ok {
		return text, outcome
	}
	if text, outcome, ok := resolveObj(); !ok {
		return text, outcome
	}
	return h.exec(e, a, noun, obj)
}

// resolveSlot finds the entity one slot refers to. On failure it returns
// the text and outcome to report; an ambiguity arms a pending request that
// keeps the other slot and leaves this one empty for the answer.
func (e *Engine) resolveSlot(cands []resolve.Candidate, a action.Action, h handler, s slot, pred, prefer resolve.Predicate) (resolve.Candidate, string, types.Outcome, bool) {
	phrase, missing := a.Noun, h.nounMissing
	if s == objSlot {
		phrase, missing = a.Obj, h.objMissing
	}

	c, err := resolve.FindPreferring(cands, phrase, pred, prefer)
	if err == nil {
		if s == nounSlot {
			e.nounName = c.Entity.Meta().Name
		}
		return c, "", "", true
	}

	var amb *resolve.AmbiguityError
	if errors.As(err, &amb) {
		verb := a.Verb
		if h.verb != "" {
			verb = h.verb
		}
		pending := types.Command{Verb: verb, Noun: a.Noun, Prep: a.Prep, Obj: a.Obj}
		if s == nounSlot {
			pending.Noun = ""
		} else {
			pending.Obj = ""
		}
		e.Pending = &types.PendingDef{Command: pending, Prompt: amb.Error()}
		return resolve.Candidate{}, amb.Error(), types.Clarify, false
	}

	if missing != nil {
		return resolve.Candidate{}, missing(a), types.Failed, false
	}
	return resolve.Candidate{}, err.Error(), types.Failed, false
}
