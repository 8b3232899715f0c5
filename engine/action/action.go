// Package action maps a parsed Command onto the closed set of things the
// engine knows how to do. Classify is pure: it never looks at the world.
package action

import (
	"fmt"
	"strings"

	"github.com/nathoo/wayfarer/engine/world"
	"github.com/nathoo/wayfarer/types"
)

// Kind is the semantic action selected by a verb.
type Kind int

const (
	Look Kind = iota
	Inventory
	Status
	Walk
	Take
	TakeFrom
	TakeAll
	Drop
	Put
	Wear
	Equip
	Doff
	Open
	Close
	Unlock
	Lock
	Examine
	Attack
	Eat
	Wait
	Rest
	Hail
	Help
	Again
	Clarify
	Unknown
	NoVerb
)

var kindNames = [...]string{
	Look:      "look",
	Inventory: "inventory",
	Status:    "status",
	Walk:      "walk",
	Take:      "take",
	TakeFrom:  "take_from",
	TakeAll:   "take_all",
	Drop:      "drop",
	Put:       "put",
	Wear:      "wear",
	Equip:     "equip",
	Doff:      "doff",
	Open:      "open",
	Close:     "close",
	Unlock:    "unlock",
	Lock:      "lock",
	Examine:   "examine",
	Attack:    "attack",
	Eat:       "eat",
	Wait:      "wait",
	Rest:      "rest",
	Hail:      "hail",
	Help:      "help",
	Again:     "again",
	Clarify:   "clarify",
	Unknown:   "unknown",
	NoVerb:    "no_verb",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Action is one classified command. Noun and Obj are still phrases; the
// engine resolves them to entities. The zero Action is Look.
type Action struct {
	Kind Kind
	Verb string // as typed
	Noun string
	Prep string
	Obj  string

	// Clarify only.
	Prompt  string
	Pending *types.Command
}

// verbLen is how many runes of a verb are compared, so "examine",
// "examining" and "examination" all land on the same entry.
const verbLen = 6

// verb families that need their own argument policy.
type family int

const (
	plain family = iota
	goFamily
	takeFamily
	dropFamily
	removeFamily
	putFamily
	lookFamily
	attackFamily
)

type verbEntry struct {
	kind     Kind
	family   family
	needsArg bool
}

var verbTable = map[string]verbEntry{
	// Looking
	"l":      {kind: Look, family: lookFamily},
	"look":   {kind: Look, family: lookFamily},
	"examin": {kind: Examine, needsArg: true},
	"x":      {kind: Examine, needsArg: true},
	"inspec": {kind: Examine, needsArg: true},
	"read":   {kind: Examine, needsArg: true},
	"search": {kind: Examine, needsArg: true},
	"check":  {kind: Examine, needsArg: true},

	// Self
	"i":      {kind: Inventory},
	"inv":    {kind: Inventory},
	"invent": {kind: Inventory},
	"c":      {kind: Status},
	"stat":   {kind: Status},
	"stats":  {kind: Status},
	"status": {kind: Status},
	"help":   {kind: Help},
	"?":      {kind: Help},

	// Movement
	"go":    {kind: Walk, family: goFamily},
	"walk":  {kind: Walk, family: goFamily},
	"run":   {kind: Walk, family: goFamily},
	"head":  {kind: Walk, family: goFamily},
	"enter": {kind: Walk, family: goFamily},
	"exit":  {kind: Walk, family: goFamily},
	"move":  {kind: Walk, family: goFamily},

	// Taking and leaving things
	"take":   {kind: Take, family: takeFamily},
	"get":    {kind: Take, family: takeFamily},
	"grab":   {kind: Take, family: takeFamily},
	"pick":   {kind: Take, family: takeFamily},
	"drop":   {kind: Drop, family: dropFamily},
	"throw":  {kind: Drop, family: dropFamily},
	"toss":   {kind: Drop, family: dropFamily},
	"discar": {kind: Drop, family: dropFamily},
	"put":    {kind: Put, family: putFamily},
	"place":  {kind: Put, family: putFamily},
	"insert": {kind: Put, family: putFamily},

	// Equipment
	"wear":  {kind: Wear, needsArg: true},
	"don":   {kind: Wear, needsArg: true},
	"equip": {kind: Equip, needsArg: true},
	"draw":  {kind: Equip, needsArg: true},
	"wield": {kind: Equip, needsArg: true},
	"hold":  {kind: Equip, needsArg: true},

	"remove": {kind: Doff, family: removeFamily},
	"doff":   {kind: Doff, needsArg: true},
	"unequi": {kind: Doff, needsArg: true},

	// Doors, containers and locks
	"open":   {kind: Open, needsArg: true},
	"close":  {kind: Close, needsArg: true},
	"shut":   {kind: Close, needsArg: true},
	"unlock": {kind: Unlock, needsArg: true},
	"lock":   {kind: Lock, needsArg: true},

	// Combat
	"attack": {kind: Attack, family: attackFamily, needsArg: true},
	"kill":   {kind: Attack, family: attackFamily, needsArg: true},
	"hit":    {kind: Attack, family: attackFamily, needsArg: true},
	"slay":   {kind: Attack, family: attackFamily, needsArg: true},
	"cut":    {kind: Attack, family: attackFamily, needsArg: true},
	"strike": {kind: Attack, family: attackFamily, needsArg: true},
	"fight":  {kind: Attack, family: attackFamily, needsArg: true},

	// Body
	"eat":    {kind: Eat, needsArg: true},
	"consum": {kind: Eat, needsArg: true},
	"drink":  {kind: Eat, needsArg: true},
	"wait":   {kind: Wait},
	"z":      {kind: Wait},
	"rest":   {kind: Rest},
	"sleep":  {kind: Rest},
	"heal":   {kind: Rest},

	// Talking
	"hail":  {kind: Hail},
	"talk":  {kind: Hail},
	"hi":    {kind: Hail},
	"hello": {kind: Hail},
	"greet": {kind: Hail},

	// Session
	"again":  {kind: Again},
	"g":      {kind: Again},
	"repeat": {kind: Again},
}

// Short returns the table key for a verb.
func Short(verb string) string {
	r := []rune(verb)
	if len(r) > verbLen {
		r = r[:verbLen]
	}
	return string(r)
}

// Classify picks the Action for a command. Missing required arguments
// yield a Clarify action whose Pending command keeps every slot the
// player already supplied.
func Classify(cmd types.Command) Action {
	if cmd.Verb == "" {
		return Action{Kind: NoVerb, Prep: cmd.Prep, Obj: cmd.Obj}
	}
	if dir, ok := world.Canonical(cmd.Verb); ok {
		return Action{Kind: Walk, Verb: cmd.Verb, Noun: dir}
	}

	entry, ok := verbTable[Short(cmd.Verb)]
	if !ok {
		return Action{Kind: Unknown, Verb: cmd.Verb}
	}

	switch entry.family {
	case goFamily:
		return classifyGo(cmd)
	case takeFamily:
		return classifyTake(cmd)
	case dropFamily:
		return classifyDrop(cmd)
	case removeFamily:
		return classifyRemove(cmd)
	case putFamily:
		return classifyPut(cmd)
	case lookFamily:
		if cmd.Noun != "" {
			return with(Examine, cmd)
		}
		return Action{Kind: Look, Verb: cmd.Verb}
	case attackFamily:
		return classifyAttack(cmd)
	}

	if entry.needsArg && cmd.Noun == "" {
		return missingNoun(cmd)
	}
	return with(entry.kind, cmd)
}

func with(k Kind, cmd types.Command) Action {
	return Action{Kind: k, Verb: cmd.Verb, Noun: cmd.Noun, Prep: cmd.Prep, Obj: cmd.Obj}
}

func clarify(prompt string, pending types.Command) Action {
	return Action{Kind: Clarify, Verb: pending.Verb, Prompt: prompt, Pending: &pending}
}

// missingNoun asks for the noun, keeping any preposition and object.
func missingNoun(cmd types.Command) Action {
	if cmd.Prep != "" && cmd.Obj != "" {
		return clarify(
			fmt.Sprintf("What do you want to %s %s the %s?", cmd.Verb, cmd.Prep, cmd.Obj),
			types.Command{Verb: cmd.Verb, Prep: cmd.Prep, Obj: cmd.Obj},
		)
	}
	return clarify(fmt.Sprintf("What do you want to %s?", cmd.Verb), types.Command{Verb: cmd.Verb})
}

// missingObj asks for the object of the preposition.
func missingObj(cmd types.Command) Action {
	return clarify(
		fmt.Sprintf("What do you want to %s the %s %s?", cmd.Verb, cmd.Noun, cmd.Prep),
		types.Command{Verb: cmd.Verb, Noun: cmd.Noun, Prep: cmd.Prep},
	)
}

func classifyGo(cmd types.Command) Action {
	target := cmd.Noun
	if target == "" {
		// "go in cave", "enter into hut"
		target = cmd.Obj
	}
	if target == "" {
		if Short(cmd.Verb) == "move" {
			return clarify("What do you want to move?", types.Command{Verb: cmd.Verb})
		}
		return clarify(fmt.Sprintf("Where do you want to %s?", cmd.Verb), types.Command{Verb: cmd.Verb})
	}
	if dir, ok := world.Canonical(target); ok {
		target = dir
	}
	return Action{Kind: Walk, Verb: cmd.Verb, Noun: target}
}

func classifyTake(cmd types.Command) Action {
	// "get up lamp" survives the parser as noun "u lamp".
	cmd.Noun = strings.TrimPrefix(cmd.Noun, "u ")
	if cmd.Noun == "" || cmd.Noun == "u" {
		cmd.Noun = ""
		return missingNoun(cmd)
	}
	if cmd.Prep == "" || cmd.Prep == "with" {
		if cmd.Noun == "all" || cmd.Noun == "everything" || strings.HasPrefix(cmd.Noun, "all ") {
			return Action{Kind: TakeAll, Verb: cmd.Verb}
		}
		return Action{Kind: Take, Verb: cmd.Verb, Noun: cmd.Noun}
	}
	if cmd.Obj == "" {
		return missingObj(cmd)
	}
	return with(TakeFrom, cmd)
}

func classifyDrop(cmd types.Command) Action {
	if cmd.Noun == "" {
		return missingNoun(cmd)
	}
	if cmd.Prep != "" {
		if cmd.Obj == "" {
			return missingObj(cmd)
		}
		return with(Put, cmd)
	}
	return Action{Kind: Drop, Verb: cmd.Verb, Noun: cmd.Noun}
}

// classifyRemove reads "remove X from Y" as taking X out of Y. Without a
// source it unequips X.
func classifyRemove(cmd types.Command) Action {
	if cmd.Noun == "" {
		return missingNoun(cmd)
	}
	switch cmd.Prep {
	case "from", "in", "inside":
		if cmd.Obj == "" {
			return missingObj(cmd)
		}
		return Action{Kind: TakeFrom, Verb: cmd.Verb, Noun: cmd.Noun, Prep: "from", Obj: cmd.Obj}
	}
	return Action{Kind: Doff, Verb: cmd.Verb, Noun: cmd.Noun}
}

// classifyPut applies the put/place rules. The branch order decides which
// slot an ambiguous phrase fills and is not interchangeable.
func classifyPut(cmd types.Command) Action {
	if cmd.Prep == "" {
		cmd.Prep = "in"
	}
	hasNoun, hasObj := cmd.Noun != "", cmd.Obj != ""

	switch {
	case hasNoun && cmd.Prep == "on" && !hasObj:
		return Action{Kind: Wear, Verb: cmd.Verb, Noun: cmd.Noun}
	case !hasNoun && cmd.Prep == "on" && hasObj:
		return Action{Kind: Wear, Verb: cmd.Verb, Noun: cmd.Obj}
	case !hasNoun && cmd.Prep == "on" && !hasObj:
		return clarify(
			fmt.Sprintf("What do you want to %s on?", cmd.Verb),
			types.Command{Verb: cmd.Verb, Prep: "on"},
		)
	case hasNoun && hasObj:
		return with(Put, cmd)
	case !hasNoun && hasObj:
		return missingNoun(cmd)
	case hasNoun && !hasObj:
		return missingObj(cmd)
	default:
		return clarify(fmt.Sprintf("What do you want to %s?", cmd.Verb), types.Command{Verb: cmd.Verb})
	}
}

func classifyAttack(cmd types.Command) Action {
	if cmd.Noun == "" {
		return missingNoun(cmd)
	}
	if cmd.Prep == "" {
		return Action{Kind: Attack, Verb: cmd.Verb, Noun: cmd.Noun}
	}
	if cmd.Obj == "" {
		return missingObj(cmd)
	}
	return with(Attack, cmd)
}
