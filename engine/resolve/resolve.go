// Package resolve maps noun phrases to entities the player can reach.
package resolve

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nathoo/wayfarer/engine/world"
)

// Place says where a candidate was found.
type Place int

const (
	InRoom Place = iota
	InInventory
	AtExit
)

// Candidate is one entity the resolver may pick, with its owner.
type Candidate struct {
	Entity    world.Entity
	Owner     world.Holder // nil for pathways
	Where     Place
	Depth     int  // 0 when directly in the room or inventory
	Reachable bool // false behind a closed container
}

// AmbiguityError indicates multiple entities matched a phrase.
type AmbiguityError struct {
	Phrase     string
	Candidates []Candidate
}

// Names lists the matching entity names in scan order.
func (e *AmbiguityError) Names() []string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.Entity.Meta().Name
	}
	return names
}

func (e *AmbiguityError) Error() string {
	names := e.Names()
	var b strings.Builder
	fmt.Fprintf(&b, "Which %s, %s", e.Phrase, names[0])
	for i, n := range names[1:] {
		if i == 0 {
			b.WriteString(" or " + n)
		} else {
			b.WriteString(", or " + n)
		}
	}
	b.WriteString("?")
	return b.String()
}

// NotFoundError indicates no reachable entity matched a phrase.
type NotFoundError struct {
	Phrase string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("You can't see any %s here.", e.Phrase)
}

// Scan lists every entity in the current room and the inventory, in a
// stable order: room items, inventory, then exits by direction. Container
// contents follow their container; contents of closed containers are
// listed but not reachable.
func Scan(w *world.World) []Candidate {
	var out []Candidate
	room := w.Room()
	out = scanHolder(out, room, InRoom, 0, true)
	if w.Player != nil {
		out = scanHolder(out, w.Player, InInventory, 0, true)
	}
	for _, dir := range room.Directions() {
		out = append(out, Candidate{Entity: room.Paths[dir], Where: AtExit, Reachable: true})
	}
	return out
}

func scanHolder(out []Candidate, h world.Holder, where Place, depth int, reachable bool) []Candidate {
	for _, e := range h.Items() {
		out = append(out, Candidate{Entity: e, Owner: h, Where: where, Depth: depth, Reachable: reachable})
		if c, ok := e.(*world.Container); ok {
			out = scanHolder(out, c, where, depth+1, reachable && !c.Closed)
		}
	}
	return out
}

// Predicate decides whether a candidate is in scope for an action.
type Predicate func(Candidate) bool

func And(ps ...Predicate) Predicate {
	return func(c Candidate) bool {
		for _, p := range ps {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

func Or(ps ...Predicate) Predicate {
	return func(c Candidate) bool {
		for _, p := range ps {
			if p(c) {
				return true
			}
		}
		return false
	}
}

func Not(p Predicate) Predicate {
	return func(c Candidate) bool { return !p(c) }
}

// Built-in scopes.
var (
	Any       Predicate = func(Candidate) bool { return true }
	Visible   Predicate = func(c Candidate) bool { return c.Reachable }
	Carried   Predicate = func(c Candidate) bool { return c.Where == InInventory }
	Exits     Predicate = func(c Candidate) bool { return c.Where == AtExit }
	Portable  Predicate = func(c Candidate) bool { return world.Portable(c.Entity) }
	Enemies   Predicate = func(c Candidate) bool { _, ok := c.Entity.(*world.Enemy); return ok }
	Weapons   Predicate = func(c Candidate) bool { _, ok := c.Entity.(*world.Weapon); return ok }
	Keys      Predicate = func(c Candidate) bool { _, ok := c.Entity.(*world.Key); return ok }
	Openables           = Or(containers, Exits)
)

func containers(c Candidate) bool {
	_, ok := c.Entity.(*world.Container)
	return ok
}

// Inside matches candidates owned directly by h.
func Inside(h world.Holder) Predicate {
	return func(c Candidate) bool { return c.Owner == h }
}

// Matches reports whether every word of phrase occurs among the words of
// name, in any order. Repeated query words need only one occurrence.
// Direction words compare by their short code.
func Matches(name, phrase string) bool {
	query := words(phrase)
	if len(query) == 0 {
		return false
	}
	have := words(name)
	for _, q := range query {
		if !slices.Contains(have, q) {
			return false
		}
	}
	return true
}

func words(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		if code, ok := world.Canonical(f); ok {
			fields[i] = code
		}
	}
	return fields
}

// matchName is the searchable name of a candidate. Exits answer to their
// direction as well as their name.
func matchName(c Candidate) string {
	name := c.Entity.Meta().Name
	if p, ok := c.Entity.(*world.Pathway); ok {
		name += " " + p.Direction
	}
	return name
}

// Find picks the single candidate that pred admits and phrase matches.
// Zero matches is a *NotFoundError, several an *AmbiguityError. There is
// no tie-break: two things the phrase fits always raise the question,
// even when their names are identical.
func Find(cands []Candidate, phrase string, pred Predicate) (Candidate, error) {
	var matches []Candidate
	for _, c := range cands {
		if pred(c) && Matches(matchName(c), phrase) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return Candidate{}, &NotFoundError{Phrase: phrase}
	case 1:
		return matches[0], nil
	}
	return Candidate{}, &AmbiguityError{Phrase: phrase, Candidates: matches}
}

// FindPreferring looks among the candidates prefer admits first and falls
// back to pred alone only when none of those match. A nil prefer is Find.
func FindPreferring(cands []Candidate, phrase string, pred, prefer Predicate) (Candidate, error) {
	if prefer != nil {
		c, err := Find(cands, phrase, And(pred, prefer))
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			return c, err
		}
	}
	return Find(cands, phrase, pred)
}
