// Package parser turns raw input into Command structs.
// Intentionally dumb: no NLP, just word lists and a fixed preposition set.
package parser

import (
	"strings"

	"github.com/nathoo/wayfarer/engine/world"
	"github.com/nathoo/wayfarer/types"
)

// Words dropped from every group before the command is built.
var stopWords = map[string]bool{
	"a": true, "an": true, "around": true, "at": true, "of": true,
	"my": true, "that": true, "the": true, "through": true, "to": true,
	"'": true,
}

// Prepositions split a command into noun phrase and object phrase.
var prepositions = map[string]bool{
	"in": true, "inside": true, "from": true,
	"on": true, "under": true, "with": true,
}

// Sub-command separators are rewritten to "and" before splitting.
var separators = strings.NewReplacer(",", " and ", ";", " and ", ".", " and ")

// Tokenize splits raw input into one word list per sub-command.
// Groups are separated by "and", commas, semicolons and periods. Within a
// group stop-words are removed and directions are rewritten to their short
// codes, the same codes room exits are keyed by. A group left empty by
// stop-word removal is returned empty so the caller can reject it. Input
// with no words at all yields a single "look".
func Tokenize(raw string) [][]string {
	fields := strings.Fields(separators.Replace(strings.ToLower(raw)))

	var groups [][]string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			groups = append(groups, normalize(cur))
		}
		cur = nil
	}
	for _, f := range fields {
		if f == "and" {
			flush()
			continue
		}
		cur = append(cur, f)
	}
	flush()

	if len(groups) == 0 {
		return [][]string{{"look"}}
	}
	return groups
}

func normalize(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if stopWords[w] {
			continue
		}
		if code, ok := world.Canonical(w); ok {
			w = code
		}
		out = append(out, w)
	}
	return out
}

// Build extracts verb, noun, preposition and object from one word group.
// The first preposition after the verb splits noun from object. A group
// that starts with a preposition has no verb.
func Build(words []string) types.Command {
	if len(words) == 0 {
		return types.Command{}
	}
	if prepositions[words[0]] {
		return types.Command{Prep: words[0], Obj: strings.Join(words[1:], " ")}
	}

	words = expandMultiWordVerbs(words)
	cmd := types.Command{Verb: words[0]}
	rest := words[1:]
	for i, w := range rest {
		if prepositions[w] {
			cmd.Noun = strings.Join(rest[:i], " ")
			cmd.Prep = w
			// A trailing preposition still counts: "put key in".
			cmd.Obj = strings.Join(rest[i+1:], " ")
			return cmd
		}
	}
	cmd.Noun = strings.Join(rest, " ")
	return cmd
}

// expandMultiWordVerbs folds "pick up", "look in" and friends into a
// single verb. Directions have already been shortened, so "up" is "u".
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "look", "l":
		if words[1] == "in" || words[1] == "inside" || words[1] == "under" {
			return append([]string{"examine"}, words[2:]...)
		}
	case "pick":
		if words[1] == "u" {
			return append([]string{"take"}, words[2:]...)
		}
	case "put", "set":
		if words[1] == "d" {
			return append([]string{"drop"}, words[2:]...)
		}
	case "take":
		if words[1] == "off" {
			return append([]string{"remove"}, words[2:]...)
		}
	}

	return words
}

// ResolveIt substitutes lastIt for a noun or object of "it" or "them".
// Both slots are checked independently.
func ResolveIt(cmd types.Command, lastIt string) types.Command {
	if lastIt == "" {
		return cmd
	}
	if isPronoun(cmd.Noun) {
		cmd.Noun = lastIt
	}
	if isPronoun(cmd.Obj) {
		cmd.Obj = lastIt
	}
	return cmd
}

func isPronoun(s string) bool {
	return s == "it" || s == "them"
}
