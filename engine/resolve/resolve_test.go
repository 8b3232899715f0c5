package resolve

import (
	"errors"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/nathoo/wayfarer/engine/world"
	"github.com/nathoo/wayfarer/types"
)

func testWorld(t *testing.T) *world.World {
	t.Helper()
	w, err := world.Build(types.WorldDef{
		Start: "hall",
		Rooms: []types.RoomDef{
			{
				ID: "hall", Name: "Hall", Desc: "A hall.",
				Exits: []types.ExitDef{
					{Direction: "north", To: "yard", Name: "oak door", Door: true, Closed: true},
					{Direction: "s", To: "yard"},
				},
				Items: []types.EntityDef{
					{ID: "block", Name: "red block"},
					{ID: "sword", Kind: "weapon", Name: "iron sword", MaxDamage: 3},
					{ID: "chest", Kind: "container", Name: "oak chest", Closed: true, Contents: []types.EntityDef{
						{ID: "coin", Kind: "gold", Name: "gold coin"},
					}},
					{ID: "box", Kind: "container", Name: "box", Contents: []types.EntityDef{
						{ID: "bag", Kind: "container", Name: "bag", Contents: []types.EntityDef{
							{ID: "pearl", Name: "pearl"},
						}},
					}},
					{ID: "troll", Kind: "enemy", Name: "troll", HP: 5},
				},
			},
			{ID: "yard", Name: "Yard"},
		},
		Player: types.PlayerDef{Inventory: []types.EntityDef{
			{ID: "dagger", Kind: "weapon", Name: "iron dagger", MaxDamage: 2},
		}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return w
}

func findID(t *testing.T, w *world.World, phrase string, pred Predicate) (string, error) {
	t.Helper()
	c, err := Find(Scan(w), phrase, pred)
	if err != nil {
		return "", err
	}
	return c.Entity.Meta().ID, nil
}

func TestFind(t *testing.T) {
	w := testWorld(t)

	tests := []struct {
		name   string
		phrase string
		pred   Predicate
		want   string
	}{
		{"single word", "block", Visible, "block"},
		{"full name", "red block", Visible, "block"},
		{"any order", "block red", Visible, "block"},
		{"carried", "dagger", Visible, "dagger"},
		{"nested open containers", "pearl", Visible, "pearl"},
		{"exit by name", "oak door", Exits, "hall:n"},
		{"exit by direction", "n", Exits, "hall:n"},
		{"exit by long direction", "south", Exits, "hall:s"},
		{"enemy", "troll", And(Visible, Enemies), "troll"},
		{"case folded", "RED Block", Visible, "block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findID(t, w, tt.phrase, tt.pred)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Find(%q) = %q, want %q", tt.phrase, got, tt.want)
			}
		})
	}
}

func TestFind_NotFound(t *testing.T) {
	w := testWorld(t)

	for _, phrase := range []string{"red plate", "blue block", "dragon"} {
		_, err := findID(t, w, phrase, Visible)
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("Find(%q): expected NotFoundError, got %v", phrase, err)
		}
		if want := "You can't see any " + phrase + " here."; err.Error() != want {
			t.Errorf("message = %q, want %q", err.Error(), want)
		}
	}
}

func TestFind_ClosedContainerHidesContents(t *testing.T) {
	w := testWorld(t)

	if _, err := findID(t, w, "coin", Visible); err == nil {
		t.Fatal("coin inside a closed chest should not be visible")
	}
	if id, err := findID(t, w, "coin", Any); err != nil || id != "coin" {
		t.Fatalf("Any scope should still see the coin, got %q, %v", id, err)
	}
}

func TestFind_Ambiguous(t *testing.T) {
	w := testWorld(t)

	_, err := findID(t, w, "iron", Visible)
	var amb *AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguityError, got %v", err)
	}
	if got, want := err.Error(), "Which iron, iron sword or iron dagger?"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}

	// Narrowing the scope removes the ambiguity.
	if id, err := findID(t, w, "iron", Carried); err != nil || id != "dagger" {
		t.Errorf("Carried scope: got %q, %v", id, err)
	}
}

func TestAmbiguityError_ThreeNames(t *testing.T) {
	err := &AmbiguityError{Phrase: "key", Candidates: []Candidate{
		{Entity: &world.Key{Attrs: world.Attrs{Name: "brass key"}}},
		{Entity: &world.Key{Attrs: world.Attrs{Name: "iron key"}}},
		{Entity: &world.Key{Attrs: world.Attrs{Name: "bone key"}}},
	}}
	if got, want := err.Error(), "Which key, brass key or iron key, or bone key?"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFind_NoTieBreak(t *testing.T) {
	cands := []Candidate{
		{Entity: &world.Weapon{Attrs: world.Attrs{ID: "a", Name: "sword"}}, Reachable: true},
		{Entity: &world.Weapon{Attrs: world.Attrs{ID: "b", Name: "iron sword"}}, Reachable: true},
	}
	_, err := Find(cands, "sword", Visible)
	if got, want := errString(err), "Which sword, sword or iron sword?"; got != want {
		t.Errorf("exact name: got %q, want %q", got, want)
	}

	twins := []Candidate{
		{Entity: &world.Gold{Attrs: world.Attrs{ID: "c1", Name: "gold coin"}}, Reachable: true},
		{Entity: &world.Gold{Attrs: world.Attrs{ID: "c2", Name: "gold coin"}}, Reachable: true},
	}
	_, err = Find(twins, "coin", Visible)
	var amb *AmbiguityError
	if !errors.As(err, &amb) || len(amb.Candidates) != 2 {
		t.Errorf("identical names: expected ambiguity, got %v", err)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func TestFindPreferring(t *testing.T) {
	w := testWorld(t)
	cands := Scan(w)

	// The preferred scope decides when it matches anything.
	c, err := FindPreferring(cands, "iron", Visible, Carried)
	if err != nil || c.Entity.Meta().ID != "dagger" {
		t.Errorf("preferred: got %v, %v", c.Entity, err)
	}

	// Otherwise the plain scope is searched.
	c, err = FindPreferring(cands, "block", Visible, Enemies)
	if err != nil || c.Entity.Meta().ID != "block" {
		t.Errorf("fallback: got %v, %v", c.Entity, err)
	}

	// Ambiguity inside the preferred scope is still a question.
	_, err = FindPreferring(cands, "iron", Visible, Weapons)
	var amb *AmbiguityError
	if !errors.As(err, &amb) {
		t.Errorf("expected ambiguity, got %v", err)
	}

	if _, err := FindPreferring(cands, "dragon", Visible, nil); err == nil {
		t.Error("expected not found")
	}
}

func TestPredicates(t *testing.T) {
	thing := Candidate{Entity: &world.Thing{}, Where: InRoom, Reachable: true}
	enemy := Candidate{Entity: &world.Enemy{}, Where: InRoom, Reachable: true}
	carried := Candidate{Entity: &world.Weapon{}, Where: InInventory, Reachable: true}
	key := Candidate{Entity: &world.Key{}, Where: InInventory, Reachable: true}
	box := &world.Container{}
	boxed := Candidate{Entity: &world.Thing{}, Owner: box, Where: InRoom, Depth: 1}
	exit := Candidate{Entity: &world.Pathway{}, Where: AtExit, Reachable: true}

	if !And(Visible, Not(Carried))(thing) || And(Visible, Carried)(thing) {
		t.Error("And misbehaves")
	}
	if !Or(Enemies, Weapons)(enemy) || !Or(Enemies, Weapons)(carried) || Or(Enemies, Weapons)(thing) {
		t.Error("Or misbehaves")
	}
	if Not(Portable)(thing) || !Not(Portable)(enemy) {
		t.Error("Not misbehaves")
	}
	if !Keys(key) || Keys(carried) {
		t.Error("Keys misbehaves")
	}
	if !Openables(Candidate{Entity: box}) || !Openables(exit) || Openables(thing) {
		t.Error("Openables misbehaves")
	}
	if !Inside(box)(boxed) || Inside(box)(thing) {
		t.Error("Inside misbehaves")
	}
}

func TestScan_Order(t *testing.T) {
	w := testWorld(t)
	var ids []string
	for _, c := range Scan(w) {
		ids = append(ids, c.Entity.Meta().ID)
	}
	want := "block sword chest coin box bag pearl troll dagger hall:n hall:s"
	if got := strings.Join(ids, " "); got != want {
		t.Errorf("scan order = %q, want %q", got, want)
	}
}

// Any non-empty selection of a name's words, in any order and with
// repeats, matches that name; adding a foreign word never does.
func TestMatches_Multiset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		vocab := []string{"red", "block", "iron", "sword", "old", "brass", "key"}
		nameWords := rapid.SliceOfNDistinct(rapid.SampledFrom(vocab), 1, 3, rapid.ID[string]).Draw(t, "name")
		name := strings.Join(nameWords, " ")

		query := rapid.SliceOfN(rapid.SampledFrom(nameWords), 1, 5).Draw(t, "query")
		if !Matches(name, strings.Join(query, " ")) {
			t.Fatalf("%q should match %q", query, name)
		}

		foreign := rapid.SampledFrom([]string{"plate", "blue", "dagger"}).Draw(t, "foreign")
		withForeign := append(append([]string{}, query...), foreign)
		if Matches(name, strings.Join(withForeign, " ")) {
			t.Fatalf("%q should not match %q", withForeign, name)
		}
	})
}

func TestMatches_RedBlock(t *testing.T) {
	for _, q := range []string{"red", "block", "red block", "red red", "block block", "red block block"} {
		if !Matches("red block", q) {
			t.Errorf("%q should match red block", q)
		}
	}
	for _, q := range []string{"red plate", "blue block", ""} {
		if Matches("red block", q) {
			t.Errorf("%q should not match red block", q)
		}
	}
}
