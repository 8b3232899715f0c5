package loader

import (
	"strings"
	"testing"

	"github.com/nathoo/wayfarer/types"
)

func validDef() types.WorldDef {
	return types.WorldDef{
		Title: "T",
		Start: "hall",
		Rooms: []types.RoomDef{
			{ID: "hall", Name: "Hall", Exits: []types.ExitDef{
				{Direction: "n", To: "yard", Name: "gate", Locked: true, Key: "brass"},
			}},
			{ID: "yard", Name: "Yard", Exits: []types.ExitDef{{Direction: "south", To: "hall"}}},
		},
		Player: types.PlayerDef{
			HP:    10,
			MaxHP: 10,
			Inventory: []types.EntityDef{
				{ID: "brass", Kind: types.KindKey, Name: "brass key"},
				{ID: "sword", Kind: types.KindWeapon, Name: "sword", MinDamage: 1, MaxDamage: 2},
			},
			MainHand: "sword",
		},
	}
}

func hasMessage(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func TestCheck_Valid(t *testing.T) {
	ve := Check(validDef())
	if len(ve.Errors) != 0 || len(ve.Warnings) != 0 {
		t.Errorf("expected clean result, got %+v", ve)
	}
	if err := Validate(validDef()); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestCheck_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.WorldDef)
		want   string
	}{
		{"missing title", func(d *types.WorldDef) { d.Title = "" }, "title is required"},
		{"missing start", func(d *types.WorldDef) { d.Start = "" }, "start room is required"},
		{"unknown start", func(d *types.WorldDef) { d.Start = "moon" }, `start room "moon" not found`},
		{"duplicate room", func(d *types.WorldDef) {
			d.Rooms = append(d.Rooms, types.RoomDef{ID: "yard", Name: "Yard"})
		}, `duplicate room id "yard"`},
		{"room without id", func(d *types.WorldDef) {
			d.Rooms = append(d.Rooms, types.RoomDef{Name: "Loft"})
		}, `"Loft" has no id`},
		{"unknown direction", func(d *types.WorldDef) {
			d.Rooms[1].Exits = append(d.Rooms[1].Exits, types.ExitDef{Direction: "sideways", To: "hall"})
		}, `unknown direction "sideways"`},
		{"two exits one way", func(d *types.WorldDef) {
			d.Rooms[1].Exits = append(d.Rooms[1].Exits, types.ExitDef{Direction: "s", To: "hall"})
		}, "two exits leading south"},
		{"undefined target", func(d *types.WorldDef) {
			d.Rooms[1].Exits[0].To = "void"
		}, `undefined room "void"`},
		{"key not a key", func(d *types.WorldDef) {
			d.Rooms[0].Exits[0].Key = "sword"
		}, `key "sword" is not a key entity`},
		{"duplicate entity", func(d *types.WorldDef) {
			d.Rooms[0].Items = []types.EntityDef{{ID: "sword", Name: "other sword"}}
		}, `duplicate entity id "sword"`},
		{"nameless entity", func(d *types.WorldDef) {
			d.Rooms[0].Items = []types.EntityDef{{ID: "blob"}}
		}, `"blob" has no name`},
		{"unknown kind", func(d *types.WorldDef) {
			d.Rooms[0].Items = []types.EntityDef{{ID: "x", Name: "x", Kind: "dragon"}}
		}, `unknown kind "dragon"`},
		{"contents outside container", func(d *types.WorldDef) {
			d.Rooms[0].Items = []types.EntityDef{{ID: "rock", Name: "rock", Contents: []types.EntityDef{{ID: "gem", Name: "gem"}}}}
		}, "is not a container"},
		{"loot outside enemy", func(d *types.WorldDef) {
			d.Rooms[0].Items = []types.EntityDef{{ID: "rock", Name: "rock", Loot: []types.EntityDef{{ID: "gem", Name: "gem"}}}}
		}, "is not an enemy"},
		{"key without id", func(d *types.WorldDef) {
			d.Rooms[0].Items = []types.EntityDef{{Kind: types.KindKey, Name: "odd key"}}
		}, "needs an id"},
		{"weapon damage range", func(d *types.WorldDef) {
			d.Player.Inventory[1].MinDamage = 5
		}, "min damage above max damage"},
		{"enemy without hp", func(d *types.WorldDef) {
			d.Rooms[1].Items = []types.EntityDef{{ID: "ghost", Kind: types.KindEnemy, Name: "ghost"}}
		}, "has no hit points"},
		{"main hand missing", func(d *types.WorldDef) { d.Player.MainHand = "axe" }, `main hand "axe" is not in the inventory`},
		{"main hand not weapon", func(d *types.WorldDef) { d.Player.MainHand = "brass" }, "is not a weapon"},
		{"armor not armor", func(d *types.WorldDef) { d.Player.Armor = "sword" }, "is not armor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDef()
			tt.mutate(&def)
			ve := Check(def)
			if !hasMessage(ve.Errors, tt.want) {
				t.Errorf("errors %v do not mention %q", ve.Errors, tt.want)
			}
			if err := Validate(def); err == nil {
				t.Error("Validate should fail")
			}
		})
	}
}

func TestCheck_Warnings(t *testing.T) {
	def := validDef()
	def.Rooms[0].Exits[0].Key = ""
	def.Rooms = append(def.Rooms, types.RoomDef{ID: "island", Name: "Island"})
	def.Player.HP = 15

	ve := Check(def)
	if len(ve.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ve.Errors)
	}
	for _, want := range []string{"can never be opened", `"island" cannot be reached`, "above the cap"} {
		if !hasMessage(ve.Warnings, want) {
			t.Errorf("warnings %v do not mention %q", ve.Warnings, want)
		}
	}

	// Warnings alone do not fail validation.
	if err := Validate(def); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestCheck_SharedNames(t *testing.T) {
	def := validDef()
	def.Rooms[1].Items = []types.EntityDef{
		{ID: "c1", Kind: types.KindGold, Name: "coin", Amount: 1},
		{ID: "box", Kind: types.KindContainer, Name: "box", Contents: []types.EntityDef{
			{ID: "c2", Kind: types.KindGold, Name: "Coin", Amount: 1},
		}},
	}
	ve := Check(def)
	if len(ve.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ve.Errors)
	}
	if !hasMessage(ve.Warnings, `room "yard" holds more than one "Coin"`) {
		t.Errorf("warnings %v do not mention the shared name", ve.Warnings)
	}
}

func TestCheck_ContainerLocks(t *testing.T) {
	def := validDef()
	def.Rooms[0].Items = []types.EntityDef{
		{ID: "chest", Kind: types.KindContainer, Name: "chest", Locked: true, Closed: true, Key: "brass"},
		{ID: "safe", Kind: types.KindContainer, Name: "safe", Locked: true, Closed: true, Key: "chest"},
	}
	ve := Check(def)
	if len(ve.Errors) != 1 || !strings.Contains(ve.Errors[0], `container "safe" key "chest"`) {
		t.Errorf("unexpected errors: %v", ve.Errors)
	}
}

func TestValidationError_Message(t *testing.T) {
	ve := &ValidationError{}
	ve.errorf("first %d", 1)
	ve.errorf("second")
	msg := ve.Error()
	if !strings.Contains(msg, "2 error(s)") || !strings.Contains(msg, "first 1") || !strings.Contains(msg, "second") {
		t.Errorf("unexpected message: %q", msg)
	}
}
