package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/wayfarer/engine/world"
	"github.com/nathoo/wayfarer/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

var knownKinds = map[string]bool{
	"":                  true,
	types.KindThing:     true,
	types.KindContainer: true,
	types.KindWeapon:    true,
	types.KindArmor:     true,
	types.KindGold:      true,
	types.KindKey:       true,
	types.KindEnemy:     true,
}

// Validate checks a world definition for referential integrity. Warnings
// are logged; only errors fail the load.
func Validate(def types.WorldDef) error {
	ve := Check(def)
	logWarnings(ve.Warnings)
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// Check returns every problem found in def, errors and warnings alike.
func Check(def types.WorldDef) *ValidationError {
	ve := &ValidationError{}

	if def.Title == "" {
		ve.errorf("game title is required")
	}

	rooms := map[string]types.RoomDef{}
	for _, r := range def.Rooms {
		if r.ID == "" {
			ve.errorf("room with name %q has no id", r.Name)
			continue
		}
		if _, dup := rooms[r.ID]; dup {
			ve.errorf("duplicate room id %q", r.ID)
		}
		rooms[r.ID] = r
	}

	if def.Start == "" {
		ve.errorf("start room is required")
	} else if _, ok := rooms[def.Start]; !ok {
		ve.errorf("start room %q not found in defined rooms", def.Start)
	}

	// Entities, depth first.
	ids := map[string]bool{}
	keys := map[string]bool{}
	var locks []lockRef
	var walk func(where string, list []types.EntityDef)
	walk = func(where string, list []types.EntityDef) {
		for _, ed := range list {
			checkEntity(ve, where, ed, ids, keys, &locks)
			walk(where, ed.Contents)
			walk(where, ed.Loot)
		}
	}
	for _, r := range def.Rooms {
		walk("room "+r.ID, r.Items)
	}
	walk("player", def.Player.Inventory)

	for _, r := range def.Rooms {
		dirs := map[string]bool{}
		for _, x := range r.Exits {
			dir, ok := world.Canonical(x.Direction)
			if !ok {
				ve.errorf("room %q has exit with unknown direction %q", r.ID, x.Direction)
				continue
			}
			if dirs[dir] {
				ve.errorf("room %q has two exits leading %s", r.ID, world.LongName(dir))
			}
			dirs[dir] = true
			if _, ok := rooms[x.To]; !ok {
				ve.errorf("room %q exit %q points to undefined room %q", r.ID, x.Direction, x.To)
			}
			locks = append(locks, lockRef{
				what:   fmt.Sprintf("room %q exit %q", r.ID, x.Direction),
				key:    x.Key,
				locked: x.Locked,
			})
		}
	}

	for _, l := range locks {
		switch {
		case l.key != "" && !keys[l.key]:
			ve.errorf("%s key %q is not a key entity", l.what, l.key)
		case l.key == "" && l.locked:
			ve.warnf("%s is locked with no key and can never be opened", l.what)
		}
	}

	checkPlayer(ve, def.Player)

	// The resolver never picks between identical names, so such a pair
	// can only be handled with "take all".
	for _, r := range def.Rooms {
		for _, name := range sharedNames(r.Items) {
			ve.warnf("room %q holds more than one %q and players cannot tell them apart", r.ID, name)
		}
	}
	for _, name := range sharedNames(def.Player.Inventory) {
		ve.warnf("player inventory holds more than one %q and players cannot tell them apart", name)
	}

	for _, id := range unreachable(def, rooms) {
		ve.warnf("room %q cannot be reached from the start room", id)
	}
	return ve
}

// lockRef is anything with a lock: a door or a container.
type lockRef struct {
	what   string
	key    string
	locked bool
}

func checkEntity(ve *ValidationError, where string, ed types.EntityDef, ids, keys map[string]bool, locks *[]lockRef) {
	label := ed.ID
	if label == "" {
		label = ed.Name
	}
	if ed.ID != "" {
		if ids[ed.ID] {
			ve.errorf("duplicate entity id %q", ed.ID)
		}
		ids[ed.ID] = true
	}
	if ed.Name == "" {
		ve.errorf("%s: entity %q has no name", where, label)
	}
	if !knownKinds[ed.Kind] {
		ve.errorf("%s: entity %q has unknown kind %q", where, label, ed.Kind)
	}
	if len(ed.Contents) > 0 && ed.Kind != types.KindContainer {
		ve.errorf("%s: entity %q holds contents but is not a container", where, label)
	}
	if len(ed.Loot) > 0 && ed.Kind != types.KindEnemy {
		ve.errorf("%s: entity %q has loot but is not an enemy", where, label)
	}

	switch ed.Kind {
	case types.KindKey:
		if ed.ID == "" {
			ve.errorf("%s: key %q needs an id so locks can refer to it", where, label)
		}
		keys[ed.ID] = true
	case types.KindContainer:
		*locks = append(*locks, lockRef{
			what:   fmt.Sprintf("container %q", label),
			key:    ed.Key,
			locked: ed.Locked,
		})
	case types.KindWeapon:
		if ed.MaxDamage > 0 && ed.MinDamage > ed.MaxDamage {
			ve.errorf("%s: weapon %q has min damage above max damage", where, label)
		}
	case types.KindEnemy:
		if ed.HP <= 0 {
			ve.errorf("%s: enemy %q has no hit points", where, label)
		}
	}
}

func checkPlayer(ve *ValidationError, pd types.PlayerDef) {
	kinds := map[string]string{}
	for _, ed := range pd.Inventory {
		kinds[ed.ID] = ed.Kind
	}
	if pd.MainHand != "" {
		if k, ok := kinds[pd.MainHand]; !ok {
			ve.errorf("player main hand %q is not in the inventory", pd.MainHand)
		} else if k != types.KindWeapon {
			ve.errorf("player main hand %q is not a weapon", pd.MainHand)
		}
	}
	if pd.Armor != "" {
		if k, ok := kinds[pd.Armor]; !ok {
			ve.errorf("player armor %q is not in the inventory", pd.Armor)
		} else if k != types.KindArmor {
			ve.errorf("player armor %q is not armor", pd.Armor)
		}
	}
	if pd.MaxHP > 0 && pd.HP > pd.MaxHP {
		ve.warnf("player starts with %d HP above the cap of %d", pd.HP, pd.MaxHP)
	}
}

// sharedNames lists names that occur more than once in list or in the
// contents nested below it, in first-seen order.
func sharedNames(list []types.EntityDef) []string {
	seen := map[string]int{}
	var order []string
	var walk func([]types.EntityDef)
	walk = func(list []types.EntityDef) {
		for _, ed := range list {
			name := strings.ToLower(ed.Name)
			if seen[name]++; seen[name] == 2 {
				order = append(order, ed.Name)
			}
			walk(ed.Contents)
		}
	}
	walk(list)
	return order
}

// unreachable lists rooms no chain of exits leads to from the start, in
// definition order. Locked doors count as passable.
func unreachable(def types.WorldDef, rooms map[string]types.RoomDef) []string {
	if _, ok := rooms[def.Start]; !ok {
		return nil
	}
	seen := map[string]bool{def.Start: true}
	queue := []string{def.Start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, x := range rooms[id].Exits {
			if _, ok := rooms[x.To]; ok && !seen[x.To] {
				seen[x.To] = true
				queue = append(queue, x.To)
			}
		}
	}

	var out []string
	for _, r := range def.Rooms {
		if !seen[r.ID] {
			out = append(out, r.ID)
		}
	}
	return out
}
