// Package loader loads world content into declarative definitions. Lua
// worlds run once in a sandboxed VM that is discarded after loading, so
// there is no Lua at runtime. YAML worlds decode straight into the same
// definitions.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/wayfarer/types"
)

// playerLocation places an entity in the starting inventory.
const playerLocation = "player"

// rawRoom holds a room table before compilation.
type rawRoom struct {
	id    string
	table *lua.LTable
}

// rawEntity holds an entity table before compilation.
type rawEntity struct {
	id    string
	kind  string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// stringList reads the array part of a table as strings.
func stringList(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts the collected Lua tables into a nested world
// definition. Flat `location` references become containment: rooms hold
// items, containers hold contents and enemies carry their loot.
func compile(coll *collector) (types.WorldDef, error) {
	if coll.game == nil {
		return types.WorldDef{}, fmt.Errorf("no Game{} definition found")
	}
	def := compileGame(coll.game)

	rooms := map[string]int{}
	for _, raw := range coll.rooms {
		if _, dup := rooms[raw.id]; dup {
			return types.WorldDef{}, fmt.Errorf("duplicate room %q", raw.id)
		}
		room, err := compileRoom(raw)
		if err != nil {
			return types.WorldDef{}, fmt.Errorf("compiling room %s: %w", raw.id, err)
		}
		rooms[raw.id] = len(def.Rooms)
		def.Rooms = append(def.Rooms, room)
	}

	p, err := placeEntities(coll, rooms)
	if err != nil {
		return types.WorldDef{}, err
	}
	for i := range def.Rooms {
		items, err := p.assemble(def.Rooms[i].ID)
		if err != nil {
			return types.WorldDef{}, err
		}
		def.Rooms[i].Items = items
	}

	if coll.player != nil {
		def.Player = compilePlayer(coll.player)
	}
	if def.Player.Inventory, err = p.assemble(playerLocation); err != nil {
		return types.WorldDef{}, err
	}

	for _, id := range p.order {
		if !p.emitted[id] {
			return types.WorldDef{}, fmt.Errorf("entity %q is never placed; check for containers inside each other", id)
		}
	}
	return def, nil
}

// placement is the containment forest built from location references.
type placement struct {
	defs     map[string]types.EntityDef
	order    []string
	children map[string][]string // holder id → entity ids in source order
	loot     map[string][]string // enemy id → loot ids
	emitted  map[string]bool
	visiting map[string]bool
}

func placeEntities(coll *collector, rooms map[string]int) (*placement, error) {
	p := &placement{
		defs:     map[string]types.EntityDef{},
		children: map[string][]string{},
		loot:     map[string][]string{},
		emitted:  map[string]bool{},
		visiting: map[string]bool{},
	}
	locations := map[string]string{}
	for _, raw := range coll.entities {
		if _, dup := p.defs[raw.id]; dup {
			return nil, fmt.Errorf("duplicate entity %q", raw.id)
		}
		p.defs[raw.id] = compileEntity(raw)
		p.order = append(p.order, raw.id)
		locations[raw.id] = getString(raw.table, "location")
	}

	lootOf := map[string]string{}
	for _, raw := range coll.entities {
		if raw.kind != types.KindEnemy {
			continue
		}
		for _, id := range stringList(getTable(raw.table, "loot")) {
			if _, ok := p.defs[id]; !ok {
				return nil, fmt.Errorf("enemy %q loot references undefined entity %q", raw.id, id)
			}
			if owner, ok := lootOf[id]; ok {
				return nil, fmt.Errorf("entity %q is loot of both %q and %q", id, owner, raw.id)
			}
			lootOf[id] = raw.id
			p.loot[raw.id] = append(p.loot[raw.id], id)
		}
	}

	for _, id := range p.order {
		loc := locations[id]
		if owner, ok := lootOf[id]; ok {
			if loc != "" {
				return nil, fmt.Errorf("entity %q is loot of %q but also placed at %q", id, owner, loc)
			}
			continue
		}
		if loc == "" {
			return nil, fmt.Errorf("entity %q has no location", id)
		}
		if _, isRoom := rooms[loc]; !isRoom && loc != playerLocation {
			holder, ok := p.defs[loc]
			if !ok {
				return nil, fmt.Errorf("entity %q location %q is not a room, container or the player", id, loc)
			}
			if holder.Kind != types.KindContainer {
				return nil, fmt.Errorf("entity %q location %q is not a container", id, loc)
			}
		}
		p.children[loc] = append(p.children[loc], id)
	}
	return p, nil
}

// assemble builds the nested definitions of everything held by holder.
func (p *placement) assemble(holder string) ([]types.EntityDef, error) {
	var out []types.EntityDef
	for _, id := range p.children[holder] {
		ed, err := p.build(id)
		if err != nil {
			return nil, err
		}
		out = append(out, ed)
	}
	return out, nil
}

func (p *placement) build(id string) (types.EntityDef, error) {
	if p.visiting[id] {
		return types.EntityDef{}, fmt.Errorf("entity %q contains itself", id)
	}
	p.visiting[id] = true
	defer delete(p.visiting, id)

	ed := p.defs[id]
	contents, err := p.assemble(id)
	if err != nil {
		return types.EntityDef{}, err
	}
	ed.Contents = contents
	for _, lid := range p.loot[id] {
		l, err := p.build(lid)
		if err != nil {
			return types.EntityDef{}, err
		}
		ed.Loot = append(ed.Loot, l)
	}
	p.emitted[id] = true
	return ed, nil
}

func compileGame(tbl *lua.LTable) types.WorldDef {
	return types.WorldDef{
		Title:  getString(tbl, "title"),
		Author: getString(tbl, "author"),
		Intro:  getString(tbl, "intro"),
		Start:  getString(tbl, "start"),
	}
}

// compileRoom compiles a raw room. Exits are emitted in direction order
// since Lua tables have none.
func compileRoom(raw rawRoom) (types.RoomDef, error) {
	tbl := raw.table
	room := types.RoomDef{
		ID:   raw.id,
		Name: getString(tbl, "name"),
		Desc: getString(tbl, "description"),
	}
	if room.Name == "" {
		room.Name = raw.id
	}

	exits := getTable(tbl, "exits")
	if exits == nil {
		return room, nil
	}
	var dirs []string
	byDir := map[string]lua.LValue{}
	exits.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			dirs = append(dirs, string(ks))
			byDir[string(ks)] = v
		}
	})
	sort.Strings(dirs)

	for _, dir := range dirs {
		switch v := byDir[dir].(type) {
		case lua.LString:
			room.Exits = append(room.Exits, types.ExitDef{Direction: dir, To: string(v)})
		case *lua.LTable:
			room.Exits = append(room.Exits, types.ExitDef{
				Direction: dir,
				To:        getString(v, "to"),
				Name:      getString(v, "name"),
				Desc:      getString(v, "description"),
				Inspect:   getString(v, "inspect"),
				Door:      getBool(v, "door", false),
				Closed:    getBool(v, "closed", false),
				Locked:    getBool(v, "locked", false),
				Key:       getString(v, "key"),
			})
		default:
			return room, fmt.Errorf("exit %q must be a room id or a table", dir)
		}
	}
	return room, nil
}

// compileEntity compiles the flat fields of an entity. Containment is
// filled in later by placement.
func compileEntity(raw rawEntity) types.EntityDef {
	tbl := raw.table
	ed := types.EntityDef{
		ID:        raw.id,
		Kind:      raw.kind,
		Name:      getString(tbl, "name"),
		Desc:      getString(tbl, "description"),
		Inspect:   getString(tbl, "inspect"),
		Closed:    getBool(tbl, "closed", false),
		Locked:    getBool(tbl, "locked", false),
		Key:       getString(tbl, "key"),
		MinDamage: getInt(tbl, "min_damage"),
		MaxDamage: getInt(tbl, "max_damage"),
		AC:        getInt(tbl, "ac"),
		Amount:    getInt(tbl, "amount"),
		HP:        getInt(tbl, "hp"),
		MaxHP:     getInt(tbl, "max_hp"),
		XP:        getInt(tbl, "xp"),
		Angry:     getBool(tbl, "angry", false),
		Edible:    getBool(tbl, "edible", false),
		Heal:      getInt(tbl, "heal"),
	}
	if ed.Name == "" {
		ed.Name = raw.id
	}
	return ed
}

func compilePlayer(tbl *lua.LTable) types.PlayerDef {
	return types.PlayerDef{
		HP:        getInt(tbl, "hp"),
		MaxHP:     getInt(tbl, "max_hp"),
		XP:        getInt(tbl, "xp"),
		Level:     getInt(tbl, "level"),
		NextLevel: getInt(tbl, "next_level"),
		MainHand:  getString(tbl, "main_hand"),
		Armor:     getString(tbl, "armor"),
	}
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
