package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/wayfarer/types"
)

// registerAPI registers the world-building constructors as globals.
//
//	Game { title = "...", start = "cellar" }
//	Room "cellar" { name = "Cellar", description = "...", exits = { north = "hall" } }
//	Item "leaf" { name = "green leaf", location = "cellar" }
//	Enemy "troll" { name = "troll", hp = 10, max_damage = 4, loot = { "fang" }, location = "hall" }
//	Player { hp = 13, main_hand = "sword" }
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Player { hp = 13, ... }
	L.SetGlobal("Player", L.NewFunction(func(L *lua.LState) int {
		coll.player = L.CheckTable(1)
		return 0
	}))

	// Room "id" { ... } is curried: Room("id") returns a function that
	// takes a table.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.rooms = append(coll.rooms, rawRoom{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	kinds := map[string]string{
		"Item":      types.KindThing,
		"Container": types.KindContainer,
		"Weapon":    types.KindWeapon,
		"Armor":     types.KindArmor,
		"Gold":      types.KindGold,
		"Key":       types.KindKey,
		"Enemy":     types.KindEnemy,
	}
	for global, kind := range kinds {
		L.SetGlobal(global, entityConstructor(L, coll, kind))
	}
}

// entityConstructor returns the curried Kind "id" { ... } constructor.
func entityConstructor(L *lua.LState, coll *collector, kind string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.entities = append(coll.entities, rawEntity{id: id, kind: kind, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	})
}
