// Package types defines the shared data structures for the Wayfarer engine.
// This package contains only type definitions. It holds no logic and no methods.
package types

// Command is the grammatical shape of one sub-command:
// verb, noun phrase, preposition, object phrase.
// Empty strings mean the slot is absent. Prep == "" implies Obj == "".
type Command struct {
	Verb string `yaml:"verb"`
	Noun string `yaml:"noun,omitempty"`
	Prep string `yaml:"prep,omitempty"`
	Obj  string `yaml:"obj,omitempty"`
}

// Outcome classifies a turn. Only Active turns give enemies a swing and
// only Active or Passive turns become the target of "again".
type Outcome string

const (
	Passive Outcome = "passive"
	Active  Outcome = "active"
	Failed  Outcome = "failed"
	Clarify Outcome = "clarify"
)

// Result is the output of a single game step.
type Result struct {
	Output  []string
	Outcome Outcome
}

// Entity kinds used in EntityDef.Kind.
const (
	KindThing     = "thing"
	KindContainer = "container"
	KindWeapon    = "weapon"
	KindArmor     = "armor"
	KindGold      = "gold"
	KindKey       = "key"
	KindEnemy     = "enemy"
)

// EntityDef is the declarative form of anything that can sit in a room,
// an inventory or a container.
type EntityDef struct {
	ID      string `yaml:"id"`
	Kind    string `yaml:"kind"`
	Name    string `yaml:"name"`
	Desc    string `yaml:"desc,omitempty"`    // long description shown by look
	Inspect string `yaml:"inspect,omitempty"` // text shown by examine

	// container
	Closed   bool        `yaml:"closed,omitempty"`
	Locked   bool        `yaml:"locked,omitempty"`
	Key      string      `yaml:"key,omitempty"`
	Contents []EntityDef `yaml:"contents,omitempty"`

	// weapon / enemy
	MinDamage int `yaml:"min_damage,omitempty"`
	MaxDamage int `yaml:"max_damage,omitempty"`

	AC     int `yaml:"ac,omitempty"`     // armor
	Amount int `yaml:"amount,omitempty"` // gold

	// enemy
	HP    int         `yaml:"hp,omitempty"`
	MaxHP int         `yaml:"max_hp,omitempty"`
	XP    int         `yaml:"xp,omitempty"`
	Angry bool        `yaml:"angry,omitempty"`
	Loot  []EntityDef `yaml:"loot,omitempty"`

	// thing
	Edible bool `yaml:"edible,omitempty"`
	Heal   int  `yaml:"heal,omitempty"`
}

// ExitDef is one directional pathway out of a room.
type ExitDef struct {
	Direction string `yaml:"direction"`
	To        string `yaml:"to"`
	Name      string `yaml:"name,omitempty"` // e.g. "wooden door"; defaults to the direction
	Desc      string `yaml:"desc,omitempty"`
	Inspect   string `yaml:"inspect,omitempty"`
	Door      bool   `yaml:"door,omitempty"`
	Closed    bool   `yaml:"closed,omitempty"`
	Locked    bool   `yaml:"locked,omitempty"`
	Key       string `yaml:"key,omitempty"`
}

// RoomDef is the declarative form of a room.
type RoomDef struct {
	ID    string      `yaml:"id"`
	Name  string      `yaml:"name"`
	Desc  string      `yaml:"desc"`
	Exits []ExitDef   `yaml:"exits,omitempty"`
	Items []EntityDef `yaml:"items,omitempty"`
}

// PlayerDef is the declarative form of the player.
type PlayerDef struct {
	HP        int         `yaml:"hp"`
	MaxHP     int         `yaml:"max_hp"`
	XP        int         `yaml:"xp,omitempty"`
	NextLevel int         `yaml:"next_level,omitempty"`
	Level     int         `yaml:"level,omitempty"`
	InCombat  bool        `yaml:"in_combat,omitempty"`
	Inventory []EntityDef `yaml:"inventory,omitempty"`
	MainHand  string      `yaml:"main_hand,omitempty"` // entity ID in inventory
	Armor     string      `yaml:"armor,omitempty"`     // entity ID in inventory
}

// WorldDef is a complete game world: metadata, rooms and the player.
type WorldDef struct {
	Title  string    `yaml:"title"`
	Author string    `yaml:"author,omitempty"`
	Intro  string    `yaml:"intro,omitempty"`
	Start  string    `yaml:"start"`
	Rooms  []RoomDef `yaml:"rooms"`
	Player PlayerDef `yaml:"player"`
}

// PendingDef is a half-filled command waiting for the player's answer.
type PendingDef struct {
	Command Command `yaml:"command"`
	Prompt  string  `yaml:"prompt"`
}

// Session is the per-game memory that lives outside the world graph.
type Session struct {
	LastIt      string      `yaml:"last_it,omitempty"`
	LastCommand *Command    `yaml:"last_command,omitempty"`
	Pending     *PendingDef `yaml:"pending,omitempty"`
	Turn        int         `yaml:"turn"`
	Over        bool        `yaml:"over,omitempty"`
}

// SaveData is everything needed to resume a game.
type SaveData struct {
	Version int      `yaml:"version"`
	World   WorldDef `yaml:"world"`
	Current string   `yaml:"current"`
	Session Session  `yaml:"session"`
	RNGSeed int64    `yaml:"rng_seed"`
	RNGPos  int64    `yaml:"rng_position"`
}
