// Package world holds the live game model: the closed set of entity
// variants, the room graph and the player. Everything in it is owned by
// exactly one Holder at a time, and Move is the only way ownership changes.
package world

import (
	"strings"
)

// Attrs is the capability set every entity shares.
type Attrs struct {
	ID     string
	Name   string
	Desc   string // long description, shown by look
	Detail string // inspect text, shown by examine
}

// Meta returns the shared attributes.
func (a *Attrs) Meta() *Attrs { return a }

func (a *Attrs) sealed() {}

// Entity is implemented only by the variants in this package:
// *Thing, *Container, *Weapon, *Armor, *Gold, *Key, *Enemy, *Pathway, *Room.
// Callers branch on capability with a type switch.
type Entity interface {
	Meta() *Attrs
	sealed()
}

// Thing is a plain portable object.
type Thing struct {
	Attrs
	Edible bool
	Heal   int
}

// Container is an openable entity holding other entities.
type Container struct {
	Attrs
	Closed   bool
	Locked   bool
	KeyID    string
	Contents []Entity
}

func (c *Container) Items() []Entity { return c.Contents }
func (c *Container) Add(e Entity)    { c.Contents = append(c.Contents, e) }
func (c *Container) Remove(id string) (Entity, bool) {
	var e Entity
	var ok bool
	c.Contents, e, ok = removeID(c.Contents, id)
	return e, ok
}

// Weapon deals damage in [MinDamage, MaxDamage] when attacking.
type Weapon struct {
	Attrs
	MinDamage int
	MaxDamage int
}

// Armor can be worn.
type Armor struct {
	Attrs
	AC int
}

// Gold is a pile of coins.
type Gold struct {
	Attrs
	Amount int
}

// Key unlocks pathways and containers whose KeyID is its ID.
type Key struct {
	Attrs
}

// Enemy is a hostile creature. Enemies live in their room's item list.
type Enemy struct {
	Attrs
	HP        int
	MaxHP     int
	MaxDamage int
	XP        int
	Angry     bool
	Loot      []Entity
}

// Alive reports whether the enemy still has hit points.
func (e *Enemy) Alive() bool { return e.HP > 0 }

// Hit subtracts damage and makes the enemy angry.
func (e *Enemy) Hit(damage int) {
	e.HP -= damage
	e.Angry = true
}

// Pathway is a directional exit from a room to the room with ID Target.
type Pathway struct {
	Attrs
	Direction string // canonical short code
	Target    string
	Door      bool
	Closed    bool
	Locked    bool
	KeyID     string
}

// Open reports whether the pathway can be walked through.
func (p *Pathway) Open() bool { return !p.Closed && !p.Locked }

// Portable reports whether an entity can be picked up.
func Portable(e Entity) bool {
	switch e.(type) {
	case *Enemy, *Pathway, *Room:
		return false
	}
	return true
}

// Encloses reports whether target is outer itself or is nested anywhere
// inside outer.
func Encloses(outer, target Entity) bool {
	if outer.Meta().ID == target.Meta().ID {
		return true
	}
	c, ok := outer.(*Container)
	if !ok {
		return false
	}
	for _, child := range c.Contents {
		if Encloses(child, target) {
			return true
		}
	}
	return false
}

// LongDesc renders an entity for a room listing. Open, non-empty
// containers list their contents underneath.
func LongDesc(e Entity) string {
	m := e.Meta()
	desc := m.Desc
	if desc == "" {
		desc = "There is a " + m.Name + " here."
	}
	c, ok := e.(*Container)
	if !ok || c.Closed || len(c.Contents) == 0 {
		return desc
	}
	var b strings.Builder
	b.WriteString(desc)
	b.WriteString("\nThe " + m.Name + " contains:")
	for _, child := range c.Contents {
		for _, line := range strings.Split(LongDesc(child), "\n") {
			b.WriteString("\n  " + line)
		}
	}
	return b.String()
}

// Inspect returns the examine text, falling back to the long description.
func Inspect(e Entity) string {
	m := e.Meta()
	if m.Detail != "" {
		return m.Detail
	}
	if m.Desc != "" {
		return m.Desc
	}
	return "You see nothing special about the " + m.Name + "."
}

func removeID(list []Entity, id string) ([]Entity, Entity, bool) {
	for i, e := range list {
		if e.Meta().ID == id {
			out := make([]Entity, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out, e, true
		}
	}
	return list, nil, false
}
