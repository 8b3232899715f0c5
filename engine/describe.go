package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/wayfarer/engine/world"
)

const helpText = `Type commands in plain English, for example:
  go north / n / walk through the door
  look / examine the chest / look in the bag
  take the lamp / take all / take (or remove) the coin from the box
  put the leaf in the capsule / drop the sword
  open / close / unlock the door with the key / lock the chest
  wear / take off the cloak / equip the sword / eat the apple
  attack the troll with the sword / rest / wait
  inventory (i) / status / again (g)
Chain commands with "and", commas or periods. "it" refers to the last
thing you handled.`

// Look describes the current room without taking a turn. Front ends show
// it on start and after a restore.
func (e *Engine) Look() string { return e.describeRoom() }

// describeRoom renders what the player sees on entering or looking.
func (e *Engine) describeRoom() string {
	room := e.World.Room()

	var b strings.Builder
	b.WriteString(room.Name)
	if room.Desc != "" {
		b.WriteString("\n" + room.Desc)
	}

	for _, ent := range room.Contents {
		if _, ok := ent.(*world.Enemy); ok {
			continue
		}
		b.WriteString("\n" + world.LongDesc(ent))
	}

	if dirs := room.Directions(); len(dirs) > 0 {
		names := make([]string, len(dirs))
		for i, d := range dirs {
			names[i] = world.LongName(d)
			if p := room.Paths[d]; p.Door && p.Closed {
				names[i] += " (closed)"
			}
		}
		b.WriteString("\nExits: " + strings.Join(names, ", "))
	}

	for _, en := range room.Enemies() {
		if !en.Alive() {
			continue
		}
		line := fmt.Sprintf("\nA %s is here.", en.Name)
		if en.Angry {
			line = fmt.Sprintf("\nA %s is here (angry).", en.Name)
		}
		b.WriteString(line)
	}
	return b.String()
}

func (e *Engine) describeInventory() string {
	p := e.World.Player
	if len(p.Inventory) == 0 {
		return "Your inventory is empty."
	}
	var b strings.Builder
	b.WriteString("You are carrying:")
	for _, ent := range p.Inventory {
		line := "  " + ent.Meta().Name
		switch ent.Meta().ID {
		case p.MainHand:
			line += " (equipped)"
		case p.Armor:
			line += " (worn)"
		}
		if c, ok := ent.(*world.Container); ok && !c.Closed {
			for _, child := range c.Contents {
				line += "\n    " + child.Meta().Name
			}
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}

func (e *Engine) describeStatus() string {
	p := e.World.Player
	ac := 10
	if a := p.Worn(); a != nil {
		ac += a.AC
	}
	return fmt.Sprintf("Level: %d\nHP: (%d / %d)\nAC: %d\nXP: (%d / %d)",
		p.Level, p.HP, p.MaxHP, ac, p.XP, p.NextLevel)
}
