package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/wayfarer/engine/action"
	"github.com/nathoo/wayfarer/engine/resolve"
	"github.com/nathoo/wayfarer/engine/world"
	"github.com/nathoo/wayfarer/types"
)

// Every executor is total. A nil candidate for a slot the action needs is
// a resolver defect, reported as "There is no "X" here." rather than a
// panic.

func noSuch(phrase string) (string, types.Outcome) {
	return fmt.Sprintf("There is no %q here.", phrase), types.Failed
}

func failed(format string, args ...any) (string, types.Outcome) {
	return fmt.Sprintf(format, args...), types.Failed
}

func (e *Engine) execLook(_ action.Action, _, _ *resolve.Candidate) (string, types.Outcome) {
	return e.describeRoom(), types.Passive
}

func (e *Engine) execInventory(_ action.Action, _, _ *resolve.Candidate) (string, types.Outcome) {
	return e.describeInventory(), types.Passive
}

func (e *Engine) execStatus(_ action.Action, _, _ *resolve.Candidate) (string, types.Outcome) {
	return e.describeStatus(), types.Passive
}

func (e *Engine) execHelp(_ action.Action, _, _ *resolve.Candidate) (string, types.Outcome) {
	return helpText, types.Passive
}

func (e *Engine) execWait(_ action.Action, _, _ *resolve.Candidate) (string, types.Outcome) {
	return "Time passes...", types.Active
}

func (e *Engine) execRest(_ action.Action, _, _ *resolve.Candidate) (string, types.Outcome) {
	p := e.World.Player
	if p.HP >= p.MaxHP {
		return failed("You already have full health.")
	}
	if p.InCombat || e.World.Room().Hostile() {
		return failed("You cannot rest while in combat.")
	}
	gained := p.Heal(e.Dice.Roll(6))
	return fmt.Sprintf("You regained %d HP for a total of (%d / %d) HP.", gained, p.HP, p.MaxHP), types.Active
}

// execWalk moves through an exit named by direction code or by the
// pathway's own name.
func (e *Engine) execWalk(a action.Action, _, _ *resolve.Candidate) (string, types.Outcome) {
	room := e.World.Room()
	path, ok := room.Paths[a.Noun]
	if !ok {
		h := handlers[action.Walk]
		h.nounMissing = func(action.Action) string { return "You cannot go that way." }
		c, text, outcome, found := e.resolveSlot(resolve.Scan(e.World), a, h, nounSlot, resolve.Exits, h.nounPrefer)
		if !found {
			return text, outcome
		}
		path = c.Entity.(*world.Pathway)
	}

	switch {
	case path.Locked:
		return failed("The way is locked.")
	case path.Closed:
		return failed("The way is shut.")
	case room.Hostile():
		return failed("Enemies bar your way.")
	}
	if err := e.World.Enter(path.Target); err != nil {
		return failed("You cannot go that way.")
	}
	e.World.Player.InCombat = false
	return e.describeRoom(), types.Active
}

func (e *Engine) execExamine(a action.Action, _, _ *resolve.Candidate) (string, types.Outcome) {
	switch a.Noun {
	case "me", "self", "myself":
		return e.describeStatus(), types.Active
	}
	c, text, outcome, ok := e.resolveSlot(resolve.Scan(e.World), a, handlers[action.Examine], nounSlot, resolve.Visible, handlers[action.Examine].nounPrefer)
	if !ok {
		return text, outcome
	}

	var b strings.Builder
	b.WriteString(world.Inspect(c.Entity))
	switch v := c.Entity.(type) {
	case *world.Container:
		switch {
		case v.Closed:
			fmt.Fprintf(&b, "\nThe %s is closed.", v.Name)
		case len(v.Contents) == 0:
			fmt.Fprintf(&b, "\nThe %s is empty.", v.Name)
		default:
			fmt.Fprintf(&b, "\nThe %s contains:", v.Name)
			for _, child := range v.Contents {
				b.WriteString("\n  " + child.Meta().Name)
			}
		}
	case *world.Weapon:
		fmt.Fprintf(&b, "\nIt deals %d to %d damage.", v.MinDamage, v.MaxDamage)
	case *world.Armor:
		fmt.Fprintf(&b, "\nIt has an armor class of %d.", v.AC)
	case *world.Gold:
		fmt.Fprintf(&b, "\nThere are %d coins.", v.Amount)
	case *world.Enemy:
		fmt.Fprintf(&b, "\nIt has %d HP.", v.HP)
	}
	return b.String(), types.Active
}

func (e *Engine) execTake(a action.Action, noun, _ *resolve.Candidate) (string, types.Outcome) {
	if noun == nil {
		return noSuch(a.Noun)
	}
	ent := noun.Entity
	if !world.Portable(ent) {
		return failed("You cannot take the %s.", ent.Meta().Name)
	}
	p := e.World.Player
	if noun.Owner == world.Holder(p) {
		return failed("You already have the %s.", ent.Meta().Name)
	}
	if err := world.Move(ent, noun.Owner, p); err != nil {
		return noSuch(a.Noun)
	}
	return takenText(ent), types.Active
}

func takenText(ent world.Entity) string {
	if _, ok := ent.(*world.Weapon); ok {
		return "Taken.\n(You can equip weapons with \"equip\" or \"draw\")"
	}
	return "Taken."
}

func (e *Engine) execTakeAll(_ action.Action, _, _ *resolve.Candidate) (string, types.Outcome) {
	room := e.World.Room()
	var names []string
	for _, ent := range append([]world.Entity(nil), room.Contents...) {
		if !world.Portable(ent) {
			continue
		}
		if err := world.Move(ent, room, e.World.Player); err == nil {
			names = append(names, ent.Meta().Name)
		}
	}
	if len(names) == 0 {
		return failed("There is nothing to take.")
	}
	return "Taken: " + strings.Join(names, ", ") + ".", types.Active
}

// execTakeFrom runs after the container was resolved first; the noun was
// looked for only among its contents.
func (e *Engine) execTakeFrom(a action.Action, noun, obj *resolve.Candidate) (string, types.Outcome) {
	if obj == nil {
		return noSuch(a.Obj)
	}
	c, ok := obj.Entity.(*world.Container)
	if !ok {
		return failed("You cannot take anything from the %q.", a.Obj)
	}
	if noun == nil || noun.Owner != world.Holder(c) {
		return failed("There is no %q inside of the %q.", a.Noun, a.Obj)
	}
	if c.Closed {
		return failed("The %s is closed.", c.Name)
	}
	if err := world.Move(noun.Entity, c, e.World.Player); err != nil {
		return noSuch(a.Noun)
	}
	return takenText(noun.Entity), types.Active
}

func (e *Engine) execDrop(a action.Action, noun, _ *resolve.Candidate) (string, types.Outcome) {
	if noun == nil {
		return noSuch(a.Noun)
	}
	if err := world.Move(noun.Entity, noun.Owner, e.World.Room()); err != nil {
		return failed("You do not have the %q.", a.Noun)
	}
	return "Dropped.", types.Active
}

func (e *Engine) execPut(a action.Action, noun, obj *resolve.Candidate) (string, types.Outcome) {
	if noun == nil || obj == nil {
		return noSuch(a.Noun)
	}
	c, ok := obj.Entity.(*world.Container)
	if !ok {
		return failed("The %s is not a container.", obj.Entity.Meta().Name)
	}
	if c.Closed {
		return failed("The %s is closed.", c.Name)
	}
	if world.Encloses(noun.Entity, c) {
		return failed("Impossible.")
	}
	if err := world.Move(noun.Entity, noun.Owner, c); err != nil {
		return failed("Impossible.")
	}
	return "Placed.", types.Active
}

// carry moves a nested carried entity to the top of the inventory so it
// can be equipped.
func (e *Engine) carry(c *resolve.Candidate) {
	p := e.World.Player
	if c.Owner != world.Holder(p) {
		if err := world.Move(c.Entity, c.Owner, p); err == nil {
			c.Owner = p
		}
	}
}

func (e *Engine) execWear(a action.Action, noun, _ *resolve.Candidate) (string, types.Outcome) {
	if noun == nil {
		return noSuch(a.Noun)
	}
	armor, ok := noun.Entity.(*world.Armor)
	if !ok {
		return failed("You cannot put on the %q, which isn't armor.", a.Noun)
	}
	e.carry(noun)
	e.World.Player.Armor = armor.ID
	return "Donned.", types.Active
}

func (e *Engine) execEquip(a action.Action, noun, _ *resolve.Candidate) (string, types.Outcome) {
	if noun == nil {
		return noSuch(a.Noun)
	}
	switch v := noun.Entity.(type) {
	case *world.Weapon:
		e.carry(noun)
		e.World.Player.MainHand = v.ID
		return "Equipped.", types.Active
	case *world.Armor:
		return e.execWear(a, noun, nil)
	}
	return failed("The %s is neither armor nor weapon.", noun.Entity.Meta().Name)
}

// execDoff unequips without dropping: the item stays in the inventory.
func (e *Engine) execDoff(a action.Action, noun, _ *resolve.Candidate) (string, types.Outcome) {
	if noun == nil {
		return noSuch(a.Noun)
	}
	p := e.World.Player
	switch noun.Entity.Meta().ID {
	case p.Armor:
		p.Armor = ""
		return "You take off the " + noun.Entity.Meta().Name + ".", types.Active
	case p.MainHand:
		p.MainHand = ""
		return "You put away the " + noun.Entity.Meta().Name + ".", types.Active
	}
	return failed("You are not wearing or wielding the %s.", noun.Entity.Meta().Name)
}

func (e *Engine) execOpen(a action.Action, noun, _ *resolve.Candidate) (string, types.Outcome) {
	if noun == nil {
		return noSuch(a.Noun)
	}
	switch v := noun.Entity.(type) {
	case *world.Container:
		switch {
		case v.Locked:
			return failed("The %s is locked.", v.Name)
		case !v.Closed:
			return failed("The %s is already opened.", v.Name)
		}
		v.Closed = false
		return "Opened.", types.Active
	case *world.Pathway:
		switch {
		case v.Locked:
			return failed("The way is locked.")
		case !v.Closed:
			return failed("The way is already open.")
		}
		v.Closed = false
		return "Opened.", types.Active
	}
	return failed("The %s is not a container.", noun.Entity.Meta().Name)
}

func (e *Engine) execClose(a action.Action, noun, _ *resolve.Candidate) (string, types.Outcome) {
	if noun == nil {
		return noSuch(a.Noun)
	}
	switch v := noun.Entity.(type) {
	case *world.Container:
		if v.Closed {
			return failed("The %s is already closed.", v.Name)
		}
		v.Closed = true
		return "Closed.", types.Active
	case *world.Pathway:
		switch {
		case !v.Door:
			return failed("The way cannot be closed.")
		case v.Closed:
			return failed("The %s is already closed.", v.Name)
		}
		v.Closed = true
		return "Closed.", types.Active
	}
	return failed("The %s is not a container.", noun.Entity.Meta().Name)
}

// lockState exposes the lock of a container or door.
type lockState struct {
	name   string
	locked *bool
	closed bool
	keyID  string
}

func lockOf(ent world.Entity) (lockState, bool) {
	switch v := ent.(type) {
	case *world.Container:
		return lockState{name: v.Name, locked: &v.Locked, closed: v.Closed, keyID: v.KeyID}, true
	case *world.Pathway:
		return lockState{name: v.Name, locked: &v.Locked, closed: v.Closed, keyID: v.KeyID}, v.Door
	}
	return lockState{}, false
}

// findKey checks the named key, or searches the inventory for one that
// fits when no key was named.
func (e *Engine) findKey(ls lockState, named *resolve.Candidate) (string, bool) {
	if named != nil {
		k, ok := named.Entity.(*world.Key)
		if !ok || k.ID != ls.keyID {
			return fmt.Sprintf("The %s does not fit.", named.Entity.Meta().Name), false
		}
		return "", true
	}
	for _, c := range resolve.Scan(e.World) {
		if c.Where != resolve.InInventory || !c.Reachable {
			continue
		}
		if k, ok := c.Entity.(*world.Key); ok && k.ID == ls.keyID {
			return "", true
		}
	}
	return "You do not have the key.", false
}

func (e *Engine) execUnlock(a action.Action, noun, obj *resolve.Candidate) (string, types.Outcome) {
	if noun == nil {
		return noSuch(a.Noun)
	}
	ls, ok := lockOf(noun.Entity)
	if !ok || !*ls.locked {
		return failed("The %s is not locked.", noun.Entity.Meta().Name)
	}
	if msg, ok := e.findKey(ls, obj); !ok {
		return failed("%s", msg)
	}
	*ls.locked = false
	return "Unlocked.", types.Active
}

func (e *Engine) execLock(a action.Action, noun, obj *resolve.Candidate) (string, types.Outcome) {
	if noun == nil {
		return noSuch(a.Noun)
	}
	ls, ok := lockOf(noun.Entity)
	if !ok || ls.keyID == "" {
		return failed("The %s cannot be locked.", noun.Entity.Meta().Name)
	}
	switch {
	case *ls.locked:
		return failed("The %s is already locked.", ls.name)
	case !ls.closed:
		return failed("You must close the %s first.", ls.name)
	}
	if msg, ok := e.findKey(ls, obj); !ok {
		return failed("%s", msg)
	}
	*ls.locked = true
	return "Locked.", types.Active
}

func (e *Engine) execEat(a action.Action, noun, _ *resolve.Candidate) (string, types.Outcome) {
	if noun == nil {
		return noSuch(a.Noun)
	}
	t, ok := noun.Entity.(*world.Thing)
	if !ok || !t.Edible {
		return failed("You cannot eat the %s.", noun.Entity.Meta().Name)
	}
	if _, ok := noun.Owner.Remove(t.ID); !ok {
		return noSuch(a.Noun)
	}
	text := fmt.Sprintf("You eat the %s.", t.Name)
	if gained := e.World.Player.Heal(t.Heal); gained > 0 {
		text += fmt.Sprintf(" You regain %d HP.", gained)
	}
	return text, types.Active
}

func (e *Engine) execAttack(a action.Action, noun, obj *resolve.Candidate) (string, types.Outcome) {
	if noun == nil {
		return noSuch(a.Noun)
	}
	enemy, ok := noun.Entity.(*world.Enemy)
	if !ok || !enemy.Alive() {
		return failed("You cannot attack the %s.", noun.Entity.Meta().Name)
	}

	p := e.World.Player
	var weapon *world.Weapon
	if obj != nil {
		weapon, ok = obj.Entity.(*world.Weapon)
		if !ok {
			return failed("The %s is not a weapon.", obj.Entity.Meta().Name)
		}
	} else if weapon = p.Weapon(); weapon == nil {
		prompt := fmt.Sprintf("What do you want to %s the %s with?", a.Verb, a.Noun)
		e.Pending = &types.PendingDef{
			Command: types.Command{Verb: a.Verb, Noun: a.Noun, Prep: "with"},
			Prompt:  prompt,
		}
		return prompt, types.Clarify
	}

	damage := weapon.MinDamage + e.Dice.Roll(weapon.MaxDamage-weapon.MinDamage+1) - 1
	enemy.Hit(damage)
	p.InCombat = true

	text := fmt.Sprintf("You hit the %s with your %s for %d damage.", enemy.Name, weapon.Name, damage)
	if enemy.Alive() {
		return text, types.Active
	}
	text += " It is dead."
	if len(enemy.Loot) > 0 {
		text += "\nIt dropped:"
		for _, l := range enemy.Loot {
			text += "\n  " + l.Meta().Name
		}
	}
	return text, types.Active
}

func (e *Engine) execHail(a action.Action, noun, _ *resolve.Candidate) (string, types.Outcome) {
	if noun == nil {
		if a.Noun != "" {
			return noSuch(a.Noun)
		}
		return "Hello, sailor!", types.Passive
	}
	if en, ok := noun.Entity.(*world.Enemy); ok && en.Angry {
		return fmt.Sprintf("The %s snarls at you.", en.Name), types.Passive
	}
	return fmt.Sprintf("The %s does not answer.", noun.Entity.Meta().Name), types.Passive
}
