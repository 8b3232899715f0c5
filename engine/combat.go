package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nathoo/wayfarer/engine/world"
)

// resolveCombat lets every angry enemy in the room act once. It runs only
// after Active turns and returns the text to append, or "".
func (e *Engine) resolveCombat() string {
	room := e.World.Room()
	p := e.World.Player
	var lines []string

	// 1. Clear out the dead before anyone swings.
	e.reap(room)

	// 2. Enemy attacks.
	for _, en := range room.Enemies() {
		if !en.Angry || !en.Alive() {
			continue
		}
		p.InCombat = true
		lines = append(lines, e.enemyAttack(en, p))
		if !p.Alive() {
			break
		}
	}

	// 3. Death ends the session.
	if !p.Alive() {
		e.Over = true
		lines = append(lines, "You died.")
		e.Logger.Info("player died", zap.Int("turn", e.Turn), zap.String("room", room.ID))
		return strings.Join(lines, "\n")
	}

	// 4. Combat ends once nothing is left to fight.
	if !room.Hostile() {
		p.InCombat = false
	}
	for p.LevelUp() {
		lines = append(lines, fmt.Sprintf("You advanced to level %d!", p.Level))
		e.Logger.Info("level up", zap.Int("level", p.Level))
	}
	return strings.Join(lines, "\n")
}

// reap removes dead enemies from the room, drops their loot and awards
// their experience.
func (e *Engine) reap(room *world.Room) {
	p := e.World.Player
	for _, en := range room.Enemies() {
		if en.Alive() {
			continue
		}
		room.Remove(en.ID)
		for _, l := range en.Loot {
			room.Add(l)
		}
		en.Loot = nil
		p.XP += en.XP
		e.Logger.Debug("enemy removed", zap.String("enemy", en.ID), zap.Int("xp", en.XP))
	}
}

func (e *Engine) enemyAttack(en *world.Enemy, p *world.Player) string {
	roll := e.Dice.Roll(en.MaxDamage+1) - 1
	if roll <= 0 {
		return fmt.Sprintf("The %s swung at you, but you dodged out of the way.", en.Name)
	}
	damage := roll
	if a := p.Worn(); a != nil {
		damage -= a.AC
	}
	if damage <= 0 {
		return fmt.Sprintf("The %s hit you, but your armor deflected the blow.", en.Name)
	}
	p.Damage(damage)
	return fmt.Sprintf("The %s hit you for %d damage. You have %d HP left.", en.Name, damage, p.HP)
}
