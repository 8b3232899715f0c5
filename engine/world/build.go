package world

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nathoo/wayfarer/types"
)

// Build turns a declarative world into live objects. Entities without an
// ID get a fresh UUID so every owner lookup stays keyed by ID.
func Build(def types.WorldDef) (*World, error) {
	w := &World{
		Title:   def.Title,
		Author:  def.Author,
		Intro:   def.Intro,
		Start:   def.Start,
		Rooms:   make(map[string]*Room, len(def.Rooms)),
		Current: def.Start,
	}

	for _, rd := range def.Rooms {
		if _, dup := w.Rooms[rd.ID]; dup {
			return nil, fmt.Errorf("duplicate room %q", rd.ID)
		}
		room := &Room{
			Attrs: Attrs{ID: rd.ID, Name: rd.Name, Desc: rd.Desc},
			Paths: make(map[string]*Pathway, len(rd.Exits)),
		}
		for _, xd := range rd.Exits {
			p, err := buildPathway(rd.ID, xd)
			if err != nil {
				return nil, err
			}
			room.Paths[p.Direction] = p
		}
		for _, ed := range rd.Items {
			e, err := buildEntity(ed)
			if err != nil {
				return nil, fmt.Errorf("room %q: %w", rd.ID, err)
			}
			room.Add(e)
		}
		w.Rooms[rd.ID] = room
		w.Order = append(w.Order, rd.ID)
	}

	if _, ok := w.Rooms[def.Start]; !ok {
		return nil, fmt.Errorf("start room %q: %w", def.Start, ErrNoRoom)
	}

	p, err := buildPlayer(def.Player)
	if err != nil {
		return nil, err
	}
	w.Player = p
	return w, nil
}

func buildPathway(roomID string, xd types.ExitDef) (*Pathway, error) {
	dir, ok := Canonical(xd.Direction)
	if !ok {
		return nil, fmt.Errorf("room %q: unknown direction %q", roomID, xd.Direction)
	}
	name := xd.Name
	if name == "" {
		name = LongName(dir)
	}
	return &Pathway{
		Attrs:     Attrs{ID: roomID + ":" + dir, Name: name, Desc: xd.Desc, Detail: xd.Inspect},
		Direction: dir,
		Target:    xd.To,
		Door:      xd.Door || xd.Closed || xd.Locked,
		Closed:    xd.Closed || xd.Locked,
		Locked:    xd.Locked,
		KeyID:     xd.Key,
	}, nil
}

func buildPlayer(pd types.PlayerDef) (*Player, error) {
	p := NewPlayer()
	if pd.MaxHP > 0 {
		p.MaxHP = pd.MaxHP
		p.HP = pd.MaxHP
	}
	if pd.HP != 0 {
		p.HP = pd.HP
	}
	if pd.NextLevel > 0 {
		p.NextLevel = pd.NextLevel
	}
	if pd.Level > 0 {
		p.Level = pd.Level
	}
	p.XP = pd.XP
	p.InCombat = pd.InCombat
	for _, ed := range pd.Inventory {
		e, err := buildEntity(ed)
		if err != nil {
			return nil, fmt.Errorf("player inventory: %w", err)
		}
		p.Add(e)
	}
	if pd.MainHand != "" {
		if !p.Has(pd.MainHand) {
			return nil, fmt.Errorf("main hand %q is not in the inventory", pd.MainHand)
		}
		p.MainHand = pd.MainHand
	}
	if pd.Armor != "" {
		if !p.Has(pd.Armor) {
			return nil, fmt.Errorf("armor %q is not in the inventory", pd.Armor)
		}
		p.Armor = pd.Armor
	}
	return p, nil
}

func buildEntity(ed types.EntityDef) (Entity, error) {
	id := ed.ID
	if id == "" {
		id = uuid.NewString()
	}
	attrs := Attrs{ID: id, Name: ed.Name, Desc: ed.Desc, Detail: ed.Inspect}
	if attrs.Name == "" {
		return nil, fmt.Errorf("entity %q has no name", id)
	}

	switch ed.Kind {
	case "", types.KindThing:
		return &Thing{Attrs: attrs, Edible: ed.Edible, Heal: ed.Heal}, nil
	case types.KindContainer:
		c := &Container{Attrs: attrs, Closed: ed.Closed || ed.Locked, Locked: ed.Locked, KeyID: ed.Key}
		for _, cd := range ed.Contents {
			child, err := buildEntity(cd)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", id, err)
			}
			c.Add(child)
		}
		return c, nil
	case types.KindWeapon:
		return &Weapon{Attrs: attrs, MinDamage: ed.MinDamage, MaxDamage: max(ed.MaxDamage, ed.MinDamage)}, nil
	case types.KindArmor:
		return &Armor{Attrs: attrs, AC: ed.AC}, nil
	case types.KindGold:
		return &Gold{Attrs: attrs, Amount: ed.Amount}, nil
	case types.KindKey:
		return &Key{Attrs: attrs}, nil
	case types.KindEnemy:
		en := &Enemy{Attrs: attrs, HP: ed.HP, MaxHP: max(ed.MaxHP, ed.HP), MaxDamage: ed.MaxDamage, XP: ed.XP, Angry: ed.Angry}
		for _, ld := range ed.Loot {
			l, err := buildEntity(ld)
			if err != nil {
				return nil, fmt.Errorf("%s loot: %w", id, err)
			}
			en.Loot = append(en.Loot, l)
		}
		return en, nil
	default:
		return nil, fmt.Errorf("entity %q: unknown kind %q", id, ed.Kind)
	}
}

// Snapshot converts the live world back into its declarative form. Build
// of a snapshot yields an equivalent world.
func Snapshot(w *World) types.WorldDef {
	def := types.WorldDef{
		Title:  w.Title,
		Author: w.Author,
		Intro:  w.Intro,
		Start:  w.Start,
	}
	for _, id := range w.Order {
		r := w.Rooms[id]
		rd := types.RoomDef{ID: r.ID, Name: r.Name, Desc: r.Desc}
		for _, dir := range r.Directions() {
			p := r.Paths[dir]
			rd.Exits = append(rd.Exits, types.ExitDef{
				Direction: p.Direction,
				To:        p.Target,
				Name:      p.Name,
				Desc:      p.Desc,
				Inspect:   p.Detail,
				Door:      p.Door,
				Closed:    p.Closed,
				Locked:    p.Locked,
				Key:       p.KeyID,
			})
		}
		rd.Items = snapshotAll(r.Contents)
		def.Rooms = append(def.Rooms, rd)
	}
	if p := w.Player; p != nil {
		def.Player = types.PlayerDef{
			HP:        p.HP,
			MaxHP:     p.MaxHP,
			XP:        p.XP,
			NextLevel: p.NextLevel,
			Level:     p.Level,
			InCombat:  p.InCombat,
			Inventory: snapshotAll(p.Inventory),
			MainHand:  p.MainHand,
			Armor:     p.Armor,
		}
	}
	return def
}

func snapshotAll(list []Entity) []types.EntityDef {
	if len(list) == 0 {
		return nil
	}
	out := make([]types.EntityDef, 0, len(list))
	for _, e := range list {
		out = append(out, snapshotEntity(e))
	}
	return out
}

func snapshotEntity(e Entity) types.EntityDef {
	m := e.Meta()
	ed := types.EntityDef{ID: m.ID, Name: m.Name, Desc: m.Desc, Inspect: m.Detail}
	switch v := e.(type) {
	case *Thing:
		ed.Kind = types.KindThing
		ed.Edible, ed.Heal = v.Edible, v.Heal
	case *Container:
		ed.Kind = types.KindContainer
		ed.Closed, ed.Locked, ed.Key = v.Closed, v.Locked, v.KeyID
		ed.Contents = snapshotAll(v.Contents)
	case *Weapon:
		ed.Kind = types.KindWeapon
		ed.MinDamage, ed.MaxDamage = v.MinDamage, v.MaxDamage
	case *Armor:
		ed.Kind = types.KindArmor
		ed.AC = v.AC
	case *Gold:
		ed.Kind = types.KindGold
		ed.Amount = v.Amount
	case *Key:
		ed.Kind = types.KindKey
	case *Enemy:
		ed.Kind = types.KindEnemy
		ed.HP, ed.MaxHP, ed.MaxDamage, ed.XP, ed.Angry = v.HP, v.MaxHP, v.MaxDamage, v.XP, v.Angry
		ed.Loot = snapshotAll(v.Loot)
	}
	return ed
}
