package world

import (
	"errors"
	"fmt"
)

var (
	ErrNotHeld = errors.New("entity not held by source")
	ErrCycle   = errors.New("entity cannot contain itself")
	ErrNoRoom  = errors.New("no such room")
)

// Holder is anything that owns entities: a room, the player's inventory or
// a container.
type Holder interface {
	Items() []Entity
	Add(e Entity)
	Remove(id string) (Entity, bool)
}

// World is the arena of rooms plus the player.
type World struct {
	Title  string
	Author string
	Intro  string
	Start  string

	Rooms   map[string]*Room
	Order   []string // room IDs in authoring order
	Current string
	Player  *Player
}

// Room returns the room the player is in. A dangling Current is a data
// defect, not a user error, so it panics.
func (w *World) Room() *Room {
	r, ok := w.RoomByID(w.Current)
	if !ok {
		panic(fmt.Sprintf("world: current room %q does not exist", w.Current))
	}
	return r
}

// RoomByID looks up a room.
func (w *World) RoomByID(id string) (*Room, bool) {
	r, ok := w.Rooms[id]
	return r, ok
}

// Enter makes id the current room.
func (w *World) Enter(id string) error {
	if _, ok := w.RoomByID(id); !ok {
		return fmt.Errorf("%w: %s", ErrNoRoom, id)
	}
	w.Current = id
	return nil
}

// Locate finds an entity anywhere in the world and returns it with its
// owner.
func (w *World) Locate(id string) (Entity, Holder, bool) {
	if w.Player != nil {
		if e, h, ok := locateIn(w.Player, id); ok {
			return e, h, true
		}
	}
	for _, rid := range w.Order {
		if e, h, ok := locateIn(w.Rooms[rid], id); ok {
			return e, h, true
		}
	}
	return nil, nil, false
}

func locateIn(h Holder, id string) (Entity, Holder, bool) {
	for _, e := range h.Items() {
		if e.Meta().ID == id {
			return e, h, true
		}
		if c, ok := e.(*Container); ok {
			if found, owner, ok := locateIn(c, id); ok {
				return found, owner, true
			}
		}
	}
	return nil, nil, false
}

// Move transfers e from one holder to another. The entity is removed
// before it is inserted, so it never has two owners. Nothing changes when
// from does not hold e or when the move would put a container inside
// itself.
func Move(e Entity, from, to Holder) error {
	if c, ok := to.(*Container); ok && Encloses(e, c) {
		return fmt.Errorf("%w: %s", ErrCycle, e.Meta().Name)
	}
	got, ok := from.Remove(e.Meta().ID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotHeld, e.Meta().Name)
	}
	to.Add(got)
	return nil
}
