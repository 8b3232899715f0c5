package world

import "sort"

// Room is a node in the world graph. Pathways store target room IDs, not
// references, so the graph has no ownership cycles.
type Room struct {
	Attrs
	Paths    map[string]*Pathway // direction code → pathway
	Contents []Entity            // items and enemies, in insertion order
}

func (r *Room) Items() []Entity { return r.Contents }
func (r *Room) Add(e Entity)    { r.Contents = append(r.Contents, e) }
func (r *Room) Remove(id string) (Entity, bool) {
	var e Entity
	var ok bool
	r.Contents, e, ok = removeID(r.Contents, id)
	return e, ok
}

// Enemies returns the enemies in the room, living or not.
func (r *Room) Enemies() []*Enemy {
	var out []*Enemy
	for _, e := range r.Contents {
		if en, ok := e.(*Enemy); ok {
			out = append(out, en)
		}
	}
	return out
}

// Hostile reports whether any living enemy in the room is angry.
func (r *Room) Hostile() bool {
	for _, en := range r.Enemies() {
		if en.Angry && en.Alive() {
			return true
		}
	}
	return false
}

// Directions returns the room's exit codes in sorted order.
func (r *Room) Directions() []string {
	dirs := make([]string, 0, len(r.Paths))
	for d := range r.Paths {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}
