package world

// Player defaults for worlds that do not set them.
const (
	DefaultHP        = 13
	DefaultNextLevel = 1000
)

// Player is the adventurer. MainHand and Armor hold IDs of entities in
// Inventory; an empty string means nothing is equipped.
type Player struct {
	HP        int
	MaxHP     int
	XP        int
	NextLevel int
	Level     int
	InCombat  bool
	Inventory []Entity
	MainHand  string
	Armor     string
}

// NewPlayer returns a level 1 player at full health.
func NewPlayer() *Player {
	return &Player{
		HP:        DefaultHP,
		MaxHP:     DefaultHP,
		NextLevel: DefaultNextLevel,
		Level:     1,
	}
}

func (p *Player) Items() []Entity { return p.Inventory }
func (p *Player) Add(e Entity)    { p.Inventory = append(p.Inventory, e) }

// Remove takes an entity out of the inventory, unequipping it if needed.
func (p *Player) Remove(id string) (Entity, bool) {
	var e Entity
	var ok bool
	p.Inventory, e, ok = removeID(p.Inventory, id)
	if ok {
		if p.MainHand == id {
			p.MainHand = ""
		}
		if p.Armor == id {
			p.Armor = ""
		}
	}
	return e, ok
}

// Has reports whether the entity is directly in the inventory.
func (p *Player) Has(id string) bool {
	for _, e := range p.Inventory {
		if e.Meta().ID == id {
			return true
		}
	}
	return false
}

// Weapon returns the equipped weapon, or nil.
func (p *Player) Weapon() *Weapon {
	for _, e := range p.Inventory {
		if w, ok := e.(*Weapon); ok && w.ID == p.MainHand {
			return w
		}
	}
	return nil
}

// Worn returns the worn armor, or nil.
func (p *Player) Worn() *Armor {
	for _, e := range p.Inventory {
		if a, ok := e.(*Armor); ok && a.ID == p.Armor {
			return a
		}
	}
	return nil
}

func (p *Player) Alive() bool { return p.HP > 0 }

func (p *Player) Damage(n int) {
	p.HP -= n
}

// Heal restores up to n hit points, capped at MaxHP, and returns the
// amount actually gained.
func (p *Player) Heal(n int) int {
	if p.HP+n > p.MaxHP {
		n = p.MaxHP - p.HP
	}
	if n < 0 {
		n = 0
	}
	p.HP += n
	return n
}

// LevelUp advances one level if enough experience has been gained.
func (p *Player) LevelUp() bool {
	if p.NextLevel <= 0 || p.XP < p.NextLevel {
		return false
	}
	p.XP -= p.NextLevel
	p.Level++
	p.NextLevel = DefaultNextLevel + 1800*(p.Level-1)*(p.Level-1)
	p.MaxHP += 4
	p.HP += 4
	return true
}
