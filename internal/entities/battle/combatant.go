package battle

import "github.com/KirkDiggler/rpg-toolkit/core"

// Entity types reported to the event bus
const (
	EntityTypePartyMember = "party_member"
	EntityTypeBoss        = "boss"
)

// Combatant is one stat-bearing member of the roster
type Combatant struct {
	Slot      Slot    `json:"slot"`
	MaxHP     int     `json:"max_hp"`
	HP        int     `json:"hp"`
	Attack    float64 `json:"attack"`
	Defense   float64 `json:"defense"`
	Defending bool    `json:"defending"`
}

var _ core.Entity = (*Combatant)(nil)

// GetID returns the slot key
func (c *Combatant) GetID() string {
	return c.Slot.Key()
}

// GetType returns the entity type for rpg-toolkit
func (c *Combatant) GetType() string {
	if c.Slot == SlotBoss {
		return EntityTypeBoss
	}
	return EntityTypePartyMember
}

// Name returns the display name
func (c *Combatant) Name() string {
	return c.Slot.String()
}

// Alive reports whether the combatant has any hp left
func (c *Combatant) Alive() bool {
	return c.HP > 0
}

// ClampHP keeps hp within [0, MaxHP]
func (c *Combatant) ClampHP() {
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	if c.HP < 0 {
		c.HP = 0
	}
}

// TakeDamage subtracts damage and clamps. Returns the hp actually lost.
func (c *Combatant) TakeDamage(damage int) int {
	if damage < 0 {
		damage = 0
	}
	before := c.HP
	c.HP -= damage
	c.ClampHP()
	return before - c.HP
}

// Heal restores hp up to MaxHP. Returns the hp actually gained.
func (c *Combatant) Heal(amount int) int {
	if amount < 0 {
		amount = 0
	}
	before := c.HP
	c.HP += amount
	c.ClampHP()
	return c.HP - before
}
