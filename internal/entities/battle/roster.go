package battle

import "github.com/KirkDiggler/onemillion/internal/errors"

// BaseStats are the starting values for a slot
type BaseStats struct {
	HP      int
	Attack  float64
	Defense float64
}

// Base stats for every slot at the start of a run
var baseStats = map[Slot]BaseStats{
	SlotHero:    {HP: 100, Attack: 20, Defense: 1.5},
	SlotKnight:  {HP: 80, Attack: 40, Defense: 1.1},
	SlotScholar: {HP: 150, Attack: 10, Defense: 5},
	SlotMage:    {HP: 120, Attack: 0, Defense: 1.8},
	SlotBoss:    {HP: 1000000, Attack: 50, Defense: 2},
}

// BaseStatsFor returns the starting stats of a slot
func BaseStatsFor(slot Slot) BaseStats {
	return baseStats[slot]
}

// Roster is the fixed party of four plus the boss
type Roster struct {
	Party [PartySize]Combatant `json:"party"`
	Boss  Combatant            `json:"boss"`
}

// NewRoster builds a roster at base stats
func NewRoster() Roster {
	var r Roster
	for _, slot := range PartySlots() {
		r.Party[slot] = newCombatant(slot)
	}
	r.Boss = newCombatant(SlotBoss)
	return r
}

func newCombatant(slot Slot) Combatant {
	stats := baseStats[slot]
	return Combatant{
		Slot:    slot,
		MaxHP:   stats.HP,
		HP:      stats.HP,
		Attack:  stats.Attack,
		Defense: stats.Defense,
	}
}

// Member returns the combatant in slot
func (r *Roster) Member(slot Slot) (*Combatant, error) {
	switch {
	case slot.IsParty():
		return &r.Party[slot], nil
	case slot == SlotBoss:
		return &r.Boss, nil
	default:
		return nil, errors.InvalidArgumentf("unknown slot: %d", int(slot))
	}
}

// NextLiving returns the first living party slot strictly after from, in
// turn order. ok is false when no later member is alive.
func (r *Roster) NextLiving(from Slot) (Slot, bool) {
	for s := from + 1; s < SlotBoss; s++ {
		if r.Party[s].Alive() {
			return s, true
		}
	}
	return 0, false
}

// FirstLiving returns the first living party slot in turn order
func (r *Roster) FirstLiving() (Slot, bool) {
	return r.NextLiving(SlotHero - 1)
}

// LivingParty returns the living party slots in turn order
func (r *Roster) LivingParty() []Slot {
	var living []Slot
	for _, slot := range PartySlots() {
		if r.Party[slot].Alive() {
			living = append(living, slot)
		}
	}
	return living
}

// PartyDefeated reports whether every party member is at 0 hp
func (r *Roster) PartyDefeated() bool {
	return len(r.LivingParty()) == 0
}

// ClearDefending drops the defending flag on every party member
func (r *Roster) ClearDefending() {
	for i := range r.Party {
		r.Party[i].Defending = false
	}
}
