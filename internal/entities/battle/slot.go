// Package battle holds the state of a single run: the five combatants, the
// session counters, and the phase of the turn cycle.
package battle

import (
	"strings"

	"github.com/KirkDiggler/onemillion/internal/errors"
)

// Slot identifies one of the five fixed roster positions
type Slot int

// Roster slots in turn order. The boss always acts last.
const (
	SlotHero Slot = iota
	SlotKnight
	SlotScholar
	SlotMage
	SlotBoss
)

// PartySize is the number of player-controlled combatants
const PartySize = 4

var slotNames = [...]string{"Hero", "Knight", "Scholar", "Mage", "Boss"}

// String returns the display name of the slot
func (s Slot) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return slotNames[s]
}

// Key returns the lowercase identifier used in URLs and event payloads
func (s Slot) Key() string {
	return strings.ToLower(s.String())
}

// Valid reports whether s names a roster slot
func (s Slot) Valid() bool {
	return s >= SlotHero && s <= SlotBoss
}

// IsParty reports whether s is one of the four party slots
func (s Slot) IsParty() bool {
	return s >= SlotHero && s < SlotBoss
}

// PartySlots returns the party slots in turn order
func PartySlots() []Slot {
	return []Slot{SlotHero, SlotKnight, SlotScholar, SlotMage}
}

// ParseSlot resolves a slot by name, ignoring case
func ParseSlot(name string) (Slot, error) {
	for i, n := range slotNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Slot(i), nil
		}
	}
	return 0, errors.InvalidArgumentf("unknown slot: %q", name)
}

// MarshalText encodes the slot by key
func (s Slot) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.InvalidArgumentf("unknown slot: %d", int(s))
	}
	return []byte(s.Key()), nil
}

// UnmarshalText decodes a slot key
func (s *Slot) UnmarshalText(text []byte) error {
	parsed, err := ParseSlot(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
