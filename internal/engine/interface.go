// Package engine defines the combat primitives: attack rolls, defend
// mitigation, and the weighted choice behind the boss policy.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/onemillion/internal/engine Engine

import (
	"context"

	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
)

// Engine provides damage rolls and random selection for the turn engine
type Engine interface {
	// RollPlayerAttack returns damage in [attack-10, attack+10], rounded up
	// and never negative
	RollPlayerAttack(ctx context.Context, attacker *battle.Combatant) (int, error)

	// RollBossAttack returns damage in [attack-10, attack+10], rounded to
	// nearest and never negative
	RollBossAttack(ctx context.Context, boss *battle.Combatant) (int, error)

	// ApplyDefenseMitigation reduces raw damage for a defending target
	ApplyDefenseMitigation(defender *battle.Combatant, raw int) int

	// ChooseWeighted returns an index with probability proportional to its weight
	ChooseWeighted(ctx context.Context, weights []int) (int, error)
}

// Mitigation selects how a defending combatant reduces incoming damage
type Mitigation string

// Mitigation policies
const (
	// MitigationDefense divides damage by the defender's defense stat
	MitigationDefense Mitigation = "defense"
	// MitigationHalve divides damage by two
	MitigationHalve Mitigation = "halve"
)

// Mitigations lists the accepted policy names
func Mitigations() []string {
	return []string{string(MitigationDefense), string(MitigationHalve)}
}

// ParseMitigation validates a policy name. The empty string selects
// MitigationDefense.
func ParseMitigation(name string) (Mitigation, error) {
	switch m := Mitigation(name); m {
	case "":
		return MitigationDefense, nil
	case MitigationDefense, MitigationHalve:
		return m, nil
	default:
		return "", errors.InvalidArgumentf("unknown mitigation policy: %q", name)
	}
}

// AttackRange is the spread either side of a combatant's attack stat
const AttackRange = 10
