// Package rpgtoolkit provides the concrete implementation of the engine interface using rpg-toolkit modules.
package rpgtoolkit

import (
	"context"
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/onemillion/internal/engine"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
)

// Adapter implements the engine.Engine interface using rpg-toolkit
type Adapter struct {
	diceRoller dice.Roller
	mitigation engine.Mitigation
}

// AdapterConfig contains configuration for creating a new Adapter
type AdapterConfig struct {
	DiceRoller dice.Roller
	Mitigation engine.Mitigation
}

// Validate checks that all required dependencies are provided
func (c *AdapterConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}
	if c.Mitigation != "" {
		errors.ValidateEnum("Mitigation", string(c.Mitigation), engine.Mitigations(), vb)
	}

	return vb.Build()
}

// NewAdapter creates a new rpg-toolkit engine adapter
func NewAdapter(cfg *AdapterConfig) (*Adapter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mitigation := cfg.Mitigation
	if mitigation == "" {
		mitigation = engine.MitigationDefense
	}

	return &Adapter{
		diceRoller: cfg.DiceRoller,
		mitigation: mitigation,
	}, nil
}

// Verify that Adapter implements engine.Engine interface
var _ engine.Engine = (*Adapter)(nil)

// RollPlayerAttack rolls attack ± 10 and rounds up
func (a *Adapter) RollPlayerAttack(_ context.Context, attacker *battle.Combatant) (int, error) {
	if attacker == nil {
		return 0, errors.InvalidArgument("attacker is required")
	}

	offset, err := a.rollOffset()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll attack for %s", attacker.Name())
	}

	return nonNegative(math.Ceil(attacker.Attack + float64(offset))), nil
}

// RollBossAttack rolls attack ± 10 and rounds to nearest
func (a *Adapter) RollBossAttack(_ context.Context, boss *battle.Combatant) (int, error) {
	if boss == nil {
		return 0, errors.InvalidArgument("boss is required")
	}

	offset, err := a.rollOffset()
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll boss attack")
	}

	return nonNegative(math.Round(boss.Attack + float64(offset))), nil
}

// ApplyDefenseMitigation divides raw damage by the configured factor when the
// defender is defending
func (a *Adapter) ApplyDefenseMitigation(defender *battle.Combatant, raw int) int {
	if defender == nil || !defender.Defending {
		return raw
	}

	factor := 2.0
	if a.mitigation == engine.MitigationDefense {
		factor = defender.Defense
		if factor <= 0 {
			factor = 1
		}
	}

	return nonNegative(math.Round(float64(raw) / factor))
}

// ChooseWeighted rolls one die sized to the total weight and walks the
// cumulative weights
func (a *Adapter) ChooseWeighted(_ context.Context, weights []int) (int, error) {
	total := 0
	for i, w := range weights {
		if w < 0 {
			return 0, errors.InvalidArgumentf("weight %d is negative", i)
		}
		total += w
	}
	if total == 0 {
		return 0, errors.InvalidArgument("at least one positive weight is required")
	}

	roll, err := a.diceRoller.Roll(total)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll weighted choice")
	}
	if roll < 1 || roll > total {
		return 0, errors.Internalf("roll %d out of range 1-%d", roll, total)
	}

	for i, w := range weights {
		if roll <= w {
			return i, nil
		}
		roll -= w
	}

	return 0, errors.Internal("weighted choice fell through")
}

// rollOffset returns a uniform value in [-AttackRange, AttackRange]
func (a *Adapter) rollOffset() (int, error) {
	sides := 2*engine.AttackRange + 1
	roll, err := a.diceRoller.Roll(sides)
	if err != nil {
		return 0, err
	}
	if roll < 1 || roll > sides {
		return 0, errors.Internalf("roll %d out of range 1-%d", roll, sides)
	}
	return roll - (engine.AttackRange + 1), nil
}

func nonNegative(v float64) int {
	if v < 0 {
		return 0
	}
	return int(v)
}
