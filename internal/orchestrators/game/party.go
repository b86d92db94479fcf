package game

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
)

// healerSlot heals the living party by the damage it deals
const healerSlot = battle.SlotScholar

type attackResult struct {
	damage       int
	healed       bool
	newRecord    bool
	bossDefeated bool
}

func (o *orchestrator) resolveAttack(ctx context.Context, fx *effects, state *battle.GameState, slot battle.Slot) (*attackResult, error) {
	attacker := &state.Roster.Party[slot]
	boss := &state.Roster.Boss

	damage, err := o.engine.RollPlayerAttack(ctx, attacker)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll attack for %s", slot)
	}

	result := &attackResult{damage: damage}

	if state.Session.RecordDamage(damage) {
		result.newRecord = true
		fx.ShowMaxDamage(ctx, state.ID, state.Session.MaxDamage)
	}

	boss.TakeDamage(damage)
	fx.ShowBossHP(ctx, state.ID, boss.HP)

	message := fmt.Sprintf("The %s dealt %d damage to the boss!", slot, damage)
	if slot == healerSlot {
		for _, member := range state.Roster.LivingParty() {
			state.Roster.Party[member].Heal(damage)
		}
		result.healed = true
		message = fmt.Sprintf("The %s dealt %d damage to the boss and healed the party!", slot, damage)
		fx.ShowPartyHP(ctx, state.ID, state.Roster.Party)
	}
	fx.ShowStatusMessage(ctx, state.ID, message)

	slog.Info("Party attack resolved",
		"game_id", state.ID,
		"slot", slot.Key(),
		"damage", damage,
		"boss_hp", boss.HP,
	)

	fx.publish(ctx, EventAttack, state, attacker, boss, map[string]interface{}{
		"damage":  damage,
		"healed":  result.healed,
		"boss_hp": boss.HP,
	})

	if !boss.Alive() {
		result.bossDefeated = true
		o.endRun(ctx, fx, state, battle.OutcomeWin)
		return result, nil
	}

	advanceTurn(state, slot)
	return result, nil
}

func (o *orchestrator) resolveDefend(ctx context.Context, fx *effects, state *battle.GameState, slot battle.Slot) {
	defender := &state.Roster.Party[slot]
	defender.Defending = true

	fx.ShowStatusMessage(ctx, state.ID, fmt.Sprintf("The %s defends!", slot))

	slog.Info("Party member defending", "game_id", state.ID, "slot", slot.Key())

	fx.publish(ctx, EventDefend, state, defender, nil, nil)

	advanceTurn(state, slot)
}

// resolveUpgrade returns the level up multiplier in effect afterwards
func (o *orchestrator) resolveUpgrade(ctx context.Context, fx *effects, state *battle.GameState, target battle.Slot) float64 {
	member := &state.Roster.Party[target]
	multiplier := state.Session.LevelUpMultiplier

	member.MaxHP = int(math.Round(float64(member.MaxHP) * multiplier))
	member.Defense = math.Round(member.Defense * multiplier)
	if member.Defense < 1 {
		member.Defense = 1
	}

	// upgrading the Mage grows the multiplier instead of attack
	if target == battle.SlotMage {
		state.Session.LevelUpMultiplier *= battle.LevelUpGrowthRate
	} else {
		member.Attack = math.Round(member.Attack * multiplier)
	}
	member.ClampHP()

	fx.ShowPartyHP(ctx, state.ID, state.Roster.Party)
	fx.ShowStatusMessage(ctx, state.ID, fmt.Sprintf("The %s has been leveled up!", target))

	slog.Info("Party member upgraded",
		"game_id", state.ID,
		"target", target.Key(),
		"multiplier", multiplier,
		"next_multiplier", state.Session.LevelUpMultiplier,
	)

	mage := &state.Roster.Party[battle.SlotMage]
	fx.publish(ctx, EventUpgrade, state, mage, member, map[string]interface{}{
		"multiplier": multiplier,
		"max_hp":     member.MaxHP,
	})

	state.Phase = battle.PhaseBossTurn
	return state.Session.LevelUpMultiplier
}

// advanceTurn moves to the next living party member after slot, or to the
// boss once the party has had its turns
func advanceTurn(state *battle.GameState, slot battle.Slot) {
	if slot == battle.SlotMage {
		state.Phase = battle.PhaseBossTurn
		return
	}

	next, ok := state.Roster.NextLiving(slot)
	if !ok {
		state.Phase = battle.PhaseBossTurn
		return
	}
	state.Turn = next
}
