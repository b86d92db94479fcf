package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/repositories/highscore"
)

// Boss policy weights. Each single target is only eligible while alive.
const (
	powerUpWeight = 1
	hitOneWeight  = 2
	hitAllWeight  = 1
	powerUpFactor = 2
)

type bossOutcome struct {
	kind   BossActionKind
	target battle.Slot
	weight int
}

// eligibleOutcomes lists what the boss may do this turn. Dead members are
// filtered out up front so no dead target can be picked.
func eligibleOutcomes(roster *battle.Roster) []bossOutcome {
	outcomes := []bossOutcome{{kind: BossPowerUp, weight: powerUpWeight}}
	for _, slot := range roster.LivingParty() {
		outcomes = append(outcomes, bossOutcome{kind: BossHitOne, target: slot, weight: hitOneWeight})
	}
	return append(outcomes, bossOutcome{kind: BossHitAll, weight: hitAllWeight})
}

func (o *orchestrator) resolveBossTurn(ctx context.Context, fx *effects, state *battle.GameState) (*BossAction, error) {
	boss := &state.Roster.Boss
	outcomes := eligibleOutcomes(&state.Roster)

	weights := make([]int, len(outcomes))
	for i, outcome := range outcomes {
		weights[i] = outcome.weight
	}

	index, err := o.engine.ChooseWeighted(ctx, weights)
	if err != nil {
		return nil, errors.Wrap(err, "failed to choose boss action")
	}
	if index < 0 || index >= len(outcomes) {
		return nil, errors.Internalf("boss action index %d out of range", index)
	}
	chosen := outcomes[index]

	action := &BossAction{Kind: chosen.kind}

	switch chosen.kind {
	case BossPowerUp:
		boss.Attack *= powerUpFactor
		fx.ShowStatusMessage(ctx, state.ID, "The Boss has increased his power!")

	case BossHitOne:
		raw, err := o.engine.RollBossAttack(ctx, boss)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll boss attack")
		}
		target := &state.Roster.Party[chosen.target]
		damage := o.engine.ApplyDefenseMitigation(target, raw)
		target.TakeDamage(damage)

		action.RawDamage = raw
		action.Hits = []Hit{{Slot: chosen.target, Damage: damage}}
		fx.ShowStatusMessage(ctx, state.ID,
			fmt.Sprintf("The Boss dealt %d damage to the %s!", damage, chosen.target))

	case BossHitAll:
		raw, err := o.engine.RollBossAttack(ctx, boss)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll boss attack")
		}
		action.RawDamage = raw
		for _, slot := range battle.PartySlots() {
			member := &state.Roster.Party[slot]
			damage := o.engine.ApplyDefenseMitigation(member, raw)
			member.TakeDamage(damage)
			action.Hits = append(action.Hits, Hit{Slot: slot, Damage: damage})
		}
		fx.ShowStatusMessage(ctx, state.ID,
			fmt.Sprintf("The Boss dealt %d damage to all party members!", raw))
	}

	// defending only covers the boss turn that just ran
	state.Roster.ClearDefending()
	boss.Attack *= state.Session.BossDifficultyMultiplier

	fx.ShowPartyHP(ctx, state.ID, state.Roster.Party)

	slog.Info("Boss turn resolved",
		"game_id", state.ID,
		"round", state.Round,
		"action", string(action.Kind),
		"raw_damage", action.RawDamage,
		"boss_attack", boss.Attack,
	)

	fx.publish(ctx, EventBossAction, state, boss, nil, map[string]interface{}{
		"action":     string(action.Kind),
		"raw_damage": action.RawDamage,
		"hits":       len(action.Hits),
	})

	if state.Roster.PartyDefeated() {
		o.endRun(ctx, fx, state, battle.OutcomeLoss)
		return action, nil
	}

	state.Phase = battle.PhaseRoundEnd
	return action, nil
}

// startRound begins the next round at the first living party member
func (o *orchestrator) startRound(ctx context.Context, fx *effects, state *battle.GameState) {
	first, ok := state.Roster.FirstLiving()
	if !ok {
		o.endRun(ctx, fx, state, battle.OutcomeLoss)
		return
	}

	state.Round++
	state.Turn = first
	state.Phase = battle.PhasePartyTurn

	slog.Debug("Round started", "game_id", state.ID, "round", state.Round, "turn", first.Key())

	fx.publish(ctx, EventRoundStarted, state, &state.Roster.Party[first], nil, map[string]interface{}{
		"round": state.Round,
	})
}

// endRun moves to GameOver. Remaining party turns are skipped.
func (o *orchestrator) endRun(ctx context.Context, fx *effects, state *battle.GameState, outcome battle.Outcome) {
	state.Phase = battle.PhaseGameOver
	state.Outcome = outcome
	state.Announced = false
	state.Session.GameOver = true

	slog.Info("Game over",
		"game_id", state.ID,
		"outcome", string(outcome),
		"round", state.Round,
		"max_damage", state.Session.MaxDamage,
	)

	eventType := EventLost
	if outcome == battle.OutcomeWin {
		eventType = EventWon
	}
	fx.publish(ctx, eventType, state, gameEntity(state.ID), nil, map[string]interface{}{
		"max_damage": state.Session.MaxDamage,
		"round":      state.Round,
	})
}

// announceWin records the run's max hit as the new high score once the
// step is saved. A store failure is logged; the run still ends.
func (o *orchestrator) announceWin(ctx context.Context, fx *effects, state *battle.GameState) {
	put := &highscore.PutInput{
		Value:      state.Session.MaxDamage,
		GameID:     state.ID,
		Difficulty: state.Session.Difficulty,
	}
	fx.then(func() {
		if _, err := o.highScores.Put(ctx, put); err != nil {
			slog.Error("Failed to record high score",
				"game_id", put.GameID,
				"value", put.Value,
				"error", err,
			)
		}
	})

	fx.ShowHighScore(ctx, state.Session.MaxDamage)
	fx.ShowStatusMessage(ctx, state.ID, "The boss has been defeated!")
	state.Announced = true
}

func (o *orchestrator) announceLoss(ctx context.Context, fx *effects, state *battle.GameState) {
	fx.ShowStatusMessage(ctx, state.ID, "Your party has fallen.")
	state.Announced = true
}

// resetRun replaces the run in place, keeping its ID and difficulty
func (o *orchestrator) resetRun(ctx context.Context, fx *effects, state *battle.GameState) {
	*state = *battle.NewGameState(state.ID, state.Session.Difficulty)

	slog.Info("Game reset", "game_id", state.ID)

	o.showRun(ctx, fx, state)
	fx.publish(ctx, EventReset, state, gameEntity(state.ID), nil, nil)
}
