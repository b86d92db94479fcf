package game

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/onemillion/internal/entities/battle"
)

// Event types published on the bus. Every event carries "game_id" in its
// context.
const (
	EventStarted      = "battle.started"
	EventAttack       = "battle.attack"
	EventDefend       = "battle.defend"
	EventUpgrade      = "battle.upgrade"
	EventBossAction   = "battle.boss_action"
	EventRoundStarted = "battle.round_started"
	EventWon          = "battle.won"
	EventLost         = "battle.lost"
	EventReset        = "battle.reset"
	EventEnded        = "battle.ended"
)

// EventTypes lists every event type the orchestrator publishes
func EventTypes() []string {
	return []string{
		EventStarted,
		EventAttack,
		EventDefend,
		EventUpgrade,
		EventBossAction,
		EventRoundStarted,
		EventWon,
		EventLost,
		EventReset,
		EventEnded,
	}
}

// gameEntity is the event source for run level events
type gameEntity string

func (g gameEntity) GetID() string {
	return string(g)
}

func (g gameEntity) GetType() string {
	return "game"
}

// publish never fails the step; subscriber errors are logged
func (o *orchestrator) publish(
	ctx context.Context,
	eventType string,
	state *battle.GameState,
	source, target core.Entity,
	data map[string]interface{},
) {
	event := events.NewGameEvent(eventType, source, target)
	event.Context().Set("game_id", state.ID)
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.Warn("Event subscriber failed",
			"game_id", state.ID,
			"event", eventType,
			"error", err,
		)
	}
}

// SubscribeEventLog logs every battle event at debug level. It returns the
// subscription IDs.
func SubscribeEventLog(bus events.EventBus, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}

	ids := make([]string, 0, len(EventTypes()))
	for _, eventType := range EventTypes() {
		id := bus.SubscribeFunc(eventType, 0, func(ctx context.Context, event events.Event) error {
			gameID, _ := event.Context().Get("game_id")

			attrs := []any{"event", event.Type(), "game_id", gameID}
			if source := event.Source(); source != nil {
				attrs = append(attrs, "source", source.GetID())
			}
			logger.DebugContext(ctx, "Battle event", attrs...)
			return nil
		})
		ids = append(ids, id)
	}
	return ids
}
