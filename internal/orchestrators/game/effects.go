package game

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
)

// effects holds the display updates and events of one step. They are sent
// in order by flush, after the step's state has been saved, so a step that
// fails to save shows and publishes nothing.
type effects struct {
	o     *orchestrator
	queue []func()
}

var _ Presenter = (*effects)(nil)

func (o *orchestrator) newEffects() *effects {
	return &effects{o: o}
}

func (fx *effects) then(f func()) {
	fx.queue = append(fx.queue, f)
}

func (fx *effects) flush() {
	queue := fx.queue
	fx.queue = nil
	for _, f := range queue {
		f()
	}
}

func (fx *effects) ShowPartyHP(ctx context.Context, gameID string, party [battle.PartySize]battle.Combatant) {
	fx.then(func() { fx.o.presenter.ShowPartyHP(ctx, gameID, party) })
}

func (fx *effects) ShowBossHP(ctx context.Context, gameID string, hp int) {
	fx.then(func() { fx.o.presenter.ShowBossHP(ctx, gameID, hp) })
}

func (fx *effects) ShowMaxDamage(ctx context.Context, gameID string, value int) {
	fx.then(func() { fx.o.presenter.ShowMaxDamage(ctx, gameID, value) })
}

func (fx *effects) ShowStatusMessage(ctx context.Context, gameID string, text string) {
	fx.then(func() { fx.o.presenter.ShowStatusMessage(ctx, gameID, text) })
}

func (fx *effects) ShowHighScore(ctx context.Context, value int) {
	fx.then(func() { fx.o.presenter.ShowHighScore(ctx, value) })
}

func (fx *effects) ShowImage(ctx context.Context, gameID string, image imagefeed.Image) {
	fx.then(func() { fx.o.presenter.ShowImage(ctx, gameID, image) })
}

func (fx *effects) ClearGame(ctx context.Context, gameID string) {
	fx.then(func() { fx.o.presenter.ClearGame(ctx, gameID) })
}

// publish snapshots the state the event describes
func (fx *effects) publish(
	ctx context.Context,
	eventType string,
	state *battle.GameState,
	source, target core.Entity,
	data map[string]interface{},
) {
	snapshot := state.Clone()
	fx.then(func() { fx.o.publish(ctx, eventType, snapshot, source, target, data) })
}
