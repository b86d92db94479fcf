package game

//go:generate mockgen -destination=mock/mock_presenter.go -package=gamemock github.com/KirkDiggler/onemillion/internal/orchestrators/game Presenter

import (
	"context"

	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
)

// Presenter receives display updates. Calls run synchronously inside the
// step that makes them, so a presenter must not call back into Service.
type Presenter interface {
	ShowPartyHP(ctx context.Context, gameID string, party [battle.PartySize]battle.Combatant)
	ShowBossHP(ctx context.Context, gameID string, hp int)
	ShowMaxDamage(ctx context.Context, gameID string, value int)
	ShowStatusMessage(ctx context.Context, gameID string, text string)
	ShowHighScore(ctx context.Context, value int)
	ShowImage(ctx context.Context, gameID string, image imagefeed.Image)
	// ClearGame forgets an ended run
	ClearGame(ctx context.Context, gameID string)
}
