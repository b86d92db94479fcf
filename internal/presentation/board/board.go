// Package board keeps the latest displayed values for each game so the HTTP
// API can serve them. It is safe for concurrent use.
package board

import (
	"context"
	"sync"

	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/orchestrators/game"
)

// View is what a player of one game currently sees
type View struct {
	GameID    string                             `json:"game_id"`
	Party     [battle.PartySize]battle.Combatant `json:"party"`
	BossHP    int                                `json:"boss_hp"`
	MaxDamage int                                `json:"max_damage"`
	Status    string                             `json:"status"`
	Image     *imagefeed.Image                   `json:"image,omitempty"`
	HighScore int                                `json:"high_score"`
}

// Board implements game.Presenter
type Board struct {
	mu        sync.RWMutex
	views     map[string]*View
	highScore int

	nextWatch int
	watchers  map[string]map[int]chan struct{}
}

var _ game.Presenter = (*Board)(nil)

// New creates an empty board
func New() *Board {
	return &Board{
		views:    make(map[string]*View),
		watchers: make(map[string]map[int]chan struct{}),
	}
}

func (b *Board) view(gameID string) *View {
	v, ok := b.views[gameID]
	if !ok {
		v = &View{GameID: gameID}
		b.views[gameID] = v
	}
	return v
}

// ShowPartyHP records the party
func (b *Board) ShowPartyHP(_ context.Context, gameID string, party [battle.PartySize]battle.Combatant) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view(gameID).Party = party
	b.notify(gameID)
}

// ShowBossHP records the boss hp
func (b *Board) ShowBossHP(_ context.Context, gameID string, hp int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view(gameID).BossHP = hp
	b.notify(gameID)
}

// ShowMaxDamage records the run's best hit
func (b *Board) ShowMaxDamage(_ context.Context, gameID string, value int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view(gameID).MaxDamage = value
	b.notify(gameID)
}

// ShowStatusMessage replaces the status line
func (b *Board) ShowStatusMessage(_ context.Context, gameID string, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view(gameID).Status = text
	b.notify(gameID)
}

// ShowHighScore records the high score shared by every game
func (b *Board) ShowHighScore(_ context.Context, value int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.highScore = value
	for gameID := range b.watchers {
		b.notify(gameID)
	}
}

// ShowImage records the decorative image
func (b *Board) ShowImage(_ context.Context, gameID string, image imagefeed.Image) {
	b.mu.Lock()
	defer b.mu.Unlock()
	img := image
	b.view(gameID).Image = &img
	b.notify(gameID)
}

// ClearGame drops the game's view. Watchers get one last signal and then
// find no view.
func (b *Board) ClearGame(_ context.Context, gameID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.views, gameID)
	b.notify(gameID)
}

// View returns a copy of a game's view
func (b *Board) View(gameID string) (View, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.views[gameID]
	if !ok {
		return View{}, false
	}

	out := *v
	if v.Image != nil {
		img := *v.Image
		out.Image = &img
	}
	out.HighScore = b.highScore
	return out, true
}

// HighScore returns the last displayed high score
func (b *Board) HighScore() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.highScore
}

// Watch returns a channel signalled after each change to gameID's view and a
// func that stops watching. Signals coalesce: a slow reader sees one signal
// for any number of changes and should read View again.
func (b *Board) Watch(gameID string) (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan struct{}, 1)
	id := b.nextWatch
	b.nextWatch++
	if b.watchers[gameID] == nil {
		b.watchers[gameID] = make(map[int]chan struct{})
	}
	b.watchers[gameID][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.watchers[gameID], id)
			if len(b.watchers[gameID]) == 0 {
				delete(b.watchers, gameID)
			}
		})
	}
}

// notify must be called with mu held
func (b *Board) notify(gameID string) {
	for _, ch := range b.watchers[gameID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
