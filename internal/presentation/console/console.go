// Package console prints game updates as lines of text for the play command
package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/orchestrators/game"
)

// Presenter writes each update to an io.Writer
type Presenter struct {
	mu  sync.Mutex
	out io.Writer
}

var _ game.Presenter = (*Presenter)(nil)

// New creates a console presenter
func New(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

func (p *Presenter) println(format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// ShowPartyHP prints every party member's hp on one line
func (p *Presenter) ShowPartyHP(_ context.Context, _ string, party [battle.PartySize]battle.Combatant) {
	parts := make([]string, 0, len(party))
	for _, member := range party {
		marker := ""
		if member.Defending {
			marker = " (defending)"
		}
		parts = append(parts, fmt.Sprintf("%s %d/%d%s", member.Name(), member.HP, member.MaxHP, marker))
	}
	p.println("%s", strings.Join(parts, " | "))
}

// ShowBossHP prints the boss hp
func (p *Presenter) ShowBossHP(_ context.Context, _ string, hp int) {
	p.println("Boss HP: %d", hp)
}

// ShowMaxDamage prints the run's best hit
func (p *Presenter) ShowMaxDamage(_ context.Context, _ string, value int) {
	p.println("Max Damage: %d", value)
}

// ShowStatusMessage prints the status line. Empty messages clear nothing
// on a terminal and are skipped.
func (p *Presenter) ShowStatusMessage(_ context.Context, _ string, text string) {
	if text == "" {
		return
	}
	p.println("%s", text)
}

// ShowHighScore prints the last high score
func (p *Presenter) ShowHighScore(_ context.Context, value int) {
	p.println("Last High Score: %d", value)
}

// ShowImage prints the image location and alt text
func (p *Presenter) ShowImage(_ context.Context, _ string, image imagefeed.Image) {
	p.println("[%s] %s", image.Alt, image.URL)
}

// ClearGame prints that the run is over
func (p *Presenter) ClearGame(_ context.Context, gameID string) {
	p.println("Game %s ended", gameID)
}
