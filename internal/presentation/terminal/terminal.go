// Package terminal draws the board full screen with tcell
package terminal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/orchestrators/game"
	"github.com/KirkDiggler/onemillion/internal/presentation/board"
)

// Screen rows
const (
	RowTitle     = 0
	RowBoss      = 2
	RowPartyTop  = 4
	RowMaxDamage = RowPartyTop + battle.PartySize + 1
	RowHighScore = RowMaxDamage + 1
	RowStatus    = RowHighScore + 2
	RowImage     = RowStatus + 1
	RowPrompt    = RowImage + 2
	RowHelp      = RowPrompt + 1
)

const (
	barWidth  = 30
	labelCols = 24
	title     = "ONE MILLION"
	help      = "a attack  d defend  u then 1-4 upgrade  r reset  q quit"
)

var (
	styleText      = tcell.StyleDefault
	styleTitle     = tcell.StyleDefault.Bold(true)
	styleBoss      = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleParty     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDefending = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleDead      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHelp      = tcell.StyleDefault.Dim(true)
)

// Presenter keeps a board of what was shown and redraws the screen after
// every update
type Presenter struct {
	mu     sync.Mutex
	screen tcell.Screen
	board  *board.Board
	gameID string
	prompt string
}

var _ game.Presenter = (*Presenter)(nil)

// New creates a presenter drawing on an initialized screen
func New(screen tcell.Screen) *Presenter {
	return &Presenter{
		screen: screen,
		board:  board.New(),
	}
}

// ShowPartyHP redraws the party
func (p *Presenter) ShowPartyHP(ctx context.Context, gameID string, party [battle.PartySize]battle.Combatant) {
	p.board.ShowPartyHP(ctx, gameID, party)
	p.redraw(gameID)
}

// ShowBossHP redraws the boss bar
func (p *Presenter) ShowBossHP(ctx context.Context, gameID string, hp int) {
	p.board.ShowBossHP(ctx, gameID, hp)
	p.redraw(gameID)
}

// ShowMaxDamage redraws the best hit
func (p *Presenter) ShowMaxDamage(ctx context.Context, gameID string, value int) {
	p.board.ShowMaxDamage(ctx, gameID, value)
	p.redraw(gameID)
}

// ShowStatusMessage redraws the status line
func (p *Presenter) ShowStatusMessage(ctx context.Context, gameID string, text string) {
	p.board.ShowStatusMessage(ctx, gameID, text)
	p.redraw(gameID)
}

// ShowHighScore redraws the high score
func (p *Presenter) ShowHighScore(ctx context.Context, value int) {
	p.board.ShowHighScore(ctx, value)
	p.redraw("")
}

// ShowImage redraws the image line
func (p *Presenter) ShowImage(ctx context.Context, gameID string, image imagefeed.Image) {
	p.board.ShowImage(ctx, gameID, image)
	p.redraw(gameID)
}

// ClearGame forgets the run and blanks its rows when it is on screen
func (p *Presenter) ClearGame(ctx context.Context, gameID string) {
	p.board.ClearGame(ctx, gameID)
	p.redraw("")
}

// SetPrompt sets the line shown above the key help
func (p *Presenter) SetPrompt(text string) {
	p.mu.Lock()
	p.prompt = text
	gameID := p.gameID
	p.mu.Unlock()

	p.redraw(gameID)
}

// redraw draws gameID, or the last drawn game when gameID is empty
func (p *Presenter) redraw(gameID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gameID != "" {
		p.gameID = gameID
	}
	view, _ := p.board.View(p.gameID)

	p.screen.Clear()
	p.text(0, RowTitle, title, styleTitle)

	bossMax := battle.BaseStatsFor(battle.SlotBoss).HP
	p.text(0, RowBoss, fmt.Sprintf("Boss HP: %d", view.BossHP), styleText)
	p.bar(labelCols, RowBoss, view.BossHP, bossMax, styleBoss)

	if view.Party[0].MaxHP > 0 {
		for i, member := range view.Party {
			row := RowPartyTop + i
			style := styleParty
			label := fmt.Sprintf("%-8s %d/%d", member.Name(), member.HP, member.MaxHP)
			switch {
			case !member.Alive():
				style = styleDead
			case member.Defending:
				style = styleDefending
				label += " D"
			}
			p.text(0, row, label, style)
			p.bar(labelCols, row, member.HP, member.MaxHP, style)
		}
	}

	p.text(0, RowMaxDamage, fmt.Sprintf("Max Damage: %d", view.MaxDamage), styleText)
	p.text(0, RowHighScore, fmt.Sprintf("Last High Score: %d", view.HighScore), styleText)
	p.text(0, RowStatus, view.Status, styleText)
	if view.Image != nil {
		p.text(0, RowImage, fmt.Sprintf("[%s] %s", view.Image.Alt, view.Image.URL), styleHelp)
	}
	p.text(0, RowPrompt, p.prompt, styleTitle)
	p.text(0, RowHelp, help, styleHelp)

	p.screen.Show()
}

func (p *Presenter) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		p.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (p *Presenter) bar(x, y, current, maxValue int, style tcell.Style) {
	filled := 0
	if maxValue > 0 && current > 0 {
		filled = (barWidth*current + maxValue - 1) / maxValue
		if filled > barWidth {
			filled = barWidth
		}
	}
	p.text(x, y, "["+strings.Repeat("█", filled)+strings.Repeat(" ", barWidth-filled)+"]", style)
}
