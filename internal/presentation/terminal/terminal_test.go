package terminal_test

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/presentation/terminal"
)

type TerminalTestSuite struct {
	suite.Suite
	screen    tcell.SimulationScreen
	presenter *terminal.Presenter
	ctx       context.Context
}

func TestTerminalSuite(t *testing.T) {
	suite.Run(t, new(TerminalTestSuite))
}

func (s *TerminalTestSuite) SetupTest() {
	s.screen = tcell.NewSimulationScreen("UTF-8")
	s.Require().NoError(s.screen.Init())
	s.screen.SetSize(80, 25)

	s.presenter = terminal.New(s.screen)
	s.ctx = context.Background()
}

func (s *TerminalTestSuite) TearDownTest() {
	s.screen.Fini()
}

func (s *TerminalTestSuite) row(y int) string {
	cells, width, _ := s.screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		cell := cells[y*width+x]
		if len(cell.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(cell.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func (s *TerminalTestSuite) style(x, y int) tcell.Style {
	cells, width, _ := s.screen.GetContents()
	return cells[y*width+x].Style
}

func (s *TerminalTestSuite) TestDrawsBoard() {
	roster := battle.NewRoster()
	roster.Party[battle.SlotKnight].Defending = true
	roster.Party[battle.SlotMage].HP = 0

	s.presenter.ShowPartyHP(s.ctx, "game_1", roster.Party)
	s.presenter.ShowBossHP(s.ctx, "game_1", 500000)
	s.presenter.ShowMaxDamage(s.ctx, "game_1", 42)
	s.presenter.ShowHighScore(s.ctx, 1200)
	s.presenter.ShowStatusMessage(s.ctx, "game_1", "Hero deals 42 damage")
	s.presenter.ShowImage(s.ctx, "game_1", imagefeed.Image{URL: "imgs/dragon.png", Alt: "Dragon"})

	s.Equal("ONE MILLION", s.row(terminal.RowTitle))
	s.True(strings.HasPrefix(s.row(terminal.RowBoss), "Boss HP: 500000"))
	s.Contains(s.row(terminal.RowBoss), "["+strings.Repeat("█", 15)+strings.Repeat(" ", 15)+"]")
	s.True(strings.HasPrefix(s.row(terminal.RowPartyTop), "Hero     100/100"))
	s.True(strings.HasPrefix(s.row(terminal.RowPartyTop+1), "Knight   80/80 D"))
	s.Equal("Max Damage: 42", s.row(terminal.RowMaxDamage))
	s.Equal("Last High Score: 1200", s.row(terminal.RowHighScore))
	s.Equal("Hero deals 42 damage", s.row(terminal.RowStatus))
	s.Equal("[Dragon] imgs/dragon.png", s.row(terminal.RowImage))

	fg, _, _ := s.style(0, terminal.RowPartyTop+int(battle.SlotMage)).Decompose()
	s.Equal(tcell.ColorGray, fg)
}

func (s *TerminalTestSuite) TestHighScoreRedrawsLastGame() {
	s.presenter.ShowBossHP(s.ctx, "game_1", 999)
	s.presenter.ShowHighScore(s.ctx, 77)

	s.True(strings.HasPrefix(s.row(terminal.RowBoss), "Boss HP: 999"))
	s.Equal("Last High Score: 77", s.row(terminal.RowHighScore))
}

func (s *TerminalTestSuite) TestPrompt() {
	s.presenter.SetPrompt("Scholar's turn")
	s.Equal("Scholar's turn", s.row(terminal.RowPrompt))
	s.Contains(s.row(terminal.RowHelp), "a attack")
}

func (s *TerminalTestSuite) TestLivingBossKeepsABlock() {
	s.presenter.ShowBossHP(s.ctx, "game_1", 1)
	s.Contains(s.row(terminal.RowBoss), "[█"+strings.Repeat(" ", 29)+"]")
}

func (s *TerminalTestSuite) TestClearGameBlanksTheRun() {
	s.presenter.ShowBossHP(s.ctx, "game_1", 999)
	s.presenter.ShowStatusMessage(s.ctx, "game_1", "The Knight defends!")

	s.presenter.ClearGame(s.ctx, "game_1")

	s.True(strings.HasPrefix(s.row(terminal.RowBoss), "Boss HP: 0"))
	s.Equal("", s.row(terminal.RowStatus))
}
