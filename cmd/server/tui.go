package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/orchestrators/game"
	"github.com/KirkDiggler/onemillion/internal/presentation/terminal"
)

const upgradePrompt = "Upgrade: 1 Hero  2 Knight  3 Scholar  4 Mage"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Play full screen in the terminal",
	Long:  `Play a run full screen. Keys: a attack, d defend, u then 1-4 upgrade, r reset, q or Esc quit.`,
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&difficulty, "difficulty", "", "standard or impossible")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// log lines would tear the screen
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	presenter := terminal.New(screen)
	service, cleanup, err := buildGame(cfg, presenter)
	defer cleanup()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	d := &tuiDriver{
		service:   service,
		presenter: presenter,
		wait:      cfg.WaitPeriod,
	}
	return d.run(ctx, screen, difficulty)
}

// tuiDriver maps key presses onto the game and advances deferred steps on
// a timer
type tuiDriver struct {
	service   game.Service
	presenter *terminal.Presenter
	wait      time.Duration

	state     *battle.GameState
	upgrading bool
}

func (d *tuiDriver) run(ctx context.Context, screen tcell.Screen, difficulty string) error {
	started, err := d.service.StartGame(ctx, &game.StartGameInput{Difficulty: difficulty})
	if err != nil {
		return err
	}
	advance := d.setState(started.Game)

	gameID := started.Game.ID
	defer endRun(d.service, gameID)

	go func() {
		if _, err := d.service.LoadImage(ctx, &game.LoadImageInput{GameID: gameID}); err != nil {
			slog.Warn("Failed to load image", "error", err)
		}
	}()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-advance:
			out, err := d.service.Advance(ctx, &game.AdvanceInput{GameID: gameID})
			if err != nil {
				return err
			}
			advance = d.setState(out.Game)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				next, done, err := d.handleKey(ctx, ev)
				if done {
					return nil
				}
				if err != nil {
					if errors.IsInternal(err) {
						return err
					}
					d.presenter.SetPrompt(errors.GetMessage(err))
					continue
				}
				if next != nil {
					advance = d.setState(next)
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}
}

// setState records the latest state and returns when the next deferred step
// is due, or nil while the party is choosing
func (d *tuiDriver) setState(state *battle.GameState) <-chan time.Time {
	d.state = state

	switch state.Phase {
	case battle.PhasePartyTurn:
		d.presenter.SetPrompt(fmt.Sprintf("%s's turn", state.Turn))
		return nil
	case battle.PhaseGameOver:
		d.presenter.SetPrompt("Game over")
		if state.Announced {
			return time.After(2 * d.wait)
		}
	default:
		d.presenter.SetPrompt("Boss turn")
	}
	return time.After(d.wait)
}

// handleKey applies one key press. It returns the new state when the game
// changed and reports done when the player quits.
func (d *tuiDriver) handleKey(ctx context.Context, ev *tcell.EventKey) (*battle.GameState, bool, error) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return nil, true, nil
	}
	if ev.Key() != tcell.KeyRune {
		return nil, false, nil
	}

	r := ev.Rune()
	if d.upgrading {
		d.upgrading = false
		if r < '1' || r > '0'+battle.PartySize {
			d.presenter.SetPrompt(fmt.Sprintf("%s's turn", d.state.Turn))
			return nil, false, nil
		}
		out, err := d.service.Upgrade(ctx, &game.UpgradeInput{
			GameID: d.state.ID,
			Target: battle.Slot(r - '1'),
		})
		if err != nil {
			return nil, false, err
		}
		return out.Game, false, nil
	}

	switch r {
	case 'q':
		return nil, true, nil

	case 'a':
		out, err := d.service.Attack(ctx, &game.AttackInput{GameID: d.state.ID, Slot: d.state.Turn})
		if err != nil {
			return nil, false, err
		}
		return out.Game, false, nil

	case 'd':
		out, err := d.service.Defend(ctx, &game.DefendInput{GameID: d.state.ID, Slot: d.state.Turn})
		if err != nil {
			return nil, false, err
		}
		return out.Game, false, nil

	case 'u':
		d.upgrading = true
		d.presenter.SetPrompt(upgradePrompt)
		return nil, false, nil

	case 'r':
		out, err := d.service.ResetGame(ctx, &game.ResetGameInput{GameID: d.state.ID})
		if err != nil {
			return nil, false, err
		}
		return out.Game, false, nil

	default:
		return nil, false, errors.InvalidArgumentf("unknown key %q", r)
	}
}
