package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/orchestrators/game"
	"github.com/KirkDiggler/onemillion/internal/presentation/console"
)

var difficulty string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play a run in the terminal. On each party member's turn enter one of:

  attack            the active member attacks (not the Mage)
  defend            the active member defends until the boss has acted
  upgrade <member>  the Mage levels up hero, knight, scholar or mage
  reset             start over
  quit              leave the game`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&difficulty, "difficulty", "", "standard or impossible")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	out := cmd.OutOrStdout()
	service, cleanup, err := buildGame(cfg, console.New(out))
	defer cleanup()
	if err != nil {
		return err
	}

	p := &player{
		service: service,
		in:      bufio.NewScanner(cmd.InOrStdin()),
		out:     out,
		wait:    cfg.WaitPeriod,
	}
	return p.run(ctx, difficulty)
}

// player drives one run from line based input
type player struct {
	service game.Service
	in      *bufio.Scanner
	out     io.Writer
	wait    time.Duration
}

func (p *player) run(ctx context.Context, difficulty string) error {
	started, err := p.service.StartGame(ctx, &game.StartGameInput{Difficulty: difficulty})
	if err != nil {
		return err
	}
	gameID := started.Game.ID
	defer endRun(p.service, gameID)

	// the image loads alongside play; its failures only change the status line
	go func() {
		if _, err := p.service.LoadImage(ctx, &game.LoadImageInput{GameID: gameID}); err != nil {
			slog.Warn("Failed to load image", "error", err)
		}
	}()

	state := started.Game
	for {
		if ctx.Err() != nil {
			return nil
		}

		if state.Phase != battle.PhasePartyTurn {
			delay := p.wait
			if state.Phase == battle.PhaseGameOver && state.Announced {
				delay *= 2
			}
			if !sleep(ctx, delay) {
				return nil
			}

			out, err := p.service.Advance(ctx, &game.AdvanceInput{GameID: gameID})
			if err != nil {
				return err
			}
			state = out.Game
			continue
		}

		fmt.Fprintf(p.out, "%s's turn> ", state.Turn)
		if !p.in.Scan() {
			return p.in.Err()
		}

		next, quit, err := p.handle(ctx, state, p.in.Text())
		if quit {
			return nil
		}
		if err != nil {
			if errors.IsInternal(err) {
				return err
			}
			fmt.Fprintln(p.out, errors.GetMessage(err))
			continue
		}
		state = next
	}
}

// handle applies one input line. It reports quit for "quit".
func (p *player) handle(ctx context.Context, state *battle.GameState, line string) (*battle.GameState, bool, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, false, errors.InvalidArgument("enter attack, defend, upgrade <member>, reset or quit")
	}

	switch fields[0] {
	case "quit", "exit":
		return nil, true, nil

	case "attack":
		out, err := p.service.Attack(ctx, &game.AttackInput{GameID: state.ID, Slot: state.Turn})
		if err != nil {
			return nil, false, err
		}
		return out.Game, false, nil

	case "defend":
		out, err := p.service.Defend(ctx, &game.DefendInput{GameID: state.ID, Slot: state.Turn})
		if err != nil {
			return nil, false, err
		}
		return out.Game, false, nil

	case "upgrade":
		if len(fields) != 2 {
			return nil, false, errors.InvalidArgument("usage: upgrade <hero|knight|scholar|mage>")
		}
		target, err := battle.ParseSlot(fields[1])
		if err != nil {
			return nil, false, err
		}
		out, err := p.service.Upgrade(ctx, &game.UpgradeInput{GameID: state.ID, Target: target})
		if err != nil {
			return nil, false, err
		}
		return out.Game, false, nil

	case "reset":
		out, err := p.service.ResetGame(ctx, &game.ResetGameInput{GameID: state.ID})
		if err != nil {
			return nil, false, err
		}
		return out.Game, false, nil

	default:
		return nil, false, errors.InvalidArgumentf("unknown command %q", fields[0])
	}
}

// sleep waits for d or until ctx is done. It reports whether d elapsed.
// endRun removes the run once its driver exits. It uses a fresh context
// because the driver's may already be cancelled.
func endRun(service game.Service, gameID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := service.EndGame(ctx, &game.EndGameInput{GameID: gameID}); err != nil {
		slog.Warn("Failed to end game", "game_id", gameID, "error", err)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
