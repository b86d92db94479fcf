// Package game implements the turn engine: it owns each run's GameState,
// applies party actions, drives the boss policy, and detects the end of a run.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/KirkDiggler/onemillion/internal/orchestrators/game Service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/engine"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/pkg/idgen"
	"github.com/KirkDiggler/onemillion/internal/repositories/games"
	"github.com/KirkDiggler/onemillion/internal/repositories/highscore"
)

// Service defines the turn engine operations
type Service interface {
	// StartGame builds a fresh run at the Hero's turn
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// Attack resolves an attack by the active party member
	Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error)

	// Defend marks the active party member as defending for the next boss turn
	Defend(ctx context.Context, input *DefendInput) (*DefendOutput, error)

	// Upgrade levels up a party member on the Mage's turn
	Upgrade(ctx context.Context, input *UpgradeInput) (*UpgradeOutput, error)

	// Advance runs the pending deferred step: the boss turn, the next round,
	// the end of run announcement, or the reset that follows it
	Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error)

	// ResetGame discards the run and starts over at base stats
	ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error)

	// EndGame removes the run for good; its ID is unknown afterwards
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)

	// GetGame returns a copy of the run
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// GetHighScore returns the max hit of the last winning run
	GetHighScore(ctx context.Context, input *GetHighScoreInput) (*GetHighScoreOutput, error)

	// LoadImage fetches the decorative image. Fetch failures fall back to a
	// bundled asset and never fail the call.
	LoadImage(ctx context.Context, input *LoadImageInput) (*LoadImageOutput, error)
}

// DefaultFallbackImage is shown when the image feed fails
var DefaultFallbackImage = imagefeed.Image{
	URL: "imgs/dragon.png",
	Alt: "Default image of a dragon",
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	Engine      engine.Engine
	Games       games.Repository
	HighScores  highscore.Repository
	Presenter   Presenter
	EventBus    events.EventBus
	ImageFeed   imagefeed.Client
	IDGenerator idgen.Generator

	// FallbackImage replaces DefaultFallbackImage when set
	FallbackImage *imagefeed.Image
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Games == nil {
		vb.RequiredField("Games")
	}
	if c.HighScores == nil {
		vb.RequiredField("HighScores")
	}
	if c.Presenter == nil {
		vb.RequiredField("Presenter")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.ImageFeed == nil {
		vb.RequiredField("ImageFeed")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.FallbackImage != nil && c.FallbackImage.URL == "" {
		vb.Field("FallbackImage", "url is required")
	}

	return vb.Build()
}

type orchestrator struct {
	engine        engine.Engine
	games         games.Repository
	highScores    highscore.Repository
	presenter     Presenter
	eventBus      events.EventBus
	imageFeed     imagefeed.Client
	idGen         idgen.Generator
	fallbackImage imagefeed.Image

	// one lock per game serializes resolution steps
	mu    sync.Mutex
	locks map[string]*gameLock
}

// NewOrchestrator creates a new game orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	fallback := DefaultFallbackImage
	if cfg.FallbackImage != nil {
		fallback = *cfg.FallbackImage
	}

	return &orchestrator{
		engine:        cfg.Engine,
		games:         cfg.Games,
		highScores:    cfg.HighScores,
		presenter:     cfg.Presenter,
		eventBus:      cfg.EventBus,
		imageFeed:     cfg.ImageFeed,
		idGen:         cfg.IDGenerator,
		fallbackImage: fallback,
		locks:         make(map[string]*gameLock),
	}, nil
}

// StartGame builds a fresh run at the Hero's turn
func (o *orchestrator) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	difficulty, err := battle.ParseDifficulty(input.Difficulty)
	if err != nil {
		return nil, err
	}

	gameID := o.idGen.Generate()

	unlock := o.lock(gameID)
	defer unlock()

	state := battle.NewGameState(gameID, difficulty)
	if err := o.save(ctx, state); err != nil {
		return nil, err
	}

	slog.Info("Game started",
		"game_id", gameID,
		"difficulty", string(difficulty),
		"boss_attack", state.Roster.Boss.Attack,
		"boss_multiplier", state.Session.BossDifficultyMultiplier,
	)

	fx := o.newEffects()
	o.showRun(ctx, fx, state)
	fx.publish(ctx, EventStarted, state, gameEntity(gameID), nil, map[string]interface{}{
		"difficulty": string(difficulty),
	})
	fx.flush()

	return &StartGameOutput{Game: state.Clone()}, nil
}

// Attack resolves an attack by the active party member
func (o *orchestrator) Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var output *AttackOutput
	game, err := o.withGame(ctx, input.GameID, func(state *battle.GameState, fx *effects) error {
		if err := checkPartyTurn(state, input.Slot); err != nil {
			return err
		}
		if input.Slot == battle.SlotMage {
			return errors.FailedPrecondition("the Mage cannot attack; upgrade or defend instead").
				WithMeta("slot", input.Slot.Key())
		}

		result, err := o.resolveAttack(ctx, fx, state, input.Slot)
		if err != nil {
			return err
		}

		output = &AttackOutput{
			Damage:       result.damage,
			Healed:       result.healed,
			NewRecord:    result.newRecord,
			BossDefeated: result.bossDefeated,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	output.Game = game
	return output, nil
}

// Defend marks the active party member as defending for the next boss turn
func (o *orchestrator) Defend(ctx context.Context, input *DefendInput) (*DefendOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	game, err := o.withGame(ctx, input.GameID, func(state *battle.GameState, fx *effects) error {
		if err := checkPartyTurn(state, input.Slot); err != nil {
			return err
		}

		o.resolveDefend(ctx, fx, state, input.Slot)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &DefendOutput{Game: game}, nil
}

// Upgrade levels up a party member on the Mage's turn
func (o *orchestrator) Upgrade(ctx context.Context, input *UpgradeInput) (*UpgradeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !input.Target.IsParty() {
		return nil, errors.InvalidArgumentf("upgrade target must be a party member, got %s", input.Target)
	}

	var multiplier float64
	game, err := o.withGame(ctx, input.GameID, func(state *battle.GameState, fx *effects) error {
		if err := checkPartyTurn(state, battle.SlotMage); err != nil {
			return err
		}

		multiplier = o.resolveUpgrade(ctx, fx, state, input.Target)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpgradeOutput{Game: game, Multiplier: multiplier}, nil
}

// Advance runs the pending deferred step for the current phase
func (o *orchestrator) Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	output := &AdvanceOutput{}
	game, err := o.withGame(ctx, input.GameID, func(state *battle.GameState, fx *effects) error {
		switch state.Phase {
		case battle.PhasePartyTurn:
			return errors.FailedPreconditionf("waiting for the %s to act", state.Turn).
				WithMeta("phase", string(state.Phase))

		case battle.PhaseBossTurn:
			action, err := o.resolveBossTurn(ctx, fx, state)
			if err != nil {
				return err
			}
			output.Step = StepBossTurn
			output.BossAction = action

		case battle.PhaseRoundEnd:
			o.startRound(ctx, fx, state)
			output.Step = StepRoundStart

		case battle.PhaseGameOver:
			if state.Announced {
				o.resetRun(ctx, fx, state)
				output.Step = StepReset
				return nil
			}
			if state.Outcome == battle.OutcomeWin {
				o.announceWin(ctx, fx, state)
				output.Step = StepWinAnnounced
			} else {
				o.announceLoss(ctx, fx, state)
				output.Step = StepLossAnnounced
			}

		default:
			return errors.Internalf("unknown phase %q", state.Phase)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	output.Game = game
	return output, nil
}

// ResetGame discards the run and starts over at base stats
func (o *orchestrator) ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	game, err := o.withGame(ctx, input.GameID, func(state *battle.GameState, fx *effects) error {
		o.resetRun(ctx, fx, state)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ResetGameOutput{Game: game}, nil
}

// EndGame deletes the run from the store and drops its view
func (o *orchestrator) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	unlock := o.lock(input.GameID)
	defer unlock()

	out, err := o.games.Get(ctx, &games.GetInput{GameID: input.GameID})
	if err != nil {
		return nil, err
	}

	if _, err := o.games.Delete(ctx, &games.DeleteInput{GameID: input.GameID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete game")
	}

	state := out.State
	slog.Info("Game ended",
		"game_id", state.ID,
		"phase", string(state.Phase),
		"round", state.Round,
	)

	o.presenter.ClearGame(ctx, state.ID)
	o.publish(ctx, EventEnded, state, gameEntity(state.ID), nil, map[string]interface{}{
		"phase": string(state.Phase),
		"round": state.Round,
	})

	return &EndGameOutput{Game: state}, nil
}

// GetGame returns a copy of the run
func (o *orchestrator) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	game, err := o.snapshot(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	return &GetGameOutput{Game: game}, nil
}

// GetHighScore returns the max hit of the last winning run
func (o *orchestrator) GetHighScore(ctx context.Context, input *GetHighScoreInput) (*GetHighScoreOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.highScores.Get(ctx)
	if err != nil {
		if errors.IsNotFound(err) {
			return &GetHighScoreOutput{}, nil
		}
		return nil, errors.Wrap(err, "failed to get high score")
	}

	return &GetHighScoreOutput{Value: out.Score.Value}, nil
}

// LoadImage fetches the decorative image without taking the game lock
func (o *orchestrator) LoadImage(ctx context.Context, input *LoadImageInput) (*LoadImageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	// only confirms the game exists
	if _, err := o.snapshot(ctx, input.GameID); err != nil {
		return nil, err
	}

	image, err := o.imageFeed.FetchImage(ctx)
	if err != nil {
		status := fmt.Sprintf("ERROR: %s. Using default image.", errors.GetMessage(err))

		slog.Warn("Image fetch failed, using fallback",
			"game_id", input.GameID,
			"error", err,
		)

		o.presenter.ShowImage(ctx, input.GameID, o.fallbackImage)
		o.presenter.ShowStatusMessage(ctx, input.GameID, status)

		return &LoadImageOutput{
			Image:    o.fallbackImage,
			Fallback: true,
			Status:   status,
		}, nil
	}

	o.presenter.ShowImage(ctx, input.GameID, *image)

	return &LoadImageOutput{Image: *image}, nil
}

// withGame runs fn on the stored run under the game's lock, saves the result
// and returns a copy of it. Nothing is saved when fn fails. What fn queued on
// its effects is shown and published only after the save succeeds.
func (o *orchestrator) withGame(
	ctx context.Context,
	gameID string,
	fn func(state *battle.GameState, fx *effects) error,
) (*battle.GameState, error) {
	if gameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	unlock := o.lock(gameID)
	defer unlock()

	out, err := o.games.Get(ctx, &games.GetInput{GameID: gameID})
	if err != nil {
		return nil, err
	}

	fx := o.newEffects()
	if err := fn(out.State, fx); err != nil {
		return nil, err
	}

	if err := o.save(ctx, out.State); err != nil {
		return nil, err
	}
	fx.flush()
	return out.State.Clone(), nil
}

// gameLock is dropped from the map once no step holds or waits for it
type gameLock struct {
	sync.Mutex
	refs int
}

func (o *orchestrator) lock(gameID string) func() {
	o.mu.Lock()
	l, ok := o.locks[gameID]
	if !ok {
		l = &gameLock{}
		o.locks[gameID] = l
	}
	l.refs++
	o.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()

		o.mu.Lock()
		defer o.mu.Unlock()
		l.refs--
		if l.refs == 0 {
			delete(o.locks, gameID)
		}
	}
}

func (o *orchestrator) save(ctx context.Context, state *battle.GameState) error {
	if _, err := o.games.Save(ctx, &games.SaveInput{State: state}); err != nil {
		return errors.Wrap(err, "failed to save game")
	}
	return nil
}

func (o *orchestrator) snapshot(ctx context.Context, gameID string) (*battle.GameState, error) {
	if gameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	out, err := o.games.Get(ctx, &games.GetInput{GameID: gameID})
	if err != nil {
		return nil, err
	}
	return out.State, nil
}

// checkPartyTurn rejects party actions outside the acting slot's turn
func checkPartyTurn(state *battle.GameState, slot battle.Slot) error {
	if !slot.IsParty() {
		return errors.InvalidArgumentf("%s is not a party member", slot).
			WithMeta("slot", int(slot))
	}
	if state.Phase != battle.PhasePartyTurn {
		return errors.FailedPreconditionf("party actions are not accepted during %s", state.Phase).
			WithMeta("phase", string(state.Phase))
	}
	if state.Turn != slot {
		return errors.FailedPreconditionf("it is not the %s's turn", slot).
			WithMeta("turn", state.Turn.Key())
	}
	return nil
}

// showRun pushes every display value for a fresh run
func (o *orchestrator) showRun(ctx context.Context, fx *effects, state *battle.GameState) {
	fx.ShowPartyHP(ctx, state.ID, state.Roster.Party)
	fx.ShowBossHP(ctx, state.ID, state.Roster.Boss.HP)
	fx.ShowMaxDamage(ctx, state.ID, state.Session.MaxDamage)
	fx.ShowStatusMessage(ctx, state.ID, "")
	fx.ShowHighScore(ctx, o.currentHighScore(ctx))
}

// currentHighScore treats a missing or unreachable store as 0
func (o *orchestrator) currentHighScore(ctx context.Context) int {
	out, err := o.GetHighScore(ctx, &GetHighScoreInput{})
	if err != nil {
		slog.Warn("High score unavailable", "error", err)
		return 0
	}
	return out.Value
}
