package game

import (
	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
)

// StartGameInput selects the difficulty of a new run
type StartGameInput struct {
	// Difficulty is "", "standard" or "impossible"
	Difficulty string
}

// StartGameOutput returns the new run
type StartGameOutput struct {
	Game *battle.GameState
}

// AttackInput names the attacking party slot
type AttackInput struct {
	GameID string
	Slot   battle.Slot
}

// AttackOutput reports the result of an attack
type AttackOutput struct {
	Game         *battle.GameState
	Damage       int
	Healed       bool
	NewRecord    bool
	BossDefeated bool
}

// DefendInput names the defending party slot
type DefendInput struct {
	GameID string
	Slot   battle.Slot
}

// DefendOutput returns the run after the defend
type DefendOutput struct {
	Game *battle.GameState
}

// UpgradeInput names the party member the Mage levels up
type UpgradeInput struct {
	GameID string
	Target battle.Slot
}

// UpgradeOutput reports the multiplier in effect after the upgrade
type UpgradeOutput struct {
	Game       *battle.GameState
	Multiplier float64
}

// AdvanceInput identifies the run whose deferred step should run
type AdvanceInput struct {
	GameID string
}

// Step names the deferred step Advance ran
type Step string

// Steps
const (
	StepBossTurn      Step = "boss_turn"
	StepRoundStart    Step = "round_start"
	StepWinAnnounced  Step = "win_announced"
	StepLossAnnounced Step = "loss_announced"
	StepReset         Step = "reset"
)

// BossActionKind is the outcome the boss policy picked
type BossActionKind string

// Boss outcomes
const (
	BossPowerUp BossActionKind = "power_up"
	BossHitOne  BossActionKind = "hit_one"
	BossHitAll  BossActionKind = "hit_all"
)

// Hit is damage landed on one party member
type Hit struct {
	Slot   battle.Slot `json:"slot"`
	Damage int         `json:"damage"`
}

// BossAction describes one boss turn
type BossAction struct {
	Kind      BossActionKind `json:"kind"`
	RawDamage int            `json:"raw_damage"`
	Hits      []Hit          `json:"hits,omitempty"`
}

// AdvanceOutput reports which step ran
type AdvanceOutput struct {
	Game       *battle.GameState
	Step       Step
	BossAction *BossAction
}

// ResetGameInput identifies the run to discard
type ResetGameInput struct {
	GameID string
}

// ResetGameOutput returns the fresh run
type ResetGameOutput struct {
	Game *battle.GameState
}

// EndGameInput identifies the run to remove
type EndGameInput struct {
	GameID string
}

// EndGameOutput returns the run as it was when it ended
type EndGameOutput struct {
	Game *battle.GameState
}

// GetGameInput identifies a run
type GetGameInput struct {
	GameID string
}

// GetGameOutput returns a copy of the run
type GetGameOutput struct {
	Game *battle.GameState
}

// GetHighScoreInput is empty; there is one high score
type GetHighScoreInput struct{}

// GetHighScoreOutput returns the last winning max hit, 0 when none
type GetHighScoreOutput struct {
	Value int
}

// LoadImageInput identifies the run whose view gets the image
type LoadImageInput struct {
	GameID string
}

// LoadImageOutput returns the image shown
type LoadImageOutput struct {
	Image    imagefeed.Image
	Fallback bool
	Status   string
}
