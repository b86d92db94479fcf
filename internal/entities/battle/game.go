package battle

import "github.com/KirkDiggler/onemillion/internal/errors"

// Difficulty selects the boss's starting attack and growth rate
type Difficulty string

// Supported difficulties
const (
	DifficultyDefault    Difficulty = ""
	DifficultyStandard   Difficulty = "standard"
	DifficultyImpossible Difficulty = "impossible"
)

// ParseDifficulty validates a difficulty name. The empty string selects the
// default.
func ParseDifficulty(name string) (Difficulty, error) {
	switch d := Difficulty(name); d {
	case DifficultyDefault, DifficultyStandard, DifficultyImpossible:
		return d, nil
	default:
		return "", errors.InvalidArgumentf("unknown difficulty: %q", name)
	}
}

// BossAttackFactor is applied once to the boss's base attack
func (d Difficulty) BossAttackFactor() float64 {
	switch d {
	case DifficultyStandard:
		return 2
	case DifficultyImpossible:
		return 3
	default:
		return 1
	}
}

// BossMultiplier compounds the boss's attack after every boss turn
func (d Difficulty) BossMultiplier() float64 {
	switch d {
	case DifficultyStandard:
		return 1.2
	case DifficultyImpossible:
		return 1.3
	default:
		return 1.1
	}
}

// Session multipliers
const (
	InitialLevelUpMultiplier = 1.1
	LevelUpGrowthRate        = 1.5
)

// Session holds the per-run counters
type Session struct {
	MaxDamage                int        `json:"max_damage"`
	LevelUpMultiplier        float64    `json:"level_up_multiplier"`
	BossDifficultyMultiplier float64    `json:"boss_difficulty_multiplier"`
	Difficulty               Difficulty `json:"difficulty"`
	GameOver                 bool       `json:"game_over"`
}

// RecordDamage raises MaxDamage when damage exceeds it. Reports whether the
// record changed.
func (s *Session) RecordDamage(damage int) bool {
	if damage > s.MaxDamage {
		s.MaxDamage = damage
		return true
	}
	return false
}

// Phase is the state of the turn cycle
type Phase string

// Phases
const (
	PhasePartyTurn Phase = "party_turn"
	PhaseBossTurn  Phase = "boss_turn"
	PhaseRoundEnd  Phase = "round_end"
	PhaseGameOver  Phase = "game_over"
)

// Outcome is set once the run ends
type Outcome string

// Outcomes
const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// GameState is one run. It is owned by the turn engine and replaced on reset.
// Turn is only meaningful while Phase is PhasePartyTurn.
type GameState struct {
	ID      string  `json:"id"`
	Roster  Roster  `json:"roster"`
	Session Session `json:"session"`
	Phase   Phase   `json:"phase"`
	Turn    Slot    `json:"turn"`
	Round   int     `json:"round"`
	Outcome Outcome `json:"outcome,omitempty"`

	// Announced is set once the win or defeat message has been shown
	Announced bool `json:"announced"`
}

// NewGameState builds a fresh run at the Hero's turn with difficulty applied
func NewGameState(id string, difficulty Difficulty) *GameState {
	state := &GameState{
		ID:     id,
		Roster: NewRoster(),
		Session: Session{
			LevelUpMultiplier:        InitialLevelUpMultiplier,
			BossDifficultyMultiplier: difficulty.BossMultiplier(),
			Difficulty:               difficulty,
		},
		Phase: PhasePartyTurn,
		Turn:  SlotHero,
		Round: 1,
	}
	state.Roster.Boss.Attack *= difficulty.BossAttackFactor()
	return state
}

// Clone returns a deep copy. Roster and Session hold no references so a
// value copy suffices.
func (g *GameState) Clone() *GameState {
	if g == nil {
		return nil
	}
	c := *g
	return &c
}
