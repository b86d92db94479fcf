// Package highscore stores the single best max-damage value shown on the menu.
// Each win replaces the stored value.
package highscore

//go:generate mockgen -destination=mock/mock_repository.go -package=highscoremock github.com/KirkDiggler/onemillion/internal/repositories/highscore Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
)

// HighScore is the max single hit of the most recent winning run
type HighScore struct {
	Value      int               `json:"value"`
	GameID     string            `json:"game_id"`
	Difficulty battle.Difficulty `json:"difficulty"`
	RecordedAt time.Time         `json:"recorded_at"`
}

// Repository defines the storage interface for the high score
type Repository interface {
	// Get returns the stored high score, or NotFound when no run has been won
	Get(ctx context.Context) (*GetOutput, error)

	// Put replaces the stored high score
	Put(ctx context.Context, input *PutInput) (*PutOutput, error)
}

// GetOutput defines the response for retrieving the high score
type GetOutput struct {
	Score *HighScore
}

// PutInput defines the request for recording a high score
type PutInput struct {
	Value      int
	GameID     string
	Difficulty battle.Difficulty
}

// PutOutput defines the response for recording a high score
type PutOutput struct {
	Score *HighScore
}

func validatePut(input *PutInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.Value < 0 {
		vb.Field("Value", "must not be negative")
	}
	return vb.Build()
}
