// Package games stores the active run for each game ID
package games

//go:generate mockgen -destination=mock/mock_repository.go -package=gamesmock github.com/KirkDiggler/onemillion/internal/repositories/games Repository

import (
	"context"

	"github.com/KirkDiggler/onemillion/internal/entities/battle"
)

// Repository defines the storage interface for game runs
type Repository interface {
	// Save stores a run, replacing any previous run with the same ID
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves a run by game ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a run
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// SaveInput defines the request for saving a run
type SaveInput struct {
	State *battle.GameState
}

// SaveOutput defines the response for saving a run
type SaveOutput struct{}

// GetInput defines the request for retrieving a run
type GetInput struct {
	GameID string
}

// GetOutput defines the response for retrieving a run
type GetOutput struct {
	State *battle.GameState
}

// DeleteInput defines the request for deleting a run
type DeleteInput struct {
	GameID string
}

// DeleteOutput defines the response for deleting a run
type DeleteOutput struct{}
