package games

import (
	"context"
	"sync"

	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*battle.GameState
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*battle.GameState),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Save stores a copy of the run
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.State == nil {
		return nil, errors.InvalidArgument("state is required")
	}

	if input.State.ID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.State.ID] = input.State.Clone()

	return &SaveOutput{}, nil
}

// Get retrieves a copy of the run
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	state, exists := r.store[input.GameID]
	if !exists {
		return nil, errors.NotFound("game not found").WithMeta("game_id", input.GameID)
	}

	return &GetOutput{State: state.Clone()}, nil
}

// Delete removes a run
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.GameID]; !exists {
		return nil, errors.NotFound("game not found").WithMeta("game_id", input.GameID)
	}

	delete(r.store, input.GameID)

	return &DeleteOutput{}, nil
}
