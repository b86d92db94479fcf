package highscore

import (
	"context"
	"sync"

	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/pkg/clock"
)

// InMemoryRepository keeps the high score for the lifetime of the process
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	score *HighScore
}

// NewInMemory creates an empty in-memory repository. A nil clock uses the
// system clock.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{clock: c}
}

var _ Repository = (*InMemoryRepository)(nil)

// Get returns a copy of the stored high score
func (r *InMemoryRepository) Get(_ context.Context) (*GetOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.score == nil {
		return nil, errors.NotFound("no high score recorded")
	}

	score := *r.score
	return &GetOutput{Score: &score}, nil
}

// Put replaces the stored high score
func (r *InMemoryRepository) Put(_ context.Context, input *PutInput) (*PutOutput, error) {
	if err := validatePut(input); err != nil {
		return nil, err
	}

	score := HighScore{
		Value:      input.Value,
		GameID:     input.GameID,
		Difficulty: input.Difficulty,
		RecordedAt: r.clock.Now(),
	}

	r.mu.Lock()
	r.score = &score
	r.mu.Unlock()

	out := score
	return &PutOutput{Score: &out}, nil
}
