package highscore

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/onemillion/internal/redis"
)

// Key holds the JSON encoded HighScore
const Key = "onemillion:high_score"

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a Redis backed high score repository
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Get returns the stored high score
func (r *redisRepository) Get(ctx context.Context) (*GetOutput, error) {
	data, err := r.client.Get(ctx, Key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("no high score recorded")
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get high score from Redis")
	}

	var score HighScore
	if err := json.Unmarshal([]byte(data), &score); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal high score")
	}

	return &GetOutput{Score: &score}, nil
}

// Put replaces the stored high score
func (r *redisRepository) Put(ctx context.Context, input *PutInput) (*PutOutput, error) {
	if err := validatePut(input); err != nil {
		return nil, err
	}

	score := &HighScore{
		Value:      input.Value,
		GameID:     input.GameID,
		Difficulty: input.Difficulty,
		RecordedAt: r.clock.Now(),
	}

	data, err := json.Marshal(score)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal high score")
	}

	// no expiry; the score outlives every run
	if err := r.client.Set(ctx, Key, data, 0).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store high score in Redis")
	}

	return &PutOutput{Score: score}, nil
}
