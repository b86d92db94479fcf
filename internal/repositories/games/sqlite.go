package games

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
)

// gameRecord is one stored run. The state is kept as JSON so the schema does
// not follow every field of the roster.
type gameRecord struct {
	ID        string `gorm:"primaryKey;size:64"`
	Phase     string `gorm:"index;size:32"`
	State     []byte `gorm:"type:blob"`
	UpdatedAt time.Time
}

func (gameRecord) TableName() string {
	return "games"
}

// OpenSQLite opens the database at dsn and migrates the games table
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open game database")
	}

	if err := db.AutoMigrate(&gameRecord{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate game database")
	}

	return db, nil
}

// SQLiteConfig holds the dependencies for the SQLite repository
type SQLiteConfig struct {
	DB *gorm.DB
}

// Validate ensures all required dependencies are present
func (c *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.DB == nil {
		vb.RequiredField("DB")
	}
	return vb.Build()
}

// SQLiteRepository implements Repository with gorm on SQLite
type SQLiteRepository struct {
	db *gorm.DB
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository creates a repository over an opened database
func NewSQLiteRepository(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: cfg.DB}, nil
}

// Save upserts the run
func (r *SQLiteRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.State == nil {
		return nil, errors.InvalidArgument("state is required")
	}

	if input.State.ID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	data, err := json.Marshal(input.State)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode game")
	}

	record := &gameRecord{
		ID:    input.State.ID,
		Phase: string(input.State.Phase),
		State: data,
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"phase", "state", "updated_at"}),
		}).
		Create(record).Error
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save game").
			WithMeta("game_id", input.State.ID)
	}

	return &SaveOutput{}, nil
}

// Get loads the run
func (r *SQLiteRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	var record gameRecord
	err := r.db.WithContext(ctx).Where("id = ?", input.GameID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.NotFound("game not found").WithMeta("game_id", input.GameID)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load game").
			WithMeta("game_id", input.GameID)
	}

	var state battle.GameState
	if err := json.Unmarshal(record.State, &state); err != nil {
		return nil, errors.Wrap(err, "stored game is corrupt").WithMeta("game_id", input.GameID)
	}

	return &GetOutput{State: &state}, nil
}

// Delete removes the run
func (r *SQLiteRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	result := r.db.WithContext(ctx).Where("id = ?", input.GameID).Delete(&gameRecord{})
	if result.Error != nil {
		return nil, errors.WrapWithCode(result.Error, errors.CodeUnavailable, "failed to delete game").
			WithMeta("game_id", input.GameID)
	}
	if result.RowsAffected == 0 {
		return nil, errors.NotFound("game not found").WithMeta("game_id", input.GameID)
	}

	return &DeleteOutput{}, nil
}
