package games_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/repositories/games"
)

type SQLiteTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo *games.SQLiteRepository
	ctx  context.Context
}

func TestSQLiteSuite(t *testing.T) {
	suite.Run(t, new(SQLiteTestSuite))
}

func (s *SQLiteTestSuite) SetupTest() {
	var err error
	s.db, err = games.OpenSQLite(filepath.Join(s.T().TempDir(), "games.db"))
	s.Require().NoError(err)

	s.repo, err = games.NewSQLiteRepository(&games.SQLiteConfig{DB: s.db})
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *SQLiteTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.NoError(sqlDB.Close())
}

func (s *SQLiteTestSuite) TestNewSQLiteRepository() {
	_, err := games.NewSQLiteRepository(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = games.NewSQLiteRepository(&games.SQLiteConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *SQLiteTestSuite) TestSaveAndGet() {
	state := battle.NewGameState("game_1", battle.DifficultyImpossible)
	state.Roster.Boss.HP = 999958
	state.Session.MaxDamage = 42
	state.Turn = battle.SlotScholar

	_, err := s.repo.Save(s.ctx, &games.SaveInput{State: state})
	s.Require().NoError(err)

	output, err := s.repo.Get(s.ctx, &games.GetInput{GameID: "game_1"})
	s.Require().NoError(err)
	s.Equal(state, output.State)
}

func (s *SQLiteTestSuite) TestSaveReplaces() {
	state := battle.NewGameState("game_1", battle.DifficultyDefault)
	_, err := s.repo.Save(s.ctx, &games.SaveInput{State: state})
	s.Require().NoError(err)

	state.Roster.Party[battle.SlotHero].HP = 12
	state.Phase = battle.PhaseBossTurn
	_, err = s.repo.Save(s.ctx, &games.SaveInput{State: state})
	s.Require().NoError(err)

	output, err := s.repo.Get(s.ctx, &games.GetInput{GameID: "game_1"})
	s.Require().NoError(err)
	s.Equal(12, output.State.Roster.Party[battle.SlotHero].HP)
	s.Equal(battle.PhaseBossTurn, output.State.Phase)

	var count int64
	s.Require().NoError(s.db.Table("games").Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *SQLiteTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, &games.GetInput{GameID: "nope"})
	s.True(errors.IsNotFound(err))
	s.Equal("nope", errors.GetMeta(err)["game_id"])
}

func (s *SQLiteTestSuite) TestGetCorrupt() {
	s.Require().NoError(s.db.Exec("INSERT INTO games (id, phase, state) VALUES (?, ?, ?)", "game_1", "party_turn", []byte("{nope")).Error)

	_, err := s.repo.Get(s.ctx, &games.GetInput{GameID: "game_1"})
	s.True(errors.IsInternal(err))
}

func (s *SQLiteTestSuite) TestDelete() {
	_, err := s.repo.Save(s.ctx, &games.SaveInput{State: battle.NewGameState("game_1", battle.DifficultyDefault)})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, &games.DeleteInput{GameID: "game_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, &games.GetInput{GameID: "game_1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, &games.DeleteInput{GameID: "game_1"})
	s.True(errors.IsNotFound(err))
}

func (s *SQLiteTestSuite) TestInvalidInput() {
	_, err := s.repo.Save(s.ctx, &games.SaveInput{State: &battle.GameState{}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Delete(s.ctx, &games.DeleteInput{})
	s.True(errors.IsInvalidArgument(err))
}
