package rpgtoolkit

import (
	"context"
	"fmt"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/onemillion/internal/engine"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
	"github.com/KirkDiggler/onemillion/internal/testutils"
)

type AdapterTestSuite struct {
	suite.Suite
	roller  *testutils.ScriptedRoller
	adapter *Adapter
	ctx     context.Context
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterTestSuite))
}

func (s *AdapterTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.roller = testutils.NewScriptedRoller()

	var err error
	s.adapter, err = NewAdapter(&AdapterConfig{DiceRoller: s.roller})
	s.Require().NoError(err)
}

func TestNewAdapter(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		adapter, err := NewAdapter(nil)
		assert.Error(t, err)
		assert.Nil(t, adapter)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Contains(t, err.Error(), "config is required")
	})

	t.Run("missing dice roller", func(t *testing.T) {
		adapter, err := NewAdapter(&AdapterConfig{})
		assert.Nil(t, adapter)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Contains(t, err.Error(), "DiceRoller")
	})

	t.Run("unknown mitigation", func(t *testing.T) {
		adapter, err := NewAdapter(&AdapterConfig{
			DiceRoller: dice.DefaultRoller,
			Mitigation: engine.Mitigation("quarter"),
		})
		assert.Nil(t, adapter)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("valid config defaults to defense mitigation", func(t *testing.T) {
		adapter, err := NewAdapter(&AdapterConfig{DiceRoller: dice.DefaultRoller})
		assert.NoError(t, err)
		assert.Equal(t, engine.MitigationDefense, adapter.mitigation)
	})
}

func (s *AdapterTestSuite) TestRollPlayerAttack_Bounds() {
	hero := battle.NewRoster().Party[battle.SlotHero]

	s.roller.Queue(1, 21, 11)

	low, err := s.adapter.RollPlayerAttack(s.ctx, &hero)
	s.Require().NoError(err)
	s.Equal(10, low)

	high, err := s.adapter.RollPlayerAttack(s.ctx, &hero)
	s.Require().NoError(err)
	s.Equal(30, high)

	mid, err := s.adapter.RollPlayerAttack(s.ctx, &hero)
	s.Require().NoError(err)
	s.Equal(20, mid)

	s.Equal([]int{21, 21, 21}, s.roller.Sizes())
}

func (s *AdapterTestSuite) TestRollPlayerAttack_RoundsUp() {
	attacker := &battle.Combatant{Slot: battle.SlotKnight, Attack: 44.2}
	s.roller.Queue(11)

	damage, err := s.adapter.RollPlayerAttack(s.ctx, attacker)

	s.Require().NoError(err)
	s.Equal(45, damage)
}

func (s *AdapterTestSuite) TestRollPlayerAttack_ClampsAtZero() {
	mage := battle.NewRoster().Party[battle.SlotMage]
	s.roller.Queue(1)

	damage, err := s.adapter.RollPlayerAttack(s.ctx, &mage)

	s.Require().NoError(err)
	s.Equal(0, damage)
}

func (s *AdapterTestSuite) TestRollPlayerAttack_RealRollerStaysInRange() {
	adapter, err := NewAdapter(&AdapterConfig{DiceRoller: dice.DefaultRoller})
	s.Require().NoError(err)

	hero := battle.NewRoster().Party[battle.SlotHero]
	for i := 0; i < 500; i++ {
		damage, err := adapter.RollPlayerAttack(s.ctx, &hero)
		s.Require().NoError(err)
		s.GreaterOrEqual(damage, 10)
		s.LessOrEqual(damage, 30)
	}
}

func (s *AdapterTestSuite) TestRollBossAttack_RoundsToNearest() {
	boss := &battle.Combatant{Slot: battle.SlotBoss, Attack: 60.5}
	s.roller.Queue(11, 1)

	damage, err := s.adapter.RollBossAttack(s.ctx, boss)
	s.Require().NoError(err)
	s.Equal(61, damage)

	damage, err = s.adapter.RollBossAttack(s.ctx, boss)
	s.Require().NoError(err)
	s.Equal(51, damage)
}

func (s *AdapterTestSuite) TestRollerFailureIsWrapped() {
	s.roller.Err = fmt.Errorf("entropy exhausted")
	hero := battle.NewRoster().Party[battle.SlotHero]

	_, err := s.adapter.RollPlayerAttack(s.ctx, &hero)

	s.Require().Error(err)
	s.True(errors.IsInternal(err))
	s.Contains(err.Error(), "failed to roll attack for Hero")
}

func (s *AdapterTestSuite) TestRollerOutOfRange() {
	s.roller.Queue(22)
	hero := battle.NewRoster().Party[battle.SlotHero]

	_, err := s.adapter.RollPlayerAttack(s.ctx, &hero)

	s.True(errors.IsInternal(err))
}

func (s *AdapterTestSuite) TestApplyDefenseMitigation() {
	testCases := []struct {
		name       string
		mitigation engine.Mitigation
		defender   battle.Combatant
		raw        int
		expected   int
	}{
		{
			name:       "not defending is unchanged",
			mitigation: engine.MitigationDefense,
			defender:   battle.Combatant{Defense: 5},
			raw:        55,
			expected:   55,
		},
		{
			name:       "defense divides by own stat",
			mitigation: engine.MitigationDefense,
			defender:   battle.Combatant{Defense: 5, Defending: true},
			raw:        55,
			expected:   11,
		},
		{
			name:       "defense rounds to nearest",
			mitigation: engine.MitigationDefense,
			defender:   battle.Combatant{Defense: 1.5, Defending: true},
			raw:        50,
			expected:   33,
		},
		{
			name:       "zero defense never divides by zero",
			mitigation: engine.MitigationDefense,
			defender:   battle.Combatant{Defense: 0, Defending: true},
			raw:        40,
			expected:   40,
		},
		{
			name:       "halve ignores defense",
			mitigation: engine.MitigationHalve,
			defender:   battle.Combatant{Defense: 5, Defending: true},
			raw:        55,
			expected:   28,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			adapter, err := NewAdapter(&AdapterConfig{DiceRoller: s.roller, Mitigation: tc.mitigation})
			s.Require().NoError(err)

			s.Equal(tc.expected, adapter.ApplyDefenseMitigation(&tc.defender, tc.raw))
		})
	}
}

func (s *AdapterTestSuite) TestChooseWeighted() {
	weights := []int{1, 2, 0, 2, 1}

	testCases := []struct {
		roll     int
		expected int
	}{
		{roll: 1, expected: 0},
		{roll: 2, expected: 1},
		{roll: 3, expected: 1},
		{roll: 4, expected: 3},
		{roll: 5, expected: 3},
		{roll: 6, expected: 4},
	}

	for _, tc := range testCases {
		s.Run(fmt.Sprintf("roll %d", tc.roll), func() {
			s.roller.Queue(tc.roll)

			index, err := s.adapter.ChooseWeighted(s.ctx, weights)

			s.Require().NoError(err)
			s.Equal(tc.expected, index)
		})
	}
}

func (s *AdapterTestSuite) TestChooseWeighted_InvalidWeights() {
	_, err := s.adapter.ChooseWeighted(s.ctx, []int{0, 0})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.adapter.ChooseWeighted(s.ctx, []int{2, -1})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.adapter.ChooseWeighted(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func TestParseMitigation(t *testing.T) {
	m, err := engine.ParseMitigation("")
	assert.NoError(t, err)
	assert.Equal(t, engine.MitigationDefense, m)

	m, err = engine.ParseMitigation("halve")
	assert.NoError(t, err)
	assert.Equal(t, engine.MitigationHalve, m)

	_, err = engine.ParseMitigation("quarter")
	assert.True(t, errors.IsInvalidArgument(err))
}
