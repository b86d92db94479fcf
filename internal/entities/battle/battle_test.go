package battle_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/errors"
)

func TestCombatant_TakeDamageClampsAtZero(t *testing.T) {
	c := battle.Combatant{Slot: battle.SlotBoss, MaxHP: 50, HP: 20}

	lost := c.TakeDamage(35)

	assert.Equal(t, 0, c.HP)
	assert.Equal(t, 20, lost)
	assert.False(t, c.Alive())
}

func TestCombatant_HealClampsAtMax(t *testing.T) {
	c := battle.Combatant{Slot: battle.SlotHero, MaxHP: 100, HP: 99}

	gained := c.Heal(25)

	assert.Equal(t, 100, c.HP)
	assert.Equal(t, 1, gained)
}

func TestCombatant_NegativeAmountsIgnored(t *testing.T) {
	c := battle.Combatant{Slot: battle.SlotKnight, MaxHP: 80, HP: 40}

	c.TakeDamage(-5)
	c.Heal(-5)

	assert.Equal(t, 40, c.HP)
}

func TestCombatant_EntityIdentity(t *testing.T) {
	roster := battle.NewRoster()

	assert.Equal(t, "scholar", roster.Party[battle.SlotScholar].GetID())
	assert.Equal(t, battle.EntityTypePartyMember, roster.Party[battle.SlotScholar].GetType())
	assert.Equal(t, "boss", roster.Boss.GetID())
	assert.Equal(t, battle.EntityTypeBoss, roster.Boss.GetType())
}

func TestNewRoster_BaseStats(t *testing.T) {
	roster := battle.NewRoster()

	hero := roster.Party[battle.SlotHero]
	assert.Equal(t, 100, hero.HP)
	assert.Equal(t, 100, hero.MaxHP)
	assert.Equal(t, 20.0, hero.Attack)
	assert.Equal(t, 1.5, hero.Defense)

	mage := roster.Party[battle.SlotMage]
	assert.Equal(t, 0.0, mage.Attack)

	assert.Equal(t, 1000000, roster.Boss.HP)
	assert.Equal(t, 50.0, roster.Boss.Attack)

	for _, slot := range battle.PartySlots() {
		assert.Equal(t, slot, roster.Party[slot].Slot)
		assert.Greater(t, roster.Party[slot].Defense, 0.0)
	}
}

func TestRoster_NextLivingSkipsDead(t *testing.T) {
	roster := battle.NewRoster()
	roster.Party[battle.SlotKnight].HP = 0
	roster.Party[battle.SlotScholar].HP = 0

	next, ok := roster.NextLiving(battle.SlotHero)
	require.True(t, ok)
	assert.Equal(t, battle.SlotMage, next)

	_, ok = roster.NextLiving(battle.SlotMage)
	assert.False(t, ok)

	roster.Party[battle.SlotHero].HP = 0
	first, ok := roster.FirstLiving()
	require.True(t, ok)
	assert.Equal(t, battle.SlotMage, first)
}

func TestRoster_PartyDefeated(t *testing.T) {
	roster := battle.NewRoster()
	assert.False(t, roster.PartyDefeated())

	for _, slot := range battle.PartySlots() {
		roster.Party[slot].HP = 0
	}

	assert.True(t, roster.PartyDefeated())
	assert.Empty(t, roster.LivingParty())
}

func TestRoster_Member(t *testing.T) {
	roster := battle.NewRoster()

	boss, err := roster.Member(battle.SlotBoss)
	require.NoError(t, err)
	boss.HP = 7
	assert.Equal(t, 7, roster.Boss.HP)

	_, err = roster.Member(battle.Slot(9))
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestParseSlot(t *testing.T) {
	testCases := []struct {
		input    string
		expected battle.Slot
		wantErr  bool
	}{
		{input: "hero", expected: battle.SlotHero},
		{input: "Knight", expected: battle.SlotKnight},
		{input: " MAGE ", expected: battle.SlotMage},
		{input: "boss", expected: battle.SlotBoss},
		{input: "bard", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			slot, err := battle.ParseSlot(tc.input)
			if tc.wantErr {
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, slot)
		})
	}
}

func TestSlot_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Turn battle.Slot `json:"turn"`
	}{Turn: battle.SlotScholar})
	require.NoError(t, err)
	assert.JSONEq(t, `{"turn":"scholar"}`, string(data))

	var decoded struct {
		Turn battle.Slot `json:"turn"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"turn":"knight"}`), &decoded))
	assert.Equal(t, battle.SlotKnight, decoded.Turn)
}

func TestNewGameState_Difficulty(t *testing.T) {
	testCases := []struct {
		difficulty     battle.Difficulty
		bossAttack     float64
		bossMultiplier float64
	}{
		{battle.DifficultyDefault, 50, 1.1},
		{battle.DifficultyStandard, 100, 1.2},
		{battle.DifficultyImpossible, 150, 1.3},
	}

	for _, tc := range testCases {
		t.Run(string(tc.difficulty), func(t *testing.T) {
			state := battle.NewGameState("game_1", tc.difficulty)

			assert.Equal(t, tc.bossAttack, state.Roster.Boss.Attack)
			assert.Equal(t, tc.bossMultiplier, state.Session.BossDifficultyMultiplier)
			assert.Equal(t, battle.InitialLevelUpMultiplier, state.Session.LevelUpMultiplier)
			assert.Equal(t, battle.PhasePartyTurn, state.Phase)
			assert.Equal(t, battle.SlotHero, state.Turn)
			assert.Equal(t, 1, state.Round)
			assert.False(t, state.Session.GameOver)
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := battle.ParseDifficulty("impossible")
	require.NoError(t, err)
	assert.Equal(t, battle.DifficultyImpossible, d)

	d, err = battle.ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, battle.DifficultyDefault, d)

	_, err = battle.ParseDifficulty("nightmare")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestSession_RecordDamage(t *testing.T) {
	var session battle.Session

	assert.True(t, session.RecordDamage(12))
	assert.False(t, session.RecordDamage(12))
	assert.False(t, session.RecordDamage(3))
	assert.True(t, session.RecordDamage(30))
	assert.Equal(t, 30, session.MaxDamage)
}

func TestGameState_CloneIsIndependent(t *testing.T) {
	state := battle.NewGameState("game_1", battle.DifficultyDefault)

	clone := state.Clone()
	clone.Roster.Party[battle.SlotHero].HP = 1
	clone.Session.MaxDamage = 99

	assert.Equal(t, 100, state.Roster.Party[battle.SlotHero].HP)
	assert.Equal(t, 0, state.Session.MaxDamage)
}
