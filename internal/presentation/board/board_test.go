package board_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/onemillion/internal/clients/imagefeed"
	"github.com/KirkDiggler/onemillion/internal/entities/battle"
	"github.com/KirkDiggler/onemillion/internal/presentation/board"
)

func TestBoard_RecordsPerGame(t *testing.T) {
	ctx := context.Background()
	b := board.New()
	roster := battle.NewRoster()

	b.ShowPartyHP(ctx, "game_1", roster.Party)
	b.ShowBossHP(ctx, "game_1", 999970)
	b.ShowMaxDamage(ctx, "game_1", 30)
	b.ShowStatusMessage(ctx, "game_1", "The Hero dealt 30 damage to the boss!")
	b.ShowBossHP(ctx, "game_2", 1000000)
	b.ShowHighScore(ctx, 44)

	view, ok := b.View("game_1")
	require.True(t, ok)
	assert.Equal(t, "game_1", view.GameID)
	assert.Equal(t, 100, view.Party[battle.SlotHero].HP)
	assert.Equal(t, 999970, view.BossHP)
	assert.Equal(t, 30, view.MaxDamage)
	assert.Equal(t, "The Hero dealt 30 damage to the boss!", view.Status)
	assert.Equal(t, 44, view.HighScore)
	assert.Nil(t, view.Image)

	other, ok := b.View("game_2")
	require.True(t, ok)
	assert.Equal(t, 1000000, other.BossHP)
	assert.Equal(t, 44, other.HighScore)

	_, ok = b.View("game_3")
	assert.False(t, ok)
}

func TestBoard_ViewIsACopy(t *testing.T) {
	ctx := context.Background()
	b := board.New()
	b.ShowImage(ctx, "game_1", imagefeed.Image{URL: "imgs/dragon.png", Alt: "Default image of a dragon"})

	view, ok := b.View("game_1")
	require.True(t, ok)
	view.Image.URL = "changed"

	again, _ := b.View("game_1")
	assert.Equal(t, "imgs/dragon.png", again.Image.URL)
}

func TestBoard_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	b := board.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.ShowBossHP(ctx, "game_1", i)
			b.ShowStatusMessage(ctx, "game_1", "status")
			_, _ = b.View("game_1")
		}(i)
	}
	wg.Wait()

	view, ok := b.View("game_1")
	require.True(t, ok)
	assert.Equal(t, "status", view.Status)
}

func TestBoard_Watch(t *testing.T) {
	ctx := context.Background()
	b := board.New()

	changes, stop := b.Watch("game_1")
	defer stop()

	b.ShowBossHP(ctx, "game_2", 5)
	select {
	case <-changes:
		t.Fatal("signalled for another game")
	default:
	}

	// several changes coalesce into one signal
	b.ShowBossHP(ctx, "game_1", 10)
	b.ShowMaxDamage(ctx, "game_1", 3)
	<-changes
	select {
	case <-changes:
		t.Fatal("expected a single pending signal")
	default:
	}

	b.ShowHighScore(ctx, 77)
	<-changes
	view, _ := b.View("game_1")
	assert.Equal(t, 77, view.HighScore)

	stop()
	stop()
	b.ShowBossHP(ctx, "game_1", 1)
	select {
	case <-changes:
		t.Fatal("signalled after stop")
	default:
	}
}

func TestBoard_ClearGame(t *testing.T) {
	ctx := context.Background()
	b := board.New()
	b.ShowBossHP(ctx, "game_1", 10)
	b.ShowBossHP(ctx, "game_2", 20)

	changes, stop := b.Watch("game_1")
	defer stop()

	b.ClearGame(ctx, "game_1")
	<-changes

	_, ok := b.View("game_1")
	assert.False(t, ok)
	other, ok := b.View("game_2")
	require.True(t, ok)
	assert.Equal(t, 20, other.BossHP)
}
