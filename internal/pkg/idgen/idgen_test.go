package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/onemillion/internal/pkg/idgen"
)

func TestSequential(t *testing.T) {
	gen := idgen.NewSequential("game")

	assert.Equal(t, "game_1", gen.Generate())
	assert.Equal(t, "game_2", gen.Generate())
	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}

func TestSequentialConcurrent(t *testing.T) {
	gen := idgen.NewSequential("game")

	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		wg   sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.Generate()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 20)
	assert.True(t, seen["game_20"])
}

func TestTimeOrdered(t *testing.T) {
	gen := idgen.NewUUID("game")

	first := gen.Generate()
	second := gen.Generate()
	require.True(t, strings.HasPrefix(first, "game_"))
	assert.NotEqual(t, first, second)

	id, err := uuid.Parse(strings.TrimPrefix(first, "game_"))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}
