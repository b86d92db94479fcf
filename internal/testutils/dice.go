package testutils

import (
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// ScriptedRoller is a dice.Roller that returns queued results in order.
// Once the queue is empty it rolls the middle face, (size+1)/2.
type ScriptedRoller struct {
	mu    sync.Mutex
	rolls []int
	sizes []int

	// Err, when set, is returned by every call
	Err error
}

var _ dice.Roller = (*ScriptedRoller)(nil)

// NewScriptedRoller queues the given die results
func NewScriptedRoller(rolls ...int) *ScriptedRoller {
	return &ScriptedRoller{rolls: rolls}
}

// Queue appends more results
func (r *ScriptedRoller) Queue(rolls ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rolls = append(r.rolls, rolls...)
}

// Roll returns the next queued result
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return 0, r.Err
	}

	r.sizes = append(r.sizes, size)
	if len(r.rolls) == 0 {
		return (size + 1) / 2, nil
	}

	next := r.rolls[0]
	r.rolls = r.rolls[1:]
	return next, nil
}

// RollN rolls count dice of the given size
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	results := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

// Sizes returns the die sizes requested so far
func (r *ScriptedRoller) Sizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.sizes...)
}

// Remaining reports how many queued results are left
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rolls)
}
