// Package idgen names game runs
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator hands out run IDs
type Generator interface {
	Generate() string
}

func withPrefix(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}

// Sequential numbers runs from 1. Tests use it for predictable IDs.
type Sequential struct {
	prefix string
	last   atomic.Uint64
}

func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

func (s *Sequential) Generate() string {
	return withPrefix(s.prefix, strconv.FormatUint(s.last.Add(1), 10))
}

// TimeOrdered names runs with version 7 UUIDs, so IDs sort by start time
// in the game store.
type TimeOrdered struct {
	prefix string
}

func NewUUID(prefix string) *TimeOrdered {
	return &TimeOrdered{prefix: prefix}
}

func (t *TimeOrdered) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return withPrefix(t.prefix, id.String())
}
