package request

import (
	"fmt"
	"time"
)

// SeedSource supplies the default random-order seed.
type SeedSource interface {
	Seed() string
}

// WeeklySeed rotates the seed once per ISO week, so random ordering stays
// stable while users page back and forth.
type WeeklySeed struct {
	now func() time.Time
}

// NewWeeklySeed creates a WeeklySeed reading the given clock. A nil clock uses time.Now.
func NewWeeklySeed(now func() time.Time) *WeeklySeed {
	if now == nil {
		now = time.Now
	}
	return &WeeklySeed{now: now}
}

// Seed returns the ISO year and week as YYYYWW.
func (w *WeeklySeed) Seed() string {
	year, week := w.now().ISOWeek()
	return fmt.Sprintf("%d%02d", year, week)
}

// FixedSeed always returns the same seed.
type FixedSeed string

// Seed returns the pinned seed.
func (f FixedSeed) Seed() string { return string(f) }
