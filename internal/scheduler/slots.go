package scheduler

import (
	"math/rand"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

// Slot is one (day, period) cell of the weekly grid.
type Slot struct {
	Day    models.Day
	Period models.Period
}

// Slots returns the full weekly grid in day-major order.
func Slots() []Slot {
	slots := make([]Slot, 0, len(models.Days)*len(models.Periods))
	for _, day := range models.Days {
		for _, period := range models.Periods {
			slots = append(slots, Slot{Day: day, Period: period})
		}
	}
	return slots
}

// RandomSource supplies the randomness used to shuffle slots.
type RandomSource interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

type globalSource struct{}

func (globalSource) Intn(n int) int { return rand.Intn(n) }

// DefaultRandomSource uses the process-wide generator. Runs are not reproducible.
func DefaultRandomSource() RandomSource {
	return globalSource{}
}

// NewSeededSource returns a deterministic source for reproducible runs.
func NewSeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// Shuffle permutes slots in place with a Fisher-Yates pass driven by src.
func Shuffle(slots []Slot, src RandomSource) {
	for i := len(slots) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		slots[i], slots[j] = slots[j], slots[i]
	}
}
