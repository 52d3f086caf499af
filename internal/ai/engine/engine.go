// Package engine holds the advisory generators. Every generator is a pure
// function of its inputs, an explicit as-of date and the engine's RandomSource,
// so nothing here touches storage or the wall clock.
package engine

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"recommendation-service/internal/models"
)

// RandomSource is the strategy the generators draw from. *rand.Rand satisfies it.
type RandomSource interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// NewRandomSource returns a PCG-backed source. A zero seed draws a fresh one.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RunSeed derives the seed of one farm's run on one calendar day from the
// configured seed, so seeded deployments stay reproducible without every farm
// and every day drawing the same sequence. A zero seed stays zero.
func RunSeed(seed uint64, farmID uuid.UUID, asOf time.Time) uint64 {
	if seed == 0 {
		return 0
	}
	h := fnv.New64a()
	h.Write(farmID[:])
	h.Write([]byte(calendarDate(asOf).Format(time.DateOnly)))
	if mixed := seed ^ h.Sum64(); mixed != 0 {
		return mixed
	}
	return seed
}

// Engine is not safe for concurrent use; build one per run.
type Engine struct {
	rng RandomSource
}

func New(rng RandomSource) *Engine {
	if rng == nil {
		rng = NewRandomSource(0)
	}
	return &Engine{rng: rng}
}

// uniform draws from [lo, hi).
func (e *Engine) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

// randInt draws from [lo, hi], both ends inclusive.
func (e *Engine) randInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + e.rng.IntN(hi-lo+1)
}

func pick[T any](e *Engine, options []T) T {
	return options[e.rng.IntN(len(options))]
}

// SeasonFor maps the calendar month to a season: June-September wet,
// October-February dry, March-May hot and dry.
func SeasonFor(asOf time.Time) models.Season {
	switch asOf.Month() {
	case time.June, time.July, time.August, time.September:
		return models.SeasonWet
	case time.October, time.November, time.December, time.January, time.February:
		return models.SeasonDry
	default:
		return models.SeasonHotDry
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// dateOf truncates t to midnight in its own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// calendarDate keeps only the y/m/d of t, placed at midnight UTC. DATE columns
// arrive from lib/pq at midnight UTC, so comparisons against them go through here
// rather than dateOf.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(calendarDate(to).Sub(calendarDate(from)).Hours() / 24))
}

func cropKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func nameIn(name string, set ...string) bool {
	key := cropKey(name)
	for _, s := range set {
		if key == s {
			return true
		}
	}
	return false
}
