// Package draw implements the random ticket draw engine: bounded-retry
// uniform sampling of unique ids against a shared exclusion set.
package draw

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Jose00521/Raffle-sub002/internal/numberspace"
)

// DefaultAttemptsPerNumber bounds the sampling loop at count * 20 attempts.
// It governs a cost/success tradeoff: higher values chase the last free ids
// of a nearly full space, lower values degrade to a shortfall sooner.
const DefaultAttemptsPerNumber = 20

// Result reports the outcome of a single draw call.
type Result struct {
	// Numbers holds the drawn ids, in draw order.
	Numbers []int
	// Requested is the count originally asked for, before clamping.
	Requested int
	// Clamped is the count actually attempted after the remaining-capacity
	// clamp. Clamped < Requested means the space could never satisfy the ask.
	Clamped int
}

// Shortfall is the gap between what was requested and what was drawn.
func (r Result) Shortfall() int {
	return r.Requested - len(r.Numbers)
}

// Engine draws unique random ids from a number space.
type Engine struct {
	attemptsPerNumber int
	rnd               *rand.Rand
}

// NewEngine creates an Engine seeded from the clock. attemptsPerNumber
// values below 1 fall back to DefaultAttemptsPerNumber.
func NewEngine(attemptsPerNumber int) *Engine {
	return NewEngineWithSource(attemptsPerNumber, rand.NewSource(time.Now().UnixNano()))
}

// NewEngineWithSource creates an Engine with a caller-supplied random source.
// Primarily used for deterministic tests.
func NewEngineWithSource(attemptsPerNumber int, src rand.Source) *Engine {
	if attemptsPerNumber < 1 {
		attemptsPerNumber = DefaultAttemptsPerNumber
	}
	return &Engine{
		attemptsPerNumber: attemptsPerNumber,
		rnd:               rand.New(src),
	}
}

// Draw samples up to count unique ids from space, skipping ids present in
// excluded. Accepted ids are added to excluded immediately, so sequential
// calls sharing one set never collide with each other.
//
// count is clamped to the remaining capacity of the space. The attempt
// budget is clamped count * attemptsPerNumber; when it runs out the partial
// result is returned and the shortfall is visible on Result.
func (e *Engine) Draw(space numberspace.Space, count int, excluded map[int]struct{}) Result {
	res := Result{Requested: count}
	if count <= 0 {
		return res
	}

	remaining := space.Capacity() - len(excluded)
	if remaining < 0 {
		remaining = 0
	}
	clamped := count
	if clamped > remaining {
		log.Warn().
			Int("requested", count).
			Int("remaining_capacity", remaining).
			Msg("draw request exceeds remaining capacity, clamping")
		clamped = remaining
	}
	res.Clamped = clamped
	if clamped == 0 {
		return res
	}

	res.Numbers = make([]int, 0, clamped)
	maxAttempts := clamped * e.attemptsPerNumber
	for attempts := 0; attempts < maxAttempts && len(res.Numbers) < clamped; attempts++ {
		n := e.rnd.Intn(space.Capacity())
		if _, taken := excluded[n]; taken {
			continue
		}
		excluded[n] = struct{}{}
		res.Numbers = append(res.Numbers, n)
	}

	if short := res.Shortfall(); short > 0 {
		log.Warn().
			Int("requested", count).
			Int("drawn", len(res.Numbers)).
			Int("shortfall", short).
			Msg("draw ended with shortfall")
	}
	return res
}
