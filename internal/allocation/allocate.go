package allocation

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Jose00521/Raffle-sub002/internal/draw"
	"github.com/Jose00521/Raffle-sub002/internal/model"
	"github.com/Jose00521/Raffle-sub002/internal/numberspace"
)

// Assignment is one resolved (category, ticket number) prize pairing,
// ready to persist.
type Assignment struct {
	CategoryID string
	Type       model.PrizeType
	Number     int
	Value      float64
	ItemCode   string
	Name       string
}

// ShortfallWarning reports that a group received fewer positions than it
// asked for. Shortfalls degrade the result, they never fail it.
type ShortfallWarning struct {
	CategoryID string
	Type       model.PrizeType
	Requested  int
	Assigned   int
}

// Allocator resolves a normalized request into a final assignment set.
type Allocator struct {
	engine *draw.Engine
}

// NewAllocator creates an Allocator backed by the given draw engine.
func NewAllocator(engine *draw.Engine) *Allocator {
	return &Allocator{engine: engine}
}

// Allocate assigns ticket numbers to every group of req. Fixed item
// positions were validated and pre-excluded during normalization, so they
// attach directly; money pools and unfixed items go through the draw engine
// against the shared exclusion set.
//
// Callers needing an exact count must pre-check space.Capacity() against the
// requested quantities; otherwise shortfalls surface as warnings alongside a
// reduced result.
func (a *Allocator) Allocate(space numberspace.Space, req *Request) ([]Assignment, []ShortfallWarning, error) {
	var (
		assignments []Assignment
		warnings    []ShortfallWarning
	)

	for _, key := range req.Keys() {
		group := req.Groups[key]
		requested, assigned := 0, 0

		for _, pool := range group.Money {
			requested += pool.Quantity
			res := a.engine.Draw(space, pool.Quantity, req.Excluded)
			assigned += len(res.Numbers)
			for _, n := range res.Numbers {
				assignments = append(assignments, Assignment{
					CategoryID: key.CategoryID,
					Type:       model.PrizeMoney,
					Number:     n,
					Value:      pool.Value,
				})
			}
		}

		for _, item := range group.Items {
			requested++
			if item.Fixed {
				assigned++
				assignments = append(assignments, Assignment{
					CategoryID: key.CategoryID,
					Type:       model.PrizeItem,
					Number:     item.Number,
					Value:      item.Value,
					ItemCode:   item.ItemCode,
					Name:       item.Name,
				})
				continue
			}
			res := a.engine.Draw(space, 1, req.Excluded)
			if len(res.Numbers) == 0 {
				continue
			}
			assigned++
			assignments = append(assignments, Assignment{
				CategoryID: key.CategoryID,
				Type:       model.PrizeItem,
				Number:     res.Numbers[0],
				Value:      item.Value,
				ItemCode:   item.ItemCode,
				Name:       item.Name,
			})
		}

		if assigned < requested {
			log.Warn().
				Str("category_id", key.CategoryID).
				Str("prize_type", string(key.Type)).
				Int("requested", requested).
				Int("assigned", assigned).
				Msg("instant prize group degraded by capacity shortfall")
			warnings = append(warnings, ShortfallWarning{
				CategoryID: key.CategoryID,
				Type:       key.Type,
				Requested:  requested,
				Assigned:   assigned,
			})
		}
	}

	if err := auditUnique(space, assignments); err != nil {
		return nil, nil, err
	}
	return assignments, warnings, nil
}

// auditUnique rebuilds the assigned-number set across every category and
// fails on any repeat. A hit here means internal state corruption, never
// caller input, so the allocation aborts instead of dropping the duplicate.
func auditUnique(space numberspace.Space, assignments []Assignment) error {
	seen := make(map[int]struct{}, len(assignments))
	for _, asg := range assignments {
		if _, dup := seen[asg.Number]; dup {
			return fmt.Errorf("audit: number %s assigned twice: %w",
				space.Format(asg.Number), ErrDuplicateAssignment)
		}
		seen[asg.Number] = struct{}{}
	}
	return nil
}
