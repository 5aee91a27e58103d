// Package allocation turns a raw instant-prize request into a committed,
// collision-free assignment of prizes to ticket numbers.
package allocation

import (
	"fmt"
	"strings"

	"github.com/Jose00521/Raffle-sub002/internal/model"
	"github.com/Jose00521/Raffle-sub002/internal/numberspace"
)

// GroupKey identifies one (category, prize type) bucket of a request.
type GroupKey struct {
	CategoryID string
	Type       model.PrizeType
}

// MoneyPool is a request for Quantity cash prizes of Value each, positions
// drawn randomly.
type MoneyPool struct {
	Quantity int
	Value    float64
}

// ItemEntry is a request for one physical prize. Fixed entries carry the
// caller-chosen ticket number; the rest are drawn.
type ItemEntry struct {
	Fixed    bool
	Number   int
	Value    float64
	ItemCode string
	Name     string
}

// Group is one normalized (category, type) bucket.
type Group struct {
	Key   GroupKey
	Money []MoneyPool
	Items []ItemEntry
}

// Request is the normalized form of a prize request: grouped entries plus
// the exclusion set pre-seeded with every fixed number, so random draws can
// never collide with a manually chosen position.
type Request struct {
	Groups   map[GroupKey]*Group
	Excluded map[int]struct{}

	order []GroupKey
}

// Keys returns the group keys in first-appearance order. Iterating the
// Groups map directly would make allocation order nondeterministic.
func (r *Request) Keys() []GroupKey {
	return r.order
}

// ItemCodes returns the distinct item codes referenced by the request, in
// first-appearance order, for reference resolution.
func (r *Request) ItemCodes() []string {
	var codes []string
	seen := make(map[string]struct{})
	for _, key := range r.order {
		for _, item := range r.Groups[key].Items {
			if item.ItemCode == "" {
				continue
			}
			if _, ok := seen[item.ItemCode]; ok {
				continue
			}
			seen[item.ItemCode] = struct{}{}
			codes = append(codes, item.ItemCode)
		}
	}
	return codes
}

func (r *Request) group(key GroupKey) *Group {
	g, ok := r.Groups[key]
	if !ok {
		g = &Group{Key: key}
		r.Groups[key] = g
		r.order = append(r.order, key)
	}
	return g
}

// Normalize validates and groups raw prize entries against a number space.
// Fixed numbers are range-checked, rejected on repetition, and registered
// into the returned exclusion set before any draw happens.
func Normalize(space numberspace.Space, entries []model.PrizeEntry) (*Request, error) {
	req := &Request{
		Groups:   make(map[GroupKey]*Group),
		Excluded: make(map[int]struct{}),
	}

	for i, entry := range entries {
		switch strings.ToLower(entry.Type) {
		case "money":
			if entry.Quantity < 1 {
				return nil, fmt.Errorf("entry %d (category %s): money prize without quantity: %w",
					i, entry.CategoryID, ErrInvalidPrizeEntry)
			}
			g := req.group(GroupKey{CategoryID: entry.CategoryID, Type: model.PrizeMoney})
			g.Money = append(g.Money, MoneyPool{Quantity: entry.Quantity, Value: entry.Value})

		case "item":
			item := ItemEntry{
				Value:    entry.Value,
				ItemCode: entry.ItemCode,
				Name:     entry.Name,
			}
			if entry.Number != "" {
				n, err := space.Parse(entry.Number)
				if err != nil {
					return nil, fmt.Errorf("entry %d (category %s): %w", i, entry.CategoryID, err)
				}
				if _, taken := req.Excluded[n]; taken {
					return nil, &DuplicateFixedNumberError{Number: space.Format(n)}
				}
				req.Excluded[n] = struct{}{}
				item.Fixed = true
				item.Number = n
			}
			g := req.group(GroupKey{CategoryID: entry.CategoryID, Type: model.PrizeItem})
			g.Items = append(g.Items, item)

		default:
			return nil, fmt.Errorf("entry %d (category %s): unknown prize type %q: %w",
				i, entry.CategoryID, entry.Type, ErrInvalidPrizeEntry)
		}
	}

	return req, nil
}
