// Package allocator selects rooms to satisfy a guest-count requirement.
// Fewer rooms always beats cheaper price across combination sizes; price
// only breaks ties within the same size.
package allocator

import (
	"sort"
	"strings"

	"resort/internal/bookings/capacity"
	"resort/pkg/model"
)

type candidate struct {
	id    string
	cap   int
	price float64
}

// Allocate returns the ids of the rooms chosen for the given guest count,
// or nil when the candidate set cannot cover the demand.
//
// Selection order:
//  1. Cheapest single room whose capacity covers all guests.
//  2. Smallest k >= 2 (bounded by maxGroupSize) with any combination whose
//     total capacity covers the guests; cheapest by total price within k.
//  3. Greedy fallback: capacity-descending (price ascending on ties) until
//     demand is met.
//
// preferredTypes filters candidates by type or slug, case-insensitive; a
// preference that matches nothing is ignored rather than treated as an
// error.
func Allocate(rooms []*model.Room, guests int, allowExtraBeds bool, preferredTypes []string, maxGroupSize int) []string {
	if guests <= 0 {
		return []string{}
	}

	filtered := filterByType(rooms, preferredTypes)

	annotated := make([]candidate, 0, len(filtered))
	for _, room := range filtered {
		annotated = append(annotated, candidate{
			id:    room.ID,
			cap:   capacity.Guests(room, allowExtraBeds),
			price: room.NightlyRate(),
		})
	}

	if ids := bestSingle(annotated, guests); ids != nil {
		return ids
	}
	if ids := bestCombination(annotated, guests, maxGroupSize); ids != nil {
		return ids
	}
	return greedy(annotated, guests)
}

func filterByType(rooms []*model.Room, preferredTypes []string) []*model.Room {
	if len(preferredTypes) == 0 {
		return rooms
	}

	prefs := make(map[string]struct{}, len(preferredTypes))
	for _, p := range preferredTypes {
		prefs[strings.ToLower(p)] = struct{}{}
	}

	var filtered []*model.Room
	for _, room := range rooms {
		_, slugMatch := prefs[strings.ToLower(room.Slug)]
		_, typeMatch := prefs[strings.ToLower(room.Type)]
		if slugMatch || typeMatch {
			filtered = append(filtered, room)
		}
	}
	if len(filtered) == 0 {
		// Preference matched nothing; degrade to the full candidate set.
		return rooms
	}
	return filtered
}

// bestSingle picks the cheapest room that alone covers the demand. A single
// room is always preferred over any multi-room combination.
func bestSingle(candidates []candidate, guests int) []string {
	best := -1
	for i, c := range candidates {
		if c.cap < guests {
			continue
		}
		if best < 0 || c.price < candidates[best].price {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return []string{candidates[best].id}
}

// bestCombination searches k-combinations for ascending k and stops at the
// first k that yields any combination meeting the demand.
func bestCombination(candidates []candidate, guests, maxGroupSize int) []string {
	n := len(candidates)
	if maxGroupSize > n {
		maxGroupSize = n
	}

	for k := 2; k <= maxGroupSize; k++ {
		var best []int
		bestPrice := 0.0

		combo := make([]int, k)
		var walk func(start, depth int, cap int, price float64)
		walk = func(start, depth int, cap int, price float64) {
			if depth == k {
				if cap >= guests && (best == nil || price < bestPrice) {
					best = append([]int(nil), combo...)
					bestPrice = price
				}
				return
			}
			for i := start; i <= n-(k-depth); i++ {
				combo[depth] = i
				walk(i+1, depth+1, cap+candidates[i].cap, price+candidates[i].price)
			}
		}
		walk(0, 0, 0, 0)

		if best != nil {
			ids := make([]string, k)
			for i, idx := range best {
				ids[i] = candidates[idx].id
			}
			return ids
		}
	}
	return nil
}

// greedy accepts rooms capacity-descending until demand is met; nil when
// even the whole candidate set falls short.
func greedy(candidates []candidate, guests int) []string {
	sorted := append([]candidate(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].cap != sorted[j].cap {
			return sorted[i].cap > sorted[j].cap
		}
		return sorted[i].price < sorted[j].price
	})

	var picked []string
	total := 0
	for _, c := range sorted {
		if total >= guests {
			break
		}
		picked = append(picked, c.id)
		total += c.cap
	}
	if total < guests {
		return nil
	}
	return picked
}
