// Package capacity computes how many guests a room can sleep. Room
// documents predate any schema enforcement, so every numeric field is
// coerced leniently: unparseable values count as 0 (or 1 for bed-config
// entries) and never fail the computation.
package capacity

import (
	"strconv"

	"resort/pkg/model"
)

// Guests returns the guest capacity of a single room.
//
// Policy, in priority order:
//  1. Explicit adult/child capacity fields, summed; with extra beds allowed,
//     the room's parseable extra-bed count is added.
//  2. A single capacity/sleeps integer.
//  3. The sum of bed-config counts, each defaulting to 1.
// On branches 2 and 3, allowing extra beds without a parseable extra-bed
// count adds a flat +1. That fallback is intentional legacy behavior,
// pending product-owner review; do not "fix" it silently.
func Guests(room *model.Room, allowExtraBeds bool) int {
	if room == nil {
		return 0
	}

	if room.CapacityAdults != nil || room.CapacityChildren != nil {
		cap := 0
		if room.CapacityAdults != nil {
			cap += *room.CapacityAdults
		}
		if room.CapacityChildren != nil {
			cap += *room.CapacityChildren
		}
		if allowExtraBeds {
			cap += asInt(extraBedField(room), 0)
		}
		return cap
	}

	cap := 0
	switch {
	case room.Capacity != nil:
		cap = *room.Capacity
	case room.Sleeps != nil:
		cap = *room.Sleeps
	default:
		for _, bed := range room.BedConfig {
			cap += asInt(bed.Count, 1)
		}
	}

	if allowExtraBeds {
		if eb, ok := parseInt(extraBedField(room)); ok {
			cap += eb
		} else {
			cap++
		}
	}
	return cap
}

// Total sums the capacity of a set of rooms.
func Total(rooms []*model.Room, allowExtraBeds bool) int {
	total := 0
	for _, room := range rooms {
		total += Guests(room, allowExtraBeds)
	}
	return total
}

func extraBedField(room *model.Room) any {
	if room.ExtraBeds != nil {
		return room.ExtraBeds
	}
	return room.ExtraBedding
}

// parseInt coerces the integer shapes the bson decoder produces, plus
// numeric strings left behind by old imports.
func parseInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

func asInt(v any, fallback int) int {
	if n, ok := parseInt(v); ok {
		return n
	}
	return fallback
}

// AsPrice coerces legacy price fields the same way parseInt does for
// capacities, keeping fractional values.
func AsPrice(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	case string:
		if parsed, err := strconv.ParseFloat(n, 64); err == nil {
			return parsed
		}
	}
	return 0
}
