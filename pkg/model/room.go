package model

// Room is owned and mutated by external inventory management; this service
// only reads it. Capacity and price fields come in several historical
// shapes, so the optional ones are pointers and the known-dirty ones are
// left untyped for lenient coercion.
type Room struct {
	ID               string  `json:"id,omitempty" bson:"_id,omitempty"`
	Name             string  `json:"name" bson:"name"`
	Slug             string  `json:"slug,omitempty" bson:"slug,omitempty"`
	Type             string  `json:"type,omitempty" bson:"type,omitempty"`
	CapacityAdults   *int    `json:"capacity_adults,omitempty" bson:"capacity_adults,omitempty"`
	CapacityChildren *int    `json:"capacity_children,omitempty" bson:"capacity_children,omitempty"`
	Capacity         *int    `json:"capacity,omitempty" bson:"capacity,omitempty"`
	Sleeps           *int    `json:"sleeps,omitempty" bson:"sleeps,omitempty"`
	BedConfig        []Bed   `json:"bed_config,omitempty" bson:"bedConfig,omitempty"`
	ExtraBeds        any     `json:"extra_beds,omitempty" bson:"extra_beds,omitempty"`
	ExtraBedding     any     `json:"extra_bedding,omitempty" bson:"extra_bedding,omitempty"`
	PricePerNight    *float64 `json:"price_per_night,omitempty" bson:"price_per_night,omitempty"`
	Price            *float64 `json:"price,omitempty" bson:"price,omitempty"`
	Available        *bool   `json:"available,omitempty" bson:"available,omitempty"`
}

// Bed is one entry of a room's bed configuration. Count is untyped because
// legacy documents store it as int, double or string.
type Bed struct {
	Type  string `json:"type,omitempty" bson:"type,omitempty"`
	Count any    `json:"count,omitempty" bson:"count,omitempty"`
}

// NightlyRate returns the first populated price field, 0 when none is set.
func (r *Room) NightlyRate() float64 {
	if r.PricePerNight != nil {
		return *r.PricePerNight
	}
	if r.Price != nil {
		return *r.Price
	}
	return 0
}

// IsAvailable treats a missing flag as available.
func (r *Room) IsAvailable() bool {
	return r.Available == nil || *r.Available
}
