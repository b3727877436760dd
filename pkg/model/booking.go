package model

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking is the persisted reservation document. AllocatedRooms holds the
// room ids the stay occupies; the per-night Occupancy records derived from
// them are what the store's uniqueness constraint protects.
type Booking struct {
	ID               string          `json:"id,omitempty" bson:"_id,omitempty"`
	Reference        string          `json:"reference" bson:"reference"`
	GuestName        string          `json:"guest_name" bson:"guest_name"`
	GuestEmail       string          `json:"guest_email" bson:"guest_email"`
	GuestPhone       string          `json:"guest_phone,omitempty" bson:"guest_phone,omitempty"`
	Guests           int             `json:"guests" bson:"guests"`
	CheckIn          time.Time       `json:"check_in" bson:"check_in"`
	CheckOut         time.Time       `json:"check_out" bson:"check_out"`
	Nights           int             `json:"nights" bson:"nights"`
	SelectedRooms    []string        `json:"selected_rooms,omitempty" bson:"selected_rooms,omitempty"`
	AllocatedRooms   []string        `json:"allocated_rooms" bson:"allocated_rooms"`
	ExtraBedding     bool            `json:"extra_bedding" bson:"extra_bedding"`
	ExtraBedQuantity int             `json:"extra_bed_quantity,omitempty" bson:"extra_bed_quantity,omitempty"`
	SelectedPrograms []string        `json:"selected_programs,omitempty" bson:"selected_programs,omitempty"`
	Status           string          `json:"status" bson:"status"`
	PriceBreakdown   *PriceBreakdown `json:"price_breakdown,omitempty" bson:"price_breakdown,omitempty"`
	CreatedAt        time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" bson:"updated_at"`
}

// PriceBreakdown carries monetary values accumulated in floating point and
// rounded to 2 decimals at presentation.
type PriceBreakdown struct {
	RoomsSubtotal    float64         `json:"rooms_subtotal" bson:"rooms_subtotal"`
	ProgramsSubtotal float64         `json:"programs_subtotal" bson:"programs_subtotal"`
	Tax              float64         `json:"tax" bson:"tax"`
	Total            float64         `json:"total" bson:"total"`
	PerRoom          []RoomCharge    `json:"per_room" bson:"per_room"`
	Programs         []ProgramCharge `json:"programs,omitempty" bson:"programs,omitempty"`
}

type RoomCharge struct {
	RoomID        string  `json:"room_id" bson:"room_id"`
	PricePerNight float64 `json:"price_per_night" bson:"price_per_night"`
}

type ProgramCharge struct {
	ProgramID string  `json:"program_id" bson:"program_id"`
	Title     string  `json:"title" bson:"title"`
	Price     float64 `json:"price" bson:"price"`
}

// BookingRequest is the inbound createBooking contract. Guests may be given
// directly or split into adults+children; dates are "YYYY-MM-DD" strings.
type BookingRequest struct {
	GuestName          string   `json:"guest_name" validate:"required,min=2,max=100"`
	GuestEmail         string   `json:"guest_email" validate:"required,email"`
	GuestPhone         string   `json:"guest_phone,omitempty" validate:"omitempty,max=20"`
	Guests             *int     `json:"guests,omitempty" validate:"omitempty,min=1,max=200"`
	Adults             *int     `json:"adults,omitempty" validate:"omitempty,min=0,max=200"`
	Children           *int     `json:"children,omitempty" validate:"omitempty,min=0,max=200"`
	CheckIn            string   `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut           string   `json:"check_out" validate:"required,datetime=2006-01-02"`
	AllowExtraBeds     bool     `json:"allow_extra_beds,omitempty"`
	ExtraBedQuantity   int      `json:"extra_bed_quantity,omitempty" validate:"omitempty,min=0,max=10"`
	PreferredRoomTypes []string `json:"preferred_room_types,omitempty"`
	SelectedRoomIDs    []string `json:"selected_rooms,omitempty" validate:"omitempty,dive,mongodb"`
	SelectedProgramIDs []string `json:"selected_programs,omitempty"`
	Status             string   `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled"`
}

// BookingResult is the outbound createBooking contract.
type BookingResult struct {
	ID             string          `json:"id"`
	Reference      string          `json:"reference"`
	Status         string          `json:"status"`
	AllocatedRooms []string        `json:"allocated_rooms"`
	PriceBreakdown *PriceBreakdown `json:"price_breakdown"`
}
