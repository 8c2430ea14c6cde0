package domain

import (
	"context"
	"time"
)

// BookingStore is the audit ledger behind the in-memory engine: inventory,
// reservations and the check-in/check-out log.
type BookingStore interface {
	// Write paths
	UpsertHotel(ctx context.Context, name string) error
	// UpsertRoom inserts a room or refreshes its category; it leaves a stored
	// occupant untouched.
	UpsertRoom(ctx context.Context, hotel string, r RoomRecord) error
	SetOccupant(ctx context.Context, hotel string, room int, guestName, guestAddress *string) error
	InsertReservation(ctx context.Context, r ReservationRecord) error
	LogStay(ctx context.Context, s StayRecord) error
	LogMiss(ctx context.Context, sourceID int64, status int, reason string) error

	// Read paths
	LoadInventory(ctx context.Context) ([]HotelRecord, error)
	LoadReservations(ctx context.Context) ([]ReservationRecord, error)
}

// InventoryClient fetches hotel inventory from the remote content API.
type InventoryClient interface {
	GetHotel(ctx context.Context, id int64) (InventoryHotel, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Storage records

type HotelRecord struct {
	Name  string
	Rooms []RoomRecord
}

type RoomRecord struct {
	Number       int
	Kind         *string
	Cost         *float64
	GuestName    *string // current occupant, nil when vacant
	GuestAddress *string
}

type ReservationRecord struct {
	ID         string
	Hotel      string
	ReservedOn time.Time
	StartDate  time.Time
	EndDate    time.Time
	RoomCount  int
	PayerID    *string
}

type StayEvent string

const (
	StayCheckIn  StayEvent = "check_in"
	StayCheckOut StayEvent = "check_out"
)

type StayRecord struct {
	Hotel        string
	Room         int
	Event        StayEvent
	GuestName    *string
	GuestAddress *string
	At           time.Time
}

// Remote inventory payloads

type InventoryHotel struct {
	SourceID int64           `json:"id"`
	Name     string          `json:"name"`
	Rooms    []InventoryRoom `json:"rooms"`
}

type InventoryRoom struct {
	Number int     `json:"number"`
	Kind   string  `json:"kind"`
	Cost   float64 `json:"cost"`
}

// Read models

type AvailabilityView struct {
	Hotel     string     `json:"hotel"`
	Available bool       `json:"available"`
	Total     int        `json:"total"`
	Occupied  int        `json:"occupied"`
	Vacant    int        `json:"vacant"`
	Rooms     []RoomView `json:"rooms"`
}

type RoomView struct {
	Number   int      `json:"number"`
	Kind     *string  `json:"kind,omitempty"`
	Cost     *float64 `json:"cost,omitempty"`
	Occupied bool     `json:"occupied"`
}

type HotelSummary struct {
	Name      string `json:"name"`
	Rooms     int    `json:"rooms"`
	Available bool   `json:"available"`
}

type ReservationView struct {
	ID              string `json:"id"`
	Hotel           string `json:"hotel"`
	ReservationDate string `json:"reservation_date"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	RoomCount       int    `json:"room_count"`
	PayerID         string `json:"payer_id,omitempty"`
}
