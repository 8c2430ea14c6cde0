package domain

import (
	"strings"
	"sync"

	"hotel_booking/internal/clock"
)

// Hotel owns its rooms in insertion order and derives availability from them.
type Hotel struct {
	name  string
	clock clock.Clock

	mu    sync.RWMutex
	rooms []*Room
	rev   uint64 // inventory changes, starting at 1
}

type HotelOption func(*Hotel)

func WithClock(c clock.Clock) HotelOption {
	return func(h *Hotel) {
		if c != nil {
			h.clock = c
		}
	}
}

func NewHotel(name string, opts ...HotelOption) (*Hotel, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalid("name", "hotel name required")
	}
	h := &Hotel{name: name, clock: clock.NewSystem(), rev: 1}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func (h *Hotel) Name() string { return h.name }

// AddRoom appends room to the inventory. Room numbers are not checked for
// duplicates.
func (h *Hotel) AddRoom(room *Room) {
	h.mu.Lock()
	h.rooms = append(h.rooms, room)
	h.rev++
	h.mu.Unlock()
}

// Version changes whenever a room is added or any room changes occupant, so a
// read model tagged with it can tell whether it still matches the hotel.
// Read it before building the model: a change that lands during the build
// then yields a newer version for the next reader.
func (h *Hotel) Version() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v := h.rev
	for _, r := range h.rooms {
		v += r.Version()
	}
	return v
}

// Rooms returns a snapshot of the inventory in insertion order.
func (h *Hotel) Rooms() []*Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Room, len(h.rooms))
	copy(out, h.rooms)
	return out
}

// Room returns the first room with the given number.
func (h *Hotel) Room(number int) (*Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, r := range h.rooms {
		if r.Number() == number {
			return r, true
		}
	}
	return nil, false
}

// Available is true iff at least one room is vacant.
func (h *Hotel) Available() bool {
	for _, r := range h.Rooms() {
		if !r.IsOccupied() {
			return true
		}
	}
	return false
}

type Occupancy struct {
	Total    int
	Occupied int
}

func (o Occupancy) Vacant() int { return o.Total - o.Occupied }

func (h *Hotel) Occupancy() Occupancy {
	rooms := h.Rooms()
	o := Occupancy{Total: len(rooms)}
	for _, r := range rooms {
		if r.IsOccupied() {
			o.Occupied++
		}
	}
	return o
}

// CreateReservation records a one-night reservation starting today. It does
// not occupy a room; check-in does that. RoomCount carries the size of the
// inventory at the time of booking.
func (h *Hotel) CreateReservation() (Reservation, error) {
	occ := h.Occupancy()
	if occ.Vacant() == 0 {
		return Reservation{}, ErrNoRoomsAvailable
	}
	today := h.clock.Now()
	return NewReservation(h.clock, today, today.AddDate(0, 0, 1), occ.Total)
}
