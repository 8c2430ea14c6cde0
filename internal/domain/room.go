package domain

import "sync"

// Room is a unit of inventory. Its occupant is guarded by its own lock so the
// vacant->occupied transition is decided exactly once per check-in.
type Room struct {
	number   int
	category RoomCategory

	mu      sync.Mutex
	guest   *Guest
	version uint64 // bumped on every occupant change
}

type RoomOption func(*Room)

func WithCategory(c RoomCategory) RoomOption {
	return func(r *Room) { r.category = c }
}

func NewRoom(number int, opts ...RoomOption) *Room {
	r := &Room{number: number}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Room) Number() int { return r.number }

// Category returns the room category, if one was attached.
func (r *Room) Category() (RoomCategory, bool) { return r.category, !r.category.IsZero() }

func (r *Room) IsOccupied() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.guest != nil
}

// Guest returns a copy of the current occupant.
func (r *Room) Guest() (Guest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.guest == nil {
		return Guest{}, false
	}
	return *r.guest, true
}

// AssignGuest sets the occupant. A nil guest releases the room and never
// fails. A non-nil guest only lands on a vacant room; an occupied room yields
// ErrRoomOccupied and keeps its current occupant.
func (r *Room) AssignGuest(g *Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g == nil {
		if r.guest != nil {
			r.guest = nil
			r.version++
		}
		return nil
	}
	if r.guest != nil {
		return ErrRoomOccupied
	}
	cp := *g
	r.guest = &cp
	r.version++
	return nil
}

// Release vacates the room and reports who was in it, in one step.
func (r *Room) Release() (Guest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.guest == nil {
		return Guest{}, false
	}
	prev := *r.guest
	r.guest = nil
	r.version++
	return prev, true
}

// Version counts occupant changes. It only grows.
func (r *Room) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}
