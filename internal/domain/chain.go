package domain

import (
	"strings"
	"sync"
)

// HotelChain routes booking and stay operations to its hotels and rooms. It
// holds no room or guest state itself.
type HotelChain struct {
	mu     sync.RWMutex
	hotels []*Hotel
}

func NewHotelChain() *HotelChain { return &HotelChain{} }

func (c *HotelChain) AddHotel(h *Hotel) {
	c.mu.Lock()
	c.hotels = append(c.hotels, h)
	c.mu.Unlock()
}

// Version combines the hotel count with every hotel's Version.
func (c *HotelChain) Version() uint64 {
	hotels := c.Hotels()
	v := uint64(len(hotels))
	for _, h := range hotels {
		v += h.Version()
	}
	return v
}

func (c *HotelChain) Hotels() []*Hotel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Hotel, len(c.hotels))
	copy(out, c.hotels)
	return out
}

// Hotel looks a hotel up by name.
func (c *HotelChain) Hotel(name string) (*Hotel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, h := range c.hotels {
		if h.Name() == name {
			return h, true
		}
	}
	return nil, false
}

func (c *HotelChain) MakeReservation(h *Hotel) (Reservation, error) {
	return h.CreateReservation()
}

// CancelReservation is the cancellation hook. No business rule is attached to
// it yet, so it accepts any reservation and changes nothing.
func (c *HotelChain) CancelReservation(Reservation) error {
	return nil
}

// CheckInGuest seats guest in a vacant room. A guest without a name, such as
// the zero Guest, is rejected; build guests with NewGuest.
func (c *HotelChain) CheckInGuest(room *Room, guest Guest) error {
	if strings.TrimSpace(guest.Name()) == "" {
		return invalid("guest", "guest name required")
	}
	return room.AssignGuest(&guest)
}

func (c *HotelChain) CheckOutGuest(room *Room) {
	_ = room.AssignGuest(nil)
}

// CheckOutGuestReporting is CheckOutGuest that also returns the departing
// guest, if the room was occupied.
func (c *HotelChain) CheckOutGuestReporting(room *Room) (Guest, bool) {
	return room.Release()
}
