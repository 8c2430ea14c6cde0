package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/clock"
	"hotel_booking/internal/domain"
)

// BookingService drives the engine and mirrors each transition into the store.
// The in-memory chain is authoritative: a store failure after a successful
// transition is logged, not rolled back.
type BookingService struct {
	chain *domain.HotelChain
	store domain.BookingStore
	cache domain.Cache
	clock clock.Clock

	// inventory serialises the duplicate checks in RegisterHotel and AddRoom.
	inventory sync.Mutex

	mu           sync.RWMutex
	reservations map[string]domain.Reservation
}

func NewBookingService(chain *domain.HotelChain, store domain.BookingStore, cache domain.Cache, clk clock.Clock) *BookingService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &BookingService{
		chain:        chain,
		store:        store,
		cache:        cache,
		clock:        clk,
		reservations: make(map[string]domain.Reservation),
	}
}

func (s *BookingService) Chain() *domain.HotelChain { return s.chain }

func (s *BookingService) hotel(name string) (*domain.Hotel, error) {
	h, ok := s.chain.Hotel(name)
	if !ok {
		return nil, fmt.Errorf("hotel %q: %w", name, domain.ErrNotFound)
	}
	return h, nil
}

func (s *BookingService) room(hotel string, number int) (*domain.Hotel, *domain.Room, error) {
	h, err := s.hotel(hotel)
	if err != nil {
		return nil, nil, err
	}
	r, ok := h.Room(number)
	if !ok {
		return nil, nil, fmt.Errorf("room %d in %q: %w", number, hotel, domain.ErrNotFound)
	}
	return h, r, nil
}

// RegisterHotel trims surrounding whitespace from name, so "Pearl " and
// "Pearl" are the same hotel.
func (s *BookingService) RegisterHotel(ctx context.Context, name string) (*domain.Hotel, error) {
	name = strings.TrimSpace(name)
	h, err := domain.NewHotel(name, domain.WithClock(s.clock))
	if err != nil {
		return nil, err
	}
	s.inventory.Lock()
	if _, ok := s.chain.Hotel(name); ok {
		s.inventory.Unlock()
		return nil, fmt.Errorf("hotel %q: %w", name, domain.ErrDuplicate)
	}
	s.chain.AddHotel(h)
	s.inventory.Unlock()
	if s.store != nil {
		if err := s.store.UpsertHotel(ctx, name); err != nil {
			log.Error().Err(err).Str("hotel", name).Msg("persist hotel failed")
		}
	}
	s.invalidate(ctx, name)
	log.Info().Str("hotel", name).Msg("hotel registered")
	return h, nil
}

// AddRoom rejects a room number the hotel already has, so lookups by number
// stay unambiguous.
func (s *BookingService) AddRoom(ctx context.Context, hotel string, in RoomInput) error {
	h, err := s.hotel(hotel)
	if err != nil {
		return err
	}
	room, err := roomFromInput(in)
	if err != nil {
		return err
	}
	s.inventory.Lock()
	if _, exists := h.Room(in.Number); exists {
		s.inventory.Unlock()
		return fmt.Errorf("room %d in %q: %w", in.Number, hotel, domain.ErrDuplicate)
	}
	h.AddRoom(room)
	s.inventory.Unlock()
	if s.store != nil {
		if err := s.store.UpsertRoom(ctx, hotel, roomRecord(room)); err != nil {
			log.Error().Err(err).Str("hotel", hotel).Int("room", in.Number).Msg("persist room failed")
		}
	}
	s.invalidate(ctx, hotel)
	return nil
}

type ReserveInput struct {
	Hotel   string
	PayerID string // optional
}

func (s *BookingService) Reserve(ctx context.Context, in ReserveInput) (domain.ReservationView, error) {
	payer, err := payerFromInput(in.PayerID)
	if err != nil {
		return domain.ReservationView{}, err
	}
	h, err := s.hotel(in.Hotel)
	if err != nil {
		return domain.ReservationView{}, err
	}

	res, err := s.chain.MakeReservation(h)
	switch {
	case errors.Is(err, domain.ErrNoRoomsAvailable):
		observability.ObserveReservation(in.Hotel, "unavailable")
		log.Info().Str("hotel", in.Hotel).Msg("reservation rejected: no rooms available")
		return domain.ReservationView{}, err
	case err != nil:
		observability.ObserveReservation(in.Hotel, "error")
		return domain.ReservationView{}, err
	}
	observability.ObserveReservation(in.Hotel, "created")

	s.mu.Lock()
	s.reservations[res.ID()] = res
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.InsertReservation(ctx, reservationRecord(in.Hotel, res, payer)); err != nil {
			log.Error().Err(err).Str("hotel", in.Hotel).Str("reservation", res.ID()).Msg("persist reservation failed")
		}
	}
	log.Info().Str("hotel", in.Hotel).Str("reservation", res.ID()).Int("room_count", res.RoomCount()).Msg("reservation created")
	return reservationView(in.Hotel, res, payer), nil
}

// Cancel hands the reservation to the chain's cancellation hook. The hook has
// no effect yet, so the reservation and every room keep their state.
func (s *BookingService) Cancel(ctx context.Context, hotel, reservationID string) error {
	if _, err := s.hotel(hotel); err != nil {
		return err
	}
	s.mu.RLock()
	res, ok := s.reservations[reservationID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("reservation %q: %w", reservationID, domain.ErrNotFound)
	}
	if err := s.chain.CancelReservation(res); err != nil {
		return err
	}
	log.Info().Str("hotel", hotel).Str("reservation", reservationID).Msg("cancellation accepted (no effect defined)")
	return nil
}

func (s *BookingService) CheckIn(ctx context.Context, hotel string, number int, name, address string) error {
	guest, err := guestFromInput(name, address)
	if err != nil {
		return err
	}
	h, room, err := s.room(hotel, number)
	if err != nil {
		return err
	}
	if err := s.chain.CheckInGuest(room, guest); err != nil {
		observability.ObserveStay(string(domain.StayCheckIn), "conflict")
		log.Info().Str("hotel", hotel).Int("room", number).Msg("check-in rejected: room occupied")
		return fmt.Errorf("room %d in %q: %w", number, hotel, err)
	}
	observability.ObserveStay(string(domain.StayCheckIn), "ok")
	s.afterStay(ctx, h, domain.StayCheckIn, number, guest)
	return nil
}

// CheckOut releases the room. Checking out a vacant room succeeds and records
// nothing.
func (s *BookingService) CheckOut(ctx context.Context, hotel string, number int) error {
	h, room, err := s.room(hotel, number)
	if err != nil {
		return err
	}
	prev, wasOccupied := s.chain.CheckOutGuestReporting(room)
	if !wasOccupied {
		observability.ObserveStay(string(domain.StayCheckOut), "noop")
		return nil
	}
	observability.ObserveStay(string(domain.StayCheckOut), "ok")
	s.afterStay(ctx, h, domain.StayCheckOut, number, prev)
	return nil
}

func (s *BookingService) afterStay(ctx context.Context, h *domain.Hotel, ev domain.StayEvent, number int, g domain.Guest) {
	observability.SetOccupied(h.Name(), h.Occupancy().Occupied)
	if s.store != nil {
		rec := stayRecord(h.Name(), number, ev, g, s.clock.Now())
		if err := s.store.LogStay(ctx, rec); err != nil {
			log.Error().Err(err).Str("hotel", h.Name()).Int("room", number).Msg("persist stay failed")
		}
		var name, addr *string
		if ev == domain.StayCheckIn {
			name, addr = rec.GuestName, rec.GuestAddress
		}
		if err := s.store.SetOccupant(ctx, h.Name(), number, name, addr); err != nil {
			log.Error().Err(err).Str("hotel", h.Name()).Int("room", number).Msg("persist occupancy failed")
		}
	}
	s.invalidate(ctx, h.Name())
	log.Info().Str("hotel", h.Name()).Int("room", number).Str("event", string(ev)).Str("guest", g.Name()).Msg("stay recorded")
}

// Restore rebuilds the chain from the stored inventory, occupants included,
// and reloads the reservation ledger so stored reservations can be cancelled.
// Rooms and reservations that no longer pass validation are skipped.
func (s *BookingService) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	hotels, err := s.store.LoadInventory(ctx)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	for _, hr := range hotels {
		if _, exists := s.chain.Hotel(hr.Name); exists {
			continue
		}
		h, err := domain.NewHotel(hr.Name, domain.WithClock(s.clock))
		if err != nil {
			log.Warn().Err(err).Str("hotel", hr.Name).Msg("skip invalid hotel")
			continue
		}
		for _, rr := range hr.Rooms {
			room, err := roomFromRecord(rr)
			if err != nil {
				log.Warn().Err(err).Str("hotel", hr.Name).Int("room", rr.Number).Msg("skip invalid room")
				continue
			}
			h.AddRoom(room)
		}
		s.chain.AddHotel(h)
		observability.SetOccupied(h.Name(), h.Occupancy().Occupied)
	}
	log.Info().Int("hotels", len(hotels)).Msg("inventory restored")

	recs, err := s.store.LoadReservations(ctx)
	if err != nil {
		return fmt.Errorf("load reservations: %w", err)
	}
	restored := 0
	s.mu.Lock()
	for _, rec := range recs {
		res, err := domain.RestoreReservation(rec.ID, rec.ReservedOn, rec.StartDate, rec.EndDate, rec.RoomCount)
		if err != nil {
			log.Warn().Err(err).Str("hotel", rec.Hotel).Str("reservation", rec.ID).Msg("skip invalid reservation")
			continue
		}
		s.reservations[res.ID()] = res
		restored++
	}
	s.mu.Unlock()
	log.Info().Int("reservations", restored).Msg("reservations restored")
	return nil
}

func (s *BookingService) invalidate(ctx context.Context, hotel string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, availabilityKey(hotel))
	_ = s.cache.Del(ctx, hotelsKey)
}
