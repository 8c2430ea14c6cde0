package app

import (
	"math"
	"strings"
	"time"

	"hotel_booking/internal/domain"
)

const dateLayout = "2006-01-02"

// maxCost is the largest amount rooms.cost (DECIMAL(12,2)) can hold.
const maxCost = 9999999999.99

/********** tiny helpers **********/

func ptrStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func ptrF64(f float64) *float64 { return &f }

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

/********** input -> domain **********/

// RoomInput describes a room as callers hand it over. Kind and Cost are
// optional together: either both are given or neither.
type RoomInput struct {
	Number int
	Kind   string
	Cost   float64
}

func roomFromInput(in RoomInput) (*domain.Room, error) {
	if in.Number <= 0 {
		return nil, &domain.ValidationError{Field: "number", Reason: "room number must be positive"}
	}
	if strings.TrimSpace(in.Kind) == "" && in.Cost == 0 {
		return domain.NewRoom(in.Number), nil
	}
	kind, err := domain.ParseRoomKind(in.Kind)
	if err != nil {
		return nil, err
	}
	cost, err := domain.NewMonetaryAmount(in.Cost)
	if err != nil {
		return nil, err
	}
	if in.Cost > maxCost {
		return nil, &domain.ValidationError{Field: "cost", Reason: "cost exceeds 9999999999.99"}
	}
	// The tolerance absorbs float error near maxCost; anything coarser than
	// a cent would not survive the DECIMAL round trip.
	if cents := in.Cost * 100; math.Round(cents) < 1 || math.Abs(cents-math.Round(cents)) > 1e-3 {
		return nil, &domain.ValidationError{Field: "cost", Reason: "cost must be a whole number of cents"}
	}
	cat, err := domain.NewRoomCategory(kind, cost)
	if err != nil {
		return nil, err
	}
	return domain.NewRoom(in.Number, domain.WithCategory(cat)), nil
}

func guestFromInput(name, address string) (domain.Guest, error) {
	return domain.NewGuest(strings.TrimSpace(name), strings.TrimSpace(address))
}

func payerFromInput(id string) (*domain.PayerIdentity, error) {
	if id == "" {
		return nil, nil
	}
	tok, err := domain.NewIdentityToken(id)
	if err != nil {
		return nil, err
	}
	p, err := domain.NewPayerIdentity(tok)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

/********** records <-> domain **********/

func roomRecord(r *domain.Room) domain.RoomRecord {
	rec := domain.RoomRecord{Number: r.Number()}
	if c, ok := r.Category(); ok {
		rec.Kind = ptrStr(c.Kind().String())
		rec.Cost = ptrF64(c.Cost().Value())
	}
	if g, ok := r.Guest(); ok {
		rec.GuestName = ptrStr(g.Name())
		if addr, ok := g.Address(); ok {
			rec.GuestAddress = ptrStr(addr)
		}
	}
	return rec
}

// roomFromRecord rebuilds a stored room including its current occupant.
func roomFromRecord(rec domain.RoomRecord) (*domain.Room, error) {
	in := RoomInput{Number: rec.Number, Kind: deref(rec.Kind)}
	if rec.Cost != nil {
		in.Cost = *rec.Cost
	}
	room, err := roomFromInput(in)
	if err != nil {
		return nil, err
	}
	if rec.GuestName != nil {
		g, err := domain.NewGuest(*rec.GuestName, deref(rec.GuestAddress))
		if err != nil {
			return nil, err
		}
		if err := room.AssignGuest(&g); err != nil {
			return nil, err
		}
	}
	return room, nil
}

func reservationRecord(hotel string, r domain.Reservation, payer *domain.PayerIdentity) domain.ReservationRecord {
	rec := domain.ReservationRecord{
		ID:         r.ID(),
		Hotel:      hotel,
		ReservedOn: r.ReservationDate(),
		StartDate:  r.StartDate(),
		EndDate:    r.EndDate(),
		RoomCount:  r.RoomCount(),
	}
	if payer != nil {
		rec.PayerID = ptrStr(payer.ID().String())
	}
	return rec
}

func stayRecord(hotel string, room int, ev domain.StayEvent, g domain.Guest, at time.Time) domain.StayRecord {
	rec := domain.StayRecord{Hotel: hotel, Room: room, Event: ev, GuestName: ptrStr(g.Name()), At: at}
	if addr, ok := g.Address(); ok {
		rec.GuestAddress = ptrStr(addr)
	}
	return rec
}

/********** domain -> views **********/

func availabilityView(h *domain.Hotel) domain.AvailabilityView {
	rooms := h.Rooms()
	v := domain.AvailabilityView{Hotel: h.Name(), Total: len(rooms), Rooms: make([]domain.RoomView, 0, len(rooms))}
	for _, r := range rooms {
		rv := domain.RoomView{Number: r.Number(), Occupied: r.IsOccupied()}
		if c, ok := r.Category(); ok {
			rv.Kind = ptrStr(c.Kind().String())
			rv.Cost = ptrF64(c.Cost().Value())
		}
		if rv.Occupied {
			v.Occupied++
		}
		v.Rooms = append(v.Rooms, rv)
	}
	v.Vacant = v.Total - v.Occupied
	v.Available = v.Vacant > 0
	return v
}

func reservationView(hotel string, r domain.Reservation, payer *domain.PayerIdentity) domain.ReservationView {
	v := domain.ReservationView{
		ID:              r.ID(),
		Hotel:           hotel,
		ReservationDate: r.ReservationDate().Format(dateLayout),
		StartDate:       r.StartDate().Format(dateLayout),
		EndDate:         r.EndDate().Format(dateLayout),
		RoomCount:       r.RoomCount(),
	}
	if payer != nil {
		v.PayerID = payer.ID().String()
	}
	return v
}
