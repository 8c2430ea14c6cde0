package domain

import (
	"time"

	"github.com/google/uuid"

	"hotel_booking/internal/clock"
)

// Reservation records an intended stay. It names no room and no hotel; it is
// a value record only.
type Reservation struct {
	id              string
	reservationDate time.Time
	startDate       time.Time
	endDate         time.Time
	roomCount       int
}

// NewReservation validates start <= end (as calendar days) and stamps today's
// date from clk.
func NewReservation(clk clock.Clock, start, end time.Time, roomCount int) (Reservation, error) {
	start, end = civilDay(start), civilDay(end)
	if start.After(end) {
		return Reservation{}, invalid("dates", "start date is after end date")
	}
	return Reservation{
		id:              uuid.NewString(),
		reservationDate: civilDay(clk.Now()),
		startDate:       start,
		endDate:         end,
		roomCount:       roomCount,
	}, nil
}

// RestoreReservation rebuilds a reservation read back from storage.
func RestoreReservation(id string, reservedOn, start, end time.Time, roomCount int) (Reservation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Reservation{}, invalid("id", "not a uuid")
	}
	start, end = civilDay(start), civilDay(end)
	if start.After(end) {
		return Reservation{}, invalid("dates", "start date is after end date")
	}
	return Reservation{id: id, reservationDate: civilDay(reservedOn), startDate: start, endDate: end, roomCount: roomCount}, nil
}

func (r Reservation) ID() string                 { return r.id }
func (r Reservation) ReservationDate() time.Time { return r.reservationDate }
func (r Reservation) StartDate() time.Time       { return r.startDate }
func (r Reservation) EndDate() time.Time         { return r.endDate }
func (r Reservation) RoomCount() int             { return r.roomCount }

// Nights is the number of calendar days between start and end.
func (r Reservation) Nights() int {
	return int(r.endDate.Sub(r.startDate).Hours() / 24)
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
