package mysql

import (
	"context"
	"database/sql"

	"hotel_booking/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

var _ domain.BookingStore = (*Repo)(nil)

func (r *Repo) UpsertHotel(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, upsertHotelSQL, name)
	return err
}

func (r *Repo) UpsertRoom(ctx context.Context, hotel string, rr domain.RoomRecord) error {
	_, err := r.db.ExecContext(ctx, upsertRoomSQL,
		hotel,
		rr.Number,
		valStr(rr.Kind),
		valF64(rr.Cost),
	)
	return err
}

func (r *Repo) SetOccupant(ctx context.Context, hotel string, room int, guestName, guestAddress *string) error {
	_, err := r.db.ExecContext(ctx, setOccupantSQL, valStr(guestName), valStr(guestAddress), hotel, room)
	return err
}

func (r *Repo) InsertReservation(ctx context.Context, rv domain.ReservationRecord) error {
	_, err := r.db.ExecContext(ctx, insertReservationSQL,
		rv.ID,
		rv.Hotel,
		rv.ReservedOn,
		rv.StartDate,
		rv.EndDate,
		rv.RoomCount,
		valStr(rv.PayerID),
	)
	return err
}

func (r *Repo) LogStay(ctx context.Context, s domain.StayRecord) error {
	_, err := r.db.ExecContext(ctx, insertStaySQL,
		s.Hotel,
		s.Room,
		string(s.Event),
		valStr(s.GuestName),
		valStr(s.GuestAddress),
		s.At,
	)
	return err
}

func (r *Repo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, id, status, reason)
	return err
}

// LoadInventory returns every hotel with its rooms in insertion order.
func (r *Repo) LoadInventory(ctx context.Context) ([]domain.HotelRecord, error) {
	rows, err := r.db.QueryContext(ctx, loadInventorySQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelRecord
	for rows.Next() {
		var (
			name                 string
			number               sql.NullInt64
			kind                 sql.NullString
			cost                 sql.NullFloat64
			guestName, guestAddr sql.NullString
		)
		if err := rows.Scan(&name, &number, &kind, &cost, &guestName, &guestAddr); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].Name != name {
			out = append(out, domain.HotelRecord{Name: name})
		}
		if !number.Valid {
			continue
		}
		rec := domain.RoomRecord{
			Number:       int(number.Int64),
			Kind:         nullStr(kind),
			GuestName:    nullStr(guestName),
			GuestAddress: nullStr(guestAddr),
		}
		if cost.Valid {
			c := cost.Float64
			rec.Cost = &c
		}
		h := &out[len(out)-1]
		h.Rooms = append(h.Rooms, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadReservations returns the reservation ledger, oldest first.
func (r *Repo) LoadReservations(ctx context.Context) ([]domain.ReservationRecord, error) {
	rows, err := r.db.QueryContext(ctx, loadReservationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReservationRecord
	for rows.Next() {
		var (
			rec   domain.ReservationRecord
			payer sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Hotel, &rec.ReservedOn, &rec.StartDate, &rec.EndDate, &rec.RoomCount, &payer); err != nil {
			return nil, err
		}
		rec.PayerID = nullStr(payer)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
