package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

// InventoryImporter copies hotel inventory from the remote content API into
// the booking store. Rooms that fail validation are skipped individually; the
// rest of the hotel is still imported.
type InventoryImporter struct {
	client domain.InventoryClient
	store  domain.BookingStore
	cache  domain.Cache
}

func NewInventoryImporter(c domain.InventoryClient, s domain.BookingStore, cache domain.Cache) *InventoryImporter {
	return &InventoryImporter{client: c, store: s, cache: cache}
}

// ImportResult counts what a single hotel import wrote.
type ImportResult struct {
	Hotel   string
	Rooms   int
	Skipped int
	Missed  bool
}

func (s *InventoryImporter) ImportHotel(ctx context.Context, id int64) (ImportResult, error) {
	p, err := s.client.GetHotel(ctx, id)
	if err != nil {
		// 404 and 401/403 are recorded as misses and stop this hotel gracefully.
		switch {
		case errors.Is(err, domain.ErrNotFound):
			_ = s.store.LogMiss(ctx, id, 404, "not found")
			return ImportResult{Missed: true}, nil
		case errors.Is(err, domain.ErrForbidden):
			_ = s.store.LogMiss(ctx, id, 403, "inactive")
			return ImportResult{Missed: true}, nil
		}
		return ImportResult{}, err
	}

	name := strings.TrimSpace(p.Name)
	if _, err := domain.NewHotel(name); err != nil {
		_ = s.store.LogMiss(ctx, id, 422, "invalid hotel name")
		return ImportResult{Missed: true}, nil
	}

	// Parent first so rooms have something to hang off.
	if err := s.store.UpsertHotel(ctx, name); err != nil {
		return ImportResult{}, err
	}

	res := ImportResult{Hotel: name}
	seen := make(map[int]struct{}, len(p.Rooms))
	for _, r := range p.Rooms {
		if _, dup := seen[r.Number]; dup {
			res.Skipped++
			continue
		}
		room, err := roomFromInput(RoomInput{Number: r.Number, Kind: r.Kind, Cost: r.Cost})
		if err != nil {
			log.Warn().Err(err).Int64("id", id).Int("room", r.Number).Msg("skip invalid room")
			res.Skipped++
			continue
		}
		seen[r.Number] = struct{}{}
		if err := s.store.UpsertRoom(ctx, name, roomRecord(room)); err != nil {
			return res, fmt.Errorf("upsert room %d for %q: %w", r.Number, name, err)
		}
		res.Rooms++
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, availabilityKey(name))
		_ = s.cache.Del(ctx, hotelsKey)
	}
	return res, nil
}
