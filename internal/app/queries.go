package app

import (
	"context"
	"fmt"
	"time"

	"hotel_booking/internal/domain"
)

const hotelsKey = "hotels"

func availabilityKey(hotel string) string { return fmt.Sprintf("availability:%s", hotel) }

// Cached read models carry the engine version they were built from. A copy
// whose version no longer matches is a miss, so a Set racing a command can
// never serve an outdated view.
type cachedAvailability struct {
	Version uint64                  `json:"version"`
	View    domain.AvailabilityView `json:"view"`
}

type cachedHotels struct {
	Version uint64                `json:"version"`
	Hotels  []domain.HotelSummary `json:"hotels"`
}

type QueryService struct {
	chain    *domain.HotelChain
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(chain *domain.HotelChain, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{chain: chain, cache: c, cacheTTL: ttl}
}

func (s *QueryService) Availability(ctx context.Context, hotel string) (domain.AvailabilityView, error) {
	h, ok := s.chain.Hotel(hotel)
	if !ok {
		return domain.AvailabilityView{}, fmt.Errorf("hotel %q: %w", hotel, domain.ErrNotFound)
	}
	key, ver := availabilityKey(hotel), h.Version()
	if s.cache != nil {
		var c cachedAvailability
		if ok, _ := s.cache.Get(ctx, key, &c); ok && c.Version == ver {
			return c.View, nil
		}
	}
	v := availabilityView(h)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, cachedAvailability{Version: ver, View: v}, int(s.cacheTTL.Seconds()))
	}
	return v, nil
}

func (s *QueryService) ListHotels(ctx context.Context) ([]domain.HotelSummary, error) {
	ver := s.chain.Version()
	if s.cache != nil {
		var c cachedHotels
		if ok, _ := s.cache.Get(ctx, hotelsKey, &c); ok && c.Version == ver {
			return c.Hotels, nil
		}
	}
	hotels := s.chain.Hotels()
	out := make([]domain.HotelSummary, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, domain.HotelSummary{Name: h.Name(), Rooms: len(h.Rooms()), Available: h.Available()})
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, hotelsKey, cachedHotels{Version: ver, Hotels: out}, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}
