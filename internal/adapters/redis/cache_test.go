package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	in := domain.AvailabilityView{Hotel: "Pearl Continental", Available: true, Total: 1, Vacant: 1,
		Rooms: []domain.RoomView{{Number: 101}}}
	if err := c.Set(ctx, "availability:Pearl Continental", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("hotel_booking:availability:Pearl Continental") {
		t.Fatalf("expected prefixed key in redis, have %v", mr.Keys())
	}

	var out domain.AvailabilityView
	ok, err := c.Get(ctx, "availability:Pearl Continental", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out.Hotel != in.Hotel || len(out.Rooms) != 1 || out.Rooms[0].Number != 101 {
		t.Fatalf("unexpected round trip: %+v", out)
	}

	if err := c.Del(ctx, "availability:Pearl Continental"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "availability:Pearl Continental", &out); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCache_TTLExpires(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	if err := c.Set(ctx, "hotels", []domain.HotelSummary{{Name: "A"}}, 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)
	var out []domain.HotelSummary
	if ok, _ := c.Get(ctx, "hotels", &out); ok {
		t.Fatalf("expected key to expire")
	}
}

func TestCache_UndecodablePayloadIsMiss(t *testing.T) {
	c, mr := newCache(t)
	if err := mr.Set("hotel_booking:hotels", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var out []domain.HotelSummary
	ok, err := c.Get(context.Background(), "hotels", &out)
	if ok || err != nil {
		t.Fatalf("expected a clean miss, got ok=%v err=%v", ok, err)
	}
}
