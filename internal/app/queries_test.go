package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

func TestAvailability_CacheMissThenHit(t *testing.T) {
	svc, _, cache := newService(t)
	seed(t, svc, "Pearl Continental", 101, 102)
	counting := &hookCache{fakeCache: cache}
	q := app.NewQueryService(svc.Chain(), counting, 10*time.Minute)
	ctx := context.Background()

	// Miss (first time, populates cache)
	v, err := q.Availability(ctx, "Pearl Continental")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !v.Available || v.Total != 2 || v.Vacant != 2 || len(v.Rooms) != 2 || v.Rooms[0].Number != 101 {
		t.Fatalf("unexpected view: %+v", v)
	}

	// Hit (served from cache, no second Set)
	if v2, _ := q.Availability(ctx, "Pearl Continental"); v2.Total != 2 || counting.sets != 1 {
		t.Fatalf("expected cached view, got %+v after %d sets", v2, counting.sets)
	}

	// A change that bypasses the service still outdates the cached copy.
	room, _ := mustRoom(t, svc, "Pearl Continental", 101)
	g, _ := domain.NewGuest("Ali", "")
	_ = room.AssignGuest(&g)
	if v3, _ := q.Availability(ctx, "Pearl Continental"); v3.Occupied != 1 || counting.sets != 2 {
		t.Fatalf("outdated cache entry served: %+v", v3)
	}
}

func TestAvailability_CheckInDuringCacheFill(t *testing.T) {
	svc, _, cache := newService(t)
	seed(t, svc, "PC", 101)
	ctx := context.Background()
	hc := &hookCache{fakeCache: cache}
	// The check-in commits and invalidates after the view is built but
	// before it is written back.
	hc.beforeSet = func() {
		if err := svc.CheckIn(ctx, "PC", 101, "Ali", "Lahore"); err != nil {
			t.Errorf("CheckIn: %v", err)
		}
	}
	q := app.NewQueryService(svc.Chain(), hc, 10*time.Minute)

	if v, _ := q.Availability(ctx, "PC"); !v.Available {
		t.Fatalf("first read built before check-in should be available: %+v", v)
	}
	v, _ := q.Availability(ctx, "PC")
	if v.Available || v.Occupied != 1 {
		t.Fatalf("view written before check-in served afterwards: %+v", v)
	}
}

func TestListHotels_RegisterDuringCacheFill(t *testing.T) {
	svc, _, cache := newService(t)
	seed(t, svc, "A", 1)
	ctx := context.Background()
	hc := &hookCache{fakeCache: cache}
	hc.beforeSet = func() { seed(t, svc, "B", 1) }
	q := app.NewQueryService(svc.Chain(), hc, 10*time.Minute)

	if out, _ := q.ListHotels(ctx); len(out) != 1 {
		t.Fatalf("expected 1 hotel on first read, got %+v", out)
	}
	if out, _ := q.ListHotels(ctx); len(out) != 2 {
		t.Fatalf("hotel list written before registration served afterwards: %+v", out)
	}
}

func TestAvailability_InvalidatedByCommands(t *testing.T) {
	svc, _, cache := newService(t)
	seed(t, svc, "Tiny", 1)
	q := app.NewQueryService(svc.Chain(), cache, 10*time.Minute)
	ctx := context.Background()

	if v, _ := q.Availability(ctx, "Tiny"); !v.Available {
		t.Fatalf("expected available")
	}
	if err := svc.CheckIn(ctx, "Tiny", 1, "Ali", "Lahore"); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	v, _ := q.Availability(ctx, "Tiny")
	if v.Available || v.Occupied != 1 || !v.Rooms[0].Occupied {
		t.Fatalf("stale view after check-in: %+v", v)
	}
	if err := svc.CheckOut(ctx, "Tiny", 1); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if v, _ := q.Availability(ctx, "Tiny"); !v.Available {
		t.Fatalf("stale view after check-out: %+v", v)
	}
}

func TestAvailability_UnknownHotel(t *testing.T) {
	svc, _, _ := newService(t)
	q := app.NewQueryService(svc.Chain(), nil, time.Minute)
	if _, err := q.Availability(context.Background(), "Ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListHotels(t *testing.T) {
	svc, _, cache := newService(t)
	seed(t, svc, "A", 1)
	seed(t, svc, "B")
	q := app.NewQueryService(svc.Chain(), cache, time.Minute)

	out, err := q.ListHotels(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 2 || out[0].Name != "A" || !out[0].Available || out[1].Available {
		t.Fatalf("unexpected hotels: %+v", out)
	}
	// adding a hotel drops the cached list
	seed(t, svc, "C", 1)
	out, _ = q.ListHotels(context.Background())
	if len(out) != 3 {
		t.Fatalf("expected 3 hotels after invalidation, got %d", len(out))
	}
}
