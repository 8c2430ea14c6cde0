package domain_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"hotel_booking/internal/domain"
)

func mustGuest(t *testing.T, name, addr string) domain.Guest {
	t.Helper()
	g, err := domain.NewGuest(name, addr)
	if err != nil {
		t.Fatalf("NewGuest: %v", err)
	}
	return g
}

func TestRoom_OccupiedAfterGuestAssigned(t *testing.T) {
	room := domain.NewRoom(1)
	if room.IsOccupied() {
		t.Fatalf("fresh room should be vacant")
	}
	g := mustGuest(t, "Test", "Address")
	if err := room.AssignGuest(&g); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if !room.IsOccupied() {
		t.Fatalf("room should be occupied")
	}
	if cur, ok := room.Guest(); !ok || cur.Name() != "Test" {
		t.Fatalf("unexpected occupant %+v", cur)
	}
	if err := room.AssignGuest(nil); err != nil {
		t.Fatalf("release: %v", err)
	}
	if room.IsOccupied() {
		t.Fatalf("room should be vacant after release")
	}
	// releasing a vacant room is a no-op
	if err := room.AssignGuest(nil); err != nil {
		t.Fatalf("second release: %v", err)
	}
}

func TestRoom_ReassignRejected(t *testing.T) {
	room := domain.NewRoom(2)
	a, b := mustGuest(t, "A", ""), mustGuest(t, "B", "")
	if err := room.AssignGuest(&a); err != nil {
		t.Fatalf("assign a: %v", err)
	}
	err := room.AssignGuest(&b)
	if !errors.Is(err, domain.ErrRoomOccupied) || !errors.Is(err, domain.ErrIllegalState) {
		t.Fatalf("expected ErrRoomOccupied, got %v", err)
	}
	if cur, _ := room.Guest(); cur.Name() != "A" {
		t.Fatalf("occupant overwritten: %s", cur.Name())
	}
}

func TestRoom_ConcurrentCheckInHasOneWinner(t *testing.T) {
	room := domain.NewRoom(3)
	const n = 64
	var wins, losses int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, _ := domain.NewGuest("guest", "")
			<-start
			if err := room.AssignGuest(&g); err != nil {
				atomic.AddInt32(&losses, 1)
				return
			}
			atomic.AddInt32(&wins, 1)
		}()
	}
	close(start)
	wg.Wait()
	if wins != 1 || losses != n-1 {
		t.Fatalf("expected exactly one winner, got wins=%d losses=%d", wins, losses)
	}
}

func TestRoom_Category(t *testing.T) {
	if _, ok := domain.NewRoom(4).Category(); ok {
		t.Fatalf("expected no category")
	}
	cost, _ := domain.NewMonetaryAmount(80)
	cat, _ := domain.NewRoomCategory(domain.RoomDouble, cost)
	r := domain.NewRoom(5, domain.WithCategory(cat))
	if c, ok := r.Category(); !ok || c.Kind() != domain.RoomDouble {
		t.Fatalf("unexpected category %+v", c)
	}
}

func TestRoom_ConcurrentReleaseReportsOnce(t *testing.T) {
	room := domain.NewRoom(7)
	ali := mustGuest(t, "Ali", "")
	if err := room.AssignGuest(&ali); err != nil {
		t.Fatalf("assign: %v", err)
	}

	var got int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g, ok := room.Release(); ok && g.Name() == "Ali" {
				atomic.AddInt32(&got, 1)
			}
		}()
	}
	wg.Wait()
	if got != 1 || room.IsOccupied() {
		t.Fatalf("expected exactly one release report, got %d", got)
	}
}
