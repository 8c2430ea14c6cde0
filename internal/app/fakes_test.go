package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"hotel_booking/internal/domain"
)

// ---- fakes ----

type fakeStore struct {
	mu           sync.Mutex
	hotels       []string
	rooms        map[string][]domain.RoomRecord
	reservations []domain.ReservationRecord
	stays        []domain.StayRecord
	misses       map[int64]int
	inventory    []domain.HotelRecord
	failWrites   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{rooms: map[string][]domain.RoomRecord{}, misses: map[int64]int{}}
}

var errStoreDown = errors.New("store down")

func (f *fakeStore) UpsertHotel(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errStoreDown
	}
	f.hotels = append(f.hotels, name)
	return nil
}

func (f *fakeStore) UpsertRoom(ctx context.Context, hotel string, r domain.RoomRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errStoreDown
	}
	f.rooms[hotel] = append(f.rooms[hotel], r)
	return nil
}

func (f *fakeStore) SetOccupant(ctx context.Context, hotel string, room int, name, addr *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errStoreDown
	}
	for i := range f.rooms[hotel] {
		if f.rooms[hotel][i].Number == room {
			f.rooms[hotel][i].GuestName, f.rooms[hotel][i].GuestAddress = name, addr
		}
	}
	return nil
}

func (f *fakeStore) InsertReservation(ctx context.Context, r domain.ReservationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errStoreDown
	}
	f.reservations = append(f.reservations, r)
	return nil
}

func (f *fakeStore) LogStay(ctx context.Context, s domain.StayRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errStoreDown
	}
	f.stays = append(f.stays, s)
	return nil
}

func (f *fakeStore) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.misses[id] = status
	return nil
}

func (f *fakeStore) LoadInventory(ctx context.Context) ([]domain.HotelRecord, error) {
	return f.inventory, nil
}

func (f *fakeStore) LoadReservations(ctx context.Context) ([]domain.ReservationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ReservationRecord(nil), f.reservations...), nil
}

// fakeCache round-trips through JSON like the Redis adapter does.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels++
	return nil
}

// hookCache runs beforeSet once ahead of the first Set and counts Sets.
type hookCache struct {
	*fakeCache
	beforeSet func()
	sets      int
}

func (c *hookCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if f := c.beforeSet; f != nil {
		c.beforeSet = nil
		f()
	}
	c.sets++
	return c.fakeCache.Set(ctx, key, v, ttlSec)
}

type fakeInventory struct {
	hotels map[int64]domain.InventoryHotel
	errs   map[int64]error
}

func (f *fakeInventory) GetHotel(ctx context.Context, id int64) (domain.InventoryHotel, error) {
	if err, ok := f.errs[id]; ok {
		return domain.InventoryHotel{}, err
	}
	h, ok := f.hotels[id]
	if !ok {
		return domain.InventoryHotel{}, domain.ErrNotFound
	}
	return h, nil
}

func ptr[T any](v T) *T { return &v }

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
