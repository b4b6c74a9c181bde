package repository

import (
	"context"
	"sync"
	"time"

	"github.com/quizmatch/server/internal/domain"
	"github.com/quizmatch/server/internal/infrastructure/logging"
	"github.com/quizmatch/server/internal/infrastructure/metrics"
)

// RoomRepository is the in-memory room registry. One RWMutex guards the map
// and every room's mutable fields, so each operation is a single atomic unit
// of work. Rooms handed out are clones; nothing outside this type ever holds
// a reference into the map.
//
// Expiry is lazy on every read plus an eager background sweep: a room whose
// deadline has passed is reported as absent even before the sweeper removes it.
type RoomRepository struct {
	mu     sync.RWMutex
	rooms  map[string]*domain.Room
	expiry time.Duration
	logger logging.Logger

	// now is swappable so tests can drive expiry deterministically.
	now func() time.Time

	stopSweep chan struct{}
	sweepOnce sync.Once
}

func NewRoomRepository(expiry, sweepInterval time.Duration, logger logging.Logger) *RoomRepository {
	r := &RoomRepository{
		rooms:     make(map[string]*domain.Room),
		expiry:    expiry,
		logger:    logger,
		now:       time.Now,
		stopSweep: make(chan struct{}),
	}

	go r.sweepLoop(sweepInterval)

	return r
}

// Create generates a fresh unique code and inserts a pending room seeded with
// the host. Code generation runs under the write lock so concurrent creates
// can never pick the same code.
func (r *RoomRepository) Create(ctx context.Context, hostName string, maxPlayers int) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, err := domain.GenerateCode(func(code string) bool {
		_, taken := r.rooms[code]
		return taken
	})
	if err != nil {
		return nil, err
	}

	room := domain.NewRoom(code, hostName, maxPlayers, r.now(), r.expiry)
	r.rooms[code] = room

	metrics.RoomsActive.Set(float64(r.liveCount()))

	return room.Clone(), nil
}

// Join appends a player atomically. The duplicate-name and capacity checks are
// indivisible from the append, so two racing joins can never both claim the
// same name or jointly overshoot MaxPlayers.
func (r *RoomRepository) Join(ctx context.Context, code, playerName string) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok || room.Expired(r.now()) {
		return nil, domain.ErrRoomNotFound
	}

	if err := room.AddPlayer(playerName); err != nil {
		return nil, err
	}

	return room.Clone(), nil
}

func (r *RoomRepository) Get(ctx context.Context, code string) (*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[code]
	if !ok || room.Expired(r.now()) {
		return nil, domain.ErrRoomNotFound
	}

	return room.Clone(), nil
}

// List returns every live room. Rooms past their deadline are filtered out
// even when the sweeper has not caught up yet.
func (r *RoomRepository) List(ctx context.Context) []*domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now()
	rooms := make([]*domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		if room.Expired(now) {
			continue
		}
		rooms = append(rooms, room.Clone())
	}

	return rooms
}

// UpdateStatus applies one forward edge of the status state machine. An
// expired room is reported as not found, never as an invalid transition.
func (r *RoomRepository) UpdateStatus(ctx context.Context, code string, next domain.Status) (*domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok || room.Expired(r.now()) {
		return nil, domain.ErrRoomNotFound
	}

	if err := room.Transition(next); err != nil {
		return nil, err
	}

	return room.Clone(), nil
}

// SweepExpired removes every room past its deadline. Idempotent and safe to
// run concurrently with any other operation.
func (r *RoomRepository) SweepExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for code, room := range r.rooms {
		if room.Expired(now) {
			delete(r.rooms, code)
			removed++
		}
	}

	metrics.RoomsActive.Set(float64(len(r.rooms)))

	return removed
}

func (r *RoomRepository) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := r.SweepExpired(); removed > 0 {
				metrics.RoomsSwept.Add(float64(removed))
				r.logger.Info(logging.RoomStore, logging.Sweep, "removed expired rooms", map[logging.ExtraKey]any{
					"removed": removed,
				})
			}
		case <-r.stopSweep:
			return
		}
	}
}

func (r *RoomRepository) Close() error {
	r.sweepOnce.Do(func() {
		close(r.stopSweep)
	})
	return nil
}

// liveCount counts non-expired rooms; the caller must hold the lock.
func (r *RoomRepository) liveCount() int {
	now := r.now()
	count := 0
	for _, room := range r.rooms {
		if !room.Expired(now) {
			count++
		}
	}
	return count
}
