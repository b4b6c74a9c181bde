package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/quizmatch/server/internal/domain"
	"github.com/quizmatch/server/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestRepository(t *testing.T, expiry time.Duration) (*RoomRepository, *fakeClock) {
	t.Helper()

	clock := newFakeClock()
	repo := NewRoomRepository(expiry, time.Hour, logging.NewNopLogger())
	repo.now = clock.Now
	t.Cleanup(func() { repo.Close() })

	return repo, clock
}

func TestCreateAssignsUniqueCodes(t *testing.T) {
	repo, _ := newTestRepository(t, 30*time.Minute)
	ctx := context.Background()

	codes := map[string]bool{}
	for i := 0; i < 100; i++ {
		room, err := repo.Create(ctx, "Host", 10)
		require.NoError(t, err)

		assert.Len(t, room.Code, domain.CodeLength)
		assert.False(t, codes[room.Code], "code %s assigned twice", room.Code)
		codes[room.Code] = true
	}
}

func TestCreateSetsExpiryFromCreation(t *testing.T) {
	repo, clock := newTestRepository(t, 30*time.Minute)

	room, err := repo.Create(context.Background(), "Alice", 4)
	require.NoError(t, err)

	assert.Equal(t, clock.Now(), room.CreatedAt)
	assert.Equal(t, clock.Now().Add(30*time.Minute), room.ExpiresAt)
	assert.Equal(t, domain.StatusPending, room.Status)
	assert.Equal(t, []string{"Alice"}, room.Players)
}

func TestJoin(t *testing.T) {
	repo, _ := newTestRepository(t, 30*time.Minute)
	ctx := context.Background()

	room, err := repo.Create(ctx, "Alice", 3)
	require.NoError(t, err)

	joined, err := repo.Join(ctx, room.Code, "Bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, joined.Players)

	_, err = repo.Join(ctx, room.Code, "Bob")
	assert.ErrorIs(t, err, domain.ErrPlayerNameTaken)

	_, err = repo.Join(ctx, "000000", "Carol")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestJoinConcurrentDuplicateNames(t *testing.T) {
	repo, _ := newTestRepository(t, 30*time.Minute)
	ctx := context.Background()

	room, err := repo.Create(ctx, "Host", 50)
	require.NoError(t, err)

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Join(ctx, room.Code, "Bob")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, domain.ErrPlayerNameTaken)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent join may claim the name")
}

func TestJoinConcurrentCapacity(t *testing.T) {
	repo, _ := newTestRepository(t, 30*time.Minute)
	ctx := context.Background()

	room, err := repo.Create(ctx, "Host", 5)
	require.NoError(t, err)

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('A' + i))
			_, errs[i] = repo.Join(ctx, room.Code, "Player-"+name)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, domain.ErrRoomFull)
		}
	}
	assert.Equal(t, 4, wins, "joins past capacity must be rejected")

	final, err := repo.Get(ctx, room.Code)
	require.NoError(t, err)
	assert.Len(t, final.Players, 5)
}

func TestExpiredRoomIsGone(t *testing.T) {
	repo, clock := newTestRepository(t, 30*time.Minute)
	ctx := context.Background()

	room, err := repo.Create(ctx, "Alice", 4)
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)

	_, err = repo.Get(ctx, room.Code)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = repo.Join(ctx, room.Code, "Bob")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = repo.UpdateStatus(ctx, room.Code, domain.StatusReady)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound, "an expired room is absent, not mid-transition")
}

func TestListFiltersExpired(t *testing.T) {
	repo, clock := newTestRepository(t, 30*time.Minute)
	ctx := context.Background()

	old, err := repo.Create(ctx, "Old", 4)
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)

	fresh, err := repo.Create(ctx, "Fresh", 4)
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)

	rooms := repo.List(ctx)
	require.Len(t, rooms, 1)
	assert.Equal(t, fresh.Code, rooms[0].Code)
	assert.NotEqual(t, old.Code, rooms[0].Code)
}

func TestUpdateStatus(t *testing.T) {
	repo, _ := newTestRepository(t, 30*time.Minute)
	ctx := context.Background()

	room, err := repo.Create(ctx, "Alice", 4)
	require.NoError(t, err)

	for _, next := range []domain.Status{domain.StatusReady, domain.StatusPlaying, domain.StatusFinished} {
		updated, err := repo.UpdateStatus(ctx, room.Code, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	_, err = repo.UpdateStatus(ctx, room.Code, domain.StatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSweepExpired(t *testing.T) {
	repo, clock := newTestRepository(t, 30*time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, "Host", 4)
		require.NoError(t, err)
	}

	clock.Advance(20 * time.Minute)

	survivor, err := repo.Create(ctx, "Late", 4)
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)

	assert.Equal(t, 3, repo.SweepExpired())
	assert.Equal(t, 0, repo.SweepExpired(), "a second sweep finds nothing")

	remaining, err := repo.Get(ctx, survivor.Code)
	require.NoError(t, err)
	assert.Equal(t, survivor.Code, remaining.Code)
}

func TestReturnedRoomsAreClones(t *testing.T) {
	repo, _ := newTestRepository(t, 30*time.Minute)
	ctx := context.Background()

	room, err := repo.Create(ctx, "Alice", 4)
	require.NoError(t, err)

	room.Players = append(room.Players, "Intruder")
	room.Status = domain.StatusFinished

	stored, err := repo.Get(ctx, room.Code)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, stored.Players)
	assert.Equal(t, domain.StatusPending, stored.Status)
}
