package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainboard "github.com/alanyang/assignit/internal/domain/board"
	"github.com/alanyang/assignit/internal/domain/event"
	domainmember "github.com/alanyang/assignit/internal/domain/member"
	domainstory "github.com/alanyang/assignit/internal/domain/story"
	"github.com/alanyang/assignit/internal/port"
	portidem "github.com/alanyang/assignit/internal/port/idempotency"
)

func newBoard(t *testing.T, s *Store) domainboard.Board {
	t.Helper()
	b, err := s.Boards().Create(context.Background(), domainboard.New(uuid.New(), "b"))
	require.NoError(t, err)
	return b
}

// ── Store ─────────────────────────────────────────────────────────────────────

func TestStore_BoardNotFound(t *testing.T) {
	s := NewStore()
	_, err := s.Boards().GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestStore_MembersKeepRosterOrder(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	b := newBoard(t, s)

	for _, n := range []string{"Zed", "Ada", "Mo"} {
		_, err := s.Members().Create(ctx, domainmember.New(uuid.New(), b.ID, n, nil))
		require.NoError(t, err)
	}

	got, err := s.Members().ListByBoard(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Zed", got[0].Name)
	assert.Equal(t, "Mo", got[2].Name)
}

func TestStore_MemberCreateUnknownBoard(t *testing.T) {
	s := NewStore()
	_, err := s.Members().Create(context.Background(), domainmember.New(uuid.New(), uuid.New(), "Ada", nil))
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestStore_ListIsACopy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	b := newBoard(t, s)
	m, err := s.Members().Create(ctx, domainmember.New(uuid.New(), b.ID, "Ada", nil))
	require.NoError(t, err)
	st := domainstory.New(uuid.New(), b.ID, domainstory.Draft{Title: "x", Points: 3})
	require.NoError(t, s.Stories().ReplaceAll(ctx, b.ID, []domainstory.Story{st}))

	got, err := s.Stories().ListByBoard(ctx, b.ID)
	require.NoError(t, err)
	got[0].AssigneeID = &m.ID
	got[0].Points = 99

	again, err := s.Stories().ListByBoard(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, again[0].AssigneeID)
	assert.Equal(t, 3, again[0].Points)
}

func TestStore_DeleteMemberClearsAssignments(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	b := newBoard(t, s)
	m, err := s.Members().Create(ctx, domainmember.New(uuid.New(), b.ID, "Ada", nil))
	require.NoError(t, err)
	st := domainstory.New(uuid.New(), b.ID, domainstory.Draft{Title: "x", Points: 3}).WithAssignee(&m.ID)
	require.NoError(t, s.Stories().ReplaceAll(ctx, b.ID, []domainstory.Story{st}))

	require.NoError(t, s.Members().Delete(ctx, b.ID, m.ID))
	assert.ErrorIs(t, s.Members().Delete(ctx, b.ID, m.ID), port.ErrNotFound)

	got, err := s.Stories().ListByBoard(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got[0].AssigneeID)
}

func TestStore_ApplyAssignmentsIsAllOrNothing(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	b := newBoard(t, s)
	m, err := s.Members().Create(ctx, domainmember.New(uuid.New(), b.ID, "Ada", nil))
	require.NoError(t, err)
	st := domainstory.New(uuid.New(), b.ID, domainstory.Draft{Title: "x", Points: 3})
	require.NoError(t, s.Stories().ReplaceAll(ctx, b.ID, []domainstory.Story{st}))

	ghost := domainstory.New(uuid.New(), b.ID, domainstory.Draft{Title: "ghost", Points: 1})
	err = s.Stories().ApplyAssignments(ctx, b.ID, []domainstory.Story{
		st.WithAssignee(&m.ID),
		ghost.WithAssignee(&m.ID),
	})
	require.ErrorIs(t, err, port.ErrNotFound)

	got, err := s.Stories().ListByBoard(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got[0].AssigneeID)

	require.NoError(t, s.Stories().ApplyAssignments(ctx, b.ID, []domainstory.Story{st.WithAssignee(&m.ID)}))
	got, err = s.Stories().ListByBoard(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got[0].AssigneeID)
	assert.Equal(t, m.ID, *got[0].AssigneeID)
}

func TestStore_SetAssigneeUnknownStory(t *testing.T) {
	s := NewStore()
	b := newBoard(t, s)
	err := s.Stories().SetAssignee(context.Background(), b.ID, uuid.New(), nil)
	assert.ErrorIs(t, err, port.ErrNotFound)
}

// ── Locker ────────────────────────────────────────────────────────────────────

func TestLocker_SerialisesSameKey(t *testing.T) {
	l := NewLocker()
	var inside, overlap atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.WithLock(context.Background(), 42, func(context.Context) error {
				if inside.Add(1) > 1 {
					overlap.Add(1)
				}
				time.Sleep(time.Millisecond)
				inside.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Zero(t, overlap.Load())
}

func TestLocker_CancelledWhileWaiting(t *testing.T) {
	l := NewLocker()
	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = l.WithLock(context.Background(), 1, func(context.Context) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := l.WithLock(ctx, 1, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)

	// Other keys are independent.
	assert.NoError(t, l.WithLock(context.Background(), 2, func(context.Context) error { return nil }))
	close(release)
}

// ── EventBus ──────────────────────────────────────────────────────────────────

func TestEventBus_RoutesByChannel(t *testing.T) {
	bus := NewEventBus()
	var got []event.Type
	sub, err := bus.Subscribe(context.Background(), event.ChannelStory, func(_ context.Context, e event.Event) {
		got = append(got, e.Type)
	})
	require.NoError(t, err)

	id := uuid.New()
	require.NoError(t, bus.Publish(context.Background(), event.New(event.TypeStoryAssigned, id, id)))
	require.NoError(t, bus.Publish(context.Background(), event.New(event.TypeMemberAdded, id, id)))
	assert.Equal(t, []event.Type{event.TypeStoryAssigned}, got)

	sub.Unsubscribe()
	sub.Unsubscribe()
	require.NoError(t, bus.Publish(context.Background(), event.New(event.TypeStoryAssigned, id, id)))
	assert.Len(t, got, 1)
}

func TestEventBus_ContextCancelRemovesSubscriber(t *testing.T) {
	bus := NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := bus.Subscribe(ctx, event.ChannelBoard, func(context.Context, event.Event) { calls++ })
	require.NoError(t, err)

	cancel()
	id := uuid.New()
	require.NoError(t, bus.Publish(context.Background(), event.New(event.TypeBoardCleared, id, id)))
	assert.Zero(t, calls)
}

// ── Idempotency ───────────────────────────────────────────────────────────────

func TestIdempotencyStore_FirstResponseWinsUntilExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewCache()
	cache.now = func() time.Time { return now }
	store := NewIdempotencyStore(cache, time.Minute)
	ctx := context.Background()

	_, found, err := store.Check(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Save(ctx, "k", "op", portidem.Response{Status: 201, Body: []byte(`{"a":1}`)}))
	require.NoError(t, store.Save(ctx, "k", "op", portidem.Response{Status: 500}))

	resp, found, err := store.Check(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 201, resp.Status)
	assert.Equal(t, `{"a":1}`, string(resp.Body))

	now = now.Add(2 * time.Minute)
	n, err := store.Purge(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, found, err = store.Check(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}
