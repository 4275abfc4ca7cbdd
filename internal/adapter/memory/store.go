// Package memory holds in-process implementations of the storage, locking,
// event and idempotency ports. State lives for the life of the process.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	domainboard "github.com/alanyang/assignit/internal/domain/board"
	domainmember "github.com/alanyang/assignit/internal/domain/member"
	domainstory "github.com/alanyang/assignit/internal/domain/story"
	"github.com/alanyang/assignit/internal/port"
	portboard "github.com/alanyang/assignit/internal/port/board"
	portmember "github.com/alanyang/assignit/internal/port/member"
	portstory "github.com/alanyang/assignit/internal/port/story"
)

var (
	_ portboard.Repository  = (*BoardRepository)(nil)
	_ portmember.Repository = (*MemberRepository)(nil)
	_ portstory.Repository  = (*StoryRepository)(nil)
)

// Store holds every board, roster and story list behind one mutex.
// Slices are copied on the way in and out so callers never share backing arrays.
type Store struct {
	mu      sync.RWMutex
	boards  map[uuid.UUID]domainboard.Board
	members map[uuid.UUID][]domainmember.Member
	stories map[uuid.UUID][]domainstory.Story
}

func NewStore() *Store {
	return &Store{
		boards:  make(map[uuid.UUID]domainboard.Board),
		members: make(map[uuid.UUID][]domainmember.Member),
		stories: make(map[uuid.UUID][]domainstory.Story),
	}
}

func (s *Store) Boards() *BoardRepository   { return &BoardRepository{s} }
func (s *Store) Members() *MemberRepository { return &MemberRepository{s} }
func (s *Store) Stories() *StoryRepository  { return &StoryRepository{s} }

// ── Boards ────────────────────────────────────────────────────────────────────

type BoardRepository struct{ s *Store }

func (r *BoardRepository) Create(_ context.Context, b domainboard.Board) (domainboard.Board, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.boards[b.ID]; ok {
		return domainboard.Board{}, fmt.Errorf("inserting board: duplicate id %s", b.ID)
	}
	r.s.boards[b.ID] = b
	return b, nil
}

func (r *BoardRepository) GetByID(_ context.Context, id uuid.UUID) (domainboard.Board, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.boards[id]
	if !ok {
		return domainboard.Board{}, fmt.Errorf("board %s: %w", id, port.ErrNotFound)
	}
	return b, nil
}

// ── Members ───────────────────────────────────────────────────────────────────

type MemberRepository struct{ s *Store }

func (r *MemberRepository) Create(_ context.Context, m domainmember.Member) (domainmember.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.boards[m.BoardID]; !ok {
		return domainmember.Member{}, fmt.Errorf("inserting member: board %s: %w", m.BoardID, port.ErrNotFound)
	}
	if m.MaxPoints != nil {
		v := *m.MaxPoints
		m.MaxPoints = &v
	}
	r.s.members[m.BoardID] = append(r.s.members[m.BoardID], m)
	return m, nil
}

func (r *MemberRepository) ListByBoard(_ context.Context, boardID uuid.UUID) ([]domainmember.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	src := r.s.members[boardID]
	out := make([]domainmember.Member, len(src))
	copy(out, src)
	return out, nil
}

func (r *MemberRepository) Delete(_ context.Context, boardID, memberID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.s.members[boardID]
	for i, m := range list {
		if m.ID == memberID {
			r.s.members[boardID] = append(list[:i:i], list[i+1:]...)
			r.s.clearAssignee(boardID, memberID)
			return nil
		}
	}
	return fmt.Errorf("member %s: %w", memberID, port.ErrNotFound)
}

func (r *MemberRepository) DeleteByBoard(_ context.Context, boardID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.members[boardID] {
		r.s.clearAssignee(boardID, m.ID)
	}
	delete(r.s.members, boardID)
	return nil
}

// ── Stories ───────────────────────────────────────────────────────────────────

type StoryRepository struct{ s *Store }

func (r *StoryRepository) ReplaceAll(_ context.Context, boardID uuid.UUID, stories []domainstory.Story) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.boards[boardID]; !ok {
		return fmt.Errorf("replacing stories: board %s: %w", boardID, port.ErrNotFound)
	}
	list := make([]domainstory.Story, len(stories))
	for i, st := range stories {
		st.BoardID = boardID
		list[i] = st.WithAssignee(st.AssigneeID)
	}
	r.s.stories[boardID] = list
	return nil
}

func (r *StoryRepository) ListByBoard(_ context.Context, boardID uuid.UUID) ([]domainstory.Story, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	src := r.s.stories[boardID]
	out := make([]domainstory.Story, len(src))
	for i, st := range src {
		out[i] = st.WithAssignee(st.AssigneeID)
	}
	return out, nil
}

func (r *StoryRepository) SetAssignee(_ context.Context, boardID, storyID uuid.UUID, memberID *uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.s.stories[boardID]
	for i := range list {
		if list[i].ID == storyID {
			list[i] = list[i].WithAssignee(memberID)
			return nil
		}
	}
	return fmt.Errorf("story %s: %w", storyID, port.ErrNotFound)
}

// ApplyAssignments validates every id before writing any of them.
func (r *StoryRepository) ApplyAssignments(_ context.Context, boardID uuid.UUID, stories []domainstory.Story) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.s.stories[boardID]
	index := make(map[uuid.UUID]int, len(list))
	for i, st := range list {
		index[st.ID] = i
	}
	for _, st := range stories {
		if _, ok := index[st.ID]; !ok {
			return fmt.Errorf("applying assignments: story %s: %w", st.ID, port.ErrNotFound)
		}
	}
	for _, st := range stories {
		i := index[st.ID]
		list[i] = list[i].WithAssignee(st.AssigneeID)
	}
	return nil
}

func (r *StoryRepository) UnassignByMember(_ context.Context, boardID, memberID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clearAssignee(boardID, memberID)
	return nil
}

func (r *StoryRepository) DeleteByBoard(_ context.Context, boardID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.stories, boardID)
	return nil
}

// clearAssignee mirrors ON DELETE SET NULL. Callers hold s.mu.
func (s *Store) clearAssignee(boardID, memberID uuid.UUID) {
	list := s.stories[boardID]
	for i := range list {
		if list[i].IsAssignedTo(memberID) {
			list[i] = list[i].WithAssignee(nil)
		}
	}
}
