package board

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"

	"github.com/google/uuid"

	"github.com/alanyang/assignit/internal/domain/allocation"
	domainboard "github.com/alanyang/assignit/internal/domain/board"
	"github.com/alanyang/assignit/internal/domain/event"
	"github.com/alanyang/assignit/internal/domain/ingest"
	domainmember "github.com/alanyang/assignit/internal/domain/member"
	domainstory "github.com/alanyang/assignit/internal/domain/story"
	"github.com/alanyang/assignit/internal/port"
	portboard "github.com/alanyang/assignit/internal/port/board"
	portbus "github.com/alanyang/assignit/internal/port/eventbus"
	portlocker "github.com/alanyang/assignit/internal/port/locker"
	portmember "github.com/alanyang/assignit/internal/port/member"
	portstory "github.com/alanyang/assignit/internal/port/story"
)

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrInvalidBoard  = errors.New("invalid board")
	ErrInvalidMember = errors.New("invalid member")
	ErrInvalidStory  = errors.New("invalid story")
	ErrNoStories     = errors.New("no stories found")
)

// IDSource mints identifiers for new boards, members and stories.
type IDSource func() uuid.UUID

// AllocationResult is the board after a bulk allocation.
type AllocationResult struct {
	Stories []domainstory.Story `json:"stories"`
	Summary allocation.Summary  `json:"summary"`
}

// Service owns board state: it loads snapshots, runs the allocation engine over
// them and writes the outcome back. Every write to a board runs under that
// board's advisory lock.
// [DIP] Depends on ports, never on adapters or transport.
type Service struct {
	boards  portboard.Repository
	members portmember.Repository
	stories portstory.Repository
	bus     portbus.EventBus
	locker  portlocker.AdvisoryLocker
	newID   IDSource
}

func NewService(
	boards portboard.Repository,
	members portmember.Repository,
	stories portstory.Repository,
	bus portbus.EventBus,
	locker portlocker.AdvisoryLocker,
	newID IDSource,
) *Service {
	if newID == nil {
		newID = uuid.New
	}
	return &Service{
		boards:  boards,
		members: members,
		stories: stories,
		bus:     bus,
		locker:  locker,
		newID:   newID,
	}
}

func (s *Service) CreateBoard(ctx context.Context, name string) (domainboard.Board, error) {
	b := domainboard.New(s.newID(), name)
	if b.Name == "" {
		return domainboard.Board{}, fmt.Errorf("%w: name is required", ErrInvalidBoard)
	}

	created, err := s.boards.Create(ctx, b)
	if err != nil {
		return domainboard.Board{}, fmt.Errorf("create board: %w", err)
	}
	s.publish(ctx, event.TypeBoardCreated, created.ID, created.ID)
	return created, nil
}

// Snapshot reads the board with its roster and stories. It takes no lock.
func (s *Service) Snapshot(ctx context.Context, boardID uuid.UUID) (domainboard.Snapshot, error) {
	b, err := s.getBoard(ctx, boardID)
	if err != nil {
		return domainboard.Snapshot{}, err
	}
	members, stories, err := s.load(ctx, boardID)
	if err != nil {
		return domainboard.Snapshot{}, err
	}
	return domainboard.Snapshot{Board: b, Members: members, Stories: stories}, nil
}

func (s *Service) Summary(ctx context.Context, boardID uuid.UUID) (allocation.Summary, error) {
	snap, err := s.Snapshot(ctx, boardID)
	if err != nil {
		return allocation.Summary{}, err
	}
	return allocation.Summarize(snap.Stories, snap.Members), nil
}

func (s *Service) AddMember(ctx context.Context, boardID uuid.UUID, name string, maxPoints *int) (domainmember.Member, error) {
	m := domainmember.New(s.newID(), boardID, name, maxPoints)
	if !m.Valid() {
		return domainmember.Member{}, fmt.Errorf("%w: name is required and max_points must be positive", ErrInvalidMember)
	}

	var created domainmember.Member
	err := s.withBoardLock(ctx, boardID, func(ctx context.Context) error {
		if _, err := s.getBoard(ctx, boardID); err != nil {
			return err
		}
		var err error
		created, err = s.members.Create(ctx, m)
		if err != nil {
			return fmt.Errorf("add member: %w", err)
		}
		return nil
	})
	if err != nil {
		return domainmember.Member{}, err
	}

	s.publish(ctx, event.TypeMemberAdded, boardID, created.ID)
	return created, nil
}

// RemoveMember drops a member from the roster. Its stories become unassigned
// first so no story is left pointing at a missing member.
func (s *Service) RemoveMember(ctx context.Context, boardID, memberID uuid.UUID) error {
	err := s.withBoardLock(ctx, boardID, func(ctx context.Context) error {
		if _, err := s.getBoard(ctx, boardID); err != nil {
			return err
		}
		members, err := s.members.ListByBoard(ctx, boardID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		if !containsMember(members, memberID) {
			return allocation.ErrMemberNotFound
		}
		if err := s.stories.UnassignByMember(ctx, boardID, memberID); err != nil {
			return fmt.Errorf("unassign member stories: %w", err)
		}
		if err := s.members.Delete(ctx, boardID, memberID); err != nil {
			if errors.Is(err, port.ErrNotFound) {
				return allocation.ErrMemberNotFound
			}
			return fmt.Errorf("remove member: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, event.TypeMemberRemoved, boardID, memberID)
	return nil
}

// SetStories replaces every story on the board with fresh, unassigned ones.
func (s *Service) SetStories(ctx context.Context, boardID uuid.UUID, drafts []domainstory.Draft) ([]domainstory.Story, error) {
	for i, d := range drafts {
		if !d.Valid() {
			return nil, fmt.Errorf("%w: story %d needs a title and positive points", ErrInvalidStory, i)
		}
	}

	stories := make([]domainstory.Story, len(drafts))
	for i, d := range drafts {
		stories[i] = domainstory.New(s.newID(), boardID, d)
	}

	err := s.withBoardLock(ctx, boardID, func(ctx context.Context) error {
		if _, err := s.getBoard(ctx, boardID); err != nil {
			return err
		}
		if err := s.stories.ReplaceAll(ctx, boardID, stories); err != nil {
			return fmt.Errorf("replace stories: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.TypeStoriesReplaced, boardID, boardID)
	return stories, nil
}

// ImportText parses "title points" lines and replaces the board's stories with them.
func (s *Service) ImportText(ctx context.Context, boardID uuid.UUID, text string) ([]domainstory.Story, error) {
	drafts := ingest.ParseText(text)
	if len(drafts) == 0 {
		return nil, ErrNoStories
	}
	return s.SetStories(ctx, boardID, drafts)
}

// Allocate runs the bulk allocator over the whole board and persists the result.
// A board without members is returned untouched.
func (s *Service) Allocate(ctx context.Context, boardID uuid.UUID) (AllocationResult, error) {
	var result AllocationResult
	var changed bool

	err := s.withBoardLock(ctx, boardID, func(ctx context.Context) error {
		if _, err := s.getBoard(ctx, boardID); err != nil {
			return err
		}
		members, stories, err := s.load(ctx, boardID)
		if err != nil {
			return err
		}

		out := allocation.Allocate(stories, members)
		result = AllocationResult{Stories: out, Summary: allocation.Summarize(out, members)}
		if len(members) == 0 {
			return nil
		}

		if err := s.stories.ApplyAssignments(ctx, boardID, out); err != nil {
			return fmt.Errorf("apply assignments: %w", err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return AllocationResult{}, err
	}

	if changed {
		slog.InfoContext(ctx, "board allocated",
			"board_id", boardID,
			"stories", len(result.Stories),
			"assigned_points", result.Summary.AssignedPoints,
			"unassigned_points", result.Summary.UnassignedPoints,
		)
		s.publish(ctx, event.TypeStoriesAllocated, boardID, boardID)
	}
	return result, nil
}

// Reassign moves a story to target, or unassigns it when target is nil.
// A move that would overflow the target returns *allocation.CapacityExceededError
// and writes nothing.
func (s *Service) Reassign(ctx context.Context, boardID, storyID uuid.UUID, target *uuid.UUID) (domainstory.Story, error) {
	var updated domainstory.Story
	var changed bool

	err := s.withBoardLock(ctx, boardID, func(ctx context.Context) error {
		if _, err := s.getBoard(ctx, boardID); err != nil {
			return err
		}
		members, stories, err := s.load(ctx, boardID)
		if err != nil {
			return err
		}

		out, err := allocation.TryReassign(stories, members, storyID, target)
		if err != nil {
			return err
		}

		before, _ := findStory(stories, storyID)
		updated, _ = findStory(out, storyID)
		if sameAssignee(before.AssigneeID, updated.AssigneeID) {
			return nil
		}
		if err := s.stories.SetAssignee(ctx, boardID, storyID, updated.AssigneeID); err != nil {
			if errors.Is(err, port.ErrNotFound) {
				return allocation.ErrStoryNotFound
			}
			return fmt.Errorf("set assignee: %w", err)
		}
		changed = true
		return nil
	})
	if err != nil {
		var capErr *allocation.CapacityExceededError
		if errors.As(err, &capErr) {
			slog.InfoContext(ctx, "reassign rejected",
				"board_id", boardID, "story_id", storyID,
				"member_id", capErr.MemberID, "overflow", capErr.Overflow)
		}
		return domainstory.Story{}, err
	}

	if changed {
		if updated.AssigneeID == nil {
			s.publish(ctx, event.TypeStoryUnassigned, boardID, storyID)
		} else {
			s.publish(ctx, event.TypeStoryAssigned, boardID, storyID)
		}
	}
	return updated, nil
}

// Candidates returns the quick-pick shortlist: members with nothing assigned.
// With a story id the list is narrowed to members that could take that story.
func (s *Service) Candidates(ctx context.Context, boardID uuid.UUID, storyID *uuid.UUID) ([]domainmember.Member, error) {
	snap, err := s.Snapshot(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if storyID == nil {
		return allocation.AvailableMembers(snap.Stories, snap.Members), nil
	}
	return allocation.Candidates(snap.Stories, snap.Members, *storyID)
}

// Clear removes every story and member from the board. The board itself stays.
func (s *Service) Clear(ctx context.Context, boardID uuid.UUID) error {
	err := s.withBoardLock(ctx, boardID, func(ctx context.Context) error {
		if _, err := s.getBoard(ctx, boardID); err != nil {
			return err
		}
		if err := s.stories.DeleteByBoard(ctx, boardID); err != nil {
			return fmt.Errorf("delete stories: %w", err)
		}
		if err := s.members.DeleteByBoard(ctx, boardID); err != nil {
			return fmt.Errorf("delete members: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, event.TypeBoardCleared, boardID, boardID)
	return nil
}

func (s *Service) getBoard(ctx context.Context, boardID uuid.UUID) (domainboard.Board, error) {
	b, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return domainboard.Board{}, ErrBoardNotFound
		}
		return domainboard.Board{}, fmt.Errorf("get board: %w", err)
	}
	return b, nil
}

func (s *Service) load(ctx context.Context, boardID uuid.UUID) ([]domainmember.Member, []domainstory.Story, error) {
	members, err := s.members.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, nil, fmt.Errorf("list members: %w", err)
	}
	stories, err := s.stories.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, nil, fmt.Errorf("list stories: %w", err)
	}
	if members == nil {
		members = []domainmember.Member{}
	}
	if stories == nil {
		stories = []domainstory.Story{}
	}
	return members, stories, nil
}

func (s *Service) withBoardLock(ctx context.Context, boardID uuid.UUID, fn func(ctx context.Context) error) error {
	return s.locker.WithLock(ctx, advisoryKey(boardID), fn)
}

func (s *Service) publish(ctx context.Context, t event.Type, boardID, entityID uuid.UUID) {
	if err := s.bus.Publish(ctx, event.New(t, boardID, entityID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish event", "type", t, "board_id", boardID, "error", err)
	}
}

// advisoryKey hashes a board id to a stable int64 for pg_advisory_lock.
func advisoryKey(boardID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(boardID[:])
	return int64(h.Sum64())
}

func findStory(stories []domainstory.Story, id uuid.UUID) (domainstory.Story, bool) {
	for _, s := range stories {
		if s.ID == id {
			return s, true
		}
	}
	return domainstory.Story{}, false
}

func containsMember(members []domainmember.Member, id uuid.UUID) bool {
	for _, m := range members {
		if m.ID == id {
			return true
		}
	}
	return false
}

func sameAssignee(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
