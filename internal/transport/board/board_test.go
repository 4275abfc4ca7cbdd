package board_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alanyang/assignit/internal/adapter/memory"
	domainboard "github.com/alanyang/assignit/internal/domain/board"
	domainmember "github.com/alanyang/assignit/internal/domain/member"
	domainstory "github.com/alanyang/assignit/internal/domain/story"
	"github.com/alanyang/assignit/internal/mocks"
	boardsvc "github.com/alanyang/assignit/internal/service/board"
	transportboard "github.com/alanyang/assignit/internal/transport/board"
)

func init() { gin.SetMode(gin.TestMode) }

// newMemorySvc wires the real service over the in-memory adapters.
func newMemorySvc() *boardsvc.Service {
	store := memory.NewStore()
	return boardsvc.NewService(store.Boards(), store.Members(), store.Stories(), memory.NewEventBus(), memory.NewLocker(), nil)
}

func newRouter(svc *boardsvc.Service) *gin.Engine {
	r := gin.New()
	transportboard.Register(r.Group("/boards"), svc)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// seedBoard creates a board with members A(10) and B(unlimited).
func seedBoard(t *testing.T, r *gin.Engine) (domainboard.Board, domainmember.Member, domainmember.Member) {
	t.Helper()
	w := do(t, r, http.MethodPost, "/boards/", map[string]any{"name": "sprint"})
	require.Equal(t, http.StatusCreated, w.Code)
	b := decode[domainboard.Board](t, w)

	w = do(t, r, http.MethodPost, "/boards/"+b.ID.String()+"/members", map[string]any{"name": "A", "max_points": 10})
	require.Equal(t, http.StatusCreated, w.Code)
	a := decode[domainmember.Member](t, w)

	w = do(t, r, http.MethodPost, "/boards/"+b.ID.String()+"/members", map[string]any{"name": "B"})
	require.Equal(t, http.StatusCreated, w.Code)
	bm := decode[domainmember.Member](t, w)
	return b, a, bm
}

// ── Boards ────────────────────────────────────────────────────────────────────

func TestCreateBoard(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]any
		wantCode int
	}{
		{"success returns 201", map[string]any{"name": "sprint 12"}, http.StatusCreated},
		{"missing name returns 400", map[string]any{}, http.StatusBadRequest},
		{"blank name returns 400", map[string]any{"name": "  "}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(newMemorySvc())
			w := do(t, r, http.MethodPost, "/boards/", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestGetBoard(t *testing.T) {
	r := newRouter(newMemorySvc())
	b, _, _ := seedBoard(t, r)

	w := do(t, r, http.MethodGet, "/boards/"+b.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[domainboard.Snapshot](t, w)
	assert.Len(t, snap.Members, 2)
	assert.Empty(t, snap.Stories)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/boards/nope", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/boards/"+uuid.NewString(), nil).Code)
}

func TestAddMember_Validation(t *testing.T) {
	r := newRouter(newMemorySvc())
	b, _, _ := seedBoard(t, r)
	path := "/boards/" + b.ID.String() + "/members"

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, path, map[string]any{"name": "C", "max_points": 0}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, path, map[string]any{}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/boards/"+uuid.NewString()+"/members", map[string]any{"name": "C"}).Code)
}

// ── Allocation flow ───────────────────────────────────────────────────────────

func TestAllocateAndReassign(t *testing.T) {
	r := newRouter(newMemorySvc())
	b, a, _ := seedBoard(t, r)
	base := "/boards/" + b.ID.String()

	w := do(t, r, http.MethodPut, base+"/stories", []map[string]any{
		{"title": "eight", "points": 8},
		{"title": "three", "points": 3},
		{"title": "five", "points": 5},
	})
	require.Equal(t, http.StatusOK, w.Code)
	stories := decode[[]domainstory.Story](t, w)
	require.Len(t, stories, 3)

	w = do(t, r, http.MethodPost, base+"/allocate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[boardsvc.AllocationResult](t, w)
	assert.Equal(t, 16, res.Summary.AssignedPoints)
	require.NotNil(t, res.Stories[0].AssigneeID)
	assert.Equal(t, a.ID, *res.Stories[0].AssigneeID)

	// Moving "five" (now on B) next to A's eight overflows A by 3.
	w = do(t, r, http.MethodPut, base+"/stories/"+stories[2].ID.String()+"/assignee", map[string]any{"member_id": a.ID})
	require.Equal(t, http.StatusConflict, w.Code)
	conflict := decode[map[string]any](t, w)
	assert.Equal(t, float64(3), conflict["overflow"])
	assert.Equal(t, float64(10), conflict["max_points"])
	assert.Equal(t, "A", conflict["member_name"])
	assert.Contains(t, conflict["error"], "would exceed it by 3 points")

	// Unassign always succeeds.
	w = do(t, r, http.MethodPut, base+"/stories/"+stories[0].ID.String()+"/assignee", map[string]any{"member_id": nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[domainstory.Story](t, w).AssigneeID)

	w = do(t, r, http.MethodPut, base+"/stories/"+stories[2].ID.String()+"/assignee", map[string]any{"member_id": a.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, base+"/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sum := decode[map[string]any](t, w)
	assert.Equal(t, float64(8), sum["unassigned_points"])
}

func TestSetAssignee_NotFound(t *testing.T) {
	r := newRouter(newMemorySvc())
	b, a, _ := seedBoard(t, r)
	base := "/boards/" + b.ID.String()

	w := do(t, r, http.MethodPut, base+"/stories/"+uuid.NewString()+"/assignee", map[string]any{"member_id": a.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPut, base+"/stories/bad/assignee", map[string]any{"member_id": a.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportStories(t *testing.T) {
	r := newRouter(newMemorySvc())
	b, _, _ := seedBoard(t, r)
	path := "/boards/" + b.ID.String() + "/stories/import"

	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, path,
		strings.NewReader("Sprint backlog\nLogin page 3\nCheckout - 8\n"))
	req.Header.Set("Content-Type", "text/plain")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	stories := decode[[]domainstory.Story](t, w)
	require.Len(t, stories, 2)
	assert.Equal(t, "Login page", stories[0].Title)
	assert.Equal(t, 8, stories[1].Points)

	w = do(t, r, http.MethodPost, path, map[string]any{"text": "no numbers here"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportStories_OversizedBodyRejected(t *testing.T) {
	r := newRouter(newMemorySvc())
	b, _, _ := seedBoard(t, r)
	path := "/boards/" + b.ID.String() + "/stories/import"

	// Cutting this body at 1 MiB would leave "Last story 1" as a valid line.
	const limit = 1 << 20
	head, tail := "Pad 3\n", "\nLast story 12"
	filler := strings.Repeat("x", limit+1-len(head)-len(tail))
	text := head + filler + tail

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"plain text", "text/plain", text},
		{"json", "application/json", `{"text":"` + filler + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
		})
	}

	w := do(t, r, http.MethodGet, "/boards/"+b.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[domainboard.Snapshot](t, w)
	assert.Empty(t, snap.Stories)
}

func TestAvailableMembers(t *testing.T) {
	r := newRouter(newMemorySvc())
	b, _, bm := seedBoard(t, r)
	base := "/boards/" + b.ID.String()

	w := do(t, r, http.MethodPut, base+"/stories", []map[string]any{
		{"title": "big", "points": 12},
		{"title": "small", "points": 1},
	})
	require.Equal(t, http.StatusOK, w.Code)
	stories := decode[[]domainstory.Story](t, w)

	w = do(t, r, http.MethodGet, base+"/members/available", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domainmember.Member](t, w), 2)

	// A cannot take 12 points.
	w = do(t, r, http.MethodGet, base+"/members/available?story_id="+stories[0].ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]domainmember.Member](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, bm.ID, got[0].ID)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, base+"/members/available?story_id=x", nil).Code)
}

func TestRemoveMemberAndClear(t *testing.T) {
	r := newRouter(newMemorySvc())
	b, a, _ := seedBoard(t, r)
	base := "/boards/" + b.ID.String()

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, base+"/members/"+a.ID.String(), nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, base+"/members/"+a.ID.String(), nil).Code)

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, base+"/contents", nil).Code)
	snap := decode[domainboard.Snapshot](t, do(t, r, http.MethodGet, base, nil))
	assert.Empty(t, snap.Members)
}

// ── Error mapping ─────────────────────────────────────────────────────────────

func TestAllocate_RepositoryErrorReturns500(t *testing.T) {
	ctrl := gomock.NewController(t)
	boards := mocks.NewMockBoardRepository(ctrl)
	members := mocks.NewMockMemberRepository(ctrl)
	stories := mocks.NewMockStoryRepository(ctrl)
	locker := mocks.NewMockAdvisoryLocker(ctrl)
	svc := boardsvc.NewService(boards, members, stories, mocks.NewMockEventBus(ctrl), locker, nil)

	id := uuid.New()
	locker.EXPECT().WithLock(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ int64, fn func(context.Context) error) error {
			return fn(ctx)
		})
	boards.EXPECT().GetByID(gomock.Any(), id).Return(domainboard.Board{ID: id}, nil)
	members.EXPECT().ListByBoard(gomock.Any(), id).Return(nil, errors.New("connection reset"))

	w := do(t, newRouter(svc), http.MethodPost, "/boards/"+id.String()+"/allocate", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "connection reset")
}
