package board

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alanyang/assignit/internal/domain/allocation"
	domainmember "github.com/alanyang/assignit/internal/domain/member"
	domainstory "github.com/alanyang/assignit/internal/domain/story"
	boardsvc "github.com/alanyang/assignit/internal/service/board"
)

// maxImportBytes caps the import body in either format.
const maxImportBytes = 1 << 20

func Register(rg *gin.RouterGroup, svc *boardsvc.Service) {
	rg.POST("/", createBoard(svc))
	rg.GET("/:id", getBoard(svc))
	rg.GET("/:id/summary", getSummary(svc))
	rg.DELETE("/:id/contents", clearBoard(svc))

	rg.POST("/:id/members", addMember(svc))
	rg.DELETE("/:id/members/:memberId", removeMember(svc))
	rg.GET("/:id/members/available", availableMembers(svc))

	rg.PUT("/:id/stories", setStories(svc))
	rg.POST("/:id/stories/import", importStories(svc))
	rg.POST("/:id/allocate", allocate(svc))
	rg.PUT("/:id/stories/:storyId/assignee", setAssignee(svc))
}

// writeError maps service and engine errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	var capErr *allocation.CapacityExceededError
	switch {
	case errors.As(err, &capErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":       capErr.Error(),
			"member_id":   capErr.MemberID,
			"member_name": capErr.MemberName,
			"max_points":  capErr.MaxPoints,
			"load":        capErr.Load,
			"overflow":    capErr.Overflow,
		})
	case errors.Is(err, boardsvc.ErrBoardNotFound),
		errors.Is(err, allocation.ErrStoryNotFound),
		errors.Is(err, allocation.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, boardsvc.ErrInvalidBoard),
		errors.Is(err, boardsvc.ErrInvalidMember),
		errors.Is(err, boardsvc.ErrInvalidStory),
		errors.Is(err, boardsvc.ErrNoStories):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

// ── Boards ────────────────────────────────────────────────────────────────────

type createBoardReq struct {
	Name string `json:"name" binding:"required"`
}

func createBoard(svc *boardsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createBoardReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		b, err := svc.CreateBoard(c.Request.Context(), req.Name)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, b)
	}
}

func getBoard(svc *boardsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		snap, err := svc.Snapshot(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

func getSummary(svc *boardsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		sum, err := svc.Summary(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, sum)
	}
}

func clearBoard(svc *boardsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		if err := svc.Clear(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ── Members ───────────────────────────────────────────────────────────────────

type addMemberReq struct {
	Name      string `json:"name" binding:"required"`
	MaxPoints *int   `json:"max_points"`
}

func addMember(svc *boardsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		var req addMemberReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		m, err := svc.AddMember(c.Request.Context(), id, req.Name, req.MaxPoints)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

func removeMember(svc *boardsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		memberID, ok := parseID(c, "memberId")
		if !ok {
			return
		}

		if err := svc.RemoveMember(c.Request.Context(), id, memberID); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func availableMembers(svc *boardsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		var storyID *uuid.UUID
		if v := c.Query("story_id"); v != "" {
			sid, err := uuid.Parse(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story_id"})
				return
			}
			storyID = &sid
		}

		members, err := svc.Candidates(c.Request.Context(), id, storyID)
		if err != nil {
			writeError(c, err)
			return
		}
		if members == nil {
			members = []domainmember.Member{}
		}
		c.JSON(http.StatusOK, members)
	}
}

// ── Stories ───────────────────────────────────────────────────────────────────

type storyReq struct {
	Title  string `json:"title" binding:"required"`
	Points int    `json:"points" binding:"required"`
}

func setStories(svc *boardsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		var req []storyReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		drafts := make([]domainstory.Draft, len(req))
		for i, r := range req {
			drafts[i] = domainstory.Draft{Title: r.Title, Points: r.Points}
		}

		stories, err := svc.SetStories(c.Request.Context(), id, drafts)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, stories)
	}
}

type importReq struct {
	Text string `json:"text" binding:"required"`
}

// importStories accepts either a raw text body or {"text": "..."}.
func importStories(svc *boardsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

		var text string
		if strings.HasPrefix(c.ContentType(), "application/json") {
			var req importReq
			if err := c.ShouldBindJSON(&req); err != nil {
				writeBodyError(c, err)
				return
			}
			text = req.Text
		} else {
			raw, err := io.ReadAll(c.Request.Body)
			if err != nil {
				writeBodyError(c, err)
				return
			}
			text = string(raw)
		}

		stories, err := svc.ImportText(c.Request.Context(), id, text)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, stories)
	}
}

// writeBodyError reports an oversized body as 413 and anything else as 400.
func writeBodyError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func allocate(svc *boardsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		res, err := svc.Allocate(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// assigneeReq with a null or absent member_id unassigns the story.
type assigneeReq struct {
	MemberID *uuid.UUID `json:"member_id"`
}

func setAssignee(svc *boardsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		storyID, ok := parseID(c, "storyId")
		if !ok {
			return
		}

		var req assigneeReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		s, err := svc.Reassign(c.Request.Context(), id, storyID, req.MemberID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}
