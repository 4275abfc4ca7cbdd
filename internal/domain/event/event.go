package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBoardCreated     Type = "board_created"
	TypeBoardCleared     Type = "board_cleared"
	TypeMemberAdded      Type = "member_added"
	TypeMemberRemoved    Type = "member_removed"
	TypeStoriesReplaced  Type = "stories_replaced"
	TypeStoriesAllocated Type = "stories_allocated"
	TypeStoryAssigned    Type = "story_assigned"
	TypeStoryUnassigned  Type = "story_unassigned"
)

// Channel is a domain-scoped Postgres NOTIFY channel.
// All event types within a domain share one LISTEN connection.
type Channel string

const (
	ChannelBoard Channel = "board"
	ChannelStory Channel = "story"
)

// Channels lists every channel in subscription order.
var Channels = []Channel{ChannelBoard, ChannelStory}

var typeToChannel = map[Type]Channel{
	TypeBoardCreated:     ChannelBoard,
	TypeBoardCleared:     ChannelBoard,
	TypeMemberAdded:      ChannelBoard,
	TypeMemberRemoved:    ChannelBoard,
	TypeStoriesReplaced:  ChannelStory,
	TypeStoriesAllocated: ChannelStory,
	TypeStoryAssigned:    ChannelStory,
	TypeStoryUnassigned:  ChannelStory,
}

// ChannelFor returns the domain channel for a given event type.
func ChannelFor(t Type) Channel { return typeToChannel[t] }

// Event carries identifiers only, not full state.
// Subscribers fetch a fresh board snapshot when they need one.
type Event struct {
	Type      Type      `json:"type"`
	BoardID   uuid.UUID `json:"board_id"`
	EntityID  uuid.UUID `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

func New(eventType Type, boardID, entityID uuid.UUID) Event {
	return Event{
		Type:      eventType,
		BoardID:   boardID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}
