package models

import "feed-sync-backend/internal/room"

// Client event names.
const (
	EventJoin        = "join"
	EventPost        = "post"
	EventChat        = "chat" // accepted alias for post
	EventLike        = "like"
	EventComment     = "comment"
	EventTyping      = "typing"
	EventCheckAdd    = "check_add"
	EventCheckToggle = "check_toggle"
)

// Server event names.
const (
	EventJoined   = "joined"
	EventUpdate   = "update"
	EventSystem   = "system"
	EventUserlist = "userlist"
)

// ClientEvent is the inbound websocket envelope. Unknown or malformed
// events are dropped without a reply.
type ClientEvent struct {
	Event   string `json:"event" validate:"required"`
	Name    string `json:"name,omitempty"`
	Text    string `json:"text,omitempty"`
	ItemID  int64  `json:"item_id,omitempty" validate:"gte=0"`
	CheckID int64  `json:"check_id,omitempty" validate:"gte=0"`
	Typing  bool   `json:"typing,omitempty"`
}

// ServerEvent is the outbound websocket envelope. State is a pointer so a
// typing relay carries "state":false instead of dropping the field.
type ServerEvent struct {
	Event string      `json:"event"`
	Name  string      `json:"name,omitempty"`
	Text  string      `json:"text,omitempty"`
	From  string      `json:"from,omitempty"`
	State *bool       `json:"state,omitempty"`
	Items []room.Item `json:"items,omitempty"`
	Users []string    `json:"users,omitempty"`
}

// RoomInfo summarizes one room for the REST listing.
type RoomInfo struct {
	ID      string `json:"id"`
	Members int    `json:"members"`
	Items   int    `json:"items"`
}

// RoomSnapshot is the REST export of a room's full state.
type RoomSnapshot struct {
	ID       string      `json:"id"`
	Users    []string    `json:"users"`
	Items    []room.Item `json:"items"`
	Activity []string    `json:"activity"`
}
