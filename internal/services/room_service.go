package services

import (
	"log/slog"
	"sort"
	"sync"

	"feed-sync-backend/internal/models"
	"feed-sync-backend/internal/room"
)

// RoomService owns every room's state store and presence registry, keyed by
// room ID. One mutex serializes all mutations, so each action runs from
// validation through store mutation to completion before the next inbound
// event from any connection is handled. Broadcast dispatch happens outside
// the service and never blocks it.
type RoomService struct {
	log     *slog.Logger
	maxText int
	maxName int

	mu    sync.Mutex
	rooms map[string]*roomState
}

type roomState struct {
	store    *room.Store
	registry *room.Registry
}

func NewRoomService(log *slog.Logger, maxTextLen, maxNameLen int) *RoomService {
	return &RoomService{
		log:     log,
		maxText: maxTextLen,
		maxName: maxNameLen,
		rooms:   make(map[string]*roomState),
	}
}

// get returns the state for roomID, creating it on first use. Rooms are
// never deleted: their items outlive their members for the process lifetime.
func (s *RoomService) get(roomID string) *roomState {
	st, ok := s.rooms[roomID]
	if !ok {
		st = &roomState{
			store:    room.NewStore(s.maxText),
			registry: room.NewRegistry(s.maxName),
		}
		s.rooms[roomID] = st
	}
	return st
}

// Join registers the connection under a normalized display name and returns
// the name, the current snapshot for initial sync, and the member list.
func (s *RoomService) Join(roomID, connID, rawName string) (string, []room.Item, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(roomID)
	name := st.registry.Register(connID, rawName)
	s.log.Info("member joined", "room", roomID, "name", name)
	return name, st.store.Snapshot(), st.registry.Names()
}

// Leave removes the connection's presence entry. Unknown connections are
// ignored and reported via the bool so no leave notification goes out.
func (s *RoomService) Leave(roomID, connID string) (string, []string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.rooms[roomID]
	if !ok {
		return "", nil, false
	}
	name, ok := st.registry.Unregister(connID)
	if !ok {
		return "", nil, false
	}
	s.log.Info("member left", "room", roomID, "name", name)
	return name, st.registry.Names(), true
}

// MemberName resolves a connection to its display name, used for typing
// relays and for gating actions from unjoined connections.
func (s *RoomService) MemberName(roomID, connID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.rooms[roomID]
	if !ok {
		return "", false
	}
	return st.registry.Lookup(connID)
}

// Post creates a new item authored by the connection's registered name.
// Returns the updated snapshot, or false when the connection never joined
// or the text is empty.
func (s *RoomService) Post(roomID, connID, text string) ([]room.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, author, ok := s.member(roomID, connID)
	if !ok {
		return nil, false
	}
	if _, ok := st.store.AddItem(author, text); !ok {
		return nil, false
	}
	return st.store.Snapshot(), true
}

// ToggleLike flips the connection's like on an item.
func (s *RoomService) ToggleLike(roomID, connID string, itemID int64) ([]room.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, author, ok := s.member(roomID, connID)
	if !ok {
		return nil, false
	}
	if !st.store.ToggleLike(itemID, author) {
		return nil, false
	}
	return st.store.Snapshot(), true
}

// Comment appends a comment to an item.
func (s *RoomService) Comment(roomID, connID string, itemID int64, text string) ([]room.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, author, ok := s.member(roomID, connID)
	if !ok {
		return nil, false
	}
	if !st.store.AddComment(itemID, author, text) {
		return nil, false
	}
	return st.store.Snapshot(), true
}

// AddCheckItem appends a checklist entry to an item.
func (s *RoomService) AddCheckItem(roomID, connID string, itemID int64, text string) ([]room.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, author, ok := s.member(roomID, connID)
	if !ok {
		return nil, false
	}
	if !st.store.AddCheckItem(itemID, author, text) {
		return nil, false
	}
	return st.store.Snapshot(), true
}

// ToggleCheckItem flips a checklist entry's done flag.
func (s *RoomService) ToggleCheckItem(roomID, connID string, itemID, checkID int64) ([]room.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, _, ok := s.member(roomID, connID)
	if !ok {
		return nil, false
	}
	if !st.store.ToggleCheckItem(itemID, checkID) {
		return nil, false
	}
	return st.store.Snapshot(), true
}

// Snapshot exports one room's full state for the REST surface.
func (s *RoomService) Snapshot(roomID string) (models.RoomSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.rooms[roomID]
	if !ok {
		return models.RoomSnapshot{}, false
	}
	return models.RoomSnapshot{
		ID:       roomID,
		Users:    st.registry.Names(),
		Items:    st.store.Snapshot(),
		Activity: st.store.Activity(),
	}, true
}

// Rooms lists every known room, sorted by ID.
func (s *RoomService) Rooms() []models.RoomInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.RoomInfo, 0, len(s.rooms))
	for id, st := range s.rooms {
		out = append(out, models.RoomInfo{
			ID:      id,
			Members: st.registry.Len(),
			Items:   st.store.Len(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// member resolves a mutation's room and author; callers hold s.mu. Actions
// from connections that never joined fail here and turn into silent no-ops.
func (s *RoomService) member(roomID, connID string) (*roomState, string, bool) {
	st, ok := s.rooms[roomID]
	if !ok {
		return nil, "", false
	}
	author, ok := st.registry.Lookup(connID)
	if !ok {
		s.log.Debug("action from unjoined connection", "room", roomID, "conn", connID)
		return nil, "", false
	}
	return st, author, true
}
