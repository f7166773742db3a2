package handlers

import (
	"log/slog"
	"sync"
)

// Sender delivers one outbound event to a single connection. The websocket
// handler wraps the live conn; tests substitute fakes.
type Sender interface {
	Send(v interface{}) error
}

const DefaultSendQueueSize = 64

// RoomManager fans server events out to the connections subscribed to each
// room. Every subscriber gets a buffered queue drained by its own writer
// goroutine, so a slow or dead recipient never blocks the caller; events
// that do not fit are dropped, never retried.
type RoomManager struct {
	log       *slog.Logger
	queueSize int

	mu sync.RWMutex
	// roomID -> connID -> subscriber
	rooms map[string]map[string]*subscriber
}

type subscriber struct {
	queue chan interface{}
}

func NewRoomManager(log *slog.Logger, queueSize int) *RoomManager {
	if queueSize <= 0 {
		queueSize = DefaultSendQueueSize
	}
	return &RoomManager{
		log:       log,
		queueSize: queueSize,
		rooms:     make(map[string]map[string]*subscriber),
	}
}

// Subscribe attaches a connection to a room and starts its writer. Events
// enqueued for this connection are written in FIFO order until Unsubscribe.
func (m *RoomManager) Subscribe(roomID, connID string, s Sender) {
	sub := &subscriber{
		queue: make(chan interface{}, m.queueSize),
	}

	m.mu.Lock()
	if _, ok := m.rooms[roomID]; !ok {
		m.rooms[roomID] = make(map[string]*subscriber)
	}
	m.rooms[roomID][connID] = sub
	m.mu.Unlock()

	go func() {
		for msg := range sub.queue {
			if err := s.Send(msg); err != nil {
				// Delivery is best-effort; the read loop notices the
				// broken conn and unsubscribes.
				m.log.Debug("dropped event for broken connection", "room", roomID, "conn", connID, "error", err)
			}
		}
	}()
}

// Unsubscribe detaches a connection and stops its writer after the queue
// drains. Safe to call for unknown connections and safe to race with
// Broadcast.
func (m *RoomManager) Unsubscribe(roomID, connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns, ok := m.rooms[roomID]
	if !ok {
		return
	}
	sub, ok := conns[connID]
	if !ok {
		return
	}
	delete(conns, connID)
	if len(conns) == 0 {
		delete(m.rooms, roomID)
	}
	// Closing under the lock is safe: Broadcast only enqueues to subscribers
	// still present in the map, also under the lock.
	close(sub.queue)
}

// Broadcast enqueues ev for every connection in the room. A non-empty
// excludeConnID skips the originator (typing relays); empty delivers to
// everyone including the sender.
func (m *RoomManager) Broadcast(roomID string, ev interface{}, excludeConnID string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for connID, sub := range m.rooms[roomID] {
		if connID == excludeConnID {
			continue
		}
		select {
		case sub.queue <- ev:
		default:
			m.log.Warn("send queue full, dropping event", "room", roomID, "conn", connID)
		}
	}
}

// SendTo enqueues ev for a single connection, used for the initial snapshot
// on join. No-op if the connection is gone.
func (m *RoomManager) SendTo(roomID, connID string, ev interface{}) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, ok := m.rooms[roomID][connID]
	if !ok {
		return
	}
	select {
	case sub.queue <- ev:
	default:
		m.log.Warn("send queue full, dropping event", "room", roomID, "conn", connID)
	}
}

// CountConnections reports the number of subscribers in a room.
func (m *RoomManager) CountConnections(roomID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms[roomID])
}
