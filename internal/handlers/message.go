package handlers

import (
	"fmt"
	"log/slog"
	"sync"

	"feed-sync-backend/internal/models"
	"feed-sync-backend/internal/room"
	"feed-sync-backend/internal/services"
	"feed-sync-backend/internal/utils"
	"feed-sync-backend/internal/validator"
)

// Session tracks one connection's lifecycle: unjoined until a valid join
// action, joined until the network-level disconnect. A closed session is
// never rejoined; a new connection starts a fresh one.
type Session struct {
	ConnID string
	RoomID string
	Name   string
	Joined bool
	Sender Sender
}

type actionFunc func(d *Dispatcher, sess *Session, ev models.ClientEvent)

// Dispatcher routes inbound client events to their handlers via a table
// keyed by event name.
type Dispatcher struct {
	log     *slog.Logger
	svc     *services.RoomService
	mgr     *RoomManager
	val     *validator.Validator
	actions map[string]actionFunc

	// mu serializes every handler from validation through store mutation to
	// broadcast enqueue. Snapshots therefore land on the subscriber queues
	// in mutation order; without it two connections could enqueue their
	// updates in the opposite order from the mutations and leave clients on
	// a stale snapshot.
	mu sync.Mutex
}

func NewDispatcher(log *slog.Logger, svc *services.RoomService, mgr *RoomManager) *Dispatcher {
	d := &Dispatcher{
		log: log,
		svc: svc,
		mgr: mgr,
		val: validator.New(),
	}
	d.actions = map[string]actionFunc{
		models.EventJoin:        (*Dispatcher).handleJoin,
		models.EventPost:        (*Dispatcher).handlePost,
		models.EventChat:        (*Dispatcher).handlePost,
		models.EventLike:        (*Dispatcher).handleLike,
		models.EventComment:     (*Dispatcher).handleComment,
		models.EventTyping:      (*Dispatcher).handleTyping,
		models.EventCheckAdd:    (*Dispatcher).handleCheckAdd,
		models.EventCheckToggle: (*Dispatcher).handleCheckToggle,
	}
	return d
}

// HandleMessage parses one inbound frame and dispatches it. Malformed
// frames, unknown events and actions from unjoined connections are all
// dropped without a reply.
func (d *Dispatcher) HandleMessage(sess *Session, raw []byte) {
	var ev models.ClientEvent
	if err := utils.SafeJSONParse(raw, &ev); err != nil {
		d.log.Debug("unparseable frame", "conn", sess.ConnID, "error", err)
		return
	}
	if errs := d.val.ValidateStruct(&ev); len(errs) > 0 {
		d.log.Debug("invalid event", "conn", sess.ConnID, "event", ev.Event)
		return
	}

	handler, ok := d.actions[ev.Event]
	if !ok {
		d.log.Debug("unknown event", "conn", sess.ConnID, "event", ev.Event)
		return
	}
	if !sess.Joined && ev.Event != models.EventJoin {
		d.log.Debug("action before join", "conn", sess.ConnID, "event", ev.Event)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	handler(d, sess, ev)
}

// HandleDisconnect tears the session down: presence entry removed, leave
// notice and fresh member list broadcast to whoever remains. Connections
// that never joined disappear silently.
func (d *Dispatcher) HandleDisconnect(sess *Session) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.mgr.Unsubscribe(sess.RoomID, sess.ConnID)
	name, users, ok := d.svc.Leave(sess.RoomID, sess.ConnID)
	if !ok {
		return
	}
	sess.Joined = false
	d.mgr.Broadcast(sess.RoomID, models.ServerEvent{
		Event: models.EventSystem,
		Text:  fmt.Sprintf("%s left the room", name),
	}, "")
	d.mgr.Broadcast(sess.RoomID, models.ServerEvent{
		Event: models.EventUserlist,
		Users: users,
	}, "")
}

func (d *Dispatcher) handleJoin(sess *Session, ev models.ClientEvent) {
	if sess.Joined {
		// The display name is set once at join; repeat joins are dropped.
		return
	}

	// Subscribe before registering so the initial snapshot and every later
	// broadcast line up FIFO on this connection's queue.
	d.mgr.Subscribe(sess.RoomID, sess.ConnID, sess.Sender)
	name, items, users := d.svc.Join(sess.RoomID, sess.ConnID, ev.Name)
	sess.Name = name
	sess.Joined = true

	d.mgr.SendTo(sess.RoomID, sess.ConnID, models.ServerEvent{
		Event: models.EventJoined,
		Name:  name,
		Items: items,
	})
	d.mgr.Broadcast(sess.RoomID, models.ServerEvent{
		Event: models.EventSystem,
		Text:  fmt.Sprintf("%s joined the room", name),
	}, "")
	d.mgr.Broadcast(sess.RoomID, models.ServerEvent{
		Event: models.EventUserlist,
		Users: users,
	}, "")
}

func (d *Dispatcher) handlePost(sess *Session, ev models.ClientEvent) {
	items, ok := d.svc.Post(sess.RoomID, sess.ConnID, ev.Text)
	if !ok {
		return
	}
	d.broadcastUpdate(sess.RoomID, items)
}

func (d *Dispatcher) handleLike(sess *Session, ev models.ClientEvent) {
	items, ok := d.svc.ToggleLike(sess.RoomID, sess.ConnID, ev.ItemID)
	if !ok {
		return
	}
	d.broadcastUpdate(sess.RoomID, items)
}

func (d *Dispatcher) handleComment(sess *Session, ev models.ClientEvent) {
	items, ok := d.svc.Comment(sess.RoomID, sess.ConnID, ev.ItemID, ev.Text)
	if !ok {
		return
	}
	d.broadcastUpdate(sess.RoomID, items)
}

func (d *Dispatcher) handleCheckAdd(sess *Session, ev models.ClientEvent) {
	items, ok := d.svc.AddCheckItem(sess.RoomID, sess.ConnID, ev.ItemID, ev.Text)
	if !ok {
		return
	}
	d.broadcastUpdate(sess.RoomID, items)
}

func (d *Dispatcher) handleCheckToggle(sess *Session, ev models.ClientEvent) {
	items, ok := d.svc.ToggleCheckItem(sess.RoomID, sess.ConnID, ev.ItemID, ev.CheckID)
	if !ok {
		return
	}
	d.broadcastUpdate(sess.RoomID, items)
}

// handleTyping relays the indicator to everyone but the sender. Nothing is
// stored; expiry is the client's problem.
func (d *Dispatcher) handleTyping(sess *Session, ev models.ClientEvent) {
	name, ok := d.svc.MemberName(sess.RoomID, sess.ConnID)
	if !ok {
		return
	}
	state := ev.Typing
	d.mgr.Broadcast(sess.RoomID, models.ServerEvent{
		Event: models.EventTyping,
		From:  name,
		State: &state,
	}, sess.ConnID)
}

func (d *Dispatcher) broadcastUpdate(roomID string, items []room.Item) {
	d.mgr.Broadcast(roomID, models.ServerEvent{
		Event: models.EventUpdate,
		Items: items,
	}, "")
}
