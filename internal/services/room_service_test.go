package services

import (
	"testing"

	"feed-sync-backend/internal/room"

	"github.com/google/go-cmp/cmp"
	"github.com/neilotoole/slogt"
)

func newTestService(t *testing.T) *RoomService {
	t.Helper()
	return NewRoomService(slogt.New(t), 0, 0)
}

// The walkthrough from the feed demo: Alice posts, Bob likes and unlikes.
func TestRoomService_FeedScenario(t *testing.T) {
	svc := newTestService(t)

	name, items, users := svc.Join("general", "conn-alice", "Alice")
	if name != "Alice" {
		t.Fatalf("Join() name = %q, want Alice", name)
	}
	if len(items) != 0 {
		t.Fatalf("initial snapshot has %d items, want 0", len(items))
	}
	if diff := cmp.Diff([]string{"Alice"}, users); diff != "" {
		t.Fatalf("users mismatch (-want +got):\n%s", diff)
	}

	items, ok := svc.Post("general", "conn-alice", "hello")
	if !ok {
		t.Fatal("Post() failed")
	}
	if len(items) != 1 {
		t.Fatalf("snapshot has %d items, want 1", len(items))
	}
	got := items[0]
	if got.Author != "Alice" || got.Text != "hello" || len(got.Likes) != 0 || len(got.Comments) != 0 {
		t.Fatalf("item = %+v, want Alice/hello with no likes or comments", got)
	}

	_, _, users = svc.Join("general", "conn-bob", "Bob")
	if diff := cmp.Diff([]string{"Alice", "Bob"}, users); diff != "" {
		t.Fatalf("users mismatch (-want +got):\n%s", diff)
	}

	items, ok = svc.ToggleLike("general", "conn-bob", got.ID)
	if !ok {
		t.Fatal("ToggleLike() failed")
	}
	if diff := cmp.Diff([]string{"Bob"}, items[0].Likes); diff != "" {
		t.Errorf("likes after first toggle (-want +got):\n%s", diff)
	}

	items, _ = svc.ToggleLike("general", "conn-bob", got.ID)
	if len(items[0].Likes) != 0 {
		t.Errorf("likes after second toggle = %v, want empty", items[0].Likes)
	}
}

func TestRoomService_UnjoinedActionsIgnored(t *testing.T) {
	svc := newTestService(t)
	svc.Join("general", "conn-alice", "Alice")
	item, _ := svc.Post("general", "conn-alice", "hello")

	if _, ok := svc.Post("general", "conn-ghost", "x"); ok {
		t.Error("Post() from an unjoined connection must be a no-op")
	}
	if _, ok := svc.ToggleLike("general", "conn-ghost", item[0].ID); ok {
		t.Error("ToggleLike() from an unjoined connection must be a no-op")
	}
	if _, ok := svc.Comment("general", "conn-ghost", item[0].ID, "hi"); ok {
		t.Error("Comment() from an unjoined connection must be a no-op")
	}
	if _, ok := svc.Post("nowhere", "conn-alice", "x"); ok {
		t.Error("Post() into an unknown room must be a no-op")
	}

	snap, _ := svc.Snapshot("general")
	if len(snap.Items) != 1 {
		t.Errorf("room has %d items, want 1", len(snap.Items))
	}
}

func TestRoomService_RoomsAreIsolated(t *testing.T) {
	svc := newTestService(t)
	svc.Join("alpha", "c1", "Alice")
	svc.Join("beta", "c2", "Bob")
	svc.Post("alpha", "c1", "only in alpha")

	snapAlpha, _ := svc.Snapshot("alpha")
	snapBeta, _ := svc.Snapshot("beta")
	if len(snapAlpha.Items) != 1 {
		t.Errorf("alpha has %d items, want 1", len(snapAlpha.Items))
	}
	if len(snapBeta.Items) != 0 {
		t.Errorf("beta has %d items, want 0", len(snapBeta.Items))
	}

	// A member of beta cannot post into alpha.
	if _, ok := svc.Post("alpha", "c2", "cross-room"); ok {
		t.Error("posting into a room the connection never joined must fail")
	}
}

func TestRoomService_Leave(t *testing.T) {
	svc := newTestService(t)
	svc.Join("general", "c1", "Alice")
	svc.Join("general", "c2", "Bob")

	name, users, ok := svc.Leave("general", "c1")
	if !ok || name != "Alice" {
		t.Fatalf("Leave() = %q, %v; want Alice, true", name, ok)
	}
	if diff := cmp.Diff([]string{"Bob"}, users); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}

	// Idempotent: repeat leaves and unknown rooms report no mapping.
	if _, _, ok := svc.Leave("general", "c1"); ok {
		t.Error("second Leave() must be a no-op")
	}
	if _, _, ok := svc.Leave("nowhere", "c1"); ok {
		t.Error("Leave() from unknown room must be a no-op")
	}

	// Items survive everyone leaving: the room lives for the process.
	svc.Post("general", "c2", "still here")
	svc.Leave("general", "c2")
	snap, ok := svc.Snapshot("general")
	if !ok {
		t.Fatal("Snapshot() must still find the empty room")
	}
	if len(snap.Items) != 1 || len(snap.Users) != 0 {
		t.Errorf("after everyone left: %d items, %d users; want 1, 0", len(snap.Items), len(snap.Users))
	}
}

func TestRoomService_CommentsAndChecklist(t *testing.T) {
	svc := newTestService(t)
	svc.Join("general", "c1", "Alice")
	items, _ := svc.Post("general", "c1", "plan")
	id := items[0].ID

	items, ok := svc.Comment("general", "c1", id, "first")
	if !ok {
		t.Fatal("Comment() failed")
	}
	items, ok = svc.Comment("general", "c1", id, "second")
	if !ok {
		t.Fatal("Comment() failed")
	}
	want := []room.Comment{{Author: "Alice", Text: "first"}, {Author: "Alice", Text: "second"}}
	if diff := cmp.Diff(want, items[0].Comments); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}

	items, ok = svc.AddCheckItem("general", "c1", id, "write tests")
	if !ok {
		t.Fatal("AddCheckItem() failed")
	}
	checkID := items[0].Checklist[0].ID
	items, ok = svc.ToggleCheckItem("general", "c1", id, checkID)
	if !ok {
		t.Fatal("ToggleCheckItem() failed")
	}
	if !items[0].Checklist[0].Done {
		t.Error("checklist entry must be done after toggle")
	}
}

func TestRoomService_Rooms(t *testing.T) {
	svc := newTestService(t)
	if got := svc.Rooms(); len(got) != 0 {
		t.Fatalf("Rooms() = %v, want empty", got)
	}

	svc.Join("beta", "c1", "Bob")
	svc.Join("alpha", "c2", "Alice")
	svc.Join("alpha", "c3", "Carol")
	svc.Post("alpha", "c2", "hi")

	rooms := svc.Rooms()
	if len(rooms) != 2 {
		t.Fatalf("Rooms() returned %d entries, want 2", len(rooms))
	}
	if rooms[0].ID != "alpha" || rooms[1].ID != "beta" {
		t.Errorf("rooms not sorted by ID: %v", rooms)
	}
	if rooms[0].Members != 2 || rooms[0].Items != 1 {
		t.Errorf("alpha = %+v, want 2 members and 1 item", rooms[0])
	}
}

func TestRoomService_SnapshotUnknownRoom(t *testing.T) {
	svc := newTestService(t)
	if _, ok := svc.Snapshot("nope"); ok {
		t.Error("Snapshot() of unknown room must report false")
	}
}
