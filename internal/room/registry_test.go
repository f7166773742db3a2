package room

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_Register(t *testing.T) {
	tests := []struct {
		name    string
		rawName string
		want    string
	}{
		{name: "OK", rawName: "Alice", want: "Alice"},
		{name: "TrimsWhitespace", rawName: "  Bob  ", want: "Bob"},
		{name: "EmptyGetsPlaceholder", rawName: "", want: "anonymous"},
		{name: "WhitespaceGetsPlaceholder", rawName: "   ", want: "anonymous"},
		{name: "CapsLength", rawName: strings.Repeat("a", 100), want: strings.Repeat("a", DefaultMaxNameLen)},
		{
			name:    "CapsOnRuneBoundary",
			rawName: strings.Repeat("a", DefaultMaxNameLen-1) + "éé",
			want:    strings.Repeat("a", DefaultMaxNameLen-1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(0)
			got := r.Register("conn-1", tt.rawName)
			if got != tt.want {
				t.Errorf("Register() = %q, want %q", got, tt.want)
			}
			if name, ok := r.Lookup("conn-1"); !ok || name != tt.want {
				t.Errorf("Lookup() = %q, %v; want %q, true", name, ok, tt.want)
			}
		})
	}
}

func TestRegistry_DuplicateNamesAllowed(t *testing.T) {
	r := NewRegistry(0)
	r.Register("conn-1", "Alice")
	r.Register("conn-2", "Alice")

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if diff := cmp.Diff([]string{"Alice", "Alice"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry(0)
	r.Register("conn-1", "Alice")
	r.Register("conn-2", "Bob")

	name, ok := r.Unregister("conn-1")
	if !ok || name != "Alice" {
		t.Fatalf("Unregister() = %q, %v; want Alice, true", name, ok)
	}
	if diff := cmp.Diff([]string{"Bob"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	// Unknown and already-removed IDs are silent no-ops.
	if _, ok := r.Unregister("conn-1"); ok {
		t.Error("second Unregister() must report no mapping")
	}
	if _, ok := r.Unregister("never-seen"); ok {
		t.Error("Unregister() of unknown ID must report no mapping")
	}
}

func TestRegistry_NamesInJoinOrder(t *testing.T) {
	r := NewRegistry(0)
	r.Register("c1", "Alice")
	r.Register("c2", "Bob")
	r.Register("c3", "Carol")
	r.Unregister("c2")
	r.Register("c4", "Dave")

	if diff := cmp.Diff([]string{"Alice", "Carol", "Dave"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}
