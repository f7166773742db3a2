package room

import "strings"

const (
	DefaultMaxNameLen = 32
	placeholderName   = "anonymous"
)

// Registry maps live connection IDs to display names. Names are not unique:
// two connections may share one, and nothing reconciles renames. Like Store
// it relies on the service layer for serialization.
type Registry struct {
	maxName int
	names   map[string]string
	order   []string // connection IDs in join order
}

func NewRegistry(maxNameLen int) *Registry {
	if maxNameLen <= 0 {
		maxNameLen = DefaultMaxNameLen
	}
	return &Registry{
		maxName: maxNameLen,
		names:   make(map[string]string),
	}
}

// Register normalizes rawName (trim, cap, placeholder when empty) and stores
// the mapping. Returns the name the connection will be known by.
func (r *Registry) Register(connID, rawName string) string {
	name := strings.TrimSpace(rawName)
	if name == "" {
		name = placeholderName
	}
	name = truncate(name, r.maxName)
	if _, ok := r.names[connID]; !ok {
		r.order = append(r.order, connID)
	}
	r.names[connID] = name
	return name
}

// Unregister removes the mapping if present. The bool result tells the
// caller whether a leave notification is due; unknown IDs are a no-op.
func (r *Registry) Unregister(connID string) (string, bool) {
	name, ok := r.names[connID]
	if !ok {
		return "", false
	}
	delete(r.names, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return name, true
}

// Lookup resolves a connection ID to its display name.
func (r *Registry) Lookup(connID string) (string, bool) {
	name, ok := r.names[connID]
	return name, ok
}

// Names returns the current member list in join order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.names[id])
	}
	return out
}

// Len reports the number of registered connections.
func (r *Registry) Len() int {
	return len(r.names)
}
