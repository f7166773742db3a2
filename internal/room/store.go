package room

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultMaxTextLen = 500
	activityCap       = 200
)

// truncate caps s at max bytes without splitting a multi-byte rune; a split
// rune would store invalid UTF-8 that json.Marshal rewrites to U+FFFD.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// Store is the authoritative in-memory state of a single room. It is not
// safe for concurrent use; the service layer serializes access so every
// mutation runs to completion before the next one starts.
type Store struct {
	maxText  int
	nextID   int64
	items    []*Item
	activity []string
}

// NewStore returns an empty store. Item identifiers are drawn from a
// monotonic counter seeded from the current time, so they stay roughly
// time-ordered across restarts without ever colliding in-process.
func NewStore(maxTextLen int) *Store {
	if maxTextLen <= 0 {
		maxTextLen = DefaultMaxTextLen
	}
	return &Store{
		maxText: maxTextLen,
		nextID:  time.Now().UnixMilli(),
	}
}

func (s *Store) genID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) truncate(text string) string {
	return truncate(text, s.maxText)
}

// AddItem creates a new item and prepends it to the room sequence (newest
// first). Returns nil, false when the author is unknown or the text trims
// to nothing.
func (s *Store) AddItem(author, text string) (*Item, bool) {
	text = strings.TrimSpace(text)
	if author == "" || text == "" {
		return nil, false
	}
	item := &Item{
		ID:        s.genID(),
		Author:    author,
		Text:      s.truncate(text),
		Likes:     []string{},
		Comments:  []Comment{},
		CreatedAt: time.Now(),
	}
	s.items = append([]*Item{item}, s.items...)
	s.log("%s posted", author)
	return item, true
}

// ToggleLike flips membership of author in the item's liker set: removed if
// present, appended if absent. Missing items are ignored.
func (s *Store) ToggleLike(itemID int64, author string) bool {
	item := s.find(itemID)
	if item == nil || author == "" {
		return false
	}
	for i, name := range item.Likes {
		if name == author {
			item.Likes = append(item.Likes[:i], item.Likes[i+1:]...)
			s.log("%s unliked a post by %s", author, item.Author)
			return true
		}
	}
	item.Likes = append(item.Likes, author)
	s.log("%s liked a post by %s", author, item.Author)
	return true
}

// AddComment appends a comment to the item, preserving order.
func (s *Store) AddComment(itemID int64, author, text string) bool {
	text = strings.TrimSpace(text)
	item := s.find(itemID)
	if item == nil || author == "" || text == "" {
		return false
	}
	item.Comments = append(item.Comments, Comment{Author: author, Text: s.truncate(text)})
	s.log("%s commented on a post by %s", author, item.Author)
	return true
}

// AddCheckItem appends a checklist entry to the item.
func (s *Store) AddCheckItem(itemID int64, author, text string) bool {
	text = strings.TrimSpace(text)
	item := s.find(itemID)
	if item == nil || author == "" || text == "" {
		return false
	}
	item.Checklist = append(item.Checklist, CheckItem{ID: s.genID(), Text: s.truncate(text)})
	return true
}

// ToggleCheckItem flips the done flag on a checklist entry. Unlike likes
// this toggles a boolean in place, it does not track who toggled.
func (s *Store) ToggleCheckItem(itemID, checkID int64) bool {
	item := s.find(itemID)
	if item == nil {
		return false
	}
	for i := range item.Checklist {
		if item.Checklist[i].ID == checkID {
			item.Checklist[i].Done = !item.Checklist[i].Done
			return true
		}
	}
	return false
}

// Snapshot returns a deep copy of the item sequence, newest first. Callers
// may hold the result across later mutations.
func (s *Store) Snapshot() []Item {
	out := make([]Item, len(s.items))
	for i, item := range s.items {
		out[i] = item.clone()
	}
	return out
}

// Len reports the number of items in the room.
func (s *Store) Len() int {
	return len(s.items)
}

// Activity returns the recent human-readable activity log, newest first.
func (s *Store) Activity() []string {
	return append([]string(nil), s.activity...)
}

func (s *Store) find(itemID int64) *Item {
	for _, item := range s.items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

func (s *Store) log(format string, args ...any) {
	s.activity = append([]string{fmt.Sprintf(format, args...)}, s.activity...)
	if len(s.activity) > activityCap {
		s.activity = s.activity[:activityCap]
	}
}
