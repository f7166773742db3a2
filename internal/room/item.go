package room

import "time"

// Item is a single shared content unit in a room: a feed post with its
// mutable sub-state (likes, comments, checklist).
type Item struct {
	ID        int64       `json:"id"`
	Author    string      `json:"author"`
	Text      string      `json:"text"`
	Likes     []string    `json:"likes"`
	Comments  []Comment   `json:"comments"`
	Checklist []CheckItem `json:"checklist,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type Comment struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// CheckItem is a checklist entry on an item. Done is flipped independently
// of like toggling.
type CheckItem struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

func (i *Item) clone() Item {
	c := *i
	c.Likes = append([]string(nil), i.Likes...)
	c.Comments = append([]Comment(nil), i.Comments...)
	if i.Checklist != nil {
		c.Checklist = append([]CheckItem(nil), i.Checklist...)
	}
	return c
}
