// Package comment provides the comment domain model, reply-tree assembly and data access.
package comment

import (
	"encoding/json"
	"time"
)

// TimestampFormat is the wire format for comment timestamps (ISO-8601, UTC, milliseconds).
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Comment is a single discussion entry. ParentID is nil for top-level comments.
// Replies is assembled on read and never stored.
type Comment struct {
	ID        string    `json:"id" validate:"required"`
	Text      string    `json:"text" validate:"required"`
	Author    string    `json:"author" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
	ParentID  *string   `json:"parentId"`
	Votes     int       `json:"votes" validate:"gte=0"`
	Replies   []Comment `json:"replies,omitempty"`
}

// IsTopLevel reports whether the comment has no parent.
func (c Comment) IsTopLevel() bool {
	return c.ParentID == nil
}

// IsReplyTo reports whether the comment is a direct reply to parentID.
func (c Comment) IsReplyTo(parentID string) bool {
	return c.ParentID != nil && *c.ParentID == parentID
}

// wireComment mirrors Comment with a formatted timestamp.
type wireComment struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Author    string     `json:"author"`
	Timestamp string     `json:"timestamp"`
	ParentID  *string    `json:"parentId"`
	Votes     int        `json:"votes"`
	Replies   *[]Comment `json:"replies,omitempty"`
}

// MarshalJSON writes the timestamp in TimestampFormat. Replies are omitted
// when nil and written as [] when assembled but empty.
func (c Comment) MarshalJSON() ([]byte, error) {
	var replies *[]Comment
	if c.Replies != nil {
		replies = &c.Replies
	}
	return json.Marshal(wireComment{
		ID:        c.ID,
		Text:      c.Text,
		Author:    c.Author,
		Timestamp: c.Timestamp.UTC().Format(TimestampFormat),
		ParentID:  c.ParentID,
		Votes:     c.Votes,
		Replies:   replies,
	})
}

// UnmarshalJSON accepts any RFC 3339 timestamp.
func (c *Comment) UnmarshalJSON(data []byte) error {
	var w wireComment
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var ts time.Time
	if w.Timestamp != "" {
		var err error
		ts, err = time.Parse(time.RFC3339Nano, w.Timestamp)
		if err != nil {
			return err
		}
	}

	var replies []Comment
	if w.Replies != nil {
		replies = *w.Replies
	}

	*c = Comment{
		ID:        w.ID,
		Text:      w.Text,
		Author:    w.Author,
		Timestamp: ts,
		ParentID:  w.ParentID,
		Votes:     w.Votes,
		Replies:   replies,
	}
	return nil
}

// Page is one page of top-level comments with their reply trees attached.
type Page struct {
	Comments      []Comment `json:"comments"`
	CurrentPage   int       `json:"currentPage"`
	TotalPages    int       `json:"totalPages"`
	TotalComments int       `json:"totalComments"`
}
