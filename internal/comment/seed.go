package comment

import (
	"context"
	"fmt"
	"time"
)

// SeedComments returns the development comments: one top-level comment and a reply to it.
func SeedComments(now time.Time) []Comment {
	ts := now.UTC().Truncate(time.Millisecond)
	parent := "1"
	return []Comment{
		{
			ID:        "1",
			Text:      "This is the first comment",
			Author:    "User1",
			Timestamp: ts,
			Votes:     5,
		},
		{
			ID:        "2",
			Text:      "This is a reply to the first comment",
			Author:    "User2",
			Timestamp: ts,
			ParentID:  &parent,
			Votes:     3,
		},
	}
}

// Seed adds the development comments to s.
func Seed(ctx context.Context, s Store, now time.Time) error {
	for _, c := range SeedComments(now) {
		if err := s.Add(ctx, c); err != nil {
			return fmt.Errorf("seeding comment %s: %w", c.ID, err)
		}
	}
	return nil
}
