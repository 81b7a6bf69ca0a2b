package comment

import (
	"slices"
)

// SortNewestFirst orders comments by timestamp, newest first.
// Comments with equal timestamps keep their relative order.
func SortNewestFirst(comments []Comment) {
	slices.SortStableFunc(comments, func(a, b Comment) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
}

// BuildReplies returns the direct replies to parentID, newest first, each
// with its own replies attached recursively. The result is never nil.
func BuildReplies(parentID string, all []Comment) []Comment {
	replies := make([]Comment, 0)
	for _, c := range all {
		if c.IsReplyTo(parentID) {
			replies = append(replies, c)
		}
	}

	SortNewestFirst(replies)

	for i := range replies {
		replies[i].Replies = BuildReplies(replies[i].ID, all)
	}
	return replies
}

// Thread returns a copy of c with its reply tree attached.
func Thread(c Comment, all []Comment) Comment {
	c.Replies = BuildReplies(c.ID, all)
	return c
}

// TopLevel returns the comments without a parent, newest first.
func TopLevel(all []Comment) []Comment {
	top := make([]Comment, 0)
	for _, c := range all {
		if c.IsTopLevel() {
			top = append(top, c)
		}
	}
	SortNewestFirst(top)
	return top
}

// Paginate returns the requested page of top-level comments with reply trees.
// Page and limit below 1 are treated as 1.
func Paginate(all []Comment, page, limit int) Page {
	page = max(page, 1)
	limit = max(limit, 1)

	top := TopLevel(all)
	total := len(top)

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	start := total
	if page <= totalPages {
		start = (page - 1) * limit
	}
	end := min(start+limit, total)

	comments := make([]Comment, 0, end-start)
	for _, c := range top[start:end] {
		comments = append(comments, Thread(c, all))
	}

	return Page{
		Comments:      comments,
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalComments: total,
	}
}
