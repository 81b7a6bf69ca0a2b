package comment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Repository is a table-backed Store over the comments table.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a comment repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts a comment. A ParentID that does not reference a stored
// comment yields ErrNotFound.
func (r *Repository) Add(ctx context.Context, c Comment) error {
	if c.ParentID != nil {
		if _, err := r.Get(ctx, *c.ParentID); err != nil {
			return fmt.Errorf("parent %s: %w", *c.ParentID, err)
		}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (id, parent_id, text, author, created_at, votes) VALUES (?, ?, ?, ?, ?, ?)",
		c.ID, c.ParentID, c.Text, c.Author, c.Timestamp.UTC().Format(TimestampFormat), c.Votes,
	)
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}
	return nil
}

// Get returns the comment with the given id.
func (r *Repository) Get(ctx context.Context, id string) (Comment, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, parent_id, text, author, created_at, votes FROM comments WHERE id = ?", id,
	)
	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Comment{}, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Comment{}, fmt.Errorf("reading comment: %w", err)
	}
	return c, nil
}

// List returns all comments in insertion order.
func (r *Repository) List(ctx context.Context) (comments []Comment, err error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, parent_id, text, author, created_at, votes FROM comments ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	comments = make([]Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

// Replies returns the direct replies to parentID, newest first, with their
// reply trees attached. It is the query form of BuildReplies.
func (r *Repository) Replies(ctx context.Context, parentID string) (replies []Comment, err error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, parent_id, text, author, created_at, votes FROM comments WHERE parent_id = ? ORDER BY created_at DESC, seq ASC",
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing replies: %w", err)
	}

	replies = make([]Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scanning reply: %w", err)
		}
		replies = append(replies, c)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterating replies: %w", err)
	}
	// The pool holds a single connection, so rows must be released before recursing.
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("closing rows: %w", err)
	}

	for i := range replies {
		replies[i].Replies, err = r.Replies(ctx, replies[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return replies, nil
}

// Upvote increments the votes of the comment with the given id.
func (r *Repository) Upvote(ctx context.Context, id string) (int, error) {
	result, err := r.db.ExecContext(ctx, "UPDATE comments SET votes = votes + 1 WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("upvoting comment: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}

	c, err := r.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return c.Votes, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(s scanner) (Comment, error) {
	var (
		c         Comment
		parentID  sql.NullString
		createdAt string
	)
	if err := s.Scan(&c.ID, &parentID, &c.Text, &c.Author, &createdAt, &c.Votes); err != nil {
		return Comment{}, err
	}
	if parentID.Valid {
		p := parentID.String
		c.ParentID = &p
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Comment{}, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	c.Timestamp = ts
	return c, nil
}
