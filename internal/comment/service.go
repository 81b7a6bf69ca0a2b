package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/evcraddock/threads/internal/metrics"
)

// validate checks comments before they reach the store.
var validate = validator.New(validator.WithRequiredStructEnabled())

// replyLister is implemented by stores that assemble reply trees themselves.
type replyLister interface {
	Replies(ctx context.Context, parentID string) ([]Comment, error)
}

// Service provides comment business logic on top of a Store.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

// NewService creates a comment service.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// List returns one page of top-level comments with their reply trees.
func (s *Service) List(ctx context.Context, page, limit int) (Page, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("loading comments: %w", err)
	}
	return Paginate(all, page, limit), nil
}

// Get returns a comment with its reply tree.
func (s *Service) Get(ctx context.Context, id string) (Comment, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return Comment{}, err
	}

	if rl, ok := s.store.(replyLister); ok {
		c.Replies, err = rl.Replies(ctx, id)
		if err != nil {
			return Comment{}, fmt.Errorf("loading replies: %w", err)
		}
		return c, nil
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return Comment{}, fmt.Errorf("loading comments: %w", err)
	}
	return Thread(c, all), nil
}

// Create adds a top-level comment.
func (s *Service) Create(ctx context.Context, text, author string) (Comment, error) {
	return s.add(ctx, nil, text, author)
}

// Reply adds a reply to parentID. A missing parent is reported before
// the text is checked.
func (s *Service) Reply(ctx context.Context, parentID, text, author string) (Comment, error) {
	if _, err := s.store.Get(ctx, parentID); err != nil {
		return Comment{}, err
	}
	return s.add(ctx, &parentID, text, author)
}

// Upvote adds one vote to a comment and returns the new total.
func (s *Service) Upvote(ctx context.Context, id string) (int, error) {
	votes, err := s.store.Upvote(ctx, id)
	if err != nil {
		return 0, err
	}
	metrics.Upvoted()
	slog.DebugContext(ctx, "comment upvoted", "id", id, "votes", votes)
	return votes, nil
}

func (s *Service) add(ctx context.Context, parentID *string, text, author string) (Comment, error) {
	sanitized, ok := Sanitize(text)
	if !ok {
		return Comment{}, ErrTextRequired
	}

	c := Comment{
		ID:        s.newID(),
		Text:      sanitized,
		Author:    SanitizeAuthor(author),
		Timestamp: s.now().UTC().Truncate(time.Millisecond),
		ParentID:  parentID,
	}
	if err := validate.Struct(c); err != nil {
		return Comment{}, fmt.Errorf("invalid comment: %w", err)
	}

	if err := s.store.Add(ctx, c); err != nil {
		return Comment{}, fmt.Errorf("adding comment: %w", err)
	}

	kind := "comment"
	if parentID != nil {
		kind = "reply"
	}
	metrics.CommentCreated(kind)
	slog.DebugContext(ctx, "comment created", "id", c.ID, "kind", kind)
	return c, nil
}
