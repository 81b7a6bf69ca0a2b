package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/evcraddock/threads/internal/comment"
)

// commentRequest is the JSON body for creating a comment or reply.
type commentRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// handleAPIComments routes /comments requests.
func (s *Server) handleAPIComments(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/comments")
	path = strings.TrimPrefix(path, "/")

	// /comments: list or create
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			s.apiListComments(w, r)
		case http.MethodPost:
			s.apiCreateComment(w, r)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /comments/{id}/reply
	if id, ok := strings.CutSuffix(path, "/reply"); ok && validID(id) {
		if r.Method != http.MethodPost {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiReply(w, r, id)
		return
	}

	// /comments/{id}/upvote
	if id, ok := strings.CutSuffix(path, "/upvote"); ok && validID(id) {
		if r.Method != http.MethodPost {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiUpvote(w, r, id)
		return
	}

	// /comments/{id}
	if !validID(path) {
		apiError(w, "not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.apiGetComment(w, r, path)
}

// apiListComments returns a page of top-level comments with nested replies.
func (s *Server) apiListComments(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := min(queryInt(r, "limit", s.cfg.DefaultLimit), s.cfg.MaxLimit)

	p, err := s.comments.List(r.Context(), page, limit)
	if err != nil {
		s.internalError(w, r, "listing comments", err)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

// apiGetComment returns a single comment with its reply tree.
func (s *Server) apiGetComment(w http.ResponseWriter, r *http.Request, id string) {
	c, err := s.comments.Get(r.Context(), id)
	if errors.Is(err, comment.ErrNotFound) {
		apiError(w, "Comment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.internalError(w, r, "loading comment", err)
		return
	}
	apiJSON(w, c, http.StatusOK)
}

// apiCreateComment adds a top-level comment.
func (s *Server) apiCreateComment(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCommentRequest(w, r)
	if !ok {
		return
	}

	c, err := s.comments.Create(r.Context(), req.Text, req.Author)
	if errors.Is(err, comment.ErrTextRequired) {
		apiError(w, "Comment text is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.internalError(w, r, "creating comment", err)
		return
	}
	apiJSON(w, c, http.StatusCreated)
}

// apiReply adds a reply to an existing comment.
func (s *Server) apiReply(w http.ResponseWriter, r *http.Request, parentID string) {
	req, ok := decodeCommentRequest(w, r)
	if !ok {
		return
	}

	c, err := s.comments.Reply(r.Context(), parentID, req.Text, req.Author)
	switch {
	case errors.Is(err, comment.ErrNotFound):
		apiError(w, "Parent comment not found", http.StatusNotFound)
	case errors.Is(err, comment.ErrTextRequired):
		apiError(w, "Reply text is required", http.StatusBadRequest)
	case err != nil:
		s.internalError(w, r, "creating reply", err)
	default:
		apiJSON(w, c, http.StatusCreated)
	}
}

// apiUpvote increments a comment's votes.
func (s *Server) apiUpvote(w http.ResponseWriter, r *http.Request, id string) {
	votes, err := s.comments.Upvote(r.Context(), id)
	if errors.Is(err, comment.ErrNotFound) {
		apiError(w, "Comment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.internalError(w, r, "upvoting comment", err)
		return
	}
	apiJSON(w, map[string]int{"votes": votes}, http.StatusOK)
}

// internalError logs err and writes a generic 500.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.ErrorContext(r.Context(), op, "error", err)
	apiError(w, "internal server error", http.StatusInternalServerError)
}

// decodeCommentRequest reads the JSON body. An empty body decodes to an
// empty request so that the missing text is reported as such.
func decodeCommentRequest(w http.ResponseWriter, r *http.Request) (commentRequest, bool) {
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return commentRequest{}, false
	}
	return req, true
}

// queryInt parses a positive integer query parameter, returning fallback
// when it is missing, malformed or below 1. The whole value must be numeric:
// "2abc" is malformed, not 2.
func queryInt(r *http.Request, key string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// validID reports whether id is a single non-empty path segment.
func validID(id string) bool {
	return id != "" && !strings.Contains(id, "/")
}
