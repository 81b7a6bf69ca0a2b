package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/evcraddock/threads/internal/comment"
)

const (
	// uiPageSize is the number of top-level comments per HTML page.
	uiPageSize = 5
	// maxIndentDepth is the deepest level that is still indented.
	maxIndentDepth = 4
)

// borderColors cycle by depth; each has a matching CSS class in static/style.css.
var borderColors = []string{"blue", "green", "purple", "orange", "red"}

// commentView is a comment prepared for the thread template.
type commentView struct {
	comment.Comment
	Depth    int
	Classes  string
	Page     int
	Children []commentView
}

type indexData struct {
	Comments    []commentView
	CurrentPage int
	TotalPages  int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
}

// newCommentViews lays out a reply tree for rendering starting at depth.
func newCommentViews(comments []comment.Comment, depth, page int) []commentView {
	views := make([]commentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, commentView{
			Comment:  c,
			Depth:    depth,
			Classes:  commentClasses(depth),
			Page:     page,
			Children: newCommentViews(c.Replies, depth+1, page),
		})
	}
	return views
}

// commentClasses picks the border colour, background and indentation for a depth.
// Replies deeper than maxIndentDepth are drawn flush with no coloured border.
func commentClasses(depth int) string {
	classes := []string{"comment"}
	if depth%2 == 0 {
		classes = append(classes, "bg-shaded")
	}
	if depth < maxIndentDepth {
		classes = append(classes,
			"border-"+borderColors[depth%len(borderColors)],
			fmt.Sprintf("indent-%d", depth),
		)
	}
	return strings.Join(classes, " ")
}

// handleIndex renders the threaded comment page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := queryInt(r, "page", 1)
	p, err := s.comments.List(r.Context(), page, uiPageSize)
	if err != nil {
		slog.ErrorContext(r.Context(), "listing comments", "error", err)
		http.Error(w, "Error fetching comments. Please try again later.", http.StatusInternalServerError)
		return
	}

	// Past the last page: send the reader to the last page that has threads.
	if p.TotalPages > 0 && p.CurrentPage > p.TotalPages {
		http.Redirect(w, r, fmt.Sprintf("/?page=%d", p.TotalPages), http.StatusFound)
		return
	}

	s.render(w, "index.html", indexData{
		Comments:    newCommentViews(p.Comments, 0, p.CurrentPage),
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		HasPrev:     p.CurrentPage > 1,
		HasNext:     p.CurrentPage < p.TotalPages,
		PrevPage:    p.CurrentPage - 1,
		NextPage:    p.CurrentPage + 1,
	})
}

// handleUIComments routes the HTML form posts under /ui/comments.
func (s *Server) handleUIComments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/ui/comments")
	path = strings.TrimPrefix(path, "/")

	switch {
	case path == "":
		s.handleCommentPost(w, r)
	case strings.HasSuffix(path, "/reply") && validID(strings.TrimSuffix(path, "/reply")):
		s.handleReplyPost(w, r, strings.TrimSuffix(path, "/reply"))
	case strings.HasSuffix(path, "/upvote") && validID(strings.TrimSuffix(path, "/upvote")):
		s.handleUpvotePost(w, r, strings.TrimSuffix(path, "/upvote"))
	default:
		http.NotFound(w, r)
	}
}

// handleCommentPost adds a top-level comment from the page form.
func (s *Server) handleCommentPost(w http.ResponseWriter, r *http.Request) {
	_, err := s.comments.Create(r.Context(), r.FormValue("text"), r.FormValue("author"))
	if errors.Is(err, comment.ErrTextRequired) {
		http.Error(w, "Comment cannot be empty", http.StatusBadRequest)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "creating comment", "error", err)
		http.Error(w, "Failed to post comment. Please try again later.", http.StatusInternalServerError)
		return
	}
	// New comments are newest, so they land on the first page.
	redirectToPage(w, r, 1)
}

// handleReplyPost adds a reply from a comment's reply form.
func (s *Server) handleReplyPost(w http.ResponseWriter, r *http.Request, parentID string) {
	_, err := s.comments.Reply(r.Context(), parentID, r.FormValue("text"), r.FormValue("author"))
	switch {
	case errors.Is(err, comment.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, comment.ErrTextRequired):
		http.Error(w, "Reply cannot be empty", http.StatusBadRequest)
	case err != nil:
		slog.ErrorContext(r.Context(), "creating reply", "error", err)
		http.Error(w, "Failed to post reply. Please try again later.", http.StatusInternalServerError)
	default:
		redirectToPage(w, r, formPage(r))
	}
}

// handleUpvotePost upvotes a comment from its vote button.
func (s *Server) handleUpvotePost(w http.ResponseWriter, r *http.Request, id string) {
	_, err := s.comments.Upvote(r.Context(), id)
	if errors.Is(err, comment.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "upvoting comment", "error", err)
		http.Error(w, "Failed to upvote", http.StatusInternalServerError)
		return
	}
	redirectToPage(w, r, formPage(r))
}

// render executes a named page template.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
	}
}

// formPage returns the page the form was posted from.
func formPage(r *http.Request) int {
	page, err := strconv.Atoi(r.FormValue("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func redirectToPage(w http.ResponseWriter, r *http.Request, page int) {
	http.Redirect(w, r, fmt.Sprintf("/?page=%d", page), http.StatusSeeOther)
}
