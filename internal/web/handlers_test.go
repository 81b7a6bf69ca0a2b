package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/evcraddock/threads/internal/comment"
)

func formRequest(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func getPage(t *testing.T, srv *Server, path string) string {
	t.Helper()
	r := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: status = %d, want %d", path, w.Code, http.StatusOK)
	}
	return w.Body.String()
}

func TestIndexEmpty(t *testing.T) {
	srv := testServer(t)

	body := getPage(t, srv, "/")
	if !strings.Contains(body, "No comments yet. Be the first to comment!") {
		t.Error("expected empty message")
	}
	if strings.Contains(body, `class="pager"`) {
		t.Error("expected no pager with a single page")
	}
}

func TestIndexRendersThread(t *testing.T) {
	srv, svc := testServerWithStore(t, comment.NewMemoryStore())
	ctx := context.Background()

	root, err := svc.Create(ctx, "root comment", "Alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Reply(ctx, root.ID, "nested reply", "Bob"); err != nil {
		t.Fatalf("reply: %v", err)
	}

	body := getPage(t, srv, "/")
	for _, want := range []string{
		"root comment",
		"nested reply",
		"Alice",
		"Bob",
		`action="/ui/comments/` + root.ID + `/reply"`,
		"comment bg-shaded border-blue indent-0",
		"comment border-green indent-1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in page", want)
		}
	}
	if strings.Index(body, "root comment") > strings.Index(body, "nested reply") {
		t.Error("expected reply to render after its parent")
	}
}

func TestIndexNotFound(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestIndexPagination(t *testing.T) {
	srv, svc := testServerWithStore(t, comment.NewMemoryStore())
	for i := 0; i < uiPageSize+2; i++ {
		if _, err := svc.Create(context.Background(), fmt.Sprintf("comment %d", i), "User"); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	first := getPage(t, srv, "/")
	if !strings.Contains(first, "Page 1 of 2") {
		t.Error("expected page 1 of 2")
	}
	if !strings.Contains(first, `href="/?page=2"`) {
		t.Error("expected next link")
	}

	second := getPage(t, srv, "/?page=2")
	if !strings.Contains(second, "Page 2 of 2") {
		t.Error("expected page 2 of 2")
	}
	if strings.Count(second, "<article") != 2 {
		t.Errorf("got %d comments on page 2, want 2", strings.Count(second, "<article"))
	}
}

func TestUICommentPost(t *testing.T) {
	srv := testServer(t)

	w := formRequest(t, srv, "/ui/comments", url.Values{"text": {"from the form"}, "author": {"User"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/?page=1" {
		t.Errorf("location = %q, want /?page=1", loc)
	}

	if body := getPage(t, srv, "/"); !strings.Contains(body, "from the form") {
		t.Error("expected posted comment on page")
	}
}

func TestUICommentPostEmpty(t *testing.T) {
	srv := testServer(t)

	w := formRequest(t, srv, "/ui/comments", url.Values{"text": {"  "}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "Comment cannot be empty") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestUIReplyPost(t *testing.T) {
	srv, svc := testServerWithStore(t, comment.NewMemoryStore())
	parent, err := svc.Create(context.Background(), "parent", "User")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w := formRequest(t, srv, "/ui/comments/"+parent.ID+"/reply", url.Values{"text": {"a reply"}, "page": {"3"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/?page=3" {
		t.Errorf("location = %q, want /?page=3", loc)
	}

	got, err := svc.Get(context.Background(), parent.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Replies) != 1 || got.Replies[0].Text != "a reply" {
		t.Errorf("replies = %+v", got.Replies)
	}
}

func TestUIReplyPostErrors(t *testing.T) {
	srv, svc := testServerWithStore(t, comment.NewMemoryStore())
	parent, err := svc.Create(context.Background(), "parent", "User")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		name string
		path string
		text string
		want int
	}{
		{"missing parent", "/ui/comments/missing/reply", "text", http.StatusNotFound},
		{"empty reply", "/ui/comments/" + parent.ID + "/reply", "", http.StatusBadRequest},
		{"unknown action", "/ui/comments/" + parent.ID + "/delete", "text", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := formRequest(t, srv, tt.path, url.Values{"text": {tt.text}})
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestUIUpvotePost(t *testing.T) {
	srv, svc := testServerWithStore(t, comment.NewMemoryStore())
	c, err := svc.Create(context.Background(), "vote", "User")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w := formRequest(t, srv, "/ui/comments/"+c.ID+"/upvote", url.Values{"page": {"2"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/?page=2" {
		t.Errorf("location = %q, want /?page=2", loc)
	}

	got, err := svc.Get(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Votes != 1 {
		t.Errorf("votes = %d, want 1", got.Votes)
	}

	w = formRequest(t, srv, "/ui/comments/missing/upvote", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing: status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestUICommentsMethodNotAllowed(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/ui/comments", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestCommentClasses(t *testing.T) {
	tests := []struct {
		depth int
		want  string
	}{
		{0, "comment bg-shaded border-blue indent-0"},
		{1, "comment border-green indent-1"},
		{2, "comment bg-shaded border-purple indent-2"},
		{3, "comment border-orange indent-3"},
		{4, "comment bg-shaded"},
		{5, "comment"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.depth), func(t *testing.T) {
			if got := commentClasses(tt.depth); got != tt.want {
				t.Errorf("commentClasses(%d) = %q, want %q", tt.depth, got, tt.want)
			}
		})
	}
}

func TestStaticAssets(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/static/style.css", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), ".border-blue") {
		t.Error("expected border classes in stylesheet")
	}
}

func TestIndexPastLastPageRedirects(t *testing.T) {
	srv, svc := testServerWithStore(t, comment.NewMemoryStore())
	for i := 0; i < uiPageSize+1; i++ {
		if _, err := svc.Create(context.Background(), fmt.Sprintf("comment %d", i), "User"); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	r := httptest.NewRequest("GET", "/?page=9", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != "/?page=2" {
		t.Errorf("location = %q, want /?page=2", loc)
	}

	body := getPage(t, srv, "/?page=2")
	if strings.Contains(body, "No comments yet") {
		t.Error("last page should not claim there are no comments")
	}
}
