package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/evcraddock/threads/internal/comment"
)

// maxIndentDepth matches the web view: deeper replies stop indenting.
const maxIndentDepth = 4

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printThread prints comments and their replies as an indented tree.
func printThread(w io.Writer, comments []comment.Comment, depth int) {
	for _, c := range comments {
		printComment(w, c, depth)
		printThread(w, c.Replies, depth+1)
	}
}

// printComment prints one comment without its replies.
func printComment(w io.Writer, c comment.Comment, depth int) {
	indent := strings.Repeat("  ", min(depth, maxIndentDepth))
	fmt.Fprintf(w, "%s%s %s (%s) [%s]\n", indent, formatVotes(c.Votes), c.Author,
		c.Timestamp.Local().Format("2006-01-02 15:04"), c.ID)
	for _, line := range strings.Split(c.Text, "\n") {
		fmt.Fprintf(w, "%s  %s\n", indent, line)
	}
}

// printPage prints a page of threads with a footer.
func printPage(w io.Writer, p *comment.Page) {
	if p.TotalComments == 0 {
		fmt.Fprintln(w, "No comments yet.")
		return
	}
	if len(p.Comments) == 0 {
		fmt.Fprintf(w, "No comments on page %d.\n", p.CurrentPage)
	}

	printThread(w, p.Comments, 0)
	fmt.Fprintf(w, "\nPage %d of %d (%d threads)\n", p.CurrentPage, p.TotalPages, p.TotalComments)
}

// formatVotes renders a vote count with an up arrow.
func formatVotes(votes int) string {
	return fmt.Sprintf("▲%d", votes)
}
