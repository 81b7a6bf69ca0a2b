package comment

import "strings"

// DefaultAuthor is used when a comment is posted without a usable author.
const DefaultAuthor = "Anonymous"

// sanitizer escapes angle brackets and strips quoting characters.
// This is not an HTML sanitizer; it only blunts the obvious cases.
var sanitizer = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`\`, "",
	"$", "",
	"'", "",
	`"`, "",
)

// Sanitize trims s and escapes or strips unsafe characters.
// It returns false when nothing is left.
func Sanitize(s string) (string, bool) {
	out := sanitizer.Replace(strings.TrimSpace(s))
	return out, out != ""
}

// SanitizeAuthor sanitizes an author name, falling back to DefaultAuthor.
func SanitizeAuthor(s string) string {
	if out, ok := Sanitize(s); ok {
		return out
	}
	return DefaultAuthor
}
