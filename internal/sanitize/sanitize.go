// Package sanitize prepares untrusted text for interpolation into HTML
// email bodies. Output of these functions is safe to splice directly into
// a static template without further escaping.
package sanitize

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML replaces the five HTML-significant characters with their
// entity equivalents.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// ForEmail trims and escapes a single-line field. Absent input yields the
// empty string.
func ForEmail(s string) string {
	return EscapeHTML(strings.TrimSpace(s))
}

// Message trims and escapes a multi-line field, converting newlines to
// <br> so the text renders as entered.
func Message(s string) string {
	escaped := ForEmail(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br>")
}

// URL returns the trimmed input only when it carries one of the permitted
// schemes; anything else (javascript:, data:, scheme-relative, malformed)
// collapses to the empty string.
func URL(s string) string {
	trimmed := strings.TrimSpace(s)
	for _, scheme := range []string{"http://", "https://", "mailto:", "tel:"} {
		if strings.HasPrefix(trimmed, scheme) {
			return trimmed
		}
	}
	return ""
}
