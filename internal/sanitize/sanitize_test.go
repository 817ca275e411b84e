package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;", EscapeHTML("<script>"))
	assert.Equal(t, "Tom &amp; Jerry", EscapeHTML("Tom & Jerry"))
	assert.Equal(t, "&quot;quoted&quot;", EscapeHTML(`"quoted"`))
	assert.Equal(t, "it&#39;s", EscapeHTML("it's"))
}

// After sanitization no HTML-significant character survives literally.
func TestEscapeHTML_NoLiteralsRemain(t *testing.T) {
	hostile := `<img src=x onerror="alert('&')">`
	out := EscapeHTML(hostile)
	for _, c := range []string{"<", ">", `"`, "'"} {
		assert.NotContains(t, out, c)
	}
	// Every & must be part of an entity, never bare
	assert.NotRegexp(t, `&($|[^a-z#])`, out)
}

func TestEscapeHTML_CleanInputUntouched(t *testing.T) {
	clean := "Kitchen remodel, 200 sq ft, budget 30k"
	assert.Equal(t, clean, EscapeHTML(clean))
}

func TestForEmail(t *testing.T) {
	assert.Equal(t, "Jane", ForEmail("  Jane  "))
	assert.Equal(t, "", ForEmail("   "))
	assert.Equal(t, "&lt;b&gt;", ForEmail(" <b> "))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "line one<br>line two", Message("line one\nline two"))
	assert.Equal(t, "a<br>b", Message("a\r\nb"))
	assert.Equal(t, "&lt;p&gt;x&lt;/p&gt;", Message("<p>x</p>"))
}

func TestURL_AllowedSchemes(t *testing.T) {
	allowed := []string{
		"http://example.com/a.jpg",
		"https://example.com/a.jpg",
		"mailto:office@example.com",
		"tel:+15035550147",
	}
	for _, u := range allowed {
		assert.Equal(t, u, URL("  "+u+"  "), "expected %q to pass", u)
	}
}

func TestURL_RejectsEverythingElse(t *testing.T) {
	rejected := []string{
		"javascript:alert(1)",
		"data:text/html;base64,PHNjcmlwdD4=",
		"//evil.example.com/a.jpg",
		"ftp://example.com/a.jpg",
		"example.com/a.jpg",
		"",
	}
	for _, u := range rejected {
		assert.Equal(t, "", URL(u), "expected %q to be rejected", u)
	}
}

// Non-empty output iff the input starts with one of the four schemes.
func TestURL_AllowListProperty(t *testing.T) {
	inputs := []string{
		"https://a.example/x", "http://b", "mailto:x", "tel:1",
		"HTTPS://upper.example", "javascript:void(0)", "gopher://old",
	}
	for _, in := range inputs {
		trimmed := strings.TrimSpace(in)
		wantKept := strings.HasPrefix(trimmed, "http://") ||
			strings.HasPrefix(trimmed, "https://") ||
			strings.HasPrefix(trimmed, "mailto:") ||
			strings.HasPrefix(trimmed, "tel:")
		if wantKept {
			assert.NotEmpty(t, URL(in))
		} else {
			assert.Empty(t, URL(in))
		}
	}
}
