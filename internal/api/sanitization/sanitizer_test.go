package sanitization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Hello there", "Hello there"},
		{"tags removed", "<b>Ada</b> <i>Lovelace</i>", "Ada Lovelace"},
		{"script content dropped", "<script>alert(1)</script>", ""},
		{"empty element", "<i></i>", ""},
		{"entities decoded", "Fish &amp; chips", "Fish & chips"},
		{"line breaks kept", "line one\nline two", "line one\nline two"},
		{"surrounding space trimmed", "  <p>hi</p>  ", "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.input))
		})
	}
}

func TestSanitizer(t *testing.T) {
	assert.Nil(t, Sanitizer(false))

	fn := Sanitizer(true)
	if assert.NotNil(t, fn) {
		assert.Equal(t, "x", fn("<em>x</em>"))
	}
}
