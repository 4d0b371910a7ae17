package pipeline

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "short", in: "42", n: 5, want: "42"},
		{name: "ascii", in: "abcdef", n: 3, want: "abc..."},
		{name: "multi-byte", in: "Größe über", n: 3, want: "Grö..."},
		{name: "emoji", in: "🌱🌱🌱", n: 2, want: "🌱🌱..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestGenerationParseError_KeepsValidUTF8(t *testing.T) {
	raw := strings.Repeat("é", 300)
	err := &GenerationParseError{Task: "score", Raw: raw}

	assert.True(t, utf8.ValidString(err.Error()))
	assert.Contains(t, err.Error(), strings.Repeat("é", 200)+"...")
}
