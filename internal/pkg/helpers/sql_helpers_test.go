package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "golang", "golang"},
		{"percent", "100% complete", `100\% complete`},
		{"underscore", "intro_to_go", `intro\_to\_go`},
		{"backslash", `a\b`, `a\\b`},
		{"everything", `\%_`, `\\\%\_`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLike(tt.in))
		})
	}
}
