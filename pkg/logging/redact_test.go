package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
		{name: "no at sign", input: "not-an-email", want: "not-an-email"},
		{name: "at sign at start", input: "@example.com", want: "@example.com"},
		{name: "at sign at end", input: "user@", want: "user@"},
		{name: "short local part", input: "ab@example.com", want: "ab@example.com"},
		{name: "regular email", input: "john.doe@example.com", want: "jo****@example.com"},
		{name: "trims whitespace", input: "  john.doe@example.com  ", want: "jo****@example.com"},
		{name: "unicode local part", input: "żółć@example.com", want: "żó****@example.com"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, RedactEmail(tt.input))
		})
	}
}
