package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMetadataValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Ramadan Appeal 2025", "Ramadan Appeal 2025"},
		{"control characters stripped", "line1\nline2\tend", "line1line2end"},
		{"null byte stripped", "abc\x00def", "abcdef"},
		{"non-ascii stripped", "café ☕ donation", "caf  donation"},
		{"surrounding whitespace trimmed", "  hello  ", "hello"},
		{"empty stays empty", "", ""},
		{"only control characters", "\r\n\t", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeMetadataValue(tt.input))
		})
	}
}

func TestSanitizeMetadataValueTruncates(t *testing.T) {
	long := strings.Repeat("a", MaxMetadataValueLength+100)
	got := SanitizeMetadataValue(long)
	assert.Len(t, got, MaxMetadataValueLength)
}
