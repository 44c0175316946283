package types

import "strings"

// Metadata is the string-to-string payload attached to processor requests
// for downstream reconciliation.
type Metadata map[string]string

// MaxMetadataValueLength is the processor's per-value ceiling.
const MaxMetadataValueLength = 500

// SanitizeMetadataValue strips every character outside the printable ASCII
// range and truncates to the processor ceiling. Donor-supplied free text
// (names, messages) must never smuggle control characters into billing
// records or exceed processor limits.
func SanitizeMetadataValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x20 && r <= 0x7e {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > MaxMetadataValueLength {
		out = out[:MaxMetadataValueLength]
	}
	return strings.TrimSpace(out)
}
