package types

import "time"

// Clock returns the current instant. Billing and eligibility calculations
// never read the system clock directly; the clock is injected so "today"
// is deterministic in tests.
type Clock func() time.Time
