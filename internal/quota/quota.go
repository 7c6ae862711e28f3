package quota

import dbpkg "reviewpulse/internal/db"

// Status reports a client's standing against the usage ceiling.
// It is derived on demand and never stored.
type Status struct {
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
	Used      int  `json:"used"`
	Max       int  `json:"max"`
}

// Evaluate computes the quota decision for a usage record. A nil record
// (identity never seen) is treated the same as zero usage: fully allowed.
// Remaining clamps at zero even if usage somehow exceeds the ceiling.
func Evaluate(usage *dbpkg.UserUsage, max int) Status {
	if usage == nil {
		return Status{Allowed: true, Remaining: max, Used: 0, Max: max}
	}

	remaining := max - usage.UsageCount
	if remaining < 0 {
		remaining = 0
	}

	return Status{
		Allowed:   usage.UsageCount < max,
		Remaining: remaining,
		Used:      usage.UsageCount,
		Max:       max,
	}
}
