package movieinfo

import (
	"fmt"
	"strings"
)

// MergePolicy decides which fields of a stored record an update overwrites.
type MergePolicy string

const (
	// MergeNameAndCast overwrites name and cast only. Year and release date
	// keep their stored values whatever the caller sent.
	MergeNameAndCast MergePolicy = "compat"

	// MergeAll overwrites every mutable field from the caller's record.
	MergeAll MergePolicy = "full"
)

// ParseMergePolicy maps a configuration value to a MergePolicy. An empty
// value selects MergeNameAndCast.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch MergePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MergeNameAndCast:
		return MergeNameAndCast, nil
	case MergeAll:
		return MergeAll, nil
	default:
		return "", fmt.Errorf("movieinfo: unknown merge policy %q", s)
	}
}

// Merge returns stored with the fields covered by the policy replaced by
// the values in incoming. The identifier is always kept.
func (p MergePolicy) Merge(stored, incoming MovieInfo) MovieInfo {
	merged := stored
	merged.Name = incoming.Name
	merged.Cast = append([]string(nil), incoming.Cast...)

	if p == MergeAll {
		merged.Year = incoming.Year
		merged.ReleaseDate = incoming.ReleaseDate
	}

	return merged
}

// Validate checks only the fields the policy will write.
func (p MergePolicy) Validate(incoming MovieInfo) error {
	if p == MergeAll {
		return incoming.Validate()
	}
	return invalid(nameViolations(incoming), castViolations(incoming))
}
