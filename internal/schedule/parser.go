package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"venturecast/internal/domain"
)

var (
	durationRe = regexp.MustCompile(`^(\d+)([dwmy])$`)
	offsetRe   = regexp.MustCompile(`([+-]\d+[dwmy])$`)
)

// ParseDuration parses a duration string of the form "<integer><unit>" where
// unit is d, w, m or y. An empty string means ongoing and returns (nil, nil).
// An unparseable string is an error; the caller decides whether that means
// ongoing (scheduling) or rejection (import validation).
func ParseDuration(s string) (*domain.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, nil
	}
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid duration %q (expected <integer><d|w|m|y>)", s)
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return &domain.Duration{Value: v, Unit: domain.DurationUnit(m[2])}, nil
}

// ParseDependencyRef parses "<taskId>" with an optional anchor suffix
// ("s" for start, "e" for end; default end) and an optional signed duration
// offset, e.g. "t1", "t4s", "t2e+3m", "t7-2w".
//
// The reference is parsed against the known task-id set: the trailing offset
// is stripped first, then the remainder is matched as an exact id before a
// trailing anchor character is peeled off. An id that itself ends in "s" or
// "e" therefore always wins over the anchor reading. An unknown id is
// returned alongside the error so the caller can report it and continue.
func ParseDependencyRef(raw string, knownIDs map[string]bool) (domain.DependencyRef, error) {
	ref := domain.DependencyRef{Anchor: domain.AnchorEnd, Raw: raw}

	s := strings.TrimSpace(raw)
	if s == "" {
		return ref, fmt.Errorf("empty dependency reference")
	}

	if m := offsetRe.FindString(s); m != "" {
		d, err := ParseDuration(m[1:])
		if err != nil {
			return ref, fmt.Errorf("dependency %q: %w", raw, err)
		}
		ref.OffsetMonths = d.Months()
		if m[0] == '-' {
			ref.OffsetMonths = -ref.OffsetMonths
		}
		s = s[:len(s)-len(m)]
	}

	if knownIDs[s] {
		ref.TaskID = s
		return ref, nil
	}
	if n := len(s); n > 1 {
		base, last := s[:n-1], s[n-1]
		if (last == 's' || last == 'e') && knownIDs[base] {
			ref.TaskID = base
			if last == 's' {
				ref.Anchor = domain.AnchorStart
			}
			return ref, nil
		}
	}

	ref.TaskID = s
	return ref, fmt.Errorf("dependency %q references unknown task %q", raw, s)
}
