package services

import "strings"

// Status is the single derived hiring decision for a (student, session) pair.
type Status string

const (
	StatusSelected   Status = "selected"
	StatusRejected   Status = "rejected"
	StatusWaitlisted Status = "waitlisted"
	StatusNone       Status = "none"
)

// ClassifyVerdicts maps an ordered sequence of raw verdict strings to a
// Status. The most recent verdict is authoritative: an interviewer can
// override an earlier rejection. When the latest verdict is free text the
// classifier doesn't recognize, it falls back to scanning the whole sequence
// so earlier signal isn't discarded. Matching is substring-based and
// case-insensitive.
func ClassifyVerdicts(verdicts []string) Status {
	norm := make([]string, 0, len(verdicts))
	for _, v := range verdicts {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			norm = append(norm, v)
		}
	}
	if len(norm) == 0 {
		return StatusNone
	}

	if st, ok := matchVerdict(norm[len(norm)-1]); ok {
		return st
	}

	// Fallback precedence over the entire sequence, fixed order.
	for _, v := range norm {
		if strings.Contains(v, "selected") {
			return StatusSelected
		}
	}
	for _, v := range norm {
		if strings.Contains(v, "reject") {
			return StatusRejected
		}
	}
	for _, v := range norm {
		if strings.Contains(v, "hold") || strings.Contains(v, "maybe") || strings.Contains(v, "wait") {
			return StatusWaitlisted
		}
	}
	return StatusNone
}

func matchVerdict(v string) (Status, bool) {
	switch {
	case strings.Contains(v, "selected"):
		return StatusSelected, true
	case strings.Contains(v, "reject"):
		return StatusRejected, true
	case strings.Contains(v, "hold"), strings.Contains(v, "maybe"), strings.Contains(v, "wait"):
		return StatusWaitlisted, true
	}
	return StatusNone, false
}
