// Package match provides the case-insensitive text predicates shared by the
// campaign filter and the lead scorer.
package match

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold returns the Unicode case-folded form of s. A fresh Caser is used per
// call because cases.Caser is not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Contains reports whether sub is a case-insensitive substring of s.
// An empty sub never matches.
func Contains(s, sub string) bool {
	if sub == "" {
		return false
	}
	return strings.Contains(fold(s), fold(sub))
}

// Equal reports whether a and b are equal under case folding.
func Equal(a, b string) bool {
	return fold(a) == fold(b)
}

// ContainsAny reports whether any of subs is a case-insensitive substring of s.
func ContainsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if Contains(s, sub) {
			return true
		}
	}
	return false
}

// AnyContains reports whether sub is a case-insensitive substring of any of texts.
func AnyContains(texts []string, sub string) bool {
	for _, t := range texts {
		if Contains(t, sub) {
			return true
		}
	}
	return false
}

// HasEqual reports whether values contains v under case folding.
func HasEqual(values []string, v string) bool {
	for _, candidate := range values {
		if Equal(candidate, v) {
			return true
		}
	}
	return false
}

// Overlap returns the entries of wanted that appear (case-insensitively equal)
// in have, in the order of wanted. Duplicate entries in wanted are reported once.
func Overlap(wanted, have []string) []string {
	var out []string
	seen := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		key := fold(strings.TrimSpace(w))
		if key == "" || seen[key] {
			continue
		}
		if HasEqual(have, strings.TrimSpace(w)) {
			seen[key] = true
			out = append(out, w)
		}
	}
	return out
}
