// Package match scores newly found items against open lost listings and
// records a notification for every pair similar enough to surface.
package match

import (
	"github.com/agnivade/levenshtein"
)

// PartialRatio measures how well the shorter of two strings matches as a
// substring-like fragment of the longer one, expressed 0-100. The shorter
// string is slid across every equal-length window of the longer one and the
// best normalized edit-distance score wins. Deterministic for identical
// inputs and symmetric by construction.
//
// Empty input on either side scores 0: an absent description carries no
// signal, so it must never push a pair over the match threshold.
func PartialRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	n := len(shorter)
	best := 0
	for i := 0; i+n <= len(longer); i++ {
		dist := levenshtein.ComputeDistance(string(shorter), string(longer[i:i+n]))
		score := (n - dist) * 100 / n
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}
