/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package suggest produces "did you mean" candidates for near-miss
// identifiers such as unknown rule types and undeclared config keys.
package suggest

import "github.com/agnivade/levenshtein"

// Closest returns the candidate with the smallest edit distance to input,
// provided the distance is small enough to plausibly be a typo. Ties go to
// the earliest candidate so output stays deterministic.
func Closest(input string, candidates []string) (string, bool) {
	best := ""
	bestDist := -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(input, c)
		if bestDist == -1 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist == -1 || bestDist > maxDistance(input) {
		return "", false
	}
	return best, true
}

// maxDistance scales the typo tolerance with the input length: short names
// only tolerate one edit, longer ones up to three.
func maxDistance(input string) int {
	switch n := len(input); {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
