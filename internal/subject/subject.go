// Package subject owns the single matching boundary for subject names.
// Every comparison between a student's subject and a QP-mapping key goes
// through Normalize on both sides, so casing or stray whitespace in
// either source file can never cause a spurious mismatch.
package subject

import "strings"

// Normalize returns the upper-cased, whitespace-trimmed form of a
// subject name.  An input that is empty after trimming normalizes to
// the empty string, which downstream code treats as "no subject".
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// SplitNormalize splits a raw day-column cell into its normalized
// subject entries.  Cells may carry several comma-separated subjects
// when a student sits more than one paper in a session; blank entries
// are dropped.  A blank cell yields nil.
func SplitNormalize(cell string) []string {
	var out []string
	for _, part := range strings.Split(cell, ",") {
		if s := Normalize(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
