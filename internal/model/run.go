package model

import "time"

// GenerationRun is the complete immutable output of one seating
// generation: the assignment sequence, the derived QP requirements and
// every warning collected along the way.  A new run supersedes the
// previous one; nothing inside is ever patched in place.
type GenerationRun struct {
	ID           uint64                   `json:"id"`
	Day          string                   `json:"day"`
	Rooms        []string                 `json:"rooms"`
	Assignments  []Assignment             `json:"assignments"`
	Requirements []QPRequirement          `json:"requirements"`
	GrandTotals  []CodeTotal              `json:"grand_totals"`
	Summaries    []RoomSummary            `json:"summaries"`
	Unmapped     []UnmappedSubjectWarning `json:"unmapped_subjects"`
	MissingDocs  []MissingDocWarning      `json:"missing_documents"`
	CreatedAt    time.Time                `json:"created_at"`
}
