// Package queue defines message payloads exchanged over the message broker.
package queue

// GenerationCompletedEvent is published when a seating generation run
// finishes.  It carries enough for downstream consumers (notification
// bots, audit logs, print-queue feeders) to act without querying the
// primary database.
type GenerationCompletedEvent struct {
	RunID            uint64   `json:"run_id"`
	Day              string   `json:"day"`
	Rooms            []string `json:"rooms"`
	Students         int      `json:"students"`
	Capacity         int      `json:"capacity"`
	QPCodes          int      `json:"qp_codes"`
	UnmappedSubjects int      `json:"unmapped_subjects"`
	MissingDocuments int      `json:"missing_documents"`
	GeneratedAt      string   `json:"generated_at"`
}
