package model

// QPRequirement lists which seats in a room need a given question
// paper. Seats keep the canonical slot order from the assignment
// sequence; Count is always len(Seats) and is carried explicitly so
// callers can show totals without walking the seat list.
type QPRequirement struct {
	Room   string     `json:"room"`
	QPCode string     `json:"qp_code"`
	Seats  []SeatSlot `json:"seats"`
	Count  int        `json:"count"`
}

// CodeTotal is the grand total of one QP code across all rooms.
type CodeTotal struct {
	QPCode string `json:"qp_code"`
	Count  int    `json:"count"`
}

// RoomSummary aggregates one room for the summary report: how many
// students sit there and which distinct subjects appear, sorted.
type RoomSummary struct {
	Room     string   `json:"room"`
	Students int      `json:"students"`
	Subjects []string `json:"subjects"`
}

// UnmappedSubjectWarning flags a seated subject with no QP mapping.
// The seat is excluded from requirement totals but the run continues.
type UnmappedSubjectWarning struct {
	Subject string `json:"subject"`
	Room    string `json:"room"`
}

// MissingDocWarning flags a required QP code with no uploaded PDF.
// The code's pages are omitted from the room bundle; other codes and
// rooms proceed.
type MissingDocWarning struct {
	QPCode string `json:"qp_code"`
	Room   string `json:"room"`
}

// RoomBundle is the merged question-paper PDF for one room.
type RoomBundle struct {
	Room  string `json:"room"`
	PDF   []byte `json:"-"`
	Pages int    `json:"pages"`
}
