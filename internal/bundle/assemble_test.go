package bundle

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/prajwalrk/seatmaster/internal/model"
	"github.com/prajwalrk/seatmaster/internal/pdf"
)

// fakeDoc stands in for a real PDF so tests stay off the engine.
type fakeDoc struct {
	name  string
	pages int
}

func (d fakeDoc) Pages() int    { return d.pages }
func (d fakeDoc) Bytes() []byte { return []byte(d.name) }

// fakeMerge concatenates the fake docs' names so page order is visible
// in the output bytes.
func fakeMerge(docs []pdf.Document) (pdf.Document, error) {
	var buf bytes.Buffer
	pages := 0
	for _, d := range docs {
		buf.Write(d.Bytes())
		buf.WriteByte('|')
		pages += d.Pages()
	}
	return fakeDoc{name: buf.String(), pages: pages}, nil
}

func docSet(docs ...fakeDoc) DocSet {
	s := make(DocSet, len(docs))
	for _, d := range docs {
		s[d.name] = d
	}
	return s
}

func req(room, code string, count int) model.QPRequirement {
	seats := make([]model.SeatSlot, count)
	for i := range seats {
		seats[i] = model.SeatSlot{Room: room, Bench: i + 1, Side: model.SideLeft}
	}
	return model.QPRequirement{Room: room, QPCode: code, Seats: seats, Count: count}
}

func TestAssembleRoomRepeatsPerSeat(t *testing.T) {
	a := &Assembler{Merge: fakeMerge}
	reqs := []model.QPRequirement{req("A", "QP01", 2), req("A", "QP02", 1)}
	lookup := docSet(fakeDoc{name: "QP01", pages: 4}, fakeDoc{name: "QP02", pages: 2})

	b, missing, err := a.AssembleRoom("A", reqs, lookup)
	if err != nil {
		t.Fatalf("AssembleRoom: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("unexpected warnings: %+v", missing)
	}
	// One copy per seat, codes in requirement order.
	if got, want := string(b.PDF), "QP01|QP01|QP02|"; got != want {
		t.Fatalf("merge order %q, want %q", got, want)
	}
	if b.Pages != 10 {
		t.Fatalf("expected 10 pages (2*4 + 1*2), got %d", b.Pages)
	}
}

func TestAssembleRoomCaseInsensitiveLookup(t *testing.T) {
	a := &Assembler{Merge: fakeMerge}
	reqs := []model.QPRequirement{{Room: "A", QPCode: "qp01 ", Count: 1}}
	b, missing, err := a.AssembleRoom("A", reqs, docSet(fakeDoc{name: "QP01", pages: 1}))
	if err != nil {
		t.Fatalf("AssembleRoom: %v", err)
	}
	if b == nil || len(missing) != 0 {
		t.Fatalf("case-variant code did not match: bundle=%v missing=%+v", b, missing)
	}
}

func TestAssembleRoomMissingDocument(t *testing.T) {
	a := &Assembler{Merge: fakeMerge}
	reqs := []model.QPRequirement{req("A", "QP01", 1), req("A", "QP99", 3)}
	b, missing, err := a.AssembleRoom("A", reqs, docSet(fakeDoc{name: "QP01", pages: 2}))
	if err != nil {
		t.Fatalf("AssembleRoom: %v", err)
	}
	want := []model.MissingDocWarning{{QPCode: "QP99", Room: "A"}}
	if !reflect.DeepEqual(missing, want) {
		t.Fatalf("warnings mismatch: %+v", missing)
	}
	// The matched code still merges; the missing one is just skipped.
	if b == nil || string(b.PDF) != "QP01|" {
		t.Fatalf("expected bundle with remaining code, got %+v", b)
	}
}

func TestAssembleRoomNothingMatches(t *testing.T) {
	a := &Assembler{Merge: fakeMerge}
	b, missing, err := a.AssembleRoom("A", []model.QPRequirement{req("A", "QP99", 1)}, docSet())
	if err != nil {
		t.Fatalf("AssembleRoom: %v", err)
	}
	if b != nil {
		t.Fatalf("expected nil bundle, got %+v", b)
	}
	if len(missing) != 1 {
		t.Fatalf("expected one warning, got %+v", missing)
	}
}

func TestAssembleAllIsIndependentPerRoom(t *testing.T) {
	a := &Assembler{Merge: fakeMerge}
	reqs := []model.QPRequirement{
		req("A", "QP01", 1),
		req("B", "QP02", 2),
		req("C", "QP99", 1), // no document uploaded
	}
	lookup := docSet(fakeDoc{name: "QP01", pages: 1}, fakeDoc{name: "QP02", pages: 3})

	bundles, missing, err := a.AssembleAll(reqs, lookup)
	if err != nil {
		t.Fatalf("AssembleAll: %v", err)
	}
	if len(bundles) != 2 {
		t.Fatalf("expected bundles for A and B, got %v", bundles)
	}
	if bundles["A"].Pages != 1 || bundles["B"].Pages != 6 {
		t.Fatalf("page counts wrong: A=%d B=%d", bundles["A"].Pages, bundles["B"].Pages)
	}
	want := []model.MissingDocWarning{{QPCode: "QP99", Room: "C"}}
	if !reflect.DeepEqual(missing, want) {
		t.Fatalf("warnings mismatch: %+v", missing)
	}
}
