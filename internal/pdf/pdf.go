// Package pdf wraps the PDF engine behind a small capability surface:
// a Document with a page count and raw bytes, and Merge, which
// concatenates ordered documents into one.  Callers never touch the
// engine directly, so swapping it out stays a one-file change.
package pdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Document is an immutable in-memory PDF.
type Document interface {
	// Pages returns the number of pages in the document.
	Pages() int
	// Bytes returns the serialized document.  Callers must not modify
	// the returned slice.
	Bytes() []byte
}

// MergeFunc concatenates documents in order into a single document.
// Page order within each input is preserved; nothing is deduplicated.
type MergeFunc func(docs []Document) (Document, error)

type document struct {
	data  []byte
	pages int
}

func (d *document) Pages() int    { return d.pages }
func (d *document) Bytes() []byte { return d.data }

// Load validates raw PDF bytes and returns them as a Document.  The
// page count is resolved once here so later merges never re-parse just
// to count.
func Load(data []byte) (Document, error) {
	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return &document{data: data, pages: n}, nil
}

// Stored wraps bytes whose page count is already known, typically a
// document read back from storage.  No validation is performed.
func Stored(data []byte, pages int) Document {
	return &document{data: data, pages: pages}
}

// Merge concatenates the given documents into one.  At least one
// document is required.
func Merge(docs []Document) (Document, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("merge: no documents")
	}
	readers := make([]io.ReadSeeker, len(docs))
	pages := 0
	for i, d := range docs {
		readers[i] = bytes.NewReader(d.Bytes())
		pages += d.Pages()
	}
	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, nil); err != nil {
		return nil, fmt.Errorf("merge pdfs: %w", err)
	}
	return &document{data: buf.Bytes(), pages: pages}, nil
}
