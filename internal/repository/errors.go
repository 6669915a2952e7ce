// Package repository holds the data access layer.  Sentinel errors
// defined here let handlers map failure scenarios to HTTP statuses
// without inspecting driver error strings: ErrNotFound becomes a 404,
// ErrNoDataset a 409 (a generation was requested before the required
// tables were uploaded).
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrNoDataset is returned when a required dataset (rooms, roster,
// QP mapping) has not been uploaded yet.
var ErrNoDataset = errors.New("dataset not uploaded")
