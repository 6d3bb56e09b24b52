package types

import "errors"

// Store errors.
var (
	// ErrItemNotFound is returned when no item matches the requested id.
	ErrItemNotFound = errors.New("item not found")

	// ErrDocumentMissing is returned by Load when the backing document
	// does not exist yet. Readers treat this as an empty inventory;
	// mutating operations on specific items treat it as not found.
	ErrDocumentMissing = errors.New("inventory document not found")
)

// Store is the single serialization point for the inventory document.
// All access is whole-document: Load returns a snapshot, Mutate runs a
// read-modify-write cycle under a single-writer boundary.
type Store interface {
	// Load returns the current document. Returns ErrDocumentMissing if
	// no document has been written yet.
	Load() (Inventory, error)

	// Mutate loads the document (an empty one if missing), applies fn,
	// and persists the result with a refreshed lastUpdated timestamp.
	// If fn returns an error the document is not written and the error
	// is returned unchanged.
	Mutate(fn func(*Inventory) error) (Inventory, error)

	// Replace overwrites the document wholesale. Used by the importer.
	Replace(inv Inventory) error

	// Close releases backend resources.
	Close() error
}
