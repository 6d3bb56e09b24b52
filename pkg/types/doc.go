// Package types defines the Store interface, inventory entity types,
// the quantity model, and standard error values for the Pantry
// inventory system.
package types
