package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IDPrefix is the prefix of every generated item id ("item-1", "item-2", ...).
const IDPrefix = "item-"

// Item is one consumable tracked by the inventory.
// Quantity is stored as free text because some items carry a unit
// suffix ("3 Box"); see Quantity for the parsed form.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Group    string `json:"group"`
}

// Inventory is the whole document: an ordered list of items plus the
// timestamp of the last mutation. It is the sole source of truth; every
// mutation rewrites the full document.
//
// NextID is the persisted id counter. It is optional in the JSON so
// documents written by older tooling still load; EnsureNextID brings it
// forward from the existing ids before use.
type Inventory struct {
	Items       []Item `json:"items"`
	LastUpdated string `json:"lastUpdated"`
	NextID      int    `json:"nextId,omitempty"`
}

// NewInventory returns an empty document with a fresh timestamp.
func NewInventory() Inventory {
	return Inventory{Items: []Item{}, LastUpdated: Timestamp()}
}

// Timestamp renders the current UTC time in the RFC 3339 form used by
// the lastUpdated field.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Touch refreshes the lastUpdated timestamp.
func (inv *Inventory) Touch() {
	inv.LastUpdated = Timestamp()
}

// Find returns a pointer to the item with the given id, or nil.
func (inv *Inventory) Find(id string) *Item {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			return &inv.Items[i]
		}
	}
	return nil
}

// Remove deletes the item with the given id, preserving order.
// Returns ErrItemNotFound if no item matches.
func (inv *Inventory) Remove(id string) error {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// EnsureNextID makes the persisted counter at least one past the
// largest numeric suffix currently in use. Documents seeded by the
// importer carry the counter already; documents from older tooling get
// it recomputed here, so ids {item-1, item-3} yield item-4 next.
func (inv *Inventory) EnsureNextID() {
	maxID := 0
	for _, item := range inv.Items {
		rest, ok := strings.CutPrefix(item.ID, IDPrefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > maxID {
			maxID = n
		}
	}
	if inv.NextID <= maxID {
		inv.NextID = maxID + 1
	}
}

// NewID consumes and returns the next item id.
func (inv *Inventory) NewID() string {
	inv.EnsureNextID()
	id := fmt.Sprintf("%s%d", IDPrefix, inv.NextID)
	inv.NextID++
	return id
}
