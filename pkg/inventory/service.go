// Package inventory implements the transport-free inventory service:
// every operation the HTTP API exposes funnels through here, so the
// quantity-update rules and id generation live in exactly one place.
package inventory

import (
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Service applies inventory operations through a Store. It holds no
// state of its own; the document on disk is the source of truth and is
// re-read on every call.
type Service struct {
	store types.Store
}

// New returns a Service backed by the given store.
func New(store types.Store) *Service {
	return &Service{store: store}
}

// ItemFields carries the optional fields of a create or update request.
// A nil pointer means "not supplied"; update requests overwrite only
// the fields that are present.
type ItemFields struct {
	Name     *string
	Quantity *string
	Group    *string
}

// Get returns the full document. A missing document reads as an empty
// inventory with a fresh timestamp; the file is not created.
func (s *Service) Get() (types.Inventory, error) {
	inv, err := s.store.Load()
	if err == types.ErrDocumentMissing {
		return types.NewInventory(), nil
	}
	if err != nil {
		return types.Inventory{}, err
	}
	return inv, nil
}

// Create appends a new item and returns it. All fields are optional:
// name and group default to "", quantity to "0". Duplicate names are
// not rejected here. The id comes from the document's persisted
// counter, initialized past the largest existing numeric suffix.
func (s *Service) Create(fields ItemFields) (types.Item, error) {
	var created types.Item
	_, err := s.store.Mutate(func(inv *types.Inventory) error {
		created = types.Item{
			ID:       inv.NewID(),
			Name:     orDefault(fields.Name, ""),
			Quantity: orDefault(fields.Quantity, "0"),
			Group:    orDefault(fields.Group, ""),
		}
		inv.Items = append(inv.Items, created)
		return nil
	})
	if err != nil {
		return types.Item{}, err
	}
	return created, nil
}

// Adjust applies an action to an existing item and returns the result.
// "update" overwrites exactly the supplied fields; "increment" and
// "decrement" go through the quantity algorithm; anything else is a
// no-op adjustment that returns the item unchanged rather than an
// error. Returns types.ErrItemNotFound when the id or the whole
// document is absent, in which case nothing is written.
func (s *Service) Adjust(id, action string, fields ItemFields) (types.Item, error) {
	var updated types.Item
	_, err := s.store.Mutate(func(inv *types.Inventory) error {
		item := inv.Find(id)
		if item == nil {
			return types.ErrItemNotFound
		}
		if action == types.ActionUpdate {
			if fields.Name != nil {
				item.Name = *fields.Name
			}
			if fields.Quantity != nil {
				item.Quantity = *fields.Quantity
			}
			if fields.Group != nil {
				item.Group = *fields.Group
			}
		} else {
			item.Quantity = types.AdjustQuantity(item.Quantity, action)
		}
		updated = *item
		return nil
	})
	if err != nil {
		return types.Item{}, err
	}
	return updated, nil
}

// Delete removes an item. Returns types.ErrItemNotFound when the id or
// the document is absent; a failed delete never rewrites the file.
func (s *Service) Delete(id string) error {
	_, err := s.store.Mutate(func(inv *types.Inventory) error {
		return inv.Remove(id)
	})
	return err
}

func orDefault(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
