package sqlite

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadEmptyDatabase(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load()
	assert.ErrorIs(t, err, types.ErrDocumentMissing)
}

func TestMutateRoundTrip(t *testing.T) {
	s := newTestStore(t)

	inv, err := s.Mutate(func(inv *types.Inventory) error {
		inv.Items = append(inv.Items,
			types.Item{ID: inv.NewID(), Name: "Towels", Quantity: "3 Box", Group: "Cleaning"},
			types.Item{ID: inv.NewID(), Name: "Soap", Quantity: "2", Group: "Bath"},
		)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, inv.Items, 2)
	assert.NotEmpty(t, inv.LastUpdated)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, inv.Items, loaded.Items)
	assert.Equal(t, 3, loaded.NextID)
}

func TestMutatePreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	names := []string{"c", "a", "b", "z", "m"}
	_, err := s.Mutate(func(inv *types.Inventory) error {
		for _, name := range names {
			inv.Items = append(inv.Items, types.Item{ID: inv.NewID(), Name: name})
		}
		return nil
	})
	require.NoError(t, err)

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Items, len(names))
	for i, name := range names {
		assert.Equal(t, name, loaded.Items[i].Name)
	}
}

func TestMutateAbortRollsBack(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Mutate(func(inv *types.Inventory) error {
		inv.Items = append(inv.Items, types.Item{ID: "item-1", Name: "Towels", Quantity: "1"})
		return nil
	})
	require.NoError(t, err)

	_, err = s.Mutate(func(inv *types.Inventory) error {
		inv.Items = nil
		return types.ErrItemNotFound
	})
	assert.ErrorIs(t, err, types.ErrItemNotFound)

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Towels", loaded.Items[0].Name)
}

func TestReplaceOverwrites(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Mutate(func(inv *types.Inventory) error {
		inv.Items = append(inv.Items, types.Item{ID: "item-1", Name: "Old"})
		return nil
	})
	require.NoError(t, err)

	fresh := types.NewInventory()
	fresh.Items = []types.Item{{ID: "item-1", Name: "New", Quantity: "5"}}
	fresh.NextID = 2
	require.NoError(t, s.Replace(fresh))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "New", loaded.Items[0].Name)
}

func TestConcurrentMutationsSerialize(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Mutate(func(inv *types.Inventory) error {
		inv.Items = append(inv.Items, types.Item{ID: "item-1", Name: "Towels", Quantity: "0"})
		return nil
	})
	require.NoError(t, err)

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Mutate(func(inv *types.Inventory) error {
				item := inv.Find("item-1")
				if item == nil {
					return types.ErrItemNotFound
				}
				item.Quantity = types.AdjustQuantity(item.Quantity, types.ActionIncrement)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "10", loaded.Items[0].Quantity)
}
