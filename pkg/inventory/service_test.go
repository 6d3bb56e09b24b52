package inventory

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/internal/jsonfile"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.json")
	store := jsonfile.New(path)
	t.Cleanup(func() { _ = store.Close() })
	return New(store), path
}

func strptr(s string) *string { return &s }

func TestGetMissingDocument(t *testing.T) {
	svc, path := newTestService(t)

	inv, err := svc.Get()
	require.NoError(t, err)
	assert.Empty(t, inv.Items)
	assert.NotEmpty(t, inv.LastUpdated)

	// Reading must not create the file.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCreateDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	item, err := svc.Create(ItemFields{})
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, "", item.Name)
	assert.Equal(t, "0", item.Quantity)
	assert.Equal(t, "", item.Group)
}

func TestCreateAssignsMaxPlusOne(t *testing.T) {
	svc, _ := newTestService(t)

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Create(ItemFields{Name: strptr(name)})
		require.NoError(t, err)
	}
	require.NoError(t, svc.Delete("item-2"))

	// item-3 still exists, so the next id is item-4 even though only
	// two items remain.
	item, err := svc.Create(ItemFields{Name: strptr("d")})
	require.NoError(t, err)
	assert.Equal(t, "item-4", item.ID)
}

func TestCreateAllowsDuplicateNames(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Create(ItemFields{Name: strptr("Soap")})
	require.NoError(t, err)
	second, err := svc.Create(ItemFields{Name: strptr("Soap")})
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAdjustIncrementDecrement(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(ItemFields{Name: strptr("Towels"), Quantity: strptr("3 Box")})
	require.NoError(t, err)

	item, err := svc.Adjust(created.ID, types.ActionIncrement, ItemFields{})
	require.NoError(t, err)
	assert.Equal(t, "4 Box", item.Quantity)

	item, err = svc.Adjust(created.ID, types.ActionDecrement, ItemFields{})
	require.NoError(t, err)
	assert.Equal(t, "3 Box", item.Quantity)
}

func TestAdjustDecrementFloorsAtZero(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(ItemFields{Name: strptr("Towels"), Quantity: strptr("0 Box")})
	require.NoError(t, err)

	item, err := svc.Adjust(created.ID, types.ActionDecrement, ItemFields{})
	require.NoError(t, err)
	assert.Equal(t, "0 Box", item.Quantity)
}

func TestAdjustUnknownActionReturnsItemUnchanged(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(ItemFields{Name: strptr("Towels"), Quantity: strptr("3 Box")})
	require.NoError(t, err)

	item, err := svc.Adjust(created.ID, "restock", ItemFields{})
	require.NoError(t, err)
	assert.Equal(t, "3 Box", item.Quantity)
}

func TestAdjustUpdateOverwritesOnlySuppliedFields(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(ItemFields{
		Name:     strptr("Towels"),
		Quantity: strptr("3 Box"),
		Group:    strptr("Cleaning"),
	})
	require.NoError(t, err)

	item, err := svc.Adjust(created.ID, types.ActionUpdate, ItemFields{Name: strptr("Paper Towels")})
	require.NoError(t, err)
	assert.Equal(t, "Paper Towels", item.Name)
	assert.Equal(t, "3 Box", item.Quantity)
	assert.Equal(t, "Cleaning", item.Group)

	item, err = svc.Adjust(created.ID, types.ActionUpdate, ItemFields{
		Quantity: strptr("12"),
		Group:    strptr("Kitchen"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Paper Towels", item.Name)
	assert.Equal(t, "12", item.Quantity)
	assert.Equal(t, "Kitchen", item.Group)
}

func TestAdjustMissingItem(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(ItemFields{Name: strptr("Soap")})
	require.NoError(t, err)

	_, err = svc.Adjust("item-99", types.ActionIncrement, ItemFields{})
	assert.ErrorIs(t, err, types.ErrItemNotFound)
}

func TestAdjustMissingDocument(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Adjust("item-1", types.ActionIncrement, ItemFields{})
	assert.ErrorIs(t, err, types.ErrItemNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(ItemFields{Name: strptr("Soap")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))

	inv, err := svc.Get()
	require.NoError(t, err)
	assert.Empty(t, inv.Items)
}

func TestDeleteMissingLeavesFileUntouched(t *testing.T) {
	svc, path := newTestService(t)
	_, err := svc.Create(ItemFields{Name: strptr("Soap")})
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = svc.Delete("item-99")
	assert.ErrorIs(t, err, types.ErrItemNotFound)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMutationsRefreshLastUpdated(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(ItemFields{Name: strptr("Soap")})
	require.NoError(t, err)

	first, err := svc.Get()
	require.NoError(t, err)

	_, err = svc.Adjust(created.ID, types.ActionIncrement, ItemFields{})
	require.NoError(t, err)

	second, err := svc.Get()
	require.NoError(t, err)

	firstAt, err := time.Parse(time.RFC3339Nano, first.LastUpdated)
	require.NoError(t, err)
	secondAt, err := time.Parse(time.RFC3339Nano, second.LastUpdated)
	require.NoError(t, err)
	assert.False(t, secondAt.Before(firstAt))
}
