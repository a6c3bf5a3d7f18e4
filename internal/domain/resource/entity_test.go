//go:build unit

package resource_test

import (
	"testing"

	"libreserve/internal/domain/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLaptop(t *testing.T) {
	t.Run("valid laptop", func(t *testing.T) {
		r, err := resource.NewLaptop("laptop-1", "Laptop 1", "central", resource.StatusActive, "linux", "dell")
		require.NoError(t, err)
		assert.Equal(t, resource.ClassLaptop, r.Class())
		assert.Equal(t, "linux", r.OS())
		assert.Equal(t, "dell", r.Brand())
		assert.True(t, r.IsActive())
	})

	cases := []struct {
		name  string
		build func() (*resource.Resource, error)
		errIs error
	}{
		{
			name:  "empty id",
			build: func() (*resource.Resource, error) { return resource.NewLaptop("  ", "L", "c", "", "linux", "dell") },
			errIs: resource.ErrEmptyResourceID,
		},
		{
			name:  "empty name",
			build: func() (*resource.Resource, error) { return resource.NewLaptop("l-1", "", "c", "", "linux", "dell") },
			errIs: resource.ErrEmptyName,
		},
		{
			name:  "missing os",
			build: func() (*resource.Resource, error) { return resource.NewLaptop("l-1", "L", "c", "", "", "dell") },
			errIs: resource.ErrMissingOS,
		},
		{
			name:  "missing brand",
			build: func() (*resource.Resource, error) { return resource.NewLaptop("l-1", "L", "c", "", "linux", " ") },
			errIs: resource.ErrMissingBrand,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.build()
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestNewCubicle(t *testing.T) {
	r, err := resource.NewCubicle("cubicle-1", "Study Room A", "central", resource.StatusActive, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Capacity())

	_, err = resource.NewCubicle("cubicle-2", "Study Room B", "central", resource.StatusActive, 0)
	assert.ErrorIs(t, err, resource.ErrInvalidCapacity)
}

func TestNewBook(t *testing.T) {
	r, err := resource.NewBook("book-1", "The Go Programming Language", "central", resource.StatusActive, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Copies())

	_, err = resource.NewBook("book-2", "Empty Shelf", "central", resource.StatusActive, -1)
	assert.ErrorIs(t, err, resource.ErrInvalidCopies)
}

func TestResourceStatus(t *testing.T) {
	t.Run("empty status defaults to active", func(t *testing.T) {
		r, err := resource.NewBook("book-1", "B", "c", "", 1)
		require.NoError(t, err)
		assert.Equal(t, resource.StatusActive, r.Status())
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := resource.NewResource("x", "X", resource.ClassLaptop, "c", "broken")
		assert.ErrorIs(t, err, resource.ErrInvalidStatus)
	})

	t.Run("maintenance flips IsActive", func(t *testing.T) {
		r, err := resource.NewBook("book-1", "B", "c", "", 1)
		require.NoError(t, err)
		require.NoError(t, r.SetStatus(resource.StatusUnderMaintenance))
		assert.False(t, r.IsActive())
		assert.ErrorIs(t, r.SetStatus("nonsense"), resource.ErrInvalidStatus)
	})
}

func TestClassRules(t *testing.T) {
	assert.True(t, resource.ClassLaptop.UsesInterval())
	assert.True(t, resource.ClassCubicle.UsesInterval())
	assert.False(t, resource.ClassBook.UsesInterval())

	assert.True(t, resource.ClassLaptop.SingleActive())
	assert.True(t, resource.ClassBook.SingleActive())
	assert.False(t, resource.ClassCubicle.SingleActive())

	assert.False(t, resource.Class("tablet").IsValid())
}
