//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/geolens/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_Recycling(t *testing.T) {
	t.Parallel()

	t.Run("swaps the browser once the render budget is spent", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(3))
		require.NoError(t, err)
		defer manager.Close()

		first := manager.Browser()
		require.NotNil(t, first)

		for range 3 {
			manager.IncrementPageCount()
		}

		assert.NotSame(t, first, manager.Browser())
	})

	t.Run("keeps the browser while under budget", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(5))
		require.NoError(t, err)
		defer manager.Close()

		first := manager.Browser()
		require.NotNil(t, first)

		manager.IncrementPageCount()
		manager.IncrementPageCount()

		assert.Same(t, first, manager.Browser())
	})
}
