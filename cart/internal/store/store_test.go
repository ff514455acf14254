package store

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/cart/internal/errors"
)

func TestUpsertMergesByProductId(t *testing.T) {
	s := NewCartStore()

	first := s.Upsert("alice", LineItem{
		ProductID:   7,
		ProductName: "Laptop Gaming",
		Price:       decimal.NewFromFloat(1200.00),
		Quantity:    2,
	})
	require.Equal(t, int64(1), first.ID)
	require.Equal(t, "alice", first.UserID)
	assert.True(t, decimal.NewFromFloat(2400.00).Equal(first.TotalPrice))

	merged := s.Upsert("alice", LineItem{
		ProductID: 7,
		// a different price on merge must not re-price the line item
		Price:    decimal.NewFromFloat(1500.00),
		Quantity: 1,
	})
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, int32(3), merged.Quantity)
	assert.True(t, decimal.NewFromFloat(1200.00).Equal(merged.Price))
	assert.True(t, decimal.NewFromFloat(3600.00).Equal(merged.TotalPrice))

	items := s.Get("alice")
	require.Len(t, items, 1)
	assert.Equal(t, int32(3), items[0].Quantity)
}

func TestUpsertAllocatesMonotonicIds(t *testing.T) {
	s := NewCartStore()

	first := s.Upsert("alice", LineItem{ProductID: 1, Price: decimal.NewFromInt(1), Quantity: 1})
	second := s.Upsert("alice", LineItem{ProductID: 2, Price: decimal.NewFromInt(1), Quantity: 1})
	third := s.Upsert("bob", LineItem{ProductID: 1, Price: decimal.NewFromInt(1), Quantity: 1})

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, int64(3), third.ID)
}

func TestUpsertPreservesInsertionOrder(t *testing.T) {
	s := NewCartStore()

	s.Upsert("alice", LineItem{ProductID: 3, Price: decimal.NewFromInt(1), Quantity: 1})
	s.Upsert("alice", LineItem{ProductID: 1, Price: decimal.NewFromInt(1), Quantity: 1})
	s.Upsert("alice", LineItem{ProductID: 2, Price: decimal.NewFromInt(1), Quantity: 1})
	s.Upsert("alice", LineItem{ProductID: 1, Price: decimal.NewFromInt(1), Quantity: 1})

	items := s.Get("alice")
	require.Len(t, items, 3)
	assert.Equal(t, int64(3), items[0].ProductID)
	assert.Equal(t, int64(1), items[1].ProductID)
	assert.Equal(t, int64(2), items[2].ProductID)
}

func TestRemoveItem(t *testing.T) {
	tests := []struct {
		name        string
		userId      string
		itemId      func(kept LineItem, removed LineItem) int64
		expectedErr error
	}{
		{
			name:        "removing an existing item removes only that item",
			userId:      "alice",
			itemId:      func(kept LineItem, removed LineItem) int64 { return removed.ID },
			expectedErr: nil,
		},
		{
			name:        "removing an unknown item id fails with ErrCartItemNotFound",
			userId:      "alice",
			itemId:      func(kept LineItem, removed LineItem) int64 { return removed.ID + 1000 },
			expectedErr: errors.ErrCartItemNotFound,
		},
		{
			name:        "removing from an absent cart fails with ErrCartNotFound",
			userId:      "nobody",
			itemId:      func(kept LineItem, removed LineItem) int64 { return removed.ID },
			expectedErr: errors.ErrCartNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCartStore()
			kept := s.Upsert("alice", LineItem{ProductID: 1, Price: decimal.NewFromInt(5), Quantity: 1})
			removed := s.Upsert("alice", LineItem{ProductID: 2, Price: decimal.NewFromInt(7), Quantity: 2})

			err := s.RemoveItem(tt.userId, tt.itemId(kept, removed))
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Len(t, s.Get("alice"), 2)
				return
			}
			require.NoError(t, err)
			items := s.Get("alice")
			require.Len(t, items, 1)
			assert.Equal(t, kept.ID, items[0].ID)
		})
	}
}

func TestRemoveLastItemDeletesEntry(t *testing.T) {
	s := NewCartStore()
	item := s.Upsert("alice", LineItem{ProductID: 1, Price: decimal.NewFromInt(1), Quantity: 1})

	require.NoError(t, s.RemoveItem("alice", item.ID))
	assert.Empty(t, s.UserIds())
	assert.ErrorIs(t, s.RemoveItem("alice", item.ID), errors.ErrCartNotFound)
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewCartStore()
	s.Upsert("alice", LineItem{ProductID: 1, Price: decimal.NewFromInt(1), Quantity: 1})

	s.Clear("alice")
	assert.Empty(t, s.Get("alice"))
	assert.Empty(t, s.UserIds())

	s.Clear("alice")
	s.Clear("never-existed")
	assert.Empty(t, s.UserIds())
}

func TestConcurrentUpsertsAllocateDistinctIds(t *testing.T) {
	s := NewCartStore()

	goroutines := 50
	ids := make(chan int64, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(productId int64) {
			defer wg.Done()
			item := s.Upsert("alice", LineItem{
				ProductID: productId,
				Price:     decimal.NewFromInt(1),
				Quantity:  1,
			})
			ids <- item.ID
		}(int64(i + 1))
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, goroutines)
	assert.Len(t, s.Get("alice"), goroutines)
}
