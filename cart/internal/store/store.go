package store

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/cart/internal/errors"
)

// LineItem is one product entry within a user's cart. Price is pinned at
// first add; TotalPrice == Price * Quantity at all times.
type LineItem struct {
	ID          int64
	UserID      string
	ProductID   int64
	ProductName string
	Price       decimal.Decimal
	Quantity    int32
	TotalPrice  decimal.Decimal
	AddedAt     time.Time
}

type idAllocator struct {
	mu     sync.Mutex
	nextId int64
}

func (a *idAllocator) next() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextId
	a.nextId++
	return id
}

// CartStore keeps every user's line items in memory, insertion order
// preserved. A user with no items has no entry. The store mutex guards
// the maps; userLocks hands out one mutex per user id so the add-to-cart
// read-modify-write serializes per user while different users proceed in
// parallel.
type CartStore struct {
	mu        sync.RWMutex
	carts     map[string][]*LineItem
	userLocks map[string]*sync.Mutex
	ids       idAllocator
}

func NewCartStore() *CartStore {
	return &CartStore{
		carts:     map[string][]*LineItem{},
		userLocks: map[string]*sync.Mutex{},
		ids:       idAllocator{nextId: 1},
	}
}

// LockUser acquires the per-user mutation lock and returns its unlock
// func. Callers hold it across find-then-upsert sequences.
func (s *CartStore) LockUser(userId string) func() {
	s.mu.Lock()
	lock, ok := s.userLocks[userId]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userId] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (s *CartStore) Get(userId string) []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]LineItem, 0, len(s.carts[userId]))
	for _, item := range s.carts[userId] {
		items = append(items, *item)
	}
	return items
}

func (s *CartStore) FindItemByProductId(userId string, productId int64) (LineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.carts[userId] {
		if item.ProductID == productId {
			return *item, true
		}
	}
	return LineItem{}, false
}

// Upsert appends item as a new line item when the user holds none for
// item.ProductID, allocating its id; otherwise it merges item.Quantity
// into the existing line item and recomputes the total from the pinned
// unit price, not from item.Price.
func (s *CartStore) Upsert(userId string, item LineItem) LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.carts[userId] {
		if existing.ProductID != item.ProductID {
			continue
		}
		existing.Quantity += item.Quantity
		existing.TotalPrice = existing.Price.Mul(decimal.NewFromInt32(existing.Quantity))
		return *existing
	}

	item.ID = s.ids.next()
	item.UserID = userId
	item.TotalPrice = item.Price.Mul(decimal.NewFromInt32(item.Quantity))
	item.AddedAt = time.Now()
	s.carts[userId] = append(s.carts[userId], &item)
	return item
}

func (s *CartStore) RemoveItem(userId string, itemId int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.carts[userId]
	if !ok {
		return errors.ErrCartNotFound
	}
	for i, item := range items {
		if item.ID != itemId {
			continue
		}
		s.carts[userId] = append(items[:i], items[i+1:]...)
		if len(s.carts[userId]) == 0 {
			delete(s.carts, userId)
		}
		return nil
	}
	return errors.ErrCartItemNotFound
}

// Clear deletes the user's entry entirely; clearing an absent cart is a
// no-op.
func (s *CartStore) Clear(userId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userId)
}

func (s *CartStore) UserIds() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userIds := make([]string, 0, len(s.carts))
	for userId := range s.carts {
		userIds = append(userIds, userId)
	}
	return userIds
}
