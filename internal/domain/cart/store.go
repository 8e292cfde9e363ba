// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/resteel-cart/internal/domain/catalog"
)

// StorageTimeout bounds a single storage read or write. Storage calls are
// detached from the caller's cancellation so an aborted request neither loses
// a write nor hydrates an empty cart over a stored one.
const StorageTimeout = 5 * time.Second

// Store owns the line items of one cart session. Every mutation is written
// through to storage under key; reads never touch storage.
type Store struct {
	mu       sync.RWMutex
	items    []LineItem
	hydrated bool

	storage Storage
	key     string
	log     logrus.FieldLogger
}

// NewStore creates a store and hydrates it from storage. Missing, corrupt or
// unreadable records yield an empty cart; the failure is only logged.
func NewStore(ctx context.Context, storage Storage, key string, logger logrus.FieldLogger) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Store{
		items:   []LineItem{},
		storage: storage,
		key:     key,
		log:     logger.WithField("storage_key", key),
	}
	s.hydrate(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = s.load(ctx)
	s.hydrated = true
}

func (s *Store) load(ctx context.Context) []LineItem {
	if s.storage == nil {
		return []LineItem{}
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), StorageTimeout)
	defer cancel()

	data, err := s.storage.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.log.WithError(err).Error("Failed to read cart from storage")
		}
		return []LineItem{}
	}

	items, err := decodeItems(data)
	if err != nil {
		s.log.WithError(err).Warn("Discarding unreadable cart record")
		return []LineItem{}
	}
	return items
}

// decodeItems accepts only a JSON array of line items
func decodeItems(data []byte) ([]LineItem, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("cart record is not an array")
	}

	items := make([]LineItem, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		var item LineItem
		if err := json.Unmarshal(r, &item); err != nil {
			return nil, err
		}
		if err := validateItem(item); err != nil {
			return nil, err
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("duplicate line item %q", item.ID)
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}

func validateItem(item LineItem) error {
	if !item.Source.Valid() {
		return fmt.Errorf("line item %q has unknown source %q", item.ID, item.Source)
	}
	if want := LineItemID(item.Source, item.OriginalID); item.ID != want {
		return fmt.Errorf("line item id %q does not match %q", item.ID, want)
	}
	if item.Quantity < 1 {
		return fmt.Errorf("line item %q has quantity %d", item.ID, item.Quantity)
	}
	return nil
}

// persist writes the current items. Callers must hold mu.
func (s *Store) persist(ctx context.Context) {
	if !s.hydrated || s.storage == nil {
		return
	}

	data, err := json.Marshal(s.items)
	if err != nil {
		s.log.WithError(err).Error("Failed to encode cart")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), StorageTimeout)
	defer cancel()

	if err := s.storage.Save(ctx, s.key, data); err != nil {
		s.log.WithError(err).Error("Failed to write cart to storage")
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddItem adds quantity units of record to the cart; quantity below 1 counts as 1.
// If the record is already in the cart only its quantity grows: the stored
// snapshot (price, name, image) keeps the values from the first add.
func (s *Store) AddItem(ctx context.Context, record catalog.Record, quantity int) LineItem {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := LineItemID(record.Source(), record.CatalogID())

	var added LineItem
	if i := s.indexOf(id); i >= 0 {
		s.items[i].Quantity += quantity
		added = s.items[i]
	} else {
		added = Snapshot(record, quantity)
		s.items = append(s.items, added)
	}

	s.persist(ctx)
	return added
}

// RemoveItem deletes the line item with id. It reports false if there was none.
func (s *Store) RemoveItem(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.persist(ctx)
	return true
}

// UpdateQuantity sets the quantity of the line item with id. Quantities below 1
// and unknown ids leave the cart untouched and report false.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) bool {
	if quantity < 1 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.items[i].Quantity = quantity
	s.persist(ctx)
	return true
}

// ClearCart empties the cart and stores an empty array under the key
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []LineItem{}
	s.persist(ctx)
}

// Items returns a copy of the line items in insertion order
func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Find returns the line item with id
func (s *Store) Find(id string) (LineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return LineItem{}, false
}

// Subtotal is the sum of price × quantity over all lines
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return subtotalOf(s.items)
}

// Tax is 8% of the subtotal
func (s *Store) Tax() decimal.Decimal {
	return taxOf(s.Subtotal())
}

// Shipping is free only when the subtotal exceeds 500
func (s *Store) Shipping() decimal.Decimal {
	return shippingOf(s.Subtotal())
}

// Total is subtotal + tax + shipping
func (s *Store) Total() decimal.Decimal {
	return s.Totals().Total
}

// ItemCount is the sum of quantities, not the number of lines
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return itemCountOf(s.items)
}

// Totals computes all derived values from one consistent view of the items
func (s *Store) Totals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CalculateTotals(s.items)
}
