package services

import (
	"sync"

	"github.com/yashrajoria/storefront/models"
)

// CartService holds the session's cart. State is memory-only: a new session
// always starts with an empty cart, nothing is persisted.
type CartService struct {
	mu    sync.Mutex
	items []models.CartItem
}

func NewCartService() *CartService {
	return &CartService{items: []models.CartItem{}}
}

// AddToCart inserts a new line for the snapshot's product, or bumps the
// quantity when a line for that product already exists.
func (s *CartService) AddToCart(snapshot models.ProductSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = addItem(s.items, snapshot)
}

// IncrementQuantity bumps the line for productID by one. Unknown ids are a
// no-op.
func (s *CartService) IncrementQuantity(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = adjustQuantity(s.items, productID, +1)
}

// DecrementQuantity lowers the line for productID by one, flooring at 1.
// A quantity-1 line stays in the cart; there is no removal path.
func (s *CartService) DecrementQuantity(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = adjustQuantity(s.items, productID, -1)
}

// GetTotalItems returns the sum of quantities across all lines.
func (s *CartService) GetTotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalItems(s.items)
}

// GetTotalPrice returns the sum of price times quantity across all lines.
func (s *CartService) GetTotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalPrice(s.items)
}

// Items returns a copy of the current lines in insertion order.
func (s *CartService) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Summary builds the cart view model.
func (s *CartService) Summary() models.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]models.CartLine, 0, len(s.items))
	for _, item := range s.items {
		lines = append(lines, models.CartLine{
			Item:     item,
			Subtotal: item.Price * float64(item.Quantity),
		})
	}
	return models.CartSummary{
		Lines:      lines,
		TotalItems: totalItems(s.items),
		TotalPrice: totalPrice(s.items),
	}
}

// Pure transitions over a line-item slice. The service is the only owner of
// the backing array; callers only ever see copies.

func addItem(items []models.CartItem, snapshot models.ProductSnapshot) []models.CartItem {
	for i := range items {
		if items[i].ProductID == snapshot.ProductID {
			items[i].Quantity++
			return items
		}
	}
	return append(items, models.CartItem{
		ProductID: snapshot.ProductID,
		Title:     snapshot.Title,
		Price:     snapshot.Price,
		Image:     snapshot.Image,
		Quantity:  1,
	})
}

func adjustQuantity(items []models.CartItem, productID, delta int) []models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			q := items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			items[i].Quantity = q
			return items
		}
	}
	return items
}

func totalItems(items []models.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func totalPrice(items []models.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
