package models

// CartItem is one line item in the cart. Title, price and image are copied
// from the product when the item is first added, so later catalog changes do
// not affect lines already in the cart.
type CartItem struct {
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// ProductSnapshot carries the display fields captured at add-to-cart time.
type ProductSnapshot struct {
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// SnapshotOf captures the cart-relevant fields of a product.
func SnapshotOf(p Product) ProductSnapshot {
	return ProductSnapshot{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image,
	}
}
