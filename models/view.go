package models

// Route is the gate policy's navigation decision for the current session.
type Route string

const (
	RouteSignUp  Route = "signup"
	RouteLogin   Route = "login"
	RouteCatalog Route = "catalog"
)

// ProductCard is one rendered catalog entry with its per-session bindings.
type ProductCard struct {
	Product  Product `json:"product"`
	Favorite bool    `json:"favorite"`
}

// CartLine is a cart entry with its derived subtotal, as shown in the
// cart summary.
type CartLine struct {
	Item     CartItem `json:"item"`
	Subtotal float64  `json:"subtotal"`
}

// CartSummary aggregates the cart for display.
type CartSummary struct {
	Lines      []CartLine `json:"lines"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}

// CatalogSnapshot is the full view model produced by the catalog controller.
type CatalogSnapshot struct {
	Route       Route         `json:"route"`
	Loading     bool          `json:"loading"`
	Error       string        `json:"error,omitempty"`
	Loaded      bool          `json:"loaded"`
	Cards       []ProductCard `json:"cards"`
	Cart        CartSummary   `json:"cart"`
	DarkMode    bool          `json:"dark_mode"`
	CurrentUser string        `json:"current_user,omitempty"`
}

// Empty reports whether the catalog loaded successfully with zero products.
func (s CatalogSnapshot) Empty() bool {
	return s.Loaded && !s.Loading && s.Error == "" && len(s.Cards) == 0
}
