package controllers

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/yashrajoria/storefront/clients"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/services"
)

// CatalogController composes the stores behind the storefront page: it
// applies the auth gate, drives the catalog fetch and produces the view
// model. It renders nothing itself.
type CatalogController struct {
	catalog   clients.CatalogClient
	auth      *services.AuthService
	cart      *services.CartService
	favorites *services.FavoritesService
	theme     *services.ThemeService
	flag      *services.PresentationFlag
	logger    *zap.Logger

	mu       sync.Mutex
	loading  bool
	loaded   bool
	errMsg   string
	products []models.Product
}

func NewCatalogController(
	catalog clients.CatalogClient,
	auth *services.AuthService,
	cart *services.CartService,
	favorites *services.FavoritesService,
	theme *services.ThemeService,
	flag *services.PresentationFlag,
	logger *zap.Logger,
) *CatalogController {
	return &CatalogController{
		catalog:   catalog,
		auth:      auth,
		cart:      cart,
		favorites: favorites,
		theme:     theme,
		flag:      flag,
		logger:    logger,
	}
}

// Resolve applies the gate policy for the current session.
func (cc *CatalogController) Resolve(ctx context.Context) models.Route {
	return cc.auth.Resolve(ctx)
}

// Load starts a catalog fetch without blocking the caller. While the fetch is
// pending the snapshot reports loading and every store stays fully usable.
// The returned channel closes when the attempt settles, either way. A failed
// attempt is terminal: no retry happens until Load is called again.
func (cc *CatalogController) Load(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	cc.mu.Lock()
	if cc.loading {
		cc.mu.Unlock()
		close(done)
		return done
	}
	cc.loading = true
	cc.errMsg = ""
	cc.mu.Unlock()

	go func() {
		defer close(done)

		products, err := cc.catalog.FetchProducts(ctx)

		cc.mu.Lock()
		defer cc.mu.Unlock()
		cc.loading = false
		if err != nil {
			cc.logger.Error("Catalog fetch failed", zap.Error(err))
			cc.loaded = false
			cc.products = nil
			cc.errMsg = err.Error()
			return
		}
		cc.loaded = true
		cc.products = products
	}()

	return done
}

// AddToCart snapshots the product's display fields as of now and adds it to
// the cart. Unknown ids are a no-op; the catalog owns the product records.
func (cc *CatalogController) AddToCart(productID int) {
	cc.mu.Lock()
	var snapshot *models.ProductSnapshot
	for _, p := range cc.products {
		if p.ID == productID {
			s := models.SnapshotOf(p)
			snapshot = &s
			break
		}
	}
	cc.mu.Unlock()

	if snapshot == nil {
		cc.logger.Warn("Add to cart for unknown product", zap.Int("product_id", productID))
		return
	}
	cc.cart.AddToCart(*snapshot)
}

// ToggleFavorite flips the favorite status of a product.
func (cc *CatalogController) ToggleFavorite(ctx context.Context, productID int) bool {
	return cc.favorites.ToggleFavorite(ctx, productID)
}

// Logout clears the session; the next Resolve routes to login.
func (cc *CatalogController) Logout() {
	cc.auth.Logout()
}

// Snapshot produces the current view model. Favorite flags are bound per
// card from the persisted set, so changes made by other sessions show up on
// the next snapshot.
func (cc *CatalogController) Snapshot(ctx context.Context) models.CatalogSnapshot {
	cc.mu.Lock()
	loading, loaded, errMsg := cc.loading, cc.loaded, cc.errMsg
	products := make([]models.Product, len(cc.products))
	copy(products, cc.products)
	cc.mu.Unlock()

	snap := models.CatalogSnapshot{
		Route:       cc.auth.Resolve(ctx),
		Loading:     loading,
		Loaded:      loaded,
		Error:       errMsg,
		Cart:        cc.cart.Summary(),
		DarkMode:    cc.flag.Dark(),
		CurrentUser: cc.auth.Session().Username,
	}

	if len(products) > 0 {
		favorites := cc.favorites.ListFavorites(ctx)
		favoriteSet := make(map[int]bool, len(favorites))
		for _, id := range favorites {
			favoriteSet[id] = true
		}

		snap.Cards = make([]models.ProductCard, 0, len(products))
		for _, p := range products {
			snap.Cards = append(snap.Cards, models.ProductCard{
				Product:  p,
				Favorite: favoriteSet[p.ID],
			})
		}
	}

	return snap
}
