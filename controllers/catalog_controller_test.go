package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/yashrajoria/storefront/clients"
	"github.com/yashrajoria/storefront/common/errors"
	"github.com/yashrajoria/storefront/database"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/repository"
	"github.com/yashrajoria/storefront/services"
)

// --- Mocks for Dependencies ---

type MockCatalogClient struct{ mock.Mock }

func (m *MockCatalogClient) FetchProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

// blockingCatalogClient holds the fetch open until released, so tests can
// observe the pending state.
type blockingCatalogClient struct {
	release  chan struct{}
	products []models.Product
}

func (c *blockingCatalogClient) FetchProducts(ctx context.Context) ([]models.Product, error) {
	<-c.release
	return c.products, nil
}

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: 1, Title: "Backpack", Price: 109.95, Image: "https://img/1.jpg", Rating: models.Rating{Rate: 3.9, Count: 120}},
		{ID: 2, Title: "T-Shirt", Price: 22.3, Image: "https://img/2.jpg", Rating: models.Rating{Rate: 4.1, Count: 259}},
	}
}

type fixture struct {
	controller *CatalogController
	auth       *services.AuthService
	cart       *services.CartService
	favorites  *services.FavoritesService
	theme      *services.ThemeService
}

func newFixture(ctx context.Context, catalog clients.CatalogClient) *fixture {
	log := zap.NewNop()
	storage := database.NewMemoryStorage()

	flag := services.NewPresentationFlag()
	theme := services.NewThemeService(ctx, repository.NewThemeRepository(storage, log), storage, flag, log)
	favorites := services.NewFavoritesService(repository.NewFavoritesRepository(storage, log), storage, log)
	auth := services.NewAuthService(repository.NewCredentialRepository(storage), log)
	cart := services.NewCartService()

	return &fixture{
		controller: NewCatalogController(catalog, auth, cart, favorites, theme, flag, log),
		auth:       auth,
		cart:       cart,
		favorites:  favorites,
		theme:      theme,
	}
}

func loggedIn(ctx context.Context, f *fixture, t *testing.T) {
	t.Helper()
	assert.NoError(t, f.auth.SignUp(ctx, "alice", "pw1"))
	assert.True(t, f.auth.Login(ctx, "alice", "pw1"))
}

func TestGateRouting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(ctx, new(MockCatalogClient))

	assert.Equal(t, models.RouteSignUp, f.controller.Resolve(ctx))

	assert.NoError(t, f.auth.SignUp(ctx, "alice", "pw1"))
	assert.Equal(t, models.RouteLogin, f.controller.Resolve(ctx))

	assert.True(t, f.auth.Login(ctx, "alice", "pw1"))
	assert.Equal(t, models.RouteCatalog, f.controller.Resolve(ctx))

	f.controller.Logout()
	assert.Equal(t, models.RouteLogin, f.controller.Resolve(ctx))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful Fetch Produces Cards", func(t *testing.T) {
		catalog := new(MockCatalogClient)
		catalog.On("FetchProducts", mock.Anything).Return(sampleProducts(), nil).Once()
		f := newFixture(ctx, catalog)
		loggedIn(ctx, f, t)

		<-f.controller.Load(ctx)

		snap := f.controller.Snapshot(ctx)
		assert.False(t, snap.Loading)
		assert.True(t, snap.Loaded)
		assert.Empty(t, snap.Error)
		assert.Len(t, snap.Cards, 2)
		assert.Equal(t, "Backpack", snap.Cards[0].Product.Title)
		catalog.AssertExpectations(t)
	})

	t.Run("Fetch Failure Is A Terminal Error State", func(t *testing.T) {
		catalog := new(MockCatalogClient)
		catalog.On("FetchProducts", mock.Anything).Return(nil, errors.ErrCatalogUnavailable).Once()
		f := newFixture(ctx, catalog)
		loggedIn(ctx, f, t)

		<-f.controller.Load(ctx)

		snap := f.controller.Snapshot(ctx)
		assert.False(t, snap.Loading)
		assert.False(t, snap.Loaded)
		assert.Contains(t, snap.Error, "Catalog unavailable")
		assert.Empty(t, snap.Cards)
		// No automatic retry happened.
		catalog.AssertNumberOfCalls(t, "FetchProducts", 1)
	})

	t.Run("A Later Load Is A Fresh Attempt", func(t *testing.T) {
		catalog := new(MockCatalogClient)
		catalog.On("FetchProducts", mock.Anything).Return(nil, errors.ErrCatalogUnavailable).Once()
		catalog.On("FetchProducts", mock.Anything).Return(sampleProducts(), nil).Once()
		f := newFixture(ctx, catalog)
		loggedIn(ctx, f, t)

		<-f.controller.Load(ctx)
		assert.NotEmpty(t, f.controller.Snapshot(ctx).Error)

		<-f.controller.Load(ctx)

		snap := f.controller.Snapshot(ctx)
		assert.Empty(t, snap.Error)
		assert.Len(t, snap.Cards, 2)
		catalog.AssertExpectations(t)
	})

	t.Run("Empty Catalog Is Loaded Not Error", func(t *testing.T) {
		catalog := new(MockCatalogClient)
		catalog.On("FetchProducts", mock.Anything).Return([]models.Product{}, nil).Once()
		f := newFixture(ctx, catalog)
		loggedIn(ctx, f, t)

		<-f.controller.Load(ctx)

		snap := f.controller.Snapshot(ctx)
		assert.True(t, snap.Empty())
	})
}

func TestLoadDoesNotBlockTheStores(t *testing.T) {
	ctx := context.Background()
	catalog := &blockingCatalogClient{release: make(chan struct{}), products: sampleProducts()}
	f := newFixture(ctx, catalog)
	loggedIn(ctx, f, t)

	done := f.controller.Load(ctx)

	snap := f.controller.Snapshot(ctx)
	assert.True(t, snap.Loading)
	assert.Empty(t, snap.Cards)

	// Cart, favorites and theme all stay usable while the fetch hangs.
	f.cart.AddToCart(models.ProductSnapshot{ProductID: 1, Title: "Backpack", Price: 109.95})
	assert.True(t, f.favorites.ToggleFavorite(ctx, 1))
	assert.Equal(t, models.ThemeDark, f.theme.ToggleTheme(ctx))

	snap = f.controller.Snapshot(ctx)
	assert.Equal(t, 1, snap.Cart.TotalItems)
	assert.True(t, snap.DarkMode)

	close(catalog.release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("load did not settle")
	}

	assert.True(t, f.controller.Snapshot(ctx).Loaded)
}

func TestSnapshotBindings(t *testing.T) {
	ctx := context.Background()
	catalog := new(MockCatalogClient)
	catalog.On("FetchProducts", mock.Anything).Return(sampleProducts(), nil).Once()
	f := newFixture(ctx, catalog)
	loggedIn(ctx, f, t)
	<-f.controller.Load(ctx)

	t.Run("Favorite Flags Bind Per Card", func(t *testing.T) {
		assert.True(t, f.controller.ToggleFavorite(ctx, 2))

		snap := f.controller.Snapshot(ctx)
		assert.False(t, snap.Cards[0].Favorite)
		assert.True(t, snap.Cards[1].Favorite)
	})

	t.Run("AddToCart Snapshots From The Loaded Catalog", func(t *testing.T) {
		f.controller.AddToCart(1)
		f.controller.AddToCart(1)

		snap := f.controller.Snapshot(ctx)
		assert.Equal(t, 2, snap.Cart.TotalItems)
		assert.Equal(t, 219.90, snap.Cart.TotalPrice)
		assert.Len(t, snap.Cart.Lines, 1)
		assert.Equal(t, "Backpack", snap.Cart.Lines[0].Item.Title)
	})

	t.Run("AddToCart Unknown Id Is A NoOp", func(t *testing.T) {
		before := f.controller.Snapshot(ctx).Cart.TotalItems

		f.controller.AddToCart(999)

		assert.Equal(t, before, f.controller.Snapshot(ctx).Cart.TotalItems)
	})

	t.Run("Current User Is Exposed", func(t *testing.T) {
		assert.Equal(t, "alice", f.controller.Snapshot(ctx).CurrentUser)
	})
}
