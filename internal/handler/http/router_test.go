package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wali-jeweller/storefront/internal/auth"
	"github.com/wali-jeweller/storefront/internal/cart"
	"github.com/wali-jeweller/storefront/internal/domain"
	"github.com/wali-jeweller/storefront/internal/event"
	"github.com/wali-jeweller/storefront/internal/service"
	"github.com/wali-jeweller/storefront/internal/snapshot"
	"github.com/wali-jeweller/storefront/internal/storage/memory"
	"github.com/wali-jeweller/storefront/internal/tablestate"
	"github.com/wali-jeweller/storefront/internal/wishlist"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
	"github.com/wali-jeweller/storefront/pkg/health"
	"github.com/wali-jeweller/storefront/pkg/pagination"
)

// fakeProductRepo records the table state it was queried with.
type fakeProductRepo struct {
	domain.ProductRepository

	lastState  tablestate.State
	list       *domain.ProductList
	bySlug     map[string]*domain.Product
	byCategory []domain.Product
}

func (f *fakeProductRepo) List(_ context.Context, state tablestate.State) (*domain.ProductList, error) {
	f.lastState = state

	// Mirror the repository contract: PageIndex is the served page after
	// clamping to the row count.
	list := *f.list
	size := state.PageSize
	if size <= 0 {
		size = tablestate.DefaultPageSize
	}
	list.PageIndex = state.PageIndex
	if maxPage := (list.Total - 1) / size; list.PageIndex > maxPage {
		list.PageIndex = maxPage
	}
	if list.PageIndex < 0 {
		list.PageIndex = 0
	}
	return &list, nil
}

func (f *fakeProductRepo) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	if p, ok := f.bySlug[slug]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("product", slug)
}

func (f *fakeProductRepo) ListByCategory(context.Context, string) ([]domain.Product, error) {
	return f.byCategory, nil
}

type fakeImageRepo struct {
	domain.ImageRepository
}

func (fakeImageRepo) ListByProduct(context.Context, string) ([]domain.Image, error) {
	return []domain.Image{}, nil
}

type fakeCategoryRepo struct{ domain.CategoryRepository }

func (fakeCategoryRepo) ListAll(context.Context) ([]domain.Category, error) {
	return []domain.Category{}, nil
}

func (fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*domain.Category, error) {
	if slug != "rings" {
		return nil, apperrors.NotFound("category", slug)
	}
	return &domain.Category{ID: "c-1", Name: "Rings", Slug: "rings"}, nil
}

type fakeCollectionRepo struct{ domain.CollectionRepository }
type fakeSizeRepo struct{ domain.SizeRepository }
type fakePageRepo struct{ domain.PageRepository }

type fakeUserRepo struct {
	domain.UserRepository
	user *domain.User
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, apperrors.ErrNotFound
}

type testRouter struct {
	handler  http.Handler
	products *fakeProductRepo
	tokens   *auth.JWTManager
}

func newTestRouter(t *testing.T) *testRouter {
	t.Helper()
	logger := testLogger()
	producer := event.NewProducer(nil, logger)
	tokens := auth.NewJWTManager("test-secret", time.Hour)

	cartStore := cart.NewStore(snapshot.NewMemoryStore(), logger)
	cartStore.Hydrate(context.Background())
	wishlistStore := wishlist.NewStore(snapshot.NewMemoryStore(), logger)
	wishlistStore.Hydrate(context.Background())

	products := &fakeProductRepo{
		list: &domain.ProductList{Products: []domain.Product{}, Total: 0},
		bySlug: map[string]*domain.Product{
			"gold-hoops": {ID: "p-1", Name: "Gold Hoops", Slug: "gold-hoops", Status: domain.ProductStatusActive},
		},
	}

	hash, err := auth.HashPassword("admin password")
	require.NoError(t, err)
	users := &fakeUserRepo{user: &domain.User{
		ID:           "u-1",
		Email:        "admin@wali.example",
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
	}}

	productSvc := service.NewProductService(products, fakeImageRepo{}, producer, logger)
	categorySvc := service.NewCategoryService(fakeCategoryRepo{}, logger)
	collectionSvc := service.NewCollectionService(fakeCollectionRepo{}, logger)
	sizeSvc := service.NewSizeService(fakeSizeRepo{}, logger)
	contentSvc := service.NewContentService(fakePageRepo{}, logger)
	mediaSvc := service.NewMediaService(memory.New("https://cdn.example.com"), logger)
	checkoutSvc := service.NewCheckoutService(cartStore, producer, logger)
	userSvc := service.NewUserService(users, tokens, logger)

	handler := NewRouter(RouterDeps{
		Cart:      NewCartHandler(cartStore, producer, logger),
		Wishlist:  NewWishlistHandler(wishlistStore, producer, logger),
		Catalog:   NewCatalogHandler(productSvc, categorySvc, collectionSvc, sizeSvc, contentSvc, logger),
		Checkout:  NewCheckoutHandler(checkoutSvc, logger),
		Auth:      NewAuthHandler(userSvc, logger),
		Products:  NewAdminProductHandler(productSvc, logger),
		AdminCat:  NewAdminCatalogHandler(categorySvc, collectionSvc, sizeSvc, logger),
		Pages:     NewAdminPageHandler(contentSvc, logger),
		Media:     NewAdminMediaHandler(mediaSvc, logger),
		Health:    health.NewHandler(),
		Validator: tokens.Middleware(),
		LoginRPS:  100,
		Logger:    logger,
	})

	return &testRouter{handler: handler, products: products, tokens: tokens}
}

func (tr *testRouter) adminToken(t *testing.T, role string) string {
	t.Helper()
	token, err := tr.tokens.GenerateToken("u-1", "admin@wali.example", role)
	require.NoError(t, err)
	return token
}

func TestRouter_HealthLive(t *testing.T) {
	tr := newTestRouter(t)

	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CatalogSetsCacheControl(t *testing.T) {
	tr := newTestRouter(t)

	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/gold-hoops", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=60")
}

func TestRouter_CartIsNotCacheable(t *testing.T) {
	tr := newTestRouter(t)

	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Cache-Control"))
}

func TestRouter_AdminRequiresAuthBeforeValidation(t *testing.T) {
	tr := newTestRouter(t)

	// Body is invalid JSON, but the missing token must win: 401, not 400.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", nil)
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminRejectsNonAdminRole(t *testing.T) {
	tr := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+tr.adminToken(t, "viewer"))
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AdminListDecodesTableState(t *testing.T) {
	tr := newTestRouter(t)
	tr.products.list = &domain.ProductList{Products: []domain.Product{}, Total: 37}

	query := url.Values{}
	query.Set("search", "gold")
	query.Set("page", "2")
	query.Set("filters", `[{"id":"status","value":"active"}]`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/products?"+query.Encode(), nil)
	req.Header.Set("Authorization", "Bearer "+tr.adminToken(t, auth.RoleAdmin))
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "gold", tr.products.lastState.Search)
	assert.Equal(t, 2, tr.products.lastState.PageIndex)
	require.Len(t, tr.products.lastState.Filters, 1)
	assert.Equal(t, "active", tr.products.lastState.Filters[0].Value)

	var envelope struct {
		Data productTableResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 37, envelope.Data.Total)
	assert.Equal(t, 4, envelope.Data.PageCount)

	// The echoed query is the canonical encoding of the applied state.
	echoed, err := url.ParseQuery(envelope.Data.Query)
	require.NoError(t, err)
	assert.Equal(t, "gold", echoed.Get("search"))
	assert.Equal(t, "2", echoed.Get("page"))
	assert.Empty(t, echoed.Get("size"))
}

func TestRouter_AdminListEchoesClampedPage(t *testing.T) {
	tr := newTestRouter(t)
	tr.products.list = &domain.ProductList{Products: []domain.Product{}, Total: 5}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/products?page=999", nil)
	req.Header.Set("Authorization", "Bearer "+tr.adminToken(t, auth.RoleAdmin))
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data productTableResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Data.PageCount)

	// 5 rows fit on page 0, so the canonical query drops the page param
	// entirely instead of echoing the out-of-range request.
	echoed, err := url.ParseQuery(envelope.Data.Query)
	require.NoError(t, err)
	assert.Empty(t, echoed.Get("page"))
}

func TestRouter_CategoryProductsArePaginated(t *testing.T) {
	tr := newTestRouter(t)
	for i := 0; i < 30; i++ {
		tr.products.byCategory = append(tr.products.byCategory, domain.Product{
			ID:     "p-" + strconv.Itoa(i),
			Name:   "Ring",
			Status: domain.ProductStatusActive,
		})
	}

	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/categories/rings/products?page=2&per_page=12", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data pagination.Result[domain.Product] `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Data, 12)
	assert.Equal(t, 30, envelope.Data.TotalCount)
	assert.Equal(t, 3, envelope.Data.TotalPages)
	assert.True(t, envelope.Data.HasNext)
	assert.True(t, envelope.Data.HasPrev)
}

func TestRouter_LoginFlow(t *testing.T) {
	tr := newTestRouter(t)

	rec := doJSON(t, tr.handler, http.MethodPost, "/api/v1/admin/login", map[string]string{
		"email":    "admin@wali.example",
		"password": "admin password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data service.LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+envelope.Data.Token)
	authed := httptest.NewRecorder()
	tr.handler.ServeHTTP(authed, req)
	assert.Equal(t, http.StatusOK, authed.Code)
}

func TestRouter_LoginRejectsBadPassword(t *testing.T) {
	tr := newTestRouter(t)

	rec := doJSON(t, tr.handler, http.MethodPost, "/api/v1/admin/login", map[string]string{
		"email":    "admin@wali.example",
		"password": "wrong password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
