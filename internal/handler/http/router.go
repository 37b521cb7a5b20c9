package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wali-jeweller/storefront/internal/auth"
	"github.com/wali-jeweller/storefront/pkg/health"
	"github.com/wali-jeweller/storefront/pkg/middleware"
)

// catalogCacheMaxAge is the Cache-Control max-age for public catalog reads,
// in seconds.
const catalogCacheMaxAge = 60

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Cart      *CartHandler
	Wishlist  *WishlistHandler
	Catalog   *CatalogHandler
	Checkout  *CheckoutHandler
	Auth      *AuthHandler
	Products  *AdminProductHandler
	AdminCat  *AdminCatalogHandler
	Pages     *AdminPageHandler
	Media     *AdminMediaHandler
	Health    *health.Handler
	Validator middleware.TokenValidator
	LoginRPS  int
	Logger    *slog.Logger
}

// NewRouter creates a chi router with the storefront and back-office routes.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))

	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Public storefront. Catalog reads are cacheable; cart and wishlist
		// are not.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogCacheMaxAge))

			r.Get("/products/{slug}", deps.Catalog.GetProduct)
			r.Get("/products/{slug}/related", deps.Catalog.GetRelatedProducts)
			r.Get("/categories", deps.Catalog.ListCategories)
			r.Get("/categories/{slug}/products", deps.Catalog.ListCategoryProducts)
			r.Get("/collections", deps.Catalog.ListCollections)
			r.Get("/collections/{slug}/products", deps.Catalog.GetCollectionProducts)
			r.Get("/sizes", deps.Catalog.ListSizes)
			r.Get("/pages", deps.Catalog.ListPages)
			r.Get("/pages/{slug}", deps.Catalog.GetPage)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", deps.Cart.GetCart)
			r.Delete("/", deps.Cart.ClearCart)
			r.Post("/items", deps.Cart.AddItem)
			r.Put("/items/{id}", deps.Cart.UpdateQuantity)
			r.Delete("/items/{id}", deps.Cart.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", deps.Wishlist.GetWishlist)
			r.Delete("/", deps.Wishlist.ClearWishlist)
			r.Post("/items", deps.Wishlist.SaveItem)
			r.Delete("/items/{id}", deps.Wishlist.RemoveItem)
		})

		r.Post("/checkout/confirm", deps.Checkout.Confirm)

		// Back office. Login is rate limited per client IP; everything else
		// requires an admin session token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(deps.LoginRPS, deps.LoginRPS*2, deps.Logger))
			r.Post("/admin/login", deps.Auth.Login)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(deps.Validator))
			r.Use(middleware.RequireRole(auth.RoleAdmin))

			r.Get("/me", deps.Auth.Me)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", deps.Products.ListProducts)
				r.Post("/", deps.Products.CreateProduct)
				r.Get("/{id}", deps.Products.GetProduct)
				r.Put("/{id}", deps.Products.UpdateProduct)
				r.Delete("/{id}", deps.Products.DeleteProduct)
				r.Post("/{id}/images", deps.Products.AddImage)
				r.Delete("/{id}/images/{imageId}", deps.Products.DeleteImage)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", deps.AdminCat.ListCategories)
				r.Post("/", deps.AdminCat.CreateCategory)
				r.Put("/{id}", deps.AdminCat.UpdateCategory)
				r.Delete("/{id}", deps.AdminCat.DeleteCategory)
			})

			r.Route("/collections", func(r chi.Router) {
				r.Get("/", deps.AdminCat.ListCollections)
				r.Post("/", deps.AdminCat.CreateCollection)
				r.Put("/{id}", deps.AdminCat.UpdateCollection)
				r.Delete("/{id}", deps.AdminCat.DeleteCollection)
				r.Post("/{id}/products", deps.AdminCat.AddCollectionProduct)
				r.Delete("/{id}/products/{productId}", deps.AdminCat.RemoveCollectionProduct)
			})

			r.Route("/sizes", func(r chi.Router) {
				r.Get("/", deps.AdminCat.ListSizes)
				r.Post("/", deps.AdminCat.CreateSize)
				r.Put("/{id}", deps.AdminCat.UpdateSize)
				r.Delete("/{id}", deps.AdminCat.DeleteSize)
			})

			r.Route("/pages", func(r chi.Router) {
				r.Get("/", deps.Pages.ListPages)
				r.Post("/", deps.Pages.CreatePage)
				r.Get("/{id}", deps.Pages.GetPage)
				r.Put("/{id}", deps.Pages.UpdatePage)
				r.Delete("/{id}", deps.Pages.DeletePage)
				r.Post("/{id}/sections", deps.Pages.AddSection)
				r.Delete("/{id}/sections/{sectionId}", deps.Pages.DeleteSection)
			})

			r.Route("/media", func(r chi.Router) {
				r.Get("/", deps.Media.List)
				r.Post("/", deps.Media.Upload)
				r.Delete("/", deps.Media.Delete)
				r.Get("/presign", deps.Media.Presign)
			})
		})
	})

	return r
}
