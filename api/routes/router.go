package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vendorlink/ondemand-backend/api/controllers"
	"github.com/vendorlink/ondemand-backend/api/middleware"
	authsvc "github.com/vendorlink/ondemand-backend/internal/auth"
	bookingsvc "github.com/vendorlink/ondemand-backend/internal/bookings"
	cartsvc "github.com/vendorlink/ondemand-backend/internal/cart"
	ordersvc "github.com/vendorlink/ondemand-backend/internal/orders"
	productsvc "github.com/vendorlink/ondemand-backend/internal/products"
	servicesvc "github.com/vendorlink/ondemand-backend/internal/services"
	vendorsvc "github.com/vendorlink/ondemand-backend/internal/vendors"
	"github.com/vendorlink/ondemand-backend/pkg/auth/session"
	"github.com/vendorlink/ondemand-backend/pkg/config"
	"github.com/vendorlink/ondemand-backend/pkg/enums"
	"github.com/vendorlink/ondemand-backend/pkg/logger"
	"github.com/vendorlink/ondemand-backend/pkg/metrics"
	"github.com/vendorlink/ondemand-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	Users       middleware.UserLoader
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger

	Auth     authsvc.Service
	Register authsvc.RegisterService
	Vendors  vendorsvc.Service
	Products productsvc.Service
	Services servicesvc.Service
	Cart     cartsvc.Service
	Orders   ordersvc.Service
	Bookings bookingsvc.Service
}

// NewRouter assembles the full route tree.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": d.DBPinger,
			"redis":    d.RedisPinger,
		}))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	requireAuth := middleware.Auth(cfg.JWT, d.Sessions, d.Users, logg)
	customerOnly := middleware.RequireRole(logg, enums.UserRoleCustomer.String())
	vendorOnly := middleware.RequireRole(logg, enums.UserRoleVendor.String())
	vendorOrAdmin := middleware.RequireRole(logg, enums.UserRoleVendor.String(), enums.UserRoleAdmin.String())

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).Post("/register", controllers.Register(d.Register, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.Login(d.Auth, logg))
			r.Post("/refresh", controllers.Refresh(d.Auth, logg))
			r.With(requireAuth).Post("/logout", controllers.Logout(d.Auth, logg))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.ListVendors(d.Vendors, logg))
			r.With(requireAuth, vendorOnly).Get("/profile", controllers.GetOwnVendorProfile(d.Vendors, logg))
			r.Get("/{id}", controllers.GetVendorProfile(d.Vendors, logg))
			r.With(requireAuth, vendorOrAdmin).Post("/", controllers.CreateVendorProfile(d.Vendors, logg))
			r.With(requireAuth).Put("/{id}", controllers.UpdateVendorProfile(d.Vendors, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(d.Products, logg))
			r.Get("/vendor/{vendorId}", controllers.ListVendorProducts(d.Products, logg))
			r.Get("/{id}", controllers.GetProduct(d.Products, logg))
			r.With(requireAuth, vendorOnly).Post("/", controllers.CreateProduct(d.Products, logg))
			r.With(requireAuth, vendorOnly).Put("/{id}", controllers.UpdateProduct(d.Products, logg))
			r.With(requireAuth, vendorOnly).Delete("/{id}", controllers.DeleteProduct(d.Products, logg))
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", controllers.ListServices(d.Services, logg))
			r.Get("/vendor/{vendorId}", controllers.ListVendorServices(d.Services, logg))
			r.Get("/{id}", controllers.GetService(d.Services, logg))
			r.With(requireAuth, vendorOnly).Post("/", controllers.CreateService(d.Services, logg))
			r.With(requireAuth, vendorOnly).Put("/{id}", controllers.UpdateService(d.Services, logg))
			r.With(requireAuth, vendorOnly).Delete("/{id}", controllers.DeleteService(d.Services, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(requireAuth, customerOnly)
			r.Get("/", controllers.GetCart(d.Cart, logg))
			r.Post("/", controllers.AddCartItem(d.Cart, logg))
			r.Put("/{itemId}", controllers.UpdateCartItem(d.Cart, logg))
			r.Delete("/{itemId}", controllers.RemoveCartItem(d.Cart, logg))
			r.Delete("/", controllers.ClearCart(d.Cart, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(requireAuth)
			r.With(customerOnly).Post("/", controllers.PlaceOrder(d.Orders, logg))
			r.With(customerOnly).Get("/my", controllers.ListMyOrders(d.Orders, logg))
			r.With(vendorOnly).Get("/vendor", controllers.ListVendorOrders(d.Orders, logg))
			r.Get("/{id}", controllers.GetOrder(d.Orders, logg))
			r.With(vendorOnly).Put("/{id}/status", controllers.UpdateOrderStatus(d.Orders, logg))
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(requireAuth)
			r.With(customerOnly).Post("/", controllers.CreateBooking(d.Bookings, logg))
			r.With(customerOnly).Get("/my", controllers.ListMyBookings(d.Bookings, logg))
			r.With(vendorOnly).Get("/vendor", controllers.ListVendorBookings(d.Bookings, logg))
			r.Get("/{id}", controllers.GetBooking(d.Bookings, logg))
			r.With(vendorOnly).Put("/{id}/status", controllers.UpdateBookingStatus(d.Bookings, logg))
		})
	})

	return r
}
