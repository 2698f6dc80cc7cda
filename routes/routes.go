package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/barberops/backend/app"
	"github.com/barberops/backend/auth"
	"github.com/barberops/backend/handlers"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Resolve the caller identity on every request. Handlers below decide
	// whether an identity is required.
	r.Use(deps.AuthMiddleware.PopulateIdentity)

	// Handlers
	authHandler := handlers.NewAuthHandler(deps.Authenticator, deps.Logger)
	shopHandler := handlers.NewShopHandler(deps.Shops, deps.Logger)
	clientHandler := handlers.NewClientHandler(deps.Clients, deps.Logger)
	userHandler := handlers.NewUserHandler(deps.Users, deps.Logger)
	roleHandler := handlers.NewRoleHandler(deps.Roles, deps.Logger)
	permissionHandler := handlers.NewPermissionHandler(deps.Permissions, deps.Logger)
	productHandler := handlers.NewProductHandler(deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.DB.DB, deps.Logger)

	// Health check endpoints
	r.Get("/healthz", healthHandler.HandleHealth)
	r.Get("/readyz", healthHandler.HandleReadiness)

	// Authentication endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signin", authHandler.HandleSignIn)
		r.With(deps.AuthMiddleware.RequireAuthenticated).Get("/me", authHandler.HandleMe)
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Shop registration is the entry point for new tenants
		r.Post("/contracting/register", shopHandler.HandleRegisterShop)

		// Shop management
		r.Route("/shops", func(r chi.Router) {
			r.Post("/", shopHandler.HandleRegisterShop)

			r.Group(func(r chi.Router) {
				r.Use(deps.AuthMiddleware.RequireAuthenticated)
				r.Get("/", shopHandler.HandleListShops)
				r.Get("/{id}", shopHandler.HandleGetShop)
				r.Put("/{id}", shopHandler.HandleUpdateShop)
				r.Delete("/{id}", shopHandler.HandleDeleteShop)

				// Per-shop client management
				r.Route("/{shopID}/clients", func(r chi.Router) {
					r.Post("/", clientHandler.HandleCreateClient)
					r.Get("/", clientHandler.HandleListClients)
					r.Get("/{id}", clientHandler.HandleGetClient)
					r.Put("/{id}", clientHandler.HandleUpdateClient)
					r.Delete("/{id}", clientHandler.HandleDeleteClient)
				})

				// Per-shop staff listing
				r.Get("/{shopID}/users", userHandler.HandleListShopUsers)
			})
		})

		// User management
		r.Route("/users", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuthenticated)
			r.Post("/", userHandler.HandleCreateUser)
			r.Get("/{id}", userHandler.HandleGetUser)
			r.Put("/{id}", userHandler.HandleUpdateUser)
			r.Post("/{id}/password", userHandler.HandleChangePassword)
			r.Delete("/{id}", userHandler.HandleDeactivateUser)
		})

		// Role management (admin only)
		r.Route("/roles", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuthenticated)
			r.Use(deps.AuthMiddleware.RequireAuthority("ROLE_ADMIN"))
			r.Post("/", roleHandler.HandleCreateRole)
			r.Get("/", roleHandler.HandleListRoles)
			r.Get("/{id}", roleHandler.HandleGetRole)
			r.Put("/{id}", roleHandler.HandleUpdateRole)
			r.Delete("/{id}", roleHandler.HandleDeleteRole)
		})

		// Permission catalog (admin only)
		r.Route("/permissions", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuthenticated)
			r.Use(deps.AuthMiddleware.RequireAuthority("ROLE_ADMIN"))
			r.Post("/", permissionHandler.HandleCreatePermission)
			r.Get("/", permissionHandler.HandleListPermissions)
			r.Get("/{id}", permissionHandler.HandleGetPermission)
			r.Put("/{id}", permissionHandler.HandleUpdatePermission)
			r.Delete("/{id}", permissionHandler.HandleDeletePermission)
		})

		// Product catalog, gated per permission rather than per role
		r.Route("/products", func(r chi.Router) {
			r.With(deps.AuthMiddleware.RequireAuthority(auth.PermProductAdd)).
				Post("/", productHandler.HandleAddProduct)
			r.With(deps.AuthMiddleware.RequireAuthority(auth.PermProductViewAll)).
				Get("/", productHandler.HandleListProducts)
			r.With(deps.AuthMiddleware.RequireAuthority(auth.PermProductView)).
				Get("/{id}", productHandler.HandleGetProduct)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
