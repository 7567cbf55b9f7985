package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopstack/storefront-platform/internal/api/handlers"
	"github.com/shopstack/storefront-platform/internal/api/middleware"
	"github.com/shopstack/storefront-platform/internal/cache"
	"github.com/shopstack/storefront-platform/internal/config"
	"github.com/shopstack/storefront-platform/internal/health"
	"github.com/shopstack/storefront-platform/internal/metrics"
	"github.com/shopstack/storefront-platform/internal/migrate"
	repository "github.com/shopstack/storefront-platform/internal/repositories"
	service "github.com/shopstack/storefront-platform/internal/services"
	"github.com/shopstack/storefront-platform/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	shutdownTracing, err := telemetry.SetupTracing(context.Background(), &cfg.Otel)
	if err != nil {
		slog.Error("Failed to set up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	if err := migrate.Apply(repos.DB); err != nil {
		slog.Error("Error applying migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer redisClient.Close()

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)

	userService := service.NewUserService(repos.User, rateLimitRepo, &cfg.Security)
	userHandler := handlers.NewUserHandler(userService)
	categoryService := service.NewCategoryService(repos.Category)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productService := service.NewProductService(repos.Product, repos.Category, productCache)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(repos.Cart, productService)
	cartHandler := handlers.NewCartHandler(cartService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("Storage initialized", slog.String("env", cfg.Env))

	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /auth/register", userHandler.Register())
	routerMux.HandleFunc("POST /auth/login", userHandler.Login())
	routerMux.HandleFunc("GET /auth/profile", authMiddleware.Authenticate(userHandler.Profile()))

	routerMux.HandleFunc("POST /categories", authMiddleware.Authenticate(categoryHandler.CreateCategory()))
	routerMux.HandleFunc("GET /categories", categoryHandler.ListCategories())
	routerMux.HandleFunc("GET /categories/count", categoryHandler.CountCategories())
	routerMux.HandleFunc("GET /categories/{id}", categoryHandler.GetCategory())
	routerMux.HandleFunc("PUT /categories/{id}", authMiddleware.Authenticate(categoryHandler.UpdateCategory()))
	routerMux.HandleFunc("DELETE /categories/{id}", authMiddleware.Authenticate(categoryHandler.DeleteCategory()))

	routerMux.HandleFunc("POST /products", authMiddleware.Authenticate(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /products/count", productHandler.CountProducts())
	routerMux.HandleFunc("GET /products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("PUT /products/{id}", authMiddleware.Authenticate(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /products/{id}", authMiddleware.Authenticate(productHandler.DeleteProduct()))

	routerMux.HandleFunc("GET /cart", authMiddleware.Authenticate(cartHandler.ViewCart()))
	routerMux.HandleFunc("POST /cart/add", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /cart/update/{productId}", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /cart/remove/{productId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /cart/clear", authMiddleware.Authenticate(cartHandler.ClearCart()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "storefront-platform")

	server := http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting", slog.String("address", cfg.HTTPServer.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}

	slog.Info("Server shut down gracefully")
}
