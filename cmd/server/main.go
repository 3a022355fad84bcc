package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/emintt/coffee-shop-backend-23/internal/auth"
	"github.com/emintt/coffee-shop-backend-23/internal/config"
	"github.com/emintt/coffee-shop-backend-23/internal/handlers"
	"github.com/emintt/coffee-shop-backend-23/internal/models"
	"github.com/emintt/coffee-shop-backend-23/internal/store"
)

func main() {
	// Configure slog as early as possible in main.
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run Migrations
	if err := db.Migrate(cfg.MigrationsDir); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Media storage for dish photos
	media, err := handlers.NewMediaStore(cfg.MediaDir)
	if err != nil {
		slog.Error("Failed to initialize media store", "error", err)
		os.Exit(1)
	}

	// 4. Token manager
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// 5. Setup Handlers
	authHandler := &handlers.AuthHandler{Store: db, Tokens: tokens}
	dishHandler := &handlers.DishHandler{Store: db, Media: media}
	offerHandler := &handlers.OfferHandler{Store: db}

	adminOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return handlers.RequireAuth(tokens, handlers.RequireRole(next,
			models.RoleSuperAdmin, models.RoleAdmin))
	}

	r := mux.NewRouter()
	r.Use(handlers.LoggingMiddleware, handlers.SecurityHeadersMiddleware, handlers.MetricsMiddleware)

	// Rate limiter on the auth endpoints (5 req/s with a burst of 10 per client)
	rateLimiter := handlers.NewRateLimiter(rate.Limit(5), 10)

	api := r.PathPrefix("/api").Subrouter()

	// Catalog
	api.HandleFunc("/dish", dishHandler.Menu).Methods(http.MethodGet)
	api.HandleFunc("/dish/logged", handlers.RequireAuth(tokens, dishHandler.Menu)).Methods(http.MethodGet)
	api.HandleFunc("/dish/offers", handlers.RequireAuth(tokens, offerHandler.ListOfferDishes)).Methods(http.MethodGet)
	api.HandleFunc("/dish/offers", adminOnly(offerHandler.CreateOffer)).Methods(http.MethodPost)
	api.HandleFunc("/dish/{id:[0-9]+}", handlers.OptionalAuth(tokens, dishHandler.GetDish)).Methods(http.MethodGet)
	api.HandleFunc("/dish", adminOnly(dishHandler.CreateDish)).Methods(http.MethodPost)
	api.HandleFunc("/dish/{id:[0-9]+}", adminOnly(dishHandler.UpdateDish)).Methods(http.MethodPut)
	api.HandleFunc("/dish/{id:[0-9]+}", adminOnly(dishHandler.DeleteDish)).Methods(http.MethodDelete)
	api.HandleFunc("/categories", dishHandler.Categories).Methods(http.MethodGet)

	// Auth
	api.HandleFunc("/auth/login", rateLimiter.Middleware(authHandler.Login)).Methods(http.MethodPost)
	api.HandleFunc("/auth/login-admin", rateLimiter.Middleware(authHandler.LoginAdmin)).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", rateLimiter.Middleware(authHandler.Register)).Methods(http.MethodPost)
	api.HandleFunc("/auth/register-admin", rateLimiter.Middleware(adminOnly(authHandler.RegisterAdmin))).Methods(http.MethodPost)

	// Uploaded dish photos
	fileServer := http.FileServer(http.Dir(cfg.MediaDir))
	r.PathPrefix("/media/").Handler(http.StripPrefix("/media/", fileServer)).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// 6. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
