package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/config"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/handlers"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/logger"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/middleware"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/services"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	log := logger.New(cfg.Logger.Level, cfg.IsProduction())
	defer log.Sync()

	// Create session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400, // 1 day; checkout itself expires far sooner
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}

	// Checkout sessions live server-side: Redis when configured,
	// process memory otherwise
	var checkouts store.CheckoutStore
	if cfg.Redis.Addr != "" {
		redisClient := store.NewRedisClient(cfg.Redis)
		checkouts = store.NewRedisCheckoutStore(redisClient, log)
		log.Info("checkout store: redis", "addr", cfg.Redis.Addr)
	} else {
		checkouts = store.NewMemoryCheckoutStore()
		log.Info("checkout store: in-memory")
	}

	// Backend client and services
	backend := services.NewBackendClient(cfg.Backend.BaseURL, log)
	catalogService := services.NewCatalogService(backend, log)
	registrationService := services.NewRegistrationService(backend, cfg.Backend.PhonePrefix, log)
	handoff := store.NewHandoffStore(sessionStore)

	// Handlers
	cartHandler := handlers.NewCartHandler(catalogService, sessionStore, log)
	checkoutHandler := handlers.NewCheckoutHandler(catalogService, registrationService, checkouts, sessionStore, log)
	paymentHandler := handlers.NewPaymentHandler(backend, handoff, log)

	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.ErrorHandlingMiddleware(log))
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/tickets", cartHandler.ListTickets)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.ViewCart)
			r.Post("/items", cartHandler.UpdateCartItem)
			r.Post("/clear", cartHandler.ClearCart)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.StartCheckout)
			r.Get("/", checkoutHandler.GetCheckout)
			r.Put("/slots/{index}", checkoutHandler.SaveSlot)
			r.Post("/slots/{index}/open", checkoutHandler.OpenSlot)
			r.Post("/submit", checkoutHandler.Submit)
		})
	})

	r.Route("/payment", func(r chi.Router) {
		r.Get("/return", paymentHandler.PaymentReturn) // gateway redirects here (no auth)
		r.Get("/result", paymentHandler.PaymentResult)
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Info("server starting", "addr", addr, "env", cfg.Server.Env)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
