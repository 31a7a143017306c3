package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"
	"time"

	"github.com/username/wealthfolio/backend/src/config"
	"github.com/username/wealthfolio/backend/src/database"
	"github.com/username/wealthfolio/backend/src/handlers"
	"github.com/username/wealthfolio/backend/src/logger"
	"github.com/username/wealthfolio/backend/src/security"
	"github.com/username/wealthfolio/backend/src/services"
	"github.com/username/wealthfolio/backend/src/storage"
	"github.com/username/wealthfolio/backend/src/storage/memstore"
	"github.com/username/wealthfolio/backend/src/storage/sqlitestore"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
			"http://localhost:5173": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Wealthfolio backend server starting...")

	if config.Cfg.JWTSecret == "" || len(config.Cfg.JWTSecret) < 32 {
		logger.L.Error("JWT_SECRET configuration invalid. Must be at least 32 bytes.")
		os.Exit(1)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	health := database.InitDB(config.Cfg.DatabasePath)
	health.StartMonitor(database.DB, config.Cfg.DBPingInterval)
	logger.L.Info("Database initialized.", "reachable", health.Reachable())

	logger.L.Info("Initializing stores and repositories...")
	durable := sqlitestore.New(database.DB)
	fallback := memstore.New()
	repo := storage.NewRepository(durable, fallback, health.Reachable)

	logger.L.Info("Initializing services and handlers...")
	authService := security.NewAuthService(config.Cfg.JWTSecret)
	summaryService := services.NewSummaryService()

	userHandler := handlers.NewUserHandler(authService, repo.Users)
	portfolioHandler := handlers.NewPortfolioHandler(repo.Portfolios)
	txHandler := handlers.NewTransactionHandler(repo.Transactions)
	financialHandler := handlers.NewFinancialHandler(repo.Portfolios, repo.Transactions, summaryService)
	goalHandler := handlers.NewGoalHandler(repo.Goals)

	logger.L.Info("Configuring routes...")
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "Backend is running!"})
	})

	mux.HandleFunc("POST /api/users/register", userHandler.RegisterUserHandler)
	mux.HandleFunc("POST /api/users/login", userHandler.LoginUserHandler)
	mux.HandleFunc("GET /api/users/profile", userHandler.AuthMiddleware(userHandler.ProfileHandler))

	mux.HandleFunc("GET /api/portfolios", userHandler.AuthMiddleware(portfolioHandler.HandleList))
	mux.HandleFunc("POST /api/portfolios", userHandler.AuthMiddleware(portfolioHandler.HandleCreate))
	mux.HandleFunc("GET /api/portfolios/{id}", userHandler.AuthMiddleware(portfolioHandler.HandleGet))
	mux.HandleFunc("PUT /api/portfolios/{id}", userHandler.AuthMiddleware(portfolioHandler.HandleUpdate))
	mux.HandleFunc("DELETE /api/portfolios/{id}", userHandler.AuthMiddleware(portfolioHandler.HandleDelete))

	mux.HandleFunc("GET /api/transactions", userHandler.AuthMiddleware(txHandler.HandleList))
	mux.HandleFunc("POST /api/transactions", userHandler.AuthMiddleware(txHandler.HandleCreate))
	mux.HandleFunc("GET /api/transactions/{id}", userHandler.AuthMiddleware(txHandler.HandleGet))
	mux.HandleFunc("PUT /api/transactions/{id}", userHandler.AuthMiddleware(txHandler.HandleUpdate))
	mux.HandleFunc("DELETE /api/transactions/{id}", userHandler.AuthMiddleware(txHandler.HandleDelete))

	mux.HandleFunc("GET /api/financial/financial-summary", userHandler.AuthMiddleware(financialHandler.HandleGetFinancialSummary))
	mux.HandleFunc("GET /api/financial/budget-data", userHandler.AuthMiddleware(financialHandler.HandleGetBudgetData))
	mux.HandleFunc("POST /api/financial/financial-data", userHandler.AuthMiddleware(financialHandler.HandleUpdateFinancialData))

	mux.HandleFunc("GET /api/goals", userHandler.AuthMiddleware(goalHandler.HandleList))
	mux.HandleFunc("POST /api/goals", userHandler.AuthMiddleware(goalHandler.HandleCreate))
	mux.HandleFunc("PUT /api/goals/{id}", userHandler.AuthMiddleware(goalHandler.HandleUpdate))
	mux.HandleFunc("DELETE /api/goals/{id}", userHandler.AuthMiddleware(goalHandler.HandleDelete))

	logger.L.Info("Applying global middleware...")
	finalHandler := enableCORS(rateLimitMiddleware(mux))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
