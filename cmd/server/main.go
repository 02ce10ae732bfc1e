package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/cashly/loan-engine/internal/config"
	"github.com/cashly/loan-engine/internal/handler"
	"github.com/cashly/loan-engine/internal/repository"
	"github.com/cashly/loan-engine/internal/service"
	"github.com/cashly/loan-engine/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	loanRepo := repository.NewLoanRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	userRepo := repository.NewUserRepository(db)

	loanService := service.NewLoanService(loanRepo, walletRepo, userRepo, redisClient, cfg)
	walletService := service.NewWalletService(walletRepo)
	authService := service.NewAuthService(userRepo, walletRepo, cfg)

	loanHandler := handler.NewLoanHandler(loanService)
	walletHandler := handler.NewWalletHandler(walletService)
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(cfg, loanHandler, walletHandler, authHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.GetConnMaxLifetime())

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	cfg *config.Config,
	loanHandler *handler.LoanHandler,
	walletHandler *handler.WalletHandler,
	authHandler *handler.AuthHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.CORSMiddleware)
	router.Use(response.LoggingMiddleware)

	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Everything else requires a session token
	authed := api.NewRoute().Subrouter()
	authed.Use(handler.AuthMiddleware(cfg.Auth.JWTSecret))

	authed.HandleFunc("/user/profile", authHandler.Profile).Methods("GET")
	authed.HandleFunc("/user/submit-kyc", authHandler.SubmitKYC).Methods("POST")
	authed.HandleFunc("/user/{userId}/approve-kyc", authHandler.ApproveKYC).Methods("POST")

	authed.HandleFunc("/loan/apply", loanHandler.Apply).Methods("POST")
	authed.HandleFunc("/loan/my-loans", loanHandler.MyLoans).Methods("GET")
	authed.HandleFunc("/loan/active-loans", loanHandler.ActiveLoans).Methods("GET")
	authed.HandleFunc("/loan/extend/{loanId}", loanHandler.Extend).Methods("POST")
	authed.HandleFunc("/loan/repay/{loanId}", loanHandler.Repay).Methods("POST")
	authed.HandleFunc("/loan/{loanId}/approve", loanHandler.Approve).Methods("POST")
	authed.HandleFunc("/loan/{loanId}/reject", loanHandler.Reject).Methods("POST")
	authed.HandleFunc("/loan/{loanId}", loanHandler.Get).Methods("GET")

	authed.HandleFunc("/wallet/balance", walletHandler.Balance).Methods("GET")
	authed.HandleFunc("/wallet/deposit", walletHandler.Deposit).Methods("POST")
	authed.HandleFunc("/wallet/request-withdrawal", walletHandler.Withdraw).Methods("POST")
	authed.HandleFunc("/transaction/history", walletHandler.Transactions).Methods("GET")

	return router
}
