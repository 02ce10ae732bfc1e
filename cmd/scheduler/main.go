package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/cashly/loan-engine/internal/config"
	"github.com/cashly/loan-engine/internal/repository"
	"github.com/cashly/loan-engine/internal/service"
)

func main() {
	log.Println("Starting loan scheduler...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	loanRepo := repository.NewLoanRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	userRepo := repository.NewUserRepository(db)

	// The scheduler talks straight to the database; no cache involved.
	loanService := service.NewLoanService(loanRepo, walletRepo, userRepo, nil, cfg)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	_, err = c.AddFunc(cfg.Scheduler.OverdueSpec, func() {
		runDailySweep(loanService)
	})
	if err != nil {
		log.Fatalf("Error scheduling daily sweep: %v", err)
	}

	c.Start()
	log.Println("Scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

// runDailySweep marks loans overdue, accrues a day of late fees and
// writes off loans past the grace period, in that order.
func runDailySweep(loanService *service.LoanService) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	marked, err := loanService.MarkOverdue(ctx)
	if err != nil {
		log.Printf("MarkOverdue failed: %v", err)
	} else {
		log.Printf("Marked %d loans overdue", marked)
	}

	accrued, err := loanService.AccrueLateFees(ctx)
	if err != nil {
		log.Printf("AccrueLateFees failed: %v", err)
	} else {
		log.Printf("Accrued late fees on %d loans", accrued)
	}

	defaulted, err := loanService.MarkDefaulted(ctx)
	if err != nil {
		log.Printf("MarkDefaulted failed: %v", err)
	} else {
		log.Printf("Marked %d loans defaulted", defaulted)
	}
}
