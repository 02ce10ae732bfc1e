package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cashly/loan-engine/internal/domain"
)

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create creates a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByID retrieves a loan by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// GetByUser retrieves all loans of a user, newest first
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error)

	// GetActiveByUser retrieves loans in active, extended or overdue status
	GetActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error)

	// Update persists mutable loan fields
	Update(ctx context.Context, loan *domain.Loan) error

	// AddExtension records one due-date extension
	AddExtension(ctx context.Context, ext *domain.Extension) error

	// GetExtensions retrieves a loan's extension history, oldest first
	GetExtensions(ctx context.Context, loanID uuid.UUID) ([]*domain.Extension, error)

	// GetDueBefore retrieves loans in the given statuses whose due date
	// is before the cutoff
	GetDueBefore(ctx context.Context, statuses []string, cutoff time.Time) ([]*domain.Loan, error)

	// GetByStatus retrieves all loans in a status
	GetByStatus(ctx context.Context, status string) ([]*domain.Loan, error)
}

// WalletRepository defines the interface for wallet data operations
type WalletRepository interface {
	// Create creates a wallet for a user
	Create(ctx context.Context, wallet *domain.Wallet) error

	// GetByUserID retrieves a user's wallet
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)

	// UpdateBalances persists balance and frozen balance
	UpdateBalances(ctx context.Context, wallet *domain.Wallet) error

	// CreateTransaction records a ledger entry
	CreateTransaction(ctx context.Context, txn *domain.Transaction) error

	// GetTransactions retrieves a user's ledger entries, newest first
	GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Transaction, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByPhone retrieves a user by phone number
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)

	// UpdateKYCStatus sets the KYC status
	UpdateKYCStatus(ctx context.Context, userID uuid.UUID, status string) error

	// UpdateKYC stores a KYC submission's register number together with
	// the new status
	UpdateKYC(ctx context.Context, userID uuid.UUID, registerNumber, status string) error

	// UpdateCreditLimit sets the credit limit
	UpdateCreditLimit(ctx context.Context, userID uuid.UUID, limit int64) error
}
