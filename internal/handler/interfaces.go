package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/cashly/loan-engine/internal/domain"
)

// Service interfaces consumed by the handlers, satisfied by the
// concrete services in internal/service.

type LoanService interface {
	Apply(ctx context.Context, userID uuid.UUID, request *domain.ApplyLoanRequest) (*domain.Loan, error)
	Approve(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	Reject(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	Get(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error)
	Extend(ctx context.Context, userID, loanID uuid.UUID) (*domain.Loan, error)
	Repay(ctx context.Context, userID, loanID uuid.UUID, amount int64) (*domain.Loan, error)
}

type WalletService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	Deposit(ctx context.Context, userID uuid.UUID, amount int64) (*domain.Wallet, error)
	Withdraw(ctx context.Context, userID uuid.UUID, request *domain.WithdrawRequest) (*domain.Wallet, error)
	Transactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Transaction, error)
}

type AuthService interface {
	Register(ctx context.Context, request *domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, request *domain.LoginRequest) (*domain.AuthResponse, error)
	Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	SubmitKYC(ctx context.Context, userID uuid.UUID, request *domain.SubmitKYCRequest) error
	ApproveKYC(ctx context.Context, userID uuid.UUID) error
}
