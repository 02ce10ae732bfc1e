package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cashly/loan-engine/internal/domain"
	"github.com/cashly/loan-engine/internal/repository"
	customError "github.com/cashly/loan-engine/pkg/errors"
	"github.com/cashly/loan-engine/pkg/format"
	"github.com/cashly/loan-engine/pkg/validate"
)

// WalletService handles balances, deposits, withdrawals and the
// transaction history.
type WalletService struct {
	walletRepo repository.WalletRepository
}

func NewWalletService(walletRepo repository.WalletRepository) *WalletService {
	return &WalletService{walletRepo: walletRepo}
}

// Get returns the user's wallet.
func (s *WalletService) Get(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapWalletNotFound(userID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return wallet, nil
}

// Deposit credits the wallet balance.
func (s *WalletService) Deposit(ctx context.Context, userID uuid.UUID, amount int64) (*domain.Wallet, error) {
	if amount <= 0 {
		return nil, customError.WrapInvalidAmount("Дүн оруулна уу")
	}

	wallet, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	wallet.Balance += amount
	if err := s.walletRepo.UpdateBalances(ctx, wallet); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if err := s.record(ctx, wallet, domain.TransactionTypeDeposit, amount, "Хэтэвч цэнэглэлт"); err != nil {
		return nil, err
	}

	return wallet, nil
}

// Withdraw sends the requested amount to a bank account. Only the
// available balance (balance minus frozen) is spendable.
func (s *WalletService) Withdraw(ctx context.Context, userID uuid.UUID, request *domain.WithdrawRequest) (*domain.Wallet, error) {
	if request.Amount <= 0 {
		return nil, customError.WrapInvalidAmount("Дүн оруулна уу")
	}

	if !validate.AccountNumber(request.AccountNumber) {
		return nil, customError.WrapValidationFailed("Дансны дугаар буруу байна")
	}

	wallet, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	available := wallet.AvailableBalance()
	if request.Amount > available {
		return nil, customError.WrapInvalidAmount(
			fmt.Sprintf("Хэтэвчийн үлдэгдэл хүрэлцэхгүй. Боломжит: %s", format.Money(float64(available), true)))
	}

	wallet.Balance -= request.Amount
	if err := s.walletRepo.UpdateBalances(ctx, wallet); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	description := fmt.Sprintf("Таталт: %s %s", request.BankName, maskAccount(request.AccountNumber))
	if err := s.record(ctx, wallet, domain.TransactionTypeWithdrawal, request.Amount, description); err != nil {
		return nil, err
	}

	return wallet, nil
}

// Transactions returns the user's ledger entries, newest first.
func (s *WalletService) Transactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	txns, err := s.walletRepo.GetTransactions(ctx, userID, limit, offset)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return txns, nil
}

func (s *WalletService) record(ctx context.Context, wallet *domain.Wallet, txnType string, amount int64, description string) error {
	txn := &domain.Transaction{
		ID:          uuid.New(),
		WalletID:    wallet.ID,
		UserID:      wallet.UserID,
		Type:        txnType,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now(),
	}

	if err := s.walletRepo.CreateTransaction(ctx, txn); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// maskAccount keeps the last four digits of an account number.
func maskAccount(account string) string {
	if len(account) <= 4 {
		return account
	}
	return "****" + account[len(account)-4:]
}
