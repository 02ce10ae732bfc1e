package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/cashly/loan-engine/internal/config"
	"github.com/cashly/loan-engine/internal/domain"
	"github.com/cashly/loan-engine/internal/policy"
	"github.com/cashly/loan-engine/internal/repository"
	customError "github.com/cashly/loan-engine/pkg/errors"
	"github.com/cashly/loan-engine/pkg/format"
	"github.com/cashly/loan-engine/pkg/validate"
)

// LoanService owns the loan lifecycle: application, approval,
// disbursement, extension, repayment and the overdue/default sweeps.
type LoanService struct {
	loanRepo   repository.LoanRepository
	walletRepo repository.WalletRepository
	userRepo   repository.UserRepository
	redis      *redis.Client
	config     *config.Config
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	walletRepo repository.WalletRepository,
	userRepo repository.UserRepository,
	redisClient *redis.Client,
	cfg *config.Config,
) *LoanService {
	return &LoanService{
		loanRepo:   loanRepo,
		walletRepo: walletRepo,
		userRepo:   userRepo,
		redis:      redisClient,
		config:     cfg,
	}
}

// Apply validates a loan request against the borrower's credit limit
// and creates a pending loan with a projected quote. The rate fallback
// inside the quote never fires here: unknown terms are rejected up
// front, the same way the term selector constrains the form.
func (s *LoanService) Apply(ctx context.Context, userID uuid.UUID, request *domain.ApplyLoanRequest) (*domain.Loan, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapUserNotFound(userID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if !validate.LoanTerm(request.Term) {
		return nil, customError.WrapInvalidLoanTerm(request.Term)
	}

	if result := validate.LoanAmount(request.Amount, user.CreditLimit); !result.Valid {
		return nil, customError.WrapInvalidAmount(result.Message)
	}

	quote := policy.ComputeQuote(request.Amount, request.Term)

	now := time.Now()
	loan := &domain.Loan{
		ID:              uuid.New(),
		LoanNumber:      newLoanNumber(),
		UserID:          userID,
		Status:          domain.LoanStatusPending,
		Principal:       quote.Principal,
		InterestRate:    quote.Rate,
		InterestAmount:  quote.InterestAmount,
		TotalAmount:     quote.TotalAmount,
		RemainingAmount: quote.TotalAmount,
		Term:            quote.Term,
		Purpose:         request.Purpose,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return loan, nil
}

// Approve activates a pending loan: the clock starts now, the due date
// lands one term out, and the principal is disbursed to the wallet.
func (s *LoanService) Approve(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.Status != domain.LoanStatusPending {
		return nil, customError.WrapLoanNotPending(loan.LoanNumber, loan.Status)
	}

	now := time.Now()
	dueDate := now.AddDate(0, 0, loan.Term)

	loan.Status = domain.LoanStatusActive
	loan.DisbursedAt = &now
	loan.DueDate = &dueDate
	loan.UpdatedAt = now

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if err := s.creditWallet(ctx, loan.UserID, loan.Principal, domain.TransactionTypeDisbursement,
		fmt.Sprintf("Зээл олголт %s", loan.LoanNumber)); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, loan.ID)

	return loan, nil
}

// Reject declines a pending loan.
func (s *LoanService) Reject(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.Status != domain.LoanStatusPending {
		return nil, customError.WrapLoanNotPending(loan.LoanNumber, loan.Status)
	}

	loan.Status = domain.LoanStatusRejected
	loan.UpdatedAt = time.Now()

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateCache(ctx, loan.ID)

	return loan, nil
}

// Get returns a loan with its extension history, serving repeated
// reads from the cache.
func (s *LoanService) Get(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	if cached := s.cachedLoan(ctx, loanID); cached != nil {
		return cached, nil
	}

	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	extensions, err := s.loanRepo.GetExtensions(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	loan.Extensions = extensions

	s.cacheLoan(ctx, loan)

	return loan, nil
}

// ListByUser returns all of a user's loans, newest first.
func (s *LoanService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	loans, err := s.loanRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loans, nil
}

// ListActiveByUser returns the user's loans that still carry a balance.
func (s *LoanService) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	loans, err := s.loanRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loans, nil
}

// Extend pushes the due date forward by one term cycle for the price
// of the original interest amount, charged from the wallet. 14-day
// loans are never extendable and each loan gets at most four
// extensions.
func (s *LoanService) Extend(ctx context.Context, userID, loanID uuid.UUID) (*domain.Loan, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.UserID != userID {
		return nil, customError.WrapLoanNotFound(loanID.String())
	}

	if !loan.Repayable() {
		return nil, customError.WrapLoanNotRepayable(loan.LoanNumber, loan.Status)
	}

	if loan.Term == policy.NonExtendableTerm {
		return nil, customError.WrapLoanNotExtendable(loan.LoanNumber, loan.Term)
	}
	if !policy.Extendable(loan.Term, loan.ExtensionCount) {
		return nil, customError.WrapExtensionLimit(loan.LoanNumber, loan.ExtensionCount)
	}

	fee := loan.InterestAmount
	if err := s.debitWallet(ctx, userID, fee, domain.TransactionTypeExtensionFee,
		fmt.Sprintf("Зээл сунгалт %s", loan.LoanNumber)); err != nil {
		return nil, err
	}

	now := time.Now()
	base := now
	if loan.DueDate != nil {
		base = *loan.DueDate
	}
	newDueDate := base.AddDate(0, 0, loan.Term)

	ext := &domain.Extension{
		ID:           uuid.New(),
		LoanID:       loan.ID,
		ExtensionFee: fee,
		NewDueDate:   newDueDate,
		ExtendedAt:   now,
	}
	if err := s.loanRepo.AddExtension(ctx, ext); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	loan.Status = domain.LoanStatusExtended
	loan.DueDate = &newDueDate
	loan.ExtensionCount++
	loan.UpdatedAt = now

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateCache(ctx, loan.ID)

	return loan, nil
}

// Repay applies a payment to a loan. Late fees settle first, the rest
// reduces the remaining amount; the loan completes when nothing is
// left. Payments above the total due are rejected.
func (s *LoanService) Repay(ctx context.Context, userID, loanID uuid.UUID, amount int64) (*domain.Loan, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.UserID != userID {
		return nil, customError.WrapLoanNotFound(loanID.String())
	}

	if !loan.Repayable() {
		return nil, customError.WrapLoanNotRepayable(loan.LoanNumber, loan.Status)
	}

	totalDue := loan.TotalDue()
	if amount <= 0 {
		return nil, customError.WrapInvalidAmount("Дүн буруу байна")
	}
	if amount > totalDue {
		return nil, customError.WrapInvalidAmount(
			fmt.Sprintf("Төлөх дүн хэт их байна. Төлөх ёстой: %s", format.Money(float64(totalDue), true)))
	}

	if err := s.debitWallet(ctx, userID, amount, domain.TransactionTypeRepayment,
		fmt.Sprintf("Зээл төлөлт %s", loan.LoanNumber)); err != nil {
		return nil, err
	}

	feePart := amount
	if feePart > loan.LateFee {
		feePart = loan.LateFee
	}
	loan.LateFee -= feePart
	loan.PaidAmount += amount - feePart
	loan.RemainingAmount = loan.TotalAmount - loan.PaidAmount

	if loan.RemainingAmount == 0 && loan.LateFee == 0 {
		loan.Status = domain.LoanStatusCompleted
	}
	loan.UpdatedAt = time.Now()

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateCache(ctx, loan.ID)

	return loan, nil
}

// MarkOverdue flips active and extended loans past their due date to
// overdue. Run daily by the scheduler.
func (s *LoanService) MarkOverdue(ctx context.Context) (int, error) {
	statuses := []string{domain.LoanStatusActive, domain.LoanStatusExtended}

	loans, err := s.loanRepo.GetDueBefore(ctx, statuses, time.Now())
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	marked := 0
	for _, loan := range loans {
		loan.Status = domain.LoanStatusOverdue
		loan.UpdatedAt = time.Now()

		if err := s.loanRepo.Update(ctx, loan); err != nil {
			return marked, customError.WrapDatabaseError(err)
		}

		s.invalidateCache(ctx, loan.ID)
		marked++
	}

	return marked, nil
}

// AccrueLateFees adds one day of late fees to every overdue loan,
// computed from the remaining amount at the configured daily rate.
func (s *LoanService) AccrueLateFees(ctx context.Context) (int, error) {
	loans, err := s.loanRepo.GetByStatus(ctx, domain.LoanStatusOverdue)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	rate := s.config.GetDailyLateFeeRate()
	accrued := 0

	for _, loan := range loans {
		fee := decimal.NewFromInt(loan.RemainingAmount).
			Mul(rate).
			Div(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
		if fee == 0 {
			continue
		}

		loan.LateFee += fee
		loan.UpdatedAt = time.Now()

		if err := s.loanRepo.Update(ctx, loan); err != nil {
			return accrued, customError.WrapDatabaseError(err)
		}

		s.invalidateCache(ctx, loan.ID)
		accrued++
	}

	return accrued, nil
}

// MarkDefaulted writes off overdue loans that stayed unpaid past the
// grace period.
func (s *LoanService) MarkDefaulted(ctx context.Context) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -s.config.Business.DefaultGraceDays)

	loans, err := s.loanRepo.GetDueBefore(ctx, []string{domain.LoanStatusOverdue}, cutoff)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	marked := 0
	for _, loan := range loans {
		loan.Status = domain.LoanStatusDefaulted
		loan.UpdatedAt = time.Now()

		if err := s.loanRepo.Update(ctx, loan); err != nil {
			return marked, customError.WrapDatabaseError(err)
		}

		s.invalidateCache(ctx, loan.ID)
		marked++
	}

	return marked, nil
}

func (s *LoanService) getLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return loan, nil
}

func (s *LoanService) creditWallet(ctx context.Context, userID uuid.UUID, amount int64, txnType, description string) error {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapWalletNotFound(userID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	wallet.Balance += amount
	if err := s.walletRepo.UpdateBalances(ctx, wallet); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return s.recordTransaction(ctx, wallet, txnType, amount, description)
}

func (s *LoanService) debitWallet(ctx context.Context, userID uuid.UUID, amount int64, txnType, description string) error {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapWalletNotFound(userID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if wallet.AvailableBalance() < amount {
		return customError.WrapInsufficientBalance(wallet.AvailableBalance())
	}

	wallet.Balance -= amount
	if err := s.walletRepo.UpdateBalances(ctx, wallet); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return s.recordTransaction(ctx, wallet, txnType, amount, description)
}

func (s *LoanService) recordTransaction(ctx context.Context, wallet *domain.Wallet, txnType string, amount int64, description string) error {
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

func (s *LoanService) cachedLoan(ctx context.Context, loanID uuid.UUID) *domain.Loan {
	if s.redis == nil {
		return nil
	}

	data, err := s.redis.Get(ctx, loanCacheKey(loanID)).Bytes()
	if err != nil {
		return nil
	}

	var loan domain.Loan
	if err := json.Unmarshal(data, &loan); err != nil {
		return nil
	}
	return &loan
}

func (s *LoanService) cacheLoan(ctx context.Context, loan *domain.Loan) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(loan)
	if err != nil {
		return
	}

	s.redis.Set(ctx, loanCacheKey(loan.ID), data, s.config.GetLoanCacheTTL())
}

func (s *LoanService) invalidateCache(ctx context.Context, loanID uuid.UUID) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, loanCacheKey(loanID))
}

func loanCacheKey(loanID uuid.UUID) string {
	return fmt.Sprintf("loan:%s", loanID)
}

func newLoanNumber() string {
	return "CL-" + strings.ToUpper(uuid.New().String()[:8])
}
