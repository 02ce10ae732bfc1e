package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrLoanNotFound         = errors.New("loan not found")
	ErrLoanNotRepayable     = errors.New("loan does not accept payments in its current status")
	ErrLoanNotExtendable    = errors.New("loan term cannot be extended")
	ErrExtensionLimit       = errors.New("extension limit reached")
	ErrInvalidLoanTerm      = errors.New("invalid loan term")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInsufficientBalance  = errors.New("insufficient wallet balance")
	ErrUserNotFound         = errors.New("user not found")
	ErrPhoneAlreadyTaken    = errors.New("phone number already registered")
	ErrInvalidCredentials   = errors.New("invalid phone or password")
	ErrValidationFailed     = errors.New("validation failed")
	ErrLoanNotPending       = errors.New("loan is not pending")
	ErrWalletNotFound       = errors.New("wallet not found")
)

// BusinessError carries a machine-readable code next to a display
// message for the client.
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeLoanNotFound        = "LOAN_NOT_FOUND"
	ErrCodeLoanNotRepayable    = "LOAN_NOT_REPAYABLE"
	ErrCodeLoanNotExtendable   = "LOAN_NOT_EXTENDABLE"
	ErrCodeExtensionLimit      = "EXTENSION_LIMIT_REACHED"
	ErrCodeInvalidLoanTerm     = "INVALID_LOAN_TERM"
	ErrCodeInvalidAmount       = "INVALID_AMOUNT"
	ErrCodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodePhoneAlreadyTaken   = "PHONE_ALREADY_TAKEN"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeLoanNotPending      = "LOAN_NOT_PENDING"
	ErrCodeWalletNotFound      = "WALLET_NOT_FOUND"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeCacheError          = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapLoanNotRepayable(loanID, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotRepayable,
		fmt.Sprintf("Loan %s is %s and does not accept payments", loanID, status),
		ErrLoanNotRepayable,
	)
}

func WrapLoanNotExtendable(loanID string, term int) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotExtendable,
		fmt.Sprintf("%d-day loan %s cannot be extended", term, loanID),
		ErrLoanNotExtendable,
	)
}

func WrapExtensionLimit(loanID string, count int) *BusinessError {
	return NewBusinessError(
		ErrCodeExtensionLimit,
		fmt.Sprintf("Loan %s has already been extended %d times", loanID, count),
		ErrExtensionLimit,
	)
}

func WrapInvalidLoanTerm(term int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanTerm,
		fmt.Sprintf("Loan term %d is not offered", term),
		ErrInvalidLoanTerm,
	)
}

// WrapInvalidAmount carries a display message produced by the amount
// validators, so the client shows exactly what the form rules decided.
func WrapInvalidAmount(message string) *BusinessError {
	return NewBusinessError(ErrCodeInvalidAmount, message, ErrInvalidAmount)
}

func WrapInsufficientBalance(available int64) *BusinessError {
	return NewBusinessError(
		ErrCodeInsufficientBalance,
		fmt.Sprintf("Available balance %d is not enough", available),
		ErrInsufficientBalance,
	)
}

func WrapUserNotFound(userID string) *BusinessError {
	return NewBusinessError(
		ErrCodeUserNotFound,
		fmt.Sprintf("User %s not found", userID),
		ErrUserNotFound,
	)
}

func WrapPhoneAlreadyTaken(phone string) *BusinessError {
	return NewBusinessError(
		ErrCodePhoneAlreadyTaken,
		fmt.Sprintf("Phone %s is already registered", phone),
		ErrPhoneAlreadyTaken,
	)
}

func WrapInvalidCredentials() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCredentials,
		"Invalid phone or password",
		ErrInvalidCredentials,
	)
}

func WrapValidationFailed(message string) *BusinessError {
	return NewBusinessError(ErrCodeValidationFailed, message, ErrValidationFailed)
}

func WrapLoanNotPending(loanID, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotPending,
		fmt.Sprintf("Loan %s is %s, not pending", loanID, status),
		ErrLoanNotPending,
	)
}

func WrapWalletNotFound(userID string) *BusinessError {
	return NewBusinessError(
		ErrCodeWalletNotFound,
		fmt.Sprintf("Wallet for user %s not found", userID),
		ErrWalletNotFound,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(ErrCodeDatabaseError, "database operation failed", err)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(ErrCodeCacheError, "cache operation failed", err)
}
