package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	TransactionTypeDeposit      = "deposit"
	TransactionTypeWithdrawal   = "withdrawal"
	TransactionTypeDisbursement = "disbursement"
	TransactionTypeRepayment    = "repayment"
	TransactionTypeExtensionFee = "extension_fee"
)

// Wallet holds a user's balance. FrozenBalance is held against pending
// withdrawals and is not spendable.
type Wallet struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"userId" db:"user_id"`
	Balance       int64     `json:"balance" db:"balance"`
	FrozenBalance int64     `json:"frozenBalance" db:"frozen_balance"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// AvailableBalance is the portion eligible for spending or withdrawal.
func (w *Wallet) AvailableBalance() int64 {
	return w.Balance - w.FrozenBalance
}

// Transaction is one wallet ledger entry.
type Transaction struct {
	ID          uuid.UUID `json:"id" db:"id"`
	WalletID    uuid.UUID `json:"walletId" db:"wallet_id"`
	UserID      uuid.UUID `json:"userId" db:"user_id"`
	Type        string    `json:"type" db:"type"`
	Amount      int64     `json:"amount" db:"amount"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type DepositRequest struct {
	Amount int64 `json:"amount" validate:"required"`
}

type WithdrawRequest struct {
	Amount        int64  `json:"amount" validate:"required"`
	BankName      string `json:"bankName" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required"`
}

type WalletResponse struct {
	Wallet           *Wallet `json:"wallet"`
	AvailableBalance int64   `json:"availableBalance"`
}

type TransactionListResponse struct {
	Transactions []*Transaction `json:"transactions"`
}
