package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LoanStatusPending   = "pending"
	LoanStatusApproved  = "approved"
	LoanStatusRejected  = "rejected"
	LoanStatusActive    = "active"
	LoanStatusExtended  = "extended"
	LoanStatusCompleted = "completed"
	LoanStatusOverdue   = "overdue"
	LoanStatusDefaulted = "defaulted"
)

// Loan represents a microloan. Money fields are whole tögrög; the
// currency has no subunits. RemainingAmount is always maintained as
// TotalAmount - PaidAmount.
type Loan struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	LoanNumber      string          `json:"loanNumber" db:"loan_number"`
	UserID          uuid.UUID       `json:"userId" db:"user_id"`
	Status          string          `json:"status" db:"status"`
	Principal       int64           `json:"principal" db:"principal"`
	InterestRate    decimal.Decimal `json:"interestRate" db:"interest_rate"`
	InterestAmount  int64           `json:"interestAmount" db:"interest_amount"`
	TotalAmount     int64           `json:"totalAmount" db:"total_amount"`
	PaidAmount      int64           `json:"paidAmount" db:"paid_amount"`
	RemainingAmount int64           `json:"remainingAmount" db:"remaining_amount"`
	LateFee         int64           `json:"lateFee" db:"late_fee"`
	Term            int             `json:"term" db:"term"`
	Purpose         string          `json:"purpose" db:"purpose"`
	ExtensionCount  int             `json:"extensionCount" db:"extension_count"`
	Extensions      []*Extension    `json:"extensions" db:"-"`
	DueDate         *time.Time      `json:"dueDate" db:"due_date"`
	DisbursedAt     *time.Time      `json:"disbursedAt" db:"disbursed_at"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// Repayable reports whether the loan is in a state that accepts
// payments or extensions.
func (l *Loan) Repayable() bool {
	switch l.Status {
	case LoanStatusActive, LoanStatusExtended, LoanStatusOverdue:
		return true
	}
	return false
}

// TotalDue is what the borrower owes right now, late fees included.
func (l *Loan) TotalDue() int64 {
	return l.RemainingAmount + l.LateFee
}

// Extension records one paid due-date extension of a loan.
type Extension struct {
	ID           uuid.UUID `json:"id" db:"id"`
	LoanID       uuid.UUID `json:"loanId" db:"loan_id"`
	ExtensionFee int64     `json:"extensionFee" db:"extension_fee"`
	NewDueDate   time.Time `json:"newDueDate" db:"new_due_date"`
	ExtendedAt   time.Time `json:"extendedAt" db:"extended_at"`
}

// DTOs for requests and responses

type ApplyLoanRequest struct {
	Amount  int64  `json:"amount" validate:"required"`
	Term    int    `json:"term" validate:"required"`
	Purpose string `json:"purpose"`
}

type RepayLoanRequest struct {
	Amount int64 `json:"amount" validate:"required"`
}

type LoanListResponse struct {
	Loans []*Loan `json:"loans"`
}

type LoanResponse struct {
	Loan *Loan `json:"loan"`
}
