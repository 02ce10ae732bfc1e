package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cashly/loan-engine/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `id, loan_number, user_id, status, principal, interest_rate, interest_amount,
	total_amount, paid_amount, remaining_amount, late_fee, term, purpose, extension_count,
	due_date, disbursed_at, created_at, updated_at`

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.LoanNumber,
		loan.UserID,
		loan.Status,
		loan.Principal,
		loan.InterestRate,
		loan.InterestAmount,
		loan.TotalAmount,
		loan.PaidAmount,
		loan.RemainingAmount,
		loan.LateFee,
		loan.Term,
		loan.Purpose,
		loan.ExtensionCount,
		loan.DueDate,
		loan.DisbursedAt,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	var loan domain.Loan
	if err := r.db.GetContext(ctx, &loan, query, id); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1 ORDER BY created_at DESC`

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query, userID); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) GetActiveByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE user_id = $1 AND status = ANY($2)
		ORDER BY created_at DESC
	`

	statuses := pq.StringArray{
		domain.LoanStatusActive,
		domain.LoanStatusExtended,
		domain.LoanStatusOverdue,
	}

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query, userID, statuses); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	query := `
		UPDATE loans
		SET status = $2, paid_amount = $3, remaining_amount = $4, late_fee = $5,
			extension_count = $6, due_date = $7, disbursed_at = $8, updated_at = $9
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.Status,
		loan.PaidAmount,
		loan.RemainingAmount,
		loan.LateFee,
		loan.ExtensionCount,
		loan.DueDate,
		loan.DisbursedAt,
		time.Now(),
	)

	return err
}

func (r *loanRepository) AddExtension(ctx context.Context, ext *domain.Extension) error {
	query := `
		INSERT INTO loan_extensions (id, loan_id, extension_fee, new_due_date, extended_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		ext.ID,
		ext.LoanID,
		ext.ExtensionFee,
		ext.NewDueDate,
		ext.ExtendedAt,
	)

	return err
}

func (r *loanRepository) GetExtensions(ctx context.Context, loanID uuid.UUID) ([]*domain.Extension, error) {
	query := `
		SELECT id, loan_id, extension_fee, new_due_date, extended_at
		FROM loan_extensions
		WHERE loan_id = $1
		ORDER BY extended_at
	`

	var extensions []*domain.Extension
	if err := r.db.SelectContext(ctx, &extensions, query, loanID); err != nil {
		return nil, err
	}

	return extensions, nil
}

func (r *loanRepository) GetDueBefore(ctx context.Context, statuses []string, cutoff time.Time) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE status = ANY($1) AND due_date < $2
		ORDER BY due_date
	`

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query, pq.StringArray(statuses), cutoff); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) GetByStatus(ctx context.Context, status string) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = $1 ORDER BY due_date`

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query, status); err != nil {
		return nil, err
	}

	return loans, nil
}
