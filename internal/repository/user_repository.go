package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cashly/loan-engine/internal/domain"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, phone, name, password_hash, register_number, credit_limit, kyc_status, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Phone,
		user.Name,
		user.PasswordHash,
		user.RegisterNumber,
		user.CreditLimit,
		user.KYCStatus,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, phone); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) UpdateKYCStatus(ctx context.Context, userID uuid.UUID, status string) error {
	query := `UPDATE users SET kyc_status = $2, updated_at = $3 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, userID, status, time.Now())
	return err
}

func (r *userRepository) UpdateKYC(ctx context.Context, userID uuid.UUID, registerNumber, status string) error {
	query := `UPDATE users SET register_number = $2, kyc_status = $3, updated_at = $4 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, userID, registerNumber, status, time.Now())
	return err
}

func (r *userRepository) UpdateCreditLimit(ctx context.Context, userID uuid.UUID, limit int64) error {
	query := `UPDATE users SET credit_limit = $2, updated_at = $3 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, userID, limit, time.Now())
	return err
}
