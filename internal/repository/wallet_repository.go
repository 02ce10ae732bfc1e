package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cashly/loan-engine/internal/domain"
)

type walletRepository struct {
	db *sqlx.DB
}

func NewWalletRepository(db *sqlx.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (id, user_id, balance, frozen_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		wallet.ID,
		wallet.UserID,
		wallet.Balance,
		wallet.FrozenBalance,
		wallet.CreatedAt,
		wallet.UpdatedAt,
	)

	return err
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	query := `
		SELECT id, user_id, balance, frozen_balance, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
	`

	var wallet domain.Wallet
	if err := r.db.GetContext(ctx, &wallet, query, userID); err != nil {
		return nil, err
	}

	return &wallet, nil
}

func (r *walletRepository) UpdateBalances(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		UPDATE wallets
		SET balance = $2, frozen_balance = $3, updated_at = $4
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		wallet.ID,
		wallet.Balance,
		wallet.FrozenBalance,
		time.Now(),
	)

	return err
}

func (r *walletRepository) CreateTransaction(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, wallet_id, user_id, type, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		txn.ID,
		txn.WalletID,
		txn.UserID,
		txn.Type,
		txn.Amount,
		txn.Description,
		txn.CreatedAt,
	)

	return err
}

func (r *walletRepository) GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT id, wallet_id, user_id, type, amount, description, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var txns []*domain.Transaction
	if err := r.db.SelectContext(ctx, &txns, query, userID, limit, offset); err != nil {
		return nil, err
	}

	return txns, nil
}
