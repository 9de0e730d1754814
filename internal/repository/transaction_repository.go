package repository

import (
	"context"

	"github.com/chorok-lab/carbon-exchange/internal/model"
	"gorm.io/gorm"
)

// TransactionRepository is append-only: there is no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, t *model.Transaction) error
	ListByParty(ctx context.Context, uid string) ([]model.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *model.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transactionRepository) ListByParty(ctx context.Context, uid string) ([]model.Transaction, error) {
	var list []model.Transaction
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", uid, uid).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
