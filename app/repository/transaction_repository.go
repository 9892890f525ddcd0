package repository

import (
	"github.com/pagebound/BookCrate/app/models"
	"gorm.io/gorm"
)

// transactionRepository implements the TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(tx *models.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *transactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Preload("Order").First(&tx, id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) GetByProviderRef(ref string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("provider_ref = ?", ref).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) GetByOrderID(orderID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.Where("order_id = ?", orderID).Order("created_at DESC").Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) List(offset, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.Preload("Order").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Transaction{}).Count(&count).Error
	return count, err
}
