package persistence

import (
	"context"
	"errors"

	"github.com/erp/obligations/internal/domain/finance"
	"github.com/erp/obligations/internal/domain/shared"
	"github.com/erp/obligations/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientContractRepository implements finance.ClientContractRepository using GORM
type GormClientContractRepository struct {
	db *gorm.DB
}

// NewGormClientContractRepository creates a new GormClientContractRepository
func NewGormClientContractRepository(db *gorm.DB) *GormClientContractRepository {
	return &GormClientContractRepository{db: db}
}

// FindByID finds a client contract by its ID
func (r *GormClientContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ClientContract, error) {
	var model models.ClientContractModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every client contract ordered by client name
func (r *GormClientContractRepository) FindAll(ctx context.Context) ([]finance.ClientContract, error) {
	var list []models.ClientContractModel
	if err := r.db.WithContext(ctx).Order("client_name ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]finance.ClientContract, len(list))
	for i := range list {
		out[i] = *list[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a client contract
func (r *GormClientContractRepository) Save(ctx context.Context, contract *finance.ClientContract) error {
	return r.db.WithContext(ctx).Save(models.ClientContractModelFromDomain(contract)).Error
}

// SaveWithLock saves with optimistic locking.
// All columns are written so a cleared last_payment_date becomes NULL.
func (r *GormClientContractRepository) SaveWithLock(ctx context.Context, contract *finance.ClientContract) error {
	model := models.ClientContractModelFromDomain(contract)
	result := r.db.WithContext(ctx).
		Model(&models.ClientContractModel{}).
		Where("id = ? AND version = ?", contract.ID, contract.Version-1).
		Select("*").Omit("id", "created_at").
		Updates(model)
	return lockResult(result, "client contract", contract.ID)
}
