package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/obligations/internal/domain/finance"
	"github.com/erp/obligations/internal/domain/shared"
	"github.com/erp/obligations/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountPayableRepository implements finance.AccountPayableRepository using GORM
type GormAccountPayableRepository struct {
	db *gorm.DB
}

// NewGormAccountPayableRepository creates a new GormAccountPayableRepository
func NewGormAccountPayableRepository(db *gorm.DB) *GormAccountPayableRepository {
	return &GormAccountPayableRepository{db: db}
}

// FindByID finds an account payable by its ID
func (r *GormAccountPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountPayable, error) {
	var model models.AccountPayableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every account payable ordered by due date
func (r *GormAccountPayableRepository) FindAll(ctx context.Context) ([]finance.AccountPayable, error) {
	var list []models.AccountPayableModel
	if err := r.db.WithContext(ctx).Order("due_date ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]finance.AccountPayable, len(list))
	for i := range list {
		out[i] = *list[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates an account payable
func (r *GormAccountPayableRepository) Save(ctx context.Context, payable *finance.AccountPayable) error {
	return r.db.WithContext(ctx).Save(models.AccountPayableModelFromDomain(payable)).Error
}

// SaveWithLock saves with optimistic locking.
// The payable must have been touched once since it was loaded.
func (r *GormAccountPayableRepository) SaveWithLock(ctx context.Context, payable *finance.AccountPayable) error {
	model := models.AccountPayableModelFromDomain(payable)
	result := r.db.WithContext(ctx).
		Model(&models.AccountPayableModel{}).
		Where("id = ? AND version = ?", payable.ID, payable.Version-1).
		Select("*").Omit("id", "created_at").
		Updates(model)
	return lockResult(result, "account payable", payable.ID)
}

// lockResult maps the outcome of a versioned update
func lockResult(result *gorm.DB, kind string, id uuid.UUID) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, shared.ErrConcurrencyConflict)
	}
	return nil
}
