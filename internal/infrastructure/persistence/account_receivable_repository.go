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

// GormAccountReceivableRepository implements finance.AccountReceivableRepository using GORM
type GormAccountReceivableRepository struct {
	db *gorm.DB
}

// NewGormAccountReceivableRepository creates a new GormAccountReceivableRepository
func NewGormAccountReceivableRepository(db *gorm.DB) *GormAccountReceivableRepository {
	return &GormAccountReceivableRepository{db: db}
}

// FindByID finds an account receivable by its ID
func (r *GormAccountReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AccountReceivable, error) {
	var model models.AccountReceivableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every account receivable ordered by due date
func (r *GormAccountReceivableRepository) FindAll(ctx context.Context) ([]finance.AccountReceivable, error) {
	var list []models.AccountReceivableModel
	if err := r.db.WithContext(ctx).Order("due_date ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]finance.AccountReceivable, len(list))
	for i := range list {
		out[i] = *list[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates an account receivable
func (r *GormAccountReceivableRepository) Save(ctx context.Context, receivable *finance.AccountReceivable) error {
	return r.db.WithContext(ctx).Save(models.AccountReceivableModelFromDomain(receivable)).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormAccountReceivableRepository) SaveWithLock(ctx context.Context, receivable *finance.AccountReceivable) error {
	model := models.AccountReceivableModelFromDomain(receivable)
	result := r.db.WithContext(ctx).
		Model(&models.AccountReceivableModel{}).
		Where("id = ? AND version = ?", receivable.ID, receivable.Version-1).
		Select("*").Omit("id", "created_at").
		Updates(model)
	return lockResult(result, "account receivable", receivable.ID)
}
