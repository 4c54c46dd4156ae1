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

// GormSupplierRepository implements finance.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Supplier, error) {
	var model models.SupplierModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every supplier, active or not, ordered by name.
// Filtering recurring suppliers is the expander's job.
func (r *GormSupplierRepository) FindAll(ctx context.Context) ([]finance.Supplier, error) {
	var list []models.SupplierModel
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]finance.Supplier, len(list))
	for i := range list {
		out[i] = *list[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *finance.Supplier) error {
	return r.db.WithContext(ctx).Save(models.SupplierModelFromDomain(supplier)).Error
}

// SaveWithLock saves with optimistic locking
func (r *GormSupplierRepository) SaveWithLock(ctx context.Context, supplier *finance.Supplier) error {
	model := models.SupplierModelFromDomain(supplier)
	result := r.db.WithContext(ctx).
		Model(&models.SupplierModel{}).
		Where("id = ? AND version = ?", supplier.ID, supplier.Version-1).
		Select("*").Omit("id", "created_at").
		Updates(model)
	return lockResult(result, "supplier", supplier.ID)
}
