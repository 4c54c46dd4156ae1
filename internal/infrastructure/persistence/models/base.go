package models

import (
	"time"

	"github.com/erp/obligations/internal/domain/shared"
	"github.com/google/uuid"
)

// OriginModel holds the columns every origin table shares. Version is the
// optimistic lock checked by SaveWithLock.
type OriginModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version   int       `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (m *OriginModel) toRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		Version:    m.Version,
	}
}

func (m *OriginModel) fromRoot(a shared.BaseAggregateRoot) {
	*m = OriginModel{ID: a.ID, Version: a.Version, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt}
}
