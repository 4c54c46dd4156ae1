package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries identity and timestamps of an origin record
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetUpdatedAt returns when the record was last written
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// BaseAggregateRoot is embedded by every origin aggregate. Version is the
// value SaveWithLock compares against the stored row; it starts at 1.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// Touch marks a write at the given instant. Every status write-back goes
// through it, so one transition always moves the version by exactly one.
func (a *BaseAggregateRoot) Touch(at time.Time) {
	a.UpdatedAt = at
	a.Version++
}

// NewBaseAggregateRoot returns a version 1 root with a fresh ID
func NewBaseAggregateRoot() BaseAggregateRoot {
	now := time.Now()
	return BaseAggregateRoot{
		BaseEntity: BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Version:    1,
	}
}
