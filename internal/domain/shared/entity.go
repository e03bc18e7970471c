package shared

import "time"

// BaseEntity provides the identity and timestamps every stored row carries.
// IDs are assigned by the database.
type BaseEntity struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() int64 {
	return e.ID
}

// IsNew reports whether the entity has not been persisted yet.
func (e *BaseEntity) IsNew() bool {
	return e.ID == 0
}
