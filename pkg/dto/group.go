package dto

import (
	"time"

	"github.com/google/uuid"
)

// GroupCreate represents the data needed to create a new group.
type GroupCreate struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name" validate:"required,max=100"`
}

// GroupUpdate represents the fields that can change on an existing group.
type GroupUpdate struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=100"`
}

// GroupRead represents a read-optimized view of a group. Members are
// ordered by when they joined.
type GroupRead struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Members   []UserRead `json:"members"`
	CreatedAt time.Time  `json:"created_at"`
}

// HasMember reports whether the user is part of the group's member set.
func (g *GroupRead) HasMember(userID uuid.UUID) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
