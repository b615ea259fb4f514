package group

import (
	"time"

	"github.com/google/uuid"
)

// Group represents a group record in the database.
type Group struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null;size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Group model.
func (Group) TableName() string {
	return "groups"
}

// Membership is one row of the group-user many-to-many relation. The
// serial position column preserves join order for member iteration.
type Membership struct {
	Position  int64     `gorm:"primaryKey;autoIncrement"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_user"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Membership model.
func (Membership) TableName() string {
	return "group_members"
}
