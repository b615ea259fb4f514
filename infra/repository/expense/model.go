package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents an expense record in the database. Amounts are
// stored as numeric, never as floating point.
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	GroupID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"not null;size:255"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	SplitType   string          `gorm:"not null;size:10"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Expense model.
func (Expense) TableName() string {
	return "expenses"
}

// Contribution represents a contribution record in the database.
type Contribution struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ExpenseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Contribution model.
func (Contribution) TableName() string {
	return "contributions"
}
