package expense

import "github.com/shopspring/decimal"

// ContributionInput is one custom-split entry in a request body.
type ContributionInput struct {
	Username string          `json:"username" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
}

// CreateInput carries the fields of a new expense.
type CreateInput struct {
	Description   string              `json:"description" validate:"required,max=255"`
	Amount        decimal.Decimal     `json:"amount"`
	SplitType     string              `json:"split_type" validate:"required,oneof=equal custom"`
	Contributions []ContributionInput `json:"contributions" validate:"omitempty,dive"`
}

// UpdateInput carries the optional fields of an expense edit.
type UpdateInput struct {
	Description   *string             `json:"description,omitempty" validate:"omitempty,max=255"`
	Amount        *decimal.Decimal    `json:"amount,omitempty"`
	SplitType     *string             `json:"split_type,omitempty" validate:"omitempty,oneof=equal custom"`
	Contributions []ContributionInput `json:"contributions,omitempty" validate:"omitempty,dive"`
}
