package expense

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/splitshare/pkg/dto"
	"github.com/amirasaad/splitshare/pkg/repository/expense"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed expense repository.
func New(db *gorm.DB) expense.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.ExpenseCreate,
) error {
	e := &Expense{
		ID:          create.ID,
		GroupID:     create.GroupID,
		Description: create.Description,
		Amount:      create.Amount,
		SplitType:   create.SplitType,
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.ExpenseRead, error) {
	var e Expense
	if err := r.db.WithContext(
		ctx,
	).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	contributions, err := r.contributions(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&e, contributions), nil
}

func (r *repository) ListByGroup(
	ctx context.Context,
	groupID uuid.UUID,
) ([]*dto.ExpenseRead, error) {
	var expenses []Expense
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ExpenseRead, 0, len(expenses))
	for i := range expenses {
		contributions, err := r.contributions(ctx, expenses[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, mapModelToDTO(&expenses[i], contributions))
	}
	return result, nil
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	update *dto.ExpenseUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.SplitType != nil {
		updates["split_type"] = *update.SplitType
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Expense{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	if err := r.db.WithContext(
		ctx,
	).Delete(&Contribution{}, "expense_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&Expense{}, "id = ?", id).Error
}

func (r *repository) CreateContributions(
	ctx context.Context,
	creates []*dto.ContributionCreate,
) error {
	if len(creates) == 0 {
		return nil
	}
	rows := make([]Contribution, 0, len(creates))
	for _, c := range creates {
		rows = append(rows, Contribution{
			ID:        c.ID,
			ExpenseID: c.ExpenseID,
			UserID:    c.UserID,
			Amount:    c.Amount,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) ReplaceContributions(
	ctx context.Context,
	expenseID uuid.UUID,
	creates []*dto.ContributionCreate,
) error {
	if err := r.db.WithContext(
		ctx,
	).Delete(&Contribution{}, "expense_id = ?", expenseID).Error; err != nil {
		return err
	}
	return r.CreateContributions(ctx, creates)
}

func (r *repository) ListContributionsByGroup(
	ctx context.Context,
	groupID uuid.UUID,
) ([]*dto.ContributionRead, error) {
	var rows []contributionRow
	err := r.db.WithContext(ctx).
		Table("contributions").
		Select("contributions.id, contributions.user_id, contributions.amount, users.username").
		Joins("JOIN expenses ON expenses.id = contributions.expense_id").
		Joins("JOIN users ON users.id = contributions.user_id").
		Where("expenses.group_id = ?", groupID).
		Order("contributions.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ContributionRead, 0, len(rows))
	for _, row := range rows {
		result = append(result, &dto.ContributionRead{
			ID:       row.ID,
			UserID:   row.UserID,
			Username: row.Username,
			Amount:   row.Amount,
		})
	}
	return result, nil
}

type contributionRow struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Username  string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// contributions returns an expense's contribution rows with usernames.
func (r *repository) contributions(
	ctx context.Context,
	expenseID uuid.UUID,
) ([]dto.ContributionRead, error) {
	var rows []contributionRow
	err := r.db.WithContext(ctx).
		Table("contributions").
		Select("contributions.id, contributions.user_id, contributions.amount, users.username").
		Joins("JOIN users ON users.id = contributions.user_id").
		Where("contributions.expense_id = ?", expenseID).
		Order("contributions.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]dto.ContributionRead, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.ContributionRead{
			ID:       row.ID,
			UserID:   row.UserID,
			Username: row.Username,
			Amount:   row.Amount,
		})
	}
	return result, nil
}

func mapModelToDTO(e *Expense, contributions []dto.ContributionRead) *dto.ExpenseRead {
	return &dto.ExpenseRead{
		ID:            e.ID,
		GroupID:       e.GroupID,
		Description:   e.Description,
		Amount:        e.Amount,
		SplitType:     e.SplitType,
		Contributions: contributions,
		CreatedAt:     e.CreatedAt,
	}
}
