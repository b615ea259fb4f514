// Package expense provides expense recording, editing and the group
// settlement summary. Expense and contribution writes share one
// transaction, so a failed split validation leaves no partial rows
// behind.
package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/splitshare/pkg/domain/expense"
	groupdomain "github.com/amirasaad/splitshare/pkg/domain/group"
	"github.com/amirasaad/splitshare/pkg/domain/user"
	"github.com/amirasaad/splitshare/pkg/dto"
	"github.com/amirasaad/splitshare/pkg/repository"
	"github.com/amirasaad/splitshare/pkg/service/group"
	"github.com/amirasaad/splitshare/pkg/split"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContributionInput is one caller-provided custom-split entry.
type ContributionInput struct {
	Username string
	Amount   decimal.Decimal
}

// CreateInput carries the fields of a new expense.
type CreateInput struct {
	Description   string
	Amount        decimal.Decimal
	SplitType     string
	Contributions []ContributionInput
}

// UpdateInput carries the optional fields of an expense edit. A nil
// field is left untouched; any change to amount, split type or
// contributions recomputes and fully replaces the contribution set.
type UpdateInput struct {
	Description   *string
	Amount        *decimal.Decimal
	SplitType     *string
	Contributions []ContributionInput
}

// Service provides expense business logic.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an expense Service.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateExpense records an expense and its contribution set in one
// transaction. The actor must be a group member. For an equal split the
// actor is the payer; for a custom split every input entry is validated
// (unknown users, non-members, negative amounts, sum mismatch) and all
// failures are reported together.
func (s *Service) CreateExpense(
	ctx context.Context,
	actorID, groupID uuid.UUID,
	input *CreateInput,
) (e *dto.ExpenseRead, err error) {
	log := s.logger.With("context", "CreateExpense", "groupID", groupID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		g, err := group.AuthorizeOn(ctx, uow, actorID, groupID)
		if err != nil {
			return err
		}
		created, err := expense.New(
			groupID,
			input.Description,
			input.Amount,
			expense.SplitType(input.SplitType),
		)
		if err != nil {
			return err
		}
		shares, err := s.computeShares(ctx, uow, g, actorID, created.Amount,
			created.SplitType, input.Contributions)
		if err != nil {
			return err
		}

		repo, err := uow.ExpenseRepository()
		if err != nil {
			return err
		}
		if err = repo.Create(ctx, &dto.ExpenseCreate{
			ID:          created.ID,
			GroupID:     created.GroupID,
			Description: created.Description,
			Amount:      created.Amount,
			SplitType:   string(created.SplitType),
		}); err != nil {
			return err
		}
		creates, err := toContributionCreates(created.ID, shares)
		if err != nil {
			return err
		}
		if err = repo.CreateContributions(ctx, creates); err != nil {
			return err
		}
		e, err = repo.Get(ctx, created.ID)
		return err
	})
	if err != nil {
		e = nil
		log.Warn("CreateExpense failed", "error", err)
		return
	}
	log.Info("CreateExpense successful", "expenseID", e.ID)
	return
}

// ListExpenses retrieves the group's expenses with their contributions.
func (s *Service) ListExpenses(
	ctx context.Context,
	actorID, groupID uuid.UUID,
) (expenses []*dto.ExpenseRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := group.AuthorizeOn(ctx, uow, actorID, groupID); err != nil {
			return err
		}
		repo, err := uow.ExpenseRepository()
		if err != nil {
			return err
		}
		expenses, err = repo.ListByGroup(ctx, groupID)
		return err
	})
	if err != nil {
		expenses = nil
	}
	return
}

// UpdateExpense edits an expense. When the amount, split type or
// contributions change, the split is recomputed against the effective
// values and the old contribution set is replaced wholesale within the
// same transaction.
func (s *Service) UpdateExpense(
	ctx context.Context,
	actorID, groupID, expenseID uuid.UUID,
	input *UpdateInput,
) (e *dto.ExpenseRead, err error) {
	log := s.logger.With("context", "UpdateExpense", "expenseID", expenseID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		g, err := group.AuthorizeOn(ctx, uow, actorID, groupID)
		if err != nil {
			return err
		}
		repo, err := uow.ExpenseRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, expenseID)
		if err != nil {
			return err
		}
		if existing == nil || existing.GroupID != groupID {
			return expense.ErrExpenseNotFound
		}

		description := existing.Description
		if input.Description != nil {
			description = *input.Description
		}
		amount := existing.Amount
		if input.Amount != nil {
			amount = *input.Amount
		}
		splitType := expense.SplitType(existing.SplitType)
		if input.SplitType != nil {
			splitType = expense.SplitType(*input.SplitType)
		}
		// Revalidate the effective expense the same way creation does.
		if _, err = expense.New(groupID, description, amount, splitType); err != nil {
			return err
		}

		if err = repo.Update(ctx, expenseID, &dto.ExpenseUpdate{
			Description: &description,
			Amount:      &amount,
			SplitType:   (*string)(&splitType),
		}); err != nil {
			return err
		}

		if input.Amount != nil || input.SplitType != nil || input.Contributions != nil {
			shares, err := s.computeShares(ctx, uow, g, actorID, amount,
				splitType, input.Contributions)
			if err != nil {
				return err
			}
			creates, err := toContributionCreates(expenseID, shares)
			if err != nil {
				return err
			}
			if err = repo.ReplaceContributions(ctx, expenseID, creates); err != nil {
				return err
			}
		}

		e, err = repo.Get(ctx, expenseID)
		return err
	})
	if err != nil {
		e = nil
		log.Warn("UpdateExpense failed", "error", err)
		return
	}
	log.Info("UpdateExpense successful")
	return
}

// DeleteExpense removes an expense with its contributions.
func (s *Service) DeleteExpense(
	ctx context.Context,
	actorID, groupID, expenseID uuid.UUID,
) error {
	log := s.logger.With("context", "DeleteExpense", "expenseID", expenseID)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := group.AuthorizeOn(ctx, uow, actorID, groupID); err != nil {
			return err
		}
		repo, err := uow.ExpenseRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, expenseID)
		if err != nil {
			return err
		}
		if existing == nil || existing.GroupID != groupID {
			return expense.ErrExpenseNotFound
		}
		return repo.Delete(ctx, expenseID)
	})
	if err != nil {
		log.Warn("DeleteExpense failed", "error", err)
		return err
	}
	log.Info("DeleteExpense successful")
	return nil
}

// Summary computes the group's settlement report from its full
// contribution history. It is a pure read.
func (s *Service) Summary(
	ctx context.Context,
	actorID, groupID uuid.UUID,
) (entries []split.BalanceEntry, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		g, err := group.AuthorizeOn(ctx, uow, actorID, groupID)
		if err != nil {
			return err
		}
		repo, err := uow.ExpenseRepository()
		if err != nil {
			return err
		}
		rows, err := repo.ListContributionsByGroup(ctx, groupID)
		if err != nil {
			return err
		}

		members := make([]split.Member, 0, len(g.Members))
		for _, m := range g.Members {
			members = append(members, split.Member{ID: m.ID, Username: m.Username})
		}
		contributions := make([]split.Contribution, 0, len(rows))
		for _, r := range rows {
			contributions = append(contributions, split.Contribution{
				UserID: r.UserID,
				Amount: r.Amount,
			})
		}
		entries = split.Balances(members, contributions)
		return nil
	})
	if err != nil {
		entries = nil
	}
	return
}

// computeShares materializes the contribution set for the given split
// type. Custom-split inputs are validated in full before any entry is
// accepted; the collected failures come back joined.
func (s *Service) computeShares(
	ctx context.Context,
	uow repository.UnitOfWork,
	g *dto.GroupRead,
	actorID uuid.UUID,
	amount decimal.Decimal,
	splitType expense.SplitType,
	inputs []ContributionInput,
) ([]split.Share, error) {
	if splitType == expense.SplitEqual {
		memberIDs := make([]uuid.UUID, 0, len(g.Members))
		for _, m := range g.Members {
			memberIDs = append(memberIDs, m.ID)
		}
		return split.Equal(amount, actorID, memberIDs), nil
	}

	if len(inputs) == 0 {
		return nil, split.ErrMissingContributions
	}

	var errs []error
	inputSum := decimal.Zero
	entries := make([]split.Entry, 0, len(inputs))
	for _, in := range inputs {
		inputSum = inputSum.Add(in.Amount)
		if in.Amount.IsNegative() {
			errs = append(errs, fmt.Errorf("%s: %w", in.Username, split.ErrNegativeAmount))
			continue
		}
		u, err := group.ResolveMemberOn(ctx, uow, g, in.Username)
		if err != nil {
			if isResolveError(err) {
				errs = append(errs, err)
				continue
			}
			return nil, err
		}
		entries = append(entries, split.Entry{UserID: u.ID, Amount: in.Amount})
	}
	if !inputSum.Equal(amount) {
		errs = append(errs, split.ErrAmountMismatch)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return split.Custom(amount, entries)
}

// isResolveError separates per-entry validation failures, which are
// collected, from infrastructure errors, which abort immediately.
func isResolveError(err error) bool {
	return errors.Is(err, groupdomain.ErrNotMember) ||
		errors.Is(err, user.ErrUserNotFound)
}

func toContributionCreates(expenseID uuid.UUID, shares []split.Share) ([]*dto.ContributionCreate, error) {
	out := make([]*dto.ContributionCreate, 0, len(shares))
	for _, sh := range shares {
		c, err := expense.NewContribution(expenseID, sh.UserID, sh.Amount)
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.ContributionCreate{
			ID:        c.ID,
			ExpenseID: c.ExpenseID,
			UserID:    c.UserID,
			Amount:    c.Amount,
		})
	}
	return out, nil
}
