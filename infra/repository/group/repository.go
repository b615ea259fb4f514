package group

import (
	"context"
	"errors"

	usermodel "github.com/amirasaad/splitshare/infra/repository/user"
	"github.com/amirasaad/splitshare/pkg/dto"
	"github.com/amirasaad/splitshare/pkg/repository/group"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed group repository.
func New(db *gorm.DB) group.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.GroupCreate,
) error {
	g := &Group{
		ID:   create.ID,
		Name: create.Name,
	}
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.GroupRead, error) {
	var g Group
	if err := r.db.WithContext(
		ctx,
	).First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	members, err := r.members(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapModelToDTO(&g, members), nil
}

func (r *repository) ListByMember(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.GroupRead, error) {
	var groups []Group
	err := r.db.WithContext(ctx).
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GroupRead, 0, len(groups))
	for i := range groups {
		members, err := r.members(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, mapModelToDTO(&groups[i], members))
	}
	return result, nil
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	update *dto.GroupUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Group{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	if err := r.db.WithContext(
		ctx,
	).Delete(&Membership{}, "group_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&Group{}, "id = ?", id).Error
}

func (r *repository) AddMember(
	ctx context.Context,
	groupID, userID uuid.UUID,
) error {
	m := &Membership{GroupID: groupID, UserID: userID}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) RemoveMember(
	ctx context.Context,
	groupID, userID uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Delete(&Membership{}, "group_id = ? AND user_id = ?", groupID, userID).Error
}

// members returns the group's users ordered by join position.
func (r *repository) members(
	ctx context.Context,
	groupID uuid.UUID,
) ([]dto.UserRead, error) {
	var users []usermodel.User
	err := r.db.WithContext(ctx).
		Joins("JOIN group_members ON group_members.user_id = users.id").
		Where("group_members.group_id = ?", groupID).
		Order("group_members.position").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	result := make([]dto.UserRead, 0, len(users))
	for _, u := range users {
		result = append(result, dto.UserRead{
			ID:             u.ID,
			Username:       u.Username,
			Email:          u.Email,
			HashedPassword: u.Password,
			CreatedAt:      u.CreatedAt,
			UpdatedAt:      u.UpdatedAt,
		})
	}
	return result, nil
}

func mapModelToDTO(g *Group, members []dto.UserRead) *dto.GroupRead {
	return &dto.GroupRead{
		ID:        g.ID,
		Name:      g.Name,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}
