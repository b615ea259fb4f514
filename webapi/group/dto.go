package group

// CreateInput carries the fields of a new group.
type CreateInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// JoinInput carries the usernames to add to a group.
type JoinInput struct {
	Usernames []string `json:"usernames" validate:"required,min=1,dive,required"`
}

// UpdateMembersInput adds or removes the named users.
type UpdateMembersInput struct {
	Action    string   `json:"action" validate:"required,oneof=add remove"`
	Usernames []string `json:"usernames" validate:"required,min=1,dive,required"`
}

// RenameInput carries the group's new name.
type RenameInput struct {
	Name string `json:"name" validate:"required,max=100"`
}
