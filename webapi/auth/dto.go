package auth

// LoginInput carries login credentials. Identity accepts a username or
// an email address.
type LoginInput struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput carries the refresh token to rotate.
type RefreshInput struct {
	Refresh string `json:"refresh" validate:"required"`
}
