package dto

// SignupRequest payload for new accounts.
type SignupRequest struct {
	FullName string `json:"fullName" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest carries optional admin changes to a user.
type UpdateUserRequest struct {
	FullName *string  `json:"fullName" validate:"omitempty,min=1,max=200"`
	Email    *string  `json:"email" validate:"omitempty,email,max=320"`
	Password *string  `json:"password" validate:"omitempty,min=8,max=72"`
	Roles    []string `json:"roles" validate:"omitempty,min=1,dive,oneof=admin superUser user"`
	IsActive *bool    `json:"isActive"`
}
