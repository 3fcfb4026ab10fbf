package auth

// SignupPayload represents the request body for creating an account.
type SignupPayload struct {
	DisplayName string `json:"display_name" mod:"trim" validate:"required,min=1,max=50"`
	Email       string `json:"email" mod:"trim" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

// LoginPayload represents the request body for logging in.
type LoginPayload struct {
	Email    string `json:"email" mod:"trim" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ResetRequestPayload represents the request body for requesting a password
// reset token.
type ResetRequestPayload struct {
	Email string `json:"email" mod:"trim" validate:"required,email"`
}

// ResetPasswordPayload represents the request body for consuming a reset
// token.
type ResetPasswordPayload struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
