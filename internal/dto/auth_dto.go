package dto

import "github.com/google/uuid"

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// AuthResponse is returned by both sign-up and sign-in; the mobile client
// reads these exact keys.
type AuthResponse struct {
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email"`
	AccessToken string    `json:"accessToken"`
}
