package dto

import (
	"time"

	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/domain"
)

// RegisterRequest payload for requester sign-up.
type RegisterRequest struct {
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	CompanyID *string `json:"company_id"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ProfileResponse is the public view of a profile.
type ProfileResponse struct {
	ID        string      `json:"id"`
	FullName  string      `json:"full_name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CompanyID *string     `json:"company_id"`
}

// AuthResponse bundles the signed-in profile with its token.
type AuthResponse struct {
	Profile   ProfileResponse `json:"profile"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// ToProfile maps a domain profile, dropping the credential hash.
func ToProfile(p *domain.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Email:     p.Email,
		Role:      p.Role,
		CompanyID: p.CompanyID,
	}
}
