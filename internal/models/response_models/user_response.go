package response_models

type UserResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	AuthProvider string  `json:"auth_provider"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
}

// AuthResponse is returned by register and every login flavour.
type AuthResponse struct {
	UserResponse
	Token string `json:"token"`
	// Created is true when a federated login registered a new user.
	Created bool `json:"-"`
}
