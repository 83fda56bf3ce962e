package domain

import "time"

// User is one registration record in the user store. The session token is
// persisted but never serialized into API user payloads.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Organization string     `json:"organization"`
	Role         string     `json:"role,omitempty"`
	IntendedUse  string     `json:"intendedUse,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastAccessAt *time.Time `json:"lastAccessAt,omitempty"`
	AccessCount  int        `json:"accessCount"`
	Domain       string     `json:"domain"`
	AutoApproved bool       `json:"autoApproved"`
	Status       string     `json:"status"`
	SessionToken string     `json:"sessionToken,omitempty"`
}

// PublicUser is the API-facing view of a User with the token stripped.
type PublicUser struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Organization string     `json:"organization"`
	Role         string     `json:"role,omitempty"`
	IntendedUse  string     `json:"intendedUse,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastAccessAt *time.Time `json:"lastAccessAt,omitempty"`
	AccessCount  int        `json:"accessCount"`
	Domain       string     `json:"domain"`
	AutoApproved bool       `json:"autoApproved"`
	Status       string     `json:"status"`
}

// Public returns the token-free view of u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Organization: u.Organization,
		Role:         u.Role,
		IntendedUse:  u.IntendedUse,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		LastAccessAt: u.LastAccessAt,
		AccessCount:  u.AccessCount,
		Domain:       u.Domain,
		AutoApproved: u.AutoApproved,
		Status:       u.Status,
	}
}

// RegistrationRequest is the POST /register payload.
type RegistrationRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Role         string `json:"role,omitempty"`
	IntendedUse  string `json:"intendedUse,omitempty"`
}

// RegistrationResponse is the POST /register success body.
type RegistrationResponse struct {
	Success bool       `json:"success"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
	Message string     `json:"message"`
}
