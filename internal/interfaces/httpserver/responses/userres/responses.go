package userres

import (
	"crm-server/internal/domain/user"
)

// UserResponse represents a single user response
type UserResponse struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Object     string         `json:"object"`
	Data       []UserResponse `json:"data"`
	FirstID    string         `json:"first_id,omitempty"`
	LastID     string         `json:"last_id,omitempty"`
	NextCursor *string        `json:"next_cursor,omitempty"`
	HasMore    bool           `json:"has_more"`
	Total      int64          `json:"total"`
}

// UserDeletedResponse represents the delete confirmation response
type UserDeletedResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	Object      string       `json:"object"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}

// NewUserResponse creates a response from a domain user
func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.PublicID,
		Object:    "user",
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt.Unix(),
		UpdatedAt: u.UpdatedAt.Unix(),
	}
}

// NewUserListResponse creates a list response from domain users
func NewUserListResponse(users []*user.User, hasMore bool, nextCursor *string, total int64) *UserListResponse {
	data := make([]UserResponse, len(users))
	for i, u := range users {
		data[i] = *NewUserResponse(u)
	}

	resp := &UserListResponse{
		Object:     "list",
		Data:       data,
		HasMore:    hasMore,
		Total:      total,
		NextCursor: nextCursor,
	}

	if len(data) > 0 {
		resp.FirstID = data[0].ID
		resp.LastID = data[len(data)-1].ID
	}

	return resp
}

// NewTokenResponse creates a token response for a logged in user
func NewTokenResponse(token string, expiresInSeconds int64, u *user.User) *TokenResponse {
	return &TokenResponse{
		Object:      "token",
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresInSeconds,
		User:        *NewUserResponse(u),
	}
}
