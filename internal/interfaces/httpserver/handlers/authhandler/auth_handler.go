package authhandler

import (
	"context"

	"crm-server/internal/domain/user"
	"crm-server/internal/infrastructure/auth"
	"crm-server/internal/infrastructure/metrics"
	"crm-server/internal/interfaces/httpserver/requests/authreq"
	"crm-server/internal/interfaces/httpserver/responses/userres"
)

type AuthHandler struct {
	users *user.Service
	codec *auth.TokenCodec
}

func NewAuthHandler(users *user.Service, codec *auth.TokenCodec) *AuthHandler {
	return &AuthHandler{
		users: users,
		codec: codec,
	}
}

// Login verifies credentials and issues an access token.
func (h *AuthHandler) Login(ctx context.Context, req authreq.LoginRequest) (*userres.TokenResponse, error) {
	token, usr, err := h.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		metrics.RecordAuthRequest("login", "failure")
		return nil, err
	}

	metrics.RecordAuthRequest("login", "success")
	return userres.NewTokenResponse(token, int64(h.codec.TTL().Seconds()), usr), nil
}

// Register creates a new account and issues an access token.
func (h *AuthHandler) Register(ctx context.Context, req authreq.RegisterRequest) (*userres.TokenResponse, error) {
	token, usr, err := h.users.Register(ctx, user.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		metrics.RecordAuthRequest("register", "failure")
		return nil, err
	}

	metrics.RecordAuthRequest("register", "success")
	return userres.NewTokenResponse(token, int64(h.codec.TTL().Seconds()), usr), nil
}
