package userhandler

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"

	"crm-server/internal/domain"
	"crm-server/internal/domain/query"
	"crm-server/internal/domain/user"
	"crm-server/internal/interfaces/httpserver/requests/userreq"
	"crm-server/internal/interfaces/httpserver/responses/userres"
	"crm-server/internal/utils/platformerrors"
)

type UserHandler struct {
	users    *user.Service
	validate *validator.Validate
}

func NewUserHandler(users *user.Service) *UserHandler {
	return &UserHandler{
		users:    users,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// GetUser retrieves a single user
func (h *UserHandler) GetUser(ctx context.Context, userID string) (*userres.UserResponse, error) {
	usr, err := h.users.GetByPublicID(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get user")
	}
	return userres.NewUserResponse(usr), nil
}

// ListUsers lists users with filtering and pagination
func (h *UserHandler) ListUsers(ctx context.Context, filter user.Filter, pagination *query.Pagination) (*userres.UserListResponse, error) {
	// Fetch limit+1 to determine hasMore
	var requestedLimit *int
	if pagination != nil && pagination.Limit != nil {
		requestedLimit = pagination.Limit
		extraLimit := *pagination.Limit + 1
		pagination.Limit = &extraLimit
	}

	users, total, err := h.users.List(ctx, filter, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list users")
	}

	hasMore := false
	var nextCursor *string
	if requestedLimit != nil && len(users) > *requestedLimit {
		hasMore = true
		lastIndex := *requestedLimit - 1
		cursorValue := strconv.FormatUint(uint64(users[lastIndex].ID), 10)
		nextCursor = &cursorValue
		users = users[:*requestedLimit]
	}

	return userres.NewUserListResponse(users, hasMore, nextCursor, total), nil
}

// UpdateUser patches a user's profile, role, or active flag
func (h *UserHandler) UpdateUser(ctx context.Context, userID string, req userreq.UpdateUserRequest) (*userres.UserResponse, error) {
	if err := h.validate.Struct(req); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid user fields", err, "f2a8d4c6-9b1e-4e5a-8c3f-1d7b9e2a6c50")
	}

	input := user.UpdateInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Active:    req.Active,
	}

	if req.Role != nil {
		role, ok := domain.ParseRole(*req.Role)
		if !ok {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "unknown role", nil, "c9e4a2b7-1d8f-4b3e-9a6c-5f7d2e8b1a30")
		}
		input.Role = &role
	}

	usr, err := h.users.Update(ctx, userID, input)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to update user")
	}
	return userres.NewUserResponse(usr), nil
}

// DeleteUser removes a user
func (h *UserHandler) DeleteUser(ctx context.Context, userID string) (*userres.UserDeletedResponse, error) {
	if err := h.users.Delete(ctx, userID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to delete user")
	}
	return &userres.UserDeletedResponse{
		ID:      userID,
		Object:  "user.deleted",
		Deleted: true,
	}, nil
}
