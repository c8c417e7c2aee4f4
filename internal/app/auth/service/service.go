package service

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/model"
)

type Service interface {
	// Register creates a user and issues the first token pair.
	Register(ctx context.Context, dto dto.SignupDTO) (model.TokenPair, error)

	// Login issues a fresh token pair; the refresh token is appended to the
	// user's stored collection, so multiple sessions stay valid at once.
	Login(ctx context.Context, dto dto.LoginDTO) (model.TokenPair, error)

	// Refresh exchanges a stored refresh token for a new access token.
	// The refresh token itself is not rotated.
	Refresh(ctx context.Context, dto dto.RefreshDTO) (string, error)

	// Logout revokes exactly the given refresh token.
	Logout(ctx context.Context, dto dto.LogoutDTO) error

	// LogoutAll revokes every refresh token of the user. Outstanding access
	// tokens stay valid until natural expiry.
	LogoutAll(ctx context.Context, userID string) error
}
