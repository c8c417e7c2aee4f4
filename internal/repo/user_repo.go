package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (primitive.ObjectID, error)

	GetUserByID(ctx context.Context, id primitive.ObjectID) (model.User, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByUsername(ctx context.Context, username string) (model.User, error)

	// GetUserByRefreshToken finds the user whose stored refresh-token
	// collection contains the exact token string.
	GetUserByRefreshToken(ctx context.Context, token string) (model.User, error)

	// ListUsers returns every credential record; powers the global
	// password-uniqueness check on signup.
	ListUsers(ctx context.Context) ([]model.User, error)

	PushRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error

	PullRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error

	ClearRefreshTokens(ctx context.Context, id primitive.ObjectID) error
}
