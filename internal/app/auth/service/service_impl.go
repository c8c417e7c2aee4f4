package service

import (
	"context"
	"time"

	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/app/auth/jwt"
	customErrors "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/model"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/repo"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo repo.UserRepo
	tokens   jwt.TokenManager
	v        *validator.Validate
}

func New(userRepo repo.UserRepo, tokens jwt.TokenManager, v *validator.Validate) *authService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		v:        v,
	}
}

func (a *authService) Register(ctx context.Context, d dto.SignupDTO) (model.TokenPair, error) {
	if err := a.v.Struct(d); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	if _, err := a.userRepo.GetUserByUsername(ctx, d.Username); err == nil {
		return model.TokenPair{}, customErrors.NewAlreadyExists("username already taken")
	} else if !customErrors.IsNotFound(err) {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	if _, err := a.userRepo.GetUserByEmail(ctx, d.Email); err == nil {
		return model.TokenPair{}, customErrors.NewAlreadyExists("email already in use")
	} else if !customErrors.IsNotFound(err) {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	// Global password-uniqueness policy: the plaintext must not hash-match
	// any existing account. Linear in user count per signup.
	users, err := a.userRepo.ListUsers(ctx)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}
	for _, u := range users {
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(d.Password)) == nil {
			return model.TokenPair{}, customErrors.NewAlreadyExists("password already in use")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		Username:      d.Username,
		Email:         d.Email,
		PasswordHash:  string(hash),
		RefreshTokens: []string{},
	}
	id, err := a.userRepo.CreateUser(ctx, user)
	if err != nil {
		if customErrors.IsAlreadyExists(err) {
			return model.TokenPair{}, err
		}
		return model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	return a.issuePair(ctx, id, d.Email)
}

func (a *authService) Login(ctx context.Context, d dto.LoginDTO) (model.TokenPair, error) {
	if err := a.v.Struct(d); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, d.Email)
	if customErrors.IsNotFound(err) {
		return model.TokenPair{}, customErrors.NewInvalidCredentials("user does not exist")
	}
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(d.Password)) != nil {
		return model.TokenPair{}, customErrors.NewInvalidCredentials("invalid password")
	}

	return a.issuePair(ctx, user.ID, user.Email)
}

func (a *authService) Refresh(ctx context.Context, d dto.RefreshDTO) (string, error) {
	if d.RefreshToken == "" {
		return "", customErrors.ErrUnauthenticated
	}

	// Membership in the owner's stored collection is required in addition
	// to a valid signature; both failures look the same to the caller.
	user, err := a.userRepo.GetUserByRefreshToken(ctx, d.RefreshToken)
	if customErrors.IsNotFound(err) {
		return "", customErrors.ErrInvalidToken
	}
	if err != nil {
		return "", customErrors.WrapInternal(err, "Refresh")
	}

	if _, err := a.tokens.ValidateRefreshToken(d.RefreshToken); err != nil {
		return "", customErrors.ErrInvalidToken
	}

	accessToken, _, err := a.tokens.GenerateAccessToken(user.ID.Hex(), user.Email)
	if err != nil {
		return "", customErrors.WrapInternal(err, "Refresh")
	}
	return accessToken, nil
}

func (a *authService) Logout(ctx context.Context, d dto.LogoutDTO) error {
	user, err := a.userRepo.GetUserByRefreshToken(ctx, d.RefreshToken)
	if customErrors.IsNotFound(err) {
		return customErrors.ErrInvalidToken
	}
	if err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}

	if err := a.userRepo.PullRefreshToken(ctx, user.ID, d.RefreshToken); err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}
	return nil
}

func (a *authService) LogoutAll(ctx context.Context, userID string) error {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, id)
	if customErrors.IsNotFound(err) {
		return customErrors.ErrInvalidToken
	}
	if err != nil {
		return customErrors.WrapInternal(err, "LogoutAll")
	}

	if err := a.userRepo.ClearRefreshTokens(ctx, user.ID); err != nil {
		return customErrors.WrapInternal(err, "LogoutAll")
	}
	return nil
}

func (a *authService) issuePair(ctx context.Context, id primitive.ObjectID, email string) (model.TokenPair, error) {
	accessToken, atExp, err := a.tokens.GenerateAccessToken(id.Hex(), email)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "issue access token")
	}

	refreshToken, rtExp, err := a.tokens.GenerateRefreshToken(id.Hex())
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "issue refresh token")
	}

	if err := a.userRepo.PushRefreshToken(ctx, id, refreshToken); err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "persist refresh token")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserID:       id,
	}, nil
}
