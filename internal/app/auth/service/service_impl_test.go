package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/app/auth/jwt"
	authsvc "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/app/auth/service"
	authErrors "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/model"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/infra/config"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

/* ──────────────────────────────── stubs ──────────────────────────────── */

type userRepoStub struct{ users map[string]model.User }

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[string]model.User)}
}

func (u *userRepoStub) CreateUser(_ context.Context, m model.User) (primitive.ObjectID, error) {
	m.ID = primitive.NewObjectID()
	u.users[m.ID.Hex()] = m
	return m.ID, nil
}

func (u *userRepoStub) GetUserByID(_ context.Context, id primitive.ObjectID) (model.User, error) {
	v, ok := u.users[id.Hex()]
	if !ok {
		return model.User{}, authErrors.ErrNotFound
	}
	return v, nil
}

func (u *userRepoStub) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	for _, v := range u.users {
		if v.Email == email {
			return v, nil
		}
	}
	return model.User{}, authErrors.ErrNotFound
}

func (u *userRepoStub) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	for _, v := range u.users {
		if v.Username == username {
			return v, nil
		}
	}
	return model.User{}, authErrors.ErrNotFound
}

func (u *userRepoStub) GetUserByRefreshToken(_ context.Context, token string) (model.User, error) {
	for _, v := range u.users {
		for _, t := range v.RefreshTokens {
			if t == token {
				return v, nil
			}
		}
	}
	return model.User{}, authErrors.ErrNotFound
}

func (u *userRepoStub) ListUsers(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(u.users))
	for _, v := range u.users {
		out = append(out, v)
	}
	return out, nil
}

func (u *userRepoStub) PushRefreshToken(_ context.Context, id primitive.ObjectID, token string) error {
	v, ok := u.users[id.Hex()]
	if !ok {
		return authErrors.ErrNotFound
	}
	v.RefreshTokens = append(v.RefreshTokens, token)
	u.users[id.Hex()] = v
	return nil
}

func (u *userRepoStub) PullRefreshToken(_ context.Context, id primitive.ObjectID, token string) error {
	v, ok := u.users[id.Hex()]
	if !ok {
		return authErrors.ErrNotFound
	}
	kept := v.RefreshTokens[:0]
	for _, t := range v.RefreshTokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	v.RefreshTokens = kept
	u.users[id.Hex()] = v
	return nil
}

func (u *userRepoStub) ClearRefreshTokens(_ context.Context, id primitive.ObjectID) error {
	v, ok := u.users[id.Hex()]
	if !ok {
		return authErrors.ErrNotFound
	}
	v.RefreshTokens = []string{}
	u.users[id.Hex()] = v
	return nil
}

/* ───────────────────────────── helpers ───────────────────────────── */

func newSvc(t *testing.T) (authsvc.Service, *jwt.TokenManagerImpl, *userRepoStub) {
	t.Helper()

	ur := newUserRepoStub()
	tm, err := jwt.NewTokenManager(&config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
	})
	require.NoError(t, err)

	return authsvc.New(ur, tm, validator.New()), tm, ur
}

func signupDTO() dto.SignupDTO {
	return dto.SignupDTO{Username: "alice", Email: "alice@example.com", Password: "Secret123"}
}

func storedUser(t *testing.T, ur *userRepoStub, email string) model.User {
	t.Helper()
	u, err := ur.GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	return u
}

/* ───────────────────────────── register ───────────────────────────── */

func TestRegister_Success(t *testing.T) {
	svc, tm, ur := newSvc(t)
	ctx := context.Background()

	pair, err := svc.Register(ctx, signupDTO())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := tm.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Email)

	u := storedUser(t, ur, "alice@example.com")
	require.Equal(t, []string{pair.RefreshToken}, u.RefreshTokens)
	require.NotEqual(t, "Secret123", u.PasswordHash)
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, err := svc.Register(context.Background(), dto.SignupDTO{Username: "alice"})
	require.True(t, authErrors.IsInvalidArgument(err))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _ := newSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, signupDTO())
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.SignupDTO{Username: "alice", Email: "other@example.com", Password: "Other456"})
	require.True(t, authErrors.IsAlreadyExists(err))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, signupDTO())
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.SignupDTO{Username: "bob", Email: "alice@example.com", Password: "Other456"})
	require.True(t, authErrors.IsAlreadyExists(err))
}

func TestRegister_PasswordReuseRejected(t *testing.T) {
	svc, _, _ := newSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, signupDTO())
	require.NoError(t, err)

	// Unrelated account, same plaintext password.
	_, err = svc.Register(ctx, dto.SignupDTO{Username: "bob", Email: "bob@example.com", Password: "Secret123"})
	require.True(t, authErrors.IsAlreadyExists(err))
}

/* ───────────────────────────── login ───────────────────────────── */

func TestLogin_Success(t *testing.T) {
	svc, tm, ur := newSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, signupDTO())
	require.NoError(t, err)

	pair, err := svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "Secret123"})
	require.NoError(t, err)

	_, err = tm.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	u := storedUser(t, ur, "alice@example.com")
	require.Contains(t, u.RefreshTokens, pair.RefreshToken)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "nobody@example.com", Password: "Secret123"})
	require.True(t, authErrors.IsInvalidCredentials(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, signupDTO())
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "WrongPwd1"})
	require.True(t, authErrors.IsInvalidCredentials(err))
}

func TestLogin_MultipleSessionsAccumulate(t *testing.T) {
	svc, _, ur := newSvc(t)
	ctx := context.Background()

	pair0, err := svc.Register(ctx, signupDTO())
	require.NoError(t, err)
	pair1, err := svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "Secret123"})
	require.NoError(t, err)
	pair2, err := svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "Secret123"})
	require.NoError(t, err)

	u := storedUser(t, ur, "alice@example.com")
	require.ElementsMatch(t,
		[]string{pair0.RefreshToken, pair1.RefreshToken, pair2.RefreshToken},
		u.RefreshTokens,
	)
}

/* ───────────────────────────── refresh ───────────────────────────── */

func TestRefresh_IssuesAccessWithoutRotation(t *testing.T) {
	svc, tm, ur := newSvc(t)
	ctx := context.Background()

	pair, err := svc.Register(ctx, signupDTO())
	require.NoError(t, err)

	access, err := svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)

	claims, err := tm.ValidateAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Email)

	// Not rotated: the stored collection is unchanged.
	u := storedUser(t, ur, "alice@example.com")
	require.Equal(t, []string{pair.RefreshToken}, u.RefreshTokens)
}

func TestRefresh_MissingToken(t *testing.T) {
	svc, _, _ := newSvc(t)

	_, err := svc.Refresh(context.Background(), dto.RefreshDTO{})
	require.True(t, authErrors.IsUnauthenticated(err))
}

func TestRefresh_UnissuedTokenRejected(t *testing.T) {
	svc, tm, ur := newSvc(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, signupDTO())
	require.NoError(t, err)
	u := storedUser(t, ur, "alice@example.com")

	// Well-signed and unexpired, but never issued through the service and
	// therefore absent from the stored collection.
	rogue, _, err := tm.GenerateRefreshToken(u.ID.Hex())
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: rogue})
	require.True(t, authErrors.IsInvalidToken(err))
}

/* ───────────────────────────── logout ───────────────────────────── */

func TestLogout_RemovesOnlyGivenToken(t *testing.T) {
	svc, _, ur := newSvc(t)
	ctx := context.Background()

	pair0, err := svc.Register(ctx, signupDTO())
	require.NoError(t, err)
	pair1, err := svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "Secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, dto.LogoutDTO{RefreshToken: pair0.RefreshToken}))

	u := storedUser(t, ur, "alice@example.com")
	require.Equal(t, []string{pair1.RefreshToken}, u.RefreshTokens)

	// The surviving session still refreshes.
	_, err = svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: pair1.RefreshToken})
	require.NoError(t, err)
}

func TestLogout_UnknownToken(t *testing.T) {
	svc, _, _ := newSvc(t)

	err := svc.Logout(context.Background(), dto.LogoutDTO{RefreshToken: "never-issued"})
	require.True(t, authErrors.IsInvalidToken(err))
}

func TestLogoutAll_ClearsCollection(t *testing.T) {
	svc, _, ur := newSvc(t)
	ctx := context.Background()

	pair0, err := svc.Register(ctx, signupDTO())
	require.NoError(t, err)
	pair1, err := svc.Login(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "Secret123"})
	require.NoError(t, err)

	u := storedUser(t, ur, "alice@example.com")
	require.NoError(t, svc.LogoutAll(ctx, u.ID.Hex()))

	u = storedUser(t, ur, "alice@example.com")
	require.Empty(t, u.RefreshTokens)

	for _, tok := range []string{pair0.RefreshToken, pair1.RefreshToken} {
		_, err := svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: tok})
		require.True(t, authErrors.IsInvalidToken(err))
	}
}

func TestLogoutAll_BadUserID(t *testing.T) {
	svc, _, _ := newSvc(t)

	err := svc.LogoutAll(context.Background(), "not-an-object-id")
	require.True(t, authErrors.IsInvalidToken(err))
}
