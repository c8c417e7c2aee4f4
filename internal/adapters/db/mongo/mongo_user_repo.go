package mongo

import (
	"context"
	"errors"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{col: db.Collection("users")}
}

// EnsureIndexes backs the username/email uniqueness invariants.
func (m *MongoUserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return customErrors.WrapInternal(err, "EnsureIndexes")
	}
	return nil
}

func (m *MongoUserRepo) CreateUser(ctx context.Context, u model.User) (primitive.ObjectID, error) {
	now := time.Now()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.RefreshTokens == nil {
		u.RefreshTokens = []string{}
	}

	if _, err := m.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, customErrors.ErrAlreadyExists
		}
		return primitive.NilObjectID, customErrors.WrapInternal(err, "CreateUser")
	}
	return u.ID, nil
}

func (m *MongoUserRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	return m.findOne(ctx, bson.M{"_id": id}, "GetUserByID")
}

func (m *MongoUserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return m.findOne(ctx, bson.M{"email": email}, "GetUserByEmail")
}

func (m *MongoUserRepo) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return m.findOne(ctx, bson.M{"username": username}, "GetUserByUsername")
}

func (m *MongoUserRepo) GetUserByRefreshToken(ctx context.Context, token string) (model.User, error) {
	return m.findOne(ctx, bson.M{"refreshTokens": token}, "GetUserByRefreshToken")
}

func (m *MongoUserRepo) findOne(ctx context.Context, filter bson.M, op string) (model.User, error) {
	var u model.User
	err := m.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, op)
	}
	return u, nil
}

func (m *MongoUserRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListUsers")
	}
	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, customErrors.WrapInternal(err, "ListUsers")
	}
	return users, nil
}

func (m *MongoUserRepo) PushRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return m.updateByID(ctx, id, bson.M{
		"$push": bson.M{"refreshTokens": token},
		"$set":  bson.M{"updatedAt": time.Now()},
	}, "PushRefreshToken")
}

func (m *MongoUserRepo) PullRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return m.updateByID(ctx, id, bson.M{
		"$pull": bson.M{"refreshTokens": token},
		"$set":  bson.M{"updatedAt": time.Now()},
	}, "PullRefreshToken")
}

func (m *MongoUserRepo) ClearRefreshTokens(ctx context.Context, id primitive.ObjectID) error {
	return m.updateByID(ctx, id, bson.M{
		"$set": bson.M{"refreshTokens": []string{}, "updatedAt": time.Now()},
	}, "ClearRefreshTokens")
}

func (m *MongoUserRepo) updateByID(ctx context.Context, id primitive.ObjectID, update bson.M, op string) error {
	res, err := m.col.UpdateByID(ctx, id, update)
	if err != nil {
		return customErrors.WrapInternal(err, op)
	}
	if res.MatchedCount == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}
