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

type MongoBookmarkRepo struct {
	col *mongo.Collection
}

func NewMongoBookmarkRepo(db *mongo.Database) *MongoBookmarkRepo {
	return &MongoBookmarkRepo{col: db.Collection("bookmarks")}
}

func (m *MongoBookmarkRepo) CreateBookmark(ctx context.Context, b model.Bookmark) (model.Bookmark, error) {
	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now()
	if b.Tags == nil {
		b.Tags = []string{}
	}

	if _, err := m.col.InsertOne(ctx, b); err != nil {
		return model.Bookmark{}, customErrors.WrapInternal(err, "CreateBookmark")
	}
	return b, nil
}

func (m *MongoBookmarkRepo) ListBookmarksByOwner(ctx context.Context, owner primitive.ObjectID) ([]model.Bookmark, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{"userId": owner}, opts)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListBookmarksByOwner")
	}

	bookmarks := []model.Bookmark{}
	if err := cur.All(ctx, &bookmarks); err != nil {
		return nil, customErrors.WrapInternal(err, "ListBookmarksByOwner")
	}
	return bookmarks, nil
}

func (m *MongoBookmarkRepo) DeleteBookmarkByOwner(ctx context.Context, id, owner primitive.ObjectID) error {
	err := m.col.FindOneAndDelete(ctx, bson.M{"_id": id, "userId": owner}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return customErrors.ErrNotFound
	}
	if err != nil {
		return customErrors.WrapInternal(err, "DeleteBookmarkByOwner")
	}
	return nil
}
