package mongo

import (
	"context"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, customErrors.WrapInternal(err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, customErrors.WrapInternal(err, "ping mongo")
	}
	return client, nil
}
