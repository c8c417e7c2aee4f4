package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookmarkRepo interface {
	CreateBookmark(ctx context.Context, b model.Bookmark) (model.Bookmark, error)

	// ListBookmarksByOwner returns the owner's bookmarks, newest first.
	ListBookmarksByOwner(ctx context.Context, owner primitive.ObjectID) ([]model.Bookmark, error)

	// DeleteBookmarkByOwner deletes the bookmark matching both id and owner
	// in a single find-and-delete. ErrNotFound covers both a missing id and
	// an id owned by someone else.
	DeleteBookmarkByOwner(ctx context.Context, id, owner primitive.ObjectID) error
}
