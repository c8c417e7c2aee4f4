package service

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/model"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type bookmarkService struct {
	bookmarkRepo repo.BookmarkRepo
}

func New(bookmarkRepo repo.BookmarkRepo) *bookmarkService {
	return &bookmarkService{bookmarkRepo: bookmarkRepo}
}

func (b *bookmarkService) Create(ctx context.Context, ownerID string, d dto.CreateBookmarkDTO) (model.Bookmark, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return model.Bookmark{}, customErrors.ErrInvalidToken
	}

	bookmark := model.Bookmark{
		Title:    d.Title,
		URL:      d.URL,
		Category: d.Category,
		Tags:     d.Tags,
		Notes:    d.Notes,
		UserID:   owner,
	}
	created, err := b.bookmarkRepo.CreateBookmark(ctx, bookmark)
	if err != nil {
		return model.Bookmark{}, customErrors.WrapInternal(err, "Create")
	}
	return created, nil
}

func (b *bookmarkService) List(ctx context.Context, ownerID string) ([]model.Bookmark, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, customErrors.ErrInvalidToken
	}

	bookmarks, err := b.bookmarkRepo.ListBookmarksByOwner(ctx, owner)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "List")
	}
	return bookmarks, nil
}

func (b *bookmarkService) Delete(ctx context.Context, ownerID, bookmarkID string) error {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return customErrors.ErrInvalidToken
	}

	// A malformed id cannot match anything; collapse it into the same
	// not-found outcome as a miss or a foreign owner.
	id, err := primitive.ObjectIDFromHex(bookmarkID)
	if err != nil {
		return customErrors.ErrNotFound
	}

	if err := b.bookmarkRepo.DeleteBookmarkByOwner(ctx, id, owner); err != nil {
		if customErrors.IsNotFound(err) {
			return err
		}
		return customErrors.WrapInternal(err, "Delete")
	}
	return nil
}
