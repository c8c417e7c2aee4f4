package service

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/model"
)

type Service interface {
	// Create persists a bookmark owned by the authenticated user. The owner
	// is fixed at creation and never changes.
	Create(ctx context.Context, ownerID string, dto dto.CreateBookmarkDTO) (model.Bookmark, error)

	// List returns the owner's bookmarks, most recent first.
	List(ctx context.Context, ownerID string) ([]model.Bookmark, error)

	// Delete removes the bookmark only if both id and owner match. A missing
	// id and someone else's bookmark are indistinguishable to the caller.
	Delete(ctx context.Context, ownerID, bookmarkID string) error
}
