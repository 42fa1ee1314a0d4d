package repository

import (
	"context"

	"github.com/ErlanBelekov/blog-api/internal/domain"
)

type ListPostsInput struct {
	State    *domain.State // nil = any state
	AuthorID string        // empty = any author

	// Search matches title, description or any tag, or authorship by one of
	// SearchAuthorIDs. Empty = no search.
	Search          string
	SearchAuthorIDs []string

	Tag   string // exact tag membership; empty = any
	Order domain.Order
	Page  domain.Page
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)

	// GetByID returns the post without side effects; used for ownership checks.
	GetByID(ctx context.Context, id string) (*domain.Post, error)

	// IncrementReadCount bumps read_count by one, whatever the post's state,
	// and returns it as it is after the increment, with its author populated.
	IncrementReadCount(ctx context.Context, id string) (*domain.Post, error)

	// List returns one page of matching posts (authors populated) and the
	// total number of matches ignoring pagination.
	List(ctx context.Context, input ListPostsInput) ([]*domain.Post, int, error)

	Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}
