package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ErlanBelekov/blog-api/internal/domain"
	"github.com/ErlanBelekov/blog-api/internal/metrics"
	"github.com/ErlanBelekov/blog-api/internal/repository"
)

// PostUsecase decides who may see and who may change a post.
type PostUsecase struct {
	posts  repository.PostRepository
	users  repository.UserRepository
	logger *slog.Logger
}

func NewPostUsecase(posts repository.PostRepository, users repository.UserRepository, logger *slog.Logger) *PostUsecase {
	return &PostUsecase{
		posts:  posts,
		users:  users,
		logger: logger.With("component", "post_usecase"),
	}
}

type CreatePostInput struct {
	AuthorID    string
	Title       string
	Description string
	Body        string
	Tags        []string
	State       domain.State // empty = draft
}

func (u *PostUsecase) Create(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	if input.State != "" && !input.State.Valid() {
		return nil, domain.Validation("state must be draft or published")
	}

	post := domain.NewPost(input.AuthorID, input.Title, input.Description, input.Body, input.Tags, input.State)

	created, err := u.posts.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	metrics.PostsCreatedTotal.WithLabelValues(string(created.State)).Inc()
	return created, nil
}

type ListPublishedInput struct {
	Search   string
	AuthorID string
	Tag      string
	Order    domain.Order
	Page     domain.Page
}

// ListPublished is the anonymous listing. Only published posts are ever
// returned; every other filter narrows that set.
func (u *PostUsecase) ListPublished(ctx context.Context, input ListPublishedInput) (*domain.PostList, error) {
	published := domain.StatePublished
	q := repository.ListPostsInput{
		State:    &published,
		AuthorID: input.AuthorID,
		Tag:      input.Tag,
		Order:    input.Order,
		Page:     input.Page,
	}

	if search := strings.TrimSpace(input.Search); search != "" {
		ids, err := u.users.FindIDsByName(ctx, search)
		if err != nil {
			return nil, fmt.Errorf("find authors by name: %w", err)
		}
		q.Search = search
		q.SearchAuthorIDs = ids
	}

	posts, total, err := u.posts.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return &domain.PostList{Posts: posts, Page: input.Page, Total: total}, nil
}

// Get counts a read and returns the post if it is published. Drafts are not
// reachable here for anyone, their owner included, but the read still counts.
func (u *PostUsecase) Get(ctx context.Context, id, viewerID string) (*domain.Post, error) {
	post, err := u.posts.IncrementReadCount(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	if post.State != domain.StatePublished {
		u.logger.DebugContext(ctx, "draft requested by id", "post_id", id, "viewer_id", viewerID)
		return nil, domain.ErrPostNotFound
	}

	metrics.PostReadsTotal.Inc()
	return post, nil
}

// Update applies patch if callerID owns the post. Existence and ownership
// are checked before the patch values are validated or anything is written.
func (u *PostUsecase) Update(ctx context.Context, id, callerID string, patch domain.PostPatch) (*domain.Post, error) {
	post, err := u.ownedPost(ctx, id, callerID, domain.ErrForbiddenUpdate)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return post, nil
	}

	patch.Derive()
	updated, err := u.posts.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

func (u *PostUsecase) Delete(ctx context.Context, id, callerID string) error {
	if _, err := u.ownedPost(ctx, id, callerID, domain.ErrForbiddenDelete); err != nil {
		return err
	}
	if err := u.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// ListOwn lists the caller's posts, drafts included, newest first. A nil
// state lists both.
func (u *PostUsecase) ListOwn(ctx context.Context, callerID string, state *domain.State, page domain.Page) (*domain.PostList, error) {
	posts, total, err := u.posts.List(ctx, repository.ListPostsInput{
		State:    state,
		AuthorID: callerID,
		Order:    domain.OrderNewest,
		Page:     page,
	})
	if err != nil {
		return nil, fmt.Errorf("list own posts: %w", err)
	}
	return &domain.PostList{Posts: posts, Page: page, Total: total}, nil
}

func (u *PostUsecase) ownedPost(ctx context.Context, id, callerID string, forbidden *domain.Error) (*domain.Post, error) {
	post, err := u.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	if !post.OwnedBy(callerID) {
		return nil, forbidden
	}
	return post, nil
}
