package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/ErlanBelekov/blog-api/internal/domain"
	"github.com/ErlanBelekov/blog-api/internal/email"
	"github.com/ErlanBelekov/blog-api/internal/repository"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeUserRepo struct {
	create        func(ctx context.Context, user *domain.User) (*domain.User, error)
	findByID      func(ctx context.Context, id string) (*domain.User, error)
	findByEmail   func(ctx context.Context, email string) (*domain.User, error)
	findIDsByName func(ctx context.Context, term string) ([]string, error)
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.create(ctx, user)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) FindIDsByName(ctx context.Context, term string) ([]string, error) {
	return r.findIDsByName(ctx, term)
}

type fakePostRepo struct {
	create             func(ctx context.Context, post *domain.Post) (*domain.Post, error)
	getByID            func(ctx context.Context, id string) (*domain.Post, error)
	incrementReadCount func(ctx context.Context, id string) (*domain.Post, error)
	list               func(ctx context.Context, input repository.ListPostsInput) ([]*domain.Post, int, error)
	update             func(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error)
	delete             func(ctx context.Context, id string) error
}

func (r *fakePostRepo) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	return r.create(ctx, post)
}

func (r *fakePostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return r.getByID(ctx, id)
}

func (r *fakePostRepo) IncrementReadCount(ctx context.Context, id string) (*domain.Post, error) {
	return r.incrementReadCount(ctx, id)
}

func (r *fakePostRepo) List(ctx context.Context, input repository.ListPostsInput) ([]*domain.Post, int, error) {
	return r.list(ctx, input)
}

func (r *fakePostRepo) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	return r.update(ctx, id, patch)
}

func (r *fakePostRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

type fakeEmailSender struct {
	send func(ctx context.Context, msg email.Message) error
}

func (s *fakeEmailSender) Send(ctx context.Context, msg email.Message) error {
	return s.send(ctx, msg)
}
