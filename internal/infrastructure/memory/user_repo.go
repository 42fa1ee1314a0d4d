package memory

import (
	"context"
	"strings"

	"github.com/ErlanBelekov/blog-api/internal/domain"
	"github.com/google/uuid"
)

type userRecord struct {
	user domain.User
	seq  int64
}

type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return nil, domain.DuplicateField(domain.KindDuplicateEmail, user.Email)
	}

	rec := &userRecord{user: *user, seq: s.nextSeq()}
	rec.user.ID = uuid.NewString()
	rec.user.CreatedAt = s.now()
	s.users[rec.user.ID] = rec
	s.byEmail[rec.user.Email] = rec.user.ID

	u := rec.user
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := rec.user
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := s.users[id].user
	return &u, nil
}

func (r *UserRepository) FindIDsByName(ctx context.Context, term string) ([]string, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id, rec := range s.users {
		if containsFold(rec.user.FirstName, term) || containsFold(rec.user.LastName, term) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
