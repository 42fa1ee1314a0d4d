package memory

import (
	"cmp"
	"context"
	"slices"
	"sort"

	"github.com/ErlanBelekov/blog-api/internal/domain"
	"github.com/ErlanBelekov/blog-api/internal/repository"
	"github.com/google/uuid"
)

type postRecord struct {
	post domain.Post
	seq  int64
}

type PostRepository struct {
	store *Store
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[post.AuthorID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	if _, taken := s.byTitle[post.Title]; taken {
		return nil, domain.DuplicateField(domain.KindDuplicateTitle, post.Title)
	}

	rec := &postRecord{post: *post, seq: s.nextSeq()}
	rec.post.ID = uuid.NewString()
	rec.post.Tags = slices.Clone(post.Tags)
	if rec.post.Tags == nil {
		rec.post.Tags = []string{}
	}
	rec.post.ReadCount = 0
	rec.post.CreatedAt = s.now()
	rec.post.Author = nil
	s.posts[rec.post.ID] = rec
	s.byTitle[rec.post.Title] = rec.post.ID

	return s.view(rec), nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return s.view(rec), nil
}

func (r *PostRepository) IncrementReadCount(ctx context.Context, id string) (*domain.Post, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	rec.post.ReadCount++
	return s.view(rec), nil
}

func (r *PostRepository) List(ctx context.Context, in repository.ListPostsInput) ([]*domain.Post, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*postRecord
	for _, rec := range s.posts {
		if matches(&rec.post, in) {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return less(matched[i], matched[j], in.Order)
	})

	total := len(matched)
	start := min(in.Page.Offset(), total)
	end := min(start+in.Page.Limit, total)

	posts := make([]*domain.Post, 0, end-start)
	for _, rec := range matched[start:end] {
		posts = append(posts, s.view(rec))
	}
	return posts, total, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if patch.Title != nil && *patch.Title != rec.post.Title {
		if _, taken := s.byTitle[*patch.Title]; taken {
			return nil, domain.DuplicateField(domain.KindDuplicateTitle, *patch.Title)
		}
		delete(s.byTitle, rec.post.Title)
		s.byTitle[*patch.Title] = id
	}
	patch.Apply(&rec.post)
	return s.view(rec), nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	if err := uuid.Validate(id); err != nil {
		return domain.ErrInvalidID
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	delete(s.byTitle, rec.post.Title)
	delete(s.posts, id)
	return nil
}

// view copies rec and attaches its author. Caller holds mu.
func (s *Store) view(rec *postRecord) *domain.Post {
	p := rec.post
	p.Tags = slices.Clone(rec.post.Tags)
	if u, ok := s.users[p.AuthorID]; ok {
		p.Author = &domain.Author{
			ID:        u.user.ID,
			FirstName: u.user.FirstName,
			LastName:  u.user.LastName,
			Email:     u.user.Email,
		}
	}
	return &p
}

func matches(p *domain.Post, in repository.ListPostsInput) bool {
	if in.State != nil && p.State != *in.State {
		return false
	}
	if in.AuthorID != "" && p.AuthorID != in.AuthorID {
		return false
	}
	if in.Tag != "" && !slices.Contains(p.Tags, in.Tag) {
		return false
	}
	if in.Search == "" {
		return true
	}
	if containsFold(p.Title, in.Search) || containsFold(p.Description, in.Search) {
		return true
	}
	for _, tag := range p.Tags {
		if containsFold(tag, in.Search) {
			return true
		}
	}
	return slices.Contains(in.SearchAuthorIDs, p.AuthorID)
}

// less orders by the selected field, then newest first, then insertion order.
func less(a, b *postRecord, o domain.Order) bool {
	var c int
	switch o.Field {
	case domain.SortByReadCount:
		c = cmp.Compare(a.post.ReadCount, b.post.ReadCount)
	case domain.SortByReadingTime:
		c = cmp.Compare(a.post.ReadingTime, b.post.ReadingTime)
	default:
		c = a.post.CreatedAt.Compare(b.post.CreatedAt)
	}
	if o.Direction == domain.Descending {
		c = -c
	}
	if c != 0 {
		return c < 0
	}
	if c := a.post.CreatedAt.Compare(b.post.CreatedAt); c != 0 {
		return c > 0
	}
	return a.seq > b.seq
}
