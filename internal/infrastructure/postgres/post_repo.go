package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/blog-api/internal/domain"
	"github.com/ErlanBelekov/blog-api/internal/repository"
)

// postColumns selects a post joined with its author, aliased p and u.
const postColumns = `p.id, p.author_id, p.title, p.slug, p.description, p.body, p.tags,
	p.state, p.read_count, p.reading_time, p.created_at,
	u.first_name, u.last_name, u.email`

type PostRepository struct {
	db DBTX
}

func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	query := `
		WITH p AS (
			INSERT INTO posts (author_id, title, slug, description, body, tags, state, reading_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING *
		)
		SELECT ` + postColumns + `
		FROM p JOIN users u ON u.id = p.author_id`

	row := r.db.QueryRow(ctx, query,
		post.AuthorID, post.Title, post.Slug, post.Description, post.Body,
		post.Tags, string(post.State), post.ReadingTime,
	)
	created, err := scanPost(row)
	if err != nil {
		if isUniqueViolation(err, constraintPostsTitleKey) {
			return nil, domain.DuplicateField(domain.KindDuplicateTitle, post.Title)
		}
		return nil, fmt.Errorf("create post: %w", translate(err, domain.ErrUserNotFound))
	}
	return created, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p JOIN users u ON u.id = p.author_id WHERE p.id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get post: %w", translate(err, domain.ErrPostNotFound))
	}
	return post, nil
}

func (r *PostRepository) IncrementReadCount(ctx context.Context, id string) (*domain.Post, error) {
	query := `
		WITH p AS (
			UPDATE posts SET read_count = read_count + 1
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + postColumns + `
		FROM p JOIN users u ON u.id = p.author_id`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("increment read count: %w", translate(err, domain.ErrPostNotFound))
	}
	return post, nil
}

func (r *PostRepository) List(ctx context.Context, in repository.ListPostsInput) ([]*domain.Post, int, error) {
	where, args := listFilter(in)

	var total int
	countQuery := `SELECT count(*) FROM posts p` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", translate(err, domain.ErrPostNotFound))
	}

	args = append(args, in.Page.Limit, in.Page.Offset())
	query := fmt.Sprintf(`SELECT %s FROM posts p JOIN users u ON u.id = p.author_id%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		postColumns, where, orderClause(in.Order), len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", translate(err, domain.ErrPostNotFound))
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, total, nil
}

// listFilter builds the WHERE clause shared by the count and page queries.
func listFilter(in repository.ListPostsInput) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if in.State != nil {
		conds = append(conds, "p.state = "+arg(string(*in.State)))
	}
	if in.AuthorID != "" {
		conds = append(conds, "p.author_id = "+arg(in.AuthorID))
	}
	if in.Tag != "" {
		conds = append(conds, arg(in.Tag)+" = ANY(p.tags)")
	}
	if in.Search != "" {
		pattern := arg(containsPattern(in.Search))
		search := []string{
			"p.title ILIKE " + pattern,
			"p.description ILIKE " + pattern,
			"EXISTS (SELECT 1 FROM unnest(p.tags) AS t(tag) WHERE t.tag ILIKE " + pattern + ")",
		}
		if len(in.SearchAuthorIDs) > 0 {
			search = append(search, "p.author_id = ANY("+arg(in.SearchAuthorIDs)+"::uuid[])")
		}
		conds = append(conds, "("+strings.Join(search, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderClause(o domain.Order) string {
	col := "p.created_at"
	switch o.Field {
	case domain.SortByReadCount:
		col = "p.read_count"
	case domain.SortByReadingTime:
		col = "p.reading_time"
	}
	dir := "DESC"
	if o.Direction == domain.Ascending {
		dir = "ASC"
	}
	if o.Field == domain.SortByTimestamp {
		return col + " " + dir + ", p.id"
	}
	return col + " " + dir + ", p.created_at DESC, p.id"
}

func (r *PostRepository) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	query := `
		WITH p AS (
			UPDATE posts SET
				title        = COALESCE($2, title),
				slug         = COALESCE($3, slug),
				description  = COALESCE($4, description),
				body         = COALESCE($5, body),
				tags         = COALESCE($6, tags),
				state        = COALESCE($7, state),
				reading_time = COALESCE($8, reading_time)
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + postColumns + `
		FROM p JOIN users u ON u.id = p.author_id`

	var state *string
	if patch.State != nil {
		s := string(*patch.State)
		state = &s
	}

	row := r.db.QueryRow(ctx, query, id,
		patch.Title, patch.Slug, patch.Description, patch.Body, patch.Tags, state, patch.ReadingTime,
	)
	post, err := scanPost(row)
	if err != nil {
		if isUniqueViolation(err, constraintPostsTitleKey) && patch.Title != nil {
			return nil, domain.DuplicateField(domain.KindDuplicateTitle, *patch.Title)
		}
		return nil, fmt.Errorf("update post: %w", translate(err, domain.ErrPostNotFound))
	}
	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", translate(err, domain.ErrPostNotFound))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var (
		p     domain.Post
		a     domain.Author
		state string
	)
	err := row.Scan(
		&p.ID, &p.AuthorID, &p.Title, &p.Slug, &p.Description, &p.Body, &p.Tags,
		&state, &p.ReadCount, &p.ReadingTime, &p.CreatedAt,
		&a.FirstName, &a.LastName, &a.Email,
	)
	if err != nil {
		return nil, err
	}
	p.State = domain.State(state)
	a.ID = p.AuthorID
	p.Author = &a
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}
