package postgres

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/blog-api/internal/domain"
)

const userColumns = `id, first_name, last_name, email, password_hash, created_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query, user.FirstName, user.LastName, user.Email, user.PasswordHash)
	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err, constraintUsersEmailKey) {
			return nil, domain.DuplicateField(domain.KindDuplicateEmail, user.Email)
		}
		return nil, fmt.Errorf("create user: %w", translate(err, domain.ErrUserNotFound))
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", translate(err, domain.ErrUserNotFound))
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", translate(err, domain.ErrUserNotFound))
	}
	return u, nil
}

func (r *UserRepository) FindIDsByName(ctx context.Context, term string) ([]string, error) {
	query := `SELECT id FROM users WHERE first_name ILIKE $1 OR last_name ILIKE $1`

	rows, err := r.db.Query(ctx, query, containsPattern(term))
	if err != nil {
		return nil, fmt.Errorf("find users by name: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}
	return ids, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
