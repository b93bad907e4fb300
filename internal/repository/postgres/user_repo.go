package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"efgportal/internal/domain"

	"github.com/lib/pq"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

// Create inserts the user and its profile in one transaction. A duplicate email returns domain.ErrDuplicateEmail.
func (r *userRepository) Create(ctx context.Context, u *domain.User, p *domain.Profile) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, u.Email, u.PasswordHash, u.Salt, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return classify(err)
	}

	p.UserID = u.ID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO profiles (user_id, full_name, email, role_type, interests, looking_for, open_to_sponsors, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, p.UserID, p.FullName, p.Email, p.RoleType, pq.Array(p.Interests), pq.Array(p.LookingFor), p.OpenToSponsors, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert profile: %w", classify(err))
	}
	return classify(tx.Commit())
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, salt, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Salt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, classify(err)
	}
	return u, nil
}
