package postgres

import (
	"context"
	"database/sql"

	"efgportal/internal/domain"

	"github.com/lib/pq"
)

const profileColumns = `id, user_id, full_name, email, title, company, industry_id, company_size, role_type,
		phone, linkedin_url, bio, interests, looking_for, open_to_sponsors, is_admin, profile_completed,
		created_at, updated_at`

type profileRepository struct {
	DB *sql.DB
}

// NewProfileRepository returns a domain.ProfileRepository implemented with Postgres.
func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	p := &domain.Profile{}
	var industryNull sql.NullString
	var interests, lookingFor pq.StringArray
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Email, &p.Title, &p.Company, &industryNull, &p.CompanySize, &p.RoleType,
		&p.Phone, &p.LinkedInURL, &p.Bio, &interests, &lookingFor, &p.OpenToSponsors, &p.IsAdmin, &p.ProfileCompleted,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if industryNull.Valid {
		p.IndustryID = &industryNull.String
	}
	p.Interests = append([]string{}, interests...)
	p.LookingFor = append([]string{}, lookingFor...)
	return p, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	p, err := scanProfile(r.DB.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err)
	}
	return p, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := scanProfile(r.DB.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
	if err != nil {
		return nil, classify(err)
	}
	return p, nil
}

// Update writes every user-editable column. is_admin is only changed through SetAdmin.
func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles SET
			full_name = $1, title = $2, company = $3, industry_id = $4, company_size = $5, role_type = $6,
			phone = $7, linkedin_url = $8, bio = $9, interests = $10, looking_for = $11,
			open_to_sponsors = $12, profile_completed = $13, updated_at = $14
		WHERE id = $15
	`
	var industry sql.NullString
	if p.IndustryID != nil {
		industry = sql.NullString{String: *p.IndustryID, Valid: true}
	}
	result, err := r.DB.ExecContext(ctx, query,
		p.FullName, p.Title, p.Company, industry, p.CompanySize, p.RoleType,
		p.Phone, p.LinkedInURL, p.Bio, pq.Array(p.Interests), pq.Array(p.LookingFor),
		p.OpenToSponsors, p.ProfileCompleted, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return classify(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE profiles SET is_admin = $1, updated_at = NOW() WHERE id = $2`, isAdmin, id)
	if err != nil {
		return classify(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Profile, int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()
	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, classify(err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(err)
	}
	return profiles, total, nil
}

func (r *profileRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n); err != nil {
		return 0, classify(err)
	}
	return n, nil
}
