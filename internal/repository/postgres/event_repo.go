package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"efgportal/internal/domain"
)

const eventColumns = `id, name, slug, series, date, location, venue, description, banner_url, is_active, registration_open, created_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var seriesNull, venueNull, descNull, bannerNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Name, &e.Slug, &seriesNull, &e.Date, &e.Location, &venueNull, &descNull, &bannerNull,
		&e.IsActive, &e.RegistrationOpen, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if seriesNull.Valid {
		e.Series = &seriesNull.String
	}
	if venueNull.Valid {
		e.Venue = &venueNull.String
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if bannerNull.Valid {
		e.BannerURL = &bannerNull.String
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, slug, series, date, location, venue, description, banner_url, is_active, registration_open, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Name, e.Slug, e.Series, e.Date, e.Location, e.Venue, e.Description, e.BannerURL,
		e.IsActive, e.RegistrationOpen, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError("slug", "slug already in use")
		}
		return classify(err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err)
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	e, err := scanEvent(r.DB.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = $1`, slug))
	if err != nil {
		return nil, classify(err)
	}
	return e, nil
}

func (r *eventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE is_active = true ORDER BY date ASC, id`)
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date DESC, id`)
}

func (r *eventRepository) list(ctx context.Context, query string) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, classify(err)
		}
		events = append(events, e)
	}
	return events, classify(rows.Err())
}

func (r *eventRepository) SetFlags(ctx context.Context, id string, flags domain.EventFlags) (*domain.Event, error) {
	setClauses := []string{}
	args := []interface{}{}
	n := 1
	if flags.IsActive != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_active = $%d", n))
		args = append(args, *flags.IsActive)
		n++
	}
	if flags.RegistrationOpen != nil {
		setClauses = append(setClauses, fmt.Sprintf("registration_open = $%d", n))
		args = append(args, *flags.RegistrationOpen)
		n++
	}
	if n == 1 {
		// No flags to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, classify(err)
	}
	return e, nil
}
