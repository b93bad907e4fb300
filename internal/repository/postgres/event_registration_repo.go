package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"efgportal/internal/domain"
)

const registrationColumns = `id, event_id, profile_id, status, registered_at, reviewed_at, admin_notes`

const registrationViewSelect = `
	SELECT r.id, r.event_id, r.profile_id, r.status, r.registered_at, r.reviewed_at, r.admin_notes,
		p.id, p.full_name, p.email, p.title, p.company, p.role_type, i.name, p.linkedin_url, p.bio,
		e.id, e.name, e.date
	FROM event_registrations r
	JOIN profiles p ON p.id = r.profile_id
	JOIN events e ON e.id = r.event_id
	LEFT JOIN industries i ON i.id = p.industry_id
`

type eventRegistrationRepository struct {
	DB *sql.DB
}

func NewEventRegistrationRepository(db *sql.DB) domain.EventRegistrationRepository {
	return &eventRegistrationRepository{
		DB: db,
	}
}

func scanRegistration(row rowScanner) (*domain.EventRegistration, error) {
	reg := &domain.EventRegistration{}
	var status string
	var reviewedNull sql.NullTime
	var notesNull sql.NullString
	if err := row.Scan(&reg.ID, &reg.EventID, &reg.ProfileID, &status, &reg.RegisteredAt, &reviewedNull, &notesNull); err != nil {
		return nil, err
	}
	reg.Status = domain.RegistrationStatus(status)
	if reviewedNull.Valid {
		reg.ReviewedAt = &reviewedNull.Time
	}
	if notesNull.Valid {
		reg.AdminNotes = &notesNull.String
	}
	return reg, nil
}

// Create relies on UNIQUE (event_id, profile_id): concurrent submissions for the same pair
// produce exactly one row and every caller gets that row back.
func (r *eventRegistrationRepository) Create(ctx context.Context, reg *domain.EventRegistration) (bool, error) {
	query := `
		INSERT INTO event_registrations (event_id, profile_id, status, registered_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, profile_id) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, reg.EventID, reg.ProfileID, string(reg.Status), reg.RegisteredAt).Scan(&reg.ID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, classify(err)
	}
	existing, err := r.GetByEventAndProfile(ctx, reg.EventID, reg.ProfileID)
	if err != nil {
		return false, err
	}
	*reg = *existing
	return false, nil
}

func (r *eventRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.EventRegistration, error) {
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM event_registrations WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err)
	}
	return reg, nil
}

func (r *eventRegistrationRepository) GetByEventAndProfile(ctx context.Context, eventID, profileID string) (*domain.EventRegistration, error) {
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM event_registrations WHERE event_id = $1 AND profile_id = $2`, eventID, profileID))
	if err != nil {
		return nil, classify(err)
	}
	return reg, nil
}

func (r *eventRegistrationRepository) ListByProfileID(ctx context.Context, profileID string) ([]*domain.EventRegistration, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM event_registrations WHERE profile_id = $1 ORDER BY registered_at DESC, id`, profileID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	regs := make([]*domain.EventRegistration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, classify(err)
		}
		regs = append(regs, reg)
	}
	return regs, classify(rows.Err())
}

func (r *eventRegistrationRepository) List(ctx context.Context, filter domain.RegistrationFilter) ([]*domain.RegistrationView, error) {
	where := []string{}
	args := []interface{}{}
	if filter.EventID != "" {
		args = append(args, filter.EventID)
		where = append(where, fmt.Sprintf("r.event_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("r.status = $%d", len(args)))
	}
	query := registrationViewSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY r.registered_at DESC, r.id"
	return r.listViews(ctx, query, args...)
}

func (r *eventRegistrationRepository) ListRecent(ctx context.Context, limit int) ([]*domain.RegistrationView, error) {
	return r.listViews(ctx, registrationViewSelect+" ORDER BY r.registered_at DESC, r.id LIMIT $1", limit)
}

func (r *eventRegistrationRepository) listViews(ctx context.Context, query string, args ...interface{}) ([]*domain.RegistrationView, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	views := make([]*domain.RegistrationView, 0)
	for rows.Next() {
		reg := &domain.EventRegistration{}
		v := &domain.RegistrationView{Registration: reg}
		var status string
		var reviewedNull sql.NullTime
		var notesNull, industryNull sql.NullString
		err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.ProfileID, &status, &reg.RegisteredAt, &reviewedNull, &notesNull,
			&v.Profile.ID, &v.Profile.FullName, &v.Profile.Email, &v.Profile.Title, &v.Profile.Company,
			&v.Profile.RoleType, &industryNull, &v.Profile.LinkedInURL, &v.Profile.Bio,
			&v.Event.ID, &v.Event.Name, &v.Event.Date,
		)
		if err != nil {
			return nil, classify(err)
		}
		reg.Status = domain.RegistrationStatus(status)
		if reviewedNull.Valid {
			reg.ReviewedAt = &reviewedNull.Time
		}
		if notesNull.Valid {
			reg.AdminNotes = &notesNull.String
		}
		if industryNull.Valid {
			v.Profile.IndustryName = &industryNull.String
		}
		views = append(views, v)
	}
	return views, classify(rows.Err())
}

// UpdateStatus is a compare-and-set on status. When no row matches, a follow-up read tells a
// missing row apart from a concurrent transition.
func (r *eventRegistrationRepository) UpdateStatus(ctx context.Context, change domain.StatusChange) (*domain.EventRegistration, error) {
	query := `
		UPDATE event_registrations
		SET status = $1,
			reviewed_at = COALESCE($2, reviewed_at),
			admin_notes = COALESCE($3, admin_notes)
		WHERE id = $4 AND status = $5
		RETURNING ` + registrationColumns
	var reviewed sql.NullTime
	if change.ReviewedAt != nil {
		reviewed = sql.NullTime{Time: *change.ReviewedAt, Valid: true}
	}
	var notes sql.NullString
	if change.AdminNotes != nil {
		notes = sql.NullString{String: *change.AdminNotes, Valid: true}
	}
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query,
		string(change.To), reviewed, notes, change.RegistrationID, string(change.From)))
	if err == nil {
		return reg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, classify(err)
	}
	if _, err := r.GetByID(ctx, change.RegistrationID); err != nil {
		return nil, err
	}
	return nil, domain.ErrInvalidTransition
}

func (r *eventRegistrationRepository) CountByStatus(ctx context.Context) (map[domain.RegistrationStatus]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM event_registrations GROUP BY status`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	counts := make(map[domain.RegistrationStatus]int, len(domain.RegistrationStatuses))
	for _, s := range domain.RegistrationStatuses {
		counts[s] = 0
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, classify(err)
		}
		counts[domain.RegistrationStatus(status)] = n
	}
	return counts, classify(rows.Err())
}

func (r *eventRegistrationRepository) CountByEvent(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT event_id, COUNT(*) FROM event_registrations GROUP BY event_id`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var eventID string
		var n int
		if err := rows.Scan(&eventID, &n); err != nil {
			return nil, classify(err)
		}
		counts[eventID] = n
	}
	return counts, classify(rows.Err())
}
