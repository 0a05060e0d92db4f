package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

const venueColumns = `
	id, name, category, address, city, state, lat, lng, radius_meters,
	capacity, current_occupancy, opening_hours, tags, is_active, is_deleted,
	created_at, updated_at
`

type venueRepository struct {
	db *sqlx.DB
}

func NewVenueRepository(db *sqlx.DB) repository.VenueRepository {
	return &venueRepository{db: db}
}

func scanVenue(row interface{ Scan(...interface{}) error }) (*domain.Venue, error) {
	var v domain.Venue
	err := row.Scan(
		&v.ID, &v.Name, &v.Category, &v.Address, &v.City, &v.State,
		&v.Lat, &v.Lng, &v.RadiusMeters, &v.Capacity, &v.CurrentOccupancy,
		&v.OpeningHours, pq.Array(&v.Tags), &v.IsActive, &v.IsDeleted,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *venueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	query := `
		INSERT INTO venues (
			name, category, address, city, state, lat, lng, radius_meters,
			capacity, opening_hours, tags, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		venue.Name, venue.Category, venue.Address, venue.City, venue.State,
		venue.Lat, venue.Lng, venue.RadiusMeters, venue.Capacity,
		venue.OpeningHours, pq.Array(venue.Tags), venue.IsActive,
	).Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
}

func (r *venueRepository) GetByID(ctx context.Context, id int) (*domain.Venue, error) {
	query := `SELECT` + venueColumns + `FROM venues WHERE id = $1 AND is_deleted = false`
	venue, err := scanVenue(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}

func (r *venueRepository) GetActive(ctx context.Context, id int) (*domain.Venue, error) {
	query := `SELECT` + venueColumns + `FROM venues WHERE id = $1 AND is_active = true AND is_deleted = false`
	venue, err := scanVenue(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}

func (r *venueRepository) ListActive(ctx context.Context) ([]*domain.Venue, error) {
	query := `SELECT` + venueColumns + `FROM venues WHERE is_active = true AND is_deleted = false ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []*domain.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *venueRepository) List(ctx context.Context, filter repository.VenueListFilter) ([]*domain.Venue, int, error) {
	where := `
		WHERE is_deleted = false
		  AND ($1 = '' OR ($1 = 'active' AND is_active) OR ($1 = 'inactive' AND NOT is_active))
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR city ILIKE '%' || $2 || '%' OR state ILIKE '%' || $2 || '%')
	`
	query := `SELECT` + venueColumns + `FROM venues` + where + `ORDER BY created_at DESC LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, filter.Status, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var venues []*domain.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, 0, err
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM venues`+where, filter.Status, filter.Search); err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}

func (r *venueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	query := `
		UPDATE venues
		SET name = $1, category = $2, address = $3, city = $4, state = $5,
		    lat = $6, lng = $7, radius_meters = $8, capacity = $9,
		    opening_hours = $10, tags = $11,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $12 AND is_deleted = false
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		venue.Name, venue.Category, venue.Address, venue.City, venue.State,
		venue.Lat, venue.Lng, venue.RadiusMeters, venue.Capacity,
		venue.OpeningHours, pq.Array(venue.Tags), venue.ID,
	).Scan(&venue.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrVenueNotFound
	}
	return err
}

func (r *venueRepository) SetActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE venues SET is_active = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 AND is_deleted = false`
	return r.execExpectingRow(ctx, query, active, id)
}

func (r *venueRepository) SoftDelete(ctx context.Context, id int) error {
	query := `UPDATE venues SET is_deleted = true, updated_at = CURRENT_TIMESTAMP WHERE id = $1 AND is_deleted = false`
	return r.execExpectingRow(ctx, query, id)
}

func (r *venueRepository) UpdateOccupancy(ctx context.Context, id, occupancy int) error {
	query := `UPDATE venues SET current_occupancy = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, occupancy, id)
	return err
}

func (r *venueRepository) Stats(ctx context.Context) (*domain.VenueStats, error) {
	var stats domain.VenueStats
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_active)
		FROM venues
		WHERE is_deleted = false
	`
	if err := r.db.QueryRowContext(ctx, query).Scan(&stats.TotalVenues, &stats.ActiveVenues); err != nil {
		return nil, err
	}
	stats.InactiveVenues = stats.TotalVenues - stats.ActiveVenues
	return &stats, nil
}

func (r *venueRepository) execExpectingRow(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}
