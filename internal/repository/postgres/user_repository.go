package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

const userColumns = `
	id, name, email, password, date_of_birth, gender, interested_in,
	hobbies, interests, bio, photos, show_age, show_bio,
	active_venue_id, last_active_at, status, role, created_at, updated_at
`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func scanUser(row interface{ Scan(...interface{}) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.DateOfBirth, &u.Gender, &u.InterestedIn,
		pq.Array(&u.Hobbies), pq.Array(&u.Interests), &u.Bio, pq.Array(&u.Photos),
		&u.ShowAge, &u.ShowBio,
		&u.ActiveVenueID, &u.LastActiveAt, &u.Status, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			name, email, password, date_of_birth, gender, interested_in,
			hobbies, interests, bio, photos, show_age, show_bio,
			last_active_at, status, role
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.Name, user.Email, user.Password, user.DateOfBirth, user.Gender, user.InterestedIn,
		pq.Array(user.Hobbies), pq.Array(user.Interests), user.Bio, pq.Array(user.Photos),
		user.ShowAge, user.ShowBio, user.LastActiveAt, user.Status, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT` + userColumns + `FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT` + userColumns + `FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, bio = $2, gender = $3, interested_in = $4,
		    hobbies = $5, interests = $6, photos = $7,
		    show_age = $8, show_bio = $9,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.Name, user.Bio, user.Gender, user.InterestedIn,
		pq.Array(user.Hobbies), pq.Array(user.Interests), pq.Array(user.Photos),
		user.ShowAge, user.ShowBio, user.ID,
	).Scan(&user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}

func (r *userRepository) UpdateActiveVenue(ctx context.Context, userID int, venueID *int) error {
	query := `
		UPDATE users
		SET active_venue_id = $1, last_active_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, venueID, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdateLastActive(ctx context.Context, userID int) error {
	query := `UPDATE users SET last_active_at = CURRENT_TIMESTAMP WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *userRepository) UpdateStatus(ctx context.Context, userID int, status string) error {
	query := `UPDATE users SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) CandidatesAtVenue(ctx context.Context, userID, venueID int, gender string, limit int) ([]*domain.User, error) {
	query := `
		SELECT` + userColumns + `
		FROM users u
		WHERE u.active_venue_id = $2
		  AND u.id <> $1
		  AND u.role = 'user'
		  AND u.status = 'Active'
		  AND NOT EXISTS (
			SELECT 1 FROM swipes s WHERE s.swiper_id = $1 AND s.target_id = u.id
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM blocks b WHERE b.blocker_id = $1 AND b.blocked_id = u.id
		  )
		  AND ($3 = '' OR u.gender = $3)
		ORDER BY u.id
		LIMIT $4
	`
	rows, err := r.db.QueryContext(ctx, query, userID, venueID, gender, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) List(ctx context.Context, filter repository.UserListFilter) ([]*domain.User, int, error) {
	query := `
		SELECT` + userColumns + `
		FROM users u
		WHERE u.role = 'user'
		  AND ($1 = '' OR u.status = $1)
		  AND ($2 = '' OR u.name ILIKE '%' || $2 || '%' OR u.email ILIKE '%' || $2 || '%')
		ORDER BY u.created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, query, filter.Status, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := `
		SELECT COUNT(*) FROM users u
		WHERE u.role = 'user'
		  AND ($1 = '' OR u.status = $1)
		  AND ($2 = '' OR u.name ILIKE '%' || $2 || '%' OR u.email ILIKE '%' || $2 || '%')
	`
	if err := r.db.GetContext(ctx, &total, countQuery, filter.Status, filter.Search); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM users WHERE role = 'user' GROUP BY status`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
