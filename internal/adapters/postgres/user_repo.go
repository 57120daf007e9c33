package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pharmtrack/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and, when present, its profile in one transaction.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (user_name, email_address, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, created_at, updated_at
	`

	now := time.Now().UTC()

	err = tx.QueryRow(ctx, query,
		user.UserName,
		user.EmailAddress,
		user.Password,
		now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if user.Profile != nil {
		profileQuery := `
			INSERT INTO profiles (user_id, first_name, last_name, address, phone_number)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		err = tx.QueryRow(ctx, profileQuery,
			user.ID,
			user.Profile.FirstName,
			user.Profile.LastName,
			user.Profile.Address,
			user.Profile.PhoneNumber,
		).Scan(&user.Profile.ID)
		if err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, "u.email_address = $1", email)
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.get(ctx, "u.id = $1", userID)
}

func (r *UserRepository) get(ctx context.Context, condition string, arg any) (*domain.User, error) {
	query := `
		SELECT
			u.id,
			u.user_name,
			u.email_address,
			u.password,
			u.created_at,
			u.updated_at,
			p.id,
			p.first_name,
			p.last_name,
			p.address,
			p.phone_number
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE ` + condition

	row := r.db.QueryRow(ctx, query, arg)

	var user domain.User
	var profileID *int64
	var firstName, lastName, address, phoneNumber *string

	if err := row.Scan(
		&user.ID,
		&user.UserName,
		&user.EmailAddress,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
		&profileID,
		&firstName,
		&lastName,
		&address,
		&phoneNumber,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if profileID != nil {
		user.Profile = &domain.Profile{
			ID:          *profileID,
			FirstName:   *firstName,
			LastName:    *lastName,
			Address:     *address,
			PhoneNumber: *phoneNumber,
		}
	}

	return &user, nil
}
