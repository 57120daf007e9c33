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

type ReminderRepository struct {
	db *pgxpool.Pool
}

func NewReminderRepository(db *pgxpool.Pool) domain.ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Reminder, error) {
	return r.list(ctx, "user_id = $1", userID)
}

func (r *ReminderRepository) ListByMedication(ctx context.Context, medicationID int64) ([]domain.Reminder, error) {
	return r.list(ctx, "medication_id = $1", medicationID)
}

func (r *ReminderRepository) list(ctx context.Context, condition string, arg any) ([]domain.Reminder, error) {
	query := `
		SELECT
			id,
			name,
			instructions,
			medication_id,
			user_id,
			created_at,
			updated_at
		FROM reminders
		WHERE ` + condition + `
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []domain.Reminder
	for rows.Next() {
		var rem domain.Reminder
		if err := rows.Scan(
			&rem.ID,
			&rem.Name,
			&rem.Instructions,
			&rem.MedicationID,
			&rem.UserID,
			&rem.CreatedAt,
			&rem.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}

	return reminders, rows.Err()
}

func (r *ReminderRepository) GetByIDAndUser(ctx context.Context, reminderID, userID int64) (*domain.Reminder, error) {
	return r.get(ctx, "id = $1 AND user_id = $2", reminderID, userID)
}

func (r *ReminderRepository) GetByNameAndUser(ctx context.Context, name string, userID int64) (*domain.Reminder, error) {
	return r.get(ctx, "name = $1 AND user_id = $2", name, userID)
}

func (r *ReminderRepository) get(ctx context.Context, condition string, args ...any) (*domain.Reminder, error) {
	query := `
		SELECT
			id,
			name,
			instructions,
			medication_id,
			user_id,
			created_at,
			updated_at
		FROM reminders
		WHERE ` + condition

	var rem domain.Reminder
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&rem.ID,
		&rem.Name,
		&rem.Instructions,
		&rem.MedicationID,
		&rem.UserID,
		&rem.CreatedAt,
		&rem.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReminderNotFound
		}
		return nil, err
	}

	return &rem, nil
}

func (r *ReminderRepository) Create(ctx context.Context, rem *domain.Reminder) error {
	query := `
		INSERT INTO reminders (user_id, medication_id, name, instructions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, created_at, updated_at
	`

	now := time.Now().UTC()

	err := r.db.QueryRow(ctx, query,
		rem.UserID,
		rem.MedicationID,
		rem.Name,
		rem.Instructions,
		now,
	).Scan(&rem.ID, &rem.CreatedAt, &rem.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrReminderExists
		}
		return fmt.Errorf("failed to insert reminder: %w", err)
	}

	return nil
}

func (r *ReminderRepository) Update(ctx context.Context, rem *domain.Reminder) error {
	query := `
		UPDATE reminders
		SET name = $1, instructions = $2, medication_id = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`

	now := time.Now().UTC()

	ct, err := r.db.Exec(ctx, query,
		rem.Name,
		rem.Instructions,
		rem.MedicationID,
		now,
		rem.ID,
		rem.UserID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrReminderExists
		}
		return fmt.Errorf("failed to update reminder: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}

	rem.UpdatedAt = now
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, reminderID, userID int64) error {
	query := `DELETE FROM reminders WHERE id = $1 AND user_id = $2`

	ct, err := r.db.Exec(ctx, query, reminderID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}

	return nil
}
