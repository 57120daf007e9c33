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

type MedicationRepository struct {
	db *pgxpool.Pool
}

func NewMedicationRepository(db *pgxpool.Pool) domain.MedicationRepository {
	return &MedicationRepository{db: db}
}

// ListByUser returns the user's medications with their reminder collections
// attached. Reminders are fetched in one query and grouped in memory.
func (r *MedicationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Medication, error) {
	query := `
		SELECT
			id,
			name,
			description,
			dosage,
			is_current,
			user_id,
			created_at,
			updated_at
		FROM medications
		WHERE user_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query medications: %w", err)
	}
	defer rows.Close()

	var medications []domain.Medication
	for rows.Next() {
		var m domain.Medication
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Description,
			&m.Dosage,
			&m.IsCurrent,
			&m.UserID,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		m.Reminders = []domain.Reminder{}
		medications = append(medications, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(medications) == 0 {
		return medications, nil
	}

	reminders, err := r.remindersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byMedication := make(map[int64][]domain.Reminder, len(medications))
	for _, rem := range reminders {
		byMedication[rem.MedicationID] = append(byMedication[rem.MedicationID], rem)
	}

	for i := range medications {
		if rems, ok := byMedication[medications[i].ID]; ok {
			medications[i].Reminders = rems
		}
	}

	return medications, nil
}

func (r *MedicationRepository) GetByIDAndUser(ctx context.Context, medicationID, userID int64) (*domain.Medication, error) {
	return r.get(ctx, "id = $1 AND user_id = $2", medicationID, userID)
}

func (r *MedicationRepository) GetByNameAndUser(ctx context.Context, name string, userID int64) (*domain.Medication, error) {
	return r.get(ctx, "name = $1 AND user_id = $2", name, userID)
}

func (r *MedicationRepository) get(ctx context.Context, condition string, args ...any) (*domain.Medication, error) {
	query := `
		SELECT
			id,
			name,
			description,
			dosage,
			is_current,
			user_id,
			created_at,
			updated_at
		FROM medications
		WHERE ` + condition

	var m domain.Medication
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.Dosage,
		&m.IsCurrent,
		&m.UserID,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMedicationNotFound
		}
		return nil, err
	}

	reminders, err := r.remindersByMedication(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.Reminders = reminders

	return &m, nil
}

func (r *MedicationRepository) Create(ctx context.Context, m *domain.Medication) error {
	query := `
		INSERT INTO medications (user_id, name, description, dosage, is_current, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at
	`

	now := time.Now().UTC()

	err := r.db.QueryRow(ctx, query,
		m.UserID,
		m.Name,
		m.Description,
		m.Dosage,
		m.IsCurrent,
		now,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrMedicationExists
		}
		return fmt.Errorf("failed to insert medication: %w", err)
	}

	return nil
}

func (r *MedicationRepository) Update(ctx context.Context, m *domain.Medication) error {
	query := `
		UPDATE medications
		SET name = $1, description = $2, dosage = $3, is_current = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`

	now := time.Now().UTC()

	ct, err := r.db.Exec(ctx, query,
		m.Name,
		m.Description,
		m.Dosage,
		m.IsCurrent,
		now,
		m.ID,
		m.UserID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrMedicationExists
		}
		return fmt.Errorf("failed to update medication: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return domain.ErrMedicationNotFound
	}

	m.UpdatedAt = now
	return nil
}

// Delete removes the medication row; the schema cascade takes its reminders.
func (r *MedicationRepository) Delete(ctx context.Context, medicationID, userID int64) error {
	query := `DELETE FROM medications WHERE id = $1 AND user_id = $2`

	ct, err := r.db.Exec(ctx, query, medicationID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return domain.ErrMedicationNotFound
	}

	return nil
}

func (r *MedicationRepository) remindersByUser(ctx context.Context, userID int64) ([]domain.Reminder, error) {
	return r.reminders(ctx, "user_id = $1", userID)
}

func (r *MedicationRepository) remindersByMedication(ctx context.Context, medicationID int64) ([]domain.Reminder, error) {
	return r.reminders(ctx, "medication_id = $1", medicationID)
}

func (r *MedicationRepository) reminders(ctx context.Context, condition string, arg any) ([]domain.Reminder, error) {
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

	reminders := []domain.Reminder{}
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
