package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrMedicationExists   = errors.New("medication already exists")
)

type Medication struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Dosage      string     `json:"dosage"`
	IsCurrent   bool       `json:"isCurrent"`
	UserID      int64      `json:"-"`
	Reminders   []Reminder `json:"reminders"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type MedicationSaveRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Dosage      string `json:"dosage"`
	IsCurrent   bool   `json:"isCurrent"`
}

type MedicationRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]Medication, error)
	GetByIDAndUser(ctx context.Context, medicationID, userID int64) (*Medication, error)
	GetByNameAndUser(ctx context.Context, name string, userID int64) (*Medication, error)
	Create(ctx context.Context, m *Medication) error
	Update(ctx context.Context, m *Medication) error
	Delete(ctx context.Context, medicationID, userID int64) error
}

// MedicationService operations take the owning user's id explicitly; every
// lookup is scoped to that id, so another user's medication id behaves exactly
// like a nonexistent one.
type MedicationService interface {
	List(ctx context.Context, userID int64) ([]Medication, error)
	Get(ctx context.Context, userID, medicationID int64) (*Medication, error)
	Create(ctx context.Context, userID int64, req MedicationSaveRequest) (*Medication, error)
	Update(ctx context.Context, userID, medicationID int64, req MedicationSaveRequest) (*Medication, error)
	Delete(ctx context.Context, userID, medicationID int64) (*Medication, error)
}
