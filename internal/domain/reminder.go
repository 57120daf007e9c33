package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrReminderExists   = errors.New("reminder already exists")
)

type Reminder struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Instructions string    `json:"instructions"`
	MedicationID int64     `json:"medicationId"`
	UserID       int64     `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ReminderSaveRequest struct {
	Name         string `json:"name" validate:"required"`
	Instructions string `json:"instructions"`
	MedicationID int64  `json:"medicationId"`
}

type ReminderRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]Reminder, error)
	ListByMedication(ctx context.Context, medicationID int64) ([]Reminder, error)
	GetByIDAndUser(ctx context.Context, reminderID, userID int64) (*Reminder, error)
	GetByNameAndUser(ctx context.Context, name string, userID int64) (*Reminder, error)
	Create(ctx context.Context, rem *Reminder) error
	Update(ctx context.Context, rem *Reminder) error
	Delete(ctx context.Context, reminderID, userID int64) error
}

// ReminderService is implemented alongside MedicationService by the same
// domain service; reminders never exist apart from a medication.
type ReminderService interface {
	ListReminders(ctx context.Context, userID int64) ([]Reminder, error)
	GetReminder(ctx context.Context, userID, medicationID, reminderID int64) (*Reminder, error)
	CreateReminder(ctx context.Context, userID, medicationID int64, req ReminderSaveRequest) (*Reminder, error)
	UpdateReminder(ctx context.Context, userID, reminderID int64, req ReminderSaveRequest) (*Reminder, error)
	DeleteReminder(ctx context.Context, userID, reminderID int64) (*Reminder, error)
}
