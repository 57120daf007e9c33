// Package medication implements the ownership-scoped medication and reminder
// operations. Every lookup is keyed by (id, owning user), so records belonging
// to another user are indistinguishable from records that do not exist.
package medication

import (
	"context"
	"errors"

	"pharmtrack/internal/domain"
)

type Service struct {
	medications domain.MedicationRepository
	reminders   domain.ReminderRepository
}

func NewService(medications domain.MedicationRepository, reminders domain.ReminderRepository) *Service {
	return &Service{
		medications: medications,
		reminders:   reminders,
	}
}

// List returns every medication owned by the user. An empty shelf is reported
// as not-found; callers rely on that signal.
func (s *Service) List(ctx context.Context, userID int64) ([]domain.Medication, error) {
	medications, err := s.medications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(medications) == 0 {
		return nil, domain.ErrMedicationNotFound
	}

	return medications, nil
}

func (s *Service) Get(ctx context.Context, userID, medicationID int64) (*domain.Medication, error) {
	return s.medications.GetByIDAndUser(ctx, medicationID, userID)
}

// Create rejects a second medication of the same name for the same user. Two
// different users may each own a medication named identically.
func (s *Service) Create(ctx context.Context, userID int64, req domain.MedicationSaveRequest) (*domain.Medication, error) {
	if _, err := s.medications.GetByNameAndUser(ctx, req.Name, userID); err == nil {
		return nil, domain.ErrMedicationExists
	} else if !errors.Is(err, domain.ErrMedicationNotFound) {
		return nil, err
	}

	medication := &domain.Medication{
		Name:        req.Name,
		Description: req.Description,
		Dosage:      req.Dosage,
		IsCurrent:   req.IsCurrent,
		UserID:      userID,
		Reminders:   []domain.Reminder{},
	}

	if err := s.medications.Create(ctx, medication); err != nil {
		return nil, err
	}

	return medication, nil
}

func (s *Service) Update(ctx context.Context, userID, medicationID int64, req domain.MedicationSaveRequest) (*domain.Medication, error) {
	medication, err := s.medications.GetByIDAndUser(ctx, medicationID, userID)
	if err != nil {
		return nil, err
	}

	medication.Name = req.Name
	medication.Description = req.Description
	medication.Dosage = req.Dosage
	medication.IsCurrent = req.IsCurrent
	medication.UserID = userID

	if err := s.medications.Update(ctx, medication); err != nil {
		return nil, err
	}

	return medication, nil
}

// Delete removes the medication and, through the schema cascade, every
// reminder attached to it. The deleted record is returned to the caller.
func (s *Service) Delete(ctx context.Context, userID, medicationID int64) (*domain.Medication, error) {
	medication, err := s.medications.GetByIDAndUser(ctx, medicationID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.medications.Delete(ctx, medicationID, userID); err != nil {
		return nil, err
	}

	return medication, nil
}

// ListReminders returns every reminder owned by the user across all of their
// medications, with the same empty-means-not-found convention as List.
func (s *Service) ListReminders(ctx context.Context, userID int64) ([]domain.Reminder, error) {
	reminders, err := s.reminders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(reminders) == 0 {
		return nil, domain.ErrReminderNotFound
	}

	return reminders, nil
}

// GetReminder requires both ids: the reminder must be owned by the user AND
// actually belong to the named medication. A reminder that exists but hangs
// off a different medication is reported as not-found.
func (s *Service) GetReminder(ctx context.Context, userID, medicationID, reminderID int64) (*domain.Reminder, error) {
	reminder, err := s.reminders.GetByIDAndUser(ctx, reminderID, userID)
	if err != nil {
		return nil, err
	}

	medication, err := s.medications.GetByIDAndUser(ctx, medicationID, userID)
	if err != nil {
		return nil, domain.ErrReminderNotFound
	}

	if reminder.MedicationID != medication.ID {
		return nil, domain.ErrReminderNotFound
	}

	return reminder, nil
}

func (s *Service) CreateReminder(ctx context.Context, userID, medicationID int64, req domain.ReminderSaveRequest) (*domain.Reminder, error) {
	medication, err := s.medications.GetByIDAndUser(ctx, medicationID, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.reminders.GetByNameAndUser(ctx, req.Name, userID); err == nil {
		return nil, domain.ErrReminderExists
	} else if !errors.Is(err, domain.ErrReminderNotFound) {
		return nil, err
	}

	reminder := &domain.Reminder{
		Name:         req.Name,
		Instructions: req.Instructions,
		MedicationID: medication.ID,
		UserID:       userID,
	}

	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

func (s *Service) UpdateReminder(ctx context.Context, userID, reminderID int64, req domain.ReminderSaveRequest) (*domain.Reminder, error) {
	reminder, err := s.reminders.GetByIDAndUser(ctx, reminderID, userID)
	if err != nil {
		return nil, err
	}

	reminder.Name = req.Name
	reminder.Instructions = req.Instructions
	if req.MedicationID != 0 {
		// The new medication link is taken as-is; it is not re-checked
		// against the owner.
		reminder.MedicationID = req.MedicationID
	}

	if err := s.reminders.Update(ctx, reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

func (s *Service) DeleteReminder(ctx context.Context, userID, reminderID int64) (*domain.Reminder, error) {
	reminder, err := s.reminders.GetByIDAndUser(ctx, reminderID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.reminders.Delete(ctx, reminderID, userID); err != nil {
		return nil, err
	}

	return reminder, nil
}
