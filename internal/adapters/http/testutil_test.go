package http

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"pharmtrack/internal/config"
	"pharmtrack/internal/core/auth"
	"pharmtrack/internal/core/medication"
	"pharmtrack/internal/domain"

	nethttp "net/http"
)

// In-memory repositories backing a fully wired router, so the tests run the
// real handler → middleware → service stack without postgres or redis.

type memState struct {
	users       map[int64]*domain.User
	medications map[int64]*domain.Medication
	reminders   map[int64]*domain.Reminder
	revoked     map[string]bool
	nextID      int64
}

func newMemState() *memState {
	return &memState{
		users:       make(map[int64]*domain.User),
		medications: make(map[int64]*domain.Medication),
		reminders:   make(map[int64]*domain.Reminder),
		revoked:     make(map[string]bool),
		nextID:      1,
	}
}

func (s *memState) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

type memUserRepo struct{ state *memState }

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range r.state.users {
		if u.EmailAddress == user.EmailAddress {
			return domain.ErrEmailExists
		}
	}
	user.ID = r.state.id()
	if user.Profile != nil {
		user.Profile.ID = r.state.id()
	}
	cp := *user
	r.state.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.state.users {
		if u.EmailAddress == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	u, ok := r.state.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type memMedicationRepo struct{ state *memState }

func (r *memMedicationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Medication, error) {
	var out []domain.Medication
	for _, m := range r.state.medications {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memMedicationRepo) GetByIDAndUser(ctx context.Context, medicationID, userID int64) (*domain.Medication, error) {
	m, ok := r.state.medications[medicationID]
	if !ok || m.UserID != userID {
		return nil, domain.ErrMedicationNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memMedicationRepo) GetByNameAndUser(ctx context.Context, name string, userID int64) (*domain.Medication, error) {
	for _, m := range r.state.medications {
		if m.UserID == userID && m.Name == name {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.ErrMedicationNotFound
}

func (r *memMedicationRepo) Create(ctx context.Context, m *domain.Medication) error {
	m.ID = r.state.id()
	cp := *m
	r.state.medications[m.ID] = &cp
	return nil
}

func (r *memMedicationRepo) Update(ctx context.Context, m *domain.Medication) error {
	if _, ok := r.state.medications[m.ID]; !ok {
		return domain.ErrMedicationNotFound
	}
	cp := *m
	r.state.medications[m.ID] = &cp
	return nil
}

func (r *memMedicationRepo) Delete(ctx context.Context, medicationID, userID int64) error {
	m, ok := r.state.medications[medicationID]
	if !ok || m.UserID != userID {
		return domain.ErrMedicationNotFound
	}
	delete(r.state.medications, medicationID)
	for id, rem := range r.state.reminders {
		if rem.MedicationID == medicationID {
			delete(r.state.reminders, id)
		}
	}
	return nil
}

type memReminderRepo struct{ state *memState }

func (r *memReminderRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Reminder, error) {
	var out []domain.Reminder
	for _, rem := range r.state.reminders {
		if rem.UserID == userID {
			out = append(out, *rem)
		}
	}
	return out, nil
}

func (r *memReminderRepo) ListByMedication(ctx context.Context, medicationID int64) ([]domain.Reminder, error) {
	var out []domain.Reminder
	for _, rem := range r.state.reminders {
		if rem.MedicationID == medicationID {
			out = append(out, *rem)
		}
	}
	return out, nil
}

func (r *memReminderRepo) GetByIDAndUser(ctx context.Context, reminderID, userID int64) (*domain.Reminder, error) {
	rem, ok := r.state.reminders[reminderID]
	if !ok || rem.UserID != userID {
		return nil, domain.ErrReminderNotFound
	}
	cp := *rem
	return &cp, nil
}

func (r *memReminderRepo) GetByNameAndUser(ctx context.Context, name string, userID int64) (*domain.Reminder, error) {
	for _, rem := range r.state.reminders {
		if rem.UserID == userID && rem.Name == name {
			cp := *rem
			return &cp, nil
		}
	}
	return nil, domain.ErrReminderNotFound
}

func (r *memReminderRepo) Create(ctx context.Context, rem *domain.Reminder) error {
	rem.ID = r.state.id()
	cp := *rem
	r.state.reminders[rem.ID] = &cp
	return nil
}

func (r *memReminderRepo) Update(ctx context.Context, rem *domain.Reminder) error {
	if _, ok := r.state.reminders[rem.ID]; !ok {
		return domain.ErrReminderNotFound
	}
	cp := *rem
	r.state.reminders[rem.ID] = &cp
	return nil
}

func (r *memReminderRepo) Delete(ctx context.Context, reminderID, userID int64) error {
	rem, ok := r.state.reminders[reminderID]
	if !ok || rem.UserID != userID {
		return domain.ErrReminderNotFound
	}
	delete(r.state.reminders, reminderID)
	return nil
}

type memTokenStore struct{ state *memState }

func (s *memTokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	s.state.revoked[token] = true
	return nil
}

func (s *memTokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.state.revoked[token], nil
}

func newTestRouter(t *testing.T) nethttp.Handler {
	t.Helper()

	cfg := &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}

	state := newMemState()
	userRepo := &memUserRepo{state: state}
	medicationRepo := &memMedicationRepo{state: state}
	reminderRepo := &memReminderRepo{state: state}
	tokenStore := &memTokenStore{state: state}

	authService := auth.NewService(userRepo, tokenStore, cfg.JWTSecret, cfg.JWTExpiry)
	medicationService := medication.NewService(medicationRepo, reminderRepo)

	log := slog.New(slog.DiscardHandler)

	return NewRouter(cfg, log, &RouterDeps{
		Auth:       NewAuthHandler(authService, cfg),
		Medication: NewMedicationHandler(medicationService),
		Reminder:   NewReminderHandler(medicationService),

		UserRepo:   userRepo,
		TokenStore: tokenStore,
	})
}
