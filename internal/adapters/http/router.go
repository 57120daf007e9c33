package http

import (
	"log/slog"
	"net/http"

	"pharmtrack/internal/adapters/http/middleware"
	"pharmtrack/internal/config"
	"pharmtrack/internal/domain"
)

type RouterDeps struct {
	Auth       *AuthHandler
	Medication *MedicationHandler
	Reminder   *ReminderHandler

	UserRepo   domain.UserRepository
	TokenStore domain.TokenStore
}

// NewRouter wires every route. Paths are registered with the {$} anchor so a
// trailing-slash pattern matches exactly and not the whole subtree.
func NewRouter(cfg *config.Config, log *slog.Logger, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.Logging(log))
	globalMw.Use(middleware.CORS(cfg))

	userStack := middleware.New()
	userStack.Use(middleware.JWT(cfg.JWTSecret, deps.UserRepo, deps.TokenStore))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /auth/users/register/{$}", deps.Auth.Register)
	mux.HandleFunc("POST /auth/users/login/{$}", deps.Auth.Login)
	mux.Handle("POST /auth/users/logout/{$}", userStack.Then(http.HandlerFunc(deps.Auth.Logout)))
	mux.Handle("GET /auth/users/me/{$}", userStack.Then(http.HandlerFunc(deps.Auth.User)))

	mux.Handle("GET /api/medications/{$}", userStack.Then(http.HandlerFunc(deps.Medication.Index)))
	mux.Handle("POST /api/medications/{$}", userStack.Then(http.HandlerFunc(deps.Medication.Store)))
	mux.Handle("GET /api/medications/{medicationId}/{$}", userStack.Then(http.HandlerFunc(deps.Medication.Show)))
	mux.Handle("PUT /api/medications/{medicationId}/{$}", userStack.Then(http.HandlerFunc(deps.Medication.Update)))
	mux.Handle("DELETE /api/medications/{medicationId}/{$}", userStack.Then(http.HandlerFunc(deps.Medication.Destroy)))

	mux.Handle("GET /api/medications/reminders/{$}", userStack.Then(http.HandlerFunc(deps.Reminder.Index)))
	mux.Handle("POST /api/medications/{medicationId}/reminders/{$}", userStack.Then(http.HandlerFunc(deps.Reminder.Store)))
	mux.Handle("GET /api/medications/{medicationId}/reminders/{reminderId}/{$}", userStack.Then(http.HandlerFunc(deps.Reminder.Show)))
	mux.Handle("PUT /api/medications/{medicationId}/reminders/{reminderId}/{$}", userStack.Then(http.HandlerFunc(deps.Reminder.Update)))
	mux.Handle("DELETE /api/medications/{medicationId}/reminders/{reminderId}/{$}", userStack.Then(http.HandlerFunc(deps.Reminder.Destroy)))

	return globalMw.Apply(mux)
}
