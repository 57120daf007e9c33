package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pharmtrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func registerAndLogin(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()

	rec := do(t, router, http.MethodPost, "/auth/users/register/", "", domain.RegisterRequest{
		UserName:     email,
		EmailAddress: email,
		Password:     password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/auth/users/login/", "", domain.LoginRequest{
		EmailAddress: email,
		Password:     password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res domain.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Jwt)
	require.Equal(t, "success", res.Message)

	return res.Jwt
}

func TestRegister_ReturnsUserWithoutPassword(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/auth/users/register/", "", domain.RegisterRequest{
		UserName:     "pombagira",
		EmailAddress: "cigana@gmail.com",
		Password:     "quimbanda7",
		Profile: &domain.ProfileRequest{
			FirstName: "Maria",
			LastName:  "Padilha",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cigana@gmail.com", body["emailAddress"])
	assert.NotContains(t, body, "password")

	profile, ok := body["profile"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Maria", profile["firstName"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := newTestRouter(t)

	req := domain.RegisterRequest{UserName: "a", EmailAddress: "a@x.com", Password: "pw"}

	rec := do(t, router, http.MethodPost, "/auth/users/register/", "", req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/auth/users/register/", "", req)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Message, "already exists")
}

func TestRegister_ValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/auth/users/register/", "", domain.RegisterRequest{
		UserName:     "a",
		EmailAddress: "not-an-email",
		Password:     "pw",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := newTestRouter(t)

	do(t, router, http.MethodPost, "/auth/users/register/", "", domain.RegisterRequest{
		UserName: "a", EmailAddress: "a@x.com", Password: "pw",
	})

	rec := do(t, router, http.MethodPost, "/auth/users/login/", "", domain.LoginRequest{
		EmailAddress: "a@x.com", Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var res domain.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Authentication failed", res.Message)
	assert.Empty(t, res.Jwt)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/medications/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/medications/", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMedicationLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "a@x.com", "pw")

	// Empty shelf reads as not-found.
	rec := do(t, router, http.MethodGet, "/api/medications/", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "cannot find any medications", decodeEnvelope(t, rec).Message)

	// Create.
	rec = do(t, router, http.MethodPost, "/api/medications/", token, domain.MedicationSaveRequest{
		Name:   "Aspirin",
		Dosage: "1/day",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Medication
	env := decodeEnvelope(t, rec)
	require.Equal(t, "success", env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Aspirin", created.Name)

	// List.
	rec = do(t, router, http.MethodGet, "/api/medications/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []domain.Medication
	env = decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	// Get by id.
	rec = do(t, router, http.MethodGet, fmt.Sprintf("/api/medications/%d/", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Update.
	rec = do(t, router, http.MethodPut, fmt.Sprintf("/api/medications/%d/", created.ID), token, domain.MedicationSaveRequest{
		Name: "Aspirin", Dosage: "2/day", IsCurrent: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Message, "successfully updated")

	// Delete.
	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/api/medications/%d/", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Message, "successfully deleted")

	// Back to not-found.
	rec = do(t, router, http.MethodGet, "/api/medications/", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMedicationCreate_DuplicateNameConflict(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "a@x.com", "pw")

	req := domain.MedicationSaveRequest{Name: "Aspirin"}

	rec := do(t, router, http.MethodPost, "/api/medications/", token, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/medications/", token, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "medication with name Aspirin already exists", decodeEnvelope(t, rec).Message)
}

func TestMedication_OwnershipBoundary(t *testing.T) {
	router := newTestRouter(t)
	tokenA := registerAndLogin(t, router, "a@x.com", "pw")
	tokenB := registerAndLogin(t, router, "b@x.com", "pw")

	rec := do(t, router, http.MethodPost, "/api/medications/", tokenA, domain.MedicationSaveRequest{Name: "Oxycontin"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Medication
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))

	// B cannot reach A's medication through any verb.
	rec = do(t, router, http.MethodGet, fmt.Sprintf("/api/medications/%d/", created.ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPut, fmt.Sprintf("/api/medications/%d/", created.ID), tokenB, domain.MedicationSaveRequest{Name: "Stolen"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/api/medications/%d/", created.ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// And B may reuse the name for a medication of their own.
	rec = do(t, router, http.MethodPost, "/api/medications/", tokenB, domain.MedicationSaveRequest{Name: "Oxycontin"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestReminderLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "a@x.com", "pw")

	rec := do(t, router, http.MethodGet, "/api/medications/reminders/", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "cannot find any reminders", decodeEnvelope(t, rec).Message)

	rec = do(t, router, http.MethodPost, "/api/medications/", token, domain.MedicationSaveRequest{Name: "Oxycontin"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var med domain.Medication
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &med))

	rec = do(t, router, http.MethodPost, fmt.Sprintf("/api/medications/%d/reminders/", med.ID), token, domain.ReminderSaveRequest{
		Name: "Morning", Instructions: "with food",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var rem domain.Reminder
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &rem))
	assert.Equal(t, med.ID, rem.MedicationID)

	rec = do(t, router, http.MethodGet, "/api/medications/reminders/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, fmt.Sprintf("/api/medications/%d/reminders/%d/", med.ID, rem.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPut, fmt.Sprintf("/api/medications/%d/reminders/%d/", med.ID, rem.ID), token, domain.ReminderSaveRequest{
		Name: "Evening", Instructions: "before bed",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Message, "successfully updated")

	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/api/medications/%d/reminders/%d/", med.ID, rem.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Message, "successfully deleted")
}

func TestReminderShow_WrongMedication(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "a@x.com", "pw")

	rec := do(t, router, http.MethodPost, "/api/medications/", token, domain.MedicationSaveRequest{Name: "Oxycontin"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var medA domain.Medication
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &medA))

	rec = do(t, router, http.MethodPost, "/api/medications/", token, domain.MedicationSaveRequest{Name: "Methadone"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var medB domain.Medication
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &medB))

	rec = do(t, router, http.MethodPost, fmt.Sprintf("/api/medications/%d/reminders/", medA.ID), token, domain.ReminderSaveRequest{Name: "Morning"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var rem domain.Reminder
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &rem))

	// Real reminder id, but under the wrong medication.
	rec = do(t, router, http.MethodGet, fmt.Sprintf("/api/medications/%d/reminders/%d/", medB.ID, rem.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("cannot find reminder with id %d", rem.ID), decodeEnvelope(t, rec).Message)
}

func TestReminderCreate_UnknownMedication(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "a@x.com", "pw")

	rec := do(t, router, http.MethodPost, "/api/medications/999/reminders/", token, domain.ReminderSaveRequest{Name: "Morning"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "medication with id 999 not found", decodeEnvelope(t, rec).Message)
}

func TestLogout_RevokesToken(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "a@x.com", "pw")

	rec := do(t, router, http.MethodGet, "/auth/users/me/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/auth/users/logout/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/auth/users/me/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_ResolvesTokenToUser(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "a@x.com", "pw")

	rec := do(t, router, http.MethodGet, "/auth/users/me/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &user))
	assert.Equal(t, "a@x.com", user.EmailAddress)
}

func TestShow_MalformedIDIsNotFound(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "a@x.com", "pw")

	rec := do(t, router, http.MethodGet, "/api/medications/abc/", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
