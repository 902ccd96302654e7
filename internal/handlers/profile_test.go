package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parla-app/parla-backend/internal/middleware"
	"github.com/parla-app/parla-backend/internal/models"
	"github.com/parla-app/parla-backend/internal/services"
	"github.com/parla-app/parla-backend/pkg/utils"
)

// fakeStore is a minimal in-memory UserStore for handler tests.
type fakeStore struct {
	users map[string]*models.User
}

func newFakeStore(users ...*models.User) *fakeStore {
	s := &fakeStore{users: make(map[string]*models.User)}
	for _, u := range users {
		cp := *u
		s.users[u.ID] = &cp
	}
	return s
}

func (s *fakeStore) Get(_ context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeStore) Put(_ context.Context, u *models.User) error {
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeStore) ListUsernames(_ context.Context, excludeID string) ([]string, error) {
	var out []string
	for id, u := range s.users {
		if id != excludeID && u.Username != "" {
			out = append(out, u.Username)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := s.users[id]
	if !ok {
		return services.ErrUserNotFound
	}
	u.Password = hash
	return nil
}

func (s *fakeStore) UpdateAvatar(_ context.Context, id, avatar string) error {
	u, ok := s.users[id]
	if !ok {
		return services.ErrUserNotFound
	}
	u.Avatar = avatar
	return nil
}

func (s *fakeStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, services.ErrUserNotFound
}

// noBios satisfies the bio cache without Redis.
type noBios struct{}

func (noBios) Set(context.Context, string, string) error         { return nil }
func (noBios) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (noBios) Delete(context.Context, string) error              { return nil }

const testUserID = "3f1d1c02-6f1a-4a6b-9a60-0d3a5b8c1e77"

func testUser() *models.User {
	hash, _ := utils.HashPassword("abc123")
	return &models.User{
		ID:        testUserID,
		FirstName: "Ali",
		LastName:  "Hassan",
		Name:      "Ali Hassan",
		Username:  "ali99",
		Email:     "ali@example.com",
		Password:  hash,
		Role:      models.RoleUser,
	}
}

func newTestHandler(users ...*models.User) *Handler {
	store := newFakeStore(users...)
	profile := services.NewProfileService(store, noBios{}, services.NewInlineIngester())
	return New(profile, store)
}

func authedRequest(method, target string, body []byte) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	return r.WithContext(middleware.WithUserID(r.Context(), testUserID))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestSaveEditHandler_Success(t *testing.T) {
	h := newTestHandler(testUser())

	body, _ := json.Marshal(services.EditRequest{
		FirstName: "Ali",
		LastName:  "Hassan",
		Username:  "ali99",
		Bio:       "Ciao!",
		Email:     "ali@example.com",
		Phone:     "333 1234567",
		PhoneCode: "+39",
	})

	rec := httptest.NewRecorder()
	h.SaveEdit(rec, authedRequest(http.MethodPut, "/api/profile", body))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestSaveEditHandler_InvalidUsername(t *testing.T) {
	h := newTestHandler(testUser())

	body, _ := json.Marshal(services.EditRequest{
		FirstName: "Ali",
		LastName:  "Hassan",
		Username:  "al",
		Email:     "ali@example.com",
	})

	rec := httptest.NewRecorder()
	h.SaveEdit(rec, authedRequest(http.MethodPut, "/api/profile", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, utils.CodeFormatInvalid, resp.Code)
}

func TestSaveEditHandler_CooldownCarriesDays(t *testing.T) {
	u := testUser()
	changed := time.Now().Add(-10 * 24 * time.Hour)
	u.UsernameChangeDate = &changed
	h := newTestHandler(u)

	body, _ := json.Marshal(services.EditRequest{
		FirstName: "Ali",
		LastName:  "Hassan",
		Username:  "ali.new",
		Email:     "ali@example.com",
	})

	rec := httptest.NewRecorder()
	h.SaveEdit(rec, authedRequest(http.MethodPut, "/api/profile", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, utils.CodeCooldownActive, resp.Code)
	assert.Equal(t, 50, resp.Days)
}

func TestSaveEditHandler_Unauthorized(t *testing.T) {
	h := newTestHandler(testUser())

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader("{}"))
	h.SaveEdit(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckUsernameHandler(t *testing.T) {
	other := testUser()
	other.ID = "b2a3e0a1-93a5-4a27-8cf3-2a5f0f4d9e10"
	other.Username = "marco88"
	other.Email = "marco@example.com"
	h := newTestHandler(testUser(), other)

	body, _ := json.Marshal(map[string]string{"username": "Marco88"})
	rec := httptest.NewRecorder()
	h.CheckUsername(rec, authedRequest(http.MethodPost, "/api/profile/check-username", body))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, services.UsernameTaken, data["status"])
	assert.Equal(t, false, data["available"])
}

func TestChangePasswordHandler_WrongCurrent(t *testing.T) {
	h := newTestHandler(testUser())

	body, _ := json.Marshal(map[string]string{
		"current_password": "wrong",
		"new_password":     "newpass1",
		"confirm_password": "newpass1",
	})

	rec := httptest.NewRecorder()
	h.ChangePassword(rec, authedRequest(http.MethodPost, "/api/profile/password", body))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, utils.CodeCredentialInvalid, resp.Code)
}

func TestAvatarHandlers(t *testing.T) {
	u := testUser()
	h := newTestHandler(u)

	t.Run("upload", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "avatar.png")
		require.NoError(t, err)
		part.Write([]byte{0x89, 0x50, 0x4E, 0x47})
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/api/profile/avatar", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())
		r = r.WithContext(middleware.WithUserID(r.Context(), testUserID))

		rec := httptest.NewRecorder()
		h.UploadAvatar(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
	})

	t.Run("delete", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.DeleteAvatar(rec, authedRequest(http.MethodDelete, "/api/profile/avatar", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		stored, _ := h.Store.Get(context.Background(), testUserID)
		assert.Empty(t, stored.Avatar)
	})
}

func TestGetStatsHandler_RespectsPrivacy(t *testing.T) {
	other := testUser()
	other.ID = "b2a3e0a1-93a5-4a27-8cf3-2a5f0f4d9e10"
	other.Email = "marco@example.com"
	other.PrivacyHideStats = true
	other.Progress = models.Progress{CorrectAnswers: 8, WrongAnswers: 2}
	h := newTestHandler(testUser(), other)

	t.Run("own stats include accuracy", func(t *testing.T) {
		u := testUser()
		u.Progress = models.Progress{CorrectAnswers: 8, WrongAnswers: 2}
		h := newTestHandler(u)

		rec := httptest.NewRecorder()
		h.GetStats(rec, authedRequest(http.MethodGet, "/api/profile/stats", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(80), data["accuracy"])
	})

	t.Run("hidden stats of another user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.GetStats(rec, authedRequest(http.MethodGet, "/api/profile/stats?user_id="+other.ID, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, true, data["hidden"])
	})
}

func TestOnboardingHandler(t *testing.T) {
	h := newTestHandler(testUser())

	body, _ := json.Marshal(services.OnboardingRequest{
		BirthDate:    "1995-04-12",
		Province:     "Roma",
		Gender:       models.GenderMale,
		PhoneCode:    "+39",
		Phone:        "3331234567",
		ItalianLevel: models.LevelGood,
	})

	rec := httptest.NewRecorder()
	h.Onboarding(rec, authedRequest(http.MethodPost, "/api/profile/onboarding", body))

	require.Equal(t, http.StatusOK, rec.Code)

	stored, _ := h.Store.Get(context.Background(), testUserID)
	assert.True(t, stored.ProfileComplete)
	assert.Equal(t, "Italia", stored.Country)
}
