package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/phoneauthsvc/domain"
)

func str(s string) *string { return &s }

// fakeAPI is a minimal in-process stand-in for the auth service.
type fakeAPI struct {
	t *testing.T

	user          *domain.User
	validCode     string
	issuedToken   string
	activeTokens  map[string]bool
	logoutStatus  int
	logoutCalls   int
	profileStatus int
}

func newFakeAPI(t *testing.T, user *domain.User) *fakeAPI {
	t.Helper()

	return &fakeAPI{
		t:            t,
		user:         user,
		validCode:    "2308",
		issuedToken:  "tok-issued",
		activeTokens: map[string]bool{},
		logoutStatus: http.StatusOK,
	}
}

func (f *fakeAPI) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/send-otp", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":        true,
			"message":        "OTP sent successfully via WhatsApp",
			"deliveryMethod": "whatsapp",
			"testMode":       true,
			"otp":            f.validCode,
		})
	})
	mux.HandleFunc("POST /auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PhoneNumber string `json:"phoneNumber"`
			OTP         string `json:"otp"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OTP != f.validCode {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid or expired OTP"})
			return
		}
		f.activeTokens[f.issuedToken] = true
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    f.user,
			"token":   f.issuedToken,
			"session": &domain.Session{ID: "session-1", UserID: f.user.ID, Token: f.issuedToken, ExpiresAt: time.Now().Add(720 * time.Hour)},
		})
	})
	mux.HandleFunc("GET /auth/verify-session", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid or expired token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		f.logoutCalls++
		if f.logoutStatus != http.StatusOK {
			writeJSON(w, f.logoutStatus, map[string]any{"error": "Failed to log out"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logged out successfully"})
	})
	mux.HandleFunc("GET /users/profile", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid or expired token"})
			return
		}
		if f.profileStatus != 0 {
			writeJSON(w, f.profileStatus, map[string]any{"error": "User not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":          true,
			"user":             f.user,
			"profile_complete": domain.NewProfile(f.user).Complete(),
		})
	})
	mux.HandleFunc("PUT /users/profile", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid or expired token"})
			return
		}
		var fields map[string]any
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&fields))
		if v, ok := fields["first_name"].(string); ok {
			f.user.FirstName = &v
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":          true,
			"user":             f.user,
			"profile_complete": domain.NewProfile(f.user).Complete(),
		})
	})
	mux.HandleFunc("PUT /users/language", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid or expired token"})
			return
		}
		var req struct {
			Language string `json:"language"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		f.user.Language = &req.Language
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Language updated successfully"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (f *fakeAPI) authorized(r *http.Request) bool {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	return len(header) > len(prefix) && f.activeTokens[header[len(prefix):]]
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_SignInAndVerifyFlow(t *testing.T) {
	user := &domain.User{ID: "user-123", PhoneNumber: "9167767684"}
	api := newFakeAPI(t, user)
	srv := api.server(t)

	store := NewMemoryTokenStore()
	c := New(srv.URL, store)
	ctx := context.Background()

	sent, err := c.SignIn(ctx, "9167767684")
	require.NoError(t, err)
	assert.True(t, sent.TestMode)
	assert.Equal(t, "2308", sent.OTP)

	result, err := c.VerifyOTP(ctx, "9167767684", sent.OTP)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.HasLanguage, "fresh user has no language yet")
	assert.False(t, result.HasRole)
	assert.False(t, result.ProfileComplete)

	assert.True(t, c.SignedIn())
	assert.Equal(t, "user-123", c.User().ID)

	// The token survives a restart through the store.
	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-issued", persisted)
}

func TestClient_VerifyOTP_WrongCode(t *testing.T) {
	api := newFakeAPI(t, &domain.User{ID: "user-123", PhoneNumber: "9167767684"})
	srv := api.server(t)
	c := New(srv.URL, nil)

	result, err := c.VerifyOTP(context.Background(), "9167767684", "0000")
	require.NoError(t, err, "a rejected code is not a transport error")
	assert.False(t, result.Success)
	assert.False(t, c.SignedIn())
}

func TestClient_VerifyOTP_RoutingFlags(t *testing.T) {
	user := &domain.User{
		ID:          "user-123",
		PhoneNumber: "9167767684",
		Language:    str("mr"),
		FirstName:   str("Asha"),
		LastName:    str("Patil"),
		DateOfBirth: str("1990-05-03"),
		Email:       str("asha@example.com"),
		State:       str("Maharashtra"),
		District:    str("Pune"),
		Taluka:      str("Haveli"),
		Role:        str("citizen"),
	}
	api := newFakeAPI(t, user)
	srv := api.server(t)
	c := New(srv.URL, nil)

	result, err := c.VerifyOTP(context.Background(), "9167767684", "2308")
	require.NoError(t, err)
	assert.True(t, result.HasLanguage)
	assert.True(t, result.HasRole)
	assert.True(t, result.ProfileComplete)
	assert.True(t, c.ProfileComplete())
}

func TestClient_Bootstrap(t *testing.T) {
	user := &domain.User{ID: "user-123", PhoneNumber: "9167767684", Language: str("mr")}
	api := newFakeAPI(t, user)
	api.activeTokens["tok-persisted"] = true
	srv := api.server(t)

	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("tok-persisted"))

	c := New(srv.URL, store)
	require.NoError(t, c.Bootstrap(context.Background()))

	assert.True(t, c.SignedIn())
	assert.Equal(t, "tok-persisted", c.Token())
	require.NotNil(t, c.User())
	assert.Equal(t, "user-123", c.User().ID)
}

func TestClient_Bootstrap_NoToken(t *testing.T) {
	api := newFakeAPI(t, &domain.User{ID: "user-123"})
	srv := api.server(t)

	c := New(srv.URL, NewMemoryTokenStore())
	require.NoError(t, c.Bootstrap(context.Background()))
	assert.False(t, c.SignedIn())
}

func TestClient_Bootstrap_RejectedTokenIsCleared(t *testing.T) {
	api := newFakeAPI(t, &domain.User{ID: "user-123"})
	srv := api.server(t)

	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("tok-stale"))

	c := New(srv.URL, store)
	require.NoError(t, c.Bootstrap(context.Background()), "a stale token is not an error")

	assert.False(t, c.SignedIn())
	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted, "rejected token must be purged from the store")
}

func TestClient_SignOut(t *testing.T) {
	api := newFakeAPI(t, &domain.User{ID: "user-123", PhoneNumber: "9167767684"})
	srv := api.server(t)

	store := NewMemoryTokenStore()
	c := New(srv.URL, store)
	ctx := context.Background()

	_, err := c.VerifyOTP(ctx, "9167767684", "2308")
	require.NoError(t, err)
	require.True(t, c.SignedIn())

	require.NoError(t, c.SignOut(ctx))
	assert.False(t, c.SignedIn())
	assert.Nil(t, c.User())
	assert.Equal(t, 1, api.logoutCalls)

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestClient_SignOut_ClearsStateOnAPIFailure(t *testing.T) {
	api := newFakeAPI(t, &domain.User{ID: "user-123", PhoneNumber: "9167767684"})
	api.logoutStatus = http.StatusInternalServerError
	srv := api.server(t)

	store := NewMemoryTokenStore()
	c := New(srv.URL, store)
	ctx := context.Background()

	_, err := c.VerifyOTP(ctx, "9167767684", "2308")
	require.NoError(t, err)

	err = c.SignOut(ctx)
	assert.Error(t, err, "the API failure is reported")
	assert.False(t, c.SignedIn(), "but the local session is gone regardless")

	persisted, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, persisted)
}

func TestClient_UpdateProfile(t *testing.T) {
	api := newFakeAPI(t, &domain.User{ID: "user-123", PhoneNumber: "9167767684"})
	srv := api.server(t)
	c := New(srv.URL, nil)
	ctx := context.Background()

	// Requires a session.
	_, _, err := c.UpdateProfile(ctx, map[string]any{"first_name": "Asha"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = c.VerifyOTP(ctx, "9167767684", "2308")
	require.NoError(t, err)

	updated, complete, err := c.UpdateProfile(ctx, map[string]any{"first_name": "Asha"})
	require.NoError(t, err)
	require.NotNil(t, updated.FirstName)
	assert.Equal(t, "Asha", *updated.FirstName)
	assert.False(t, complete)
	require.NotNil(t, c.User().FirstName)
	assert.Equal(t, "Asha", *c.User().FirstName)
}

func TestClient_SetLanguage(t *testing.T) {
	api := newFakeAPI(t, &domain.User{ID: "user-123", PhoneNumber: "9167767684"})
	srv := api.server(t)
	c := New(srv.URL, nil)
	ctx := context.Background()

	assert.ErrorIs(t, c.SetLanguage(ctx, "mr"), ErrNotAuthenticated)

	_, err := c.VerifyOTP(ctx, "9167767684", "2308")
	require.NoError(t, err)

	require.NoError(t, c.SetLanguage(ctx, "mr"))
	require.NotNil(t, c.User().Language)
	assert.Equal(t, "mr", *c.User().Language)
}
