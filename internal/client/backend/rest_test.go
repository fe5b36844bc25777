package backend

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/skilllink/skilllink/internal/client/models"
	"github.com/skilllink/skilllink/internal/common"
	"github.com/skilllink/skilllink/internal/logging"
)

// ---- fake project endpoint ----

type fakeProject struct {
	mu sync.Mutex

	// canned behavior
	signInStatus int
	signInBody   string
	restStatus   int

	// recorded requests
	lastAuth    string
	lastPrefer  string
	lastRestURL string
	lastBody    []byte

	refreshCalls int
	logoutCalls  int
	recoverBody  []byte

	rows string // JSON array served by GET /rest/v1/*
}

func testToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func sessionJSON(t *testing.T, access, refresh string) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"access_token":  access,
		"token_type":    "bearer",
		"expires_in":    3600,
		"refresh_token": refresh,
		"user":          map[string]any{"id": "user-1", "email": "a@b.c"},
	})
	require.NoError(t, err)
	return string(b)
}

func newFakeProject(t *testing.T) (*fakeProject, *RestClient) {
	t.Helper()

	fp := &fakeProject{signInStatus: http.StatusOK, restStatus: http.StatusOK, rows: "[]"}

	r := chi.NewRouter()
	r.Post("/auth/v1/token", func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		fp.mu.Lock()
		defer fp.mu.Unlock()
		if req.URL.Query().Get("grant_type") == "refresh_token" {
			fp.refreshCalls++
			access := testToken(t, "user-1", time.Now().Add(time.Hour))
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, sessionJSON(t, access, "refresh-2"))
			return
		}
		fp.lastBody = body
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fp.signInStatus)
		io.WriteString(w, fp.signInBody)
	})
	r.Post("/auth/v1/logout", func(w http.ResponseWriter, req *http.Request) {
		fp.mu.Lock()
		fp.logoutCalls++
		fp.lastAuth = req.Header.Get("Authorization")
		fp.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/auth/v1/recover", func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		fp.mu.Lock()
		fp.recoverBody = body
		fp.mu.Unlock()
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "{}")
	})
	r.Get("/auth/v1/user", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"user-1","email":"a@b.c","created_at":"2025-01-01T00:00:00Z"}`)
	})
	r.Put("/auth/v1/user", func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		fp.mu.Lock()
		fp.lastBody = body
		fp.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"user-1","email":"new@b.c","created_at":"2025-01-01T00:00:00Z"}`)
	})
	r.HandleFunc("/rest/v1/{table}", func(w http.ResponseWriter, req *http.Request) {
		fp.mu.Lock()
		fp.lastAuth = req.Header.Get("Authorization")
		fp.lastPrefer = req.Header.Get("Prefer")
		fp.lastRestURL = req.URL.String()
		status := fp.restStatus
		rows := fp.rows
		fp.mu.Unlock()

		if status != http.StatusOK {
			w.WriteHeader(status)
			io.WriteString(w, `{"message":"backend unhappy"}`)
			return
		}
		if req.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, rows)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	log := logging.NewTextLogger(io.Discard, slog.LevelDebug)
	return fp, NewRestClient(srv.URL, "anon-key", 5*time.Second, log)
}

// ---- tests ----

func TestSignIn_AdoptsSession(t *testing.T) {
	fp, c := newFakeProject(t)
	access := testToken(t, "user-1", time.Now().Add(time.Hour))
	fp.signInBody = sessionJSON(t, access, "refresh-1")

	sess, err := c.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.Equal(t, access, sess.AccessToken)
	require.Equal(t, "refresh-1", sess.RefreshToken)
	require.Equal(t, "user-1", sess.User.ID)
	require.False(t, sess.Expired(time.Now()))

	// subsequent table calls carry the access token, not the anon key
	_, err = c.Select(context.Background(), "skills", Query{})
	require.NoError(t, err)
	require.Equal(t, "Bearer "+access, fp.lastAuth)
}

func TestSignIn_RejectedCredentialIsUnauthorized(t *testing.T) {
	fp, c := newFakeProject(t)
	fp.signInStatus = http.StatusUnauthorized
	fp.signInBody = `{"error_code":"invalid_credentials","msg":"Invalid login credentials"}`

	_, err := c.SignIn(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	require.True(t, common.IsUnauthorized(err))
	require.Contains(t, err.Error(), "Invalid login credentials")

	sess, err := c.GetSession(context.Background())
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestServerErrorIsTransient(t *testing.T) {
	fp, c := newFakeProject(t)
	fp.restStatus = http.StatusServiceUnavailable

	access := testToken(t, "user-1", time.Now().Add(time.Hour))
	fp.signInBody = sessionJSON(t, access, "refresh-1")
	_, err := c.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	_, err = c.Select(context.Background(), "skills", Query{})
	require.True(t, common.IsTransient(err))
	require.Contains(t, err.Error(), "backend unhappy")
}

func TestExpiredTokenIsRefreshedOnce(t *testing.T) {
	fp, c := newFakeProject(t)
	expired := testToken(t, "user-1", time.Now().Add(-time.Minute))
	fp.signInBody = sessionJSON(t, expired, "refresh-1")

	_, err := c.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	sess, err := c.GetSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "refresh-2", sess.RefreshToken)
	require.Equal(t, 1, fp.refreshCalls)
	require.False(t, sess.Expired(time.Now()))
}

func TestUnauthorizedTableCallRetriesAfterRefresh(t *testing.T) {
	fp, c := newFakeProject(t)
	access := testToken(t, "user-1", time.Now().Add(time.Hour))
	fp.signInBody = sessionJSON(t, access, "refresh-1")
	_, err := c.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	// a rejected table call triggers exactly one refresh-and-retry; when the
	// retry is rejected too the unauthorized error is surfaced as-is
	fp.mu.Lock()
	fp.restStatus = http.StatusUnauthorized
	fp.mu.Unlock()

	_, err = c.Select(context.Background(), "skills", Query{})
	require.True(t, common.IsUnauthorized(err))
	require.Equal(t, 1, fp.refreshCalls)
}

func TestGetSession_Anonymous(t *testing.T) {
	_, c := newFakeProject(t)
	sess, err := c.GetSession(context.Background())
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestSignOut_ClearsTokens(t *testing.T) {
	fp, c := newFakeProject(t)
	access := testToken(t, "user-1", time.Now().Add(time.Hour))
	fp.signInBody = sessionJSON(t, access, "refresh-1")
	_, err := c.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	require.NoError(t, c.SignOut(context.Background()))
	require.Equal(t, 1, fp.logoutCalls)

	sess, err := c.GetSession(context.Background())
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestResetPassword(t *testing.T) {
	fp, c := newFakeProject(t)
	require.NoError(t, c.ResetPassword(context.Background(), "a@b.c"))
	require.JSONEq(t, `{"email":"a@b.c"}`, string(fp.recoverBody))
}

func TestQueryEncoding(t *testing.T) {
	fp, c := newFakeProject(t)
	fp.rows = `[{"id":1}]`

	_, err := c.Select(context.Background(), "skills", Query{
		Columns:    []string{"id", "title"},
		Filters:    []Filter{{Column: "user_id", Value: "user-1"}},
		OrderBy:    "created_at",
		Descending: true,
	})
	require.NoError(t, err)
	require.Contains(t, fp.lastRestURL, "/rest/v1/skills?")
	require.Contains(t, fp.lastRestURL, "select=id%2Ctitle")
	require.Contains(t, fp.lastRestURL, "user_id=eq.user-1")
	require.Contains(t, fp.lastRestURL, "order=created_at.desc")
}

func TestInsertSendsRepresentationPrefer(t *testing.T) {
	fp, c := newFakeProject(t)
	fp.rows = `[{"id":7,"title":"Welding"}]`

	rows, err := c.Insert(context.Background(), "skills", map[string]any{"title": "Welding"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "return=representation", fp.lastPrefer)
}

func TestDelete_NoContent(t *testing.T) {
	fp, c := newFakeProject(t)
	err := c.Delete(context.Background(), "skills", Query{
		Filters: []Filter{{Column: "id", Value: "7"}},
	})
	require.NoError(t, err)
	require.Contains(t, fp.lastRestURL, "id=eq.7")
}

func TestUpdateUser(t *testing.T) {
	fp, c := newFakeProject(t)
	access := testToken(t, "user-1", time.Now().Add(time.Hour))
	fp.signInBody = sessionJSON(t, access, "refresh-1")
	_, err := c.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	user, err := c.UpdateUser(context.Background(), models.UserUpdate{Email: "new@b.c"})
	require.NoError(t, err)
	require.Equal(t, "new@b.c", user.Email)
	require.JSONEq(t, `{"email":"new@b.c"}`, string(fp.lastBody))
}
