package server_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/mentormatch/internal/app"
	"github.com/oggyb/mentormatch/internal/apptest"
	"github.com/oggyb/mentormatch/internal/server"
	"github.com/oggyb/mentormatch/internal/service/auth"
	"github.com/oggyb/mentormatch/internal/service/chat"
	"github.com/oggyb/mentormatch/internal/service/forum"
	"github.com/oggyb/mentormatch/internal/service/matchmaking"
	"github.com/oggyb/mentormatch/internal/service/profile"
	"github.com/oggyb/mentormatch/internal/service/project"
)

func newTestServer(t *testing.T) (*httptest.Server, *app.AppContext) {
	t.Helper()
	appCtx := apptest.New(t)
	authSvc := auth.NewService(appCtx)

	router := server.NewRouter(appCtx, authSvc,
		auth.NewRegistrar(authSvc),
		profile.NewRegistrar(appCtx),
		matchmaking.NewRegistrar(appCtx),
		project.NewRegistrar(appCtx),
		forum.NewRegistrar(appCtx),
		chat.NewRegistrar(appCtx),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, appCtx
}

func call(t *testing.T, srv *httptest.Server, method, path, token, body string) (int, map[string]any, http.Header) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out, resp.Header
}

func register(t *testing.T, srv *httptest.Server, name, email, role string) (string, uint64) {
	t.Helper()
	body := `{"name":"` + name + `","email":"` + email + `","password":"password123","password_confirmation":"password123","role":"` + role + `"}`
	code, out, _ := call(t, srv, http.MethodPost, "/api/register", "", body)
	require.Equal(t, http.StatusCreated, code, out)
	user := out["user"].(map[string]any)
	return out["token"].(string), uint64(user["id"].(float64))
}

func TestEndToEnd(t *testing.T) {
	srv, _ := newTestServer(t)

	mentorToken, mentorID := register(t, srv, "Sarah Chen", "sarah@example.com", "mentor")
	studentToken, studentID := register(t, srv, "Alex Thompson", "alex@example.com", "student")

	code, me, _ := call(t, srv, http.MethodGet, "/api/user", studentToken, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alex@example.com", me["email"])
	assert.NotContains(t, me, "password_hash")

	code, _, _ = call(t, srv, http.MethodPost, "/api/profile", studentToken, `{"bio":"CS junior","major":"Computer Science"}`)
	require.Equal(t, http.StatusOK, code)

	code, res, _ := call(t, srv, http.MethodPost, "/api/matches/swipe", studentToken,
		`{"candidate_id":`+itoa(mentorID)+`,"direction":"right"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, res["matched"])

	code, res, _ = call(t, srv, http.MethodPost, "/api/matches/swipe", mentorToken,
		`{"candidate_id":`+itoa(studentID)+`,"direction":"right"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "It's a Match!", res["message"])

	code, msg, _ := call(t, srv, http.MethodPost, "/api/chat", mentorToken,
		`{"receiver_id":`+itoa(studentID)+`,"content":"Welcome!"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Welcome!", msg["content"])

	code, thread, _ := call(t, srv, http.MethodGet, "/api/chat/"+itoa(mentorID), studentToken, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, thread["data"], 1)
	assert.NotEmpty(t, thread["next_cursor"])

	code, proj, _ := call(t, srv, http.MethodPost, "/api/projects", mentorToken, `{"title":"Study Buddy","tags":["go"]}`)
	require.Equal(t, http.StatusCreated, code)
	projectID := uint64(proj["id"].(float64))

	code, _, _ = call(t, srv, http.MethodPost, "/api/projects/"+itoa(projectID)+"/join", studentToken, "")
	require.Equal(t, http.StatusOK, code)

	code, _, _ = call(t, srv, http.MethodPost, "/api/projects/999/join", studentToken, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, post, _ := call(t, srv, http.MethodPost, "/api/forum", studentToken, `{"title":"Hello","content":"First post"}`)
	require.Equal(t, http.StatusCreated, code)
	postID := itoa(uint64(post["id"].(float64)))

	code, _, _ = call(t, srv, http.MethodPost, "/api/forum/"+postID+"/comments", mentorToken, `{"content":"Welcome aboard"}`)
	require.Equal(t, http.StatusCreated, code)

	code, shown, _ := call(t, srv, http.MethodGet, "/api/forum/"+postID, studentToken, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, shown["comments"], 1)

	code, _, _ = call(t, srv, http.MethodPost, "/api/logout", studentToken, "")
	require.Equal(t, http.StatusOK, code)

	code, _, _ = call(t, srv, http.MethodGet, "/api/matches/candidates", studentToken, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestLogin(t *testing.T) {
	srv, _ := newTestServer(t)
	register(t, srv, "Ryan Lee", "ryan@example.com", "student")

	code, out, _ := call(t, srv, http.MethodPost, "/api/login", "", `{"email":"ryan@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, out["token"])

	code, out, _ = call(t, srv, http.MethodPost, "/api/login", "", `{"email":"ryan@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", out["code"])

	code, out, _ = call(t, srv, http.MethodPost, "/api/register", "", `{"name":"x","email":"not-an-email","password":"short","password_confirmation":"short","role":"admin"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	details := out["details"].(map[string]any)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "role")
}

func TestHealthMetricsAndRequestID(t *testing.T) {
	srv, _ := newTestServer(t)

	code, out, hdr := call(t, srv, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", out["status"])
	assert.NotEmpty(t, hdr.Get("X-Request-ID"))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "trace-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "trace-123", resp.Header.Get("X-Request-ID"))

	// hit an API route so the counters have a sample
	call(t, srv, http.MethodGet, "/api/matches/candidates", "", "")

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "mentormatch_api_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/matches/swipe", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func itoa(v uint64) string { return strconv.FormatUint(v, 10) }
