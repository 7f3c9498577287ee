package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bloglist-service/internal/application/services"
	"bloglist-service/internal/infrastructure"
	"bloglist-service/internal/infrastructure/db/gormdb"
	"bloglist-service/internal/infrastructure/messaging"
)

type revocationSet struct {
	mu  sync.Mutex
	ids map[string]bool
}

func (r *revocationSet) RevokeToken(_ context.Context, tokenId string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids[tokenId] = true
	return nil
}

func (r *revocationSet) IsRevoked(_ context.Context, tokenId string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ids[tokenId], nil
}

func newTestServer(t *testing.T, limiter *infrastructure.RateLimiter) *echo.Echo {
	t.Helper()
	log := logrus.New()
	log.Out = io.Discard

	db, err := gormdb.Open(gormdb.DriverSQLite, ":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	tokens, err := infrastructure.NewJWTService("test-secret", 0)
	require.NoError(t, err)

	userRepo := gormdb.NewUserRepository(db)
	blogRepo := gormdb.NewBlogRepository(db)
	events := messaging.NoopPublisher{}
	users := services.NewUserService(userRepo, infrastructure.NewPasswordHasher(bcrypt.MinCost), tokens, &revocationSet{ids: map[string]bool{}}, events, log)
	blogs := services.NewBlogService(blogRepo, userRepo, events, log)

	return NewRouter(NewHandler(users, blogs, log), limiter)
}

func do(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func registerAndLogin(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/users", "", `{"username":"`+username+`","name":"Test","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/api/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestBlogLifecycleEndToEnd(t *testing.T) {
	e := newTestServer(t, nil)

	rec := do(t, e, http.MethodPost, "/api/users", "", `{"username":"superuser","name":"Superuser","password":"arska"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decode(t, rec)
	assert.Equal(t, "superuser", user["username"])
	assert.NotContains(t, rec.Body.String(), "assword")

	rec = do(t, e, http.MethodPost, "/api/login", "", `{"username":"superuser","password":"arska"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode(t, rec)
	token := login["token"].(string)
	assert.Equal(t, "Superuser", login["name"])

	rec = do(t, e, http.MethodPost, "/api/blogs", token, `{"title":"Go To Statement Considered Harmful","author":"Edsger W. Dijkstra","url":"https://example.com/goto"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	blog := decode(t, rec)
	assert.Equal(t, float64(0), blog["likes"])
	owner := blog["user"].(map[string]interface{})
	assert.Equal(t, "superuser", owner["username"])
	id := blog["id"].(string)

	rec = do(t, e, http.MethodGet, "/api/users", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id)

	rec = do(t, e, http.MethodDelete, "/api/blogs/"+id, token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, e, http.MethodDelete, "/api/blogs/"+id, token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/blogs/"+id, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegistrationErrors(t *testing.T) {
	e := newTestServer(t, nil)
	registerAndLogin(t, e, "superuser", "arska")

	tests := []struct {
		name string
		body string
		want string
	}{
		{"duplicate username", `{"username":"superuser","password":"arska"}`, "unique"},
		{"short username", `{"username":"ab","password":"arska"}`, "username"},
		{"short password", `{"username":"another","password":"ab"}`, "password"},
		{"missing password", `{"username":"another"}`, "password"},
		{"malformed body", `{"username":`, "malformed"},
		{"multibyte short username", `{"username":"åä","password":"arska"}`, "username"},
		{"password over bcrypt limit", `{"username":"another","password":"` + strings.Repeat("a", 73) + `"}`, "72 bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/api/users", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode(t, rec)["error"], tt.want)
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e := newTestServer(t, nil)
	registerAndLogin(t, e, "superuser", "arska")

	rec := do(t, e, http.MethodPost, "/api/login", "", `{"username":"superuser","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/login", "", `{"username":"superuser"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthRequiredForMutations(t *testing.T) {
	e := newTestServer(t, nil)
	body := `{"title":"t","url":"https://example.com"}`

	rec := do(t, e, http.MethodPost, "/api/blogs", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "token missing")

	rec = do(t, e, http.MethodPost, "/api/blogs", "not-a-token", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "token invalid")
}

func TestBearerSchemeIsCaseInsensitive(t *testing.T) {
	e := newTestServer(t, nil)
	token := registerAndLogin(t, e, "superuser", "arska")

	req := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(`{"title":"t","url":"https://example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestOwnershipEnforced(t *testing.T) {
	e := newTestServer(t, nil)
	ownerToken := registerAndLogin(t, e, "owner", "secret")
	otherToken := registerAndLogin(t, e, "other", "secret")

	rec := do(t, e, http.MethodPost, "/api/blogs", ownerToken, `{"title":"t","url":"https://example.com","likes":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"].(string)

	rec = do(t, e, http.MethodDelete, "/api/blogs/"+id, otherToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, e, http.MethodPut, "/api/blogs/"+id, otherToken, `{"title":"x","url":"https://example.com"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/blogs/"+id+"/like", otherToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), decode(t, rec)["likes"])

	rec = do(t, e, http.MethodPut, "/api/blogs/"+id, ownerToken, `{"title":"renamed","author":"me","url":"https://example.org"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode(t, rec)
	assert.Equal(t, "renamed", updated["title"])
	assert.Equal(t, float64(3), updated["likes"])
}

func TestMalformedIds(t *testing.T) {
	e := newTestServer(t, nil)
	token := registerAndLogin(t, e, "superuser", "arska")

	assert.Equal(t, http.StatusBadRequest, do(t, e, http.MethodGet, "/api/blogs/123", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, e, http.MethodDelete, "/api/blogs/123", token, "").Code)
}

func TestStatsEndpoint(t *testing.T) {
	e := newTestServer(t, nil)

	rec := do(t, e, http.MethodGet, "/api/blogs/stats", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.Equal(t, float64(1), stats["dummy"])
	assert.Equal(t, float64(0), stats["totalLikes"])
	assert.Equal(t, map[string]interface{}{}, stats["favorite"])

	token := registerAndLogin(t, e, "superuser", "arska")
	do(t, e, http.MethodPost, "/api/blogs", token, `{"title":"a","url":"https://example.com/a","likes":5}`)
	do(t, e, http.MethodPost, "/api/blogs", token, `{"title":"b","url":"https://example.com/b","likes":9}`)

	stats = decode(t, do(t, e, http.MethodGet, "/api/blogs/stats", "", ""))
	assert.Equal(t, float64(3), stats["dummy"])
	assert.Equal(t, float64(14), stats["totalLikes"])
	assert.Equal(t, "b", stats["favorite"].(map[string]interface{})["title"])
}

func TestLogoutRevokesToken(t *testing.T) {
	e := newTestServer(t, nil)
	token := registerAndLogin(t, e, "superuser", "arska")

	assert.Equal(t, http.StatusNoContent, do(t, e, http.MethodPost, "/api/logout", token, "").Code)

	rec := do(t, e, http.MethodPost, "/api/blogs", token, `{"title":"t","url":"https://example.com"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	limiter := infrastructure.NewRateLimiter(0.001, 2)
	t.Cleanup(limiter.Stop)
	e := newTestServer(t, limiter)

	body := `{"username":"nobody","password":"secret"}`
	assert.Equal(t, http.StatusUnauthorized, do(t, e, http.MethodPost, "/api/login", "", body).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, e, http.MethodPost, "/api/login", "", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, e, http.MethodPost, "/api/login", "", body).Code)
}

func TestLoginLimitIgnoresForwardedFor(t *testing.T) {
	limiter := infrastructure.NewRateLimiter(0.001, 2)
	t.Cleanup(limiter.Stop)
	e := newTestServer(t, limiter)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"nobody","password":"secret"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderXForwardedFor, fmt.Sprintf("203.0.113.%d", i+1))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestHealthz(t *testing.T) {
	e := newTestServer(t, nil)
	rec := do(t, e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
