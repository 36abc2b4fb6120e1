package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventhub/internal/auth"
	"eventhub/internal/errs"
	"eventhub/internal/models"
)

var secret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestExtractTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")

	token, err := auth.ExtractTokenFromRequest(r)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", token)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = auth.ExtractTokenFromRequest(r)
	assert.Error(t, err, "missing header should fail")

	r.Header.Set("Authorization", "Basic abc123")
	_, err = auth.ExtractTokenFromRequest(r)
	assert.Error(t, err, "non-bearer scheme should fail")
}

func TestParseToken(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"sub":   "user-1",
		"role":  "attendee",
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := auth.ParseToken(signed, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "attendee", claims.Role)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestParseTokenWrongSecret(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{"sub": "user-1"})

	_, err := auth.ParseToken(signed, []byte("a-different-secret"))
	assert.Error(t, err)
}

func TestParseTokenMissingSubject(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{"role": "attendee"})

	_, err := auth.ParseToken(signed, secret)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	var gotActor models.Actor
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor, gotOK = auth.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := auth.Middleware(secret, nil)(next)

	signed := signToken(t, jwt.MapClaims{
		"sub":  "user-1",
		"role": "organizer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotOK)
	assert.Equal(t, models.Actor{ID: "user-1", Role: models.RoleOrganizer}, gotActor)
}

func TestMiddlewareRejectsBadToken(t *testing.T) {
	handler := auth.Middleware(secret, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareSubjectWithoutRole(t *testing.T) {
	// A fresh identity has no profile yet; the subject still flows through
	// so registration can happen.
	var gotSub string
	var subOK, actorOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub, subOK = auth.SubjectFromContext(r.Context())
		_, actorOK = auth.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := auth.Middleware(secret, nil)(next)

	signed := signToken(t, jwt.MapClaims{"sub": "new-user", "exp": time.Now().Add(time.Hour).Unix()})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, subOK)
	assert.Equal(t, "new-user", gotSub)
	assert.False(t, actorOK, "actor must not be set without a role")
}

type MockRoleLookup struct {
	mock.Mock
}

func (m *MockRoleLookup) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client
}

func TestRoleCacheResolve(t *testing.T) {
	client := setupTestRedis(t)
	mockDB := new(MockRoleLookup)
	cache := auth.NewRoleCache(client, mockDB, time.Minute)
	ctx := context.Background()

	p := &models.Profile{ID: "user-1", Role: models.RoleVolunteer}
	mockDB.On("GetProfileByID", ctx, "user-1").Return(p, nil).Once()

	role, err := cache.Resolve(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleVolunteer, role)

	// Second resolve must come from the cache, not the store.
	role, err = cache.Resolve(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleVolunteer, role)
	mockDB.AssertNumberOfCalls(t, "GetProfileByID", 1)
}

func TestRoleCacheUnknownSubject(t *testing.T) {
	client := setupTestRedis(t)
	mockDB := new(MockRoleLookup)
	cache := auth.NewRoleCache(client, mockDB, time.Minute)
	ctx := context.Background()

	mockDB.On("GetProfileByID", ctx, "ghost").Return(nil, errs.NotFoundf("profile ghost not found"))

	_, err := cache.Resolve(ctx, "ghost")
	assert.Error(t, err)
}
