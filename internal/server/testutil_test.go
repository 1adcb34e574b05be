package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"orbit/internal/cache"
	"orbit/internal/config"
	"orbit/internal/database"
	"orbit/internal/middleware"
	"orbit/internal/models"
	"orbit/internal/repository"
	"orbit/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server backed by an in-memory SQLite database with
// all routes registered. Prometheus middleware is left out so repeated
// construction across tests does not re-register collectors.
func newTestServer(t *testing.T, redisClient *redis.Client) (*fiber.App, *Server) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	cache.SetClient(nil)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: database.NewGormLogger()})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	cfg := &config.Config{
		Port:              "8480",
		Env:               "test",
		JWTSecret:         "test-secret",
		JWTExpireHours:    1,
		CookieExpireHours: 1,
		UploadDir:         t.TempDir(),
		MaxUploadSizeMB:   5,
	}

	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		userRepo:       userRepo,
		accountRepo:    accountRepo,
		profileRepo:    profileRepo,
		friendshipRepo: friendshipRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
	}
	s.accountService = service.NewAccountService(userRepo, accountRepo, profileRepo)
	s.profileService = service.NewProfileService(userRepo, profileRepo, friendshipRepo, postRepo)
	s.friendService = service.NewFriendService(friendshipRepo)
	s.postService = service.NewPostService(postRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo)
	s.mediaService = service.NewMediaService(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, err)
		},
	})
	s.SetupRoutes(app)
	return app, s
}

// doJSON performs a JSON request against the test app, optionally carrying the
// session cookie.
func doJSON(t *testing.T, app *fiber.App, method, target, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody drains the response into a generic map.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// registerUser runs a registration and asserts it succeeded.
func registerUser(t *testing.T, app *fiber.App, firstName, email string) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"first_name": firstName,
		"last_name":  "Tester",
		"email":      email,
		"password":   "password123",
	})
	body := decodeBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "You have been registered. Now login.", body["message"])
}

// loginUser logs in and returns the session token set in the cookie.
func loginUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token string
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.AccessTokenCookie {
			token = ck.Value
		}
	}
	_ = decodeBody(t, resp)
	require.NotEmpty(t, token)
	return token
}

// registerAndLogin is the common two-step fixture for authenticated tests.
func registerAndLogin(t *testing.T, app *fiber.App, firstName, email string) string {
	t.Helper()
	registerUser(t, app, firstName, email)
	return loginUser(t, app, email)
}
