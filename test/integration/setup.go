package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
	tcmongodb "github.com/testcontainers/testcontainers-go/modules/mongodb"

	handler "github.com/vidstream/api/internal/adapters/handler/http"
	"github.com/vidstream/api/internal/adapters/repository/mongodb"
	"github.com/vidstream/api/internal/adapters/storage/minio"
	"github.com/vidstream/api/internal/core/ports"
	"github.com/vidstream/api/internal/core/services"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

type TestApp struct {
	Server   *httptest.Server
	Client   *http.Client
	UserRepo ports.UserRepository

	store      *mongodb.Store
	containers []testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	mongoContainer, err := tcmongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	mongoURI, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	minioContainer, err := tcminio.Run(ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z")
	require.NoError(t, err)

	minioEndpoint, err := minioContainer.ConnectionString(ctx)
	require.NoError(t, err)

	store, err := mongodb.NewStore(mongoURI, "vidstream_test")
	require.NoError(t, err)

	media, err := minio.NewMediaStorage(minio.Config{
		Endpoint:  minioEndpoint,
		AccessKey: minioContainer.Username,
		SecretKey: minioContainer.Password,
		Bucket:    "vidstream-test",
	})
	require.NoError(t, err)
	require.NoError(t, media.EnsureBucket(ctx))

	userRepo := mongodb.NewUserRepository(store)
	tokenSvc := services.NewTokenService(testAccessSecret, testRefreshSecret, 15*time.Minute, 7*24*time.Hour)
	authSvc := services.NewAuthService(userRepo, tokenSvc, media)
	userSvc := services.NewUserService(userRepo, media)

	uploadDir := t.TempDir()
	authHandler := handler.NewAuthHandler(authSvc, uploadDir, 15*time.Minute, 7*24*time.Hour)
	userHandler := handler.NewUserHandler(userSvc, authSvc, uploadDir)
	router := handler.NewHandler(authHandler, userHandler, tokenSvc, userRepo, []string{"*"})

	server := httptest.NewServer(router)

	return &TestApp{
		Server:     server,
		Client:     server.Client(),
		UserRepo:   userRepo,
		store:      store,
		containers: []testcontainers.Container{mongoContainer, minioContainer},
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	t.Helper()
	app.Server.Close()
	if err := app.store.Close(); err != nil {
		t.Logf("failed to close store: %v", err)
	}
	ctx := context.Background()
	for _, c := range app.containers {
		if err := c.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
}

// registerRequest builds the multipart register request the API expects:
// text fields plus an avatar file and an optional coverImage file.
func registerRequest(t *testing.T, serverURL, fullName, username, email, password string, withAvatar bool) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("fullName", fullName))
	require.NoError(t, mw.WriteField("username", username))
	require.NoError(t, mw.WriteField("email", email))
	require.NoError(t, mw.WriteField("password", password))
	if withAvatar {
		fw, err := mw.CreateFormFile("avatar", "avatar.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake-png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, serverURL+"/api/v1/users/register", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func postJSON(t *testing.T, client *http.Client, url string, payload any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

// envelope mirrors the API's uniform response body.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return env
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func loginAlice(t *testing.T, app *TestApp) (*http.Response, envelope) {
	t.Helper()
	resp := postJSON(t, app.Client, app.Server.URL+"/api/v1/users/login", map[string]string{
		"username": "alice",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	return resp, env
}

func registerAlice(t *testing.T, app *TestApp) {
	t.Helper()
	req := registerRequest(t, app.Server.URL, "Alice A", "alice", "a@x.com", "secret1", true)
	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}
