package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	registerAlice(t, app)
	loginResp, _ := loginAlice(t, app)
	accessCookie := cookieByName(loginResp, "accessToken")
	require.NotNil(t, accessCookie)

	req, err := http.NewRequest(http.MethodGet, app.Server.URL+"/api/v1/users/current-user", nil)
	require.NoError(t, err)
	req.AddCookie(accessCookie)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var user map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, user, "refreshToken")
}

func TestCurrentUserUnauthorized(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// No token at all.
	resp, err := app.Client.Get(app.Server.URL + "/api/v1/users/current-user")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Garbage bearer token.
	req, err := http.NewRequest(http.MethodGet, app.Server.URL+"/api/v1/users/current-user", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer garbage")

	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestChangePassword(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	registerAlice(t, app)
	loginResp, _ := loginAlice(t, app)
	accessCookie := cookieByName(loginResp, "accessToken")
	require.NotNil(t, accessCookie)

	// Wrong old password.
	resp := postJSON(t, app.Client, app.Server.URL+"/api/v1/users/change-password", map[string]string{
		"oldPassword": "wrong",
		"newPassword": "secret2",
	}, accessCookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Correct old password.
	resp = postJSON(t, app.Client, app.Server.URL+"/api/v1/users/change-password", map[string]string{
		"oldPassword": "secret1",
		"newPassword": "secret2",
	}, accessCookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Old password no longer logs in; new one does.
	resp = postJSON(t, app.Client, app.Server.URL+"/api/v1/users/login", map[string]string{"username": "alice", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app.Client, app.Server.URL+"/api/v1/users/login", map[string]string{"username": "alice", "password": "secret2"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateAccount(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	registerAlice(t, app)
	loginResp, _ := loginAlice(t, app)
	accessCookie := cookieByName(loginResp, "accessToken")
	require.NotNil(t, accessCookie)

	raw, err := json.Marshal(map[string]string{"fullName": "Alice Renamed", "email": "renamed@x.com"})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPatch, app.Server.URL+"/api/v1/users/update-account", bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(accessCookie)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	var user map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "Alice Renamed", user["fullName"])
	assert.Equal(t, "renamed@x.com", user["email"])
	assert.NotContains(t, user, "passwordHash")
}
