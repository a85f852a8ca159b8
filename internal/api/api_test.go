// internal/api/api_test.go
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "finledger/internal"
)

// testApp is the application instance shared by the tests, wired against
// the in-memory storage backend so no external database is required.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

func TestMain(m *testing.M) {
	os.Setenv("STORAGE_BACKEND", "memory")
	os.Setenv("JWT_SECRET", "api-test-secret")

	testApp = app.NewApplication()
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		os.Exit(1)
	}

	testServer = httptest.NewServer(testApp.HTTPHandler)
	defer testServer.Close()

	code := m.Run()

	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}

	os.Exit(code)
}

// doJSON sends a JSON request and decodes the JSON response body into a map.
func doJSON(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}

	req, err := http.NewRequest(method, testServer.URL+path, &reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// registerAndLogin registers a fresh user and returns its id and a token.
func registerAndLogin(t *testing.T, email string) (string, string) {
	t.Helper()

	status, created := doJSON(t, http.MethodPost, "/api/v1/users", "", map[string]string{
		"name":     "test",
		"email":    email,
		"password": "test@123",
	})
	require.Equal(t, http.StatusCreated, status)

	status, session := doJSON(t, http.MethodPost, "/api/v1/sessions", "", map[string]string{
		"email":    email,
		"password": "test@123",
	})
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, session["token"])

	return created["id"].(string), session["token"].(string)
}

func TestRegistrationAndAuthentication(t *testing.T) {
	status, user := doJSON(t, http.MethodPost, "/api/v1/users", "", map[string]string{
		"name":     "test",
		"email":    "register@test.com.br",
		"password": "test@123",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, user["id"])
	assert.Equal(t, "test", user["name"])
	_, hasPassword := user["password"]
	assert.False(t, hasPassword, "password hash must not be serialized")

	// Duplicate email
	status, _ = doJSON(t, http.MethodPost, "/api/v1/users", "", map[string]string{
		"name":     "test",
		"email":    "register@test.com.br",
		"password": "test@123",
	})
	assert.Equal(t, http.StatusConflict, status)

	// Wrong password
	status, _ = doJSON(t, http.MethodPost, "/api/v1/sessions", "", map[string]string{
		"email":    "register@test.com.br",
		"password": "test@12345",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	// Correct credentials
	status, session := doJSON(t, http.MethodPost, "/api/v1/sessions", "", map[string]string{
		"email":    "register@test.com.br",
		"password": "test@123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, session["token"])
	assert.NotNil(t, session["user"])
}

func TestProfileRequiresAuthentication(t *testing.T) {
	status, _ := doJSON(t, http.MethodGet, "/api/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	userID, token := registerAndLogin(t, "profile@test.com.br")
	status, profile := doJSON(t, http.MethodGet, "/api/v1/profile", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, userID, profile["id"])
}

func TestStatementFlow(t *testing.T) {
	_, token := registerAndLogin(t, "flow@test.com.br")

	// Empty ledger: zero balance, empty list.
	status, balance := doJSON(t, http.MethodGet, "/api/v1/statements/balance", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "0", fmt.Sprint(balance["balance"]))
	assert.Empty(t, balance["statement"])

	// Deposit 100.
	status, deposit := doJSON(t, http.MethodPost, "/api/v1/statements/deposit", token, map[string]interface{}{
		"amount":      100,
		"description": "salary",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "deposit", deposit["type"])
	assert.NotEmpty(t, deposit["id"])

	// Overdraw: 150 > 100.
	status, _ = doJSON(t, http.MethodPost, "/api/v1/statements/withdraw", token, map[string]interface{}{
		"amount":      150,
		"description": "too much",
	})
	assert.Equal(t, http.StatusPaymentRequired, status)

	// Withdraw 50.
	status, _ = doJSON(t, http.MethodPost, "/api/v1/statements/withdraw", token, map[string]interface{}{
		"amount":      50,
		"description": "groceries",
	})
	require.Equal(t, http.StatusCreated, status)

	// Balance view: two statements oldest-first, balance 50.
	status, balance = doJSON(t, http.MethodGet, "/api/v1/statements/balance", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "50", fmt.Sprint(balance["balance"]))
	statements := balance["statement"].([]interface{})
	require.Len(t, statements, 2)
	assert.Equal(t, "deposit", statements[0].(map[string]interface{})["type"])
	assert.Equal(t, "withdraw", statements[1].(map[string]interface{})["type"])

	// Single statement lookup.
	status, single := doJSON(t, http.MethodGet, "/api/v1/statements/"+deposit["id"].(string), token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, deposit["id"], single["id"])

	// Invalid amounts.
	status, _ = doJSON(t, http.MethodPost, "/api/v1/statements/deposit", token, map[string]interface{}{
		"amount":      -10,
		"description": "negative",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStatementIsScopedToOwner(t *testing.T) {
	_, aliceToken := registerAndLogin(t, "alice-scope@test.com.br")
	_, bobToken := registerAndLogin(t, "bob-scope@test.com.br")

	status, deposit := doJSON(t, http.MethodPost, "/api/v1/statements/deposit", aliceToken, map[string]interface{}{
		"amount":      100,
		"description": "salary",
	})
	require.Equal(t, http.StatusCreated, status)

	// Bob cannot read Alice's statement by guessing its id.
	status, _ = doJSON(t, http.MethodGet, "/api/v1/statements/"+deposit["id"].(string), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStatementsRequireAuthentication(t *testing.T) {
	status, _ := doJSON(t, http.MethodPost, "/api/v1/statements/deposit", "", map[string]interface{}{
		"amount": 100,
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, http.MethodGet, "/api/v1/statements/balance", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
