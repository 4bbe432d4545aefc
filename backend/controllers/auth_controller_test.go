package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func doLogin(t *testing.T, username, password string) *httpResponse {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	raw, _ := io.ReadAll(resp.Body)
	cookie := ""
	maxAge := 0
	httpOnly := false
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			cookie = c.Value
			maxAge = c.MaxAge
			httpOnly = c.HttpOnly
		}
	}
	return &httpResponse{status: resp.StatusCode, body: raw, cookie: cookie, cookieMaxAge: maxAge, cookieHTTPOnly: httpOnly}
}

type httpResponse struct {
	status         int
	body           []byte
	cookie         string
	cookieMaxAge   int
	cookieHTTPOnly bool
}

func TestLoginSuccess(t *testing.T) {
	registerUser(t, "alice", 9)

	resp := doLogin(t, "alice", "password123")
	assert.Equal(t, fiber.StatusOK, resp.status)
	assert.NotEmpty(t, resp.cookie)
	assert.Equal(t, 3600, resp.cookieMaxAge)
	assert.True(t, resp.cookieHTTPOnly)

	var result map[string]interface{}
	json.Unmarshal(resp.body, &result)
	assert.Equal(t, "Login successful", result["message"])
	assert.Equal(t, float64(9), result["userAge"])
}

func TestLoginWrongPassword(t *testing.T) {
	registerUser(t, "bob", 10)

	resp := doLogin(t, "bob", "wrong")
	assert.Equal(t, fiber.StatusUnauthorized, resp.status)
	assert.Empty(t, resp.cookie)
}

// Unknown user and wrong password must be indistinguishable from outside.
func TestLoginFailuresAreUniform(t *testing.T) {
	registerUser(t, "carol", 11)

	wrongPassword := doLogin(t, "carol", "nope")
	unknownUser := doLogin(t, "nobody-here", "nope")

	assert.Equal(t, fiber.StatusUnauthorized, wrongPassword.status)
	assert.Equal(t, fiber.StatusUnauthorized, unknownUser.status)
	assert.Equal(t, wrongPassword.body, unknownUser.body)
}

// There is no lockout: any number of failures never blocks a later
// correct login.
func TestLoginNoLockout(t *testing.T) {
	registerUser(t, "dave", 12)

	for i := 0; i < 5; i++ {
		resp := doLogin(t, "dave", "wrong")
		assert.Equal(t, fiber.StatusUnauthorized, resp.status)
	}

	resp := doLogin(t, "dave", "password123")
	assert.Equal(t, fiber.StatusOK, resp.status)
}

func TestLoginMissingFields(t *testing.T) {
	resp := doLogin(t, "", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.status)
}

func TestRegisterValidation(t *testing.T) {
	body, _ := json.Marshal(map[string]interface{}{
		"username": "x",
		"email":    "not-an-email",
		"password": "123",
		"age":      42,
	})
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	registerUser(t, "erin", 8)

	body, _ := json.Marshal(map[string]interface{}{
		"username": "erin",
		"email":    "erin2@example.com",
		"password": "password123",
		"age":      8,
	})
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

// The status endpoint only checks cookie presence, it does not verify the
// signature.
func TestAuthStatus(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/auth/status", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	result := decodeBody(t, resp)
	assert.Equal(t, false, result["isAuthenticated"])

	req = authedRequest("GET", "/api/auth/status", "anything-at-all", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	result = decodeBody(t, resp)
	assert.Equal(t, true, result["isAuthenticated"])
}

func TestGetUser(t *testing.T) {
	token := registerUser(t, "frank", 15)

	req := authedRequest("GET", "/api/auth/user", token, nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, "frank", result["username"])
	assert.Equal(t, float64(15), result["age"])
	assert.Equal(t, true, result["isTeen"])
}

func TestGetUserUnauthorized(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/auth/user", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
