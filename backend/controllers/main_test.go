package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rightsquest/backend/config"
	"rightsquest/backend/routes"
	"rightsquest/backend/utils"
)

var (
	app      *fiber.App
	db       *gorm.DB
	cfg      *config.Config
	upstream *httptest.Server
)

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	teardown()
	os.Exit(code)
}

func setup() {
	// Fake model API: streams two deltas then the done sentinel, or
	// fails outright when asked to.
	upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) > 0 && req.Messages[len(req.Messages)-1].Content == "break the model" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hello \"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"friend!\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))

	cfg = &config.Config{
		JWTSecret:   "testsecret",
		ServerPort:  "8080",
		GroqBaseURL: upstream.URL,
		GroqAPIKey:  "test-key",
		GroqModel:   "llama-3.3-70b-versatile",
	}

	var err error
	db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}
	if err := utils.MigrateDB(db); err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg, utils.InitLogger())
}

func teardown() {
	upstream.Close()
}

// registerUser creates an account through the API and returns the session
// cookie value from the response.
func registerUser(t *testing.T, username string, age int) string {
	t.Helper()

	body, _ := json.Marshal(map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
		"age":      age,
	})
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("register returned status %d", resp.StatusCode)
	}

	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c.Value
		}
	}
	t.Fatal("register did not set a token cookie")
	return ""
}

// authedRequest builds a JSON request carrying the session cookie.
func authedRequest(method, target, token string, payload interface{}) *http.Request {
	var req *http.Request
	if payload != nil {
		body, _ := json.Marshal(payload)
		req = httptest.NewRequest(method, target, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("could not decode response body: %v", err)
	}
	return result
}
