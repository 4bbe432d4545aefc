package controllers_test

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForumCreateAndList(t *testing.T) {
	token := registerUser(t, "paula", 12)

	req := authedRequest("POST", "/api/forum/posts", token, map[string]string{
		"title": "What is the right to education?",
		"text":  "My teacher mentioned it today, can someone explain?",
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	post := decodeBody(t, resp)
	assert.Equal(t, "paula", post["UserName"])

	// Listing is public.
	listReq := httptest.NewRequest("GET", "/api/forum/posts", nil)
	listResp, err := app.Test(listReq, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, listResp.StatusCode)
}

func TestForumReply(t *testing.T) {
	token := registerUser(t, "quinn", 13)

	req := authedRequest("POST", "/api/forum/posts", token, map[string]string{
		"title": "Is it ok to say no?",
		"text":  "When something feels wrong.",
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	post := decodeBody(t, resp)
	postID := int(post["ID"].(float64))

	replyReq := authedRequest("POST", fmt.Sprintf("/api/forum/posts/%d/replies", postID), token, map[string]string{
		"text": "Yes, always. Your body, your choice.",
	})
	replyResp, err := app.Test(replyReq, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, replyResp.StatusCode)

	reply := decodeBody(t, replyResp)
	assert.Equal(t, float64(postID), reply["PostID"])
}

func TestForumReplyToMissingPost(t *testing.T) {
	token := registerUser(t, "rita", 14)

	req := authedRequest("POST", "/api/forum/posts/99999/replies", token, map[string]string{
		"text": "hello?",
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestForumPostRequiresAuth(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/forum/posts", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestForumReport(t *testing.T) {
	token := registerUser(t, "sara", 11)

	req := authedRequest("POST", "/api/forum/posts", token, map[string]string{
		"title": "spam post",
		"text":  "buy things",
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	post := decodeBody(t, resp)
	postID := int(post["ID"].(float64))

	reportReq := authedRequest("POST", fmt.Sprintf("/api/forum/posts/%d/report", postID), token, map[string]string{
		"reason": "This looks like spam",
	})
	reportResp, err := app.Test(reportReq, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, reportResp.StatusCode)

	result := decodeBody(t, reportResp)
	assert.Equal(t, true, result["success"])
}
