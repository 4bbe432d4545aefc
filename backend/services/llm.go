package services

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rightsquest/backend/config"
)

// ChatbotSystemPrompt constrains the model to a child-friendly persona.
const ChatbotSystemPrompt = `You are a kind and friendly helper who explains things about children's rights using very simple English. Imagine you are talking to an 8-year-old child. Use short sentences, easy words, and make your answer clear and gentle. Do not use any complicated or scary words. Just give helpful answers in a friendly way like a caring teacher or older friend. Do not use headings or bullet points. Only write in regular, simple sentences.`

// LLMClient talks to the hosted chat-completions API.
type LLMClient struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
	Model   string
}

func NewLLMClient(cfg *config.Config) *LLMClient {
	return &LLMClient{
		Client: &http.Client{
			Timeout: 120 * time.Second, // model responses can take a while
		},
		BaseURL: cfg.GroqBaseURL,
		APIKey:  cfg.GroqAPIKey,
		Model:   cfg.GroqModel,
	}
}

type ChatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []ChatCompletionMessage `json:"messages"`
	Stream      bool                    `json:"stream"`
	Temperature float64                 `json:"temperature"`
	MaxTokens   int                     `json:"max_tokens"`
	TopP        float64                 `json:"top_p"`
}

type chatCompletionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// ChatStream is one in-flight model response. Stream consumes it; Close
// releases the upstream connection.
type ChatStream struct {
	body io.ReadCloser
}

// StartChat sends the user message with the persona prompt and returns the
// open token stream. The request itself failing (network, non-200) is
// reported here, before anything has been streamed to the caller.
func (l *LLMClient) StartChat(userMessage string) (*ChatStream, error) {
	request := ChatCompletionRequest{
		Model: l.Model,
		Messages: []ChatCompletionMessage{
			{Role: "system", Content: ChatbotSystemPrompt},
			{Role: "user", Content: userMessage},
		},
		Stream:      true,
		Temperature: 0.7,
		MaxTokens:   1024,
		TopP:        1,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, l.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.APIKey)

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("LLM API returned status %d", resp.StatusCode)
	}

	return &ChatStream{body: resp.Body}, nil
}

func (s *ChatStream) Close() error {
	return s.body.Close()
}

// Stream invokes onContent for every non-empty content delta until the
// model signals completion. One outbound call per stream; cancellation is
// caller-driven by closing the stream.
func (s *ChatStream) Stream(onContent func(content string) error) error {
	scanner := bufio.NewScanner(s.body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == "[DONE]" {
			break
		}

		var chunk chatCompletionChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if content := chunk.Choices[0].Delta.Content; content != "" {
			if err := onContent(content); err != nil {
				return err
			}
		}
	}

	return scanner.Err()
}
