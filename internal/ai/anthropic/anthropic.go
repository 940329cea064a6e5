package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lmcginley620/SeniorProject/internal/game"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	defaultModel     = "claude-3-7-sonnet-latest"
	apiVersion       = "2023-06-01"
	defaultTimeLimit = 30 // seconds, applied when the model omits one
)

type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	http    *http.Client
}

func New(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Model:   model,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Generate asks the model for a question set on the given topics. The model
// is told to reply with a raw JSON array of questions; anything that doesn't
// decode and validate is an error, which the game engine absorbs by falling
// back to its default questions.
func (c *Client) Generate(ctx context.Context, topics []string) ([]game.Question, error) {
	if c.APIKey == "" {
		return nil, errors.New("missing ANTHROPIC_API_KEY")
	}

	prompt := fmt.Sprintf(`Generate 3 multiple-choice trivia questions on the following topics: %s.
Each question should have 4 answer choices, and the correct answer should be marked with its index (0-3).
Format the response as a JSON array of objects with "text", "options", "correctAnswer", and "timeLimit".
The response should just be the raw JSON, do not write it in a code block.`, strings.Join(topics, ", "))

	payload := map[string]any{
		"model":       c.Model,
		"max_tokens":  1024,
		"temperature": 0.7,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", strings.TrimRight(c.BaseURL, "/")+"/v1/messages", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("anthropic status %d", resp.StatusCode)
	}

	var out struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	for _, block := range out.Content {
		if block.Type == "text" {
			return parseQuestions([]byte(strings.TrimSpace(block.Text)))
		}
	}
	return nil, errors.New("no text content in response")
}

func parseQuestions(raw []byte) ([]game.Question, error) {
	var questions []game.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("decoding questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, errors.New("empty question set")
	}
	for i := range questions {
		q := &questions[i]
		if q.Text == "" {
			return nil, fmt.Errorf("question %d has no text", i)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("question %d has %d options", i, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("question %d has correct answer index %d out of range", i, q.CorrectAnswer)
		}
		if q.TimeLimit <= 0 {
			q.TimeLimit = defaultTimeLimit
		}
		q.StartedAt = nil
	}
	return questions, nil
}
