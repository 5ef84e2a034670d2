package quizbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrNotFound means the quiz id is unknown to the question bank.
	ErrNotFound = errors.New("quiz not found")
	// ErrUnavailable means the question bank could not be reached or errored.
	// Callers must abort the operation without partial state changes.
	ErrUnavailable = errors.New("question bank unavailable")
)

// Provider is the read contract every lifecycle operation consumes.
type Provider interface {
	GetQuiz(ctx context.Context, quizID int64) (Quiz, error)
	GetQuestions(ctx context.Context, quizID int64) ([]Question, error)
}

// Client talks to the question bank service over plain HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetQuiz(ctx context.Context, quizID int64) (Quiz, error) {
	var q Quiz
	if err := c.getJSON(ctx, fmt.Sprintf("%s/quizzes/%d", c.baseURL, quizID), &q); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (c *Client) GetQuestions(ctx context.Context, quizID int64) ([]Question, error) {
	var qs []Question
	if err := c.getJSON(ctx, fmt.Sprintf("%s/quizzes/%d/questions", c.baseURL, quizID), &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()
	switch {
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode/100 != 2:
		return fmt.Errorf("%w: %s", ErrUnavailable, res.Status)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return nil
}
