package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Event is the score broadcast produced after a successful submission.
type Event struct {
	StudentID  int64   `json:"student_id"`
	QuizID     int64   `json:"quiz_id"`
	Score      int     `json:"score"`
	Percentage float64 `json:"percentage"`
}

// Notifier publishes submission results to the leaderboard. Publishing is
// best-effort: callers dispatch it off the request path and only log errors,
// so an implementation may be slow or down without affecting submissions.
type Notifier interface {
	Publish(ctx context.Context, e Event) error
}

// HTTPNotifier posts events to a leaderboard service endpoint.
type HTTPNotifier struct {
	url  string
	http *http.Client
}

func NewHTTPNotifier(url string, timeout time.Duration) *HTTPNotifier {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPNotifier{url: url, http: &http.Client{Timeout: timeout}}
}

func (n *HTTPNotifier) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := n.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return fmt.Errorf("leaderboard publish: %s", res.Status)
	}
	return nil
}

// NopNotifier discards events. Useful in tests and single-node setups.
type NopNotifier struct{}

func (NopNotifier) Publish(context.Context, Event) error { return nil }
