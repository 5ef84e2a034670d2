package leaderboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const eventAttemptSubmitted = "AttemptSubmitted"

// EventLogNotifier appends submission events to the local event_log table.
// It doubles as an audit trail and as the leaderboard feed for deployments
// where a consumer tails the log instead of receiving HTTP pushes.
type EventLogNotifier struct {
	db     *sql.DB
	siteID string
}

func NewEventLogNotifier(db *sql.DB, siteID string) *EventLogNotifier {
	if siteID == "" {
		siteID = "local"
	}
	return &EventLogNotifier{db: db, siteID: siteID}
}

func (n *EventLogNotifier) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = n.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		n.siteID, eventAttemptSubmitted, eventKey(e), string(data), time.Now().Unix())
	return err
}

// eventKey is the attempt's natural key.
func eventKey(e Event) string {
	return fmt.Sprintf("%d:%d", e.QuizID, e.StudentID)
}
