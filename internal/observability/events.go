// Package observability provides structured session event logging and
// formatted output for verbose CLI mode.
package observability

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/marcus/campaign-compliance/internal/types"
)

// EventLog writes one JSON object per line for each session event. It is
// safe for concurrent use. A nil *EventLog discards everything, so callers
// never need to guard their logging calls.
type EventLog struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// NewEventLog creates an EventLog writing to out.
func NewEventLog(out io.Writer) *EventLog {
	return &EventLog{out: out, now: time.Now}
}

type event struct {
	Event     string `json:"event"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`

	BrandName    string `json:"brand_name,omitempty"`
	BrandWebsite string `json:"brand_website,omitempty"`
	UseCase      string `json:"use_case,omitempty"`

	URL     string `json:"url,omitempty"`
	Success *bool  `json:"success,omitempty"`

	Status          string `json:"status,omitempty"`
	Score           *int   `json:"score,omitempty"`
	ViolationsCount *int   `json:"violations_count,omitempty"`

	ErrorType    string `json:"error_type,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`

	UserMessage string `json:"user_message,omitempty"`
	Response    string `json:"response,omitempty"`
}

func (l *EventLog) emit(e event) {
	if l == nil || l.out == nil {
		return
	}
	e.Timestamp = l.now().Format(time.RFC3339)

	line, err := json.Marshal(e)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(append(line, '\n'))
}

// SessionStart records the beginning of a compliance session.
func (l *EventLog) SessionStart(sessionID string, sub types.Submission) {
	l.emit(event{
		Event:        "session_start",
		SessionID:    sessionID,
		BrandName:    sub.BrandName,
		BrandWebsite: sub.BrandWebsite,
		UseCase:      sub.UseCase,
	})
}

// WebsiteScraping records a scrape attempt and its outcome.
func (l *EventLog) WebsiteScraping(sessionID, url string, success bool, scrapeErr error) {
	e := event{
		Event:     "website_scraping",
		SessionID: sessionID,
		URL:       url,
		Success:   &success,
	}
	if scrapeErr != nil {
		e.ErrorMessage = scrapeErr.Error()
	}
	l.emit(e)
}

// ComplianceResult records the outcome of one evaluation.
func (l *EventLog) ComplianceResult(sessionID string, result *types.ComplianceResult) {
	if result == nil {
		return
	}
	count := len(result.Violations)
	l.emit(event{
		Event:           "compliance_result",
		SessionID:       sessionID,
		Status:          string(result.Status),
		Score:           &result.Score,
		ViolationsCount: &count,
	})
}

// Error records a failure with its origin.
func (l *EventLog) Error(sessionID, errorType, errorMessage string) {
	l.emit(event{
		Event:        "error",
		SessionID:    sessionID,
		ErrorType:    errorType,
		ErrorMessage: errorMessage,
	})
}

// ChatInteraction records one chat exchange, truncated to keep log lines
// bounded.
func (l *EventLog) ChatInteraction(sessionID, userMessage, response string) {
	l.emit(event{
		Event:       "chat_interaction",
		SessionID:   sessionID,
		UserMessage: truncate(userMessage, 200),
		Response:    truncate(response, 200),
	})
}

// truncate limits s to n runes. Cutting on a rune boundary keeps the logged
// line valid UTF-8 for non-ASCII input.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
