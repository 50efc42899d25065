package audit

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Action represents the action being performed
type Action string

const (
	ActionLogin       Action = "login"
	ActionVerifyToken Action = "verify_token"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

const (
	defaultWriteTimeout = 2 * time.Second
	maxFieldLen         = 256
	msgAuditWriteFailed = "audit log failed: %v"
)

// Event is one recorded authentication outcome. It never carries a password
// or a token.
type Event struct {
	ID        uuid.UUID
	Action    Action
	Status    Status
	Username  string
	Role      string
	Reason    string
	IPAddress string
	UserAgent string
	RequestID string
	CreatedAt time.Time
}

// Entry is the caller-supplied part of an Event; request metadata is filled
// in from the echo context.
type Entry struct {
	Action   Action
	Status   Status
	Username string
	Role     string
	Reason   string
}

// Sink persists events.
type Sink interface {
	Write(ctx context.Context, event *Event) error
}

// Logger handles audit logging. Writes from a request are asynchronous so a
// slow sink never delays the response.
type Logger struct {
	sink    Sink
	timeout time.Duration
	pending sync.WaitGroup
}

func NewLogger(sink Sink) *Logger {
	return &Logger{sink: sink, timeout: defaultWriteTimeout}
}

// Log records an audit event synchronously
func (l *Logger) Log(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return l.sink.Write(ctx, event)
}

// LogFromContext builds an event from the request and records it in the
// background.
func (l *Logger) LogFromContext(c echo.Context, entry Entry) {
	event := &Event{
		Action:    entry.Action,
		Status:    entry.Status,
		Username:  truncate(entry.Username),
		Role:      entry.Role,
		Reason:    entry.Reason,
		IPAddress: c.RealIP(),
		UserAgent: truncate(c.Request().UserAgent()),
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}

	// The echo context is recycled after the request, so capture what the
	// goroutine needs now.
	logger := c.Logger()

	l.pending.Add(1)
	go func() {
		defer l.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()

		if err := l.Log(ctx, event); err != nil {
			logger.Errorf(msgAuditWriteFailed, err)
		}
	}()
}

// Wait blocks until background writes have finished.
func (l *Logger) Wait() {
	l.pending.Wait()
}

// truncate bounds caller-controlled fields to maxFieldLen bytes without
// splitting a UTF-8 sequence.
func truncate(s string) string {
	if len(s) <= maxFieldLen {
		return s
	}
	n := maxFieldLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
