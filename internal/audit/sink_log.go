package audit

import (
	"context"
	"io"
	"time"

	"github.com/labstack/gommon/log"
)

const logPrefix = "audit"

// LogSink writes events as JSON lines. It is used when no database is
// configured.
type LogSink struct {
	logger *log.Logger
}

func NewLogSink(w io.Writer) *LogSink {
	logger := log.New(logPrefix)
	logger.SetOutput(w)
	logger.SetLevel(log.INFO)
	logger.SetHeader(`{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}"}`)
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(_ context.Context, event *Event) error {
	s.logger.Infoj(log.JSON{
		"id":         event.ID.String(),
		"action":     event.Action,
		"status":     event.Status,
		"username":   event.Username,
		"role":       event.Role,
		"reason":     event.Reason,
		"ip_address": event.IPAddress,
		"user_agent": event.UserAgent,
		"request_id": event.RequestID,
		"created_at": event.CreatedAt.Format(time.RFC3339),
	})
	return nil
}
