package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createAuditEventsTable = `
		CREATE TABLE IF NOT EXISTS audit_events (
			id          UUID PRIMARY KEY,
			action      TEXT NOT NULL,
			status      TEXT NOT NULL,
			username    TEXT NOT NULL DEFAULT '',
			role        TEXT NOT NULL DEFAULT '',
			reason      TEXT NOT NULL DEFAULT '',
			ip_address  TEXT NOT NULL DEFAULT '',
			user_agent  TEXT NOT NULL DEFAULT '',
			request_id  TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS audit_events_username_created_at_idx
			ON audit_events (username, created_at DESC)
	`

	insertAuditEvent = `
		INSERT INTO audit_events (
			id, action, status, username, role, reason, ip_address, user_agent, request_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	errCreateAuditSchemaFmt = "failed to create audit schema: %w"
	errInsertAuditEventFmt  = "failed to insert audit event: %w"
)

// PostgresSink stores events in the audit_events table.
type PostgresSink struct {
	pool *pgxpool.Pool
}

func NewPostgresSink(pool *pgxpool.Pool) *PostgresSink {
	return &PostgresSink{pool: pool}
}

func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createAuditEventsTable); err != nil {
		return fmt.Errorf(errCreateAuditSchemaFmt, err)
	}
	return nil
}

func (s *PostgresSink) Write(ctx context.Context, event *Event) error {
	_, err := s.pool.Exec(ctx, insertAuditEvent,
		event.ID,
		event.Action,
		event.Status,
		event.Username,
		event.Role,
		event.Reason,
		event.IPAddress,
		event.UserAgent,
		event.RequestID,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf(errInsertAuditEventFmt, err)
	}
	return nil
}
