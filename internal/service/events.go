package service

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Event subjects published on the academic bus.
const (
	EventAssignmentPublished  = "academics.assignment.published"
	EventAssignmentDowngraded = "academics.assignment.downgraded"
	EventAssignmentCancelled  = "academics.assignment.cancelled"
	EventSubmissionReceived   = "academics.submission.received"
	EventSubmissionLate       = "academics.submission.late"
	EventSubmissionGraded     = "academics.submission.graded"
)

// EventPublisher fans domain events out to interested services.
type EventPublisher interface {
	Publish(subject string, payload interface{})
}

type natsPublisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
	now    func() time.Time
}

type eventEnvelope struct {
	Subject string      `json:"subject"`
	SentAt  time.Time   `json:"sent_at"`
	Payload interface{} `json:"payload"`
}

// NewEventPublisher wraps a NATS connection. A nil connection yields a
// publisher that drops events, so callers never need to nil-check.
func NewEventPublisher(conn *nats.Conn, logger zerolog.Logger) EventPublisher {
	return &natsPublisher{
		conn:   conn,
		logger: logger.With().Str("component", "event_publisher").Logger(),
		now:    time.Now,
	}
}

func (p *natsPublisher) Publish(subject string, payload interface{}) {
	if p.conn == nil {
		return
	}

	data, err := json.Marshal(eventEnvelope{Subject: subject, SentAt: p.now(), Payload: payload})
	if err != nil {
		p.logger.Error().Err(err).Str("subject", subject).Msg("failed to encode event")
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}
