package ask

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// TelemetrySubject is the NATS subject generation events are published to.
const TelemetrySubject = "telemetry.ask"

// Event names emitted by the submission flow.
const (
	EventGenerateClicked  = "ask.generate.clicked"
	EventGenerateFinished = "ask.generate.finished"
)

// TelemetryEvent is a fire-and-forget usage event.
type TelemetryEvent struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	SessionID string         `json:"sessionId"`
	Payload   map[string]any `json:"payload,omitempty"`
	At        time.Time      `json:"at"`
}

// TelemetryReporter publishes events via NATS.
// Best-effort: if the NATS connection fails, it degrades to a no-op reporter
// and never fails the caller.
type TelemetryReporter struct {
	conn   *nats.Conn
	noop   bool
	logger zerolog.Logger
}

func NewTelemetryReporter(natsURL string, logger zerolog.Logger) *TelemetryReporter {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		logger.Warn().Err(err).Str("url", natsURL).Msg("NATS connection failed, telemetry disabled")
		return &TelemetryReporter{noop: true, logger: logger}
	}

	logger.Info().Str("subject", TelemetrySubject).Msg("NATS connected, telemetry enabled")
	return &TelemetryReporter{conn: nc, logger: logger}
}

// Close drains and closes the NATS connection
func (slf *TelemetryReporter) Close() {
	if slf.noop || slf.conn == nil {
		return
	}
	if err := slf.conn.Drain(); err != nil {
		slf.logger.Error().Err(err).Msg("NATS drain error")
	}
}

// Track publishes an event. Failures are logged and swallowed; telemetry is
// never part of correctness.
func (slf *TelemetryReporter) Track(sessionID string, name string, payload map[string]any) {
	event := TelemetryEvent{
		ID:        uuid.NewString(),
		Name:      name,
		SessionID: sessionID,
		Payload:   payload,
		At:        time.Now(),
	}

	if slf.noop {
		slf.logger.Debug().Str("event", name).Str("sessionId", sessionID).Msg("telemetry (no-op)")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		slf.logger.Error().Err(err).Msg("telemetry marshal error")
		return
	}
	if err := slf.conn.Publish(TelemetrySubject, data); err != nil {
		slf.logger.Error().Err(err).Msg("telemetry publish error")
	}
}
