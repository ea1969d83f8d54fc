// internal/adapter/events/nats.go

package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"trendwatch/internal/domain/trend"
)

// Publisher announces completed refresh cycles on the event bus so
// downstream consumers can react without polling the HTTP API.
type Publisher struct {
	conn   *nats.Conn
	topic  string
	logger *logrus.Logger
}

// NewPublisher creates a refresh event publisher.
func NewPublisher(conn *nats.Conn, topic string, logger *logrus.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		topic:  topic,
		logger: logger,
	}
}

type refreshEvent struct {
	SnapshotID string    `json:"snapshot_id"`
	Count      int       `json:"count"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// PublishRefresh emits one event per successful refresh. Publishing is
// best effort: a bus failure is logged, never surfaced to the cache.
func (p *Publisher) PublishRefresh(snap trend.Snapshot) {
	data, err := json.Marshal(refreshEvent{
		SnapshotID: snap.ID,
		Count:      len(snap.Trends),
		FetchedAt:  snap.FetchedAt,
	})
	if err != nil {
		p.logger.WithError(err).Warn("Failed to marshal refresh event")
		return
	}

	if err := p.conn.Publish(p.topic, data); err != nil {
		p.logger.WithError(err).Warn("Failed to publish refresh event")
	}
}
