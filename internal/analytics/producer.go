package analytics

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"gridgames-server/pkg/models"
)

// Event types published to the analytics topic.
const (
	EventSessionCreated  = "session_created"
	EventPlayerJoined    = "player_joined"
	EventMoveMade        = "move_made"
	EventSessionFinished = "session_finished"
)

// Event is the wire shape of one analytics record. Keyed by session id so
// all events of one session land on the same partition in order.
type Event struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// KafkaProducer publishes game events to Kafka. It satisfies the engine's
// AnalyticsProducer interface; deliveries are best-effort.
type KafkaProducer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewKafkaProducer creates a producer writing to topic on the given brokers.
func NewKafkaProducer(brokers []string, topic string, logger *slog.Logger) *KafkaProducer {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
		logger: logger,
	}
}

// Close flushes and closes the underlying writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

func (p *KafkaProducer) publish(ctx context.Context, eventType, sessionID string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := Event{
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Payload:   body,
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(sessionID),
		Value: value,
	})
}

// SendSessionCreated publishes a session_created event.
func (p *KafkaProducer) SendSessionCreated(ctx context.Context, sessionID, hostID string, gameType models.GameType) error {
	return p.publish(ctx, EventSessionCreated, sessionID, map[string]interface{}{
		"hostId":   hostID,
		"gameType": gameType,
	})
}

// SendPlayerJoined publishes a player_joined event.
func (p *KafkaProducer) SendPlayerJoined(ctx context.Context, sessionID, playerID string) error {
	return p.publish(ctx, EventPlayerJoined, sessionID, map[string]interface{}{
		"playerId": playerID,
	})
}

// SendMoveMade publishes a move_made event.
func (p *KafkaProducer) SendMoveMade(ctx context.Context, sessionID, playerID string, row, col, moveNo int) error {
	return p.publish(ctx, EventMoveMade, sessionID, map[string]interface{}{
		"playerId": playerID,
		"row":      row,
		"col":      col,
		"moveNo":   moveNo,
	})
}

// SendSessionFinished publishes a session_finished event.
func (p *KafkaProducer) SendSessionFinished(ctx context.Context, sessionID string, winnerID *string, draw bool) error {
	return p.publish(ctx, EventSessionFinished, sessionID, map[string]interface{}{
		"winner": winnerID,
		"draw":   draw,
	})
}
