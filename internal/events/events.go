// internal/events/events.go
//
// Optional sink for gameplay events (word completed, game finished).
// The server publishes best-effort: a failing sink is logged and never
// changes the outcome of a command.
//
// Implementations:
//   - Nop:   default when no brokers are configured.
//   - Kafka: segmentio/kafka-go writer, one JSON message per event, keyed by
//            game ID so a game's events stay ordered within a partition.

package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Kind names an event type.
type Kind string

const (
	WordCompleted Kind = "word_completed"
	GameFinished  Kind = "game_finished"
)

// Event is the wire shape of a published event.
type Event struct {
	Kind       Kind      `json:"kind"`
	GameID     string    `json:"gameId"`
	Word       string    `json:"word,omitempty"`
	Difficulty string    `json:"difficulty,omitempty"`
	Attempts   int       `json:"attempts,omitempty"`
	Points     int       `json:"points,omitempty"`
	Score      int       `json:"score"`
	Accuracy   int       `json:"accuracy,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher delivers events somewhere.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error { return nil }

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes events to a single topic.
type Kafka struct {
	w messageWriter
}

// NewKafka builds a publisher writing to topic on brokers.
func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}}
}

// Publish encodes e as JSON and writes it keyed by game ID.
func (k *Kafka) Publish(ctx context.Context, e Event) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	val, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return k.w.WriteMessages(ctx, kafka.Message{Key: []byte(e.GameID), Value: val})
}

// Close flushes and closes the writer.
func (k *Kafka) Close() error { return k.w.Close() }
