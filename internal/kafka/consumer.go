package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// Consumer reads OpsEvents from a topic as part of a consumer group.
// Decoding happens here so handlers only ever see typed events; a payload
// that does not decode is logged and skipped instead of wedging the group
// on a bad record.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			GroupID:        groupID,
			Topic:          topic,
			MinBytes:       1,
			MaxBytes:       1 << 20,
			CommitInterval: time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume hands each decoded event to the handler. A handler error stops
// consumption and is returned to the caller.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, OpsEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeOpsEvent(msg.Value)
		if err != nil {
			log.Warn().Err(err).Str("topic", msg.Topic).Int64("offset", msg.Offset).Msg("skipping undecodable event")
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeOpsEvent(data []byte) (OpsEvent, error) {
	var event OpsEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return OpsEvent{}, err
	}
	if event.Type == "" {
		return OpsEvent{}, errors.New("event has no type")
	}
	return event, nil
}
