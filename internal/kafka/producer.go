package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// OpsEvent is the wire format for operational events on both the events and
// notifications topics. Fields are filled per event type.
type OpsEvent struct {
	Type          string    `json:"type"`
	FlightID      int64     `json:"flight_id,omitempty"`
	FlightNumber  string    `json:"flight_number,omitempty"`
	Status        string    `json:"status,omitempty"`
	GateID        int64     `json:"gate_id,omitempty"`
	GateCode      string    `json:"gate_code,omitempty"`
	PassengerID   int64     `json:"passenger_id,omitempty"`
	PassengerName string    `json:"passenger_name,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
