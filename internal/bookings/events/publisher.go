package events

import (
	"context"

	"resort/pkg/kafka"
	"resort/pkg/logger"
	"resort/pkg/model"

	"github.com/google/uuid"
)

const (
	EventBookingCreated = "bookings.created"

	source = "bookings"
)

// Publisher announces booking lifecycle events. Delivery is best-effort
// and at-most-once: a failed publish is logged by the caller and never
// fails the booking.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
	Close() error
}

type bookingEvent struct {
	Event   string       `json:"event"`
	Payload eventPayload `json:"payload"`
}

type eventPayload struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) (Publisher, error) {
	producer, err := kafka.NewProducer(brokers, topic)
	if err != nil {
		return nil, err
	}
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}, nil
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	msg, err := kafka.NewMessage(booking.Reference, bookingEvent{
		Event: EventBookingCreated,
		Payload: eventPayload{
			ID:        booking.ID,
			Reference: booking.Reference,
			Status:    booking.Status,
		},
	})
	if err != nil {
		return err
	}

	msg = msg.
		WithHeader(kafka.HeaderEventID, uuid.NewString()).
		WithHeader(kafka.HeaderEventType, EventBookingCreated).
		WithHeader(kafka.HeaderSource, source)

	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}
