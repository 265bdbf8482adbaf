package queue

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MessageQueue defines the interface for a message queue adapter
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// Options configures the broker connection
type Options struct {
	Driver        string // nats, rabbitmq, kafka, none
	URL           string
	MaxReconnects int
	ReconnectWait time.Duration
	Timeout       time.Duration
}

// New connects to the broker selected by opts.Driver
func New(opts Options, log *zap.Logger) (MessageQueue, error) {
	switch strings.ToLower(opts.Driver) {
	case "nats":
		return NewNATSQueue(opts, log)
	case "rabbitmq", "amqp":
		return NewRabbitMQQueue(opts.URL, log)
	case "kafka":
		return NewKafkaQueue(opts, log)
	case "", "none":
		log.Info("Message queue disabled")
		return NewNoopQueue(), nil
	default:
		return nil, fmt.Errorf("unknown queue driver %q", opts.Driver)
	}
}
