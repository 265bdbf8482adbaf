package queue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const kafkaWriteTimeout = 5 * time.Second

// KafkaQueue implements MessageQueue with one topic per subject
type KafkaQueue struct {
	writer  *kafka.Writer
	brokers []string
	groupID string

	ctx     context.Context
	cancel  context.CancelFunc
	readers []*kafka.Reader
	wg      sync.WaitGroup
	mu      sync.Mutex
	once    sync.Once
	log     *zap.Logger
}

// NewKafkaQueue creates a producer for the comma separated broker list in opts.URL
func NewKafkaQueue(opts Options, log *zap.Logger) (MessageQueue, error) {
	brokers := parseBrokers(opts.URL)
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers in %q", opts.URL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = kafkaWriteTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	q := &KafkaQueue{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           timeout,
		},
		brokers: brokers,
		groupID: "energymix",
		ctx:     ctx,
		cancel:  cancel,
		log:     log,
	}

	log.Info("Kafka producer configured", zap.Strings("brokers", brokers))
	return q, nil
}

func (q *KafkaQueue) Publish(subject string, data []byte) error {
	ctx, cancel := context.WithTimeout(q.ctx, q.writer.WriteTimeout)
	defer cancel()

	err := q.writer.WriteMessages(ctx, kafka.Message{
		Topic: subject,
		Value: data,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("kafka: publish: %w", err)
	}
	return nil
}

func (q *KafkaQueue) Subscribe(subject string, handler func(data []byte) error) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: q.brokers,
		Topic:   subject,
		GroupID: q.groupID,
	})

	q.mu.Lock()
	q.readers = append(q.readers, reader)
	q.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for {
			msg, err := reader.ReadMessage(q.ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
					return
				}
				q.log.Warn("Kafka read failed", zap.String("topic", subject), zap.Error(err))
				continue
			}
			if err := handler(msg.Value); err != nil {
				q.log.Error("Error processing Kafka message",
					zap.String("topic", subject),
					zap.Error(err),
				)
			}
		}
	}()

	q.log.Info("Subscribed to Kafka topic", zap.String("topic", subject))
	return nil
}

func (q *KafkaQueue) Close() error {
	var err error
	q.once.Do(func() {
		q.cancel()

		q.mu.Lock()
		for _, r := range q.readers {
			_ = r.Close()
		}
		q.mu.Unlock()
		q.wg.Wait()

		err = q.writer.Close()
	})
	return err
}

// parseBrokers accepts "host:9092,host2:9092" with an optional kafka:// scheme
func parseBrokers(url string) []string {
	var brokers []string
	for _, part := range strings.Split(url, ",") {
		part = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "kafka://"))
		if part != "" {
			brokers = append(brokers, part)
		}
	}
	return brokers
}
