// Package events публикует доменные события бронирований и кошельков в Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      bool
}

func (r RetryConfig) withDefaults() RetryConfig {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 5
	}
	if r.BaseDelay == 0 {
		r.BaseDelay = 100 * time.Millisecond
	}
	if r.MaxDelay == 0 {
		r.MaxDelay = 10 * time.Second
	}
	return r
}

// KafkaPublisher держит по писателю на топик и повторяет неудачную запись с экспоненциальной паузой.
type KafkaPublisher struct {
	writers map[string]MessageWriter
	retry   RetryConfig
	l       *logrus.Entry
}

func NewKafkaPublisher(brokers []string, topics []string, retry RetryConfig, l *logrus.Logger) *KafkaPublisher {
	writers := make(map[string]MessageWriter, len(topics))
	for _, t := range topics {
		writers[t] = &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  t,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
	}
	return newPublisher(writers, retry, l)
}

func newPublisher(writers map[string]MessageWriter, retry RetryConfig, l *logrus.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writers: writers,
		retry:   retry.withDefaults(),
		l:       l.WithFields(logrus.Fields{"component": "events", "module": "kafka_publisher"}),
	}
}

// Publish сериализует event в JSON и пишет в topic. Сообщения с одним key попадают в одну партицию,
// поэтому события одного бронирования или кошелька читаются по порядку.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	writer, ok := p.writers[topic]
	if !ok {
		return fmt.Errorf("no writer configured for topic %s", topic)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return p.publishWithRetry(ctx, writer, kafka.Message{Key: []byte(key), Value: data}, topic)
}

func (p *KafkaPublisher) publishWithRetry(
	ctx context.Context,
	writer MessageWriter,
	msg kafka.Message,
	topic string,
) error {
	var lastErr error
	l := p.l.WithField("topic", topic)

	for attempt := range p.retry.MaxAttempts {
		err := writer.WriteMessages(ctx, msg)
		if err == nil {
			if attempt > 0 {
				l.Infof("event published after %d attempts", attempt+1)
			}
			return nil
		}
		lastErr = err

		if attempt == p.retry.MaxAttempts-1 {
			break
		}

		delay := p.backoff(attempt)
		l.WithError(err).Warnf("retry %d/%d after %v", attempt+1, p.retry.MaxAttempts, delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		}
	}

	return fmt.Errorf("publish to topic '%s' after %d attempts: %w", topic, p.retry.MaxAttempts, lastErr)
}

// backoff 2^attempt * BaseDelay, но не больше MaxDelay. С Jitter разброс +-15%.
func (p *KafkaPublisher) backoff(attempt int) time.Duration {
	delay := time.Duration(math.Pow(2, float64(attempt))) * p.retry.BaseDelay
	if delay > p.retry.MaxDelay {
		delay = p.retry.MaxDelay
	}

	if p.retry.Jitter {
		jitter := time.Duration(rand.Float64() * float64(delay) * 0.3) //nolint:gosec
		delay = delay + jitter - time.Duration(float64(delay)*0.15)
	}
	return delay
}

func (p *KafkaPublisher) Close() error {
	var errs []error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close writer %s: %w", topic, err))
		}
	}
	return errors.Join(errs...)
}

// NoopPublisher используется, когда брокеры не настроены.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, string, any) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
