package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/hustlaa/internal/metrics"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	maxEmailTries       = 3
	defaultRetryDelay   = 5 * time.Second
	defaultPopTimeout   = 2 * time.Second
	emailStatusSent     = "sent"
	emailStatusRetry    = "retry"
	emailStatusFailed   = "failed"
	emailStatusBadInput = "bad_payload"
)

// MailWorker забирает письма из очереди и отправляет их через Sender.
type MailWorker struct {
	redis      *redis.Client
	sender     Sender
	l          *logrus.Entry
	retryDelay time.Duration
	popTimeout time.Duration
}

func NewMailWorker(rdb *redis.Client, sender Sender, l *logrus.Logger) *MailWorker {
	return &MailWorker{
		redis:      rdb,
		sender:     sender,
		l:          l.WithFields(logrus.Fields{"component": "notify", "module": "mail_worker"}),
		retryDelay: defaultRetryDelay,
		popTimeout: defaultPopTimeout,
	}
}

// SetRetryDelay пауза перед повторной постановкой письма в очередь.
func (w *MailWorker) SetRetryDelay(d time.Duration) *MailWorker {
	w.retryDelay = d
	return w
}

// Run обрабатывает очередь до отмены контекста.
func (w *MailWorker) Run(ctx context.Context) {
	w.l.Info("Starting")
	for {
		select {
		case <-ctx.Done():
			w.l.Info("Got stop signal, exiting...")
			return
		default:
			if err := w.processNext(ctx); err != nil && ctx.Err() == nil {
				w.l.WithError(err).Error("process email")
			}
			metrics.EmailQueueLength.Set(float64(w.QueueLength(ctx)))
		}
	}
}

// processNext отправляет одно письмо. Неудачное письмо возвращается в очередь, после maxEmailTries
// попыток переносится в emails:failed.
func (w *MailWorker) processNext(ctx context.Context) error {
	result, err := w.redis.BRPop(ctx, w.popTimeout, QueueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("pop email: %w", err)
	}

	var job EmailJob
	if err = json.Unmarshal([]byte(result[1]), &job); err != nil {
		metrics.RecordEmail(emailStatusBadInput)
		return fmt.Errorf("bad email data: %w", err)
	}

	job.Tries++
	l := w.l.WithFields(logrus.Fields{"to": job.To, "attempt": job.Tries})

	sendErr := w.sender.Send(ctx, job.To, job.Subject, job.Body)
	if sendErr == nil {
		metrics.RecordEmail(emailStatusSent)
		l.Info("email sent")
		return nil
	}

	// очередь переживает остановку воркера, поэтому письмо возвращается даже при отмене ctx
	pushCtx := context.WithoutCancel(ctx)
	if job.Tries < maxEmailTries {
		metrics.RecordEmail(emailStatusRetry)
		l.WithError(sendErr).Warn("failed to send email, retrying")
		select {
		case <-ctx.Done():
		case <-time.After(w.retryDelay):
		}
		return w.push(pushCtx, QueueKey, job)
	}

	metrics.RecordEmail(emailStatusFailed)
	l.WithError(sendErr).Errorf("email failed after %d attempts", job.Tries)
	return w.saveFailed(pushCtx, job, sendErr)
}

func (w *MailWorker) push(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}
	if err = w.redis.LPush(ctx, key, string(data)).Err(); err != nil {
		return fmt.Errorf("push to %s: %w", key, err)
	}
	return nil
}

func (w *MailWorker) saveFailed(ctx context.Context, job EmailJob, sendErr error) error {
	return w.push(ctx, FailedQueueKey, map[string]any{
		"job":   job,
		"error": sendErr.Error(),
		"time":  time.Now(),
	})
}

// QueueLength текущая длина очереди писем.
func (w *MailWorker) QueueLength(ctx context.Context) int64 {
	length, _ := w.redis.LLen(ctx, QueueKey).Result()
	return length
}
