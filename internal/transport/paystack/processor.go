// Package paystack сверяет зависшие платежи с платежным шлюзом Paystack.
package paystack

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/fsdevblog/hustlaa/internal/transport/paystack/client"
	"github.com/sirupsen/logrus"
)

const (
	defaultServiceTimeout         = 3 * time.Second
	defaultReconcileTimeout       = 20 * time.Second
	defaultLimitPerIteration uint = 100
	defaultWorkers           uint = 5
	defaultOlderThan              = 15 * time.Minute
	defaultIdleInterval           = 30 * time.Second
)

// Processor периодически сверяет pending платежи со шлюзом.
type Processor struct {
	svs               Servicer
	l                 *logrus.Entry
	limitPerIteration uint
	workers           uint
	olderThan         time.Duration
	idleInterval      time.Duration
}

// New создает новый экземпляр процессора сверки платежей.
func New(svs Servicer, l *logrus.Logger) *Processor {
	loggerEntry := l.WithFields(logrus.Fields{
		"component": "paystack",
		"module":    "processor",
	})

	return &Processor{
		svs:               svs,
		l:                 loggerEntry,
		limitPerIteration: defaultLimitPerIteration,
		workers:           defaultWorkers,
		olderThan:         defaultOlderThan,
		idleInterval:      defaultIdleInterval,
	}
}

// SetLimitPerIteration устанавливает кол-во платежей, обрабатываемых в одной итерации.
func (p *Processor) SetLimitPerIteration(limit uint) *Processor {
	if limit > 0 {
		p.limitPerIteration = limit
	}
	return p
}

// SetWorkers устанавливает кол-во воркеров, опрашивающих шлюз.
func (p *Processor) SetWorkers(workers uint) *Processor {
	if workers > 0 {
		p.workers = workers
	}
	return p
}

// SetOlderThan платеж попадает в сверку, если он висит в pending дольше d.
func (p *Processor) SetOlderThan(d time.Duration) *Processor {
	if d > 0 {
		p.olderThan = d
	}
	return p
}

// SetIdleInterval пауза между итерациями, когда сверять нечего.
func (p *Processor) SetIdleInterval(d time.Duration) *Processor {
	if d > 0 {
		p.idleInterval = d
	}
	return p
}

// Run запускает сверку в бесконечном цикле до отмены контекста.
//
// Алгоритм работы:
//  1. В каждой итерации запрашивает через сервисный слой платежи, висящие в pending дольше olderThan.
//     Объем списка лимитируется через SetLimitPerIteration.
//  2. Платежи раздаются N воркерам (SetWorkers), каждый сверяет платеж со шлюзом через сервисный слой.
//     Успешный платеж подтверждает бронирование, брошенный или отклоненный помечается failed.
//  3. Если платежей нет или произошла ошибка, процессор ждет idleInterval с разбросом.
func (p *Processor) Run(ctx context.Context) {
	p.l.WithFields(logrus.Fields{
		"limitPerIteration": p.limitPerIteration,
		"workers":           p.workers,
		"olderThan":         p.olderThan.String(),
	}).Info("Starting")

	for {
		err := p.process(ctx)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNoPayments) {
			p.l.WithError(err).Error("process error")
		}

		pause := time.Duration(jitter(float64(p.idleInterval), 0.15, 0.15)) //nolint:mnd
		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return
		case <-time.After(pause):
		}
	}
}

// process выполняет один цикл сверки. Возвращает ErrNoPayments, если сверять нечего.
func (p *Processor) process(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	payments, err := p.produce(ctx)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}

	results := p.runWorkers(ctx, payments)

	var failed int
	for _, result := range results {
		if result.Error != nil {
			failed++
		}
	}
	if failed == len(results) {
		// ни одной успешной сверки: шлюз недоступен, ждем паузу
		return fmt.Errorf("process: all %d reconciliations failed", failed)
	}
	return nil
}

// workerResult результат сверки одного платежа.
type workerResult struct {
	WorkerID uint
	Payment  *domain.Payment
	Error    error
}

// runWorkers запускает параллельных воркеров и ожидает конца их работы (fan-out/fan-in).
func (p *Processor) runWorkers(ctx context.Context, payments []domain.Payment) []workerResult {
	var taskCh = make(chan *domain.Payment, len(payments))
	for _, payment := range payments {
		taskCh <- &payment
	}
	close(taskCh)

	wg := new(sync.WaitGroup)
	wg.Add(int(p.workers)) // nolint:gosec

	var resultCh = make(chan *workerResult, len(payments))
	for i := range p.workers {
		go p.worker(ctx, wg, i+1, taskCh, resultCh)
	}
	wg.Wait()

	close(resultCh)

	var results = make([]workerResult, 0, len(payments))
	for result := range resultCh {
		l := p.l.WithFields(logrus.Fields{
			"worker":    result.WorkerID,
			"reference": result.Payment.Reference,
			"bookingID": result.Payment.BookingID,
		})
		if result.Error != nil {
			l.WithError(result.Error).Error("reconcile payment")
		} else {
			l.Debug("reconciled")
		}
		results = append(results, *result)
	}
	return results
}

func (p *Processor) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	taskCh <-chan *domain.Payment,
	resultCh chan<- *workerResult,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-taskCh:
			if !ok {
				return
			}
			resultCh <- p.processWorkerTask(ctx, workerID, task)
		}
	}
}

// processWorkerTask сверяет платеж. В случае ответа шлюза 429 ждет время из заголовка Retry-After
// и повторяет попытку.
func (p *Processor) processWorkerTask(ctx context.Context, workerID uint, task *domain.Payment) *workerResult {
	result := workerResult{WorkerID: workerID, Payment: task}
	for {
		reqCtx, cancel := context.WithTimeout(ctx, defaultReconcileTimeout)
		err := p.svs.Reconcile(reqCtx, *task)
		cancel()

		var tooManyReq *client.TooManyRequestError
		if errors.As(err, &tooManyReq) {
			select {
			case <-ctx.Done():
				result.Error = ctx.Err()
				return &result
			case <-time.After(tooManyReq.RetryAfter):
				continue
			}
		}

		result.Error = err
		return &result
	}
}

// produce получает список платежей для сверки. Возвращает ErrNoPayments, если список пуст.
func (p *Processor) produce(ctx context.Context) ([]domain.Payment, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	payments, err := p.svs.PendingForReconciliation(produceCtx, p.olderThan, p.limitPerIteration)
	if err != nil {
		return nil, fmt.Errorf("produce: %w", err)
	}
	if len(payments) == 0 {
		return nil, ErrNoPayments
	}
	return payments, nil
}
