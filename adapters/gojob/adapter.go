package gojob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-bakery/adapters/gocommand"
	bakerycommand "github.com/goliatone/go-bakery/command"
	"github.com/goliatone/go-bakery/core"
	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"

	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-job/queue"
	sqlqueue "github.com/goliatone/go-job/queue/adapters/postgres"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"
	"github.com/goliatone/go-job/queue/worker"
)

const (
	JobIDInquiryNotify = bakerycommand.TypeNotifyInquiry

	QueueTable      = "bakery_job_queue"
	DeadLetterTable = "bakery_job_dead_letters"
	StatusTable     = "bakery_job_dispatch_status"

	TerminalCodeNotFound       job.TerminalErrorCode = "bakery_not_found"
	TerminalCodeInvalidPayload job.TerminalErrorCode = "bakery_invalid_payload"

	defaultIdleDelay = time.Second
)

// DefaultRetryPolicy retries a notification five times, doubling from 30s
// up to 10m, then dead letters it.
func DefaultRetryPolicy() worker.DefaultRetryPolicy {
	return worker.DefaultRetryPolicy{
		MaxAttempts: 5,
		Backoff: worker.BackoffConfig{
			Strategy:    worker.BackoffExponential,
			Interval:    30 * time.Second,
			MaxInterval: 10 * time.Minute,
		},
	}
}

// TerminalRetryPolicy turns failures a retry cannot fix into go-job
// terminal errors before deferring to Next, so they dead letter on the
// first attempt.
type TerminalRetryPolicy struct {
	Next worker.RetryPolicy
}

func (p TerminalRetryPolicy) Decide(attempt int, err error) queue.NackOptions {
	next := p.Next
	if next == nil {
		next = DefaultRetryPolicy()
	}
	if terminal := asTerminal(err); terminal != nil {
		err = terminal
	}
	return next.Decide(attempt, err)
}

func asTerminal(err error) error {
	if err == nil {
		return nil
	}
	var nonRetryable job.NonRetryableError
	if errors.As(err, &nonRetryable) {
		return nil
	}
	switch {
	case goerrors.IsNotFound(err) || errors.Is(err, core.ErrNotFound):
		return job.NewTerminalError(TerminalCodeNotFound, err.Error(), err)
	case goerrors.IsValidation(err) || goerrors.IsCategory(err, goerrors.CategoryBadInput):
		return job.NewTerminalError(TerminalCodeInvalidPayload, err.Error(), err)
	}
	return nil
}

// NewSQLQueue builds the go-job SQL queue on the bakery database. Call
// Migrate on the returned storage before the first enqueue.
func NewSQLQueue(db *sql.DB, driver string, opts ...sqlqueue.Option) (*sqlqueue.Adapter, *sqlqueue.Storage, error) {
	if db == nil {
		return nil, nil, fmt.Errorf("gojob: database is required")
	}
	var dialect sqlqueue.Dialect
	switch strings.TrimSpace(driver) {
	case "postgres":
		dialect = sqlqueue.DialectPostgres
	case "sqlite3":
		dialect = sqlqueue.DialectSQLite
	default:
		return nil, nil, fmt.Errorf("gojob: unsupported queue driver %q", driver)
	}
	base := []sqlqueue.Option{
		sqlqueue.WithDialect(dialect),
		sqlqueue.WithTableName(QueueTable),
		sqlqueue.WithDLQTableName(DeadLetterTable),
		sqlqueue.WithStatusTableName(StatusTable),
	}
	storage := sqlqueue.NewStorage(db, append(base, opts...)...)
	return sqlqueue.NewAdapter(storage), storage, nil
}

// RegisterJobs exposes commands to the go-job registry through a dedicated
// go-command registry. Queries never go through it: the queue resolver
// requires an Execute method.
func RegisterJobs(jobs *jobqueuecommand.Registry, commands ...any) error {
	if jobs == nil {
		return fmt.Errorf("gojob: job registry is required")
	}
	adapter := gocommand.NewRegistryAdapter(nil)
	if err := adapter.AddQueueResolver(jobs); err != nil {
		return err
	}
	for _, cmd := range commands {
		if err := adapter.RegisterCommand(cmd); err != nil {
			return err
		}
	}
	return adapter.Initialize()
}

// NotificationEnqueuer hands inquiry notifications to the queue so the
// checkout request does not wait on SMTP.
type NotificationEnqueuer struct {
	enqueuer queue.Enqueuer
	jobs     *jobqueuecommand.Registry
}

// NewNotificationEnqueuer takes the job registry the worker reads from. A
// nil registry skips the registration check on enqueue.
func NewNotificationEnqueuer(enqueuer queue.Enqueuer, jobs *jobqueuecommand.Registry) *NotificationEnqueuer {
	return &NotificationEnqueuer{enqueuer: enqueuer, jobs: jobs}
}

func (a *NotificationEnqueuer) EnqueueInquiryNotification(ctx context.Context, inquiryID string) error {
	if a == nil || a.enqueuer == nil {
		return fmt.Errorf("gojob: enqueuer is not configured")
	}
	msg := bakerycommand.NotifyInquiryMessage{InquiryID: strings.TrimSpace(inquiryID)}
	if err := msg.Validate(); err != nil {
		return err
	}
	params, err := jobqueuecommand.ParametersFromPayload(msg)
	if err != nil {
		return fmt.Errorf("gojob: encode notify payload: %w", err)
	}
	_, err = jobqueuecommand.EnqueueWithOptions(ctx, a.enqueuer, a.jobs, JobIDInquiryNotify, params, jobqueuecommand.EnqueueOptions{
		IdempotencyKey: "inquiry:" + msg.InquiryID,
		CorrelationID:  msg.InquiryID,
	})
	if err != nil {
		return fmt.Errorf("gojob: enqueue inquiry %s: %w", msg.InquiryID, err)
	}
	return nil
}

type WorkerConfig struct {
	Logger      glog.Logger
	RetryPolicy worker.RetryPolicy
	Hooks       []worker.Hook
	Concurrency int
	IdleDelay   time.Duration
}

// NewNotificationWorker builds a go-job worker for the notify job. It is
// not started; call Start and Stop on the returned worker.
func NewNotificationWorker(dequeuer queue.Dequeuer, jobs *jobqueuecommand.Registry, cfg WorkerConfig) (*worker.Worker, error) {
	logger := glog.Ensure(cfg.Logger)
	idle := cfg.IdleDelay
	if idle <= 0 {
		idle = defaultIdleDelay
	}
	hooks := append([]worker.Hook{NewLoggingHook(logger)}, cfg.Hooks...)
	opts := []worker.Option{
		worker.WithLogger(NewJobLogger(logger)),
		worker.WithRetryPolicy(TerminalRetryPolicy{Next: cfg.RetryPolicy}),
		worker.WithHooks(hooks...),
		worker.WithIdleDelay(idle),
	}
	if cfg.Concurrency > 0 {
		opts = append(opts, worker.WithConcurrency(cfg.Concurrency))
	}
	return jobqueuecommand.NewLocalWorker(dequeuer, jobs, jobqueuecommand.LocalWorkerConfig{
		IDs:           []string{JobIDInquiryNotify},
		WorkerOptions: opts,
	})
}

type jobLogger struct {
	glog.Logger
}

// NewJobLogger adapts a glog.Logger to the go-job logger contract.
func NewJobLogger(logger glog.Logger) job.Logger {
	return jobLogger{Logger: glog.Ensure(logger)}
}

func (l jobLogger) WithContext(ctx context.Context) job.Logger {
	return jobLogger{Logger: l.Logger.WithContext(ctx)}
}

// LoggingHook reports worker lifecycle events through a glog.Logger.
type LoggingHook struct {
	logger glog.Logger
}

func NewLoggingHook(logger glog.Logger) *LoggingHook {
	return &LoggingHook{logger: glog.Ensure(logger)}
}

func (h *LoggingHook) OnStart(ctx context.Context, event worker.Event) {
	h.logger.WithContext(ctx).Debug("job started", eventArgs(event)...)
}

func (h *LoggingHook) OnSuccess(ctx context.Context, event worker.Event) {
	h.logger.WithContext(ctx).Info("job succeeded", eventArgs(event)...)
}

func (h *LoggingHook) OnFailure(ctx context.Context, event worker.Event) {
	h.logger.WithContext(ctx).Error("job failed", eventArgs(event)...)
}

func (h *LoggingHook) OnRetry(ctx context.Context, event worker.Event) {
	h.logger.WithContext(ctx).Warn("job scheduled for retry", eventArgs(event)...)
}

func eventArgs(event worker.Event) []any {
	message := event.Message
	if message == nil && event.Delivery != nil {
		message = event.Delivery.Message()
	}
	args := []any{"attempt", event.Attempt}
	if message != nil {
		args = append(args, "job_id", message.JobID, "idempotency_key", message.IdempotencyKey)
	}
	if event.Delay > 0 {
		args = append(args, "delay", event.Delay.String())
	}
	if event.Duration > 0 {
		args = append(args, "duration_ms", event.Duration.Milliseconds())
	}
	if event.Err != nil {
		args = append(args, "error", event.Err.Error())
	}
	return args
}
