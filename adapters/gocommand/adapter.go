package gocommand

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"
)

// QueueResolverKey names the resolver that mirrors commands into a go-job
// registry.
const QueueResolverKey = "queue"

var errNoRegistry = fmt.Errorf("gocommand: registry is not configured")

// RegistryAdapter owns a go-command registry for one handler set. The
// facade registers its commands and queries on one adapter; queued jobs use
// another, since the queue resolver only accepts Execute handlers.
type RegistryAdapter struct {
	registry *command.Registry
}

func NewRegistryAdapter(registry *command.Registry) *RegistryAdapter {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) configured() bool {
	return a != nil && a.registry != nil
}

// RegisterCommand records a command or query handler. Queries share the
// same registry path; go-command tells them apart by method.
func (a *RegistryAdapter) RegisterCommand(handler any) error {
	if !a.configured() {
		return errNoRegistry
	}
	if handler == nil {
		return fmt.Errorf("gocommand: handler is required")
	}
	return a.registry.RegisterCommand(handler)
}

// AddQueueResolver mirrors every Execute handler registered here into jobs
// when the registry initializes. Adding it twice is a no-op.
func (a *RegistryAdapter) AddQueueResolver(jobs *jobqueuecommand.Registry) error {
	if !a.configured() {
		return errNoRegistry
	}
	if jobs == nil {
		return fmt.Errorf("gocommand: job registry is required")
	}
	if a.HasResolver(QueueResolverKey) {
		return nil
	}
	return a.registry.AddResolver(QueueResolverKey, jobqueuecommand.QueueResolver(jobs))
}

func (a *RegistryAdapter) HasResolver(key string) bool {
	return a.configured() && a.registry.HasResolver(key)
}

func (a *RegistryAdapter) Initialize() error {
	if !a.configured() {
		return errNoRegistry
	}
	return a.registry.Initialize()
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

// Subscriptions collects dispatcher subscriptions so a caller can tear a
// whole handler set down at once.
type Subscriptions struct {
	mu    sync.Mutex
	items []commanddispatcher.Subscription
}

func (s *Subscriptions) Add(sub commanddispatcher.Subscription) {
	if s == nil || sub == nil {
		return
	}
	s.mu.Lock()
	s.items = append(s.items, sub)
	s.mu.Unlock()
}

func (s *Subscriptions) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Unsubscribe releases subscriptions in reverse registration order.
func (s *Subscriptions) Unsubscribe() {
	if s == nil {
		return
	}
	s.mu.Lock()
	items := s.items
	s.items = nil
	s.mu.Unlock()
	for i := len(items) - 1; i >= 0; i-- {
		items[i].Unsubscribe()
	}
}

// RegisterAndSubscribe registers cmd and subscribes it on the dispatcher.
// A failed registration drops the subscription again.
func RegisterAndSubscribe[T any](adapter *RegistryAdapter, cmd command.Commander[T], runnerOpts ...runner.Option) (commanddispatcher.Subscription, error) {
	if cmd == nil {
		return nil, fmt.Errorf("gocommand: command is required")
	}
	return registerWith(adapter, cmd, func() commanddispatcher.Subscription {
		return commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
	})
}

func RegisterAndSubscribeQuery[T any, R any](adapter *RegistryAdapter, qry command.Querier[T, R], runnerOpts ...runner.Option) (commanddispatcher.Subscription, error) {
	if qry == nil {
		return nil, fmt.Errorf("gocommand: query is required")
	}
	return registerWith(adapter, qry, func() commanddispatcher.Subscription {
		return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
	})
}

func registerWith(adapter *RegistryAdapter, handler any, subscribe func() commanddispatcher.Subscription) (commanddispatcher.Subscription, error) {
	if !adapter.configured() {
		return nil, errNoRegistry
	}
	sub := subscribe()
	if err := adapter.RegisterCommand(handler); err != nil {
		if sub != nil {
			sub.Unsubscribe()
		}
		return nil, err
	}
	return sub, nil
}
