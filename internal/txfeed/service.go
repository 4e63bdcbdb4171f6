// Package txfeed relays transaction tracker events to an external
// publisher so consumers outside the process can follow the lifecycle of
// a session's transactions.
package txfeed

import (
	"context"
	"errors"
	"sync"

	"github.com/gabapcia/silkroad/internal/pkg/logger"
	"github.com/gabapcia/silkroad/internal/pkg/resilience/retry"
	"github.com/gabapcia/silkroad/internal/pkg/x/chflow"
	"github.com/gabapcia/silkroad/internal/txtracker"
)

// ErrServiceAlreadyStarted is returned if Start is called more than once.
var ErrServiceAlreadyStarted = errors.New("service already started")

// EventSource streams tracker events. txtracker.Tracker satisfies it.
type EventSource interface {
	Subscribe(ctx context.Context) <-chan txtracker.Event
}

// Publisher delivers a tracker event to the outside world.
type Publisher interface {
	// Publish sends ev. It may be called again with the same event when a
	// previous attempt failed.
	Publish(ctx context.Context, ev txtracker.Event) error
}

// Service is the relay lifecycle.
type Service interface {
	// Start subscribes to the event source and relays every event until
	// Close is called or ctx is done.
	//
	// Returns ErrServiceAlreadyStarted if Start is called more than once.
	Start(ctx context.Context) error

	// Close stops relaying and waits for the event in flight, if any.
	// It is safe to call Close even if the service was never started.
	Close()
}

// closeFunc defines a cleanup routine to stop the relay goroutine.
type closeFunc func()

// publishFailureHandler is called when an event could not be published
// after every retry.
type publishFailureHandler func(ctx context.Context, ev txtracker.Event, err error)

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc

	source    EventSource
	publisher Publisher

	retry                 retry.Retry
	publishFailureHandler publishFailureHandler
}

var _ Service = (*service)(nil)

// Start implements Service.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	eventsCh := s.source.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.relay(ctx, eventsCh)
	}()

	s.closeFunc = func() {
		cancel()
		<-done
	}
	s.isStarted = true
	return nil
}

// relay publishes events until the source closes the channel or ctx is done.
func (s *service) relay(ctx context.Context, eventsCh <-chan txtracker.Event) {
	for {
		ev, ok := chflow.Receive(ctx, eventsCh)
		if !ok {
			return
		}

		err := s.retry.Execute(ctx, func() error {
			return s.publisher.Publish(ctx, ev)
		})
		if err != nil {
			s.publishFailureHandler(ctx, ev, err)
		}
	}
}

// Close implements Service.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}

	s.closeFunc = nil
	s.isStarted = false
}

func defaultOnPublishFailure(ctx context.Context, ev txtracker.Event, err error) {
	logger.Error(ctx, "tracker event publish failure",
		"event.seq", ev.Seq,
		"event.kind", ev.Kind,
		"error", err,
	)
}

type config struct {
	retry                 retry.Retry
	publishFailureHandler publishFailureHandler
}

// Option configures the relay.
type Option func(*config)

// WithRetry replaces the publish retry policy.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithPublishFailureHandler replaces the handler called when an event is
// dropped after every retry failed. The default logs it.
func WithPublishFailureHandler(f publishFailureHandler) Option {
	return func(c *config) {
		c.publishFailureHandler = f
	}
}

// New creates the relay between source and publisher.
func New(source EventSource, publisher Publisher, opts ...Option) *service {
	cfg := config{
		retry:                 retry.New(),
		publishFailureHandler: defaultOnPublishFailure,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		source:                source,
		publisher:             publisher,
		retry:                 cfg.retry,
		publishFailureHandler: cfg.publishFailureHandler,
	}
}
