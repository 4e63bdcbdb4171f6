// Package txtracker follows wallet transactions from submission to
// settlement. A submission is queued until the wallet or node hands back a
// hash, pending until the requested number of confirmations is observed, and
// then shown as completed for a short dismissal window.
package txtracker

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/gabapcia/silkroad/internal/pkg/logger"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/gabapcia/silkroad/internal/txtracker"

const (
	defaultConfirmations    = 1
	defaultDismissTimeout   = 3 * time.Second
	defaultSubscriberBuffer = 16
)

// Tracker holds the transaction lifecycle state of a session.
//
// Mutations only happen through Enqueue and the background work it starts.
// Readers use State, IsBusy and Subscribe.
type Tracker interface {
	// Enqueue records a new submission as queued and runs action in the
	// background. It returns immediately and never fails: a rejected action
	// surfaces as the state's Warning.
	//
	// ctx only carries values (trace and log fields). Its cancellation does
	// not abort the submission; Close does.
	Enqueue(ctx context.Context, action Action, description string, meta map[string]any)

	// IsBusy reports whether a submission is queued or a transaction is pending.
	IsBusy() bool

	// State returns a snapshot of the tracker.
	State() State

	// Subscribe streams the events emitted after the call.
	Subscribe(ctx context.Context) <-chan Event

	// Close stops in-flight confirmation waits and dismissal timers, waits
	// for the background work to return and closes every subscription.
	Close()
}

type tracker struct {
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup

	// ctx is cancelled by Close and bounds every background action.
	ctx    context.Context
	cancel context.CancelFunc

	queued         *Transaction
	pending        []Transaction
	completed      *Transaction
	warning        string
	operationCount uint64

	completedTimer dismissal
	warningTimer   dismissal

	seq              uint64
	subscribers      map[uint64]*subscriber
	nextSubscriberID uint64

	confirmations    uint64
	dismissTimeout   time.Duration
	subscriberBuffer int
	afterFunc        afterFunc
	now              func() time.Time
	tracer           trace.Tracer
	metrics          *metrics
}

var _ Tracker = (*tracker)(nil)

// Enqueue implements Tracker.
func (t *tracker) Enqueue(ctx context.Context, action Action, description string, meta map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		logger.Warn(ctx, "transaction enqueued on a closed tracker, ignoring", "transaction.description", description)
		return
	}

	record := Transaction{
		ID:          newID(),
		Description: description,
		Meta:        maps.Clone(meta),
		QueuedAt:    t.now(),
	}

	t.operationCount++
	t.warning = ""
	t.cancelLocked(&t.warningTimer)

	if t.queued != nil {
		logger.Warn(ctx, "queued transaction replaced before it was submitted",
			"transaction.id", t.queued.ID,
			"transaction.replaced_by", record.ID,
		)
	}
	q := record.clone()
	t.queued = &q

	t.metrics.enqueued.Add(ctx, 1)
	logger.Info(ctx, "transaction queued",
		"transaction.id", record.ID,
		"transaction.description", description,
	)
	t.emitLocked(ctx, EventQueued, &record)

	actionCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(t.ctx, cancel)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer stop()
		defer cancel()

		t.track(actionCtx, action, record)
	}()
}

// IsBusy implements Tracker.
func (t *tracker) IsBusy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.pending) > 0 || t.queued != nil
}

// State implements Tracker.
func (t *tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.snapshotLocked()
}

// snapshotLocked deep-copies the current state. Must hold t.mu.
func (t *tracker) snapshotLocked() State {
	s := State{
		Pending:        make([]Transaction, len(t.pending)),
		Warning:        t.warning,
		OperationCount: t.operationCount,
	}

	for i, tx := range t.pending {
		s.Pending[i] = tx.clone()
	}
	if t.queued != nil {
		q := t.queued.clone()
		s.Queued = &q
	}
	if t.completed != nil {
		c := t.completed.clone()
		s.Completed = &c
	}

	return s
}

// Close implements Tracker.
func (t *tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}

	t.closed = true
	t.cancelLocked(&t.completedTimer)
	t.cancelLocked(&t.warningTimer)
	t.cancel()
	t.mu.Unlock()

	t.wg.Wait()

	t.mu.Lock()
	defer t.mu.Unlock()

	for id, sub := range t.subscribers {
		delete(t.subscribers, id)
		sub.release()
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

type config struct {
	confirmations    uint64
	dismissTimeout   time.Duration
	subscriberBuffer int
	meterProvider    metric.MeterProvider
	tracerProvider   trace.TracerProvider
	afterFunc        afterFunc
	now              func() time.Time
}

// Option configures a Tracker.
type Option func(*config)

// WithConfirmations sets how many block confirmations a pending transaction
// waits for. Zero is ignored.
func WithConfirmations(n uint64) Option {
	return func(c *config) {
		if n > 0 {
			c.confirmations = n
		}
	}
}

// WithDismissTimeout sets how long the completed record and the warning
// stay visible.
func WithDismissTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.dismissTimeout = d
		}
	}
}

// WithSubscriberBuffer sets the channel capacity of each subscription.
func WithSubscriberBuffer(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.subscriberBuffer = n
		}
	}
}

// WithMeterProvider overrides the global OpenTelemetry meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracerProvider = tp
	}
}

// withAfterFunc replaces the dismissal scheduler.
func withAfterFunc(f afterFunc) Option {
	return func(c *config) {
		c.afterFunc = f
	}
}

// withClock replaces the clock used for record timestamps.
func withClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// New returns an idle tracker. Call Close to release it.
func New(opts ...Option) *tracker {
	cfg := config{
		confirmations:    defaultConfirmations,
		dismissTimeout:   defaultDismissTimeout,
		subscriberBuffer: defaultSubscriberBuffer,
		afterFunc:        timeAfterFunc,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.meterProvider == nil {
		cfg.meterProvider = otel.GetMeterProvider()
	}
	if cfg.tracerProvider == nil {
		cfg.tracerProvider = otel.GetTracerProvider()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &tracker{
		ctx:              ctx,
		cancel:           cancel,
		pending:          make([]Transaction, 0),
		subscribers:      make(map[uint64]*subscriber),
		confirmations:    cfg.confirmations,
		dismissTimeout:   cfg.dismissTimeout,
		subscriberBuffer: cfg.subscriberBuffer,
		afterFunc:        cfg.afterFunc,
		now:              cfg.now,
		tracer:           cfg.tracerProvider.Tracer(instrumentationName),
		metrics:          newMetrics(cfg.meterProvider.Meter(instrumentationName)),
	}
}
