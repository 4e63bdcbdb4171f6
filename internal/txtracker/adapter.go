package txtracker

import (
	"context"
	"fmt"
	"slices"

	"github.com/gabapcia/silkroad/internal/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// track drives one submission through the lifecycle:
// queued -> pending -> completed, or queued -> rejected.
func (t *tracker) track(ctx context.Context, action Action, record Transaction) {
	ctx, span := t.tracer.Start(ctx, "txtracker.track", trace.WithAttributes(
		attribute.String("transaction.id", record.ID),
		attribute.String("transaction.description", record.Description),
	))
	defer span.End()

	handle, err := runAction(ctx, action)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission rejected")
		t.reject(ctx, record, err)
		return
	}

	record.Hash = handle.Hash()
	record.SubmittedAt = t.now()
	span.SetAttributes(attribute.String("transaction.hash", record.Hash))

	if !t.submit(ctx, record) {
		return
	}

	receipt, err := handle.Wait(ctx, t.confirmations)
	if err != nil {
		span.RecordError(err)
	}

	t.settle(ctx, record, receipt, err)
}

// runAction calls action and turns a missing handle, a missing hash or a
// panic into an error.
func runAction(ctx context.Context, action Action) (handle TransactionHandle, err error) {
	defer func() {
		if r := recover(); r != nil {
			handle, err = nil, fmt.Errorf("transaction action panicked: %v", r)
		}
	}()

	handle, err = action(ctx)
	switch {
	case err != nil:
		return nil, err
	case handle == nil:
		return nil, ErrNilHandle
	case handle.Hash() == "":
		return nil, ErrMissingHash
	}

	return handle, nil
}

// reject shows the failure as a warning and resets every slot.
func (t *tracker) reject(ctx context.Context, record Transaction, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	t.warning = warningMessage(err)
	t.scheduleLocked(&t.warningTimer, t.dismissWarningLocked)

	t.queued = nil
	t.pending = make([]Transaction, 0)
	t.completed = nil
	t.cancelLocked(&t.completedTimer)

	t.metrics.rejected.Add(ctx, 1)
	logger.Warn(ctx, "transaction rejected",
		"transaction.id", record.ID,
		"transaction.description", record.Description,
		"warning", t.warning,
		"error", err,
	)
	t.emitLocked(ctx, EventRejected, &record)
}

// submit moves record from queued to pending. It reports false when the
// tracker was closed meanwhile.
func (t *tracker) submit(ctx context.Context, record Transaction) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return false
	}

	if t.queued != nil && t.queued.ID == record.ID {
		t.queued = nil
	}

	if t.pendingIndexLocked(record.Hash) < 0 {
		t.pending = append(t.pending, record.clone())
	} else {
		logger.Warn(ctx, "transaction hash already pending",
			"transaction.id", record.ID,
			"transaction.hash", record.Hash,
		)
	}
	t.operationCount++

	t.metrics.submitted.Add(ctx, 1)
	logger.Info(ctx, "transaction submitted",
		"transaction.id", record.ID,
		"transaction.hash", record.Hash,
	)
	t.emitLocked(ctx, EventSubmitted, &record)
	return true
}

// settle moves record from pending to completed, whatever the outcome of
// the confirmation wait.
func (t *tracker) settle(ctx context.Context, record Transaction, receipt Receipt, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	record.SettledAt = t.now()
	record.ConfirmationErr = err
	if receipt != (Receipt{}) {
		record.Receipt = &receipt
	}

	if i := t.pendingIndexLocked(record.Hash); i >= 0 {
		t.pending = slices.Delete(t.pending, i, i+1)
	} else {
		logger.Warn(ctx, "settled transaction not found in pending, resetting state",
			"transaction.id", record.ID,
			"transaction.hash", record.Hash,
		)
		t.pending = make([]Transaction, 0)
		t.queued = nil
	}

	c := record.clone()
	t.completed = &c
	t.scheduleLocked(&t.completedTimer, t.dismissCompletedLocked)

	t.metrics.recordSettled(ctx, record)
	if err != nil {
		logger.Warn(ctx, "transaction confirmation failed",
			"transaction.id", record.ID,
			"transaction.hash", record.Hash,
			"error", err,
		)
	} else {
		logger.Info(ctx, "transaction confirmed",
			"transaction.id", record.ID,
			"transaction.hash", record.Hash,
			"transaction.block", receipt.BlockNumber,
		)
	}
	t.emitLocked(ctx, EventCompleted, &record)
}

// pendingIndexLocked returns the position of hash in pending, or -1.
func (t *tracker) pendingIndexLocked(hash string) int {
	return slices.IndexFunc(t.pending, func(tx Transaction) bool {
		return tx.Hash == hash
	})
}
