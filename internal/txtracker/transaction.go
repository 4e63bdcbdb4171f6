package txtracker

import (
	"context"
	"encoding/json"
	"maps"
	"time"
)

// Receipt is the settled value of a confirmation wait.
type Receipt struct {
	TransactionHash string `json:"transaction_hash"`
	BlockNumber     uint64 `json:"block_number"`
	BlockHash       string `json:"block_hash"`
	Confirmations   uint64 `json:"confirmations"` // blocks observed on top of (and including) the inclusion block
	Succeeded       bool   `json:"succeeded"`     // execution status reported by the node
}

// TransactionHandle is a transaction that was accepted by the wallet or node
// and therefore has a hash.
type TransactionHandle interface {
	// Hash returns the on-chain transaction identifier.
	Hash() string

	// Wait blocks until the transaction has the given number of block
	// confirmations, or until ctx is done. A non-nil error does not imply
	// the receipt is empty: a reverted transaction is reported with both.
	Wait(ctx context.Context, confirmations uint64) (Receipt, error)
}

// Action submits a transaction and returns its handle once the wallet or
// network accepted it. Returning an error means the submission was rejected
// (user declined, provider error, ...).
type Action func(ctx context.Context) (TransactionHandle, error)

// Transaction is one blockchain transaction followed by the tracker.
type Transaction struct {
	ID          string         // UUIDv7 assigned at enqueue time
	Description string         // Human-readable label
	Meta        map[string]any // Caller-supplied context, never interpreted
	Hash        string         // Known once the action produced a handle

	QueuedAt    time.Time
	SubmittedAt time.Time
	SettledAt   time.Time

	// Receipt and ConfirmationErr hold what the confirmation wait settled
	// with. They do not influence the state transitions.
	Receipt         *Receipt
	ConfirmationErr error
}

// clone returns a copy that shares no mutable data with t.
func (t Transaction) clone() Transaction {
	c := t
	c.Meta = maps.Clone(t.Meta)
	if t.Receipt != nil {
		r := *t.Receipt
		c.Receipt = &r
	}
	return c
}

// MarshalJSON renders the transaction with its confirmation error as text.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type view struct {
		ID              string         `json:"id"`
		Description     string         `json:"description"`
		Meta            map[string]any `json:"meta,omitempty"`
		Hash            string         `json:"hash,omitempty"`
		QueuedAt        time.Time      `json:"queued_at"`
		SubmittedAt     *time.Time     `json:"submitted_at,omitempty"`
		SettledAt       *time.Time     `json:"settled_at,omitempty"`
		Receipt         *Receipt       `json:"receipt,omitempty"`
		ConfirmationErr string         `json:"confirmation_error,omitempty"`
	}

	v := view{
		ID:          t.ID,
		Description: t.Description,
		Meta:        t.Meta,
		Hash:        t.Hash,
		QueuedAt:    t.QueuedAt,
		Receipt:     t.Receipt,
	}
	if !t.SubmittedAt.IsZero() {
		v.SubmittedAt = &t.SubmittedAt
	}
	if !t.SettledAt.IsZero() {
		v.SettledAt = &t.SettledAt
	}
	if t.ConfirmationErr != nil {
		v.ConfirmationErr = t.ConfirmationErr.Error()
	}

	return json.Marshal(v)
}

// State is a point-in-time snapshot of the tracker.
type State struct {
	Queued         *Transaction  `json:"queued"`          // At most one submission awaiting a hash
	Pending        []Transaction `json:"pending"`         // Hashed transactions awaiting confirmation, unique by hash
	Completed      *Transaction  `json:"completed"`       // Most recently settled transaction, dismissed after a delay
	Warning        string        `json:"warning"`         // Most recent rejection message, dismissed after a delay
	OperationCount uint64        `json:"operation_count"` // Number of enqueue and submit transitions so far
}

// Busy reports whether a submission is queued or a transaction is pending.
func (s State) Busy() bool {
	return len(s.Pending) > 0 || s.Queued != nil
}
