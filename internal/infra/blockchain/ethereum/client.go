// Package ethereum connects the transaction tracker to EVM-compatible nodes
// and EIP-1193 wallet providers over JSON-RPC.
package ethereum

import (
	"time"

	"github.com/gabapcia/silkroad/internal/pkg/resilience/retry"
	"github.com/gabapcia/silkroad/internal/pkg/transport/jsonrpc"
)

const (
	// receiptPollInterval is the first delay between receipt lookups.
	receiptPollInterval = 2 * time.Second

	// averageBlockTime caps the backoff between receipt lookups.
	averageBlockTime = 12 * time.Second

	// defaultMaxWaitBlocks is how many blocks Wait lets pass without a
	// receipt before giving up on the transaction.
	defaultMaxWaitBlocks = 50
)

// client submits signed transactions and waits for their receipts through
// a JSON-RPC connection to a node or wallet provider.
type client struct {
	conn          jsonrpc.Client // Underlying JSON-RPC client used to interact with the node
	retry         retry.Retry    // Drives receipt polling
	maxWaitBlocks uint64         // Blocks without a receipt before Wait gives up; 0 waits forever
}

type config struct {
	retry         retry.Retry
	maxWaitBlocks uint64
}

// Option configures the client.
type Option func(*config)

// WithReceiptRetry replaces the retry policy used while waiting for receipts.
// The default polls with backoff capped at the average block time.
func WithReceiptRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithMaxWaitBlocks sets how many blocks may be mined after the first
// receipt lookup before Wait reports ErrTransactionNotMined. Zero disables
// the bound and leaves the wait to the caller's context.
func WithMaxWaitBlocks(n uint64) Option {
	return func(c *config) {
		c.maxWaitBlocks = n
	}
}

// NewClient creates a new EVM client using the provided JSON-RPC connection.
func NewClient(conn jsonrpc.Client, opts ...Option) *client {
	cfg := config{
		retry: retry.New(
			retry.WithAttempts(0),
			retry.WithDelay(receiptPollInterval),
			retry.WithMaxDelay(averageBlockTime),
		),
		maxWaitBlocks: defaultMaxWaitBlocks,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &client{
		conn:          conn,
		retry:         cfg.retry,
		maxWaitBlocks: cfg.maxWaitBlocks,
	}
}
