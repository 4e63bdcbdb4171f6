package ethereum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabapcia/silkroad/internal/pkg/resilience/retry"
	"github.com/gabapcia/silkroad/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/silkroad/internal/pkg/types"
	"github.com/gabapcia/silkroad/internal/txtracker"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

var (
	// ErrInvalidTransaction is returned when the raw bytes are not a signed transaction.
	ErrInvalidTransaction = errors.New("invalid raw transaction")

	// ErrHashMismatch is returned when the node reports a hash different from
	// the one computed from the signed payload.
	ErrHashMismatch = errors.New("node returned a different transaction hash")

	// ErrTransactionReverted is returned by Wait, alongside the receipt, when
	// the transaction was mined with a failed status.
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrTransactionNotMined is returned by Wait when the configured number
	// of blocks passed without a receipt for the transaction.
	ErrTransactionNotMined = errors.New("transaction not mined")

	// errReceiptNotFound and errNotConfirmed keep the receipt polling going.
	errReceiptNotFound = errors.New("receipt not found")
	errNotConfirmed    = errors.New("not enough confirmations")
)

// receiptStatusSuccessful is the receipt status of a transaction that did not revert.
const receiptStatusSuccessful = 1

// ReceiptResponse is the subset of eth_getTransactionReceipt the tracker uses.
type ReceiptResponse struct {
	TransactionHash string    `json:"transactionHash"`
	BlockHash       string    `json:"blockHash"`
	BlockNumber     types.Hex `json:"blockNumber"`
	Status          types.Hex `json:"status"`
}

// toReceipt converts the node receipt, given the latest block number.
func (r ReceiptResponse) toReceipt(latest uint64) txtracker.Receipt {
	var confirmations uint64
	if included := r.BlockNumber.Uint64(); latest >= included {
		confirmations = latest - included + 1
	}

	return txtracker.Receipt{
		TransactionHash: r.TransactionHash,
		BlockNumber:     r.BlockNumber.Uint64(),
		BlockHash:       r.BlockHash,
		Confirmations:   confirmations,
		Succeeded:       r.Status.Uint64() == receiptStatusSuccessful,
	}
}

// handle is a submitted transaction waiting to be confirmed.
type handle struct {
	client *client
	hash   string
}

var _ txtracker.TransactionHandle = (*handle)(nil)

// Hash implements txtracker.TransactionHandle.
func (h *handle) Hash() string {
	return h.hash
}

// Wait implements txtracker.TransactionHandle. It polls the node until the
// receipt has the requested number of confirmations, including the block
// the transaction was mined in. Provider errors end the wait, and so does a
// receipt still missing after the client's block bound.
func (h *handle) Wait(ctx context.Context, confirmations uint64) (txtracker.Receipt, error) {
	var (
		receipt txtracker.Receipt
		start   *uint64 // block number at the first lookup without a receipt
	)

	err := h.client.retry.Execute(ctx, func() error {
		r, err := h.client.getTransactionReceipt(ctx, h.hash)
		if errors.Is(err, errReceiptNotFound) && h.client.maxWaitBlocks > 0 {
			latest, err := h.client.getLatestBlockNumber(ctx)
			if err != nil {
				return err
			}

			current := latest.Uint64()
			if start == nil {
				start = &current
			}

			if current > *start && current-*start > h.client.maxWaitBlocks {
				return retry.Permanent(fmt.Errorf("%w: %s after %d blocks", ErrTransactionNotMined, h.hash, current-*start))
			}

			return errReceiptNotFound
		}
		if err != nil {
			return err
		}

		latest, err := h.client.getLatestBlockNumber(ctx)
		if err != nil {
			return err
		}

		receipt = r.toReceipt(latest.Uint64())
		if receipt.Confirmations < confirmations {
			return errNotConfirmed
		}

		return nil
	})
	if err != nil {
		return receipt, err
	}

	if !receipt.Succeeded {
		return receipt, fmt.Errorf("%w: %s", ErrTransactionReverted, h.hash)
	}

	return receipt, nil
}

// stopOnProviderError marks JSON-RPC error responses as permanent. Only
// transport failures are worth polling again.
func stopOnProviderError(err error) error {
	if errors.Is(err, jsonrpc.ErrProviderReturnedError) {
		return retry.Permanent(err)
	}

	return err
}

// getTransactionReceipt fetches the receipt of hash. A receipt that is not
// available yet is reported as errReceiptNotFound.
func (c *client) getTransactionReceipt(ctx context.Context, hash string) (ReceiptResponse, error) {
	data, err := c.conn.Fetch(ctx, "eth_getTransactionReceipt", hash)
	if err != nil {
		return ReceiptResponse{}, stopOnProviderError(err)
	}

	var receipt *ReceiptResponse
	if err := json.Unmarshal(data, &receipt); err != nil {
		return ReceiptResponse{}, retry.Permanent(fmt.Errorf("decoding receipt: %w", err))
	}

	if receipt == nil || receipt.BlockHash == "" {
		return ReceiptResponse{}, errReceiptNotFound
	}

	return *receipt, nil
}

// getLatestBlockNumber fetches the latest block number from the node.
func (c *client) getLatestBlockNumber(ctx context.Context) (types.Hex, error) {
	data, err := c.conn.Fetch(ctx, "eth_blockNumber")
	if err != nil {
		return "", stopOnProviderError(err)
	}

	var blockNumber types.Hex
	if err := json.Unmarshal(data, &blockNumber); err != nil {
		return "", retry.Permanent(fmt.Errorf("decoding block number: %w", err))
	}

	return blockNumber, nil
}

// SendRawTransaction submits a signed, RLP or typed-envelope encoded
// transaction with eth_sendRawTransaction and returns its handle.
func (c *client) SendRawTransaction(ctx context.Context, raw []byte) (txtracker.TransactionHandle, error) {
	tx := new(ethtypes.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
	}

	data, err := c.conn.Fetch(ctx, "eth_sendRawTransaction", hexutil.Encode(raw))
	if err != nil {
		return nil, err
	}

	var nodeHash common.Hash
	if err := json.Unmarshal(data, &nodeHash); err != nil {
		return nil, fmt.Errorf("decoding transaction hash: %w", err)
	}

	if nodeHash != tx.Hash() {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrHashMismatch, nodeHash.Hex(), tx.Hash().Hex())
	}

	return &handle{client: c, hash: tx.Hash().Hex()}, nil
}

// SubmitAction returns a tracker action that sends raw when run.
func (c *client) SubmitAction(raw []byte) txtracker.Action {
	return func(ctx context.Context) (txtracker.TransactionHandle, error) {
		return c.SendRawTransaction(ctx, raw)
	}
}
