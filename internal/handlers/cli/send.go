package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gabapcia/silkroad/internal/pkg/x/chflow"
	"github.com/gabapcia/silkroad/internal/txtracker"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v3"
)

var (
	// ErrTransactionRejected is returned when the wallet or node refused the submission.
	ErrTransactionRejected = errors.New("transaction rejected")

	// ErrTrackerClosed is returned when the tracker stopped before the transaction settled.
	ErrTrackerClosed = errors.New("tracker closed before the transaction settled")

	// ErrInvalidMeta is returned for a --meta value that is not key=value.
	ErrInvalidMeta = errors.New("meta must be formatted as key=value")
)

// sendTransactionCommand returns a CLI command that submits a signed raw
// transaction through the tracker and prints every lifecycle event until
// the completed record (or the warning) is dismissed.
//
// Usage example:
//
//	silkroad send --raw 0x02f8... --description "Buy token #7" --meta token=7
func sendTransactionCommand(tracker txtracker.Tracker, sender TransactionSender) *cli.Command {
	return &cli.Command{
		Name:        "send",
		Description: "Submit a signed transaction and follow it until it settles.",
		Usage:       "Sends a raw transaction and waits for its confirmation. Terminates early on Ctrl+C or termination signals.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "raw",
				Usage:    "Signed transaction, hex encoded with 0x prefix",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Human-readable label of the transaction",
				Value: "transaction",
			},
			&cli.StringSliceFlag{
				Name:  "meta",
				Usage: "Context attached to the transaction, as key=value (repeatable)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			raw, err := hexutil.Decode(c.String("raw"))
			if err != nil {
				return fmt.Errorf("decoding --raw: %w", err)
			}

			meta, err := parseMeta(c.StringSlice("meta"))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			events := tracker.Subscribe(ctx)
			tracker.Enqueue(ctx, sender.SubmitAction(raw), c.String("description"), meta)

			return awaitSettlement(ctx, c.Root().Writer, events)
		},
	}
}

// parseMeta converts key=value pairs into the opaque meta map.
func parseMeta(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	meta := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMeta, pair)
		}

		meta[key] = value
	}

	return meta, nil
}

// awaitSettlement prints events until the tracker is idle again and the
// outcome was dismissed. It returns the outcome of the submission.
func awaitSettlement(ctx context.Context, w io.Writer, events <-chan txtracker.Event) error {
	var outcome error

	for {
		ev, ok := chflow.Receive(ctx, events)
		if !ok {
			if err := ctx.Err(); err != nil {
				return err
			}
			return ErrTrackerClosed
		}

		renderEvent(w, ev)

		switch ev.Kind {
		case txtracker.EventRejected:
			outcome = fmt.Errorf("%w: %s", ErrTransactionRejected, ev.State.Warning)
		case txtracker.EventCompleted:
			outcome = nil
			if err := ev.Transaction.ConfirmationErr; err != nil {
				outcome = fmt.Errorf("transaction %s: %w", ev.Transaction.Hash, err)
			}
		case txtracker.EventCompletionDismissed, txtracker.EventWarningDismissed:
			if !ev.State.Busy() {
				return outcome
			}
		}
	}
}

// renderEvent writes one line per event.
func renderEvent(w io.Writer, ev txtracker.Event) {
	var detail string

	tx := ev.Transaction
	if tx == nil {
		tx = &txtracker.Transaction{}
	}

	switch ev.Kind {
	case txtracker.EventQueued:
		detail = tx.Description
	case txtracker.EventSubmitted, txtracker.EventCompletionDismissed:
		detail = tx.Hash
	case txtracker.EventCompleted:
		detail = tx.Hash
		if r := tx.Receipt; r != nil {
			detail += fmt.Sprintf(" block=%d confirmations=%d", r.BlockNumber, r.Confirmations)
		}
		if err := tx.ConfirmationErr; err != nil {
			detail += fmt.Sprintf(" error=%q", err.Error())
		}
	case txtracker.EventRejected:
		detail = ev.State.Warning
	}

	fmt.Fprintf(w, "[%d] %-20s %s\n", ev.Seq, ev.Kind, detail)
}
