package cli

import (
	"context"
	"os"

	"github.com/gabapcia/silkroad/internal/infra/blockchain/ethereum"
	"github.com/gabapcia/silkroad/internal/txtracker"

	"github.com/urfave/cli/v3"
)

// TransactionSender turns a signed raw transaction into a tracker action.
type TransactionSender interface {
	SubmitAction(raw []byte) txtracker.Action
}

// ChainSwitcher switches the wallet's active chain.
type ChainSwitcher interface {
	SwitchChain(ctx context.Context, params ethereum.ChainParams) error
}

// Run initializes and executes the silkroad CLI application.
//
// It registers all available commands, including:
//
//   - `send`: Submits a signed transaction and follows it until it settles.
//   - `switch-chain`: Makes the wallet switch to (or add) a chain.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - tracker: The transaction tracker the send command enqueues into.
//   - sender: Builds the action that submits the raw transaction.
//   - switcher: The wallet used by switch-chain.
//   - chain: Default chain parameters for switch-chain flags.
func Run(ctx context.Context, tracker txtracker.Tracker, sender TransactionSender, switcher ChainSwitcher, chain ethereum.ChainParams) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "silkroad",
		Description:           "Command-line interface for submitting and following SilkRoad wallet transactions.",
		Usage:                 "silkroad [command] [flags]",
		Commands: []*cli.Command{
			sendTransactionCommand(tracker, sender),
			switchChainCommand(switcher, chain),
		},
	}

	return app.Run(ctx, os.Args)
}
