package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/gabapcia/silkroad/internal/infra/blockchain/ethereum"
	"github.com/gabapcia/silkroad/internal/pkg/types"

	"github.com/urfave/cli/v3"
)

// switchChainCommand returns a CLI command that asks the wallet to switch
// to a chain, adding it first when the wallet does not know it.
//
// Usage example:
//
//	silkroad switch-chain --chain-id 0x64 --chain-name "Gnosis Chain"
func switchChainCommand(switcher ChainSwitcher, defaults ethereum.ChainParams) *cli.Command {
	var currency ethereum.NativeCurrency
	if defaults.NativeCurrency != nil {
		currency = *defaults.NativeCurrency
	}

	return &cli.Command{
		Name:        "switch-chain",
		Description: "Switch the wallet to a chain, adding it when the wallet does not know it.",
		Usage:       "Switches the wallet's active chain. Chain parameters default to the configured chain.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "chain-id",
				Usage: "Chain id, hex (0x64) or decimal (100)",
				Value: defaults.ChainID.String(),
			},
			&cli.StringFlag{
				Name:  "chain-name",
				Usage: "Chain name shown by the wallet",
				Value: defaults.ChainName,
			},
			&cli.StringFlag{
				Name:  "currency-name",
				Usage: "Native currency name",
				Value: currency.Name,
			},
			&cli.StringFlag{
				Name:  "currency-symbol",
				Usage: "Native currency symbol",
				Value: currency.Symbol,
			},
			&cli.UintFlag{
				Name:  "currency-decimals",
				Usage: "Native currency decimals",
				Value: uint(currency.Decimals),
			},
			&cli.StringSliceFlag{
				Name:  "rpc-url",
				Usage: "RPC endpoint the wallet should use for the chain (repeatable)",
				Value: defaults.RPCURLs,
			},
			&cli.StringSliceFlag{
				Name:  "explorer-url",
				Usage: "Block explorer of the chain (repeatable)",
				Value: defaults.BlockExplorerURLs,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var chainID types.Hex
			if err := chainID.Decode(c.String("chain-id")); err != nil {
				return fmt.Errorf("decoding --chain-id: %w", err)
			}

			decimals := c.Uint("currency-decimals")
			if decimals > math.MaxUint8 {
				return fmt.Errorf("--currency-decimals must be at most %d", math.MaxUint8)
			}

			params := ethereum.ChainParams{
				ChainID:           chainID,
				ChainName:         c.String("chain-name"),
				RPCURLs:           c.StringSlice("rpc-url"),
				BlockExplorerURLs: c.StringSlice("explorer-url"),
			}
			if name := c.String("currency-name"); name != "" {
				params.NativeCurrency = &ethereum.NativeCurrency{
					Name:     name,
					Symbol:   c.String("currency-symbol"),
					Decimals: uint8(decimals),
				}
			}

			if err := switcher.SwitchChain(ctx, params); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "switched to chain %s\n", chainID.Canonical())
			return nil
		},
	}
}
