package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/gabapcia/silkroad/internal/infra/blockchain/ethereum"
	"github.com/gabapcia/silkroad/internal/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func runSwitchChain(ctx context.Context, switcher ChainSwitcher, defaults ethereum.ChainParams, args ...string) (string, error) {
	var out bytes.Buffer

	app := &cli.Command{
		Writer:   &out,
		Commands: []*cli.Command{switchChainCommand(switcher, defaults)},
	}

	err := app.Run(ctx, append([]string{"test", "switch-chain"}, args...))
	return out.String(), err
}

func TestSwitchChainCommand(t *testing.T) {
	t.Run("should have correct command metadata", func(t *testing.T) {
		// Act
		cmd := switchChainCommand(NewChainSwitcherMock(t), gnosis())

		// Assert
		assert.Equal(t, "switch-chain", cmd.Name)
		assert.Equal(t, "Switch the wallet to a chain, adding it when the wallet does not know it.", cmd.Description)
		assert.Len(t, cmd.Flags, 7)
		assert.NotNil(t, cmd.Action)
	})

	t.Run("should switch with the configured chain by default", func(t *testing.T) {
		// Arrange
		mockSwitcher := NewChainSwitcherMock(t)
		mockSwitcher.EXPECT().SwitchChain(mock.Anything, gnosis()).Return(nil).Once()

		// Act
		out, err := runSwitchChain(t.Context(), mockSwitcher, gnosis())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "switched to chain 0x64\n", out)
	})

	t.Run("should override every chain parameter from flags", func(t *testing.T) {
		// Arrange
		mockSwitcher := NewChainSwitcherMock(t)
		expected := ethereum.ChainParams{
			ChainID:   types.Hex("0x89"),
			ChainName: "Polygon",
			NativeCurrency: &ethereum.NativeCurrency{
				Name:     "POL",
				Symbol:   "POL",
				Decimals: 18,
			},
			RPCURLs:           []string{"https://polygon-rpc.com"},
			BlockExplorerURLs: []string{"https://polygonscan.com"},
		}
		mockSwitcher.EXPECT().SwitchChain(mock.Anything, expected).Return(nil).Once()

		// Act
		out, err := runSwitchChain(t.Context(), mockSwitcher, gnosis(),
			"--chain-id", "137",
			"--chain-name", "Polygon",
			"--currency-name", "POL",
			"--currency-symbol", "POL",
			"--rpc-url", "https://polygon-rpc.com",
			"--explorer-url", "https://polygonscan.com",
		)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "switched to chain 0x89\n", out)
	})

	t.Run("should omit the native currency when its name is empty", func(t *testing.T) {
		// Arrange
		mockSwitcher := NewChainSwitcherMock(t)
		mockSwitcher.EXPECT().
			SwitchChain(mock.Anything, mock.MatchedBy(func(p ethereum.ChainParams) bool {
				return p.NativeCurrency == nil && p.ChainID == "0x64"
			})).
			Return(nil).
			Once()

		// Act
		_, err := runSwitchChain(t.Context(), mockSwitcher, gnosis(), "--currency-name", "")

		// Assert
		assert.NoError(t, err)
	})

	t.Run("should reject decimals that do not fit a byte", func(t *testing.T) {
		// Arrange
		mockSwitcher := NewChainSwitcherMock(t)

		// Act
		_, err := runSwitchChain(t.Context(), mockSwitcher, gnosis(), "--currency-decimals", "256")

		// Assert
		assert.ErrorContains(t, err, "--currency-decimals must be at most 255")
	})

	t.Run("should reject malformed chain ids", func(t *testing.T) {
		// Arrange
		mockSwitcher := NewChainSwitcherMock(t)

		// Act
		_, err := runSwitchChain(t.Context(), mockSwitcher, gnosis(), "--chain-id", "gnosis")

		// Assert
		assert.ErrorContains(t, err, "decoding --chain-id")
	})

	t.Run("should propagate wallet errors", func(t *testing.T) {
		// Arrange
		mockSwitcher := NewChainSwitcherMock(t)
		mockSwitcher.EXPECT().SwitchChain(mock.Anything, mock.Anything).Return(assert.AnError).Once()

		// Act
		out, err := runSwitchChain(t.Context(), mockSwitcher, gnosis())

		// Assert
		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, out)
	})
}
