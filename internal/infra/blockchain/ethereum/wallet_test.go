package ethereum

import (
	"testing"

	"github.com/gabapcia/silkroad/internal/pkg/transport/jsonrpc"
	jsonrpctest "github.com/gabapcia/silkroad/internal/pkg/transport/jsonrpc/mocks"
	"github.com/gabapcia/silkroad/internal/pkg/types"
	"github.com/gabapcia/silkroad/internal/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func gnosisChain() ChainParams {
	return ChainParams{
		ChainID:   types.Hex("0x64"),
		ChainName: "Gnosis Chain",
		NativeCurrency: &NativeCurrency{
			Name:     "Gnosis",
			Symbol:   "xDAI",
			Decimals: 18,
		},
		RPCURLs:           []string{"https://rpc.xdaichain.com"},
		BlockExplorerURLs: []string{"https://blockscout.com/xdai/mainnet"},
	}
}

func TestClient_SwitchChain(t *testing.T) {
	switchParams := map[string]types.Hex{"chainId": "0x64"}

	t.Run("switches to a known chain", func(t *testing.T) {
		mockConn := jsonrpctest.NewClient(t)
		mockConn.EXPECT().
			Fetch(mock.Anything, "wallet_switchEthereumChain", switchParams).
			Return(nil, nil).
			Once()

		err := NewClient(mockConn).SwitchChain(t.Context(), gnosisChain())

		assert.NoError(t, err)
	})

	t.Run("chain id is canonicalized before the call", func(t *testing.T) {
		mockConn := jsonrpctest.NewClient(t)
		mockConn.EXPECT().
			Fetch(mock.Anything, "wallet_switchEthereumChain", switchParams).
			Return(nil, nil).
			Once()

		err := NewClient(mockConn).SwitchChain(t.Context(), ChainParams{ChainID: "0x0064"})

		assert.NoError(t, err)
	})

	t.Run("adds the chain when the wallet does not know it", func(t *testing.T) {
		unrecognized := &jsonrpc.Error{Code: unrecognizedChainErrorCode, Message: "Unrecognized chain ID \"0x64\""}

		mockConn := jsonrpctest.NewClient(t)
		mockConn.EXPECT().
			Fetch(mock.Anything, "wallet_switchEthereumChain", switchParams).
			Return(nil, unrecognized).
			Once()
		mockConn.EXPECT().
			Fetch(mock.Anything, "wallet_addEthereumChain", gnosisChain()).
			Return(nil, nil).
			Once()

		err := NewClient(mockConn).SwitchChain(t.Context(), gnosisChain())

		assert.NoError(t, err)
	})

	t.Run("adding the chain fails", func(t *testing.T) {
		mockConn := jsonrpctest.NewClient(t)
		mockConn.EXPECT().
			Fetch(mock.Anything, "wallet_switchEthereumChain", switchParams).
			Return(nil, &jsonrpc.Error{Code: unrecognizedChainErrorCode}).
			Once()
		mockConn.EXPECT().
			Fetch(mock.Anything, "wallet_addEthereumChain", gnosisChain()).
			Return(nil, &jsonrpc.Error{Code: 4001, Message: "User rejected the request."}).
			Once()

		err := NewClient(mockConn).SwitchChain(t.Context(), gnosisChain())

		assert.ErrorIs(t, err, jsonrpc.ErrProviderReturnedError)
		assert.ErrorContains(t, err, "adding chain 0x64")
	})

	t.Run("unknown chain without parameters to add it", func(t *testing.T) {
		mockConn := jsonrpctest.NewClient(t)
		mockConn.EXPECT().
			Fetch(mock.Anything, "wallet_switchEthereumChain", switchParams).
			Return(nil, &jsonrpc.Error{Code: unrecognizedChainErrorCode}).
			Once()

		err := NewClient(mockConn).SwitchChain(t.Context(), ChainParams{ChainID: "0x64"})

		assert.ErrorIs(t, err, ErrUnknownChain)
		assert.ErrorIs(t, err, jsonrpc.ErrProviderReturnedError)
	})

	t.Run("other provider errors are returned as is", func(t *testing.T) {
		rejected := &jsonrpc.Error{Code: 4001, Message: "User rejected the request."}

		mockConn := jsonrpctest.NewClient(t)
		mockConn.EXPECT().
			Fetch(mock.Anything, "wallet_switchEthereumChain", switchParams).
			Return(nil, rejected).
			Once()

		err := NewClient(mockConn).SwitchChain(t.Context(), gnosisChain())

		assert.Same(t, rejected, err)
	})

	t.Run("invalid parameters are not sent", func(t *testing.T) {
		mockConn := jsonrpctest.NewClient(t)

		tests := []ChainParams{
			{},
			{ChainID: "0x64", RPCURLs: []string{"https://rpc.xdaichain.com"}},
			{ChainID: "0x64", ChainName: "Gnosis", NativeCurrency: &NativeCurrency{Name: "Gnosis", Symbol: "x", Decimals: 18}, RPCURLs: []string{"https://rpc.xdaichain.com"}},
			{ChainID: "0x64", RPCURLs: []string{"not a url"}, ChainName: "Gnosis", NativeCurrency: gnosisChain().NativeCurrency},
		}

		for _, params := range tests {
			err := NewClient(mockConn).SwitchChain(t.Context(), params)

			assert.ErrorIs(t, err, validator.ErrValidationFailed)
		}
	})
}
