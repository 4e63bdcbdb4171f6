package ethereum

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabapcia/silkroad/internal/pkg/logger"
	"github.com/gabapcia/silkroad/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/silkroad/internal/pkg/types"
	"github.com/gabapcia/silkroad/internal/pkg/validator"
)

// ErrUnknownChain is returned when the wallet does not know the chain and
// the parameters needed to add it are missing.
var ErrUnknownChain = errors.New("wallet does not know the chain")

// unrecognizedChainErrorCode is the EIP-1193 provider code for a chain
// the wallet has not been told about.
const unrecognizedChainErrorCode = 4902

// NativeCurrency describes the chain's gas token for wallet_addEthereumChain.
type NativeCurrency struct {
	Name     string `json:"name" validate:"required"`
	Symbol   string `json:"symbol" validate:"required,min=2,max=6"`
	Decimals uint8  `json:"decimals" validate:"required"`
}

// ChainParams are the EIP-3085 parameters of a chain. Only ChainID is
// needed to switch; the rest is used when the wallet has to add the chain.
type ChainParams struct {
	ChainID           types.Hex       `json:"chainId" validate:"required,hexquantity"`
	ChainName         string          `json:"chainName,omitempty" validate:"required_with=RPCURLs"`
	NativeCurrency    *NativeCurrency `json:"nativeCurrency,omitempty" validate:"required_with=RPCURLs"`
	RPCURLs           []string        `json:"rpcUrls,omitempty" validate:"omitempty,dive,url"`
	BlockExplorerURLs []string        `json:"blockExplorerUrls,omitempty" validate:"omitempty,dive,url"`
}

// canAdd reports whether p carries enough to call wallet_addEthereumChain.
func (p ChainParams) canAdd() bool {
	return p.ChainName != "" && p.NativeCurrency != nil && len(p.RPCURLs) > 0
}

// SwitchChain asks the wallet to make params.ChainID the active chain. When
// the wallet does not know the chain it is added with the full parameters,
// which also switches to it.
func (c *client) SwitchChain(ctx context.Context, params ChainParams) error {
	params.ChainID = params.ChainID.Canonical()
	if err := validator.Validate(params); err != nil {
		return err
	}

	_, err := c.conn.Fetch(ctx, "wallet_switchEthereumChain", map[string]types.Hex{"chainId": params.ChainID})
	if err == nil {
		return nil
	}

	var rpcErr *jsonrpc.Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != unrecognizedChainErrorCode {
		return err
	}

	if !params.canAdd() {
		return fmt.Errorf("%w: %s: %w", ErrUnknownChain, params.ChainID, err)
	}

	logger.Info(ctx, "chain unknown to the wallet, adding it",
		"chain.id", params.ChainID,
		"chain.name", params.ChainName,
	)

	if _, err := c.conn.Fetch(ctx, "wallet_addEthereumChain", params); err != nil {
		return fmt.Errorf("adding chain %s: %w", params.ChainID, err)
	}

	return nil
}
