// Package config loads the process configuration from SILKROAD_* environment
// variables.
package config

import (
	"time"

	"github.com/gabapcia/silkroad/internal/pkg/types"
	"github.com/gabapcia/silkroad/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix prefixes every variable, e.g. SILKROAD_NODE_RPC_URL.
const envPrefix = "silkroad"

// Chain describes the chain the wallet is switched to. The defaults are
// Gnosis Chain, the network SilkRoad collections are deployed on.
type Chain struct {
	ID                types.Hex `envconfig:"ID" default:"0x64" validate:"required"`
	Name              string    `envconfig:"NAME" default:"Gnosis Chain" validate:"required"`
	CurrencyName      string    `envconfig:"CURRENCY_NAME" default:"Gnosis" validate:"required"`
	CurrencySymbol    string    `envconfig:"CURRENCY_SYMBOL" default:"xDAI" validate:"required,min=2,max=6"`
	CurrencyDecimals  uint8     `envconfig:"CURRENCY_DECIMALS" default:"18" validate:"required"`
	RPCURLs           []string  `envconfig:"RPC_URLS" default:"https://rpc.xdaichain.com" validate:"dive,url"`
	BlockExplorerURLs []string  `envconfig:"EXPLORER_URLS" default:"https://blockscout.com/xdai/mainnet" validate:"dive,url"`
}

// Tracker configures the transaction tracker.
type Tracker struct {
	Confirmations  uint64        `envconfig:"CONFIRMATIONS" default:"1" validate:"min=1"`
	DismissTimeout time.Duration `envconfig:"DISMISS_TIMEOUT" default:"3s" validate:"gt=0"`

	// WaitBlocks is how many blocks may pass without a receipt before a
	// transaction is reported as not mined. Zero waits indefinitely.
	WaitBlocks uint64 `envconfig:"WAIT_BLOCKS" default:"50"`
}

// Redis configures the event feed storage. The feed is disabled when Addr is empty.
type Redis struct {
	Addr     string `envconfig:"ADDR" validate:"omitempty,hostname_port"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0" validate:"min=0"`
}

// Feed configures how tracker events are published.
type Feed struct {
	Session  string        `envconfig:"SESSION" default:"default" validate:"required"`
	StateTTL time.Duration `envconfig:"STATE_TTL" default:"1h" validate:"min=0"`
}

// Telemetry configures the OpenTelemetry exporters. The OTLP endpoint itself
// is read by the exporters from the standard OTEL_EXPORTER_OTLP_* variables.
type Telemetry struct {
	Enabled     bool   `envconfig:"ENABLED" default:"false"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"silkroad" validate:"required"`
}

// Config is the full process configuration.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// NodeRPCURL is the JSON-RPC endpoint transactions are sent to and
	// receipts are read from.
	NodeRPCURL string `envconfig:"NODE_RPC_URL" required:"true" validate:"required,url"`

	// WalletRPCURL is the EIP-1193 provider bridge used for wallet_* methods.
	// Defaults to NodeRPCURL.
	WalletRPCURL string `envconfig:"WALLET_RPC_URL" validate:"omitempty,url"`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s" validate:"gt=0"`

	Chain     Chain     `envconfig:"CHAIN"`
	Tracker   Tracker   `envconfig:"TRACKER"`
	Redis     Redis     `envconfig:"REDIS"`
	Feed      Feed      `envconfig:"FEED"`
	Telemetry Telemetry `envconfig:"TELEMETRY"`
}

// FeedEnabled reports whether tracker events should be relayed to Redis.
func (c Config) FeedEnabled() bool {
	return c.Redis.Addr != ""
}

// Load reads and validates the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.WalletRPCURL == "" {
		cfg.WalletRPCURL = cfg.NodeRPCURL
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
