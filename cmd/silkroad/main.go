package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gabapcia/silkroad/internal/config"
	"github.com/gabapcia/silkroad/internal/handlers/cli"
	"github.com/gabapcia/silkroad/internal/infra/blockchain/ethereum"
	"github.com/gabapcia/silkroad/internal/infra/storage/redis"
	"github.com/gabapcia/silkroad/internal/pkg/logger"
	"github.com/gabapcia/silkroad/internal/pkg/telemetry"
	transporthttp "github.com/gabapcia/silkroad/internal/pkg/transport/http"
	"github.com/gabapcia/silkroad/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/silkroad/internal/txfeed"
	"github.com/gabapcia/silkroad/internal/txtracker"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "silkroad:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Init(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			return fmt.Errorf("initializing telemetry: %w", err)
		}
		defer shutdown(context.WithoutCancel(ctx))
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	httpClient := transporthttp.NewClient(transporthttp.WithTimeout(cfg.HTTPTimeout))
	node := ethereum.NewClient(
		jsonrpc.NewClient(httpClient, cfg.NodeRPCURL),
		ethereum.WithMaxWaitBlocks(cfg.Tracker.WaitBlocks),
	)
	wallet := ethereum.NewClient(jsonrpc.NewClient(httpClient, cfg.WalletRPCURL))

	tracker := txtracker.New(
		txtracker.WithConfirmations(cfg.Tracker.Confirmations),
		txtracker.WithDismissTimeout(cfg.Tracker.DismissTimeout),
	)

	if cfg.FeedEnabled() {
		redisClient, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			tracker.Close()
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer redisClient.Close()

		feed := txfeed.New(tracker, redisClient.TxFeedPublisher(cfg.Feed.Session, cfg.Feed.StateTTL))
		if err := feed.Start(ctx); err != nil {
			tracker.Close()
			return fmt.Errorf("starting event feed: %w", err)
		}
		defer feed.Close()

		logger.Info(ctx, "relaying tracker events to redis",
			"redis.addr", cfg.Redis.Addr,
			"feed.session", cfg.Feed.Session,
		)
	}
	defer tracker.Close()

	if err := cli.Run(ctx, tracker, node, wallet, chainParams(cfg.Chain)); err != nil {
		logger.Error(ctx, "command failed", "error", err)
		return err
	}

	return nil
}

// chainParams maps the configured chain to the wallet switch parameters.
func chainParams(c config.Chain) ethereum.ChainParams {
	return ethereum.ChainParams{
		ChainID:   c.ID,
		ChainName: c.Name,
		NativeCurrency: &ethereum.NativeCurrency{
			Name:     c.CurrencyName,
			Symbol:   c.CurrencySymbol,
			Decimals: c.CurrencyDecimals,
		},
		RPCURLs:           c.RPCURLs,
		BlockExplorerURLs: c.BlockExplorerURLs,
	}
}
