package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/princesinha19/nearbook/params"
	"github.com/princesinha19/nearbook/pkg/api"
	"github.com/princesinha19/nearbook/pkg/contract"
	"github.com/princesinha19/nearbook/pkg/settlement"
	"github.com/princesinha19/nearbook/pkg/storage"
	"github.com/princesinha19/nearbook/pkg/util"
)

func main() {
	cfg := params.LoadFromEnv("")

	logger, err := util.NewLoggerWithFile(cfg.Node.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	orderAsset, err := contract.ParseAsset(cfg.Market.OrderAsset)
	if err != nil {
		sugar.Fatalw("bad_order_asset", "err", err)
	}
	priceAsset, err := contract.ParseAsset(cfg.Market.PriceAsset)
	if err != nil {
		sugar.Fatalw("bad_price_asset", "err", err)
	}

	store, err := storage.NewMarketStore(cfg.Node.DataDir)
	if err != nil {
		sugar.Fatalw("store_open_failed", "path", cfg.Node.DataDir, "err", err)
	}
	defer store.Close()

	ledger := settlement.NewLedger(logger)

	market, err := contract.NewMarket(orderAsset, priceAsset, contract.Options{
		Env:     contract.HostEnv{Signer: cfg.Market.Signer, Clock: util.RealClock{}},
		Store:   store,
		Settler: ledger,
		Logger:  logger,
	})
	if err != nil {
		sugar.Fatalw("market_init_failed", "err", err)
	}

	sugar.Infow("market_ready",
		"pair", cfg.Market.OrderAsset+"/"+cfg.Market.PriceAsset,
		"state_root", market.StateRoot().Hex())

	server := api.NewServer(market, ledger, logger)
	go func() {
		if err := server.Start(cfg.Node.ListenAddr); err != nil {
			sugar.Fatalw("api_server_failed", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	sugar.Info("shutting down")
}
