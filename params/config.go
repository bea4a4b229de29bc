package params

import (
	"os"

	"github.com/joho/godotenv"
)

type Market struct {
	OrderAsset string // e.g. "BTC"
	PriceAsset string // e.g. "USD"
	// Signer is the account the host signs calls with when no per-call
	// identity is available (devnet mode).
	Signer string
}

type Node struct {
	ListenAddr string
	DataDir    string
	LogFile    string
}

type Config struct {
	Market Market
	Node   Node
}

func Default() Config {
	return Config{
		Market: Market{
			OrderAsset: "BTC",
			PriceAsset: "USD",
			Signer:     "dev.near",
		},
		Node: Node{
			ListenAddr: ":8080",
			DataDir:    "data/market.db",
			LogFile:    "data/market.log",
		},
	}
}

// LoadFromEnv loads configuration from a .env file (if present) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	cfg.Market.OrderAsset = getEnv("MARKET_ORDER_ASSET", cfg.Market.OrderAsset)
	cfg.Market.PriceAsset = getEnv("MARKET_PRICE_ASSET", cfg.Market.PriceAsset)
	cfg.Market.Signer = getEnv("MARKET_SIGNER", cfg.Market.Signer)
	cfg.Node.ListenAddr = getEnv("LISTEN", cfg.Node.ListenAddr)
	cfg.Node.DataDir = getEnv("DATA_DIR", cfg.Node.DataDir)
	cfg.Node.LogFile = getEnv("LOG_FILE", cfg.Node.LogFile)

	return cfg
}

// getEnv returns an environment variable value or the default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
