package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Ethereum    EthereumConfig
	IPFS        IPFSConfig
	Generation  GenerationConfig
	Realtime    RealtimeConfig
	Logger      LoggerConfig
	CORS        CORSConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig is optional. An empty URL selects the in-memory
// repositories, which is what dev and tests run on.
type DatabaseConfig struct {
	URL      string
	MaxConns int32
}

type EthereumConfig struct {
	RPCURL      string
	ChainID     int64
	PriceAPIURL string
	RPCTimeout  time.Duration
}

type IPFSConfig struct {
	GatewayURL string
}

type GenerationConfig struct {
	MaxPromptLength int
	DefaultTimeout  time.Duration
}

type RealtimeConfig struct {
	ChainPollInterval time.Duration
	BroadcastInterval time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	Origins []string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_MAX_CONNS", 10)
	v.SetDefault("ETHEREUM_RPC_URL", "http://localhost:8545")
	v.SetDefault("ETHEREUM_CHAIN_ID", 31337)
	v.SetDefault("ETHEREUM_RPC_TIMEOUT", "5s")
	v.SetDefault("PRICE_API_URL", "https://api.coingecko.com/api/v3/simple/price?ids=ethereum&vs_currencies=usd")
	v.SetDefault("IPFS_GATEWAY_URL", "https://ipfs.io/ipfs")
	v.SetDefault("GENERATION_MAX_PROMPT", 10000)
	v.SetDefault("GENERATION_TIMEOUT_SECONDS", 60)
	v.SetDefault("CHAIN_POLL_SECONDS", 5)
	v.SetDefault("BROADCAST_SECONDS", 30)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")

	// Env
	v.AutomaticEnv()

	rpcTimeout, err := time.ParseDuration(v.GetString("ETHEREUM_RPC_TIMEOUT"))
	if err != nil {
		rpcTimeout = 5 * time.Second
	}

	cfg := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DATABASE_MAX_CONNS"),
		},
		Ethereum: EthereumConfig{
			RPCURL:      v.GetString("ETHEREUM_RPC_URL"),
			ChainID:     v.GetInt64("ETHEREUM_CHAIN_ID"),
			PriceAPIURL: v.GetString("PRICE_API_URL"),
			RPCTimeout:  rpcTimeout,
		},
		IPFS: IPFSConfig{
			GatewayURL: strings.TrimRight(v.GetString("IPFS_GATEWAY_URL"), "/"),
		},
		Generation: GenerationConfig{
			MaxPromptLength: v.GetInt("GENERATION_MAX_PROMPT"),
			DefaultTimeout:  time.Duration(v.GetInt("GENERATION_TIMEOUT_SECONDS")) * time.Second,
		},
		Realtime: RealtimeConfig{
			ChainPollInterval: time.Duration(v.GetInt("CHAIN_POLL_SECONDS")) * time.Second,
			BroadcastInterval: time.Duration(v.GetInt("BROADCAST_SECONDS")) * time.Second,
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		CORS: CORSConfig{
			Origins: strings.Split(v.GetString("CORS_ORIGINS"), ","),
		},
	}
	return cfg, nil
}
