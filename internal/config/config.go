package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Solana    SolanaConfig
	PriceFeed PriceFeedConfig
	Render    RenderConfig
	Domains   DomainsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SolanaConfig holds chain verification configuration.
type SolanaConfig struct {
	RPCURL          string
	TreasuryAddress string
	USDCMint        string
	MaxTxAge        time.Duration
	RPCRateLimit    int
}

// PriceFeedConfig holds the upstream SOL/USD price API configuration.
type PriceFeedConfig struct {
	URL      string
	CacheTTL time.Duration
}

// RenderConfig holds the site render origin configuration.
type RenderConfig struct {
	OriginURL string
	CacheTTL  time.Duration
}

// DomainsConfig holds custom-domain verification configuration.
type DomainsConfig struct {
	TXTRecordPrefix string
	RecheckInterval time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "memeforge"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Solana: SolanaConfig{
			RPCURL:          getEnv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"),
			TreasuryAddress: getEnv("SOLANA_TREASURY_ADDRESS", ""),
			USDCMint:        getEnv("SOLANA_USDC_MINT", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"),
			MaxTxAge:        getEnvAsDuration("SOLANA_MAX_TX_AGE", 600*time.Second),
			RPCRateLimit:    getEnvAsInt("SOLANA_RPC_RATE_LIMIT", 5),
		},
		PriceFeed: PriceFeedConfig{
			URL:      getEnv("PRICE_FEED_URL", "https://api.coingecko.com/api/v3/simple/price?ids=solana&vs_currencies=usd"),
			CacheTTL: getEnvAsDuration("PRICE_FEED_CACHE_TTL", 30*time.Second),
		},
		Render: RenderConfig{
			OriginURL: getEnv("RENDER_ORIGIN_URL", "http://localhost:3000"),
			CacheTTL:  getEnvAsDuration("RENDER_CACHE_TTL", 5*time.Minute),
		},
		Domains: DomainsConfig{
			TXTRecordPrefix: getEnv("DOMAIN_TXT_RECORD_PREFIX", "_memeforge-verify"),
			RecheckInterval: getEnvAsDuration("DOMAIN_RECHECK_INTERVAL", 60*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
