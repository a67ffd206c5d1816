// Package config loads herald daemon settings from flags, environment and a YAML profile.
package config

import "time"

const (
	SourceIndexer = "indexer"
	SourceNode    = "node"
)

// Options are the flat settings read from flags and HERALD_* environment variables.
type Options struct {
	Network string `long:"network" env:"HERALD_NETWORK" default:"mainnet" description:"network name used for locks, history and metrics" validate:"required"`
	Source  string `long:"source" env:"HERALD_SOURCE" default:"indexer" choice:"indexer" choice:"node" description:"where blocks are read from" validate:"oneof=indexer node"`
	Profile string `long:"profile" env:"HERALD_PROFILE" description:"YAML herald profile (miners, Cashtab reward senders, tickers)"`
	LogJSON bool   `long:"log-json" env:"HERALD_LOG_JSON" description:"log JSON instead of console output"`

	IndexerURL  string `long:"indexer-url" env:"HERALD_INDEXER_URL" description:"indexer JSON API base URL" validate:"required_if=Source indexer,omitempty,url"`
	RPCURL      string `long:"rpc-url" env:"HERALD_RPC_URL" default:"http://127.0.0.1:8332" description:"node RPC URL" validate:"required_if=Source node,omitempty,url"`
	RPCUser     string `long:"rpc-user" env:"HERALD_RPC_USER" description:"node RPC username"`
	RPCPassword string `long:"rpc-password" env:"HERALD_RPC_PASSWORD" description:"node RPC password"`
	ZMQAddr     string `long:"zmq-addr" env:"HERALD_ZMQ_ADDR" description:"node ZMQ hashblock endpoint (zmq builds only)"`

	PriceURL    string `long:"price-url" env:"HERALD_PRICE_URL" default:"https://api.coingecko.com/api/v3" description:"CoinGecko API base URL; empty disables prices" validate:"omitempty,url"`
	PriceAPIKey string `long:"price-api-key" env:"HERALD_PRICE_API_KEY" description:"CoinGecko demo API key"`
	Fiat        string `long:"fiat" env:"HERALD_FIAT" default:"usd" description:"fiat currency for prices" validate:"required,alpha"`

	TelegramURL       string `long:"telegram-url" env:"HERALD_TELEGRAM_URL" default:"https://api.telegram.org" description:"Telegram Bot API base URL" validate:"omitempty,url"`
	TelegramToken     string `long:"telegram-token" env:"HERALD_TELEGRAM_TOKEN" description:"Telegram bot token"`
	TelegramChatID    string `long:"telegram-chat-id" env:"HERALD_TELEGRAM_CHAT_ID" description:"Telegram channel or chat id" validate:"required_with=TelegramToken"`
	TelegramPerMinute int    `long:"telegram-per-minute" env:"HERALD_TELEGRAM_PER_MINUTE" default:"20" description:"Telegram messages per minute" validate:"gte=1,lte=60"`
	TelegramSilent    bool   `long:"telegram-silent" env:"HERALD_TELEGRAM_SILENT" description:"post without notifications"`

	NATSURL     string `long:"nats-url" env:"HERALD_NATS_URL" description:"NATS server URL; empty disables NATS delivery"`
	NATSSubject string `long:"nats-subject" env:"HERALD_NATS_SUBJECT" default:"ecash.herald" description:"NATS subject"`

	RedisAddr     string        `long:"redis-addr" env:"HERALD_REDIS_ADDR" description:"Redis address for the processing lock; empty runs single-instance" validate:"omitempty,hostname_port"`
	RedisUsername string        `long:"redis-username" env:"HERALD_REDIS_USERNAME" description:"Redis username"`
	RedisPassword string        `long:"redis-password" env:"HERALD_REDIS_PASSWORD" description:"Redis password"`
	RedisDB       int           `long:"redis-db" env:"HERALD_REDIS_DB" default:"0" description:"Redis database" validate:"gte=0"`
	LockTTL       time.Duration `long:"lock-ttl" env:"HERALD_LOCK_TTL" default:"5m" description:"processing lock TTL" validate:"gte=1s"`

	ClickhouseDSN string `long:"clickhouse-dsn" env:"HERALD_CLICKHOUSE_DSN" description:"ClickHouse DSN for herald history; empty disables history"`

	MetricsAddr string `long:"metrics-addr" env:"HERALD_METRICS_ADDR" default:":2112" description:"admin HTTP address (metrics, history)"`
	HealthAddr  string `long:"health-addr" env:"HERALD_HEALTH_ADDR" default:":8090" description:"gRPC health address; empty disables it"`

	PollInterval     time.Duration `long:"poll-interval" env:"HERALD_POLL_INTERVAL" default:"10s" description:"chain tip poll interval" validate:"gt=0"`
	StartHeight      uint64        `long:"start-height" env:"HERALD_START_HEIGHT" description:"first height to herald; 0 starts at the tip"`
	MaxMessageLength int           `long:"max-message-length" env:"HERALD_MAX_MESSAGE_LENGTH" default:"4096" description:"maximum characters per message" validate:"gte=64"`
	MaxMessages      int           `long:"max-messages" env:"HERALD_MAX_MESSAGES" default:"3" description:"messages per block before transfers are summarized; 0 is unbounded" validate:"gte=0"`
	Workers          int           `long:"workers" env:"HERALD_WORKERS" default:"8" description:"concurrent classification and lookup workers" validate:"gte=1,lte=256"`
	HTTPTimeout      time.Duration `long:"http-timeout" env:"HERALD_HTTP_TIMEOUT" default:"10s" description:"timeout for outbound HTTP requests" validate:"gt=0"`
}

// TelegramEnabled reports whether Telegram delivery is configured.
func (o Options) TelegramEnabled() bool {
	return o.TelegramToken != ""
}

// NATSEnabled reports whether NATS delivery is configured.
func (o Options) NATSEnabled() bool {
	return o.NATSURL != ""
}
