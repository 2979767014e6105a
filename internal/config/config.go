package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Conversation store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, upstream services,
// conversation storage and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"APP_ENV" env-default:"development" yaml:"environment"`
	// AppName is shown in the API documentation.
	AppName string `env:"APP_NAME" env-default:"AI Gateway" yaml:"appName"`
	// Version is the reported application version.
	Version string `env:"APP_VERSION" env-default:"0.1.0" yaml:"version"`
	// LogLevel optionally overrides the environment's default log level.
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:"0.0.0.0:20001" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request.
		// A turn may need two LLM round trips plus tool calls.
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"90s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// RequestIDHeader is read for an incoming request ID and echoed in responses.
		RequestIDHeader string `env:"HTTP_REQUEST_ID_HEADER" env-default:"X-Request-Id" yaml:"requestIdHeader"`
		// TrustClientIPHeader enables reading the client IP from ClientIPHeader.
		TrustClientIPHeader bool `env:"HTTP_TRUST_CLIENT_IP_HEADER" env-default:"false" yaml:"trustClientIpHeader"`
		// ClientIPHeader names the proxy header carrying the client IP.
		ClientIPHeader string `env:"HTTP_CLIENT_IP_HEADER" env-default:"X-Forwarded-For" yaml:"clientIpHeader"`
	} `yaml:"http"`

	// AzureOpenAI configures the chat completion deployment.
	AzureOpenAI struct {
		Endpoint    string        `env:"AZURE_OPENAI_ENDPOINT" yaml:"endpoint"`
		APIKey      string        `env:"AZURE_OPENAI_API_KEY" yaml:"apiKey"`
		Deployment  string        `env:"AZURE_OPENAI_DEPLOYMENT" yaml:"deployment"`
		APIVersion  string        `env:"AZURE_OPENAI_API_VERSION" env-default:"2024-02-15-preview" yaml:"apiVersion"`
		Temperature float64       `env:"AZURE_OPENAI_TEMPERATURE" env-default:"0.2" yaml:"temperature"`
		TopP        float64       `env:"AZURE_OPENAI_TOP_P" env-default:"0.9" yaml:"topP"`
		MaxTokens   int64         `env:"AZURE_OPENAI_MAX_TOKENS" env-default:"0" yaml:"maxTokens"`
		Timeout     time.Duration `env:"AZURE_OPENAI_TIMEOUT" env-default:"60s" yaml:"timeout"`
		MaxRetries  int           `env:"AZURE_OPENAI_MAX_RETRIES" env-default:"2" yaml:"maxRetries"`
	} `yaml:"azureOpenAI"`

	// ChatbotAPI points at the legacy chatbot backend.
	ChatbotAPI struct {
		BaseURL string        `env:"CHATBOT_API_BASE_URL" yaml:"baseURL"`
		Timeout time.Duration `env:"CHATBOT_API_TIMEOUT" env-default:"10s" yaml:"timeout"`
	} `yaml:"chatbotAPI"`

	// BankAPI points at the accounts service used by the balance tools.
	BankAPI struct {
		BaseURL      string        `env:"BANK_API_BASE_URL" env-default:"http://127.0.0.1:8001" yaml:"baseURL"`
		AccountsPath string        `env:"BANK_API_ACCOUNTS_PATH" env-default:"/api/chatbot/accounts" yaml:"accountsPath"`
		Timeout      time.Duration `env:"BANK_API_TIMEOUT" env-default:"20s" yaml:"timeout"`
		RateLimit    float64       `env:"BANK_API_RATE_LIMIT" env-default:"10" yaml:"rateLimit"`
		RateBurst    int           `env:"BANK_API_RATE_BURST" env-default:"5" yaml:"rateBurst"`
	} `yaml:"bankAPI"`

	// Conversation configures how chat state is kept between turns.
	Conversation struct {
		// Store selects the backend, memory or postgres.
		Store string `env:"CONVERSATION_STORE" env-default:"memory" yaml:"store"`
		// HistoryTTL is how long an idle conversation is kept.
		HistoryTTL time.Duration `env:"CONVERSATION_HISTORY_TTL" env-default:"2h" yaml:"historyTTL"`
		// MaxHistory is the number of history entries kept per conversation.
		MaxHistory int `env:"CONVERSATION_MAX_HISTORY" env-default:"20" yaml:"maxHistory"`
		// SweepInterval is how often expired conversations are pruned.
		SweepInterval time.Duration `env:"CONVERSATION_SWEEP_INTERVAL" env-default:"10m" yaml:"sweepInterval"`
		// DefaultLanguage is used when neither the state nor the message carry one.
		DefaultLanguage string `env:"DEFAULT_LANGUAGE" env-default:"uk" yaml:"defaultLanguage"`
	} `yaml:"conversation"`

	// BankInfoPath optionally points to a YAML knowledge base replacing the built-in one.
	BankInfoPath string `env:"BANK_INFO_PATH" yaml:"bankInfoPath"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"gateway" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"gateway" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"gateway" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// JWT holds the RS256 key pair. With an empty PublicKey the chatbot routes
	// are served without authentication.
	JWT struct {
		PublicKey  string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"jwt"`

	// Deploy describes how the service is installed on a host.
	Deploy struct {
		ServiceName string `env:"DEPLOY_SERVICE_NAME" env-default:"ai-gateway" yaml:"serviceName"`
		User        string `env:"DEPLOY_USER" env-default:"chatbot" yaml:"user"`
		Group       string `env:"DEPLOY_GROUP" env-default:"chatbot" yaml:"group"`
		WorkingDir  string `env:"DEPLOY_WORKING_DIR" env-default:"/opt/ai-gateway" yaml:"workingDir"`
		Binary      string `env:"DEPLOY_BINARY" env-default:"/opt/ai-gateway/gateway" yaml:"binary"`
		EnvFile     string `env:"DEPLOY_ENV_FILE" env-default:"/opt/ai-gateway/.env" yaml:"envFile"`
	} `yaml:"deploy"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for a yaml or .env config file and returns a filled
// Config struct. Environment variables override file values. An empty or
// missing path reads the environment only.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if err := read(configPath, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func read(configPath string, cfg *Config) error {
	if configPath != "" {
		_, err := os.Stat(configPath)
		switch {
		case err == nil:
			if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
				return fmt.Errorf("could not read config: %w", err)
			}

			return nil
		case !errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("could not stat config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("could not read config from environment: %w", err)
	}

	return nil
}

// Validate checks values that have no safe fallback.
func (c *Config) Validate() error {
	switch c.Conversation.Store {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("unknown conversation store %q", c.Conversation.Store)
	}
	if c.Conversation.MaxHistory < 0 {
		return fmt.Errorf("CONVERSATION_MAX_HISTORY must not be negative")
	}

	return nil
}
