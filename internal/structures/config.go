package structures

import "time"

type Server struct {
	Host            string        `yaml:"host" validate:"required"`
	Port            int           `yaml:"port" validate:"required|uint|min:1"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// RateLimitConfig overrides the built-in sliding window quotas. Zero values
// keep the defaults.
type RateLimitConfig struct {
	Window            time.Duration  `yaml:"window"`
	SweepThreshold    int            `yaml:"sweepThreshold" validate:"min:0"`
	SweepInterval     time.Duration  `yaml:"sweepInterval"`
	Default           int            `yaml:"default" validate:"min:0"`
	Endpoints         map[string]int `yaml:"endpoints"`
	TrustForwardedFor bool           `yaml:"trustForwardedFor"`
}

type GenAIConfig struct {
	ApiKey            string        `yaml:"apiKey"`
	Model             string        `yaml:"model"`
	MapsModel         string        `yaml:"mapsModel"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
	Burst             int           `yaml:"burst" validate:"min:0"`
	ThinkingBudget    int32         `yaml:"thinkingBudget"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db" validate:"min:0"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

type StatsConfig struct {
	AggregateInterval time.Duration `yaml:"aggregateInterval"`
	Redis             RedisConfig   `yaml:"redis"`
}

type SecurityConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type ConcurrencyConfig struct {
	MaxInFlight    int64         `yaml:"maxInFlight" validate:"min:0"`
	AcquireTimeout time.Duration `yaml:"acquireTimeout"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server            `yaml:"webServer"`
	Persistence Persistence       `yaml:"persistence"`
	Logger      LoggerConfig      `yaml:"logger"`
	RateLimit   RateLimitConfig   `yaml:"rateLimit"`
	GenAI       GenAIConfig       `yaml:"genai"`
	Cache       CacheConfig       `yaml:"cache"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Stats       StatsConfig       `yaml:"stats"`
	Security    SecurityConfig    `yaml:"security"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}
