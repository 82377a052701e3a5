package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"grailhunter/internal/structures"
	"path/filepath"
	"strings"
)

const AppName = "GrailHunter"

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("webServer.shutdownTimeout", "5s")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("persistence.saveInterval", "60s")
	v.SetDefault("rateLimit.window", "60s")
	v.SetDefault("rateLimit.sweepThreshold", 1000)
	v.SetDefault("rateLimit.sweepInterval", "60s")
	v.SetDefault("rateLimit.default", 30)
	v.SetDefault("rateLimit.trustForwardedFor", true)
	v.SetDefault("genai.model", "gemini-3-flash-preview")
	v.SetDefault("genai.mapsModel", "gemini-2.5-flash")
	v.SetDefault("genai.timeout", "45s")
	v.SetDefault("genai.requestsPerSecond", 5)
	v.SetDefault("genai.burst", 10)
	v.SetDefault("genai.thinkingBudget", -1)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("stats.aggregateInterval", "10s")
	v.SetDefault("stats.redis.prefix", "grailhunter:ratelimit")
	v.SetDefault("stats.redis.ttl", "24h")
	v.SetDefault("concurrency.maxInFlight", 64)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config
	v := viper.New()

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	setConfigDefaults(v)

	v.BindEnv("logger.level", "GRAIL_LOG_LEVEL")
	v.BindEnv("genai.apiKey", "GEMINI_API_KEY")
	v.BindEnv("rateLimit.default", "GRAIL_RATE_DEFAULT")
	v.BindEnv("rateLimit.trustForwardedFor", "GRAIL_TRUST_XFF")
	v.BindEnv("cache.enabled", "GRAIL_CACHE_ENABLED")
	v.BindEnv("cache.size", "GRAIL_CACHE_SIZE")
	v.BindEnv("stats.redis.addr", "GRAIL_REDIS_ADDR")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
