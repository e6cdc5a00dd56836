package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow common env vars without APP_ prefix for Docker/VM deploys
	viper.BindEnv("http.port", "PORT", "HTTP_PORT", "APP_HTTP_PORT")
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY", "APP_OPENAI_API_KEY")
	viper.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	viper.BindEnv("weather.api_key", "WEATHER_API_KEY", "APP_WEATHER_API_KEY")
	viper.BindEnv("storage.upload_dir", "UPLOAD_DIR")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; env vars and defaults cover everything.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "voice-gateway")
	viper.SetDefault("app.version", "v1.0.0")
	viper.SetDefault("app.environment", "production")

	viper.SetDefault("http.port", 8080)
	viper.SetDefault("http.read_timeout", "30s")
	viper.SetDefault("http.write_timeout", "60s")
	viper.SetDefault("http.idle_timeout", "90s")
	viper.SetDefault("http.body_limit", 25*1024*1024)

	viper.SetDefault("openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("openai.whisper_model", "whisper-1")
	viper.SetDefault("openai.language", "en")
	viper.SetDefault("openai.chat_model", "gpt-4-turbo")
	viper.SetDefault("openai.tts_model", "tts-1")
	viper.SetDefault("openai.voice", "alloy")
	viper.SetDefault("openai.realtime_model", "gpt-4o-realtime-preview-2024-12-17")
	viper.SetDefault("openai.realtime_voice", "verse")

	viper.SetDefault("weather.base_url", "https://api.weatherapi.com/v1")
	viper.SetDefault("weather.timeout", "30s")
	viper.SetDefault("weather.fallback_city", "New York")

	viper.SetDefault("storage.upload_dir", "uploads")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	viper.SetDefault("prometheus.enabled", true)
	viper.SetDefault("prometheus.path", "/metrics")

	viper.SetDefault("cors.enabled", true)
	viper.SetDefault("cors.allowed_origins", []string{"*"})
}
