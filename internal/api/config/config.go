package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig 从 configs/config.yaml 与环境变量加载配置，环境变量优先
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// 兼容原有部署使用的变量名
	_ = v.BindEnv("youtube.api_key", "YOUTUBE_API_KEY")
	_ = v.BindEnv("cron.secret", "CRON_SECRET")
	_ = v.BindEnv("database.dsn", "DATABASE_URL", "DATABASE_DSN")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{})

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 60)
	v.SetDefault("database.slow_threshold", 200*time.Millisecond)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 20)

	v.SetDefault("logstash.address", "")
	v.SetDefault("logstash.index", "logstash-content-tracker")
	v.SetDefault("logstash.token", "")

	v.SetDefault("youtube.api_key", "")
	v.SetDefault("youtube.base_url", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("youtube.timeout", 20*time.Second)
	v.SetDefault("youtube.page_size", 50)
	v.SetDefault("youtube.recent_limit", 10)
	v.SetDefault("youtube.lookup_cache_ttl", 10*time.Minute)

	v.SetDefault("cron.enable", true)
	v.SetDefault("cron.spec", "0 0 */6 * * *")
	v.SetDefault("cron.secret", "")
	v.SetDefault("cron.batch_timeout", 60*time.Second)

	v.SetDefault("rate_limit.sync_limit", 6)
	v.SetDefault("rate_limit.sync_window", time.Minute)

	v.SetDefault("kafka.enable", false)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.sync_topic", "content-tracker.account-synced")

	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "content-tracker")
	v.SetDefault("tracing.sample_ratio", 1.0)
}
