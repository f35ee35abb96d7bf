package config

import "time"

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logstash  LogstashConfig  `mapstructure:"logstash"`
	YouTube   YouTubeConfig   `mapstructure:"youtube"`
	Cron      CronConfig      `mapstructure:"cron"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	// CORSOrigins 为空时允许任意来源
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DBConfig 数据库配置，Driver 取 mysql（默认）或 sqlite
type DBConfig struct {
	Driver        string        `mapstructure:"driver"`
	DSN           string        `mapstructure:"dsn"`
	MaxIdle       int           `mapstructure:"max_idle"`
	MaxOpen       int           `mapstructure:"max_open"`
	MaxLifetime   int           `mapstructure:"max_lifetime"`
	SlowThreshold time.Duration `mapstructure:"slow_threshold"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 远程日志配置，Address 为空时只输出到 stdout
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// YouTubeConfig YouTube Data API 配置
type YouTubeConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	PageSize       int           `mapstructure:"page_size"`
	RecentLimit    int           `mapstructure:"recent_limit"`
	LookupCacheTTL time.Duration `mapstructure:"lookup_cache_ttl"`
}

// CronConfig 定时同步配置
type CronConfig struct {
	Enable       bool          `mapstructure:"enable"`
	Spec         string        `mapstructure:"spec"`
	Secret       string        `mapstructure:"secret"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
}

// RateLimitConfig 手动同步限流
type RateLimitConfig struct {
	SyncLimit  int64         `mapstructure:"sync_limit"`
	SyncWindow time.Duration `mapstructure:"sync_window"`
}

type KafkaConfig struct {
	Enable    bool       `mapstructure:"enable"`
	Brokers   []string   `mapstructure:"brokers"`
	Sasl      SaslConfig `mapstructure:"sasl"`
	SyncTopic string     `mapstructure:"sync_topic"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// TracingConfig OTLP 链路追踪，Endpoint 为空时不启用
type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}
