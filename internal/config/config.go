package config

import (
	"time"

	"github.com/spf13/viper"

	pkgconfig "github.com/aryanarora07/studybuddy-new/pkg/config"
	"github.com/aryanarora07/studybuddy-new/pkg/database"
	"github.com/aryanarora07/studybuddy-new/pkg/log"
	"github.com/aryanarora07/studybuddy-new/pkg/storage"
)

type Config struct {
	Server    ServerConfig
	Database  database.Config
	JWT       JWTConfig
	WebSocket WebSocketConfig
	Presence  PresenceConfig
	Storage   storage.Config
	Log       log.Config
}

type ServerConfig struct {
	Host string
	Port int
}

type JWTConfig struct {
	Secret          string        `mapstructure:"secret"`
	Issuer          string        `mapstructure:"issuer"`
	AccessDuration  time.Duration `mapstructure:"access_duration"`
	RefreshDuration time.Duration `mapstructure:"refresh_duration"`
}

type WebSocketConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
	SendBufferSize int           `mapstructure:"send_buffer_size"`
}

type PresenceConfig struct {
	RedisAddress  string        `mapstructure:"redis_address"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
	TTL           time.Duration `mapstructure:"ttl"`
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 4000)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.file_path", "./data/studybuddy.db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "studybuddy")
	v.SetDefault("jwt.access_duration", "1h")
	v.SetDefault("jwt.refresh_duration", "168h")
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 65536)
	v.SetDefault("websocket.send_buffer_size", 256)
	v.SetDefault("presence.redis_address", "localhost:6379")
	v.SetDefault("presence.redis_password", "")
	v.SetDefault("presence.redis_db", 0)
	v.SetDefault("presence.key_prefix", "studybuddy:presence")
	v.SetDefault("presence.ttl", "90s")
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local.base_path", "./data/uploads")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("presence.redis_address", "REDIS_ADDRESS")
	v.BindEnv("presence.redis_password", "REDIS_PASSWORD")
	v.BindEnv("storage.backend", "STORAGE_BACKEND")
	v.BindEnv("storage.s3.access_key_id", "S3_ACCESS_KEY_ID")
	v.BindEnv("storage.s3.secret_access_key", "S3_SECRET_ACCESS_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Parse durations
	cfg.JWT.AccessDuration = parseDuration(v, "jwt.access_duration", time.Hour)
	cfg.JWT.RefreshDuration = parseDuration(v, "jwt.refresh_duration", 168*time.Hour)
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 30*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)
	cfg.Presence.TTL = parseDuration(v, "presence.ttl", 90*time.Second)

	return &cfg, nil
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	str := v.GetString(key)
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}
