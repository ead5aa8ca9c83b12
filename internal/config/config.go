package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config groups every setting the gateway reads from the environment.
type Config struct {
	Server    ServerConfig
	REST      RESTConfig
	Security  SecurityConfig
	Logging   LoggingConfig
	Kafka     KafkaConfig
	Queue     QueueConfig
	Websocket WebsocketConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// RESTConfig points at the remote skyfly backend.
type RESTConfig struct {
	BaseURL     string
	Timeout     time.Duration
	ProfilePath string
}

type SecurityConfig struct {
	// JWTSecret enables signature checks on inbound tokens when set.
	JWTSecret string
	// NotifySecret guards the status webhook. Without it the webhook
	// rejects every call.
	NotifySecret string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type KafkaConfig struct {
	Brokers     []string
	GroupID     string
	StatusTopic string
	EventsTopic string
}

type QueueConfig struct {
	EventsQueue string
}

type WebsocketConfig struct {
	SendBuffer int
}

const (
	defaultBaseURL     = "https://backend-skyfly-c1.vercel.app/api/v1"
	defaultProfilePath = "/users/profile"
)

// Load reads the configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	restTimeout, err := durationEnv("REST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	sendBuffer, err := intEnv("WS_SEND_BUFFER", 8)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ShutdownTimeout: shutdownTimeout,
		},
		REST: RESTConfig{
			BaseURL:     strings.TrimRight(getEnv("REST_BASE_URL", defaultBaseURL), "/"),
			Timeout:     restTimeout,
			ProfilePath: getEnv("PROFILE_PATH", defaultProfilePath),
		},
		Security: SecurityConfig{
			JWTSecret:    strings.TrimSpace(os.Getenv("JWT_SECRET")),
			NotifySecret: strings.TrimSpace(os.Getenv("NOTIFY_SECRET")),
		},
		Logging: LoggingConfig{
			Directory: getEnv("LOG_DIR", "./logs"),
			Level:     getEnv("LOG_LEVEL", "info"),
			Format:    getEnv("LOG_FORMAT", "text"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(firstEnv("KAFKA_BROKERS", "KAFKA_BROKER")),
			GroupID:     getEnv("KAFKA_GROUP_ID", "skyfly-bff"),
			StatusTopic: getEnv("KAFKA_STATUS_TOPIC", "transactions.status"),
			EventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "payments.submitted"),
		},
		Queue: QueueConfig{
			EventsQueue: strings.TrimSpace(os.Getenv("SQS_EVENTS_QUEUE")),
		},
		Websocket: WebsocketConfig{
			SendBuffer: sendBuffer,
		},
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
