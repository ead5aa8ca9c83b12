package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "REST_BASE_URL", "REST_TIMEOUT", "KAFKA_BROKERS", "KAFKA_BROKER", "WS_SEND_BUFFER", "JWT_SECRET", "NOTIFY_SECRET"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, defaultBaseURL, cfg.REST.BaseURL)
	require.Equal(t, 10*time.Second, cfg.REST.Timeout)
	require.Equal(t, defaultProfilePath, cfg.REST.ProfilePath)
	require.Equal(t, 8, cfg.Websocket.SendBuffer)
	require.Empty(t, cfg.Kafka.Brokers)
	require.Empty(t, cfg.Security.JWTSecret)
	require.Empty(t, cfg.Security.NotifySecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REST_BASE_URL", "http://backend.local/api/v1/")
	t.Setenv("REST_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv("WS_SEND_BUFFER", "32")
	t.Setenv("NOTIFY_SECRET", " hook-secret ")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9000", cfg.Server.Port)
	require.Equal(t, "http://backend.local/api/v1", cfg.REST.BaseURL)
	require.Equal(t, 3*time.Second, cfg.REST.Timeout)
	require.Equal(t, 32, cfg.Websocket.SendBuffer)
	require.Equal(t, "hook-secret", cfg.Security.NotifySecret)
	if diff := cmp.Diff([]string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers); diff != "" {
		t.Errorf("brokers mismatch (-want,+got)\n%s", diff)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("duration", func(t *testing.T) {
		t.Setenv("REST_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("int", func(t *testing.T) {
		t.Setenv("REST_TIMEOUT", "")
		t.Setenv("WS_SEND_BUFFER", "many")
		_, err := Load()
		require.Error(t, err)
	})
}
