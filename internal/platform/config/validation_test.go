package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "blog-service",
			Version:     "1.0.0",
			Environment: "local",
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  30 * time.Second,
			MaxRequestSize:  1048576,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "blog",
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    100,
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestConfig_Validate_AppConfig(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Name = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.name is required")
	})

	t.Run("invalid environment", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Environment = "staging"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.environment must be one of")
	})

	for _, env := range []string{"local", "dev", "qa", "prod", "test"} {
		t.Run("environment "+env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = env

			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestConfig_Validate_ServerConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{"minimum port", func(s *ServerConfig) { s.Port = 1 }, ""},
		{"maximum port", func(s *ServerConfig) { s.Port = 65535 }, ""},
		{"port too high", func(s *ServerConfig) { s.Port = 65536 }, "server.port must be at most 65535"},
		{"missing host", func(s *ServerConfig) { s.Host = "" }, "server.host is required"},
		{"read timeout too short", func(s *ServerConfig) { s.ReadTimeout = 500 * time.Millisecond }, "server.read_timeout"},
		{"request timeout disabled", func(s *ServerConfig) { s.RequestTimeout = 0 }, ""},
		{"negative request timeout", func(s *ServerConfig) { s.RequestTimeout = -time.Second }, "server.request_timeout"},
		{"missing max request size", func(s *ServerConfig) { s.MaxRequestSize = 0 }, "server.max_request_size is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg.Server)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_LogConfig(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		t.Run("level "+level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Log.Level = level

			assert.NoError(t, cfg.Validate())
		})
	}

	for _, format := range []string{"json", "text", "pretty"} {
		t.Run("format "+format, func(t *testing.T) {
			cfg := validConfig()
			cfg.Log.Format = format

			assert.NoError(t, cfg.Validate())
		})
	}

	t.Run("case sensitive level", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.Level = "DEBUG"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.level")
	})

	t.Run("invalid format", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.Format = "xml"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.format")
	})
}

func TestConfig_Validate_LogFileConfig(t *testing.T) {
	t.Run("disabled without path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.File.Enabled = false
		cfg.Log.File.Path = ""

		assert.NoError(t, cfg.Validate())
	})

	t.Run("enabled without path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.File.Enabled = true

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.file.path is required when")
	})

	t.Run("max size bounds", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.File.Enabled = true
		cfg.Log.File.Path = "/var/log/blog.log"
		cfg.Log.File.MaxSizeMB = 1025

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.file.max_size must be at most 1024")
	})
}

func TestConfig_Validate_TelemetryConfig(t *testing.T) {
	t.Run("disabled without endpoint", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.Enabled = false

		assert.NoError(t, cfg.Validate())
	})

	t.Run("enabled without endpoint", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.ServiceName = "blog-service"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.endpoint")
	})

	t.Run("sampling rate above one", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.SamplingRate = 1.5

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.sampling_rate must be at most 1")
	})
}

func TestConfig_Validate_MongoConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MongoConfig)
		wantErr string
	}{
		{"srv uri", func(m *MongoConfig) { m.URI = "mongodb+srv://cluster0.example.net" }, ""},
		{"missing uri", func(m *MongoConfig) { m.URI = "" }, "mongo.uri is required"},
		{"wrong scheme", func(m *MongoConfig) { m.URI = "postgres://localhost" }, `mongo.uri must start with "mongodb"`},
		{"missing database", func(m *MongoConfig) { m.Database = "" }, "mongo.database is required"},
		{"connect timeout too short", func(m *MongoConfig) { m.ConnectTimeout = time.Millisecond }, "mongo.connect_timeout must be at least"},
		{"missing pool size", func(m *MongoConfig) { m.MaxPoolSize = 0 }, "mongo.max_pool_size is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg.Mongo)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.App.Name = ""
	cfg.App.Version = ""
	cfg.Mongo.Database = ""

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "config validation failed:")
	assert.Contains(t, errStr, "app.name is required")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"app.name", "app.version", "mongo.database"}, verr.Keys())
}

func TestConfig_Validate_MongoURIScheme(t *testing.T) {
	cfg := validConfig()
	cfg.Mongo.URI = "postgres://localhost:5432"

	err := cfg.Validate()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 1)
	assert.Equal(t, Problem{Key: "mongo.uri", Reason: `must start with "mongodb"`}, verr.Problems[0])
}

func TestFormatFieldPath(t *testing.T) {
	tests := []struct {
		namespace string
		expected  string
	}{
		{"Config.server.port", "server.port"},
		{"Config.mongo.connect_timeout", "mongo.connect_timeout"},
		{"Config.log.file.path", "log.file.path"},
		{"port", "port"},
	}

	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFieldPath(tt.namespace))
		})
	}
}
