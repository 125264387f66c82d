package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ksysoev/traceid/pkg/edge"
	"github.com/ksysoev/traceid/pkg/metric"
	"github.com/ksysoev/traceid/pkg/traceid"
	"github.com/spf13/viper"
)

const defaultTraceHeader = "X-Trace-Id"

type appConfig struct {
	Trace   traceConfig   `mapstructure:"trace"`
	HTTP    edge.Config   `mapstructure:"http"`
	Metrics metric.Config `mapstructure:"metrics"`
}

type traceConfig struct {
	Header    string `mapstructure:"header"`
	Generator string `mapstructure:"generator"`
}

// loadConfig loads the application configuration from the specified file path and environment variables.
// Missing values fall back to an HTTP server on :8080 using the uuid generator with the X-Trace-Id header
// and no metrics server.
// The function returns a pointer to the appConfig structure and an error if something goes wrong.
func loadConfig(arg *args) (*appConfig, error) {
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())

	v.SetDefault("http.listen", ":8080")
	v.SetDefault("trace.header", defaultTraceHeader)
	v.SetDefault("trace.generator", traceid.GeneratorUUID)
	v.SetDefault("metrics.listen", "")

	if arg.ConfigPath != "" {
		v.SetConfigFile(arg.ConfigPath)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg appConfig

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	slog.Debug("Config loaded", slog.Any("config", cfg))

	return &cfg, nil
}
