package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ksysoev/traceid/pkg/edge"
	"github.com/ksysoev/traceid/pkg/metric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	const validConfig = `
http:
  listen: ":8081"
trace:
  header: "X-Request-Id"
  generator: "xid"
metrics:
  listen: ":9090"
`

	tests := []struct {
		envVars      map[string]string
		expectConfig *appConfig
		name         string
		configData   string
		noFile       bool
		expectError  bool
	}{
		{
			name:       "valid config file",
			configData: validConfig,
			expectConfig: &appConfig{
				HTTP:    edge.Config{Listen: ":8081"},
				Trace:   traceConfig{Header: "X-Request-Id", Generator: "xid"},
				Metrics: metric.Config{Listen: ":9090"},
			},
		},
		{
			name:   "defaults without config file",
			noFile: true,
			expectConfig: &appConfig{
				HTTP:  edge.Config{Listen: ":8080"},
				Trace: traceConfig{Header: defaultTraceHeader, Generator: "uuid"},
			},
		},
		{
			name:        "missing config file",
			expectError: true,
		},
		{
			name:        "unparseable config file",
			expectError: true,
			configData:  `http: "invalid"`,
		},
		{
			name: "valid config with environment overrides",
			envVars: map[string]string{
				"HTTP_LISTEN":     ":8083",
				"TRACE_GENERATOR": "uuidv7",
			},
			configData: validConfig,
			expectConfig: &appConfig{
				HTTP:    edge.Config{Listen: ":8083"},
				Trace:   traceConfig{Header: "X-Request-Id", Generator: "uuidv7"},
				Metrics: metric.Config{Listen: ":9090"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.yaml")

			if tt.configData != "" {
				err := os.WriteFile(configPath, []byte(tt.configData), 0o600)

				require.NoError(t, err)
			}

			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			arg := &args{
				ConfigPath: configPath,
			}

			if tt.noFile {
				arg.ConfigPath = ""
			}

			cfg, err := loadConfig(arg)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectConfig, cfg)
			}
		})
	}
}
