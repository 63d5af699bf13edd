package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
store:
  domain: skims.com
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "skims.com", cfg.Store.Domain)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
store:
  domain: skims.com
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 100, cfg.Fetch.PageSize)
				assert.Equal(t, 300, cfg.Fetch.MaxProductCount())
				assert.Equal(t, 300*time.Millisecond, cfg.Fetch.PageDelay)
				assert.Equal(t, 60*time.Second, cfg.Fetch.Timeout)
				assert.Equal(t, 6*time.Hour, cfg.Schedule.ExportInterval)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "explicit zero max_products means unlimited",
			yaml: `
store:
  domain: skims.com
fetch:
  max_products: 0
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 0, cfg.Fetch.MaxProductCount())
			},
		},
		{
			name: "env var substitution",
			yaml: `
store:
  domain: ${TEST_STORE_DOMAIN}
`,
			envVars: map[string]string{"TEST_STORE_DOMAIN": "hexagon.com"},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "hexagon.com", cfg.Store.Domain)
			},
		},
		{
			name:    "missing store domain",
			yaml:    `logging: {level: debug}`,
			wantErr: "store.domain is required",
		},
		{
			name: "negative max_products rejected",
			yaml: `
store:
  domain: skims.com
fetch:
  max_products: -5
`,
			wantErr: "fetch.max_products must be zero or positive",
		},
		{
			name: "webhook enabled without url",
			yaml: `
store:
  domain: skims.com
notifications:
  webhook:
    enabled: true
`,
			wantErr: "notifications.webhook.url is required",
		},
		{
			name:    "malformed yaml",
			yaml:    `store: [`,
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
