package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	require.Equal(t, "mysql", cfg.Database.Driver)
	require.Equal(t, uint64(10000), cfg.Registry.DefaultShares)
	require.Zero(t, cfg.Registry.MaxNameLength)
	require.Equal(t, 1024, cfg.Registry.CacheSize)
	require.Equal(t, 6*time.Second, cfg.Chain.BlockTime)
	require.Equal(t, 168*time.Hour, cfg.Session.MaxAge)

	genesis, err := cfg.Chain.Genesis()
	require.NoError(t, err)
	require.Equal(t, 2020, genesis.Year())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REGISTRY_DATABASE_HOST", "db.internal")
	t.Setenv("REGISTRY_REGISTRY_DEFAULT_SHARES", "1000000")
	t.Setenv("REGISTRY_CHAIN_BLOCK_TIME", "12s")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "db.internal", cfg.Database.Host)
	require.Equal(t, uint64(1000000), cfg.Registry.DefaultShares)
	require.Equal(t, 12*time.Second, cfg.Chain.BlockTime)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	yaml := []byte(`
database:
  driver: postgres
  port: 5432
registry:
  max_name_length: 32
logging:
  format: json
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, 5432, cfg.Database.Port)
	require.Equal(t, 32, cfg.Registry.MaxNameLength)
	require.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "REGISTRY_DATABASE_DRIVER", "oracle"},
		{"bad genesis", "REGISTRY_CHAIN_GENESIS_TIME", "yesterday"},
		{"zero block time", "REGISTRY_CHAIN_BLOCK_TIME", "0s"},
		{"negative name length", "REGISTRY_REGISTRY_MAX_NAME_LENGTH", "-1"},
		{"negative cache size", "REGISTRY_REGISTRY_CACHE_SIZE", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load("")
			require.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "mysql",
			cfg:  DatabaseConfig{Driver: "mysql", Host: "localhost", Port: 3306, User: "u", Password: "p", Name: "reg"},
			want: "u:p@tcp(localhost:3306)/reg?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "postgres",
			cfg:  DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", Name: "reg", SSLMode: "disable"},
			want: "host=db port=5432 user=u password=p dbname=reg sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
