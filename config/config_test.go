package config

import (
	"os"
	"path/filepath"
	"plants/models"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":5555", cfg.Server.Addr())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  host: 127.0.0.1
  port: 8080
  shutdown_timeout: 3s
database:
  driver: mysql
  username: plants
  password: secret
  host: db.internal
  port: "3307"
  database: nursery
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	dsn := cfg.Database.DSN()
	assert.True(t, strings.HasPrefix(dsn, "plants:secret@tcp(db.internal:3307)/nursery?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	dialector, err := cfg.Database.Dialector()
	require.NoError(t, err)
	assert.IsType(t, &mysql.Dialector{}, dialector)
}

func TestEnvironmentOverridesYAML(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")
	t.Setenv("PLANTS_SERVER_PORT", "9090")
	t.Setenv("PLANTS_DATABASE_PATH", "/tmp/garden.db")
	t.Setenv("PLANTS_SERVER_SHUTDOWN_TIMEOUT", "1m")
	t.Setenv("PLANTS_AUTH_TOKEN_TTL", "15m")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/tmp/garden.db", cfg.Database.Path)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)

	dialector, err := cfg.Database.Dialector()
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Dialector{}, dialector)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"malformed yaml":   "server: [",
		"unknown driver":   "database:\n  driver: oracle\n",
		"port range":       "server:\n  port: 70000\n",
		"mysql no host":    "database:\n  driver: mysql\n  host: \"\"\n",
		"auth without key": "auth:\n  enabled: true\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestSetupDatabaseConnectionMigratesPlants(t *testing.T) {
	dbConfig := Default().Database
	dbConfig.Path = filepath.Join(t.TempDir(), "plants.db")

	db, err := SetupDatabaseConnection(dbConfig, zerolog.Nop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, db.Migrator().HasTable(&models.Plant{}))
	assert.True(t, db.Migrator().HasColumn(&models.Plant{}, "is_in_stock"))
	assert.False(t, db.Migrator().HasColumn(&models.Plant{}, "deleted_at"))
}

func TestGormLogLevel(t *testing.T) {
	assert.EqualValues(t, 1, gormLogLevel("silent"))
	assert.EqualValues(t, 2, gormLogLevel("ERROR"))
	assert.EqualValues(t, 3, gormLogLevel(""))
	assert.EqualValues(t, 4, gormLogLevel("info"))
}
