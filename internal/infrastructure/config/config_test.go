package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"COHAUS_APP_NAME":                 os.Getenv("COHAUS_APP_NAME"),
		"COHAUS_APP_ENV":                  os.Getenv("COHAUS_APP_ENV"),
		"COHAUS_APP_PORT":                 os.Getenv("COHAUS_APP_PORT"),
		"COHAUS_DATABASE_HOST":            os.Getenv("COHAUS_DATABASE_HOST"),
		"COHAUS_DATABASE_PORT":            os.Getenv("COHAUS_DATABASE_PORT"),
		"COHAUS_DATABASE_USER":            os.Getenv("COHAUS_DATABASE_USER"),
		"COHAUS_DATABASE_PASSWORD":        os.Getenv("COHAUS_DATABASE_PASSWORD"),
		"COHAUS_DATABASE_DBNAME":          os.Getenv("COHAUS_DATABASE_DBNAME"),
		"COHAUS_DATABASE_SSLMODE":         os.Getenv("COHAUS_DATABASE_SSLMODE"),
		"COHAUS_DATABASE_MAX_OPEN_CONNS":  os.Getenv("COHAUS_DATABASE_MAX_OPEN_CONNS"),
		"COHAUS_DATABASE_MAX_IDLE_CONNS":  os.Getenv("COHAUS_DATABASE_MAX_IDLE_CONNS"),
		"COHAUS_NOTIFICATION_DRY_RUN":     os.Getenv("COHAUS_NOTIFICATION_DRY_RUN"),
		"COHAUS_NOTIFICATION_GATEWAY_URL": os.Getenv("COHAUS_NOTIFICATION_GATEWAY_URL"),
		"COHAUS_BILLING_BLOCK_RECOMPUTE_ON_SHARE_MISMATCH": os.Getenv("COHAUS_BILLING_BLOCK_RECOMPUTE_ON_SHARE_MISMATCH"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "cohaus-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "cohaus", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.False(t, cfg.Billing.BlockRecomputeOnShareMismatch)
		assert.NotZero(t, cfg.Billing.CycleLockTTL)
		assert.NotZero(t, cfg.Notification.Timeout)
	})

	t.Run("loads values from environment variables with COHAUS prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("COHAUS_APP_NAME", "test-app")
		os.Setenv("COHAUS_APP_PORT", "9000")
		os.Setenv("COHAUS_DATABASE_HOST", "testdb.local")
		os.Setenv("COHAUS_DATABASE_PORT", "5433")
		os.Setenv("COHAUS_DATABASE_USER", "testuser")
		os.Setenv("COHAUS_DATABASE_PASSWORD", "testpass")
		os.Setenv("COHAUS_BILLING_BLOCK_RECOMPUTE_ON_SHARE_MISMATCH", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.True(t, cfg.Billing.BlockRecomputeOnShareMismatch)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("COHAUS_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("COHAUS_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("COHAUS_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"COHAUS_APP_ENV":                  os.Getenv("COHAUS_APP_ENV"),
		"COHAUS_DATABASE_PASSWORD":        os.Getenv("COHAUS_DATABASE_PASSWORD"),
		"COHAUS_DATABASE_SSLMODE":         os.Getenv("COHAUS_DATABASE_SSLMODE"),
		"COHAUS_NOTIFICATION_GATEWAY_URL": os.Getenv("COHAUS_NOTIFICATION_GATEWAY_URL"),
		"COHAUS_NOTIFICATION_DRY_RUN":     os.Getenv("COHAUS_NOTIFICATION_DRY_RUN"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	setValidProductionBase := func() {
		os.Setenv("COHAUS_APP_ENV", "production")
		os.Setenv("COHAUS_DATABASE_PASSWORD", "secure-password")
		os.Setenv("COHAUS_DATABASE_SSLMODE", "require")
		os.Setenv("COHAUS_NOTIFICATION_GATEWAY_URL", "https://sms.example.com/v1/send")
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("COHAUS_APP_ENV", "production")
		os.Setenv("COHAUS_DATABASE_SSLMODE", "require")
		os.Setenv("COHAUS_NOTIFICATION_GATEWAY_URL", "https://sms.example.com/v1/send")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("COHAUS_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("requires gateway url unless dry run", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("COHAUS_NOTIFICATION_GATEWAY_URL")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "notification.gateway_url")

		os.Setenv("COHAUS_NOTIFICATION_DRY_RUN", "true")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Notification.DryRun)
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "pass%40word%23123")
	})
}
