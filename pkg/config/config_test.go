package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irvanshandika/PUSCOM-sub000/pkg/config"
)

func TestLoad_RequiereJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.Activity.Store)
	assert.Equal(t, "gemini", cfg.AI.StaffProvider)
	assert.Equal(t, 24*time.Hour, cfg.Storage.OrphanTTL)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, int32(1), cfg.DB.MinConns)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_PoolDeConexiones(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_MAX_CONNS", "40")
	t.Setenv("DB_MIN_CONNS", "4")
	t.Setenv("DB_MAX_CONN_IDLE_TIME", "5m")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, int32(40), cfg.DB.MaxConns)
	assert.Equal(t, int32(4), cfg.DB.MinConns)
	assert.Equal(t, 5*time.Minute, cfg.DB.MaxConnIdleTime)
	assert.True(t, cfg.DB.ForceIPv4)

	t.Setenv("DB_MIN_CONNS", "50")
	_, err = config.Load()
	assert.Error(t, err)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("AI_STAFF_PROVIDER", "GROQ")
	t.Setenv("STORAGE_ORPHAN_TTL", "90m")
	t.Setenv("APP_PUBLIC_URL", "https://puscom.id/")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "groq", cfg.AI.StaffProvider)
	assert.Equal(t, 90*time.Minute, cfg.Storage.OrphanTTL)
	assert.Equal(t, "https://puscom.id", cfg.App.PublicURL)
}

func TestLoad_ActivityStoreInvalido(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACTIVITY_STORE", "firestore")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "puscom", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/puscom?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
