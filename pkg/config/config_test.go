package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/pkg/config"
)

func TestLoad_StorageDriverPorDefecto(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("STORAGE_KV_DRIVER", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, config.DriverPostgres, cfg.Storage.KVDriver)
}

func TestLoad_StorageDriverMemoriaArrastraKV(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, config.DriverMemory, cfg.Storage.KVDriver, "sin PostgreSQL el contador también vive en memoria")
}

func TestLoad_StorageDriverDesconocido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := config.Load()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestLoad_KVDriverDesconocido(t *testing.T) {
	t.Setenv("STORAGE_KV_DRIVER", "redis")

	_, err := config.Load()
	assert.ErrorContains(t, err, "STORAGE_KV_DRIVER")
}
