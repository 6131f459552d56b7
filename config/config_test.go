package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "file", AppConfig.CatalogSource)
	// A default run must not require a Redis instance.
	assert.Empty(t, AppConfig.RedisAddr)
}
