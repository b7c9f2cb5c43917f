package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCacheConfig(t *testing.T) {
	unsetEnv(t, "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB")

	cc, err := LoadCacheConfig()
	require.NoError(t, err)
	assert.False(t, cc.IsConfigured())
	assert.Equal(t, "6379", cc.Port)
	assert.Nil(t, cc.NewCacheOrNil(quietLogger()))

	t.Setenv("REDIS_HOST", ` "cache" `)
	t.Setenv("REDIS_DB", "-3")

	cc, err = LoadCacheConfig()
	require.NoError(t, err)
	assert.Equal(t, "cache", cc.Host)
	assert.Equal(t, 0, cc.DB)
}

func TestLoadCacheConfig_BadDB(t *testing.T) {
	t.Setenv("REDIS_DB", "one")

	_, err := LoadCacheConfig()
	assert.ErrorContains(t, err, "cache config")
}

func TestCloseCache_Nil(t *testing.T) {
	assert.NotPanics(t, func() { CloseCache(nil, quietLogger()) })
}
