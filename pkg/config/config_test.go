package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestDefaults(t *testing.T) {
	cfg := fromViper(newViper(nil))

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "", cfg.APIPrefix)
	assert.Equal(t, SessionProviderRemote, cfg.Session.Provider)
	assert.Equal(t, "test", cfg.Session.Env)
	assert.Equal(t, time.Hour, cfg.Session.Duration)
	assert.Equal(t, 5*time.Minute, cfg.Session.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.Session.Timeout)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	cfg := fromViper(newViper(map[string]interface{}{
		"API_PREFIX":        "/api/",
		"SESSION_PROVIDER":  "JWT",
		"SESSION_DURATION":  "bogus",
		"ALLOWED_ORIGINS":   " https://a.edu , ,https://b.edu",
		"DATABASE_URL":      "postgres://u:p@db:5432/advising?sslmode=disable",
		"REDIS_ENABLED":     "true",
		"HTTP_READ_TIMEOUT": "3s",
	}))

	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, SessionProviderJWT, cfg.Session.Provider)
	assert.Equal(t, time.Hour, cfg.Session.Duration)
	assert.Equal(t, []string{"https://a.edu", "https://b.edu"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "postgres://u:p@db:5432/advising?sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
}

func TestDatabaseDSNFallback(t *testing.T) {
	cfg := fromViper(newViper(nil))
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=course_advising sslmode=disable", cfg.Database.DSN())
}

func TestValidate(t *testing.T) {
	cfg := fromViper(newViper(nil))
	require.Error(t, cfg.Validate())

	cfg.Session.ProjectID = "project-test-1"
	cfg.Session.Secret = "secret-test-1"
	require.NoError(t, cfg.Validate())

	cfg.Session.BaseURL = "not a url"
	require.Error(t, cfg.Validate())

	cfg = fromViper(newViper(map[string]interface{}{"SESSION_PROVIDER": "jwt"}))
	require.Error(t, cfg.Validate())
	cfg.Session.Secret = "s"
	require.NoError(t, cfg.Validate())

	cfg.Session.Provider = "ldap"
	require.Error(t, cfg.Validate())
}
