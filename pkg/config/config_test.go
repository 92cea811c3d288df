package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "dev-secret", cfg.Session.Secret)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "portal_session", cfg.Session.CookieName)
	assert.Equal(t, "admin", cfg.Admin.DefaultUsername)
	assert.Equal(t, "admin123", cfg.Admin.DefaultPassword)
	assert.Contains(t, cfg.Database.URL, "citizen_portal")
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Insights.CacheEnabled)
	assert.Equal(t, time.Minute, cfg.Insights.CacheTTL)
	assert.Equal(t, 500, cfg.Engagements.RecentLimit)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("PORT", 8081)
	v.Set("SESSION_TTL", "bogus")
	v.Set("ALLOWED_ORIGINS", " https://a.gov , ,https://b.gov")
	v.Set("ENGAGEMENTS_RECENT_LIMIT", -3)

	cfg := fromViper(v)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"https://a.gov", "https://b.gov"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 500, cfg.Engagements.RecentLimit)
}

func TestValidate(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)
	assert.NoError(t, cfg.Validate())

	cfg.Env = EnvProduction
	assert.ErrorContains(t, cfg.Validate(), "SESSION_SECRET must be changed in production")

	cfg.Session.Secret = "s3cret"
	assert.NoError(t, cfg.Validate())

	cfg.Port = 0
	cfg.Session.CookieName = ""
	err := cfg.Validate()
	assert.ErrorContains(t, err, "PORT 0 out of range")
	assert.ErrorContains(t, err, "SESSION_COOKIE_NAME is required")
}
