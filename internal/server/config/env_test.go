package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv_Overrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("DATABASE_DSN", "postgres://env/db")
	t.Setenv("RANDOM_SECRET", "env-secret")
	t.Setenv("TOKEN_VALIDITY", "2h")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":9090", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://env/db", c.DatabaseDSN)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, 2*time.Hour, c.TokenValidityDuration)
}

func Test_parseEnv_KeepsDefaultsWhenUnset(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("RANDOM_SECRET", "")
	t.Setenv("TOKEN_VALIDITY", "")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 20*time.Hour, c.TokenValidityDuration)
}

func Test_parseEnv_InvalidDurationIgnored(t *testing.T) {
	t.Setenv("TOKEN_VALIDITY", "soon")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, 20*time.Hour, c.TokenValidityDuration)
}
