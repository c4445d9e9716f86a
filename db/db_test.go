package db

import (
	"context"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milanbella/sa-oauthdb/config"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(config.DBConfig{
		Host:        "mysql.internal",
		Port:        3307,
		User:        "fxa",
		Password:    "s3cret",
		Name:        "fxa_oauth",
		PingTimeout: 2 * time.Second,
	})

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "mysql.internal:3307", parsed.Addr)
	assert.Equal(t, "fxa", parsed.User)
	assert.Equal(t, "s3cret", parsed.Passwd)
	assert.Equal(t, "fxa_oauth", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, time.UTC, parsed.Loc)
	assert.Equal(t, 2*time.Second, parsed.Timeout)
}

func TestNew_UnreachableServerFailsWithinPingTimeout(t *testing.T) {
	start := time.Now()
	_, err := New(context.Background(), config.DBConfig{
		Host:         "127.0.0.1",
		Port:         1,
		User:         "fxa",
		Name:         "fxa_oauth",
		MaxOpenConns: 1,
		PingTimeout:  300 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
