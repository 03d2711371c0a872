package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/adapters/store/memory"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
)

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), config.StoreConfig{Driver: config.StoreDriverMemory}, nil)

	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, s)
	assert.NoError(t, s.Check(context.Background()))
	assert.NoError(t, s.Close(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	s, err := Open(context.Background(), config.StoreConfig{Driver: "cassandra"}, nil)

	require.Error(t, err)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), `unknown store driver "cassandra"`)
}

func TestOpen_PostgresBadDSN(t *testing.T) {
	s, err := Open(context.Background(), config.StoreConfig{
		Driver:   config.StoreDriverPostgres,
		Postgres: config.PostgresStoreConfig{DSN: "::not a dsn::", MaxConns: 1},
	}, nil)

	require.Error(t, err)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), "opening postgres store")
}
