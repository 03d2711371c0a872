//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/adapters/store/storetest"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

func TestStore_Contract(t *testing.T) {
	dsn := os.Getenv("QUOTES_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("QUOTES_TEST_POSTGRES_DSN not set")
	}

	storetest.Run(t, func(t *testing.T) ports.QuoteStore {
		store, err := Open(context.Background(), Config{DSN: dsn, MaxConns: 2, Timeout: 5 * time.Second}, nil)
		require.NoError(t, err)

		_, err = store.DeleteAll(context.Background())
		require.NoError(t, err)

		t.Cleanup(func() {
			ctx := context.Background()
			_, _ = store.DeleteAll(ctx)
			_ = store.Close(ctx)
		})

		return store
	})
}
