package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentpay/agentpay/internal/log"
)

func TestSetupReturnsShutdown(t *testing.T) {
	// The exporter is created lazily; Setup succeeds even with no Agent
	// listening.
	shutdown, err := Setup(context.Background(), Config{
		AgentHost:   "localhost:1", // nothing listens here
		ServiceName: "agentpay-test",
		Environment: "test",
		Logger:      log.NewNop(),
	})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	// Shutdown flushes; with no spans recorded it must not hang.
	_ = shutdown(ctx)
}

func TestSetupDefaults(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	require.NoError(t, err)
	assert.NotNil(t, shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = shutdown(ctx)
}
