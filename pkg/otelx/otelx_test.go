package otelx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LofoWalker/upkeep/pkg/otelx"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := otelx.Setup(context.Background(), "test-service", "v0.0.0", "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address: nothing is exported before shutdown.
	shutdown, err := otelx.Setup(context.Background(), "test-service", "v0.0.0", "http://192.0.2.1:4318")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
