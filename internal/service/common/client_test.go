//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
)

// TestNewClient_ValidatesAddress verifies that NewClient rejects empty addresses.
func TestNewClient_ValidatesAddress(t *testing.T) {
	t.Parallel()

	c, err := NewClient("")
	require.Error(t, err)
	require.Nil(t, c)
}

// TestClient_callContext checks timeout vs cancel-only behavior of callContext.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := &Client{
		callTimeout: 0,
	}

	ctx, cancel := c.callContext(context.Background())
	cancel()

	require.NotNil(t, ctx)

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}

// TestClient_NilActor asserts that a nil actor is rejected by the client.
func TestClient_NilActor(t *testing.T) {
	t.Parallel()

	c := new(Client)

	err := c.DismissNow(context.Background(), nil)
	require.Error(t, err)

	_, err = c.ApplyTunable(context.Background(), nil, volume.DoNotDisturbKey, "1")
	require.Error(t, err)
}
