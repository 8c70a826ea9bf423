package socket

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
)

// fakeService records requests and returns canned replies.
type fakeService struct {
	// dismissals counts DismissNow calls.
	dismissals int
	// dismissErr is returned from DismissNow when set.
	dismissErr error
	// lastKey and lastValue mirror the last ApplyTunable arguments.
	lastKey   string
	lastValue string
	// lastInitiator is the last initiator seen by any handler.
	lastInitiator *volume.Actor
	// policy is returned by ApplyTunable and CurrentPolicy.
	policy volume.Policy
}

func (f *fakeService) DismissNow(_ context.Context, initiator *volume.Actor) error {
	f.dismissals++
	f.lastInitiator = initiator

	return f.dismissErr
}

func (f *fakeService) ApplyTunable(_ context.Context, initiator *volume.Actor, key, value string) (volume.Policy, error) {
	f.lastInitiator = initiator
	f.lastKey, f.lastValue = key, value

	return f.policy, nil
}

func (f *fakeService) CurrentPolicy(context.Context) volume.Policy {
	return f.policy
}

// startServer runs the server on an ephemeral port and returns its address.
// The server is stopped and drained on test cleanup.
func startServer(t *testing.T, service Service) string {
	t.Helper()

	server, err := NewServer("127.0.0.1:0", service)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- server.Serve(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	return server.Addr()
}

// call dials the server, sends one envelope and returns the reply envelope.
func call(t *testing.T, address string, request *Message) *Message {
	t.Helper()

	connection, err := net.Dial("tcp", address)
	require.NoError(t, err)

	defer connection.Close()

	require.NoError(t, json.NewEncoder(connection).Encode(request))

	var reply Message
	require.NoError(t, json.NewDecoder(connection).Decode(&reply))

	return &reply
}

// TestServer_Dismiss exercises the dismiss roundtrip.
func TestServer_Dismiss(t *testing.T) {
	t.Parallel()

	service := new(fakeService)
	address := startServer(t, service)

	request, err := Encode(MessageTypeDismiss, DismissRequest{
		Initiator: &volume.Actor{Hostname: "host-1", Username: "user-1"},
	})
	require.NoError(t, err)

	reply := call(t, address, request)
	require.Equal(t, MessageTypeDismiss, reply.Type)

	var payload DismissResponse
	require.NoError(t, json.Unmarshal(reply.Data, &payload))
	require.False(t, payload.DateTime.IsZero())

	require.Equal(t, 1, service.dismissals)
	require.Equal(t, "host-1", service.lastInitiator.Hostname)
	require.Equal(t, "user-1", service.lastInitiator.Username)
}

// TestServer_TuneAndPolicy exercises the tune and policy roundtrips and the
// payload conversion.
func TestServer_TuneAndPolicy(t *testing.T) {
	t.Parallel()

	expected := volume.DefaultPolicy()
	expected.VolumeDownToEnterSilent = true

	service := &fakeService{policy: expected}
	address := startServer(t, service)

	request, err := Encode(MessageTypeTune, TuneRequest{
		Initiator: &volume.Actor{Hostname: "host-1", Username: "user-1"},
		Key:       volume.VolumeDownSilentKey,
		Value:     "1",
	})
	require.NoError(t, err)

	reply := call(t, address, request)
	require.Equal(t, MessageTypeTune, reply.Type)

	var tuned TuneResponse
	require.NoError(t, json.Unmarshal(reply.Data, &tuned))
	require.Equal(t, expected, tuned.Policy.ToPolicy())
	require.Equal(t, volume.VolumeDownSilentKey, service.lastKey)
	require.Equal(t, "1", service.lastValue)

	request, err = Encode(MessageTypePolicy, PolicyRequest{})
	require.NoError(t, err)

	reply = call(t, address, request)
	require.Equal(t, MessageTypePolicy, reply.Type)

	var current PolicyResponse
	require.NoError(t, json.Unmarshal(reply.Data, &current))
	require.Equal(t, expected, current.Policy.ToPolicy())
}

// TestServer_Errors covers handler failures and unknown message types.
func TestServer_Errors(t *testing.T) {
	t.Parallel()

	service := &fakeService{dismissErr: errors.New("overlay is busy")}
	address := startServer(t, service)

	request, err := Encode(MessageTypeDismiss, DismissRequest{})
	require.NoError(t, err)

	reply := call(t, address, request)
	require.Equal(t, MessageTypeError, reply.Type)

	var failure ErrorResponse
	require.NoError(t, json.Unmarshal(reply.Data, &failure))
	require.Contains(t, failure.Error, "overlay is busy")

	reply = call(t, address, &Message{Type: "Bogus", Data: json.RawMessage("{}")})
	require.Equal(t, MessageTypeError, reply.Type)
}

// TestNewServer_RequiresService verifies the required-dependency error.
func TestNewServer_RequiresService(t *testing.T) {
	t.Parallel()

	_, err := NewServer("127.0.0.1:0", nil)
	require.Error(t, err)
}
