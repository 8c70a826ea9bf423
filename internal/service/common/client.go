//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/oshokin/volume-overlay/internal/api/socket"
	"github.com/oshokin/volume-overlay/internal/config"
	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
)

// Client talks to the daemon's control socket. The protocol is one request
// and one reply per connection, so the client dials per call and holds no
// persistent state besides the address.
type Client struct {
	// address is the daemon's control socket address.
	address string

	// callTimeout is the default timeout for individual calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errActorRequired is returned when an actor is not provided but is required for the operation.
	errActorRequired = errors.New("actor must be provided")
)

// NewClient builds a control socket client for the daemon address.
func NewClient(address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	client := &Client{
		address:     address,
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// DismissNow asks the daemon to dismiss the visible overlay.
func (c *Client) DismissNow(ctx context.Context, actor *volume.Actor) error {
	if actor == nil {
		return errActorRequired
	}

	request, err := socket.Encode(socket.MessageTypeDismiss, socket.DismissRequest{Initiator: actor})
	if err != nil {
		return err
	}

	reply, err := c.roundTrip(ctx, request)
	if err != nil {
		return fmt.Errorf("dismiss overlay: %w", err)
	}

	var payload socket.DismissResponse
	if err := json.Unmarshal(reply.Data, &payload); err != nil {
		return fmt.Errorf("unmarshal dismiss response: %w", err)
	}

	return nil
}

// ApplyTunable pushes one tunable key/value pair and returns the policy the
// daemon derived from it.
func (c *Client) ApplyTunable(ctx context.Context, actor *volume.Actor, key, value string) (volume.Policy, error) {
	if actor == nil {
		return volume.Policy{}, errActorRequired
	}

	request, err := socket.Encode(socket.MessageTypeTune, socket.TuneRequest{
		Initiator: actor,
		Key:       key,
		Value:     value,
	})
	if err != nil {
		return volume.Policy{}, err
	}

	reply, err := c.roundTrip(ctx, request)
	if err != nil {
		return volume.Policy{}, fmt.Errorf("apply tunable: %w", err)
	}

	var payload socket.TuneResponse
	if err := json.Unmarshal(reply.Data, &payload); err != nil {
		return volume.Policy{}, fmt.Errorf("unmarshal tune response: %w", err)
	}

	return payload.Policy.ToPolicy(), nil
}

// CurrentPolicy queries the daemon's current volume policy.
func (c *Client) CurrentPolicy(ctx context.Context, actor *volume.Actor) (volume.Policy, error) {
	request, err := socket.Encode(socket.MessageTypePolicy, socket.PolicyRequest{Initiator: actor})
	if err != nil {
		return volume.Policy{}, err
	}

	reply, err := c.roundTrip(ctx, request)
	if err != nil {
		return volume.Policy{}, fmt.Errorf("query policy: %w", err)
	}

	var payload socket.PolicyResponse
	if err := json.Unmarshal(reply.Data, &payload); err != nil {
		return volume.Policy{}, fmt.Errorf("unmarshal policy response: %w", err)
	}

	return payload.Policy.ToPolicy(), nil
}

// roundTrip dials the daemon, sends one envelope and reads the reply. Error
// replies are unwrapped into plain errors.
func (c *Client) roundTrip(ctx context.Context, request *socket.Message) (*socket.Message, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	var dialer net.Dialer

	connection, err := dialer.DialContext(callCtx, "tcp", c.address)
	if err != nil {
		return nil, fmt.Errorf("dial control socket: %w", err)
	}

	defer connection.Close()

	if deadline, ok := callCtx.Deadline(); ok {
		if err := connection.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("set deadline: %w", err)
		}
	}

	if err := json.NewEncoder(connection).Encode(request); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}

	var reply socket.Message
	if err := json.NewDecoder(connection).Decode(&reply); err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}

	if reply.Type == socket.MessageTypeError {
		var failure socket.ErrorResponse
		if err := json.Unmarshal(reply.Data, &failure); err != nil {
			return nil, fmt.Errorf("unmarshal error response: %w", err)
		}

		return nil, errors.New(failure.Error)
	}

	return &reply, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
