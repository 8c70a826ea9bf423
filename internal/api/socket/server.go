package socket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
	"github.com/oshokin/volume-overlay/internal/logger"
)

// Service is the daemon-side handler behind the control socket.
type Service interface {
	// DismissNow dismisses the visible overlay on behalf of the initiator.
	DismissNow(ctx context.Context, initiator *volume.Actor) error
	// ApplyTunable applies one tunable change and returns the resulting policy.
	ApplyTunable(ctx context.Context, initiator *volume.Actor, key, value string) (volume.Policy, error)
	// CurrentPolicy returns the current volume policy.
	CurrentPolicy(ctx context.Context) volume.Policy
}

// errServiceRequired is returned when no service handler is provided.
var errServiceRequired = errors.New("service must be provided")

// Server accepts control connections and dispatches envelope messages to the
// service. One request and one reply per connection.
type Server struct {
	// service handles decoded requests.
	service Service
	// listener is the accepting TCP socket.
	listener net.Listener
	// wg tracks in-flight connection handlers.
	wg sync.WaitGroup
}

// NewServer starts listening on the address. Serve must be called to begin
// accepting connections.
func NewServer(address string, service Service) (*Server, error) {
	if service == nil {
		return nil, errServiceRequired
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", address, err)
	}

	return &Server{
		service:  service,
		listener: listener,
	}, nil
}

// Addr returns the bound listener address. Useful when the configured port
// is 0.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Serve accepts connections until the context is canceled, then closes the
// listener and waits for in-flight handlers to drain.
func (s *Server) Serve(ctx context.Context) error {
	ctx = logger.WithName(ctx, "control-socket")

	go func() {
		<-ctx.Done()
		// Unblocks Accept.
		_ = s.listener.Close()
	}()

	logger.Infof(ctx, "Control socket is listening on %s", s.Addr())

	for {
		connection, err := s.listener.Accept()
		if err != nil {
			s.wg.Wait()

			if ctx.Err() != nil {
				logger.Info(ctx, "Control socket has been shut down")
				return nil
			}

			return fmt.Errorf("accept connection: %w", err)
		}

		s.wg.Add(1)

		go func() {
			defer s.wg.Done()
			s.handle(ctx, connection)
		}()
	}
}

// handle decodes one envelope, dispatches it and writes the reply.
func (s *Server) handle(ctx context.Context, connection net.Conn) {
	defer connection.Close()

	var request Message
	if err := json.NewDecoder(connection).Decode(&request); err != nil {
		logger.ErrorKV(ctx, "Failed to decode request", "error", err)
		return
	}

	reply, err := s.dispatch(ctx, &request)
	if err != nil {
		logger.ErrorKV(ctx, "Request failed",
			"type", request.Type,
			"error", err,
		)

		reply, err = Encode(MessageTypeError, ErrorResponse{Error: err.Error()})
		if err != nil {
			return
		}
	}

	if err := json.NewEncoder(connection).Encode(reply); err != nil {
		logger.ErrorKV(ctx, "Failed to write reply", "error", err)
	}
}

// dispatch routes the envelope to the service by its type tag.
func (s *Server) dispatch(ctx context.Context, request *Message) (*Message, error) {
	switch request.Type {
	case MessageTypeDismiss:
		var payload DismissRequest
		if err := json.Unmarshal(request.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal dismiss request: %w", err)
		}

		if err := s.service.DismissNow(ctx, payload.Initiator); err != nil {
			return nil, err
		}

		return Encode(MessageTypeDismiss, DismissResponse{DateTime: time.Now()})
	case MessageTypeTune:
		var payload TuneRequest
		if err := json.Unmarshal(request.Data, &payload); err != nil {
			return nil, fmt.Errorf("unmarshal tune request: %w", err)
		}

		policy, err := s.service.ApplyTunable(ctx, payload.Initiator, payload.Key, payload.Value)
		if err != nil {
			return nil, err
		}

		return Encode(MessageTypeTune, TuneResponse{
			DateTime: time.Now(),
			Policy:   NewPolicyPayload(policy),
		})
	case MessageTypePolicy:
		return Encode(MessageTypePolicy, PolicyResponse{
			DateTime: time.Now(),
			Policy:   NewPolicyPayload(s.service.CurrentPolicy(ctx)),
		})
	default:
		return nil, fmt.Errorf("unknown message type %q", request.Type)
	}
}
