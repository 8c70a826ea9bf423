package socket

import (
	"encoding/json"
	"fmt"
	"time"

	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
)

// Message types carried in the envelope's Type field.
const (
	// MessageTypeDismiss asks the daemon to dismiss the visible overlay.
	MessageTypeDismiss = "DismissRequest"
	// MessageTypeTune delivers one tunable key/value pair.
	MessageTypeTune = "TuneRequest"
	// MessageTypePolicy queries the current volume policy.
	MessageTypePolicy = "PolicyRequest"
	// MessageTypeError is the reply type for failed requests.
	MessageTypeError = "ErrorResponse"
)

// Message is the wire envelope: a type tag and the raw typed payload.
type Message struct {
	// Type names the payload type.
	Type string `json:"type"`
	// Data is the JSON-encoded payload.
	Data json.RawMessage `json:"data"`
}

// Encode wraps a payload into an envelope of the given type.
func Encode(messageType string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", messageType, err)
	}

	return &Message{Type: messageType, Data: data}, nil
}

// DismissRequest asks the daemon to dismiss the visible overlay.
type DismissRequest struct {
	// Initiator identifies the requesting user and host.
	Initiator *volume.Actor `json:"initiator"`
}

// DismissResponse acknowledges a dismiss request.
type DismissResponse struct {
	// DateTime is the daemon-side processing time.
	DateTime time.Time `json:"dateTime"`
}

// TuneRequest delivers one tunable key/value pair to the daemon.
type TuneRequest struct {
	// Initiator identifies the requesting user and host.
	Initiator *volume.Actor `json:"initiator"`
	// Key is the tunable key.
	Key string `json:"key"`
	// Value is the raw tunable value.
	Value string `json:"value"`
}

// TuneResponse acknowledges a tunable change and reports the policy it
// produced.
type TuneResponse struct {
	// DateTime is the daemon-side processing time.
	DateTime time.Time `json:"dateTime"`
	// Policy is the volume policy after the change.
	Policy PolicyPayload `json:"policy"`
}

// PolicyRequest queries the current volume policy.
type PolicyRequest struct {
	// Initiator identifies the requesting user and host.
	Initiator *volume.Actor `json:"initiator"`
}

// PolicyResponse reports the current volume policy.
type PolicyResponse struct {
	// DateTime is the daemon-side processing time.
	DateTime time.Time `json:"dateTime"`
	// Policy is the current volume policy.
	Policy PolicyPayload `json:"policy"`
}

// ErrorResponse reports a failed request.
type ErrorResponse struct {
	// Error is the daemon-side failure description.
	Error string `json:"error"`
}

// PolicyPayload is the wire form of a volume policy. The debounce travels
// as milliseconds to keep the payload language-neutral.
type PolicyPayload struct {
	// VolumeDownToEnterSilent mirrors the policy field of the same name.
	VolumeDownToEnterSilent bool `json:"volumeDownToEnterSilent"`
	// VolumeUpToExitSilent mirrors the policy field of the same name.
	VolumeUpToExitSilent bool `json:"volumeUpToExitSilent"`
	// DoNotDisturbWhenSilent mirrors the policy field of the same name.
	DoNotDisturbWhenSilent bool `json:"doNotDisturbWhenSilent"`
	// VibrateToSilentDebounceMS is the debounce interval in milliseconds.
	VibrateToSilentDebounceMS int64 `json:"vibrateToSilentDebounceMs"`
}

// NewPolicyPayload converts a domain policy to its wire form.
func NewPolicyPayload(policy volume.Policy) PolicyPayload {
	return PolicyPayload{
		VolumeDownToEnterSilent:   policy.VolumeDownToEnterSilent,
		VolumeUpToExitSilent:      policy.VolumeUpToExitSilent,
		DoNotDisturbWhenSilent:    policy.DoNotDisturbWhenSilent,
		VibrateToSilentDebounceMS: policy.VibrateToSilentDebounce.Milliseconds(),
	}
}

// ToPolicy converts the wire form back to a domain policy.
func (p PolicyPayload) ToPolicy() volume.Policy {
	return volume.Policy{
		VolumeDownToEnterSilent: p.VolumeDownToEnterSilent,
		VolumeUpToExitSilent:    p.VolumeUpToExitSilent,
		DoNotDisturbWhenSilent:  p.DoNotDisturbWhenSilent,
		VibrateToSilentDebounce: time.Duration(p.VibrateToSilentDebounceMS) * time.Millisecond,
	}
}
