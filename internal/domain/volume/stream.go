package volume

// Stream identifies an audio stream the overlay can present a row for.
type Stream int

// Audio streams the default overlay knows about.
const (
	// StreamMusic is the media playback stream.
	StreamMusic Stream = iota
	// StreamRing is the incoming call ringer stream.
	StreamRing
	// StreamNotification is the notification sound stream.
	StreamNotification
	// StreamAlarm is the alarm clock stream.
	StreamAlarm
	// StreamSystem is the system sounds stream.
	StreamSystem
)

// String returns a human-readable stream name.
func (s Stream) String() string {
	switch s {
	case StreamMusic:
		return "music"
	case StreamRing:
		return "ring"
	case StreamNotification:
		return "notification"
	case StreamAlarm:
		return "alarm"
	case StreamSystem:
		return "system"
	default:
		return "unknown"
	}
}
