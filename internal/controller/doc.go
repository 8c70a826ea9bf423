// Package controller provides the reference volume Controller used by the
// daemon. It records pushed policy and lifecycle notifications; the actual
// audio-domain logic (muting, stream selection) is an external concern.
package controller
