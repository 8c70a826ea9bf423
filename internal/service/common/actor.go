//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"

	volume "github.com/oshokin/volume-overlay/internal/domain/volume"
)

// DetectActor gathers host and user information for audit trail.
func DetectActor() (*volume.Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &volume.Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}
