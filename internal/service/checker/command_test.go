package checker

import (
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"
)

// fakeProcess implements ps.Process for process table scans.
type fakeProcess struct {
	// executable is the reported process name.
	executable string
}

func (p *fakeProcess) Pid() int { return 42 }

func (p *fakeProcess) PPid() int { return 1 }

func (p *fakeProcess) Executable() string { return p.executable }

// TestDaemonPresent scans fake process tables for the daemon executable.
func TestDaemonPresent(t *testing.T) {
	t.Parallel()

	require.False(t, daemonPresent(nil))
	require.False(t, daemonPresent([]ps.Process{
		&fakeProcess{executable: "init"},
		&fakeProcess{executable: "volume-tune"},
	}))
	require.True(t, daemonPresent([]ps.Process{
		&fakeProcess{executable: "init"},
		&fakeProcess{executable: daemonExecutable()},
	}))
}
