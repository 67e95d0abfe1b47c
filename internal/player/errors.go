package player

import "fmt"

// ErrorKind classifies playback failures.
type ErrorKind int

const (
	// LaunchFailed means the player process could not be spawned.
	LaunchFailed ErrorKind = iota
	// ControlFailed means a post-launch command could not be delivered.
	ControlFailed
)

func (k ErrorKind) String() string {
	switch k {
	case LaunchFailed:
		return "launch failed"
	case ControlFailed:
		return "control failed"
	}
	return "unknown"
}

// Error wraps a playback failure with its kind. Neither kind is fatal to the
// session; both surface as status messages.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("player %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
