package player

import (
	"errors"
	"sync"
)

// State is the controller's supervision state.
type State int

const (
	Idle State = iota
	Launching
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Launching:
		return "launching"
	case Running:
		return "running"
	}
	return "unknown"
}

// ExitEvent reports that the supervised process ended on its own.
type ExitEvent struct {
	UUID string
}

const (
	// DefaultVolume is the volume a fresh session starts at.
	DefaultVolume = 50
	// DefaultVolumeStep is the amount one +/- press moves the volume.
	DefaultVolumeStep = 5
)

// Controller supervises at most one external player process. Play replaces
// any running process after awaiting its exit, so two processes are never
// alive at the same observable instant.
type Controller struct {
	mu      sync.Mutex
	backend Backend
	proc    *Process
	state   State
	volume  int
	uuid    string
	exits   chan ExitEvent
}

// NewController wraps a backend. A nil backend is allowed; Play then reports
// LaunchFailed and everything else no-ops, so a session without an installed
// player still browses and manages favorites.
func NewController(backend Backend, volume int) *Controller {
	if volume < 0 || volume > 100 {
		volume = DefaultVolume
	}
	return &Controller{
		backend: backend,
		state:   Idle,
		volume:  volume,
		exits:   make(chan ExitEvent, 4),
	}
}

// Play stops any running process, then spawns a new one for the stream URL.
// On spawn failure the controller stays Idle.
func (c *Controller) Play(uuid, streamURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend == nil {
		return &Error{Kind: LaunchFailed, Err: errors.New("no player backend available")}
	}

	c.stopLocked()

	c.state = Launching
	proc, err := c.backend.Spawn(streamURL, c.volume)
	if err != nil {
		c.state = Idle
		return &Error{Kind: LaunchFailed, Err: err}
	}

	c.proc = proc
	c.uuid = uuid
	c.state = Running
	go c.watch(proc, uuid)
	return nil
}

// watch flips the controller back to Idle when the process exits on its own,
// and reports the exit so the UI never shows phantom playback. Exits caused
// by an explicit stop are absorbed: by the time the process is gone, c.proc
// no longer points at it.
func (c *Controller) watch(proc *Process, uuid string) {
	<-proc.Done()

	c.mu.Lock()
	selfExit := c.proc == proc
	if selfExit {
		c.proc = nil
		c.uuid = ""
		c.state = Idle
	}
	c.mu.Unlock()

	if selfExit {
		select {
		case c.exits <- ExitEvent{UUID: uuid}:
		default:
		}
	}
}

// Stop terminates the running process and awaits its exit. Stopping an idle
// controller is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if c.proc == nil {
		c.state = Idle
		return
	}
	proc := c.proc
	c.proc = nil
	c.uuid = ""
	c.state = Idle

	proc.Kill()
	<-proc.Done()
}

// AdjustVolume moves the volume by delta, clamped to [0,100], and pushes the
// new level to the running process. It is a no-op when nothing is playing.
// The clamped volume is returned either way.
func (c *Controller) AdjustVolume(delta int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Running || c.proc == nil {
		return c.volume, nil
	}

	c.volume = clampPercent(c.volume + delta)
	if err := c.proc.SetVolume(c.volume); err != nil {
		return c.volume, &Error{Kind: ControlFailed, Err: err}
	}
	return c.volume, nil
}

// Volume returns the current volume level.
func (c *Controller) Volume() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// State returns the current supervision state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentUUID returns the uuid of the station being played, or "".
func (c *Controller) CurrentUUID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uuid
}

// Playing reports whether a process is currently supervised.
func (c *Controller) Playing() bool {
	return c.State() == Running
}

// Exits delivers self-exit events for the UI to consume.
func (c *Controller) Exits() <-chan ExitEvent {
	return c.exits
}
