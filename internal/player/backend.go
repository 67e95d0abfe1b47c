package player

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Backend launches an external audio player for a stream URL. Each backend
// owns its spawn arguments and, when the player has one, its control surface.
type Backend interface {
	Name() string
	Spawn(url string, volume int) (*Process, error)
}

// Process is one running player process. The control function is nil for
// backends without a post-launch control surface.
type Process struct {
	cmd     *exec.Cmd
	control func(volume int) error
	cleanup func()
	done    chan struct{}
}

// start runs the command and arranges for done to close when it exits.
func (p *Process) start() error {
	if err := p.cmd.Start(); err != nil {
		if p.cleanup != nil {
			p.cleanup()
		}
		return err
	}
	go func() {
		_ = p.cmd.Wait()
		if p.cleanup != nil {
			p.cleanup()
		}
		close(p.done)
	}()
	return nil
}

// Done closes when the process has exited, whether killed or on its own.
func (p *Process) Done() <-chan struct{} { return p.done }

// Kill terminates the process. The exit is observed through Done.
func (p *Process) Kill() {
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
}

// SetVolume sends a volume command to the running process, if the backend
// supports one. Unsupported backends no-op.
func (p *Process) SetVolume(volume int) error {
	if p.control == nil {
		return nil
	}
	return p.control(volume)
}

// ProbeBackends returns the first available backend in the given order.
// Recognized names are "vlc", "mpv" and "ffplay".
func ProbeBackends(order []string) (Backend, error) {
	if len(order) == 0 {
		order = []string{"vlc", "mpv", "ffplay"}
	}

	var tried []string
	for _, name := range order {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "vlc", "cvlc":
			if b := probeVLC(); b != nil {
				return b, nil
			}
		case "mpv":
			if b := probeMPV(); b != nil {
				return b, nil
			}
		case "ffplay":
			if b := probeFFplay(); b != nil {
				return b, nil
			}
		default:
			continue
		}
		tried = append(tried, name)
	}

	if len(tried) == 0 {
		return nil, errors.New("no recognized player backend configured")
	}
	return nil, fmt.Errorf("no player found (tried %s); install vlc, mpv or ffplay", strings.Join(tried, ", "))
}
