package player

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// FFplayBackend is the last-resort player. ffplay has no control surface, so
// volume is fixed at launch and later adjustments are no-ops.
type FFplayBackend struct {
	path string
}

func probeFFplay() *FFplayBackend {
	if path, err := exec.LookPath("ffplay"); err == nil {
		return &FFplayBackend{path: path}
	}
	return nil
}

func (b *FFplayBackend) Name() string { return "ffplay" }

func (b *FFplayBackend) Spawn(url string, volume int) (*Process, error) {
	if url == "" {
		return nil, errors.New("stream url is required")
	}

	cmd := exec.Command(b.path,
		"-nodisp",
		"-autoexit",
		"-loglevel", "quiet",
		"-volume", fmt.Sprintf("%d", clampPercent(volume)),
		url,
	)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	proc := &Process{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	if err := proc.start(); err != nil {
		return nil, err
	}
	return proc, nil
}
