package player

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// VLCBackend drives cvlc through its rc interface on stdin.
type VLCBackend struct {
	path string
}

func probeVLC() *VLCBackend {
	for _, name := range []string{"cvlc", "vlc"} {
		if path, err := exec.LookPath(name); err == nil {
			return &VLCBackend{path: path}
		}
	}
	return nil
}

func (b *VLCBackend) Name() string { return "vlc" }

func (b *VLCBackend) Spawn(url string, volume int) (*Process, error) {
	if url == "" {
		return nil, errors.New("stream url is required")
	}

	cmd := exec.Command(b.path,
		"--no-video",
		"--quiet",
		"--intf", "rc",
		"--rc-fake-tty",
		"--volume", fmt.Sprintf("%d", vlcVolume(volume)),
		url,
	)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	proc := &Process{
		cmd:  cmd,
		done: make(chan struct{}),
		control: func(volume int) error {
			mu.Lock()
			defer mu.Unlock()
			_, err := io.WriteString(stdin, fmt.Sprintf("volume %d\n", vlcVolume(volume)))
			return err
		},
	}
	if err := proc.start(); err != nil {
		return nil, err
	}
	return proc, nil
}

// vlcVolume maps the session's 0-100 scale onto VLC's 0-256 scale.
func vlcVolume(percent int) int {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return percent * 256 / 100
}
