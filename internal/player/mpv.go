package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const mpvDialTimeout = 2 * time.Second

// MPVBackend drives mpv through its JSON IPC socket.
type MPVBackend struct {
	path string
}

func probeMPV() *MPVBackend {
	if path, err := exec.LookPath("mpv"); err == nil {
		return &MPVBackend{path: path}
	}
	return nil
}

func (b *MPVBackend) Name() string { return "mpv" }

func (b *MPVBackend) Spawn(url string, volume int) (*Process, error) {
	if url == "" {
		return nil, errors.New("stream url is required")
	}

	socketDir, err := os.MkdirTemp("", "cradio-mpv-")
	if err != nil {
		return nil, err
	}
	socketPath := filepath.Join(socketDir, "ipc.sock")

	cmd := exec.Command(b.path,
		"--no-video",
		"--quiet",
		"--no-config",
		fmt.Sprintf("--volume=%d", clampPercent(volume)),
		"--input-ipc-server="+socketPath,
		url,
	)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	proc := &Process{
		cmd:     cmd,
		done:    make(chan struct{}),
		cleanup: func() { _ = os.RemoveAll(socketDir) },
		control: func(volume int) error {
			return mpvSetVolume(socketPath, clampPercent(volume))
		},
	}
	if err := proc.start(); err != nil {
		return nil, err
	}
	return proc, nil
}

type mpvCommand struct {
	Command []any `json:"command"`
}

func mpvSetVolume(socketPath string, volume int) error {
	conn, err := net.DialTimeout("unix", socketPath, mpvDialTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()

	payload, err := json.Marshal(mpvCommand{Command: []any{"set_property", "volume", volume}})
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(mpvDialTimeout))
	_, err = conn.Write(append(payload, '\n'))
	return err
}

func clampPercent(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}
